// Package adminhttp is a small per-daemon status/health HTTP surface,
// grounded on the teacher's cmd/scheduler/http.go.
package adminhttp

import (
	"net/http"

	"github.com/google/uuid"
	echo "github.com/labstack/echo/v4"
	"github.com/srand/tilecore/internal/buildinfo"
	"github.com/srand/tilecore/internal/project"
	"github.com/srand/tilecore/pkg/log"
	"github.com/srand/tilecore/pkg/utils"
)

const (
	versionHeader   = "X-Tilecore-Version"
	requestIDHeader = "X-Request-Id"
)

// requestID stamps every response with a fresh request id in the
// X-Request-Id header. The id is not written to any log line.
func requestID(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set(requestIDHeader, uuid.NewString())
		return next(c)
	}
}

// ProjectSource supplies the set of projects a running daemon knows about,
// for the /projects status endpoint.
type ProjectSource interface {
	Projects() []*project.Project
}

type projectStatus struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	InputSourceState string `json:"input_source_state"`
}

// Serve starts the admin HTTP surface on uri ("tcp://host:port"), blocking
// until the server stops or fails to start.
func Serve(uri string, projects ProjectSource) error {
	r := newServer()

	r.GET("/projects", func(c echo.Context) error {
		var out []projectStatus
		for _, p := range projects.Projects() {
			out = append(out, projectStatus{
				ID:               p.ID,
				Name:             p.Name,
				InputSourceState: string(p.InputSourceState),
			})
		}
		return c.JSON(http.StatusOK, out)
	})

	return start(r, uri)
}

// ServeHealthOnly starts an admin HTTP surface exposing only /healthz, for
// daemons (tile-intaked) with no project registry to report.
func ServeHealthOnly(uri string) error {
	return start(newServer(), uri)
}

func newServer() *echo.Echo {
	r := echo.New()
	r.HideBanner = true
	r.Use(requestID)
	r.Use(utils.HttpLogger)

	r.GET("/healthz", func(c echo.Context) error {
		c.Response().Header().Set(versionHeader, buildinfo.Version)
		return c.String(http.StatusOK, "ok")
	})

	return r
}

func start(r *echo.Echo, uri string) error {
	host, err := utils.ParseHttpUrl(uri)
	if err != nil {
		return err
	}

	log.Infof("admin http listening on %s", host)
	return r.Start(host)
}
