// Command tile-ingestord drives the project input ingestor: one ticking
// loop per configured project that reconciles a tile inventory against the
// persisted tile-status table.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/srand/tilecore/internal/adminhttp"
	"github.com/srand/tilecore/internal/controlplane"
	"github.com/srand/tilecore/internal/ingestor"
	"github.com/srand/tilecore/internal/project"
	"github.com/srand/tilecore/pkg/log"
	"github.com/srand/tilecore/pkg/pathmap"
	"github.com/srand/tilecore/pkg/tilestatus/memstore"
	"github.com/srand/tilecore/pkg/utils"
)

var config *Config

type projectRegistry struct {
	mu       sync.RWMutex
	projects []*project.Project
}

func (r *projectRegistry) Projects() []*project.Project {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*project.Project(nil), r.projects...)
}

var rootCmd = &cobra.Command{
	Use:   "tile-ingestord",
	Short: "tilecore project input ingestor daemon",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		viper.SetEnvPrefix("tilecore")
		viper.AutomaticEnv()

		viper.SetConfigName("tile-ingestord.yaml")
		viper.SetConfigType("yaml")
		viper.AddConfigPath("/etc/tilecore/")
		viper.AddConfigPath("$HOME/.config/tilecore")
		viper.AddConfigPath(".")

		viper.ReadInConfig()

		if err := utils.UnmarshalConfig(*viper.GetViper(), &config); err != nil {
			log.Fatal(err)
		}
		config.Log()

		verbosity, err := cmd.Flags().GetCount("verbose")
		if err != nil {
			panic(err)
		}

		switch {
		case verbosity >= 2:
			log.SetLevel(log.TraceLevel)
		case verbosity >= 1:
			log.SetLevel(log.DebugLevel)
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		rules := make([]pathmap.Rule, 0, len(config.PathRules))
		for _, pr := range config.PathRules {
			rules = append(rules, pathmap.Rule{Remote: pr.Remote, Local: pr.Local})
		}
		mapper := pathmap.New(rules)

		control := controlplane.NewHTTPClient(config.ControlPlaneUri)
		store := memstore.New()
		fs := afero.NewOsFs()

		registry := &projectRegistry{}
		sup := ingestor.NewSupervisor()

		for _, pc := range config.Projects {
			p := &project.Project{ID: pc.ID, Name: pc.Name, Root: pc.Root}
			registry.projects = append(registry.projects, p)

			loop := ingestor.NewLoop(ingestor.Config{
				Project:  p,
				Mapper:   mapper,
				Fs:       fs,
				Store:    store,
				Control:  control,
				Interval: config.TickInterval,
			})
			sup.Start(ctx, p.ID, loop)
		}

		for _, uri := range config.ListenHttp {
			uri := uri
			go func() {
				if err := adminhttp.Serve(uri, registry); err != nil {
					log.Errorf("admin http server stopped: %v", err)
				}
			}()
		}

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		log.Info("shutting down, waiting for in-flight ticks to complete")
		cancel()
		sup.Stop()
	},
}

func init() {
	rootCmd.Flags().StringSliceP("listen-http", "l", []string{"tcp://:8080"}, "Addresses to listen on for admin HTTP connections")
	rootCmd.Flags().CountP("verbose", "v", "Verbosity (repeatable)")

	viper.BindPFlag("listen_http", rootCmd.Flags().Lookup("listen-http"))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
