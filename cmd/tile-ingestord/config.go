package main

import (
	"time"

	"github.com/srand/tilecore/pkg/log"
)

// PathRule is one {remote, local} pair of the path-mapping configuration.
type PathRule struct {
	Remote string `mapstructure:"remote"`
	Local  string `mapstructure:"local"`
}

// ProjectConfig statically names one project this daemon ingests. A real
// deployment would instead list projects from the control plane; that
// lookup is out of scope here.
type ProjectConfig struct {
	ID   string `mapstructure:"id"`
	Name string `mapstructure:"name"`
	Root string `mapstructure:"root"`
}

// Config is tile-ingestord's full configuration, layered flags > env
// TILECORE_* > YAML per the teacher's cmd/scheduler config.
type Config struct {
	// ListenHttp are the admin HTTP listen addresses.
	ListenHttp []string `mapstructure:"listen_http"`
	// ControlPlaneUri is the base URL of the control-plane API.
	ControlPlaneUri string `mapstructure:"control_plane_uri"`
	// TickInterval is the ingestor loop's period per project.
	TickInterval time.Duration `mapstructure:"tick_interval"`
	// PathRules maps remote-visible project roots to local paths.
	PathRules []PathRule `mapstructure:"path_rules"`
	// Projects are the statically configured projects to ingest.
	Projects []ProjectConfig `mapstructure:"projects"`
}

func (c *Config) Log() {
	log.Info("tile-ingestord configuration:")
	log.Infof("  HTTP listen addresses: %v", c.ListenHttp)
	log.Infof("  Control plane URI: %s", c.ControlPlaneUri)
	log.Infof("  Tick interval: %s", c.TickInterval)
	log.Infof("  Path rules: %d configured", len(c.PathRules))
	log.Infof("  Projects: %d configured", len(c.Projects))
}
