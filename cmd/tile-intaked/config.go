package main

import "github.com/srand/tilecore/pkg/log"

// Config is tile-intaked's full configuration.
type Config struct {
	// ListenHttp are the admin HTTP listen addresses.
	ListenHttp []string `mapstructure:"listen_http"`
	// BrokerUri is the AMQP 0-9-1 broker connection string.
	BrokerUri string `mapstructure:"broker_uri"`
}

func (c *Config) Log() {
	log.Info("tile-intaked configuration:")
	log.Infof("  HTTP listen addresses: %v", c.ListenHttp)
	log.Infof("  Broker URI configured: %v", c.BrokerUri != "")
}
