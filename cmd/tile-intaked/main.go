// Command tile-intaked drives the completion intake path: a durable-queue
// consumer that receives task-execution completion records and dispatches
// them into the per-stage schedulers.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/srand/tilecore/internal/adminhttp"
	"github.com/srand/tilecore/internal/intake"
	"github.com/srand/tilecore/internal/metrics"
	"github.com/srand/tilecore/internal/stagehub"
	"github.com/srand/tilecore/pkg/log"
	"github.com/srand/tilecore/pkg/utils"
)

var config *Config

var rootCmd = &cobra.Command{
	Use:   "tile-intaked",
	Short: "tilecore completion intake daemon",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		viper.SetEnvPrefix("tilecore")
		viper.AutomaticEnv()

		viper.SetConfigName("tile-intaked.yaml")
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

		hub := stagehub.New()
		sink := metrics.NewLogSink()
		dispatcher := intake.NewDispatcher(sink, hub)
		consumer := intake.NewConsumer(config.BrokerUri, dispatcher)

		go consumer.Run(ctx)

		for _, uri := range config.ListenHttp {
			uri := uri
			go func() {
				if err := adminhttp.ServeHealthOnly(uri); err != nil {
					log.Errorf("admin http server stopped: %v", err)
				}
			}()
		}

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		log.Info("shutting down")
		cancel()
	},
}

func init() {
	rootCmd.Flags().StringSliceP("listen-http", "l", []string{"tcp://:8081"}, "Addresses to listen on for admin HTTP connections")
	rootCmd.Flags().CountP("verbose", "v", "Verbosity (repeatable)")

	viper.BindPFlag("listen_http", rootCmd.Flags().Lookup("listen-http"))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
