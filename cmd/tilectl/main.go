// Command tilectl is a small operator CLI for querying a running
// tile-ingestord's project status over its admin HTTP surface.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type ControlConfig struct {
	IngestorUri string `mapstructure:"ingestor_uri"`
}

var configData = ControlConfig{}

var rootCmd = &cobra.Command{
	Use:   "tilectl",
	Short: "tilecore control command",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		viper.SetConfigName("tilectl.yaml")
		viper.SetConfigType("yaml")
		viper.AddConfigPath("/etc/tilecore/")
		viper.AddConfigPath("$HOME/.config/tilecore")
		viper.AddConfigPath(".")
		viper.ReadInConfig()

		viper.SetEnvPrefix("tilecore")
		viper.AutomaticEnv()

		if err := viper.Unmarshal(&configData); err != nil {
			log.Fatal(err)
		}
	},
}

func main() {
	rootCmd.PersistentFlags().StringP("ingestor-uri", "i", "http://localhost:8080", "tile-ingestord admin HTTP URI")
	viper.BindPFlag("ingestor_uri", rootCmd.PersistentFlags().Lookup("ingestor-uri"))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
