package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/spf13/cobra"
	"github.com/srand/tilecore/internal/buildinfo"
	"github.com/srand/tilecore/pkg/utils"
)

const versionHeader = "X-Tilecore-Version"

var healthzCmd = &cobra.Command{
	Use:   "healthz",
	Short: "Check a daemon's admin HTTP health endpoint",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := DefaultDeadlineContext()
		defer cancel()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, configData.IngestorUri+"/healthz", nil)
		if err != nil {
			log.Fatal(err)
		}

		resp, err := NewAdminClient().Do(req)
		if err != nil {
			log.Fatal(err)
		}
		defer resp.Body.Close()

		fmt.Println(resp.Status)

		if daemonVersion := resp.Header.Get(versionHeader); daemonVersion != "" {
			if utils.VersionLessThan(daemonVersion, buildinfo.MinSupportedVersion) {
				fmt.Printf("warning: daemon version %s is older than the minimum supported %s\n",
					daemonVersion, buildinfo.MinSupportedVersion)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(healthzCmd)
}
