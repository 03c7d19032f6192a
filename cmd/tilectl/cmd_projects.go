package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/spf13/cobra"
)

type projectStatus struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	InputSourceState string `json:"input_source_state"`
}

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List projects known to tile-ingestord and their input state",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := DefaultDeadlineContext()
		defer cancel()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, configData.IngestorUri+"/projects", nil)
		if err != nil {
			log.Fatal(err)
		}

		resp, err := NewAdminClient().Do(req)
		if err != nil {
			log.Fatal(err)
		}
		defer resp.Body.Close()

		var projects []projectStatus
		if err := json.NewDecoder(resp.Body).Decode(&projects); err != nil {
			log.Fatal(err)
		}

		for index, p := range projects {
			fmt.Printf("%d: %s %s %s\n", index, p.ID, p.Name, p.InputSourceState)
		}
	},
}

func init() {
	rootCmd.AddCommand(projectsCmd)
}
