package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/inventory/internal/version"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the cache store and the inventory backend",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := openClient(cmd.Context())
		if err != nil {
			return err
		}
		defer client.Close()

		h := client.Health(cmd.Context())
		names := make([]string, 0, len(h.Checks))
		for name := range h.Checks {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("%-10s %s\n", name, h.Checks[name])
		}
		fmt.Println("status:", h.Status)
		if h.Status != "ok" {
			return fmt.Errorf("unhealthy: %s", h.Status)
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("inventoryctl %s (%s)\n", version.Version, version.Commit)
	},
}

func init() {
	rootCmd.AddCommand(healthCmd, versionCmd)
}
