package cmd

import (
	"fmt"

	"github.com/mist/mist/internal/version"
	"github.com/spf13/cobra"
)

var versionCheck bool

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the client and server versions",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, version.Info("mist-ctl"))

		c := NewClient()
		server, err := c.Updates.GetCurrentVersion(cmd.Context())
		if err != nil {
			return fmt.Errorf("error fetching server version: %w", err)
		}
		fmt.Fprintf(out, "server %s (commit: %s, built: %s)\n", server.Version, server.Commit, server.BuildDate)

		if !versionCheck {
			return nil
		}

		check, err := c.Updates.CheckForUpdates(cmd.Context())
		if err != nil {
			return fmt.Errorf("error checking for updates: %w", err)
		}
		if check.UpdateAvailable {
			fmt.Fprintf(out, "update available: %s -> %s\n", check.Current, check.Latest)
		} else {
			fmt.Fprintln(out, "server is up to date")
		}
		return nil
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionCheck, "check", false, "Also check for a newer release")
	rootCmd.AddCommand(versionCmd)
}
