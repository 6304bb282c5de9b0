package cmd

import (
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/mist/mist/internal/api"
	"github.com/mist/mist/internal/settings"
	"github.com/spf13/cobra"
)

var (
	setWildcardDomain string
	setAppName        string
	setClearDomain    bool
	setSkipPrompts    bool
)

// settingsCmd represents the settings command
var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage system settings",
}

var settingsGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show system settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		current, err := NewClient().Settings.GetSystemSettings(cmd.Context())
		if err != nil {
			return fmt.Errorf("error fetching settings: %w", err)
		}
		if jsonOutput() {
			return PrintJSON(cmd.OutOrStdout(), current)
		}
		printSettings(cmd, current)
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update system settings",
	Long: `Update system settings. Both values are written; unset ones keep their current value.

Examples:
  # Using flags (non-interactive)
  mist-ctl settings set --wildcard-domain apps.example.com --app-name mist --yes

  # Remove the wildcard domain
  mist-ctl settings set --clear-domain --yes

  # Interactive mode
  mist-ctl settings set`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := NewClient()
		current, err := c.Settings.GetSystemSettings(cmd.Context())
		if err != nil {
			return fmt.Errorf("error fetching settings: %w", err)
		}

		values := map[string]string{
			"mistAppName": current.MistAppName,
		}
		if current.WildcardDomain != nil {
			values["wildcardDomain"] = *current.WildcardDomain
		}
		if cmd.Flags().Changed("wildcard-domain") {
			values["wildcardDomain"] = setWildcardDomain
		}
		if setClearDomain {
			values["wildcardDomain"] = ""
		}
		if cmd.Flags().Changed("app-name") {
			values["mistAppName"] = setAppName
		}

		if !setSkipPrompts {
			for _, field := range settings.FormFields() {
				if flagForField(cmd, field.Name) {
					continue
				}
				result, err := promptField(field, values[field.Name])
				if err != nil {
					return err
				}
				values[field.Name] = result
			}
		}

		var wildcard *string
		if domain := values["wildcardDomain"]; domain != "" {
			wildcard = &domain
		}

		updated, err := c.Settings.UpdateSystemSettings(cmd.Context(), wildcard, values["mistAppName"])
		if err != nil {
			return fmt.Errorf("error updating settings: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Settings updated successfully.")
		printSettings(cmd, updated)
		return nil
	},
}

func flagForField(cmd *cobra.Command, name string) bool {
	switch name {
	case "wildcardDomain":
		return cmd.Flags().Changed("wildcard-domain") || setClearDomain
	case "mistAppName":
		return cmd.Flags().Changed("app-name")
	default:
		return false
	}
}

func promptField(field api.FormField, current string) (string, error) {
	prompt := promptui.Prompt{
		Label:   field.Label,
		Default: current,
	}
	if field.Required {
		prompt.Validate = func(input string) error {
			if len(input) == 0 {
				return fmt.Errorf("%s is required", field.Label)
			}
			return nil
		}
	}
	return prompt.Run()
}

func printSettings(cmd *cobra.Command, s api.SystemSettings) {
	domain := "(none)"
	if s.WildcardDomain != nil {
		domain = *s.WildcardDomain
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wildcard domain: %s\nMist app name:   %s\n", domain, s.MistAppName)
}

func init() {
	settingsSetCmd.Flags().StringVar(&setWildcardDomain, "wildcard-domain", "", "Wildcard domain for deployed apps (e.g. apps.example.com)")
	settingsSetCmd.Flags().StringVar(&setAppName, "app-name", "", "Name of the Mist app")
	settingsSetCmd.Flags().BoolVar(&setClearDomain, "clear-domain", false, "Remove the wildcard domain")
	settingsSetCmd.Flags().BoolVarP(&setSkipPrompts, "yes", "y", false, "Skip interactive prompts")

	settingsCmd.AddCommand(settingsGetCmd, settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}
