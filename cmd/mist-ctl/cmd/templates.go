package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/mist/mist/internal/api"
	"github.com/mist/mist/internal/catalog"
	"github.com/spf13/cobra"
)

const defaultListLimit = 20

var (
	listPage  int
	listLimit int
)

// templatesCmd represents the templates command
var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Browse service templates",
}

var templatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all service templates",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := NewClient()
		var templates []api.ServiceTemplate
		var page *api.PaginatedResponse[api.ServiceTemplate]
		if listPage > 0 || listLimit > 0 {
			pageNum, limit := listPage, listLimit
			if pageNum < 1 {
				pageNum = 1
			}
			if limit < 1 {
				limit = defaultListLimit
			}
			p, err := c.Templates.ListPage(cmd.Context(), pageNum, limit)
			if err != nil {
				return fmt.Errorf("error fetching templates: %w", err)
			}
			templates, page = p.Items, &p
		} else {
			var err error
			templates, err = c.Templates.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("error fetching templates: %w", err)
			}
		}

		if jsonOutput() {
			if page != nil {
				return PrintJSON(cmd.OutOrStdout(), page)
			}
			return PrintJSON(cmd.OutOrStdout(), templates)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "NAME\tCATEGORY\tIMAGE\tPORT")
		for _, tmpl := range templates {
			image := tmpl.DockerImage
			if tmpl.DockerImageVersion != "" {
				image += ":" + tmpl.DockerImageVersion
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", tmpl.Name, tmpl.Category, image, tmpl.DefaultPort)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		if page != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "Page %d of %d (%d templates)\n", page.Page, page.TotalPages, page.Total)
		}
		return nil
	},
}

var templatesGetCmd = &cobra.Command{
	Use:   "get [name]",
	Short: "Get service template details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tmpl, err := NewClient().Templates.GetByName(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("error getting template: %w", err)
		}
		return PrintJSON(cmd.OutOrStdout(), tmpl)
	},
}

var templatesCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List template categories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		templates, err := NewClient().Templates.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("error fetching templates: %w", err)
		}

		options := catalog.CategoryOptions(templates)
		if jsonOutput() {
			return PrintJSON(cmd.OutOrStdout(), options)
		}
		for _, opt := range options {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", opt.Value, opt.Label)
		}
		return nil
	},
}

func init() {
	templatesListCmd.Flags().IntVar(&listPage, "page", 0, "Page number (enables pagination)")
	templatesListCmd.Flags().IntVar(&listLimit, "limit", 0, "Templates per page (enables pagination)")
	templatesCmd.AddCommand(templatesListCmd, templatesGetCmd, templatesCategoriesCmd)
	rootCmd.AddCommand(templatesCmd)
}
