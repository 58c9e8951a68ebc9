package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/rribeiro/folio/internal/markdown"
)

var projectStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show project aggregates from the API",
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := reg.Projects.FetchStats(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(markdown.RenderField("Total", fmt.Sprint(stats.Total)))
		categories := make([]string, 0, len(stats.ByCategory))
		for c := range stats.ByCategory {
			categories = append(categories, c)
		}
		sort.Strings(categories)
		for _, c := range categories {
			fmt.Println(markdown.RenderField("  "+c, fmt.Sprint(stats.ByCategory[c])))
		}
		return nil
	},
}

func init() {
	c := newResourceCmd(resourceOpts{
		resource:  "projects",
		singular:  "project",
		bodyField: "description",
		renderList: func() string {
			return markdown.RenderProjectTable(reg.Projects.Sorted())
		},
	})
	c.AddCommand(projectStatsCmd)
	rootCmd.AddCommand(c)
}
