package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/rribeiro/folio/internal/markdown"
)

var certificationStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show certification aggregates from the API",
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := reg.Certifications.FetchStats(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(markdown.RenderField("Total", fmt.Sprint(stats.Total)))
		issuers := make([]string, 0, len(stats.ByIssuer))
		for i := range stats.ByIssuer {
			issuers = append(issuers, i)
		}
		sort.Strings(issuers)
		for _, i := range issuers {
			fmt.Println(markdown.RenderField("  "+i, fmt.Sprint(stats.ByIssuer[i])))
		}
		return nil
	},
}

func init() {
	c := newResourceCmd(resourceOpts{
		resource: "certifications",
		singular: "certification",
		renderList: func() string {
			return markdown.RenderCertificationTable(reg.Certifications.Sorted())
		},
	})
	c.AddCommand(certificationStatsCmd)
	rootCmd.AddCommand(c)
}
