package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rribeiro/folio/internal/markdown"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search across all resources",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		results, err := reg.Search(cmd.Context(), query)
		if err != nil {
			return err
		}
		if len(results) == 0 {
			fmt.Printf("No matches for %q\n", query)
			return nil
		}
		rows := make([][]string, 0, len(results))
		for _, r := range results {
			rows = append(rows, []string{r.Resource, r.ID, r.Title, r.Snippet})
		}
		fmt.Println(markdown.Table([]string{"Resource", "ID", "Title", "Match"}, rows))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
