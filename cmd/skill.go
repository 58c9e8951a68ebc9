package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rribeiro/folio/internal/markdown"
)

var skillCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List distinct skill categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := reg.Skills.Fetch(cmd.Context()); err != nil {
			return err
		}
		for _, cat := range reg.Skills.Categories() {
			fmt.Println(cat)
		}
		return nil
	},
}

func init() {
	c := newResourceCmd(resourceOpts{
		resource: "skills",
		singular: "skill",
		renderList: func() string {
			return markdown.RenderSkillTable(reg.Skills.Sorted())
		},
	})
	c.AddCommand(skillCategoriesCmd)
	rootCmd.AddCommand(c)
}
