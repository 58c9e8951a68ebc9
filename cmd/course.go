package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rribeiro/folio/internal/markdown"
)

var courseHoursCmd = &cobra.Command{
	Use:   "hours",
	Short: "Sum the hours of completed courses, grouped by year",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := reg.Courses.Fetch(cmd.Context()); err != nil {
			return err
		}
		for _, group := range reg.Courses.ByYear() {
			label := fmt.Sprint(group.Year)
			if group.Year == 0 {
				label = "planned"
			}
			hours := 0.0
			for _, c := range group.Courses {
				hours += c.Hours()
			}
			fmt.Println(markdown.RenderField(label, fmt.Sprintf("%d courses, %.1fh", len(group.Courses), hours)))
		}
		fmt.Println(markdown.RenderField("Total", fmt.Sprintf("%.1fh", reg.Courses.TotalHours())))
		return nil
	},
}

func init() {
	c := newResourceCmd(resourceOpts{
		resource: "courses",
		singular: "course",
		renderList: func() string {
			return markdown.RenderCourseTable(reg.Courses.Sorted())
		},
	})
	c.AddCommand(courseHoursCmd)
	rootCmd.AddCommand(c)
}
