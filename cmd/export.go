package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rribeiro/folio/internal/markdown"
	"github.com/rribeiro/folio/internal/slug"
)

// bodyFields maps a resource to the field that becomes the markdown body in
// exported files; everything else stays in the frontmatter block.
var bodyFields = map[string]string{
	"projects": "description",
	"contacts": "message",
}

var exportCmd = &cobra.Command{
	Use:   "export [resource]",
	Short: "Export resources to frontmatter files",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("dir")
		names := reg.Names()
		if len(args) == 1 {
			names = args[:1]
		}

		total := 0
		for _, name := range names {
			res, err := reg.Get(name)
			if err != nil {
				return err
			}
			if err := res.Fetch(cmd.Context()); err != nil {
				return err
			}
			outDir := filepath.Join(dir, name)
			if err := os.MkdirAll(outDir, 0755); err != nil {
				return err
			}
			used := map[string]bool{}
			for _, item := range res.Items() {
				fields, err := itemFields(item)
				if err != nil {
					return err
				}
				body := ""
				if key := bodyFields[name]; key != "" {
					if s, ok := fields[key].(string); ok {
						body = s
						delete(fields, key)
					}
				}
				data, err := markdown.Marshal(fields, body)
				if err != nil {
					return err
				}
				path := filepath.Join(outDir, exportName(used, item.Label(), item.ItemID())+".md")
				if err := os.WriteFile(path, data, 0644); err != nil {
					return err
				}
				total++
			}
		}
		fmt.Printf("Exported %d items to %s\n", total, dir)
		return nil
	},
}

// exportName slugs the label and, when two items share one, disambiguates
// with an ID fragment so neither file overwrites the other.
func exportName(used map[string]bool, label, id string) string {
	name := slug.Make(label)
	if used[name] {
		frag := id
		if len(frag) > 6 {
			frag = frag[:6]
		}
		name = name + "-" + frag
	}
	used[name] = true
	return name
}

var importCmd = &cobra.Command{
	Use:   "import <resource> <file>...",
	Short: "Import items from frontmatter files",
	Long: "Import creates an item per file; files whose frontmatter carries an\n" +
		"_id update the existing item instead.",
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := reg.Get(args[0])
		if err != nil {
			return err
		}

		created, updated := 0, 0
		for _, path := range args[1:] {
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			fields, err := markdown.ParseFields(f, bodyFields[args[0]])
			f.Close()
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			if len(fields) == 0 {
				return fmt.Errorf("%s: no fields", path)
			}

			if id, ok := fields["_id"].(string); ok && id != "" {
				if _, err := res.UpdateItem(cmd.Context(), id, fields); err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				updated++
				continue
			}
			if _, err := res.CreateItem(cmd.Context(), fields); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			created++
		}
		fmt.Printf("Imported %d files: %d created, %d updated\n", created+updated, created, updated)
		return nil
	},
}

func init() {
	exportCmd.Flags().String("dir", "content", "output directory")
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
