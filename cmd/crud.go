package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/rribeiro/folio/internal/editor"
	"github.com/rribeiro/folio/internal/markdown"
	"github.com/rribeiro/folio/internal/model"
	"github.com/rribeiro/folio/internal/store"
)

// resourceOpts wires one resource into the shared CRUD subcommand set.
// Everything here goes through the uniform store.Resource interface; only
// the list rendering knows the concrete type.
type resourceOpts struct {
	resource   string // registry name, e.g. "projects"
	singular   string // command name, e.g. "project"
	bodyField  string // frontmatter body destination on create/update/edit
	renderList func() string
}

// newResourceCmd builds the list/create/update/delete/toggle/edit
// subcommands shared by every resource.
func newResourceCmd(opts resourceOpts) *cobra.Command {
	c := &cobra.Command{
		Use:   opts.singular,
		Short: "Manage " + opts.resource,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List " + opts.resource,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := reg.Get(opts.resource)
			if err != nil {
				return err
			}
			if err := res.Fetch(cmd.Context()); err != nil {
				return err
			}
			fmt.Println(opts.renderList())
			return nil
		},
	}

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a " + opts.singular,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := reg.Get(opts.resource)
			if err != nil {
				return err
			}
			fields, err := collectFields(cmd, opts.bodyField)
			if err != nil {
				return err
			}
			if len(fields) == 0 {
				return fmt.Errorf("nothing to create; pass --set key=value or --file")
			}
			item, err := res.CreateItem(cmd.Context(), fields)
			if err != nil {
				return err
			}
			fmt.Printf("Created %s %s (%s)\n", opts.singular, item.Label(), item.ItemID())
			return nil
		},
	}
	createCmd.Flags().StringArray("set", nil, "field to set, key=value (repeatable)")
	createCmd.Flags().StringP("file", "f", "", "frontmatter file with the item fields")

	updateCmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a " + opts.singular,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := reg.Get(opts.resource)
			if err != nil {
				return err
			}
			fields, err := collectFields(cmd, opts.bodyField)
			if err != nil {
				return err
			}
			if len(fields) == 0 {
				return fmt.Errorf("nothing to update; pass --set key=value or --file")
			}
			item, err := res.UpdateItem(cmd.Context(), args[0], fields)
			if err != nil {
				return err
			}
			fmt.Printf("Updated %s %s\n", opts.singular, item.ItemID())
			return nil
		},
	}
	updateCmd.Flags().StringArray("set", nil, "field to set, key=value (repeatable)")
	updateCmd.Flags().StringP("file", "f", "", "frontmatter file with the item fields")

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a " + opts.singular,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := reg.Get(opts.resource)
			if err != nil {
				return err
			}
			if err := confirmDelete(cmd, opts.singular+" "+args[0]); err != nil {
				return err
			}
			if err := res.Remove(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted %s %s\n", opts.singular, args[0])
			return nil
		},
	}
	deleteCmd.Flags().BoolP("force", "f", false, "skip confirmation")

	toggleCmd := &cobra.Command{
		Use:   "toggle <id>",
		Short: "Toggle the active flag of a " + opts.singular,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := reg.Get(opts.resource)
			if err != nil {
				return err
			}
			toggler, ok := res.(store.ActiveToggler)
			if !ok {
				return fmt.Errorf("%s cannot be toggled", opts.resource)
			}
			item, err := toggler.Toggle(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			state := "inactive"
			if a, ok := item.(model.Activatable); ok && a.IsActive() {
				state = "active"
			}
			fmt.Printf("%s %s is now %s\n", opts.singular, item.ItemID(), state)
			return nil
		},
	}

	editCmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a " + opts.singular + " in $EDITOR",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := reg.Get(opts.resource)
			if err != nil {
				return err
			}
			if err := res.Fetch(cmd.Context()); err != nil {
				return err
			}
			item, err := findItem(res, args[0])
			if err != nil {
				return err
			}
			fields, err := itemFields(item)
			if err != nil {
				return err
			}
			body := ""
			if opts.bodyField != "" {
				if s, ok := fields[opts.bodyField].(string); ok {
					body = s
					delete(fields, opts.bodyField)
				}
			}
			initial, err := markdown.Marshal(fields, body)
			if err != nil {
				return err
			}
			edited, err := editor.EditBytes("folio-*.md", initial)
			if err != nil {
				return err
			}
			patch, err := markdown.ParseFields(strings.NewReader(string(edited)), opts.bodyField)
			if err != nil {
				return err
			}
			if _, err := res.UpdateItem(cmd.Context(), args[0], patch); err != nil {
				return err
			}
			fmt.Printf("Updated %s %s\n", opts.singular, args[0])
			return nil
		},
	}

	c.AddCommand(listCmd, createCmd, updateCmd, deleteCmd, toggleCmd, editCmd)
	return c
}

// collectFields merges --file frontmatter with --set overrides.
func collectFields(cmd *cobra.Command, bodyField string) (map[string]any, error) {
	fields := map[string]any{}

	if path, _ := cmd.Flags().GetString("file"); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		fields, err = markdown.ParseFields(f, bodyField)
		if err != nil {
			return nil, err
		}
	}

	pairs, _ := cmd.Flags().GetStringArray("set")
	for _, pair := range pairs {
		key, raw, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --set %q, want key=value", pair)
		}
		fields[key] = parseValue(raw)
	}
	return fields, nil
}

// parseValue turns a flag literal into the closest JSON value: bools and
// numbers stay typed, bracketed values parse as JSON, anything else is a
// string.
func parseValue(raw string) any {
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	if strings.HasPrefix(raw, "[") || strings.HasPrefix(raw, "{") {
		var v any
		if err := json.Unmarshal([]byte(raw), &v); err == nil {
			return v
		}
	}
	return raw
}

func findItem(res store.Resource, id string) (model.Item, error) {
	for _, item := range res.Items() {
		if item.ItemID() == id {
			return item, nil
		}
	}
	return nil, fmt.Errorf("no %s with id %s", res.Name(), id)
}

// itemFields flattens an item into its API field map.
func itemFields(item model.Item) (map[string]any, error) {
	b, err := json.Marshal(item)
	if err != nil {
		return nil, err
	}
	var fields map[string]any
	if err := json.Unmarshal(b, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

func confirmDelete(cmd *cobra.Command, label string) error {
	if force, _ := cmd.Flags().GetBool("force"); force {
		return nil
	}
	var ok bool
	if err := huh.NewConfirm().
		Title("Delete " + label + "?").
		Value(&ok).
		Run(); err != nil {
		return fmt.Errorf("confirmation cancelled")
	}
	if !ok {
		return fmt.Errorf("aborted")
	}
	return nil
}
