package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rribeiro/folio/internal/markdown"
	"github.com/rribeiro/folio/internal/model"
)

// Contacts get their own command set: messages are created by site
// visitors, so there is no create or toggle here, just read flags and
// bulk cleanup.

var contactCmd = &cobra.Command{
	Use:   "contact",
	Short: "Manage contact-form messages",
}

var contactListCmd = &cobra.Command{
	Use:   "list",
	Short: "List messages, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := reg.Contacts.Fetch(cmd.Context()); err != nil {
			return err
		}
		fmt.Println(markdown.RenderContactTable(reg.Contacts.Sorted()))
		fmt.Printf("%d unread, %d read, %d today\n",
			reg.Contacts.UnreadCount(), reg.Contacts.ReadCount(), reg.Contacts.TodayCount())
		return nil
	},
}

var contactShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one message",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := reg.Contacts.Fetch(cmd.Context()); err != nil {
			return err
		}
		contact, ok := reg.Contacts.Lookup(args[0])
		if !ok {
			return fmt.Errorf("no contact with id %s", args[0])
		}
		fields := []string{
			markdown.RenderField("From", contact.Name+" <"+contact.Email+">"),
			markdown.RenderField("Read", markdown.RenderRead(contact.Read)),
		}
		if at := contact.ReceivedAt(); !at.IsZero() {
			fields = append(fields, markdown.RenderField("Received", at.Format("2006-01-02 15:04:05")))
		}
		fmt.Print(markdown.RenderEntityHeader(contact.Subject, fields))
		if contact.Message != "" {
			rendered, err := markdown.RenderMarkdown(contact.Message)
			if err != nil {
				return err
			}
			fmt.Print(rendered)
		}
		return nil
	},
}

var contactToggleReadCmd = &cobra.Command{
	Use:   "toggle-read <id>",
	Short: "Flip a message's read flag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		item, err := reg.Contacts.ToggleRead(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Message %s is now %s\n", item.ItemID(), readState(item))
		return nil
	},
}

var contactDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a message",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := confirmDelete(cmd, "message "+args[0]); err != nil {
			return err
		}
		if err := reg.Contacts.Remove(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted message %s\n", args[0])
		return nil
	},
}

var contactDeleteReadCmd = &cobra.Command{
	Use:   "delete-read",
	Short: "Delete every read message",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := reg.Contacts.Fetch(cmd.Context()); err != nil {
			return err
		}
		n := reg.Contacts.ReadCount()
		if n == 0 {
			fmt.Println("No read messages to delete.")
			return nil
		}
		if err := confirmDelete(cmd, fmt.Sprintf("%d read messages", n)); err != nil {
			return err
		}
		deleted, err := reg.Contacts.RemoveRead(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("Deleted %d messages\n", deleted)
		return nil
	},
}

func readState(item model.Item) string {
	if c, ok := item.(model.Contact); ok && c.Read {
		return "read"
	}
	return "unread"
}

func init() {
	contactDeleteCmd.Flags().BoolP("force", "f", false, "skip confirmation")
	contactDeleteReadCmd.Flags().BoolP("force", "f", false, "skip confirmation")

	contactCmd.AddCommand(contactListCmd)
	contactCmd.AddCommand(contactShowCmd)
	contactCmd.AddCommand(contactToggleReadCmd)
	contactCmd.AddCommand(contactDeleteCmd)
	contactCmd.AddCommand(contactDeleteReadCmd)
	rootCmd.AddCommand(contactCmd)
}
