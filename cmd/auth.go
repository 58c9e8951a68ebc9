package cmd

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/rribeiro/folio/internal/api"
	"github.com/rribeiro/folio/internal/config"
	"github.com/rribeiro/folio/internal/store"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Configure the API URL and admin token",
	RunE: func(cmd *cobra.Command, args []string) error {
		apiURL := cfg.APIURL
		token := cfg.Token

		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("API URL").
					Placeholder("https://example.com/api").
					Value(&apiURL),
				huh.NewInput().
					Title("Admin token").
					EchoMode(huh.EchoModePassword).
					Value(&token),
			),
		)
		if err := form.Run(); err != nil {
			return fmt.Errorf("login cancelled")
		}
		if apiURL == "" {
			return fmt.Errorf("an API URL is required")
		}

		// Probe the admin list endpoint before persisting anything.
		probe := store.NewRegistry(api.New(apiURL, func() string { return token }), token == "")
		if err := probe.Projects.Fetch(cmd.Context()); err != nil {
			return fmt.Errorf("could not reach %s: %w", apiURL, err)
		}

		cfg.APIURL = apiURL
		cfg.Token = token
		if err := config.Save(dataDir, cfg); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Println("Logged in. Config saved to " + dataDir)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the admin token and drop all cached collections",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg.ClearAll()
		cfg.Token = ""
		if err := config.Save(dataDir, cfg); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Println("Logged out.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}
