package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/joho/godotenv"
	mtp "github.com/modeltoolsprotocol/go-sdk"
	"github.com/spf13/cobra"

	"github.com/rribeiro/folio/internal/api"
	"github.com/rribeiro/folio/internal/config"
	"github.com/rribeiro/folio/internal/store"
)

var (
	version = "dev"
	dataDir string
	verbose bool
	cfg     *config.Config
	client  *api.Client
	reg     *store.Registry
)

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".folio")
	}
	return filepath.Join(home, ".folio")
}

func skipsAPISetup(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "login", "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
		return true
	}
	return cmd.Parent() != nil && cmd.Parent().Name() == "completion"
}

var rootCmd = &cobra.Command{
	Use:     "folio",
	Short:   "Manage portfolio content from the terminal",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional; absence is not an error
		_ = godotenv.Load()

		log.SetHandler(cli.New(os.Stderr))
		log.SetLevel(log.WarnLevel)
		if verbose {
			log.SetLevel(log.DebugLevel)
		}

		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}

		var err error
		cfg, err = config.Load(dataDir)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		// login, help, and shell completion must work before anything
		// is configured
		if skipsAPISetup(cmd) {
			return nil
		}
		if cfg.APIURL == "" {
			return fmt.Errorf("no API URL configured; run 'folio login' or set FOLIO_API_URL")
		}

		client = api.New(cfg.APIURL, func() string { return cfg.Token })
		reg = store.NewRegistry(client, cfg.Public)
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", defaultDataDir(), "data directory path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	mtpOpts := &mtp.DescribeOptions{
		Commands: map[string]*mtp.CommandAnnotation{
			"project list": {
				Stdout: &mtp.IODescriptor{
					ContentType: "text/plain",
					Description: "Table of projects with ID, title, category, order, and active flag",
				},
			},
			"project create": {
				Examples: []mtp.Example{
					{Description: "Create a project from flags", Command: "folio project create --set title=\"My App\" --set category=web"},
					{Description: "Create a project from a frontmatter file", Command: "folio project create --file my-app.md"},
				},
			},
			"project toggle": {
				Examples: []mtp.Example{
					{Description: "Soft-disable a project", Command: "folio project toggle 6613f2ab01"},
				},
			},
			"skill create": {
				Examples: []mtp.Example{
					{Description: "Create a skill", Command: "folio skill create --set name=Go --set category=backend --set order=3"},
				},
			},
			"contact show": {
				Stdout: &mtp.IODescriptor{
					ContentType: "text/plain",
					Description: "Message headers plus the rendered message body",
				},
			},
			"contact delete-read": {
				Examples: []mtp.Example{
					{Description: "Purge every read message", Command: "folio contact delete-read --force"},
				},
			},
			"search": {
				Stdout: &mtp.IODescriptor{
					ContentType: "text/plain",
					Description: "Matches across all resources with ID, title, and snippet",
				},
				Examples: []mtp.Example{
					{Description: "Search all cached content", Command: "folio search \"kubernetes\""},
				},
			},
			"export": {
				Examples: []mtp.Example{
					{Description: "Export all resources to frontmatter files", Command: "folio export --dir content/"},
					{Description: "Export one resource", Command: "folio export projects --dir content/"},
				},
			},
			"import": {
				Examples: []mtp.Example{
					{Description: "Import items from frontmatter files", Command: "folio import skills content/skills/*.md"},
				},
			},
		},
	}

	mtp.WithDescribe(rootCmd, mtpOpts)
}

func Execute() error {
	return rootCmd.Execute()
}
