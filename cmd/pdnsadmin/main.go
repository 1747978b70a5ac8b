package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/nickbouwhuis/PowerDNS-Admin/cmd/commands"
	"github.com/nickbouwhuis/PowerDNS-Admin/internal/cli"
	"github.com/nickbouwhuis/PowerDNS-Admin/pkg/config"
	"github.com/nickbouwhuis/PowerDNS-Admin/pkg/editor"
	"github.com/nickbouwhuis/PowerDNS-Admin/pkg/logger"
	"github.com/nickbouwhuis/PowerDNS-Admin/pkg/models"
	"github.com/nickbouwhuis/PowerDNS-Admin/pkg/nav"
	"github.com/nickbouwhuis/PowerDNS-Admin/pkg/rules"
	"github.com/nickbouwhuis/PowerDNS-Admin/pkg/tui"
)

// Version is set during build with -ldflags
var version = "dev"

var (
	startTab    string
	toggleStyle string
	noLoad      bool
)

var rootCmd = &cobra.Command{
	Use:   "pdnsadmin",
	Short: "Terminal editor for PowerDNS-Admin authentication settings",
	Long: `pdnsadmin edits the authentication settings of a PowerDNS-Admin
instance from the terminal: local accounts, LDAP, and the OAuth
providers (Google, GitHub, Azure AD, OpenID Connect).

Changes are checked against the server's own validation rules before
anything is saved, and the save endpoint is the same one the web UI
uses. Running pdnsadmin without a subcommand starts the interactive
editor.`,
	Args: cobra.NoArgs,
	RunE: runEditor,
}

func runEditor(cmd *cobra.Command, args []string) error {
	if err := cli.ValidateTabPath(models.AuthTabs(), startTab); err != nil {
		return err
	}
	ctx, err := commands.NewContext()
	if err != nil {
		return err
	}
	cfg := ctx.Config
	if toggleStyle != "" {
		cfg.Profile = toggleStyle
	}

	// The TUI owns the terminal, so logs go to the file
	if err := logger.InitFile(cfg.Log.File, cfg.Log.Level); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: log file unavailable: %v\n", err)
	}

	session := editor.New(models.AuthSchema(), rules.AuthEngine(), editor.Options{
		AutoLoad: !noLoad,
		Client:   cfg.NewClient(),
	})

	controller := nav.NewController(models.AuthTabs(), tui.NewStateSink(cfg.StateFile))
	restore := startTab
	if restore == "" {
		restore = config.LoadState(cfg.StateFile).ActiveTab
	}
	controller.HandleExternal(restore)

	model := tui.NewEditorModel(session, controller, tui.EditorOptions{
		ToggleProfile: cfg.Profile,
	})

	p := tea.NewProgram(tui.NewApp(model), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to start the terminal user interface: %w", err)
	}
	return nil
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter configuration file",
	Long:  `Creates the per-user config file with defaults to fill in`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.DefaultPath()
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists: %s", path)
		}

		if err := os.MkdirAll(config.DefaultDir(), 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
		buf, err := yaml.Marshal(config.DefaultConfig())
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, buf, 0o600); err != nil {
			return fmt.Errorf("write config file: %w", err)
		}

		fmt.Printf("✓ Created %s\n", path)
		fmt.Println("Fill in server and csrf_token, then run 'pdnsadmin' to start the editor.")
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of pdnsadmin",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("pdnsadmin version %s\n", version)
	},
}

func init() {
	commands.RegisterGlobalFlags(rootCmd)
	rootCmd.Flags().StringVar(&startTab, "tab", "", "Open the editor on this tab (e.g. authentication/ldap)")
	rootCmd.Flags().StringVar(&toggleStyle, "profile", "", "Toggle switch profile: default, compact, or wide")
	rootCmd.Flags().BoolVar(&noLoad, "no-load", false, "Start from defaults without fetching from the server")
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true

	rootCmd.AddCommand(commands.NewShowCommand())
	rootCmd.AddCommand(commands.NewGetCommand())
	rootCmd.AddCommand(commands.NewSetCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewExportCommand())
	rootCmd.AddCommand(commands.NewCopyCommand())
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
