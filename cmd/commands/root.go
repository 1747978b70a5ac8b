package commands

import (
	"github.com/spf13/cobra"

	"github.com/nickbouwhuis/PowerDNS-Admin/internal/cli"
	"github.com/nickbouwhuis/PowerDNS-Admin/pkg/config"
	"github.com/nickbouwhuis/PowerDNS-Admin/pkg/logger"
)

// Flag values shared by every command, registered on the root
var (
	flagConfig   string
	flagServer   string
	flagCSRF     string
	flagOutput   string
	flagLogLevel string
	flagQuiet    bool
	flagNoColor  bool
	flagYes      bool
)

// RegisterGlobalFlags attaches the persistent flags shared by all commands
func RegisterGlobalFlags(root *cobra.Command) {
	pf := root.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Config file (default "+config.DefaultPath()+")")
	pf.StringVar(&flagServer, "server", "", "PowerDNS-Admin base URL")
	pf.StringVar(&flagCSRF, "csrf-token", "", "CSRF token for the settings endpoint")
	pf.StringVarP(&flagOutput, "output", "o", "table", "Output format: table, json, or yaml")
	pf.StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, or error")
	pf.BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress informational output")
	pf.BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	pf.BoolVarP(&flagYes, "yes", "y", false, "Skip confirmation prompts")
}

// NewContext builds the command context, applying flag overrides on
// top of the file and environment configuration.
func NewContext() (*cli.CommandContext, error) {
	cli.SetGlobalFlags(flagQuiet, flagNoColor, flagYes)

	ctx, err := cli.NewCommandContext(flagConfig)
	if err != nil {
		return nil, err
	}
	cfg := ctx.Config
	if flagServer != "" {
		cfg.Server = flagServer
	}
	if flagCSRF != "" {
		cfg.CSRFToken = flagCSRF
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}

	// CLI runs share the terminal with their output, keep stderr
	// logging quiet unless a level was asked for explicitly
	level := cfg.Log.Level
	if flagLogLevel == "" {
		level = "warn"
	}
	logger.Init(level)

	return ctx, nil
}
