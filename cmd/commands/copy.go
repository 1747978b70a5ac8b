package commands

import (
	"encoding/json"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/nickbouwhuis/PowerDNS-Admin/internal/cli"
)

// NewCopyCommand creates the copy command
func NewCopyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "copy",
		Short: "Copy the settings record to the clipboard as JSON",
		Long: `Fetch the settings and place them on the system clipboard as
indented JSON, ready to paste into a ticket or a diff tool.

Needs a clipboard helper on Linux (xclip, xsel or wl-clipboard).

Examples:
  pdnsadmin copy
  pdnsadmin clip`,
		Args:    cobra.NoArgs,
		Aliases: []string{"clip"},
		RunE:    runCopy,
	}

	return cmd
}

func runCopy(cmd *cobra.Command, args []string) error {
	ctx, err := NewContext()
	if err != nil {
		return err
	}
	session, err := ctx.LoadedSession(cmd.Context())
	if err != nil {
		return err
	}

	buf, err := json.MarshalIndent(session.Record().Flatten(), "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := clipboard.WriteAll(string(buf)); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}

	cli.PrintSuccess("Settings copied to clipboard (%d bytes)", len(buf))

	return nil
}
