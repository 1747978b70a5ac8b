package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nickbouwhuis/PowerDNS-Admin/internal/cli"
)

var (
	exportToFile string
)

// NewExportCommand creates the export command
func NewExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the settings record to stdout or a file",
		Long: `Export the full authentication settings record.

The export is the same flat record the save endpoint accepts, so a
stored export documents a known-good configuration. Secrets are
included in clear text; treat exports accordingly.

JSON is the default; -o yaml switches the format. A bare -o table
falls back to JSON since a table is not a useful export.

Examples:
  # Export to stdout
  pdnsadmin export > auth-settings.json

  # Export to a file as YAML
  pdnsadmin export -o yaml --file auth-settings.yaml`,
		Args: cobra.NoArgs,
		RunE: runExport,
	}

	cmd.Flags().StringVarP(&exportToFile, "file", "f", "", "Export to file instead of stdout")

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	if err := cli.ValidateOutputFormat(flagOutput); err != nil {
		return err
	}
	format := flagOutput
	if cli.OutputFormat(format) == cli.FormatTable {
		format = string(cli.FormatJSON)
	}

	ctx, err := NewContext()
	if err != nil {
		return err
	}
	session, err := ctx.LoadedSession(cmd.Context())
	if err != nil {
		return err
	}

	data := session.Record().Flatten()

	if exportToFile != "" {
		file, err := os.Create(exportToFile)
		if err != nil {
			return fmt.Errorf("create %s: %w", exportToFile, err)
		}
		defer file.Close()

		if err := cli.OutputResults(file, format, data); err != nil {
			return fmt.Errorf("format output: %w", err)
		}
		cli.PrintSuccess("Settings exported to: %s (%s format)", exportToFile, format)
		return nil
	}

	return cli.OutputResults(cmd.OutOrStdout(), format, data)
}
