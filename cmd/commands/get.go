package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nickbouwhuis/PowerDNS-Admin/internal/cli"
)

// NewGetCommand creates the get command
func NewGetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <field>",
		Short: "Print a single setting value",
		Long: `Print the raw value of one setting, for use in scripts.

Unlike show, get never masks secrets.

Examples:
  pdnsadmin get ldap_uri
  pdnsadmin get pwd_min_len
  pdnsadmin get google_oauth_client_id -o json`,
		Args: cobra.ExactArgs(1),
		RunE: runGet,
	}

	return cmd
}

func runGet(cmd *cobra.Command, args []string) error {
	if err := cli.ValidateOutputFormat(flagOutput); err != nil {
		return err
	}

	ctx, err := NewContext()
	if err != nil {
		return err
	}

	name := args[0]
	if err := cli.ValidateFieldName(ctx.Session().Schema(), name); err != nil {
		return err
	}

	session, err := ctx.LoadedSession(cmd.Context())
	if err != nil {
		return err
	}

	value, _ := session.Record().Get(name)

	switch cli.OutputFormat(flagOutput) {
	case cli.FormatJSON, cli.FormatYAML:
		return cli.OutputResults(cmd.OutOrStdout(), flagOutput, map[string]any{name: value})
	default:
		fmt.Fprintln(cmd.OutOrStdout(), cli.FormatValue(value))
		return nil
	}
}
