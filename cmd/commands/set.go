package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nickbouwhuis/PowerDNS-Admin/internal/cli"
)

var (
	setDryRun bool
)

// NewSetCommand creates the set command
func NewSetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <field>=<value> ...",
		Short: "Change settings and save them to the server",
		Long: `Load the current settings, apply the given changes, validate the
result and save it back. Nothing is saved when validation fails.

Changes are given as field=value assignments or as alternating
field value pairs; the two forms cannot be mixed. Values are
coerced to the field's type: booleans accept true/yes/on/1, and
numbers must be whole.

Examples:
  # Enable LDAP and point it at a directory
  pdnsadmin set ldap_enabled=true ldap_uri=ldaps://ds.example.com

  # The pair form keeps shell quoting simple for filter values
  pdnsadmin set ldap_filter_basic '(objectClass=inetOrgPerson)'

  # Check what would change without saving
  pdnsadmin set pwd_min_len=14 --dry-run

  # Skip the confirmation prompt in scripts
  pdnsadmin set signup_enabled=false --yes`,
		Args: cobra.MinimumNArgs(1),
		RunE: runSet,
	}

	cmd.Flags().BoolVar(&setDryRun, "dry-run", false, "Validate the changes without saving")

	return cmd
}

func runSet(cmd *cobra.Command, args []string) error {
	ctx, err := NewContext()
	if err != nil {
		return err
	}

	assignments, err := cli.ParseAssignments(args)
	if err != nil {
		return err
	}

	schema := ctx.Session().Schema()
	for _, a := range assignments {
		if err := cli.ValidateFieldName(schema, a.Field); err != nil {
			return err
		}
	}

	session, err := ctx.LoadedSession(cmd.Context())
	if err != nil {
		return err
	}

	for _, a := range assignments {
		before := cli.FormatValue(session.Record().Value(a.Field, nil))
		if err := session.SetField(a.Field, a.Value); err != nil {
			return fmt.Errorf("set %s: %w", a.Field, err)
		}
		after := cli.FormatValue(session.Record().Value(a.Field, nil))
		if before != after {
			cli.PrintInfo("%s: %s → %s", a.Field, before, after)
		}
	}

	if results := session.Results(); !results.OK() {
		printViolations(cmd, results, schema)
		return fmt.Errorf("%d field(s) failed validation, nothing saved", results.Count())
	}

	if setDryRun {
		cli.PrintSuccess("Validation passed (dry run, nothing saved)")
		return nil
	}

	if !session.Dirty() {
		cli.PrintInfo("No changes to save")
		return nil
	}

	prompt := fmt.Sprintf("Save %d change(s) to %s?", len(assignments), ctx.Config.EndpointURL())
	ok, err := cli.Confirm(prompt, false)
	if err != nil {
		return err
	}
	if !ok {
		cli.PrintInfo("Aborted, nothing saved")
		return nil
	}

	if err := session.Save(cmd.Context()); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	cli.PrintSuccess("Settings saved")

	return nil
}
