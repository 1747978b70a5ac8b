package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nickbouwhuis/PowerDNS-Admin/internal/cli"
	"github.com/nickbouwhuis/PowerDNS-Admin/pkg/models"
	"github.com/nickbouwhuis/PowerDNS-Admin/pkg/rules"
)

// NewValidateCommand creates the validate command
func NewValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the server's settings against the validation rules",
		Long: `Fetch the settings and run the full rule table against them.

Violations are grouped by tab. The command exits non-zero when any
rule fails, so it can gate automation.

Examples:
  pdnsadmin validate
  pdnsadmin validate --server https://dns.example.com --csrf-token $TOKEN`,
		Args: cobra.NoArgs,
		RunE: runValidate,
	}

	return cmd
}

func runValidate(cmd *cobra.Command, args []string) error {
	ctx, err := NewContext()
	if err != nil {
		return err
	}

	session, err := ctx.LoadedSession(cmd.Context())
	if err != nil {
		return err
	}

	results := session.Results()
	if results.OK() {
		cli.PrintSuccess("All settings valid")
		return nil
	}

	printViolations(cmd, results, session.Schema())
	return fmt.Errorf("%d field(s) failed validation", results.Count())
}

// printViolations writes the rule failures to stderr, grouped by tab
// in tab order
func printViolations(cmd *cobra.Command, results rules.Results, schema *models.Schema) {
	byTab := make(map[string][]string)
	for _, name := range results.Fields() {
		field, ok := schema.Lookup(name)
		if !ok {
			continue
		}
		for _, msg := range results.Messages(name) {
			byTab[field.Tab] = append(byTab[field.Tab], fmt.Sprintf("%s: %s", name, msg))
		}
	}

	out := cmd.ErrOrStderr()
	for _, tab := range models.AuthTabs() {
		if tab.Parent == "" {
			continue
		}
		lines := byTab[tab.ID]
		if len(lines) == 0 {
			continue
		}
		fmt.Fprintf(out, "%s/%s:\n", tab.Parent, tab.ID)
		for _, line := range lines {
			fmt.Fprintf(out, "  ✗ %s\n", line)
		}
	}
}
