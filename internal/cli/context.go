package cli

import (
	"context"
	"fmt"

	"github.com/nickbouwhuis/PowerDNS-Admin/pkg/config"
	"github.com/nickbouwhuis/PowerDNS-Admin/pkg/editor"
	"github.com/nickbouwhuis/PowerDNS-Admin/pkg/models"
	"github.com/nickbouwhuis/PowerDNS-Admin/pkg/rules"
)

// CommandContext carries what every command needs: the resolved
// configuration and a lazily built session over the authentication
// schema.
type CommandContext struct {
	Config  *config.Config
	session *editor.Session
}

// NewCommandContext loads the configuration; an empty path means the
// default location
func NewCommandContext(configPath string) (*CommandContext, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	return &CommandContext{Config: cfg}, nil
}

// Session returns the shared session, building it on first use
func (c *CommandContext) Session() *editor.Session {
	if c.session == nil {
		c.session = editor.New(models.AuthSchema(), rules.AuthEngine(), editor.Options{
			Client: c.Config.NewClient(),
		})
	}
	return c.session
}

// RequireEndpoint fails early for commands that must talk to the server
func (c *CommandContext) RequireEndpoint() error {
	if c.Config.EndpointURL() == "" {
		return fmt.Errorf("no server configured: set server in %s or PDNSADMIN_SERVER", config.DefaultPath())
	}
	if c.Config.CSRFToken == "" {
		return fmt.Errorf("no CSRF token configured: set csrf_token in %s or PDNSADMIN_CSRF_TOKEN", config.DefaultPath())
	}
	return nil
}

// LoadedSession fetches the current server values and returns the
// session holding them. Notices the server attaches to a successful
// load go to stderr so they survive piped output.
func (c *CommandContext) LoadedSession(ctx context.Context) (*editor.Session, error) {
	if err := c.RequireEndpoint(); err != nil {
		return nil, err
	}
	s := c.Session()
	if err := s.Load(ctx); err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	for _, msg := range s.Messages() {
		PrintWarning("server: %s", msg)
	}
	return s, nil
}
