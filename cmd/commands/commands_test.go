package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/nickbouwhuis/PowerDNS-Admin/internal/cli"
	"github.com/nickbouwhuis/PowerDNS-Admin/pkg/models"
)

type serverState struct {
	mu        sync.Mutex
	saves     int
	lastSaved map[string]any
}

func (s *serverState) recordSave(data map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	s.lastSaved = data
}

func (s *serverState) saveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

func (s *serverState) savedRecord() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSaved
}

// newSettingsServer fakes the admin settings endpoint: loads answer
// with the given legacy map, saves echo the posted record back.
func newSettingsServer(t *testing.T, legacy map[string]any) (*httptest.Server, *serverState) {
	t.Helper()
	state := &serverState{}

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/admin/setting/authentication/api", r.URL.Path)

		var req map[string]any
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&req)) {
			return
		}
		assert.Equal(t, "test-token", req["_csrf_token"])

		w.Header().Set("Content-Type", "application/json")
		if _, saving := req["commit"]; saving {
			var data map[string]any
			if !assert.NoError(t, json.Unmarshal([]byte(req["data"].(string)), &data)) {
				return
			}
			state.recordSave(data)
			json.NewEncoder(w).Encode(map[string]any{
				"status":   1,
				"messages": []string{"Saved"},
				"data":     data,
			})
			return
		}

		json.NewEncoder(w).Encode(map[string]any{
			"status":   1,
			"messages": []string{},
			"payload": map[string]any{
				"legacy": legacy,
				"settings": map[string]any{
					"pdns_version": "4.7.3",
					"dnssec":       true,
				},
			},
		})
	}))
	t.Cleanup(ts.Close)

	return ts, state
}

func writeConfig(t *testing.T, serverURL string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := fmt.Sprintf("server: %s\ncsrf_token: test-token\n", serverURL)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

// runCommand executes a subcommand under a fresh root so the shared
// flags reset to their defaults between tests
func runCommand(t *testing.T, sub *cobra.Command, args ...string) (string, error) {
	t.Helper()
	root := &cobra.Command{Use: "pdnsadmin", SilenceUsage: true, SilenceErrors: true}
	RegisterGlobalFlags(root)
	root.AddCommand(sub)

	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)

	err := root.Execute()
	return buf.String(), err
}

func TestShowCommand(t *testing.T) {
	legacy := map[string]any{
		"ldap_enabled":        true,
		"ldap_uri":            "ldaps://ds.example.com",
		"ldap_admin_password": "hunter2",
		"pwd_min_len":         12,
	}

	tests := []struct {
		name     string
		args     []string
		wantErr  bool
		errMsg   string
		contains []string
		excludes []string
	}{
		{
			name:     "table masks secrets",
			args:     []string{"show"},
			contains: []string{"FIELD", "VALUE", "TAB", "ldap_uri", "ldaps://ds.example.com", cli.SecretMask},
			excludes: []string{"hunter2"},
		},
		{
			name:     "json reveals secrets on request",
			args:     []string{"show", "-o", "json", "--secrets"},
			contains: []string{`"ldap_admin_password": "hunter2"`, `"ldap_uri": "ldaps://ds.example.com"`},
		},
		{
			name:     "tab filter narrows the output",
			args:     []string{"show", "--tab", "authentication/ldap"},
			contains: []string{"ldap_base_dn", "ldap_filter_basic"},
			excludes: []string{"signup_enabled", "google_oauth_client_id"},
		},
		{
			name:     "parent tab covers its sub-tabs",
			args:     []string{"show", "--tab", "authentication"},
			contains: []string{"signup_enabled", "ldap_uri", "azure_oauth_key"},
		},
		{
			name:     "server tab dumps the raw tree",
			args:     []string{"show", "--tab", "server"},
			contains: []string{"pdns_version: 4.7.3", "dnssec: true"},
		},
		{
			name:    "rejects an unknown tab",
			args:    []string{"show", "--tab", "bogus"},
			wantErr: true,
			errMsg:  `unknown tab "bogus"`,
		},
		{
			name:    "rejects a bad output format",
			args:    []string{"show", "-o", "xml"},
			wantErr: true,
			errMsg:  "invalid output format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, _ := newSettingsServer(t, legacy)
			cfgPath := writeConfig(t, ts.URL)

			args := append(tt.args, "--config", cfgPath, "-q")
			out, err := runCommand(t, NewShowCommand(), args...)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				require.NoError(t, err)
			}
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
			for _, not := range tt.excludes {
				assert.NotContains(t, out, not)
			}
		})
	}
}

func TestGetCommand(t *testing.T) {
	legacy := map[string]any{
		"ldap_admin_password": "hunter2",
		"pwd_min_len":         12,
	}

	t.Run("prints the raw value", func(t *testing.T) {
		ts, _ := newSettingsServer(t, legacy)
		out, err := runCommand(t, NewGetCommand(), "get", "pwd_min_len", "--config", writeConfig(t, ts.URL), "-q")
		require.NoError(t, err)
		assert.Equal(t, "12\n", out)
	})

	t.Run("never masks secrets", func(t *testing.T) {
		ts, _ := newSettingsServer(t, legacy)
		out, err := runCommand(t, NewGetCommand(), "get", "ldap_admin_password", "--config", writeConfig(t, ts.URL), "-q")
		require.NoError(t, err)
		assert.Equal(t, "hunter2\n", out)
	})

	t.Run("falls back to the default for omitted fields", func(t *testing.T) {
		ts, _ := newSettingsServer(t, legacy)
		out, err := runCommand(t, NewGetCommand(), "get", "pwd_min_lowercase", "--config", writeConfig(t, ts.URL), "-q")
		require.NoError(t, err)
		assert.Equal(t, "3\n", out)
	})

	t.Run("suggests nearby field names", func(t *testing.T) {
		ts, _ := newSettingsServer(t, legacy)
		_, err := runCommand(t, NewGetCommand(), "get", "ldap_filter", "--config", writeConfig(t, ts.URL), "-q")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "did you mean")
		assert.Contains(t, err.Error(), "ldap_filter_basic")
	})
}

func TestSetCommand(t *testing.T) {
	t.Run("saves valid changes", func(t *testing.T) {
		ts, state := newSettingsServer(t, map[string]any{})
		_, err := runCommand(t, NewSetCommand(),
			"set", "signup_enabled=false", "pwd_min_len=14",
			"--config", writeConfig(t, ts.URL), "-q", "-y")
		require.NoError(t, err)

		require.Equal(t, 1, state.saveCount())
		saved := state.savedRecord()
		assert.Equal(t, false, saved["signup_enabled"])
		assert.EqualValues(t, 14, saved["pwd_min_len"])
		assert.Equal(t, true, saved["local_db_enabled"])
	})

	t.Run("refuses to save invalid settings", func(t *testing.T) {
		ts, state := newSettingsServer(t, map[string]any{})
		out, err := runCommand(t, NewSetCommand(),
			"set", "ldap_enabled=true",
			"--config", writeConfig(t, ts.URL), "-q")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "nothing saved")
		assert.Equal(t, 0, state.saveCount())
		assert.Contains(t, out, "authentication/ldap:")
		assert.Contains(t, out, "ldap_uri")
	})

	t.Run("pair form with dry run saves nothing", func(t *testing.T) {
		ts, state := newSettingsServer(t, map[string]any{})
		_, err := runCommand(t, NewSetCommand(),
			"set", "ldap_filter_basic", "(objectClass=inetOrgPerson)", "--dry-run",
			"--config", writeConfig(t, ts.URL), "-q")
		require.NoError(t, err)
		assert.Equal(t, 0, state.saveCount())
	})

	t.Run("rejects mixed assignment forms", func(t *testing.T) {
		ts, _ := newSettingsServer(t, map[string]any{})
		_, err := runCommand(t, NewSetCommand(),
			"set", "signup_enabled=false", "pwd_min_len", "14", "--config", writeConfig(t, ts.URL), "-q")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "field=value assignments or field value pairs")
	})

	t.Run("rejects values of the wrong type", func(t *testing.T) {
		ts, state := newSettingsServer(t, map[string]any{})
		_, err := runCommand(t, NewSetCommand(),
			"set", "pwd_min_len=ten", "--config", writeConfig(t, ts.URL), "-q")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "set pwd_min_len")
		assert.Equal(t, 0, state.saveCount())
	})

	t.Run("skips saving when nothing changed", func(t *testing.T) {
		ts, state := newSettingsServer(t, map[string]any{})
		_, err := runCommand(t, NewSetCommand(),
			"set", "signup_enabled=true", "--config", writeConfig(t, ts.URL), "-q")
		require.NoError(t, err)
		assert.Equal(t, 0, state.saveCount())
	})
}

func TestValidateCommand(t *testing.T) {
	t.Run("passes on consistent settings", func(t *testing.T) {
		ts, _ := newSettingsServer(t, map[string]any{})
		_, err := runCommand(t, NewValidateCommand(), "validate", "--config", writeConfig(t, ts.URL), "-q")
		require.NoError(t, err)
	})

	t.Run("reports violations grouped by tab", func(t *testing.T) {
		ts, _ := newSettingsServer(t, map[string]any{"ldap_enabled": true})
		out, err := runCommand(t, NewValidateCommand(), "validate", "--config", writeConfig(t, ts.URL), "-q")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed validation")
		assert.Contains(t, out, "authentication/ldap:")
		assert.Contains(t, out, "✗ ldap_uri")
	})
}

func TestExportCommand(t *testing.T) {
	legacy := map[string]any{"ldap_admin_password": "hunter2"}

	t.Run("exports the full record as json", func(t *testing.T) {
		ts, _ := newSettingsServer(t, legacy)
		out, err := runCommand(t, NewExportCommand(), "export", "--config", writeConfig(t, ts.URL), "-q")
		require.NoError(t, err)

		var record map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &record))
		assert.Len(t, record, len(models.AuthSchema().Fields()))
		assert.Equal(t, "hunter2", record["ldap_admin_password"])
		assert.Equal(t, true, record["local_db_enabled"])
	})

	t.Run("writes yaml to a file", func(t *testing.T) {
		ts, _ := newSettingsServer(t, legacy)
		path := filepath.Join(t.TempDir(), "auth.yaml")

		_, err := runCommand(t, NewExportCommand(),
			"export", "-o", "yaml", "--file", path, "--config", writeConfig(t, ts.URL), "-q")
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		var record map[string]any
		require.NoError(t, yaml.Unmarshal(data, &record))
		assert.Contains(t, record, "signup_enabled")
		assert.Equal(t, "hunter2", record["ldap_admin_password"])
	})
}

func TestSelectFields(t *testing.T) {
	schema := models.AuthSchema()
	tabs := models.AuthTabs()

	all := selectFields(schema, tabs, "")
	assert.Len(t, all, len(schema.Fields()))

	ldap := selectFields(schema, tabs, "authentication/ldap")
	require.NotEmpty(t, ldap)
	for _, f := range ldap {
		assert.Equal(t, models.TabLDAP, f.Tab)
	}

	parent := selectFields(schema, tabs, "authentication")
	assert.Len(t, parent, len(all))

	assert.Empty(t, selectFields(schema, tabs, "server"))
}
