// Package editor holds the synchronization session between the local
// settings record and the remote endpoint: load/save lifecycle,
// request tokens, outcome flags and dirty tracking. All methods are
// called from a single goroutine; the bubbletea update loop and the
// CLI both satisfy that by construction.
package editor

import (
	"context"
	"errors"

	"github.com/nickbouwhuis/PowerDNS-Admin/pkg/client"
	"github.com/nickbouwhuis/PowerDNS-Admin/pkg/logger"
	"github.com/nickbouwhuis/PowerDNS-Admin/pkg/models"
	"github.com/nickbouwhuis/PowerDNS-Admin/pkg/rules"
)

// State says what request, if any, is outstanding
type State int

const (
	StateIdle State = iota
	StateLoading
	StateSaving
)

// Outcome is the display result of the last completed attempt. The
// outcomes are mutually exclusive and cleared on the next edit.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeLoaded
	OutcomeLoadFailed
	OutcomeSaved
	OutcomeSaveFailed
)

// Refusal reasons for Begin calls, surfaced by the sync wrappers
var (
	ErrBusy     = errors.New("another request is in flight")
	ErrNotReady = errors.New("endpoint not configured")
	ErrInvalid  = errors.New("settings have validation errors")
)

// Options configures a new session
type Options struct {
	// Initial values merged over the schema defaults
	Initial map[string]any
	// AutoLoad asks the front end to fetch on startup
	AutoLoad bool
	// Client performs the endpoint IO; may be left nil for offline use
	Client *client.Client
}

// Session owns the record being edited and the state of its exchange
// with the endpoint
type Session struct {
	schema   *models.Schema
	engine   *rules.Engine
	client   *client.Client
	record   *models.Record
	snapshot *models.Record
	settings map[string]any
	results  rules.Results
	state    State
	outcome  Outcome
	messages []string
	token    uint64
	autoLoad bool
}

// New builds a session holding the schema defaults with opts.Initial
// merged on top, validated once
func New(schema *models.Schema, engine *rules.Engine, opts Options) *Session {
	s := &Session{
		schema:   schema,
		engine:   engine,
		client:   opts.Client,
		record:   schema.Defaults(),
		autoLoad: opts.AutoLoad,
	}
	if len(opts.Initial) > 0 {
		if err := s.record.Update(opts.Initial); err != nil {
			logger.Warn().Err(err).Msg("initial values partially applied")
		}
	}
	s.snapshot = s.record.Clone()
	s.results = engine.Evaluate(s.record)
	return s
}

// Record returns the record under edit. Mutate through SetField so
// validation and outcome state stay in step.
func (s *Session) Record() *models.Record { return s.record }

// Schema returns the field schema
func (s *Session) Schema() *models.Schema { return s.schema }

// Client returns the endpoint client, nil when offline
func (s *Session) Client() *client.Client { return s.client }

// Settings returns the read-only structured tree from the last load.
// It is display data; it is never validated or written back.
func (s *Session) Settings() map[string]any { return s.settings }

// Results returns the violations of the last validation pass
func (s *Session) Results() rules.Results { return s.results }

// State returns the in-flight state
func (s *Session) State() State { return s.state }

// Outcome returns the display outcome of the last completed attempt
func (s *Session) Outcome() Outcome { return s.outcome }

// Messages returns the server messages attached to the outcome
func (s *Session) Messages() []string { return s.messages }

// AutoLoad reports whether the front end should fetch on startup
func (s *Session) AutoLoad() bool { return s.autoLoad }

// Valid reports whether the record passes the rule table
func (s *Session) Valid() bool { return s.results.OK() }

// Dirty reports whether the record differs from the last loaded or
// saved state
func (s *Session) Dirty() bool { return !s.record.Equal(s.snapshot) }

// SetField is the sole edit path: it coerces and stores the value,
// clears the previous outcome and re-validates the whole form
func (s *Session) SetField(name string, value any) error {
	if err := s.record.Set(name, value); err != nil {
		return err
	}
	s.outcome = OutcomeNone
	s.messages = nil
	s.results = s.engine.Evaluate(s.record)
	return nil
}

// BeginLoad issues a load token. It refuses while another request is
// outstanding or without a configured client.
func (s *Session) BeginLoad() (uint64, bool) {
	if s.state != StateIdle {
		logger.Warn().Msg("load refused: request in flight")
		return 0, false
	}
	if !s.client.Ready() {
		logger.Warn().Msg("load refused: endpoint not configured")
		return 0, false
	}
	s.state = StateLoading
	s.outcome = OutcomeNone
	s.messages = nil
	s.token++
	return s.token, true
}

// BeginSave issues a save token. Besides the load preconditions it
// refuses while the record has validation errors, so an invalid form
// causes no request at all. A save attempted during a load is
// refused, never queued.
func (s *Session) BeginSave() (uint64, bool) {
	if s.state != StateIdle {
		logger.Warn().Msg("save refused: request in flight")
		return 0, false
	}
	if !s.client.Ready() {
		logger.Warn().Msg("save refused: endpoint not configured")
		return 0, false
	}
	if !s.results.OK() {
		logger.Warn().Int("fields", s.results.Count()).Msg("save refused: validation errors")
		return 0, false
	}
	s.state = StateSaving
	s.outcome = OutcomeNone
	s.messages = nil
	s.token++
	return s.token, true
}

// ApplyLoad completes a load attempt. Responses carrying a token
// other than the last issued one are stale and discarded; the return
// value reports whether the response was applied. On success the
// legacy payload is merged into the record over the defaults and the
// structured settings tree is retained for display.
func (s *Session) ApplyLoad(token uint64, res *client.LoadResult, err error) bool {
	if token != s.token || s.state != StateLoading {
		logger.Warn().Uint64("token", token).Uint64("current", s.token).Msg("stale load response discarded")
		return false
	}
	s.state = StateIdle
	if err != nil {
		s.outcome = OutcomeLoadFailed
		s.messages = failureMessages(err)
		logger.Error().Err(err).Msg("load failed")
		return true
	}
	if err := s.record.Update(res.Legacy); err != nil {
		logger.Warn().Err(err).Msg("load payload partially applied")
	}
	s.settings = res.Settings
	s.snapshot = s.record.Clone()
	s.results = s.engine.Evaluate(s.record)
	s.outcome = OutcomeLoaded
	s.messages = res.Messages
	logger.Debug().Int("fields", len(res.Legacy)).Msg("settings loaded")
	return true
}

// ApplySave completes a save attempt, mirroring ApplyLoad. On success
// the server's canonical data is merged back, so a round trip that
// echoes the record leaves it unchanged.
func (s *Session) ApplySave(token uint64, res *client.SaveResult, err error) bool {
	if token != s.token || s.state != StateSaving {
		logger.Warn().Uint64("token", token).Uint64("current", s.token).Msg("stale save response discarded")
		return false
	}
	s.state = StateIdle
	if err != nil {
		s.outcome = OutcomeSaveFailed
		s.messages = failureMessages(err)
		logger.Error().Err(err).Msg("save failed")
		return true
	}
	if err := s.record.Update(res.Data); err != nil {
		logger.Warn().Err(err).Msg("save response partially applied")
	}
	s.snapshot = s.record.Clone()
	s.results = s.engine.Evaluate(s.record)
	s.outcome = OutcomeSaved
	s.messages = res.Messages
	logger.Debug().Msg("settings saved")
	return true
}

// Load runs a full load synchronously, for CLI callers
func (s *Session) Load(ctx context.Context) error {
	token, ok := s.BeginLoad()
	if !ok {
		return s.refusal(false)
	}
	res, err := s.client.Load(ctx)
	s.ApplyLoad(token, res, err)
	return err
}

// Save runs a full save synchronously, for CLI callers
func (s *Session) Save(ctx context.Context) error {
	token, ok := s.BeginSave()
	if !ok {
		return s.refusal(true)
	}
	res, err := s.client.Save(ctx, s.record.Flatten())
	s.ApplySave(token, res, err)
	return err
}

func (s *Session) refusal(save bool) error {
	switch {
	case s.state != StateIdle:
		return ErrBusy
	case !s.client.Ready():
		return ErrNotReady
	case save && !s.results.OK():
		return ErrInvalid
	default:
		return ErrBusy
	}
}

func failureMessages(err error) []string {
	var statusErr *client.StatusError
	if errors.As(err, &statusErr) && len(statusErr.Messages) > 0 {
		return statusErr.Messages
	}
	return []string{err.Error()}
}
