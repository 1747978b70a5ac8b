package editor

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nickbouwhuis/PowerDNS-Admin/pkg/client"
	"github.com/nickbouwhuis/PowerDNS-Admin/pkg/models"
	"github.com/nickbouwhuis/PowerDNS-Admin/pkg/rules"
)

// echoServer answers loads with the given legacy payload and saves by
// echoing the posted record back, counting every request
type echoServer struct {
	srv    *httptest.Server
	legacy map[string]any
	hits   atomic.Int32
}

func newEchoServer(t *testing.T, legacy map[string]any) *echoServer {
	t.Helper()
	es := &echoServer{legacy: legacy}
	es.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		es.hits.Add(1)
		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}

		if req["commit"] == float64(1) {
			dataStr, _ := req["data"].(string)
			var inner map[string]any
			if err := json.Unmarshal([]byte(dataStr), &inner); err != nil {
				t.Errorf("save data is not a JSON string: %v", err)
			}
			json.NewEncoder(w).Encode(map[string]any{
				"status": 1,
				"data":   inner,
			})
			return
		}

		json.NewEncoder(w).Encode(map[string]any{
			"status": 1,
			"payload": map[string]any{
				"legacy":   es.legacy,
				"settings": map[string]any{"server": map[string]any{"version": "4.8.0"}},
			},
		})
	}))
	t.Cleanup(es.srv.Close)
	return es
}

func newTestSession(t *testing.T, es *echoServer, opts Options) *Session {
	t.Helper()
	if opts.Client == nil && es != nil {
		opts.Client = client.New(es.srv.URL, "tok", time.Second)
	}
	return New(models.AuthSchema(), rules.AuthEngine(), opts)
}

func TestNewMergesInitial(t *testing.T) {
	s := newTestSession(t, newEchoServer(t, nil), Options{
		Initial: map[string]any{"pwd_min_len": float64(14)},
	})

	if got := s.Record().Int("pwd_min_len"); got != 14 {
		t.Errorf("pwd_min_len = %d, want 14", got)
	}
	if !s.Record().Bool("local_db_enabled") {
		t.Error("untouched fields should hold their defaults")
	}
	if s.Dirty() {
		t.Error("a fresh session should not be dirty")
	}
	if !s.Valid() {
		t.Error("defaults with a benign override should validate")
	}
}

func TestSetFieldClearsOutcome(t *testing.T) {
	es := newEchoServer(t, map[string]any{"pwd_min_len": 12})
	s := newTestSession(t, es, Options{})

	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Outcome() != OutcomeLoaded {
		t.Fatalf("outcome = %v, want OutcomeLoaded", s.Outcome())
	}

	if err := s.SetField("signup_enabled", false); err != nil {
		t.Fatalf("SetField: %v", err)
	}
	if s.Outcome() != OutcomeNone {
		t.Errorf("outcome after edit = %v, want OutcomeNone", s.Outcome())
	}
	if !s.Dirty() {
		t.Error("edited session should be dirty")
	}
}

func TestLoadAppliesLegacyAndSettings(t *testing.T) {
	es := newEchoServer(t, map[string]any{
		"pwd_min_len":  float64(16),
		"ldap_enabled": "true",
		"undocumented": "kept",
	})
	s := newTestSession(t, es, Options{})

	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got := s.Record().Int("pwd_min_len"); got != 16 {
		t.Errorf("pwd_min_len = %d, want 16", got)
	}
	if !s.Record().Bool("ldap_enabled") {
		t.Error("string bool from the wire should coerce")
	}
	if got := s.Record().Flatten()["undocumented"]; got != "kept" {
		t.Errorf("unknown key = %v, want kept verbatim", got)
	}
	if s.Settings() == nil {
		t.Error("structured settings tree should be retained")
	}
	if s.Dirty() {
		t.Error("a just-loaded session is clean")
	}
}

func TestSaveRefusedWhenInvalid(t *testing.T) {
	es := newEchoServer(t, nil)
	s := newTestSession(t, es, Options{})

	// ldap on with an empty uri is invalid
	if err := s.SetField("ldap_enabled", true); err != nil {
		t.Fatalf("SetField: %v", err)
	}
	if s.Valid() {
		t.Fatal("record should be invalid")
	}

	if _, ok := s.BeginSave(); ok {
		t.Error("BeginSave should refuse an invalid record")
	}
	err := s.Save(context.Background())
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("Save err = %v, want ErrInvalid", err)
	}
	if got := es.hits.Load(); got != 0 {
		t.Errorf("refused save still made %d requests", got)
	}
}

func TestSaveHappyPath(t *testing.T) {
	es := newEchoServer(t, nil)
	s := newTestSession(t, es, Options{})

	if err := s.SetField("pwd_min_len", 20); err != nil {
		t.Fatalf("SetField: %v", err)
	}
	if err := s.Save(context.Background()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if got := es.hits.Load(); got != 1 {
		t.Errorf("save made %d requests, want exactly 1", got)
	}
	if s.Outcome() != OutcomeSaved {
		t.Errorf("outcome = %v, want OutcomeSaved", s.Outcome())
	}
	if s.Dirty() {
		t.Error("saved session should be clean")
	}
}

func TestSaveRoundTripLeavesRecordEqual(t *testing.T) {
	es := newEchoServer(t, nil)
	s := newTestSession(t, es, Options{})
	if err := s.SetField("github_oauth_key", "k"); err != nil {
		t.Fatalf("SetField: %v", err)
	}

	before := s.Record().Clone()
	if err := s.Save(context.Background()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !s.Record().Equal(before) {
		t.Error("echoed save should leave the record equal to the pre-save state")
	}
}

func TestSaveDuringLoadRefused(t *testing.T) {
	es := newEchoServer(t, nil)
	s := newTestSession(t, es, Options{})

	if _, ok := s.BeginLoad(); !ok {
		t.Fatal("BeginLoad refused")
	}
	if _, ok := s.BeginSave(); ok {
		t.Error("save during an outstanding load must be refused")
	}
	if _, ok := s.BeginLoad(); ok {
		t.Error("second load during an outstanding load must be refused")
	}
	if s.State() != StateLoading {
		t.Errorf("state = %v, want StateLoading", s.State())
	}
}

func TestStaleResponseDiscarded(t *testing.T) {
	es := newEchoServer(t, nil)
	s := newTestSession(t, es, Options{})

	tok1, ok := s.BeginLoad()
	if !ok {
		t.Fatal("BeginLoad refused")
	}
	if !s.ApplyLoad(tok1, nil, errors.New("timeout")) {
		t.Fatal("first response should apply")
	}
	if s.Outcome() != OutcomeLoadFailed {
		t.Fatalf("outcome = %v, want OutcomeLoadFailed", s.Outcome())
	}

	tok2, ok := s.BeginLoad()
	if !ok {
		t.Fatal("second BeginLoad refused")
	}
	if tok2 <= tok1 {
		t.Fatalf("tokens must increase: %d then %d", tok1, tok2)
	}

	// the first request's response finally arrives: stale, discarded
	stale := &client.LoadResult{Legacy: map[string]any{"pwd_min_len": 99}}
	if s.ApplyLoad(tok1, stale, nil) {
		t.Error("stale response should be discarded")
	}
	if s.State() != StateLoading {
		t.Error("discarding must not complete the outstanding request")
	}
	if got := s.Record().Int("pwd_min_len"); got != 10 {
		t.Errorf("stale payload mutated the record: pwd_min_len = %d", got)
	}

	if !s.ApplyLoad(tok2, &client.LoadResult{Legacy: map[string]any{"pwd_min_len": 15}}, nil) {
		t.Fatal("current response should apply")
	}
	if got := s.Record().Int("pwd_min_len"); got != 15 {
		t.Errorf("pwd_min_len = %d, want 15", got)
	}
}

func TestLoadFailureMutatesNothing(t *testing.T) {
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"status":   0,
			"messages": []string{"Session expired"},
		})
	}))
	defer failing.Close()

	s := New(models.AuthSchema(), rules.AuthEngine(), Options{
		Client: client.New(failing.URL, "tok", time.Second),
	})
	before := s.Record().Clone()

	err := s.Load(context.Background())
	if err == nil {
		t.Fatal("Load should fail")
	}
	if !s.Record().Equal(before) {
		t.Error("failed load must not touch the record")
	}
	if s.Outcome() != OutcomeLoadFailed {
		t.Errorf("outcome = %v, want OutcomeLoadFailed", s.Outcome())
	}
	if len(s.Messages()) != 1 || s.Messages()[0] != "Session expired" {
		t.Errorf("messages = %v", s.Messages())
	}
	if s.State() != StateIdle {
		t.Errorf("state = %v, want StateIdle", s.State())
	}
}

func TestSaveFailureKeepsEdits(t *testing.T) {
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"status":   0,
			"messages": []string{"Unacceptable"},
		})
	}))
	defer failing.Close()

	s := New(models.AuthSchema(), rules.AuthEngine(), Options{
		Client: client.New(failing.URL, "tok", time.Second),
	})
	if err := s.SetField("pwd_min_len", 33); err != nil {
		t.Fatalf("SetField: %v", err)
	}

	if err := s.Save(context.Background()); err == nil {
		t.Fatal("Save should fail")
	}
	if s.Outcome() != OutcomeSaveFailed {
		t.Errorf("outcome = %v, want OutcomeSaveFailed", s.Outcome())
	}
	if got := s.Record().Int("pwd_min_len"); got != 33 {
		t.Errorf("failed save must keep the edit, pwd_min_len = %d", got)
	}
	if !s.Dirty() {
		t.Error("failed save leaves the session dirty")
	}
}

func TestOfflineSessionRefusesIO(t *testing.T) {
	s := New(models.AuthSchema(), rules.AuthEngine(), Options{})

	if _, ok := s.BeginLoad(); ok {
		t.Error("BeginLoad without a client should refuse")
	}
	if err := s.Save(context.Background()); !errors.Is(err, ErrNotReady) {
		t.Errorf("Save err = %v, want ErrNotReady", err)
	}
}
