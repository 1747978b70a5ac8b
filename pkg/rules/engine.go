package rules

import (
	"sort"

	"github.com/nickbouwhuis/PowerDNS-Admin/pkg/models"
)

// Rule binds a checker to a field under a condition. When is nil for
// unconditional rules. Message overrides the checker's default text.
type Rule struct {
	Field   string
	When    Predicate
	Check   Checker
	Message string
}

func (r Rule) message() string {
	if r.Message != "" {
		return r.Message
	}
	return r.Check.defaultMessage()
}

// Engine evaluates a flat rule table against a record. Evaluation is
// pure and batch: every rule runs on every pass, callers re-evaluate
// after each mutation.
type Engine struct {
	rules []Rule
}

func NewEngine(rules ...Rule) *Engine {
	return &Engine{rules: rules}
}

// Rules returns the table for inspection
func (e *Engine) Rules() []Rule {
	return e.rules
}

// Evaluate runs the whole table. A rule fires when its predicate
// holds and the check fails; value-shape checks are skipped on empty
// values so emptiness is only ever reported by Required.
func (e *Engine) Evaluate(r *models.Record) Results {
	res := Results{byField: make(map[string][]string)}
	for _, rule := range e.rules {
		if rule.When != nil && !rule.When(r) {
			continue
		}
		if rule.Check.valueShaped() && isEmpty(r, rule.Field) {
			continue
		}
		if !rule.Check.passes(r, rule.Field) {
			res.add(rule.Field, rule.message())
		}
	}
	return res
}

// Results holds the violations of one evaluation pass, keyed by field
type Results struct {
	byField map[string][]string
}

func (r *Results) add(field, message string) {
	for _, m := range r.byField[field] {
		if m == message {
			return
		}
	}
	r.byField[field] = append(r.byField[field], message)
}

// OK reports whether the pass found no violations
func (r Results) OK() bool {
	return len(r.byField) == 0
}

// Count returns the number of fields carrying violations
func (r Results) Count() int {
	return len(r.byField)
}

// Messages returns the violation texts for a field, nil when clean
func (r Results) Messages(field string) []string {
	return r.byField[field]
}

// Fields returns the violating field names, sorted
func (r Results) Fields() []string {
	out := make([]string, 0, len(r.byField))
	for f := range r.byField {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// TabErrors maps the violations onto the tab tree: the leaf tab path
// of every violating field, plus its parent path, ends up in the set.
// The set is derived on demand and never stored.
func (r Results) TabErrors(tabs models.Tabs, schema *models.Schema) map[string]bool {
	out := make(map[string]bool)
	for field := range r.byField {
		f, ok := schema.Lookup(field)
		if !ok {
			continue
		}
		tab, ok := tabs.Find(f.Tab)
		if !ok {
			continue
		}
		if tab.Parent != "" {
			out[tab.Parent] = true
			out[tab.Parent+"/"+tab.ID] = true
		} else {
			out[tab.ID] = true
		}
	}
	return out
}

// Placement says where a field's violation text is rendered
type Placement int

const (
	// PlacementInline renders the message directly under the field
	PlacementInline Placement = iota
	// PlacementGroup renders the message after a whole radio group
	PlacementGroup
	// PlacementFooter renders the message in the pane footer slot
	PlacementFooter
)

// footerFields routes fields whose messages concern the whole form
// rather than one input
var footerFields = map[string]bool{
	"local_db_enabled": true,
}

// PlacementFor resolves the error placement of a field: choice fields
// render as radio groups and get group placement, fields in the
// footer table get the footer slot, everything else is inline
func PlacementFor(f models.Field) Placement {
	if footerFields[f.Name] {
		return PlacementFooter
	}
	if len(f.Options) > 0 {
		return PlacementGroup
	}
	return PlacementInline
}
