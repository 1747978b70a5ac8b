package rules

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/nickbouwhuis/PowerDNS-Admin/pkg/models"
)

// CheckKind enumerates the constraint families a rule can apply
type CheckKind int

const (
	CheckRequired CheckKind = iota
	CheckMinLen
	CheckMaxLen
	CheckIntRange
	CheckUUID
	CheckURL
	CheckOneOf
	CheckMutuallyExclusive
	CheckAtLeastOneEnabled
)

// Checker is a constraint as data: kind plus the parameters the kind
// needs. Rules carry checkers instead of closures so the table can be
// inspected and reported on.
type Checker struct {
	Kind     CheckKind
	Min, Max int
	Options  []string
	Peer     string
	Group    []string
}

func Required() Checker { return Checker{Kind: CheckRequired} }

func MinLen(n int) Checker { return Checker{Kind: CheckMinLen, Min: n} }

func MaxLen(n int) Checker { return Checker{Kind: CheckMaxLen, Max: n} }

func IntRange(min, max int) Checker { return Checker{Kind: CheckIntRange, Min: min, Max: max} }

func UUID() Checker { return Checker{Kind: CheckUUID} }

func URL() Checker { return Checker{Kind: CheckURL} }

func OneOf(options ...string) Checker {
	return Checker{Kind: CheckOneOf, Options: options}
}
func MutuallyExclusive(peer string) Checker {
	return Checker{Kind: CheckMutuallyExclusive, Peer: peer}
}
func AtLeastOneEnabled(group ...string) Checker {
	return Checker{Kind: CheckAtLeastOneEnabled, Group: group}
}

// passes evaluates the checker against one field of the record.
// Emptiness is handled by the caller: value-shape checks are only
// invoked on non-empty values, Required is the one kind that looks at
// emptiness itself.
func (c Checker) passes(r *models.Record, field string) bool {
	switch c.Kind {
	case CheckRequired:
		return !isEmpty(r, field)
	case CheckMinLen:
		return len(r.String(field)) >= c.Min
	case CheckMaxLen:
		return len(r.String(field)) <= c.Max
	case CheckIntRange:
		n := r.Int(field)
		return n >= c.Min && n <= c.Max
	case CheckUUID:
		return validIdentifier(r.String(field))
	case CheckURL:
		return validURL(r.String(field))
	case CheckOneOf:
		v := r.String(field)
		for _, opt := range c.Options {
			if v == opt {
				return true
			}
		}
		return false
	case CheckMutuallyExclusive:
		return !(r.Bool(field) && r.Bool(c.Peer))
	case CheckAtLeastOneEnabled:
		for _, name := range c.Group {
			if r.Bool(name) {
				return true
			}
		}
		return false
	default:
		return true
	}
}

// valueShaped reports whether the checker inspects the field's value
// and should therefore be skipped on empty input
func (c Checker) valueShaped() bool {
	switch c.Kind {
	case CheckMinLen, CheckMaxLen, CheckUUID, CheckURL, CheckOneOf:
		return true
	default:
		return false
	}
}

// defaultMessage is used when a rule carries no message of its own
func (c Checker) defaultMessage() string {
	switch c.Kind {
	case CheckRequired:
		return "This field is required"
	case CheckMinLen:
		return fmt.Sprintf("Must be at least %d characters", c.Min)
	case CheckMaxLen:
		return fmt.Sprintf("Must be at most %d characters", c.Max)
	case CheckIntRange:
		return fmt.Sprintf("Must be between %d and %d", c.Min, c.Max)
	case CheckUUID:
		return "Must be a UUID or a numeric ID"
	case CheckURL:
		return "Must be a valid URL"
	case CheckOneOf:
		return "Must be one of: " + strings.Join(c.Options, ", ")
	case CheckMutuallyExclusive:
		return "These options cannot be enabled together"
	case CheckAtLeastOneEnabled:
		return "At least one option must be enabled"
	default:
		return "Invalid value"
	}
}

// isEmpty treats unset values and blank strings as empty. Bool and
// int cells always hold a value, so Required never fires on them.
func isEmpty(r *models.Record, field string) bool {
	v, ok := r.Get(field)
	if !ok || v == nil {
		return true
	}
	if s, isStr := v.(string); isStr {
		return strings.TrimSpace(s) == ""
	}
	return false
}

// validIdentifier accepts the hyphenated RFC 4122 form, any version 1
// through 5, case-insensitive, or a bare unsigned decimal integer the
// server hands out for legacy group IDs
func validIdentifier(s string) bool {
	if isDecimal(s) {
		return true
	}
	if len(s) != 36 {
		return false
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return false
	}
	if u.Variant() != uuid.RFC4122 {
		return false
	}
	v := u.Version()
	return v >= 1 && v <= 5
}

func isDecimal(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// validURL accepts absolute http(s) URLs plus the ldap schemes the
// directory URI field uses
func validURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	switch u.Scheme {
	case "http", "https", "ldap", "ldaps":
		return u.Host != ""
	default:
		return false
	}
}
