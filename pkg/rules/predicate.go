package rules

import "github.com/nickbouwhuis/PowerDNS-Admin/pkg/models"

// Predicate decides whether a rule applies to the current record state
type Predicate func(*models.Record) bool

// Always applies the rule unconditionally
func Always(*models.Record) bool { return true }

// FieldTrue holds when the named bool field is true
func FieldTrue(name string) Predicate {
	return func(r *models.Record) bool {
		return r.Bool(name)
	}
}

// Enabled holds when the provider's toggle is on. Providers are the
// short keys used by the tab tree: local, ldap, google, github,
// azure, oidc.
func Enabled(provider string) Predicate {
	return FieldTrue(ToggleField(provider))
}

// AutoConfigureEnabled holds when the provider's auto-configure
// toggle is on
func AutoConfigureEnabled(provider string) Predicate {
	return FieldTrue(provider + "_oauth_auto_configure")
}

// AutoConfigureDisabled holds when the provider's auto-configure
// toggle is off
func AutoConfigureDisabled(provider string) Predicate {
	return Not(AutoConfigureEnabled(provider))
}

// FieldEquals holds when the named field's string value matches
func FieldEquals(name, value string) Predicate {
	return func(r *models.Record) bool {
		return r.String(name) == value
	}
}

// And holds when every predicate holds
func And(preds ...Predicate) Predicate {
	return func(r *models.Record) bool {
		for _, p := range preds {
			if !p(r) {
				return false
			}
		}
		return true
	}
}

// Not inverts a predicate
func Not(p Predicate) Predicate {
	return func(r *models.Record) bool {
		return !p(r)
	}
}

// ToggleField maps a provider key to its enable-toggle field name
func ToggleField(provider string) string {
	switch provider {
	case "local":
		return "local_db_enabled"
	case "ldap":
		return "ldap_enabled"
	default:
		return provider + "_oauth_enabled"
	}
}

// ProviderToggles lists the enable-toggle fields of every provider,
// in tab order
func ProviderToggles() []string {
	return []string{
		"local_db_enabled",
		"ldap_enabled",
		"google_oauth_enabled",
		"github_oauth_enabled",
		"azure_oauth_enabled",
		"oidc_oauth_enabled",
	}
}
