package rules

const (
	msgAuthEnabled   = "At least one authentication method must be enabled"
	msgLDAPExclusive = "Group security and roles autoprovisioning are mutually exclusive"
)

// AuthEngine returns an engine loaded with the authentication rules
func AuthEngine() *Engine {
	return NewEngine(AuthRules()...)
}

// AuthRules is the validation table of the authentication settings
// form. One row per constraint; conditional requiredness is expressed
// through the When predicate, so the table stays flat.
func AuthRules() []Rule {
	ldapOn := Enabled("ldap")
	googleOn := Enabled("google")
	githubOn := Enabled("github")
	azureOn := Enabled("azure")
	oidcOn := Enabled("oidc")

	ldapSG := And(ldapOn, FieldTrue("ldap_sg_enabled"))
	ldapAuto := And(ldapOn, FieldTrue("autoprovisioning"))
	azureSG := And(azureOn, FieldTrue("azure_sg_enabled"))

	return []Rule{
		// at least one way to log in; the violation is attached to
		// every provider toggle and surfaced once in the footer
		{Field: "local_db_enabled", When: Always, Check: AtLeastOneEnabled(ProviderToggles()...), Message: msgAuthEnabled},
		{Field: "ldap_enabled", When: Always, Check: AtLeastOneEnabled(ProviderToggles()...), Message: msgAuthEnabled},
		{Field: "google_oauth_enabled", When: Always, Check: AtLeastOneEnabled(ProviderToggles()...), Message: msgAuthEnabled},
		{Field: "github_oauth_enabled", When: Always, Check: AtLeastOneEnabled(ProviderToggles()...), Message: msgAuthEnabled},
		{Field: "azure_oauth_enabled", When: Always, Check: AtLeastOneEnabled(ProviderToggles()...), Message: msgAuthEnabled},
		{Field: "oidc_oauth_enabled", When: Always, Check: AtLeastOneEnabled(ProviderToggles()...), Message: msgAuthEnabled},

		// local password policy
		{Field: "pwd_min_len", When: FieldTrue("pwd_enforce_characters"), Check: IntRange(1, 64)},
		{Field: "pwd_min_lowercase", When: FieldTrue("pwd_enforce_characters"), Check: IntRange(0, 64)},
		{Field: "pwd_min_uppercase", When: FieldTrue("pwd_enforce_characters"), Check: IntRange(0, 64)},
		{Field: "pwd_min_digits", When: FieldTrue("pwd_enforce_characters"), Check: IntRange(0, 64)},
		{Field: "pwd_min_special", When: FieldTrue("pwd_enforce_characters"), Check: IntRange(0, 64)},
		{Field: "pwd_min_complexity", When: FieldTrue("pwd_enforce_complexity"), Check: IntRange(0, 1000)},

		// ldap connection
		{Field: "ldap_type", When: ldapOn, Check: Required()},
		{Field: "ldap_type", When: ldapOn, Check: OneOf("ldap", "ad")},
		{Field: "ldap_uri", When: ldapOn, Check: Required()},
		{Field: "ldap_uri", When: ldapOn, Check: URL()},
		{Field: "ldap_base_dn", When: ldapOn, Check: Required()},
		{Field: "ldap_admin_username", When: ldapOn, Check: Required()},
		{Field: "ldap_admin_password", When: ldapOn, Check: Required()},
		{Field: "ldap_filter_basic", When: ldapOn, Check: Required()},
		{Field: "ldap_filter_username", When: ldapOn, Check: Required()},
		{Field: "ldap_domain", When: And(ldapOn, FieldEquals("ldap_type", "ad")), Check: Required()},

		// ldap group security
		{Field: "ldap_filter_group", When: ldapSG, Check: Required()},
		{Field: "ldap_filter_groupname", When: ldapSG, Check: Required()},
		{Field: "ldap_admin_group", When: ldapSG, Check: Required()},
		{Field: "ldap_user_group", When: ldapSG, Check: Required()},

		// ldap autoprovisioning
		{Field: "autoprovisioning_attribute", When: ldapAuto, Check: Required()},
		{Field: "urn_value", When: ldapAuto, Check: Required()},

		// group security and autoprovisioning exclude each other;
		// both toggles carry the violation
		{Field: "ldap_sg_enabled", When: Always, Check: MutuallyExclusive("autoprovisioning"), Message: msgLDAPExclusive},
		{Field: "autoprovisioning", When: Always, Check: MutuallyExclusive("ldap_sg_enabled"), Message: msgLDAPExclusive},

		// google oauth
		{Field: "google_oauth_client_id", When: googleOn, Check: Required()},
		{Field: "google_oauth_client_secret", When: googleOn, Check: Required()},
		{Field: "google_oauth_scope", When: googleOn, Check: Required()},
		{Field: "google_oauth_scope", When: googleOn, Check: MaxLen(255)},
		{Field: "google_oauth_metadata_url", When: And(googleOn, AutoConfigureEnabled("google")), Check: Required()},
		{Field: "google_oauth_metadata_url", When: And(googleOn, AutoConfigureEnabled("google")), Check: URL()},
		{Field: "google_base_url", When: And(googleOn, AutoConfigureDisabled("google")), Check: Required()},
		{Field: "google_base_url", When: And(googleOn, AutoConfigureDisabled("google")), Check: URL()},
		{Field: "google_token_url", When: And(googleOn, AutoConfigureDisabled("google")), Check: Required()},
		{Field: "google_token_url", When: And(googleOn, AutoConfigureDisabled("google")), Check: URL()},
		{Field: "google_authorize_url", When: And(googleOn, AutoConfigureDisabled("google")), Check: Required()},
		{Field: "google_authorize_url", When: And(googleOn, AutoConfigureDisabled("google")), Check: URL()},

		// github oauth
		{Field: "github_oauth_key", When: githubOn, Check: Required()},
		{Field: "github_oauth_secret", When: githubOn, Check: Required()},
		{Field: "github_oauth_scope", When: githubOn, Check: Required()},
		{Field: "github_oauth_scope", When: githubOn, Check: MaxLen(255)},
		{Field: "github_oauth_metadata_url", When: And(githubOn, AutoConfigureEnabled("github")), Check: Required()},
		{Field: "github_oauth_metadata_url", When: And(githubOn, AutoConfigureEnabled("github")), Check: URL()},
		{Field: "github_oauth_api_url", When: And(githubOn, AutoConfigureDisabled("github")), Check: Required()},
		{Field: "github_oauth_api_url", When: And(githubOn, AutoConfigureDisabled("github")), Check: URL()},
		{Field: "github_oauth_token_url", When: And(githubOn, AutoConfigureDisabled("github")), Check: Required()},
		{Field: "github_oauth_token_url", When: And(githubOn, AutoConfigureDisabled("github")), Check: URL()},
		{Field: "github_oauth_authorize_url", When: And(githubOn, AutoConfigureDisabled("github")), Check: Required()},
		{Field: "github_oauth_authorize_url", When: And(githubOn, AutoConfigureDisabled("github")), Check: URL()},

		// azure ad
		{Field: "azure_oauth_key", When: azureOn, Check: Required()},
		{Field: "azure_oauth_key", When: azureOn, Check: UUID()},
		{Field: "azure_oauth_secret", When: azureOn, Check: Required()},
		{Field: "azure_oauth_scope", When: azureOn, Check: Required()},
		{Field: "azure_oauth_scope", When: azureOn, Check: MaxLen(255)},
		{Field: "azure_oauth_metadata_url", When: And(azureOn, AutoConfigureEnabled("azure")), Check: Required()},
		{Field: "azure_oauth_metadata_url", When: And(azureOn, AutoConfigureEnabled("azure")), Check: URL()},
		{Field: "azure_oauth_api_url", When: And(azureOn, AutoConfigureDisabled("azure")), Check: Required()},
		{Field: "azure_oauth_api_url", When: And(azureOn, AutoConfigureDisabled("azure")), Check: URL()},
		{Field: "azure_oauth_token_url", When: And(azureOn, AutoConfigureDisabled("azure")), Check: Required()},
		{Field: "azure_oauth_token_url", When: And(azureOn, AutoConfigureDisabled("azure")), Check: URL()},
		{Field: "azure_oauth_authorize_url", When: And(azureOn, AutoConfigureDisabled("azure")), Check: Required()},
		{Field: "azure_oauth_authorize_url", When: And(azureOn, AutoConfigureDisabled("azure")), Check: URL()},

		// azure group security: required when enabled, and the IDs
		// must look like object IDs whenever present
		{Field: "azure_admin_group", When: azureSG, Check: Required()},
		{Field: "azure_user_group", When: azureSG, Check: Required()},
		{Field: "azure_admin_group", When: azureOn, Check: UUID()},
		{Field: "azure_operator_group", When: azureOn, Check: UUID()},
		{Field: "azure_user_group", When: azureOn, Check: UUID()},
		{Field: "azure_group_accounts_name", When: And(azureOn, FieldTrue("azure_group_accounts_enabled")), Check: Required()},

		// openid connect
		{Field: "oidc_oauth_key", When: oidcOn, Check: Required()},
		{Field: "oidc_oauth_secret", When: oidcOn, Check: Required()},
		{Field: "oidc_oauth_scope", When: oidcOn, Check: Required()},
		{Field: "oidc_oauth_scope", When: oidcOn, Check: MaxLen(255)},
		{Field: "oidc_oauth_metadata_url", When: And(oidcOn, AutoConfigureEnabled("oidc")), Check: Required()},
		{Field: "oidc_oauth_metadata_url", When: And(oidcOn, AutoConfigureEnabled("oidc")), Check: URL()},
		{Field: "oidc_oauth_api_url", When: And(oidcOn, AutoConfigureDisabled("oidc")), Check: Required()},
		{Field: "oidc_oauth_api_url", When: And(oidcOn, AutoConfigureDisabled("oidc")), Check: URL()},
		{Field: "oidc_oauth_token_url", When: And(oidcOn, AutoConfigureDisabled("oidc")), Check: Required()},
		{Field: "oidc_oauth_token_url", When: And(oidcOn, AutoConfigureDisabled("oidc")), Check: URL()},
		{Field: "oidc_oauth_authorize_url", When: And(oidcOn, AutoConfigureDisabled("oidc")), Check: Required()},
		{Field: "oidc_oauth_authorize_url", When: And(oidcOn, AutoConfigureDisabled("oidc")), Check: URL()},
		{Field: "oidc_oauth_username", When: oidcOn, Check: Required()},
		{Field: "oidc_oauth_username", When: oidcOn, Check: MaxLen(255)},
		{Field: "oidc_oauth_email", When: oidcOn, Check: Required()},
		{Field: "oidc_oauth_email", When: oidcOn, Check: MaxLen(255)},
		{Field: "oidc_oauth_firstname", When: oidcOn, Check: Required()},
		{Field: "oidc_oauth_firstname", When: oidcOn, Check: MaxLen(255)},
		{Field: "oidc_oauth_last_name", When: oidcOn, Check: Required()},
		{Field: "oidc_oauth_last_name", When: oidcOn, Check: MaxLen(255)},
	}
}
