package models

// Tab identifiers for the authentication editor
const (
	TabAuthentication = "authentication"
	TabServer         = "server"
	TabLocal          = "local"
	TabLDAP           = "ldap"
	TabGoogle         = "google"
	TabGithub         = "github"
	TabAzure          = "azure"
	TabOIDC           = "oidc"
)

// AuthTabs returns the tab tree of the authentication editor:
// per-provider sub-tabs under "authentication", plus a read-only
// "server" tab showing the structured settings the server reports.
// Icons are left to the presentation layer.
func AuthTabs() Tabs {
	return Tabs{
		{ID: TabAuthentication, Name: "Authentication", Default: true},
		{ID: TabLocal, Name: "Local", Parent: TabAuthentication, Default: true},
		{ID: TabLDAP, Name: "LDAP", Parent: TabAuthentication},
		{ID: TabGoogle, Name: "Google OAuth", Parent: TabAuthentication},
		{ID: TabGithub, Name: "GitHub OAuth", Parent: TabAuthentication},
		{ID: TabAzure, Name: "Azure AD", Parent: TabAuthentication},
		{ID: TabOIDC, Name: "OpenID Connect", Parent: TabAuthentication},
		{ID: TabServer, Name: "Server"},
	}
}

// AuthSchema returns the authentication settings schema. Field names
// and defaults mirror the server's settings registry; the editor never
// invents fields the server does not know.
func AuthSchema() *Schema {
	return NewSchema(
		// Local database authentication
		Field{Name: "local_db_enabled", Kind: KindBool, Default: true, Tab: TabLocal,
			Label: "Local DB Authentication"},
		Field{Name: "signup_enabled", Kind: KindBool, Default: true, Tab: TabLocal,
			Label: "Allow Users To Sign Up"},
		Field{Name: "pwd_enforce_characters", Kind: KindBool, Default: false, Tab: TabLocal,
			Label: "Enforce Character Requirements"},
		Field{Name: "pwd_min_len", Kind: KindInt, Default: 10, Tab: TabLocal,
			Label: "Minimum Password Length"},
		Field{Name: "pwd_min_lowercase", Kind: KindInt, Default: 3, Tab: TabLocal,
			Label: "Minimum Lowercase Characters"},
		Field{Name: "pwd_min_uppercase", Kind: KindInt, Default: 2, Tab: TabLocal,
			Label: "Minimum Uppercase Characters"},
		Field{Name: "pwd_min_digits", Kind: KindInt, Default: 2, Tab: TabLocal,
			Label: "Minimum Digits"},
		Field{Name: "pwd_min_special", Kind: KindInt, Default: 1, Tab: TabLocal,
			Label: "Minimum Special Characters"},
		Field{Name: "pwd_enforce_complexity", Kind: KindBool, Default: false, Tab: TabLocal,
			Label: "Enforce Password Complexity"},
		Field{Name: "pwd_min_complexity", Kind: KindInt, Default: 11, Tab: TabLocal,
			Label: "Minimum Password Complexity",
			Description: "Zxcvbn guessing entropy the password must reach"},

		// LDAP / Active Directory
		Field{Name: "ldap_enabled", Kind: KindBool, Default: false, Tab: TabLDAP,
			Label: "LDAP Authentication"},
		Field{Name: "ldap_type", Kind: KindString, Default: "ldap", Tab: TabLDAP,
			Label: "LDAP Type", Options: []string{"ldap", "ad"}},
		Field{Name: "ldap_uri", Kind: KindString, Default: "", Tab: TabLDAP,
			Label: "LDAP URI", Description: "ldap:// or ldaps:// server address"},
		Field{Name: "ldap_base_dn", Kind: KindString, Default: "", Tab: TabLDAP,
			Label: "LDAP Base DN"},
		Field{Name: "ldap_admin_username", Kind: KindString, Default: "", Tab: TabLDAP,
			Label: "LDAP Admin Username"},
		Field{Name: "ldap_admin_password", Kind: KindString, Default: "", Tab: TabLDAP,
			Label: "LDAP Admin Password", Secret: true},
		Field{Name: "ldap_domain", Kind: KindString, Default: "", Tab: TabLDAP,
			Label: "Active Directory Domain"},
		Field{Name: "ldap_filter_basic", Kind: KindString, Default: "", Tab: TabLDAP,
			Label: "Basic Filter"},
		Field{Name: "ldap_filter_username", Kind: KindString, Default: "", Tab: TabLDAP,
			Label: "Username Filter"},
		Field{Name: "ldap_filter_group", Kind: KindString, Default: "", Tab: TabLDAP,
			Label: "Group Filter"},
		Field{Name: "ldap_filter_groupname", Kind: KindString, Default: "", Tab: TabLDAP,
			Label: "Group Name Filter"},
		Field{Name: "ldap_sg_enabled", Kind: KindBool, Default: false, Tab: TabLDAP,
			Label: "LDAP Group Security",
			Description: "Restrict access to members of the groups below"},
		Field{Name: "ldap_admin_group", Kind: KindString, Default: "", Tab: TabLDAP,
			Label: "Admin Group"},
		Field{Name: "ldap_operator_group", Kind: KindString, Default: "", Tab: TabLDAP,
			Label: "Operator Group"},
		Field{Name: "ldap_user_group", Kind: KindString, Default: "", Tab: TabLDAP,
			Label: "User Group"},
		Field{Name: "autoprovisioning", Kind: KindBool, Default: false, Tab: TabLDAP,
			Label: "Roles Autoprovisioning",
			Description: "Derive user roles from a directory attribute"},
		Field{Name: "autoprovisioning_attribute", Kind: KindString, Default: "", Tab: TabLDAP,
			Label: "Autoprovisioning Attribute"},
		Field{Name: "urn_value", Kind: KindString, Default: "", Tab: TabLDAP,
			Label: "URN Prefix"},
		Field{Name: "purge", Kind: KindBool, Default: false, Tab: TabLDAP,
			Label: "Purge Roles If Empty"},

		// Google OAuth
		Field{Name: "google_oauth_enabled", Kind: KindBool, Default: false, Tab: TabGoogle,
			Label: "Google OAuth"},
		Field{Name: "google_oauth_client_id", Kind: KindString, Default: "", Tab: TabGoogle,
			Label: "Client ID"},
		Field{Name: "google_oauth_client_secret", Kind: KindString, Default: "", Tab: TabGoogle,
			Label: "Client Secret", Secret: true},
		Field{Name: "google_oauth_scope", Kind: KindString, Default: "openid email profile", Tab: TabGoogle,
			Label: "Scope"},
		Field{Name: "google_oauth_auto_configure", Kind: KindBool, Default: true, Tab: TabGoogle,
			Label: "Auto Configuration",
			Description: "Discover endpoints from the metadata URL"},
		Field{Name: "google_oauth_metadata_url", Kind: KindString,
			Default: "https://accounts.google.com/.well-known/openid-configuration", Tab: TabGoogle,
			Label: "Metadata URL"},
		Field{Name: "google_base_url", Kind: KindString,
			Default: "https://www.googleapis.com/oauth2/v3/", Tab: TabGoogle,
			Label: "Base URL"},
		Field{Name: "google_token_url", Kind: KindString,
			Default: "https://oauth2.googleapis.com/token", Tab: TabGoogle,
			Label: "Token URL"},
		Field{Name: "google_authorize_url", Kind: KindString,
			Default: "https://accounts.google.com/o/oauth2/v2/auth", Tab: TabGoogle,
			Label: "Authorize URL"},

		// GitHub OAuth
		Field{Name: "github_oauth_enabled", Kind: KindBool, Default: false, Tab: TabGithub,
			Label: "GitHub OAuth"},
		Field{Name: "github_oauth_key", Kind: KindString, Default: "", Tab: TabGithub,
			Label: "Client Key"},
		Field{Name: "github_oauth_secret", Kind: KindString, Default: "", Tab: TabGithub,
			Label: "Client Secret", Secret: true},
		Field{Name: "github_oauth_scope", Kind: KindString, Default: "email", Tab: TabGithub,
			Label: "Scope"},
		Field{Name: "github_oauth_auto_configure", Kind: KindBool, Default: false, Tab: TabGithub,
			Label: "Auto Configuration"},
		Field{Name: "github_oauth_metadata_url", Kind: KindString, Default: "", Tab: TabGithub,
			Label: "Metadata URL"},
		Field{Name: "github_oauth_api_url", Kind: KindString,
			Default: "https://api.github.com/user", Tab: TabGithub,
			Label: "API URL"},
		Field{Name: "github_oauth_token_url", Kind: KindString,
			Default: "https://github.com/login/oauth/access_token", Tab: TabGithub,
			Label: "Token URL"},
		Field{Name: "github_oauth_authorize_url", Kind: KindString,
			Default: "https://github.com/login/oauth/authorize", Tab: TabGithub,
			Label: "Authorize URL"},

		// Azure AD OAuth
		Field{Name: "azure_oauth_enabled", Kind: KindBool, Default: false, Tab: TabAzure,
			Label: "Azure AD OAuth"},
		Field{Name: "azure_oauth_key", Kind: KindString, Default: "", Tab: TabAzure,
			Label: "Client ID", Description: "Application (client) ID, a UUID"},
		Field{Name: "azure_oauth_secret", Kind: KindString, Default: "", Tab: TabAzure,
			Label: "Client Secret", Secret: true},
		Field{Name: "azure_oauth_scope", Kind: KindString,
			Default: "User.Read openid email profile", Tab: TabAzure,
			Label: "Scope"},
		Field{Name: "azure_oauth_auto_configure", Kind: KindBool, Default: true, Tab: TabAzure,
			Label: "Auto Configuration"},
		Field{Name: "azure_oauth_metadata_url", Kind: KindString, Default: "", Tab: TabAzure,
			Label: "Metadata URL"},
		Field{Name: "azure_oauth_api_url", Kind: KindString,
			Default: "https://graph.microsoft.com/v1.0/", Tab: TabAzure,
			Label: "API URL"},
		Field{Name: "azure_oauth_token_url", Kind: KindString, Default: "", Tab: TabAzure,
			Label: "Token URL"},
		Field{Name: "azure_oauth_authorize_url", Kind: KindString, Default: "", Tab: TabAzure,
			Label: "Authorize URL"},
		Field{Name: "azure_sg_enabled", Kind: KindBool, Default: false, Tab: TabAzure,
			Label: "Azure Group Security"},
		Field{Name: "azure_admin_group", Kind: KindString, Default: "", Tab: TabAzure,
			Label: "Azure Admin Group ID"},
		Field{Name: "azure_operator_group", Kind: KindString, Default: "", Tab: TabAzure,
			Label: "Azure Operator Group ID"},
		Field{Name: "azure_user_group", Kind: KindString, Default: "", Tab: TabAzure,
			Label: "Azure User Group ID"},
		Field{Name: "azure_group_accounts_enabled", Kind: KindBool, Default: false, Tab: TabAzure,
			Label: "Azure Group Accounts Synchronization"},
		Field{Name: "azure_group_accounts_name", Kind: KindString, Default: "", Tab: TabAzure,
			Label: "Account Name Property"},
		Field{Name: "azure_group_accounts_name_re", Kind: KindString, Default: "", Tab: TabAzure,
			Label: "Account Name RegEx"},
		Field{Name: "azure_group_accounts_description_re", Kind: KindString, Default: "", Tab: TabAzure,
			Label: "Account Description RegEx"},

		// OpenID Connect
		Field{Name: "oidc_oauth_enabled", Kind: KindBool, Default: false, Tab: TabOIDC,
			Label: "OpenID Connect OAuth"},
		Field{Name: "oidc_oauth_key", Kind: KindString, Default: "", Tab: TabOIDC,
			Label: "Client ID"},
		Field{Name: "oidc_oauth_secret", Kind: KindString, Default: "", Tab: TabOIDC,
			Label: "Client Secret", Secret: true},
		Field{Name: "oidc_oauth_scope", Kind: KindString, Default: "email", Tab: TabOIDC,
			Label: "Scope"},
		Field{Name: "oidc_oauth_auto_configure", Kind: KindBool, Default: true, Tab: TabOIDC,
			Label: "Auto Configuration"},
		Field{Name: "oidc_oauth_metadata_url", Kind: KindString, Default: "", Tab: TabOIDC,
			Label: "Metadata URL"},
		Field{Name: "oidc_oauth_api_url", Kind: KindString, Default: "", Tab: TabOIDC,
			Label: "API URL"},
		Field{Name: "oidc_oauth_token_url", Kind: KindString, Default: "", Tab: TabOIDC,
			Label: "Token URL"},
		Field{Name: "oidc_oauth_authorize_url", Kind: KindString, Default: "", Tab: TabOIDC,
			Label: "Authorize URL"},
		Field{Name: "oidc_oauth_logout_url", Kind: KindString, Default: "", Tab: TabOIDC,
			Label: "Logout URL"},
		Field{Name: "oidc_oauth_username", Kind: KindString, Default: "preferred_username", Tab: TabOIDC,
			Label: "Username Claim"},
		Field{Name: "oidc_oauth_email", Kind: KindString, Default: "email", Tab: TabOIDC,
			Label: "Email Claim"},
		Field{Name: "oidc_oauth_firstname", Kind: KindString, Default: "given_name", Tab: TabOIDC,
			Label: "First Name Claim"},
		Field{Name: "oidc_oauth_last_name", Kind: KindString, Default: "family_name", Tab: TabOIDC,
			Label: "Last Name Claim"},
		Field{Name: "oidc_oauth_account_name_property", Kind: KindString, Default: "", Tab: TabOIDC,
			Label: "Account Name Property"},
		Field{Name: "oidc_oauth_account_description_property", Kind: KindString, Default: "", Tab: TabOIDC,
			Label: "Account Description Property"},
	)
}
