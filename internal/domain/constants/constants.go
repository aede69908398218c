// Package constants holds configuration values shared across layers.
package constants

// Environments.
const (
	EnvDevelop    = "develop"
	EnvStaging    = "staging"
	EnvProduction = "production"
)

// Pub/Sub providers selectable through pubsub.provider.
const (
	PubSubProviderNoop   = "noop"
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// Key prefixes used in KV storage.
const (
	StorageKeyCurrentSession = "session:current"
	StorageKeyOAuthState     = "oauth_state:"
	StorageKeyPasswordReset  = "password_reset:"
)
