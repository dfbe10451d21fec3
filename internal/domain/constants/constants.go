// Package constants holds provider names and environment identifiers used by configuration.
package constants

// Environments
const (
	EnvDevelop    = "develop"
	EnvStaging    = "staging"
	EnvProduction = "production"
)

// Storage providers
const (
	StorageProviderMemory   = "memory"
	StorageProviderFile     = "file"
	StorageProviderRedis    = "redis"
	StorageProviderMongo    = "mongo"
	StorageProviderPostgres = "postgres"
)

// Chat notify providers
const (
	ChatNotifyProviderNone   = ""
	ChatNotifyProviderNoop   = "noop"
	ChatNotifyProviderHTTP   = "http"
	ChatNotifyProviderPubSub = "pubsub"
	ChatNotifyProviderKafka  = "kafka"
)
