package config

// EnvPrefix is passed to envconfig; individual fields carry full variable
// names so the prefix stays empty.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "SNEAKPEAK_DB_DSN"
	EnvDBHost = "SNEAKPEAK_DB_HOST"
	EnvDBUser = "SNEAKPEAK_DB_USER"
	EnvDBName = "SNEAKPEAK_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
