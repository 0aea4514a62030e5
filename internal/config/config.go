// Package config reads the process configuration from the environment.
package config

import (
	"strconv"

	"github.com/OFFIS-RIT/flavor/backend/internal/util"
)

type Config struct {
	Port      string
	Debug     bool
	LogFormat string

	DBFile     string
	HeaderLang string
	TierPolicy string
	BodyLimit  string

	MasterAPIKey string
	AuthURL      string

	S3 S3Config
}

type S3Config struct {
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Prefix    string
}

// Enabled reports whether remote backups are configured.
func (c S3Config) Enabled() bool {
	return c.Bucket != ""
}

func Load() Config {
	return Config{
		Port:      strconv.Itoa(int(util.GetEnvNumeric("PORT", 8080))),
		Debug:     util.GetEnvBool("DEBUG", false),
		LogFormat: util.GetEnvChoice("LOG_FORMAT", "text", "text", "json", "logfmt"),

		DBFile:     util.GetEnvString("FLAVOR_DB_FILE", "flavor_database.csv"),
		HeaderLang: util.GetEnvChoice("FLAVOR_HEADER_LANG", "zh", "zh", "en"),
		TierPolicy: util.GetEnvString("FLAVOR_TIER_POLICY", "tiered"),
		BodyLimit:  util.GetEnvString("FLAVOR_BODY_LIMIT", "32M"),

		MasterAPIKey: util.GetEnv("MASTER_API_KEY"),
		AuthURL:      util.GetEnv("AUTH_URL"),

		S3: S3Config{
			Region:    util.GetEnvString("AWS_REGION", "us-east-1"),
			Endpoint:  util.GetEnv("AWS_ENDPOINT"),
			AccessKey: util.GetEnv("AWS_ACCESS_KEY"),
			SecretKey: util.GetEnv("AWS_SECRET_KEY"),
			Bucket:    util.GetEnv("AWS_BUCKET"),
			Prefix:    util.GetEnvString("AWS_BACKUP_PREFIX", "backups"),
		},
	}
}
