// Package config derives default values for command-line flags from STUDY_* environment variables.
package config

import (
	"strings"

	"github.com/spf13/viper"
)

const EnvPrefix = "STUDY"

// Defaults are the values command-line flags fall back to when they are not set explicitly.
type Defaults struct {
	BucketURI string
	S3Region  string
	Format    string
	QueryMode string
	Verbose   bool
}

// Load reads Defaults from the environment, for example STUDY_S3_REGION.
func Load() *Defaults {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("bucket_uri", "")
	v.SetDefault("s3_region", "")
	v.SetDefault("format", "text")
	v.SetDefault("query_mode", "ALL")
	v.SetDefault("verbose", false)

	return &Defaults{
		BucketURI: v.GetString("bucket_uri"),
		S3Region:  v.GetString("s3_region"),
		Format:    v.GetString("format"),
		QueryMode: v.GetString("query_mode"),
		Verbose:   v.GetBool("verbose"),
	}
}
