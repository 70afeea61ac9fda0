// Package config loads application configuration from YAML files, .env
// files, and environment variables, in that order of precedence (later
// sources override earlier ones).
//
// # Usage
//
//	var cfg config.AppConfig
//	if err := config.Load("feedview", &cfg); err != nil {
//	    ...
//	}
//	cfg.ApplyDefaults()
//	if err := cfg.Validate(); err != nil {
//	    ...
//	}
//
// Load searches ./cmd/<service>/config.yml, ./config/config.yml, and
// ./config.yml unless an explicit path is supplied via WithConfigFile.
package config
