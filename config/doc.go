// Package config loads the site configuration.
//
// It uses Viper to read an optional config.yml and godotenv to read .env
// files; every environment variable is also bound to its dotted key
// variants, so API_BASE_URL overrides api.base_url.
//
// # Usage
//
//	cfg, err := config.LoadSiteConfig("synapseiq")
package config
