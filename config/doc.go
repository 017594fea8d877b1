// Package config loads tool configuration for the Aspen SDK.
//
// It uses Viper to read a YAML/JSON/TOML file, godotenv to read an optional
// .env file, and maps prefixed environment variables onto nested keys:
//
//	var cfg CLIConfig
//	err := config.LoadConfig("aspenctl", &cfg, config.WithConfigFile(path))
//
// ASPEN_AUTH_APP_KEY therefore overrides auth.app_key from the file.
package config
