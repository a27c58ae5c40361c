// Package config defines the application configuration structure and
// loads it from the environment (and an optional config file) via viper.
package config
