// Package config loads CLI settings from URLTEMPLATE_* environment
// variables, optionally seeded from a .env file.
package config
