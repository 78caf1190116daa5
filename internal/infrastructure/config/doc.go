// Package config loads binary manager configuration from the environment.
//
// All settings carry BINMGR_-prefixed environment variables with sensible
// defaults, so the daemon starts with no configuration at all.
package config
