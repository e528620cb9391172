// Package config provides configuration utilities for the application.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/keesa/smsparse/internal/resolve"
)

// SetDefaults registers the default configuration values. Call once before
// reading any setting.
func SetDefaults() {
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "console")
	viper.SetDefault("server.addr", ":5001")
	viper.SetDefault("server.watch", false)
	viper.SetDefault("resolver.threshold", resolve.DefaultThreshold)
	viper.SetDefault("artifacts.dir", "~/.local/share/smsparse/artifacts")
	viper.SetDefault("database.path", "~/.local/share/smsparse/smsparse.db")
}

// ArtifactsDir returns the directory holding the model artifacts.
func ArtifactsDir() string {
	return ExpandPath(viper.GetString("artifacts.dir"))
}

// DatabasePath returns the merchant catalog database location.
func DatabasePath() string {
	return ExpandPath(viper.GetString("database.path"))
}

// Threshold returns the merchant acceptance threshold.
func Threshold() float32 {
	return float32(viper.GetFloat64("resolver.threshold"))
}

// ServerAddr returns the HTTP listen address.
func ServerAddr() string {
	return viper.GetString("server.addr")
}

// ExpandPath expands ~ and environment variables in a file path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	return os.ExpandEnv(path)
}
