// Package config provides shared configuration utilities.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// LoadDotEnv loads variables from the given .env files (default ".env")
// without overriding variables already set in the environment. Missing files
// are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// GetEnvInt is GetEnv for integer values. Unparsable values yield fallback.
func GetEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}

// ListenAddr joins the host and port read from hostKey and portKey. A port
// outside 1-65535, or one that is not a number, falls back to defaultPort.
func ListenAddr(hostKey, defaultHost, portKey string, defaultPort int) string {
	port := GetEnvInt(portKey, defaultPort)
	if port < 1 || port > 65535 {
		log.Warn("Invalid port, using default", "key", portKey, "port", port, "default", defaultPort)
		port = defaultPort
	}
	return net.JoinHostPort(GetEnv(hostKey, defaultHost), strconv.Itoa(port))
}
