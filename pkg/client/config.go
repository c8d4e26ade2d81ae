/*
Copyright 2025 the Unikorn Authors.
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package client

import (
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	// EnvBaseURL is the scheme and host of the API under test.
	EnvBaseURL = "API_BASE_URL"
	// EnvPort is the port of the API under test.
	EnvPort = "API_PORT"

	EnvRequestTimeout     = "REQUEST_TIMEOUT"
	EnvInsecureSkipVerify = "API_INSECURE_SKIP_VERIFY"
	EnvDeleteMethod       = "API_DELETE_METHOD"
	EnvValidateResponses  = "API_VALIDATE_RESPONSES"
	EnvUsername           = "API_USERNAME"
	EnvPassword           = "API_PASSWORD"
	EnvFile               = "API_ENV_FILE"

	defaultRequestTimeout = 30 * time.Second
)

// Config defines how to reach the API under test.
type Config struct {
	// BaseURL is the scheme, host and optional path prefix of the API.
	BaseURL string
	// Port overrides any port in BaseURL.
	Port string
	// RequestTimeout bounds a single HTTP call.
	RequestTimeout time.Duration
	// InsecureSkipVerify accepts self-signed and otherwise invalid server
	// certificates.  This is for local test targets only.
	InsecureSkipVerify bool
	// DeleteMethod is the HTTP verb used to delete a person.
	DeleteMethod string
	// ValidateResponses checks every person API response against the
	// OpenAPI document.
	ValidateResponses bool
	// Username and Password enable basic authentication when set.
	Username string
	Password string
}

// LoadConfig loads configuration from environment variables and .env files.
// Returns an error if required configuration values are missing.
func LoadConfig() (*Config, error) {
	config := ReadConfig()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// ReadConfig is like LoadConfig but leaves validation to the caller, for
// callers that fill in the server address themselves.
func ReadConfig() *Config {
	loadEnvFile()

	return &Config{
		BaseURL:            os.Getenv(EnvBaseURL),
		Port:               os.Getenv(EnvPort),
		RequestTimeout:     DurationFromEnv(EnvRequestTimeout, defaultRequestTimeout),
		InsecureSkipVerify: BoolFromEnv(EnvInsecureSkipVerify, false),
		DeleteMethod:       os.Getenv(EnvDeleteMethod),
		ValidateResponses:  BoolFromEnv(EnvValidateResponses, false),
		Username:           os.Getenv(EnvUsername),
		Password:           os.Getenv(EnvPassword),
	}
}

// DurationFromEnv gets a duration from environment variable or returns default.
// Unparsable values also yield the default.
func DurationFromEnv(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}

	return duration
}

// BoolFromEnv gets a boolean from environment variable or returns default.
func BoolFromEnv(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}

	return boolValue
}

func loadEnvFile() {
	envPaths := []string{
		".env",
		"../.env",
		"../../.env",
		"../../../.env",
	}

	if path := os.Getenv(EnvFile); path != "" {
		envPaths = []string{path}
	}

	var envPath string

	for _, path := range envPaths {
		if _, err := os.Stat(path); err == nil {
			absPath, err := filepath.Abs(path)
			if err == nil {
				envPath = absPath
				break
			}
		}
	}

	if envPath == "" {
		// .env file not found - this is OK in CI/CD where env vars are set directly
		return
	}

	// Existing environment variables take precedence.
	if err := godotenv.Load(envPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env file from %s: %v\n", envPath, err)
	}
}

// Validate checks that all required configuration values are set and well formed.
func (c *Config) Validate() error {
	var missing []string

	required := []struct {
		envVar string
		value  string
	}{
		{envVar: EnvBaseURL, value: c.BaseURL},
		{envVar: EnvPort, value: c.Port},
	}

	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			missing = append(missing, r.envVar)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s. Please set these environment variables or add them to a .env file", ErrMissingConfiguration, strings.Join(missing, ", "))
	}

	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("%w: port %q must be an integer between 1 and 65535", ErrInvalidConfiguration, c.Port)
	}

	if _, err := c.ServerURL(); err != nil {
		return err
	}

	switch c.DeleteMethod {
	case "", http.MethodDelete, http.MethodPatch:
	default:
		return fmt.Errorf("%w: delete method %q must be %s or %s", ErrInvalidConfiguration, c.DeleteMethod, http.MethodDelete, http.MethodPatch)
	}

	return nil
}

// ServerURL returns the base URL with the configured port applied.
func (c *Config) ServerURL() (string, error) {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return "", fmt.Errorf("%w: base URL: %w", ErrInvalidConfiguration, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("%w: base URL %q must be http or https", ErrInvalidConfiguration, c.BaseURL)
	}

	if u.Hostname() == "" {
		return "", fmt.Errorf("%w: base URL %q has no host", ErrInvalidConfiguration, c.BaseURL)
	}

	u.Host = net.JoinHostPort(u.Hostname(), c.Port)

	return strings.TrimSuffix(u.String(), "/"), nil
}

func (c *Config) deleteMethod() string {
	if c.DeleteMethod == "" {
		return http.MethodDelete
	}

	return c.DeleteMethod
}
