/*
Copyright 2024-2025 the Unikorn Authors.

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

package api

import (
	"net/url"
	"time"

	"github.com/unikorn-cloud/persons/pkg/client"
)

// TestConfig extends the client configuration with test run settings.
type TestConfig struct {
	client.Config

	TestTimeout     time.Duration
	SkipIntegration bool
	// UseMockServer runs every test against its own in-process backend.
	// Defaults to true when no API_BASE_URL is configured.
	UseMockServer bool
	// ThirdPartyTests enables the tests that talk to public demo APIs.
	ThirdPartyTests bool
}

// LoadTestConfig loads configuration from environment variables and .env files.
// Returns an error if required configuration values are missing.
func LoadTestConfig() (*TestConfig, error) {
	base := client.ReadConfig()

	config := &TestConfig{
		Config:          *base,
		TestTimeout:     client.DurationFromEnv("TEST_TIMEOUT", 5*time.Minute),
		SkipIntegration: client.BoolFromEnv("SKIP_INTEGRATION", false),
		UseMockServer:   client.BoolFromEnv("API_MOCK_SERVER", base.BaseURL == ""),
		ThirdPartyTests: client.BoolFromEnv("THIRD_PARTY_TESTS", false),
	}

	// The mock server address is only known once it is started.
	if config.UseMockServer {
		return config, nil
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// serverAddress splits rawURL into the base URL and port the client
// configuration expects, the port is inferred from the scheme when not given.
func serverAddress(rawURL string) (string, string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", "", err
	}

	port := u.Port()

	if port == "" {
		port = "80"

		if u.Scheme == "https" {
			port = "443"
		}
	}

	u.Host = u.Hostname()

	return u.String(), port, nil
}

// WithServerURL returns a copy of the configuration pointing at rawURL.
// Everything else, credentials included, is kept so use this only for
// another instance of the persons API.
func (c *TestConfig) WithServerURL(rawURL string) (*TestConfig, error) {
	baseURL, port, err := serverAddress(rawURL)
	if err != nil {
		return nil, err
	}

	out := *c
	out.BaseURL = baseURL
	out.Port = port

	if err := out.Validate(); err != nil {
		return nil, err
	}

	return &out, nil
}

// ThirdPartyConfig returns a client configuration for an unrelated public
// service at rawURL.  Only the request timeout is inherited, the persons API
// credentials and TLS relaxation never leave for other hosts.
func (c *TestConfig) ThirdPartyConfig(rawURL string) (*client.Config, error) {
	baseURL, port, err := serverAddress(rawURL)
	if err != nil {
		return nil, err
	}

	out := &client.Config{
		BaseURL:        baseURL,
		Port:           port,
		RequestTimeout: c.RequestTimeout,
	}

	if err := out.Validate(); err != nil {
		return nil, err
	}

	return out, nil
}
