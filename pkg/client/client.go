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
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/unikorn-cloud/persons/pkg/constants"
	"github.com/unikorn-cloud/persons/pkg/openapi"

	"sigs.k8s.io/controller-runtime/pkg/log"
)

const redacted = "REDACTED"

// Client issues calls against the persons API.  Each call performs exactly
// one HTTP request, there are no retries.
type Client struct {
	baseURL   string
	client    HTTPDoer
	config    *Config
	endpoints *Endpoints
	validator *responseValidator
}

// Option modifies a client at construction time.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(doer HTTPDoer) Option {
	return func(c *Client) {
		c.client = doer
	}
}

// New validates the configuration and returns a client.  No network
// access happens here, so a bad configuration fails before any call is made.
func New(config *Config, opts ...Option) (*Client, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: no configuration provided", ErrMissingConfiguration)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	baseURL, err := config.ServerURL()
	if err != nil {
		return nil, err
	}

	transport, ok := http.DefaultTransport.(*http.Transport)
	if !ok {
		return nil, fmt.Errorf("%w: default transport is not an *http.Transport", ErrInvalidConfiguration)
	}

	transport = transport.Clone()

	if config.InsecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: true, //nolint:gosec // explicit opt-in for local test targets
		}
	}

	c := &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout:   config.RequestTimeout,
			Transport: transport,
		},
		config:    config,
		endpoints: NewEndpoints(),
	}

	if config.ValidateResponses {
		validator, err := newResponseValidator(context.Background())
		if err != nil {
			return nil, err
		}

		c.validator = validator
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// BaseURL returns the resolved base URL including port.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Request describes a single call.
type Request struct {
	// Method is the HTTP verb.
	Method string
	// Path is appended to the base URL, unless it is an absolute URL
	// in which case it is used as is.
	Path string
	// Body, if not nil, is encoded as JSON.
	Body interface{}
	// Header is added to the request.
	Header http.Header
	// ExpectedStatus, when set, causes any other status to be returned
	// as an *UnexpectedStatusError.
	ExpectedStatus int
	// Username and Password override any configured basic authentication.
	Username string
	Password string
}

func (c *Client) resolve(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}

	return c.baseURL + path
}

func (c *Client) credentials(r *Request) (string, string) {
	if r.Username != "" {
		return r.Username, r.Password
	}

	return c.config.Username, c.config.Password
}

// redactHeaders flattens headers for logging with credentials hidden.
func redactHeaders(header http.Header) map[string]string {
	out := make(map[string]string, len(header))

	for name := range header {
		switch http.CanonicalHeaderKey(name) {
		case "Authorization", "Cookie", "Proxy-Authorization":
			out[name] = redacted
		default:
			out[name] = strings.Join(header.Values(name), ", ")
		}
	}

	return out
}

// Do performs a single request.  The response is returned whenever one was
// received, including alongside an *UnexpectedStatusError.  Transport
// failures are returned as errors and never retried.
//
//nolint:cyclop
func (c *Client) Do(ctx context.Context, r *Request) (*Response, error) {
	log := log.FromContext(ctx)

	fullURL := c.resolve(r.Path)

	var body []byte

	if r.Body != nil {
		data, err := json.Marshal(r.Body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}

		body = data
	}

	var reader io.Reader

	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, fullURL, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	// Add W3C Trace Context headers
	traceParent := createTraceParent()
	req.Header.Set("Traceparent", traceParent)
	req.Header.Set("Tracestate", "test-automation=persons")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", constants.VersionString())

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for name, values := range r.Header {
		req.Header[http.CanonicalHeaderKey(name)] = values
	}

	if username, password := c.credentials(r); username != "" {
		req.SetBasicAuth(username, password)
	}

	log.Info("sending request", "method", r.Method, "url", fullURL, "headers", redactHeaders(req.Header), "body", string(body))

	start := time.Now()
	resp, err := c.client.Do(req)
	duration := time.Since(start)

	if err != nil {
		log.Error(err, "http request failed", "method", r.Method, "url", fullURL, "duration", duration, "traceparent", traceParent)
		return nil, fmt.Errorf("http request failed: %w", err)
	}

	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error(err, "reading response body", "method", r.Method, "url", fullURL, "status", resp.StatusCode, "traceparent", traceParent)
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	response := &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respBody,
		TraceID:    extractTraceID(traceParent),
	}

	log.V(1).Info("received response", "method", r.Method, "url", fullURL, "status", resp.StatusCode, "duration", duration, "body", string(respBody))

	if r.ExpectedStatus > 0 && resp.StatusCode != r.ExpectedStatus {
		log.Info("unexpected status", "method", r.Method, "url", fullURL, "expected", r.ExpectedStatus, "actual", resp.StatusCode, "traceID", response.TraceID)
		return response, newUnexpectedStatusError(r.Method, r.Path, r.ExpectedStatus, response)
	}

	return response, nil
}

// do performs a person API call and applies schema validation if enabled.
func (c *Client) do(ctx context.Context, method, path string, body interface{}, expectedStatus int) (*Response, error) {
	response, err := c.Do(ctx, &Request{
		Method:         method,
		Path:           path,
		Body:           body,
		ExpectedStatus: expectedStatus,
	})
	if err != nil {
		return response, err
	}

	if c.validator != nil {
		var data []byte

		if body != nil {
			if data, err = json.Marshal(body); err != nil {
				return response, fmt.Errorf("marshaling request body: %w", err)
			}
		}

		if err := c.validator.validate(ctx, method, path, data, response); err != nil {
			return response, err
		}
	}

	return response, nil
}

// ListPersons returns all persons, the server must respond with 200.
func (c *Client) ListPersons(ctx context.Context) (openapi.PersonList, error) {
	response, err := c.do(ctx, http.MethodGet, c.endpoints.ListPersons(), nil, http.StatusOK)
	if err != nil {
		return nil, fmt.Errorf("listing persons: %w", err)
	}

	var persons openapi.PersonList

	if err := response.DecodeJSON(&persons); err != nil {
		return nil, fmt.Errorf("listing persons: %w", err)
	}

	return persons, nil
}

// GetPerson returns a single person, the server must respond with 200.
func (c *Client) GetPerson(ctx context.Context, id int) (*openapi.Person, error) {
	path, err := c.endpoints.GetPerson(id)
	if err != nil {
		return nil, err
	}

	response, err := c.do(ctx, http.MethodGet, path, nil, http.StatusOK)
	if err != nil {
		return nil, fmt.Errorf("getting person %d: %w", id, err)
	}

	person, err := response.Person()
	if err != nil {
		return nil, fmt.Errorf("getting person %d: %w", id, err)
	}

	return person, nil
}

// CreatePerson creates a person, the server must respond with 201.
// The assigned ID is available via the response e.g. response.String("id").
func (c *Client) CreatePerson(ctx context.Context, person openapi.Person) (*Response, error) {
	response, err := c.do(ctx, http.MethodPost, c.endpoints.CreatePerson(), person, http.StatusCreated)
	if err != nil {
		return response, fmt.Errorf("creating person: %w", err)
	}

	return response, nil
}

// UpdatePerson modifies the fields set in person, the server must respond with 200.
func (c *Client) UpdatePerson(ctx context.Context, id int, person openapi.Person) (*Response, error) {
	path, err := c.endpoints.UpdatePerson(id)
	if err != nil {
		return nil, err
	}

	response, err := c.do(ctx, http.MethodPatch, path, person, http.StatusOK)
	if err != nil {
		return response, fmt.Errorf("updating person %d: %w", id, err)
	}

	return response, nil
}

// DeletePerson deletes a person, the server must respond with 200.
// The HTTP verb is taken from configuration and defaults to DELETE.
func (c *Client) DeletePerson(ctx context.Context, id int) (*Response, error) {
	path, err := c.endpoints.DeletePerson(id)
	if err != nil {
		return nil, err
	}

	response, err := c.do(ctx, c.config.deleteMethod(), path, nil, http.StatusOK)
	if err != nil {
		return response, fmt.Errorf("deleting person %d: %w", id, err)
	}

	return response, nil
}
