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
	"errors"
	"fmt"
)

var (
	// ErrMissingConfiguration is raised when a required setting is absent.
	ErrMissingConfiguration = errors.New("missing required configuration")

	// ErrInvalidConfiguration is raised when a setting cannot be used.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrUnknownOperation is raised when an endpoint is not registered.
	ErrUnknownOperation = errors.New("unknown operation")

	// ErrInvalidTemplate is raised when a path template cannot be expanded.
	ErrInvalidTemplate = errors.New("invalid path template")

	// ErrUnexpectedStatus is raised when the status code is not the one expected.
	ErrUnexpectedStatus = errors.New("unexpected status code")

	// ErrInvalidResponse is raised when a response does not match the API schema.
	ErrInvalidResponse = errors.New("response does not match schema")
)

// UnexpectedStatusError records an HTTP status that did not match the
// expected value for an operation.
type UnexpectedStatusError struct {
	Method   string
	Path     string
	Expected int
	Actual   int
	Message  string
	Body     []byte
	TraceID  string
}

func newUnexpectedStatusError(method, path string, expected int, response *Response) *UnexpectedStatusError {
	return &UnexpectedStatusError{
		Method:   method,
		Path:     path,
		Expected: expected,
		Actual:   response.StatusCode,
		Message:  fmt.Sprintf("Response status is not %d", expected),
		Body:     response.Body,
		TraceID:  response.TraceID,
	}
}

func (e *UnexpectedStatusError) Error() string {
	return fmt.Sprintf("%s: expected %d, got %d, body: %s (trace ID: %s)", e.Message, e.Expected, e.Actual, string(e.Body), e.TraceID)
}

func (e *UnexpectedStatusError) Unwrap() error {
	return ErrUnexpectedStatus
}
