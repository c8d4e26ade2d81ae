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

package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/unikorn-cloud/persons/pkg/server/util"

	"sigs.k8s.io/controller-runtime/pkg/log"
)

// Error is an HTTP error response.
type Error struct {
	// status is the HTTP status code.
	status int
	// code is the machine readable error code.
	code string
	// description is the human readable error description.
	description string
	// err is the underlying cause, it's logged but never returned to the client.
	err error
}

// ErrorResponse is the wire representation of an error.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

func newError(status int, code, description string) *Error {
	return &Error{
		status:      status,
		code:        code,
		description: description,
	}
}

// WithError attaches an underlying cause.
func (e *Error) WithError(err error) *Error {
	e.err = err

	return e
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %v", e.code, e.description, e.err)
	}

	return fmt.Sprintf("%s: %s", e.code, e.description)
}

func (e *Error) Unwrap() error {
	return e.err
}

// StatusCode returns the HTTP status code.
func (e *Error) StatusCode() int {
	return e.status
}

func HTTPNotFound() *Error {
	return newError(http.StatusNotFound, "not_found", "resource not found")
}

func HTTPMethodNotAllowed() *Error {
	return newError(http.StatusMethodNotAllowed, "method_not_allowed", "the requested method was not allowed")
}

func HTTPConflict() *Error {
	return newError(http.StatusConflict, "conflict", "resource already exists")
}

func OAuth2InvalidRequest(description string) *Error {
	return newError(http.StatusBadRequest, "invalid_request", description)
}

func OAuth2ServerError(description string) *Error {
	return newError(http.StatusInternalServerError, "server_error", description)
}

// HandleError writes an error response, anything that isn't an *Error is
// treated as an internal server error.
func HandleError(w http.ResponseWriter, r *http.Request, err error) {
	log := log.FromContext(r.Context())

	var httpError *Error

	if !errors.As(err, &httpError) {
		httpError = OAuth2ServerError("unhandled error").WithError(err)
	}

	if httpError.status >= http.StatusInternalServerError {
		log.Error(httpError, "request failed", "method", r.Method, "path", r.URL.Path)
	} else {
		log.Info("request rejected", "method", r.Method, "path", r.URL.Path, "error", httpError.Error())
	}

	response := &ErrorResponse{
		Error:            httpError.code,
		ErrorDescription: httpError.description,
	}

	util.WriteJSONResponse(w, r, httpError.status, response)
}
