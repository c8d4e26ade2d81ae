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
	"fmt"
	"io"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	legacyrouter "github.com/getkin/kin-openapi/routers/legacy"

	"github.com/unikorn-cloud/persons/pkg/openapi"
)

// responseValidator checks person API responses against the OpenAPI document.
type responseValidator struct {
	router routers.Router
}

func newResponseValidator(ctx context.Context) (*responseValidator, error) {
	doc, err := openapi.LoadSchema(ctx)
	if err != nil {
		return nil, err
	}

	router, err := legacyrouter.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("creating openapi router: %w", err)
	}

	return &responseValidator{
		router: router,
	}, nil
}

// validate replays the request against the router, as it was sent relative
// to the base URL, and checks the response status, headers and body.
func (v *responseValidator) validate(ctx context.Context, method, path string, body []byte, response *Response) error {
	req, err := http.NewRequestWithContext(ctx, method, path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating validation request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	route, pathParams, err := v.router.FindRoute(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrInvalidResponse, method, path, err)
	}

	input := &openapi3filter.ResponseValidationInput{
		RequestValidationInput: &openapi3filter.RequestValidationInput{
			Request:    req,
			PathParams: pathParams,
			Route:      route,
		},
		Status: response.StatusCode,
		Header: response.Header,
		Body:   io.NopCloser(bytes.NewReader(response.Body)),
	}

	if err := openapi3filter.ValidateResponse(ctx, input); err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrInvalidResponse, method, path, err)
	}

	return nil
}
