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

package openapi

import (
	"context"
	goerrors "errors"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	legacyrouter "github.com/getkin/kin-openapi/routers/legacy"

	apispec "github.com/unikorn-cloud/persons/pkg/openapi"
	"github.com/unikorn-cloud/persons/pkg/server/errors"
)

// Validator checks every request against the OpenAPI document before
// passing it on.
type Validator struct {
	// next defines the next HTTP handler in the chain.
	next http.Handler

	// router finds the operation for a request.
	router routers.Router
}

// Ensure this implements the required interfaces.
var _ http.Handler = &Validator{}

func newRouter(ctx context.Context) (routers.Router, error) {
	doc, err := apispec.LoadSchema(ctx)
	if err != nil {
		return nil, err
	}

	return legacyrouter.NewRouter(doc)
}

// ServeHTTP implements the http.Handler interface.
func (v *Validator) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	route, params, err := v.router.FindRoute(r)
	if err != nil {
		var routeErr *routers.RouteError

		// Routers return copies of the sentinel errors, so match on the reason.
		if goerrors.As(err, &routeErr) && routeErr.Reason == routers.ErrMethodNotAllowed.Error() {
			errors.HandleError(w, r, errors.HTTPMethodNotAllowed().WithError(err))
			return
		}

		errors.HandleError(w, r, errors.HTTPNotFound().WithError(err))

		return
	}

	input := &openapi3filter.RequestValidationInput{
		Request:    r,
		PathParams: params,
		Route:      route,
	}

	// The request body is restored by validation so handlers can read it.
	if err := openapi3filter.ValidateRequest(r.Context(), input); err != nil {
		errors.HandleError(w, r, errors.OAuth2InvalidRequest("request body invalid").WithError(err))
		return
	}

	v.next.ServeHTTP(w, r)
}

// Middleware returns a function that generates per-request
// middleware functions.  The document is loaded once, up front, so a
// broken document fails at start up.
func Middleware(ctx context.Context) (func(http.Handler) http.Handler, error) {
	router, err := newRouter(ctx)
	if err != nil {
		return nil, err
	}

	return func(next http.Handler) http.Handler {
		return &Validator{
			next:   next,
			router: router,
		}
	}, nil
}
