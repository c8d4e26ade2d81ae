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

package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/pflag"

	"github.com/unikorn-cloud/persons/pkg/openapi"
	"github.com/unikorn-cloud/persons/pkg/server/handler"
	"github.com/unikorn-cloud/persons/pkg/server/handler/person"
	"github.com/unikorn-cloud/persons/pkg/server/middleware/logging"
	openapimiddleware "github.com/unikorn-cloud/persons/pkg/server/middleware/openapi"

	"sigs.k8s.io/controller-runtime/pkg/log"
)

// Options allows behaviour to be defined on the CLI.
type Options struct {
	// ListenAddress tells the server what to listen on, you shouldn't
	// need to change this, its already non-privileged and the default
	// is modelled after json-server.
	ListenAddress string

	// ReadTimeout defines how long before we give up on the client,
	// this should be fairly short.
	ReadTimeout time.Duration

	// ReadHeaderTimeout defines how long before we give up on the client,
	// this should be fairly short.
	ReadHeaderTimeout time.Duration

	// WriteTimeout defines how long we take to respond before we give up.
	WriteTimeout time.Duration

	// SeedFile, when set, is loaded into the store at start up.
	SeedFile string

	// TLSCertFile and TLSKeyFile enable HTTPS when both are set.
	TLSCertFile string
	TLSKeyFile  string
}

// AddFlags adds the options flags to the given flag set.
func (o *Options) AddFlags(f *pflag.FlagSet) {
	f.StringVar(&o.ListenAddress, "server-listen-address", ":3000", "API listener address.")
	f.DurationVar(&o.ReadTimeout, "server-read-timeout", time.Second, "How long to wait for the client to send the request body.")
	f.DurationVar(&o.ReadHeaderTimeout, "server-read-header-timeout", time.Second, "How long to wait for the client to send headers.")
	f.DurationVar(&o.WriteTimeout, "server-write-timeout", 10*time.Second, "How long to wait for the API to respond to the client.")
	f.StringVar(&o.SeedFile, "seed-file", "", "JSON file of persons to load at start up.")
	f.StringVar(&o.TLSCertFile, "tls-cert-file", "", "Certificate to serve HTTPS with.")
	f.StringVar(&o.TLSKeyFile, "tls-key-file", "", "Key to serve HTTPS with.")
}

// TLS returns true if the server should serve HTTPS.
func (o *Options) TLS() bool {
	return o.TLSCertFile != "" && o.TLSKeyFile != ""
}

// NewHandler returns the persons API with its middleware stack.
// The base logger is taken from the context.
func NewHandler(ctx context.Context, persons *person.Client) (http.Handler, error) {
	validator, err := openapimiddleware.Middleware(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create openapi middleware: %w", err)
	}

	h, err := handler.New(persons)
	if err != nil {
		return nil, err
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(logging.Middleware(log.FromContext(ctx)))
	router.Use(middleware.Recoverer)
	router.Use(validator)

	router.Get("/persons", h.GetPersons)
	router.Post("/persons", h.PostPersons)
	router.Get("/persons/{id}", h.GetPersonsID)
	router.Patch("/persons/{id}", h.PatchPersonsID)
	router.Put("/persons/{id}", h.PutPersonsID)
	router.Delete("/persons/{id}", h.DeletePersonsID)

	return router, nil
}

// Server is the persons API server.
type Server struct {
	// Options are server specific options e.g. listener address etc.
	Options Options
}

// AddFlags registers all server flags.
func (s *Server) AddFlags(flags *pflag.FlagSet) {
	s.Options.AddFlags(flags)
}

// GetServer creates the HTTP server, seeding the store from the seed file
// if one was given.
func (s *Server) GetServer(ctx context.Context) (*http.Server, error) {
	var seed openapi.PersonList

	if s.Options.SeedFile != "" {
		persons, err := person.LoadSeed(s.Options.SeedFile)
		if err != nil {
			return nil, err
		}

		seed = persons
	}

	persons, err := person.New(seed...)
	if err != nil {
		return nil, err
	}

	h, err := NewHandler(ctx, persons)
	if err != nil {
		return nil, err
	}

	server := &http.Server{
		Addr:              s.Options.ListenAddress,
		ReadTimeout:       s.Options.ReadTimeout,
		ReadHeaderTimeout: s.Options.ReadHeaderTimeout,
		WriteTimeout:      s.Options.WriteTimeout,
		Handler:           h,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	return server, nil
}
