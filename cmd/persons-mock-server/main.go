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

package main

import (
	"context"
	"errors"
	goflag "flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/unikorn-cloud/persons/pkg/constants"
	"github.com/unikorn-cloud/persons/pkg/server"

	cr "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
)

func run() error {
	var (
		s           server.Server
		zapOptions  zap.Options
		gracePeriod time.Duration
	)

	s.AddFlags(pflag.CommandLine)
	pflag.DurationVar(&gracePeriod, "shutdown-grace-period", 5*time.Second, "How long to wait for in-flight requests at shutdown.")

	zapOptions.BindFlags(goflag.CommandLine)
	pflag.CommandLine.AddGoFlagSet(goflag.CommandLine)

	pflag.Parse()

	log.SetLogger(zap.New(zap.UseFlagOptions(&zapOptions)))

	logger := log.Log.WithName("init")
	logger.Info("service starting", "application", constants.Application, "version", constants.Version, "revision", constants.Revision)

	ctx := log.IntoContext(cr.SetupSignalHandler(), log.Log.WithName("persons"))

	httpServer, err := s.GetServer(ctx)
	if err != nil {
		return err
	}

	go func() {
		<-ctx.Done()

		// The signal context is done, so shutdown needs a fresh one.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), gracePeriod)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error(err, "server shutdown error")
		}
	}()

	logger.Info("listening", "address", s.Options.ListenAddress, "tls", s.Options.TLS())

	if s.Options.TLS() {
		err = httpServer.ListenAndServeTLS(s.Options.TLSCertFile, s.Options.TLSKeyFile)
	} else {
		err = httpServer.ListenAndServe()
	}

	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
