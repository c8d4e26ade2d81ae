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

// Package api provides integration test utilities for the Person API.
//
// # Hard Assertions
//
// The client in pkg/client reports status mismatches as errors and leaves the
// decision to the caller.  PersonService is the layer that decides: every
// call fails the running test when the server does not answer with the
// status the operation expects.  Negative tests reach past it via
// PersonService.Client.
//
// # Hermetic Runs
//
// When no API_BASE_URL is configured, or API_MOCK_SERVER is set, each test
// gets a freshly seeded in-process backend so tests never share state.
// Pointing API_BASE_URL at a json-server style deployment runs the same
// tests against it.
package api
