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

//nolint:revive,staticcheck // dot imports are standard for Ginkgo/Gomega test code
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/unikorn-cloud/persons/pkg/client"
	"github.com/unikorn-cloud/persons/pkg/openapi"
)

// PersonService wraps the person client for tests.  Every call asserts that
// the server responded with the expected status and fails the test if not,
// so callers only deal with decoded data.  Create one per test.
type PersonService struct {
	client *client.Client
	config *TestConfig
}

// NewPersonService creates a service for the configured server.
func NewPersonService(config *TestConfig) (*PersonService, error) {
	c, err := client.New(&config.Config)
	if err != nil {
		return nil, err
	}

	return &PersonService{
		client: c,
		config: config,
	}, nil
}

// Client gives access to the non-asserting client for negative tests.
func (s *PersonService) Client() *client.Client {
	return s.client
}

// expectStatus fails the test on any error, reporting status mismatches with
// the server's trace ID so the request can be found in its logs.
func expectStatus(response *client.Response, err error) {
	GinkgoHelper()

	var statusErr *client.UnexpectedStatusError

	if errors.As(err, &statusErr) {
		Expect(statusErr.Actual).To(Equal(statusErr.Expected), "%s: %s %s (trace ID: %s) body: %s",
			statusErr.Message, statusErr.Method, statusErr.Path, statusErr.TraceID, string(statusErr.Body))
	}

	Expect(err).NotTo(HaveOccurred())

	if response != nil {
		GinkgoWriter.Printf("status=%d traceID=%s body=%s\n", response.StatusCode, response.TraceID, string(response.Body))
	}
}

// ListPersons returns every person, asserting a 200 response.
func (s *PersonService) ListPersons(ctx context.Context) openapi.PersonList {
	GinkgoHelper()

	persons, err := s.client.ListPersons(ctx)
	expectStatus(nil, err)

	return persons
}

// GetPerson returns the person with id, asserting a 200 response.
func (s *PersonService) GetPerson(ctx context.Context, id int) *openapi.Person {
	GinkgoHelper()

	person, err := s.client.GetPerson(ctx, id)
	expectStatus(nil, err)

	return person
}

// CreatePerson creates a person, asserting a 201 response.
func (s *PersonService) CreatePerson(ctx context.Context, person openapi.Person) *client.Response {
	GinkgoHelper()

	response, err := s.client.CreatePerson(ctx, person)
	expectStatus(response, err)

	return response
}

// UpdatePerson patches a person, asserting a 200 response.
func (s *PersonService) UpdatePerson(ctx context.Context, id int, person openapi.Person) *client.Response {
	GinkgoHelper()

	response, err := s.client.UpdatePerson(ctx, id, person)
	expectStatus(response, err)

	return response
}

// DeletePerson deletes a person, asserting a 200 response.
func (s *PersonService) DeletePerson(ctx context.Context, id int) *client.Response {
	GinkgoHelper()

	response, err := s.client.DeletePerson(ctx, id)
	expectStatus(response, err)

	return response
}

// CreatedID extracts the server assigned ID from a create response, failing
// the test if it is absent, null or not an integer.
func CreatedID(response *client.Response) int {
	GinkgoHelper()

	value, found := response.Field("id")
	if !Expect(found).To(BeTrue(), "response has no id: %s", string(response.Body)) {
		return 0
	}

	var text string

	switch t := value.(type) {
	case json.Number:
		text = t.String()
	case string:
		text = t
	default:
		text = fmt.Sprint(t)
	}

	id, err := strconv.Atoi(text)
	Expect(err).NotTo(HaveOccurred(), "id is not an integer: %s", string(response.Body))

	return id
}

// ExpectStatusMismatch asserts err reports the server answered with actual
// rather than the expected status.
func ExpectStatusMismatch(err error, expected, actual int) {
	GinkgoHelper()

	var statusErr *client.UnexpectedStatusError

	Expect(errors.As(err, &statusErr)).To(BeTrue(), "expected a status error, got %v", err)
	Expect(statusErr.Expected).To(Equal(expected))
	Expect(statusErr.Actual).To(Equal(actual))
	Expect(statusErr.Message).To(Equal("Response status is not " + strconv.Itoa(expected)))
	Expect(statusErr.Error()).To(ContainSubstring("got " + strconv.Itoa(actual)))
}
