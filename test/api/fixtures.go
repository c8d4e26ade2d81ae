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
	"errors"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/unikorn-cloud/persons/pkg/client"
	"github.com/unikorn-cloud/persons/pkg/openapi"
	"github.com/unikorn-cloud/persons/pkg/server"
	"github.com/unikorn-cloud/persons/pkg/server/handler/person"

	"k8s.io/apimachinery/pkg/util/sets"
	"k8s.io/utils/ptr"
)

// PersonPayloadBuilder builds person payloads for testing.
type PersonPayloadBuilder struct {
	person openapi.Person
}

// NewPersonPayload creates a new person payload builder with every declared
// field except the ID populated.
func NewPersonPayload() *PersonPayloadBuilder {
	return &PersonPayloadBuilder{
		person: openapi.Person{
			FirstName:   ptr.To("ZOLO"),
			LastName:    ptr.To("Muffin"),
			Age:         ptr.To(23),
			Address:     ptr.To("New york"),
			PhoneNumber: ptr.To("4765772273"),
		},
	}
}

// WithFirstName sets the first name.
func (b *PersonPayloadBuilder) WithFirstName(name string) *PersonPayloadBuilder {
	b.person.FirstName = ptr.To(name)
	return b
}

// WithLastName sets the last name.
func (b *PersonPayloadBuilder) WithLastName(name string) *PersonPayloadBuilder {
	b.person.LastName = ptr.To(name)
	return b
}

func (b *PersonPayloadBuilder) WithAge(age int) *PersonPayloadBuilder {
	b.person.Age = ptr.To(age)
	return b
}

// WithID sets a client chosen ID, by default the server assigns one.
func (b *PersonPayloadBuilder) WithID(id int) *PersonPayloadBuilder {
	b.person.Id = ptr.To(id)
	return b
}

func (b *PersonPayloadBuilder) WithAddress(address string) *PersonPayloadBuilder {
	b.person.Address = ptr.To(address)
	return b
}

func (b *PersonPayloadBuilder) WithPhoneNumber(phoneNumber string) *PersonPayloadBuilder {
	b.person.PhoneNumber = ptr.To(phoneNumber)
	return b
}

// WithExtension adds a field outside the declared set.
func (b *PersonPayloadBuilder) WithExtension(name string, value interface{}) *PersonPayloadBuilder {
	b.person.Set(name, value)
	return b
}

// Without unsets a declared field so it is omitted from the payload.
func (b *PersonPayloadBuilder) Without(name string) *PersonPayloadBuilder {
	switch name {
	case "firstName":
		b.person.FirstName = nil
	case "lastName":
		b.person.LastName = nil
	case "age":
		b.person.Age = nil
	case "id":
		b.person.Id = nil
	case "address":
		b.person.Address = nil
	case "phoneNumber":
		b.person.PhoneNumber = nil
	default:
		delete(b.person.AdditionalProperties, name)
	}

	return b
}

// Build returns the constructed payload.
func (b *PersonPayloadBuilder) Build() openapi.Person {
	return b.person
}

// CreatePersonWithCleanup creates a person, asserts it was assigned an ID and
// schedules its deletion when the test finishes.
func CreatePersonWithCleanup(ctx context.Context, service *PersonService, person openapi.Person) (int, *client.Response) {
	GinkgoHelper()

	response := service.CreatePerson(ctx, person)
	id := CreatedID(response)

	DeletePersonOnCleanup(service, id)

	return id, response
}

// DeletePersonOnCleanup deletes the person when the test finishes, tolerating
// a test that deleted it already.
func DeletePersonOnCleanup(service *PersonService, id int) {
	DeferCleanup(func(ctx context.Context) {
		_, err := service.Client().DeletePerson(ctx, id)

		var statusErr *client.UnexpectedStatusError

		if errors.As(err, &statusErr) && statusErr.Actual == http.StatusNotFound {
			return
		}

		if err != nil {
			GinkgoWriter.Printf("Warning: failed to delete person %d: %v\n", id, err)
		}
	}, NodeTimeout(service.config.RequestTimeout))
}

// ExpectFieldSet asserts the person carries exactly the named fields, declared
// and extension alike.
func ExpectFieldSet(person openapi.Person, fields ...string) {
	GinkgoHelper()

	actual := sets.New(person.FieldNames()...)
	expected := sets.New(fields...)

	Expect(sets.List(expected.Difference(actual))).To(BeEmpty(), "missing fields")
	Expect(sets.List(actual.Difference(expected))).To(BeEmpty(), "unexpected fields")
}

// SeedPersons are loaded into every mock server.
func SeedPersons() openapi.PersonList {
	return openapi.PersonList{
		{Id: ptr.To(1), FirstName: ptr.To("Jane"), LastName: ptr.To("Doe"), Age: ptr.To(41)},
		{Id: ptr.To(2), FirstName: ptr.To("John"), LastName: ptr.To("Doe"), Age: ptr.To(43)},
		{Id: ptr.To(3), FirstName: ptr.To("Jim"), LastName: ptr.To("Doe"), Age: ptr.To(12)},
	}
}

// StartMockServer starts a seeded in-process backend for the current test and
// returns the configuration pointing at it.  It is shut down when the test
// finishes.
func StartMockServer(ctx context.Context, config *TestConfig) *TestConfig {
	GinkgoHelper()

	persons, err := person.New(SeedPersons()...)
	Expect(err).NotTo(HaveOccurred())

	handler, err := server.NewHandler(ctx, persons)
	Expect(err).NotTo(HaveOccurred())

	s := httptest.NewServer(handler)
	DeferCleanup(s.Close)

	out, err := config.WithServerURL(s.URL)
	Expect(err).NotTo(HaveOccurred())

	return out
}
