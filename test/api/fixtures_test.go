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

package api_test

import (
	"net/http"
	"time"

	. "github.com/onsi/ginkgo/v2" //nolint:revive
	. "github.com/onsi/gomega"    //nolint:revive

	"github.com/unikorn-cloud/persons/pkg/client"
	"github.com/unikorn-cloud/persons/test/api"
)

var _ = Describe("Person cleanup", Ordered, func() {
	var persons *api.PersonService

	BeforeAll(func(ctx SpecContext) {
		config := api.StartMockServer(ctx, &api.TestConfig{
			Config: client.Config{
				RequestTimeout: 5 * time.Second,
			},
		})

		var err error

		persons, err = api.NewPersonService(config)
		Expect(err).NotTo(HaveOccurred())
	})

	It("should create a person with a fixed id", func(ctx SpecContext) {
		api.DeletePersonOnCleanup(persons, 4)

		response := persons.CreatePerson(ctx, api.NewPersonPayload().WithID(4).Build())
		Expect(api.CreatedID(response)).To(Equal(4))
	})

	It("should have deleted the person once the previous test finished", func(ctx SpecContext) {
		_, err := persons.Client().GetPerson(ctx, 4)
		api.ExpectStatusMismatch(err, http.StatusOK, http.StatusNotFound)
	})

	It("should tolerate a person that is already gone", func(ctx SpecContext) {
		api.DeletePersonOnCleanup(persons, 4)

		persons.ListPersons(ctx)
	})

	It("should leave the seeded persons in place", func(ctx SpecContext) {
		Expect(persons.ListPersons(ctx)).To(HaveLen(len(api.SeedPersons())))
	})
})
