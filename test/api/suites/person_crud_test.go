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

//nolint:testpackage,revive // test package in suites is standard for these tests, dot imports standard for Ginkgo
package suites

import (
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/unikorn-cloud/persons/pkg/client"
	"github.com/unikorn-cloud/persons/test/api"
)

var _ = Describe("Person Management", func() {
	Context("When creating a new person", func() {
		Describe("Given a fully populated payload", func() {
			It("should return 201 with an assigned id", func() {
				payload := api.NewPersonPayload().WithID(4).Build()

				// Registered first so a stale person 4 is removed even if creation fails.
				api.DeletePersonOnCleanup(persons, 4)

				response := persons.CreatePerson(ctx, payload)

				Expect(response.StatusCode).To(Equal(http.StatusCreated))

				id, found := response.Field("id")
				Expect(found).To(BeTrue())
				Expect(id).NotTo(BeNil())

				firstName, _ := response.String("firstName")
				Expect(firstName).To(Equal("ZOLO"))

				phoneNumber, _ := response.String("phoneNumber")
				Expect(phoneNumber).To(Equal("4765772273"))
			})
		})

		Describe("Given a payload without an id", func() {
			It("should have an id assigned by the server", func() {
				id, response := api.CreatePersonWithCleanup(ctx, persons, api.NewPersonPayload().Build())

				Expect(id).To(BeNumerically(">", 0))

				person, err := response.Person()
				Expect(err).NotTo(HaveOccurred())
				api.ExpectFieldSet(*person, "firstName", "lastName", "age", "id", "address", "phoneNumber")
			})
		})

		Describe("Given a payload with extension fields", func() {
			It("should round trip the extension fields", func() {
				nickname := api.GenerateTestID()

				id, _ := api.CreatePersonWithCleanup(ctx, persons,
					api.NewPersonPayload().
						Without("address").
						Without("phoneNumber").
						WithExtension("nickname", nickname).
						Build())

				person := persons.GetPerson(ctx, id)
				api.ExpectFieldSet(*person, "firstName", "lastName", "age", "id", "nickname")

				value, found := person.Get("nickname")
				Expect(found).To(BeTrue())
				Expect(value).To(Equal(nickname))
			})
		})
	})

	Context("When listing persons", func() {
		It("should return a non-empty list", func() {
			list := persons.ListPersons(ctx)
			Expect(list).NotTo(BeEmpty())

			for _, person := range list {
				Expect(person.Id).NotTo(BeNil())
			}
		})

		It("should include a newly created person", func() {
			id, _ := api.CreatePersonWithCleanup(ctx, persons, api.NewPersonPayload().Build())

			var ids []int

			for _, person := range persons.ListPersons(ctx) {
				if person.Id != nil {
					ids = append(ids, *person.Id)
				}
			}

			Expect(ids).To(ContainElement(id))
		})
	})

	Context("When updating a person", func() {
		It("should only modify the supplied fields", func() {
			id, _ := api.CreatePersonWithCleanup(ctx, persons, api.NewPersonPayload().Build())

			patch := api.NewPersonPayload().
				Without("firstName").
				Without("lastName").
				Without("address").
				Without("phoneNumber").
				WithAge(24).
				Build()

			response := persons.UpdatePerson(ctx, id, patch)
			Expect(response.StatusCode).To(Equal(http.StatusOK))

			person := persons.GetPerson(ctx, id)
			Expect(person.Age).To(HaveValue(Equal(24)))
			Expect(person.FirstName).To(HaveValue(Equal("ZOLO")))
			Expect(person.Address).To(HaveValue(Equal("New york")))
		})
	})

	Context("When deleting a person", func() {
		It("should delete person 3", func() {
			response := persons.DeletePerson(ctx, 3)
			Expect(response.StatusCode).To(Equal(http.StatusOK))
		})

		It("should no longer return the person", func() {
			if config.DeleteMethod == http.MethodPatch {
				Skip("delete is configured as PATCH, which does not remove the person")
			}

			id, _ := api.CreatePersonWithCleanup(ctx, persons, api.NewPersonPayload().Build())

			persons.DeletePerson(ctx, id)

			_, err := persons.Client().GetPerson(ctx, id)
			api.ExpectStatusMismatch(err, http.StatusOK, http.StatusNotFound)
		})
	})

	Context("When the server responds with an unexpected status", func() {
		It("should report the expected status", func() {
			_, err := persons.Client().GetPerson(ctx, 999999)
			Expect(err).To(MatchError(client.ErrUnexpectedStatus))
			api.ExpectStatusMismatch(err, http.StatusOK, http.StatusNotFound)
		})

		It("should return the response alongside the error", func() {
			response, err := persons.Client().Do(ctx, &client.Request{
				Method:         http.MethodGet,
				Path:           "/persons",
				ExpectedStatus: http.StatusCreated,
			})

			api.ExpectStatusMismatch(err, http.StatusCreated, http.StatusOK)
			Expect(response).NotTo(BeNil())
			Expect(response.StatusCode).To(Equal(http.StatusOK))
		})
	})
})
