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

	. "github.com/onsi/ginkgo/v2" //nolint:revive
	. "github.com/onsi/gomega"    //nolint:revive

	"github.com/unikorn-cloud/persons/pkg/client"
	"github.com/unikorn-cloud/persons/test/api"
)

func created(body string) *client.Response {
	return &client.Response{
		StatusCode: http.StatusCreated,
		Body:       []byte(body),
	}
}

var _ = Describe("Created ID extraction", func() {
	It("should return a numeric id", func() {
		Expect(api.CreatedID(created(`{"id":7,"firstName":"ZOLO"}`))).To(Equal(7))
	})

	It("should accept an id rendered as a string", func() {
		Expect(api.CreatedID(created(`{"id":"7"}`))).To(Equal(7))
	})

	DescribeTable("should fail the test when the id is unusable",
		func(body string) {
			failures := InterceptGomegaFailures(func() {
				api.CreatedID(created(body))
			})

			Expect(failures).NotTo(BeEmpty())
		},
		Entry("when the id is missing", `{}`),
		Entry("when the id is null", `{"id":null}`),
		Entry("when the id is not an integer", `{"id":"abc"}`),
		Entry("when the id is a boolean", `{"id":true}`),
		Entry("when the body is not JSON", `created`),
	)
})
