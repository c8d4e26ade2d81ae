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
)

// thirdPartyClient returns a client for a public demo API, these are only
// run on request as they depend on services outside our control.
func thirdPartyClient(serverURL string) *client.Client {
	GinkgoHelper()

	if !config.ThirdPartyTests {
		Skip("third party tests disabled, set THIRD_PARTY_TESTS to enable")
	}

	c, err := config.ThirdPartyConfig(serverURL)
	Expect(err).NotTo(HaveOccurred())

	out, err := client.New(c)
	Expect(err).NotTo(HaveOccurred())

	return out
}

var _ = Describe("Third Party APIs", Label("third-party"), func() {
	Context("When accessing a basic auth protected resource", func() {
		var c *client.Client

		BeforeEach(func() {
			c = thirdPartyClient("https://postman-echo.com")
		})

		It("should reject requests without credentials", func() {
			_, err := c.Do(ctx, &client.Request{
				Method:         http.MethodGet,
				Path:           "/basic-auth",
				ExpectedStatus: http.StatusUnauthorized,
			})
			Expect(err).NotTo(HaveOccurred())
		})

		It("should accept requests with credentials", func() {
			response, err := c.Do(ctx, &client.Request{
				Method:         http.MethodGet,
				Path:           "/basic-auth",
				Username:       "postman",
				Password:       "password",
				ExpectedStatus: http.StatusOK,
			})
			Expect(err).NotTo(HaveOccurred())

			authenticated, found := response.String("authenticated")
			Expect(found).To(BeTrue())
			Expect(authenticated).To(Equal("true"))
		})
	})

	Context("When listing books", func() {
		var c *client.Client

		BeforeEach(func() {
			c = thirdPartyClient("https://demoqa.com")
		})

		It("should return the catalogue as JSON", func() {
			response, err := c.Do(ctx, &client.Request{
				Method:         http.MethodGet,
				Path:           "/BookStore/v1/Books",
				ExpectedStatus: http.StatusOK,
			})
			Expect(err).NotTo(HaveOccurred())

			Expect(response.Header.Get("Content-Type")).To(HavePrefix("application/json"))
			Expect(response.Header.Get("Server")).NotTo(BeEmpty())

			var catalogue struct {
				Books []map[string]interface{} `json:"books"`
			}

			Expect(response.DecodeJSON(&catalogue)).To(Succeed())
			Expect(catalogue.Books).NotTo(BeEmpty())
		})
	})

	Context("When creating an employee", func() {
		var c *client.Client

		BeforeEach(func() {
			c = thirdPartyClient("http://dummy.restapiexample.com")
		})

		It("should echo the created record", func() {
			employee := map[string]interface{}{
				"name":   "Vibha",
				"salary": 75000,
				"age":    30,
			}

			response, err := c.Do(ctx, &client.Request{
				Method:         http.MethodPost,
				Path:           "/api/v1/create",
				Body:           employee,
				ExpectedStatus: http.StatusOK,
			})
			Expect(err).NotTo(HaveOccurred())

			name, found := response.String("data.name")
			Expect(found).To(BeTrue())
			Expect(name).To(Equal("Vibha"))

			message, found := response.String("message")
			Expect(found).To(BeTrue())
			Expect(message).To(Equal("Successfully! Record has been added."))
		})
	})

	Context("When creating a booking", func() {
		var c *client.Client

		BeforeEach(func() {
			c = thirdPartyClient("https://restful-booker.herokuapp.com")
		})

		It("should accept a nested JSON payload", func() {
			booking := map[string]interface{}{
				"firstname":       "Jim",
				"lastname":        "Brown",
				"totalprice":      111,
				"depositpaid":     true,
				"additionalneeds": "Lunch",
				"bookingdates": map[string]interface{}{
					"checkin":  "2021-07-01",
					"checkout": "2021-07-01",
				},
			}

			response, err := c.Do(ctx, &client.Request{
				Method:         http.MethodPost,
				Path:           "/booking",
				Body:           booking,
				ExpectedStatus: http.StatusOK,
			})
			Expect(err).NotTo(HaveOccurred())

			_, found := response.Field("bookingid")
			Expect(found).To(BeTrue())

			checkin, found := response.String("booking.bookingdates.checkin")
			Expect(found).To(BeTrue())
			Expect(checkin).To(Equal("2021-07-01"))
		})
	})
})
