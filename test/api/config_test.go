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
	"net/http/httptest"
	"time"

	. "github.com/onsi/ginkgo/v2" //nolint:revive
	. "github.com/onsi/gomega"    //nolint:revive

	"github.com/unikorn-cloud/persons/pkg/client"
	"github.com/unikorn-cloud/persons/test/api"
)

var _ = Describe("Test configuration", func() {
	var config *api.TestConfig

	BeforeEach(func() {
		config = &api.TestConfig{
			Config: client.Config{
				BaseURL:            "http://localhost",
				Port:               "3000",
				RequestTimeout:     5 * time.Second,
				InsecureSkipVerify: true,
				DeleteMethod:       http.MethodPatch,
				ValidateResponses:  true,
				Username:           "svc",
				Password:           "s3cret",
			},
		}
	})

	Context("When pointing at another persons API", func() {
		It("should keep every other setting", func() {
			out, err := config.WithServerURL("http://127.0.0.1:4000")
			Expect(err).NotTo(HaveOccurred())

			Expect(out.BaseURL).To(Equal("http://127.0.0.1"))
			Expect(out.Port).To(Equal("4000"))
			Expect(out.Username).To(Equal("svc"))
			Expect(out.DeleteMethod).To(Equal(http.MethodPatch))
			Expect(config.BaseURL).To(Equal("http://localhost"), "original must be unchanged")
		})
	})

	Context("When pointing at a third party service", func() {
		It("should only inherit the request timeout", func() {
			out, err := config.ThirdPartyConfig("https://postman-echo.com")
			Expect(err).NotTo(HaveOccurred())

			Expect(out.BaseURL).To(Equal("https://postman-echo.com"))
			Expect(out.Port).To(Equal("443"))
			Expect(out.RequestTimeout).To(Equal(5 * time.Second))
			Expect(out.Username).To(BeEmpty())
			Expect(out.Password).To(BeEmpty())
			Expect(out.InsecureSkipVerify).To(BeFalse())
			Expect(out.ValidateResponses).To(BeFalse())
			Expect(out.DeleteMethod).To(BeEmpty())
		})

		It("should not send the persons API credentials", func(ctx SpecContext) {
			received := make(chan http.Header, 1)

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				received <- r.Header.Clone()

				if _, _, ok := r.BasicAuth(); ok {
					w.WriteHeader(http.StatusOK)
					return
				}

				w.WriteHeader(http.StatusUnauthorized)
			}))
			DeferCleanup(server.Close)

			out, err := config.ThirdPartyConfig(server.URL)
			Expect(err).NotTo(HaveOccurred())

			c, err := client.New(out)
			Expect(err).NotTo(HaveOccurred())

			response, err := c.Do(ctx, &client.Request{
				Method:         http.MethodGet,
				Path:           "/basic-auth",
				ExpectedStatus: http.StatusUnauthorized,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(response.StatusCode).To(Equal(http.StatusUnauthorized))

			var header http.Header

			Eventually(received).Should(Receive(&header))
			Expect(header).NotTo(HaveKey("Authorization"))
		})
	})
})
