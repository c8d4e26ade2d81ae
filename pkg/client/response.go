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

package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/unikorn-cloud/persons/pkg/openapi"
)

// Response is the outcome of a single HTTP call.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	// TraceID identifies the request in server logs.
	TraceID string
}

// DecodeJSON unmarshals the response body.
func (r *Response) DecodeJSON(v interface{}) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("unmarshaling response: %w", err)
	}

	return nil
}

// Person decodes the response body as a single person.
func (r *Response) Person() (*openapi.Person, error) {
	var person openapi.Person

	if err := r.DecodeJSON(&person); err != nil {
		return nil, err
	}

	return &person, nil
}

// Field looks up a value by dot separated path e.g. "data.name".
// Returns false if any element is missing or null.
func (r *Response) Field(path string) (interface{}, bool) {
	decoder := json.NewDecoder(bytes.NewReader(r.Body))
	decoder.UseNumber()

	var value interface{}

	if err := decoder.Decode(&value); err != nil {
		return nil, false
	}

	for _, key := range strings.Split(path, ".") {
		object, ok := value.(map[string]interface{})
		if !ok {
			return nil, false
		}

		if value, ok = object[key]; !ok {
			return nil, false
		}
	}

	if value == nil {
		return nil, false
	}

	return value, true
}

// String returns the value at path in string form.
func (r *Response) String(path string) (string, bool) {
	value, ok := r.Field(path)
	if !ok {
		return "", false
	}

	switch t := value.(type) {
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case bool:
		return strconv.FormatBool(t), true
	}

	data, err := json.Marshal(value)
	if err != nil {
		return "", false
	}

	return string(data), true
}
