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

package openapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
)

// Person is a person as exchanged with the persons API.
// Nil fields are unset and are omitted from the wire representation, so a
// partial person may be used to update only the fields it defines.
type Person struct {
	FirstName   *string `json:"firstName,omitempty"`
	LastName    *string `json:"lastName,omitempty"`
	Age         *int    `json:"age,omitempty"`
	Id          *int    `json:"id,omitempty"` //nolint:revive,stylecheck
	Address     *string `json:"address,omitempty"`
	PhoneNumber *string `json:"phoneNumber,omitempty"`

	// AdditionalProperties holds any fields not declared above.
	AdditionalProperties map[string]interface{} `json:"-"`
}

// PersonList is a list of persons.
type PersonList []Person

// personFields lists the declared fields in wire order.
//
//nolint:gochecknoglobals
var personFields = []string{
	"firstName",
	"lastName",
	"age",
	"id",
	"address",
	"phoneNumber",
}

// IsPersonField returns true if the name is a declared person field.
func IsPersonField(name string) bool {
	return slices.Contains(personFields, name)
}

// Get returns the specified additional property.
func (a Person) Get(fieldName string) (value interface{}, found bool) {
	if a.AdditionalProperties != nil {
		value, found = a.AdditionalProperties[fieldName]
	}

	return
}

// Set sets the specified additional property.
func (a *Person) Set(fieldName string, value interface{}) {
	if a.AdditionalProperties == nil {
		a.AdditionalProperties = make(map[string]interface{})
	}

	a.AdditionalProperties[fieldName] = value
}

// FieldNames returns the names of all fields that are present on the wire.
func (a Person) FieldNames() []string {
	var names []string

	for _, field := range a.declared() {
		if field.set {
			names = append(names, field.name)
		}
	}

	for name := range a.AdditionalProperties {
		if !IsPersonField(name) {
			names = append(names, name)
		}
	}

	return names
}

type declaredField struct {
	name  string
	set   bool
	value interface{}
}

func (a Person) declared() []declaredField {
	return []declaredField{
		{name: "firstName", set: a.FirstName != nil, value: a.FirstName},
		{name: "lastName", set: a.LastName != nil, value: a.LastName},
		{name: "age", set: a.Age != nil, value: a.Age},
		{name: "id", set: a.Id != nil, value: a.Id},
		{name: "address", set: a.Address != nil, value: a.Address},
		{name: "phoneNumber", set: a.PhoneNumber != nil, value: a.PhoneNumber},
	}
}

// MarshalJSON writes declared fields in order followed by additional
// properties sorted by name. Unset fields are omitted.
func (a Person) MarshalJSON() ([]byte, error) {
	var buffer bytes.Buffer

	buffer.WriteByte('{')

	first := true

	write := func(name string, value interface{}) error {
		key, err := json.Marshal(name)
		if err != nil {
			return fmt.Errorf("error marshaling key '%s': %w", name, err)
		}

		data, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("error marshaling '%s': %w", name, err)
		}

		if !first {
			buffer.WriteByte(',')
		}

		first = false

		buffer.Write(key)
		buffer.WriteByte(':')
		buffer.Write(data)

		return nil
	}

	for _, field := range a.declared() {
		if !field.set {
			continue
		}

		if err := write(field.name, field.value); err != nil {
			return nil, err
		}
	}

	names := make([]string, 0, len(a.AdditionalProperties))

	for name := range a.AdditionalProperties {
		// Declared fields always take precedence.
		if IsPersonField(name) {
			continue
		}

		names = append(names, name)
	}

	slices.Sort(names)

	for _, name := range names {
		if err := write(name, a.AdditionalProperties[name]); err != nil {
			return nil, err
		}
	}

	buffer.WriteByte('}')

	return buffer.Bytes(), nil
}

// UnmarshalJSON binds declared fields and captures everything else as
// additional properties. Unknown fields are never an error.
func (a *Person) UnmarshalJSON(b []byte) error {
	object := make(map[string]json.RawMessage)

	if err := json.Unmarshal(b, &object); err != nil {
		return err
	}

	*a = Person{}

	for name, raw := range object {
		var err error

		switch name {
		case "firstName":
			err = json.Unmarshal(raw, &a.FirstName)
		case "lastName":
			err = json.Unmarshal(raw, &a.LastName)
		case "age":
			err = json.Unmarshal(raw, &a.Age)
		case "id":
			err = json.Unmarshal(raw, &a.Id)
		case "address":
			err = json.Unmarshal(raw, &a.Address)
		case "phoneNumber":
			err = json.Unmarshal(raw, &a.PhoneNumber)
		default:
			var value interface{}

			// Numbers are kept as written so they are re-encoded verbatim.
			decoder := json.NewDecoder(bytes.NewReader(raw))
			decoder.UseNumber()

			if err = decoder.Decode(&value); err == nil {
				a.Set(name, value)
			}
		}

		if err != nil {
			return fmt.Errorf("error reading '%s': %w", name, err)
		}
	}

	return nil
}
