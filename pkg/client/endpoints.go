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
	"fmt"
	"strings"

	"github.com/oapi-codegen/runtime"
)

// Operation is a logical API operation.
type Operation string

const (
	ListPersons  Operation = "ListPersons"
	GetPerson    Operation = "GetPerson"
	CreatePerson Operation = "CreatePerson"
	UpdatePerson Operation = "UpdatePerson"
	DeletePerson Operation = "DeletePerson"
)

const idPlaceholder = "{id}"

// templates maps operations to path templates.
//
//nolint:gochecknoglobals
var templates = map[Operation]string{
	ListPersons:  "/persons",
	GetPerson:    "/persons/{id}",
	CreatePerson: "/persons",
	UpdatePerson: "/persons/{id}",
	DeletePerson: "/persons/{id}",
}

// Template returns the path template for an operation.
func Template(op Operation) (string, error) {
	template, ok := templates[op]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownOperation, op)
	}

	return template, nil
}

// Expand replaces the single {id} placeholder in a template with the
// decimal representation of id.
func Expand(template string, id int) (string, error) {
	if n := strings.Count(template, idPlaceholder); n != 1 {
		return "", fmt.Errorf("%w: template %q has %d id placeholders", ErrInvalidTemplate, template, n)
	}

	value, err := runtime.StyleParamWithLocation("simple", false, "id", runtime.ParamLocationPath, id)
	if err != nil {
		return "", err
	}

	return strings.Replace(template, idPlaceholder, value, 1), nil
}

// Endpoints contains all API endpoint patterns.
type Endpoints struct{}

// NewEndpoints creates a new Endpoints instance.
func NewEndpoints() *Endpoints {
	return &Endpoints{}
}

func (e *Endpoints) resolve(op Operation, id int) (string, error) {
	template, err := Template(op)
	if err != nil {
		return "", err
	}

	return Expand(template, id)
}

// Person collection endpoints.
func (e *Endpoints) ListPersons() string {
	return templates[ListPersons]
}

func (e *Endpoints) CreatePerson() string {
	return templates[CreatePerson]
}

// Person item endpoints.
func (e *Endpoints) GetPerson(id int) (string, error) {
	return e.resolve(GetPerson, id)
}

func (e *Endpoints) UpdatePerson(id int) (string, error) {
	return e.resolve(UpdatePerson, id)
}

func (e *Endpoints) DeletePerson(id int) (string, error) {
	return e.resolve(DeletePerson, id)
}
