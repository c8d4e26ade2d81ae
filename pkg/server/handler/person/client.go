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

package person

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"sync"

	"github.com/unikorn-cloud/persons/pkg/openapi"

	"k8s.io/utils/ptr"
)

var (
	// ErrNotFound is raised when a person does not exist.
	ErrNotFound = errors.New("person not found")

	// ErrConflict is raised when creating a person with an ID in use.
	ErrConflict = errors.New("person already exists")
)

// Client is an in-memory person store.  Persons are kept in insertion order
// and every person has an ID.  Callers always receive copies.
type Client struct {
	lock    sync.Mutex
	persons []openapi.Person
}

// New returns a new client seeded with the given persons.
func New(seed ...openapi.Person) (*Client, error) {
	c := &Client{}

	for i := range seed {
		if _, err := c.Create(seed[i]); err != nil {
			return nil, err
		}
	}

	return c, nil
}

type database struct {
	Persons openapi.PersonList `json:"persons"`
}

// LoadSeed reads persons from a file, either a JSON array of persons or a
// json-server style database with a "persons" key.
func LoadSeed(path string) (openapi.PersonList, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var persons openapi.PersonList

	if err := json.Unmarshal(data, &persons); err == nil {
		return persons, nil
	}

	var db database

	if err := json.Unmarshal(data, &db); err != nil {
		return nil, fmt.Errorf("seed file %s is neither a person list nor a database: %w", path, err)
	}

	return db.Persons, nil
}

func clone(in openapi.Person) openapi.Person {
	out := openapi.Person{
		AdditionalProperties: maps.Clone(in.AdditionalProperties),
	}

	if in.FirstName != nil {
		out.FirstName = ptr.To(*in.FirstName)
	}

	if in.LastName != nil {
		out.LastName = ptr.To(*in.LastName)
	}

	if in.Age != nil {
		out.Age = ptr.To(*in.Age)
	}

	if in.Id != nil {
		out.Id = ptr.To(*in.Id)
	}

	if in.Address != nil {
		out.Address = ptr.To(*in.Address)
	}

	if in.PhoneNumber != nil {
		out.PhoneNumber = ptr.To(*in.PhoneNumber)
	}

	return out
}

// merge copies set fields and additional properties from patch into base.
func merge(base *openapi.Person, patch openapi.Person) {
	if patch.FirstName != nil {
		base.FirstName = ptr.To(*patch.FirstName)
	}

	if patch.LastName != nil {
		base.LastName = ptr.To(*patch.LastName)
	}

	if patch.Age != nil {
		base.Age = ptr.To(*patch.Age)
	}

	if patch.Address != nil {
		base.Address = ptr.To(*patch.Address)
	}

	if patch.PhoneNumber != nil {
		base.PhoneNumber = ptr.To(*patch.PhoneNumber)
	}

	for name, value := range patch.AdditionalProperties {
		base.Set(name, value)
	}
}

// index returns the position of the person with the ID, or -1.
// Must be called with the lock held.
func (c *Client) index(id int) int {
	return slices.IndexFunc(c.persons, func(p openapi.Person) bool {
		return *p.Id == id
	})
}

// nextID returns one more than the largest ID in use.
// Must be called with the lock held.
func (c *Client) nextID() int {
	next := 1

	for _, p := range c.persons {
		if *p.Id >= next {
			next = *p.Id + 1
		}
	}

	return next
}

// List returns all persons.
func (c *Client) List() openapi.PersonList {
	c.lock.Lock()
	defer c.lock.Unlock()

	result := make(openapi.PersonList, len(c.persons))

	for i := range c.persons {
		result[i] = clone(c.persons[i])
	}

	return result
}

// Get returns a single person.
func (c *Client) Get(id int) (*openapi.Person, error) {
	c.lock.Lock()
	defer c.lock.Unlock()

	i := c.index(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}

	result := clone(c.persons[i])

	return &result, nil
}

// Create stores a new person, assigning the next free ID if none is given.
func (c *Client) Create(in openapi.Person) (*openapi.Person, error) {
	c.lock.Lock()
	defer c.lock.Unlock()

	person := clone(in)

	if person.Id == nil {
		person.Id = ptr.To(c.nextID())
	} else if c.index(*person.Id) >= 0 {
		return nil, fmt.Errorf("%w: %d", ErrConflict, *person.Id)
	}

	c.persons = append(c.persons, person)

	result := clone(person)

	return &result, nil
}

// Update modifies only the fields set in patch.  The ID never changes.
func (c *Client) Update(id int, patch openapi.Person) (*openapi.Person, error) {
	c.lock.Lock()
	defer c.lock.Unlock()

	i := c.index(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}

	merge(&c.persons[i], patch)

	result := clone(c.persons[i])

	return &result, nil
}

// Replace overwrites a person, fields not set in person are removed.
func (c *Client) Replace(id int, in openapi.Person) (*openapi.Person, error) {
	c.lock.Lock()
	defer c.lock.Unlock()

	i := c.index(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}

	person := clone(in)
	person.Id = ptr.To(id)

	c.persons[i] = person

	result := clone(person)

	return &result, nil
}

// Delete removes a person.
func (c *Client) Delete(id int) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	i := c.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}

	c.persons = slices.Delete(c.persons, i, i+1)

	return nil
}
