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
	"errors"
	"regexp"
	"strconv"
)

var ErrInvalidPersonID = errors.New("invalid person id: must be a decimal integer")

var personIDValidationRegex = regexp.MustCompile("^-?[0-9]{1,18}$")

// PersonID is a person ID as it appears in a path.
type PersonID struct {
	Value int
}

func (n *PersonID) UnmarshalText(text []byte) error {
	if !personIDValidationRegex.Match(text) {
		return ErrInvalidPersonID
	}

	value, err := strconv.Atoi(string(text))
	if err != nil {
		return ErrInvalidPersonID
	}

	*n = PersonID{
		Value: value,
	}

	return nil
}

func (n PersonID) MarshalText() ([]byte, error) {
	return []byte(strconv.Itoa(n.Value)), nil
}

func (n PersonID) String() string {
	return strconv.Itoa(n.Value)
}
