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

package client_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/unikorn-cloud/persons/pkg/client"
)

func TestTemplate(t *testing.T) {
	t.Parallel()

	expected := map[client.Operation]string{
		client.ListPersons:  "/persons",
		client.GetPerson:    "/persons/{id}",
		client.CreatePerson: "/persons",
		client.UpdatePerson: "/persons/{id}",
		client.DeletePerson: "/persons/{id}",
	}

	for op, template := range expected {
		actual, err := client.Template(op)
		require.NoError(t, err)
		require.Equal(t, template, actual)
	}

	_, err := client.Template("PurgePersons")
	require.ErrorIs(t, err, client.ErrUnknownOperation)
}

func TestExpand(t *testing.T) {
	t.Parallel()

	path, err := client.Expand("/persons/{id}", 3)
	require.NoError(t, err)
	require.Equal(t, "/persons/3", path)

	path, err = client.Expand("/persons/{id}/pets", 1234567)
	require.NoError(t, err)
	require.Equal(t, "/persons/1234567/pets", path)

	path, err = client.Expand("/persons/{id}", -1)
	require.NoError(t, err)
	require.Equal(t, "/persons/-1", path)

	_, err = client.Expand("/persons", 3)
	require.ErrorIs(t, err, client.ErrInvalidTemplate)

	_, err = client.Expand("/persons/{id}/{id}", 3)
	require.ErrorIs(t, err, client.ErrInvalidTemplate)
	require.NotErrorIs(t, err, client.ErrUnknownOperation)
}

func TestEndpoints(t *testing.T) {
	t.Parallel()

	e := client.NewEndpoints()

	require.Equal(t, "/persons", e.ListPersons())
	require.Equal(t, "/persons", e.CreatePerson())

	path, err := e.GetPerson(4)
	require.NoError(t, err)
	require.Equal(t, "/persons/4", path)

	path, err = e.UpdatePerson(5)
	require.NoError(t, err)
	require.Equal(t, "/persons/5", path)

	path, err = e.DeletePerson(3)
	require.NoError(t, err)
	require.Equal(t, "/persons/3", path)
}
