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

//nolint:revive
package handler

import (
	goerrors "errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/unikorn-cloud/persons/pkg/openapi"
	"github.com/unikorn-cloud/persons/pkg/server/errors"
	"github.com/unikorn-cloud/persons/pkg/server/handler/person"
	"github.com/unikorn-cloud/persons/pkg/server/util"
)

type Handler struct {
	// persons is the backing store.
	persons *person.Client
}

func New(persons *person.Client) (*Handler, error) {
	h := &Handler{
		persons: persons,
	}

	return h, nil
}

func (h *Handler) setUncacheable(w http.ResponseWriter) {
	w.Header().Add("Cache-Control", "no-cache")
}

// personID reads the ID path parameter.
func personID(r *http.Request) (int, error) {
	var id openapi.PersonID

	if err := id.UnmarshalText([]byte(chi.URLParam(r, "id"))); err != nil {
		return 0, errors.OAuth2InvalidRequest("person id is invalid").WithError(err)
	}

	return id.Value, nil
}

// storeError maps store errors to HTTP errors.
func storeError(err error) error {
	switch {
	case goerrors.Is(err, person.ErrNotFound):
		return errors.HTTPNotFound().WithError(err)
	case goerrors.Is(err, person.ErrConflict):
		return errors.HTTPConflict().WithError(err)
	}

	return errors.OAuth2ServerError("unable to access persons").WithError(err)
}

func (h *Handler) GetPersons(w http.ResponseWriter, r *http.Request) {
	h.setUncacheable(w)
	util.WriteJSONResponse(w, r, http.StatusOK, h.persons.List())
}

func (h *Handler) PostPersons(w http.ResponseWriter, r *http.Request) {
	var request openapi.Person

	if _, err := util.ReadJSONBody(r, &request); err != nil {
		errors.HandleError(w, r, errors.OAuth2InvalidRequest("unable to read person").WithError(err))
		return
	}

	result, err := h.persons.Create(request)
	if err != nil {
		errors.HandleError(w, r, storeError(err))
		return
	}

	h.setUncacheable(w)
	util.WriteJSONResponse(w, r, http.StatusCreated, result)
}

func (h *Handler) GetPersonsID(w http.ResponseWriter, r *http.Request) {
	id, err := personID(r)
	if err != nil {
		errors.HandleError(w, r, err)
		return
	}

	result, err := h.persons.Get(id)
	if err != nil {
		errors.HandleError(w, r, storeError(err))
		return
	}

	h.setUncacheable(w)
	util.WriteJSONResponse(w, r, http.StatusOK, result)
}

func (h *Handler) PatchPersonsID(w http.ResponseWriter, r *http.Request) {
	id, err := personID(r)
	if err != nil {
		errors.HandleError(w, r, err)
		return
	}

	// An empty body is a valid, no-op, update.
	var request openapi.Person

	if _, err := util.ReadJSONBody(r, &request); err != nil {
		errors.HandleError(w, r, errors.OAuth2InvalidRequest("unable to read person").WithError(err))
		return
	}

	result, err := h.persons.Update(id, request)
	if err != nil {
		errors.HandleError(w, r, storeError(err))
		return
	}

	h.setUncacheable(w)
	util.WriteJSONResponse(w, r, http.StatusOK, result)
}

func (h *Handler) PutPersonsID(w http.ResponseWriter, r *http.Request) {
	id, err := personID(r)
	if err != nil {
		errors.HandleError(w, r, err)
		return
	}

	var request openapi.Person

	if _, err := util.ReadJSONBody(r, &request); err != nil {
		errors.HandleError(w, r, errors.OAuth2InvalidRequest("unable to read person").WithError(err))
		return
	}

	result, err := h.persons.Replace(id, request)
	if err != nil {
		errors.HandleError(w, r, storeError(err))
		return
	}

	h.setUncacheable(w)
	util.WriteJSONResponse(w, r, http.StatusOK, result)
}

func (h *Handler) DeletePersonsID(w http.ResponseWriter, r *http.Request) {
	id, err := personID(r)
	if err != nil {
		errors.HandleError(w, r, err)
		return
	}

	if err := h.persons.Delete(id); err != nil {
		errors.HandleError(w, r, storeError(err))
		return
	}

	h.setUncacheable(w)
	util.WriteJSONResponse(w, r, http.StatusOK, struct{}{})
}
