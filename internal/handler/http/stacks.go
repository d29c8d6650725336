// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-stack-keeper/internal/logger"
	"github.com/MKhiriev/go-stack-keeper/internal/utils"
	"github.com/MKhiriev/go-stack-keeper/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) listStacks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	query, err := stackQueryFromRequest(r)
	if err != nil {
		log.Err(err).Msg("invalid listing parameters")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	listing, err := h.services.StackService.QueryStacks(ctx, query)
	if err != nil {
		log.Err(err).Msg("error querying stacks")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	utils.WriteJSON(w, listing, http.StatusOK)
}

func (h *Handler) getStack(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	name := chi.URLParam(r, "name")

	stack, err := h.services.StackService.GetStack(ctx, name)
	if err != nil {
		log.Err(err).Str("name", name).Msg("error getting stack")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	utils.WriteJSON(w, stack, http.StatusOK)
}

func (h *Handler) saveStack(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no authenticated user in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var request models.SaveStackRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	saved, err := h.services.StackService.SaveStack(ctx, userID, request)
	if err != nil {
		log.Err(err).Str("name", request.Name).Msg("error saving stack")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	utils.WriteJSON(w, saved, http.StatusOK)
}

func (h *Handler) deleteStack(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no authenticated user in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	name := chi.URLParam(r, "name")

	status, err := h.services.StackService.DeleteStack(ctx, userID, name)
	if err != nil {
		log.Err(err).Str("name", name).Msg("error deleting stack")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	utils.WriteJSON(w, status, http.StatusOK)
}

// stackQueryFromRequest maps the listing query parameters onto a
// [models.StackQuery]. The packages parameter accepts either repeated
// values or a single comma-delimited value.
func stackQueryFromRequest(r *http.Request) (models.StackQuery, error) {
	params := r.URL.Query()

	query := models.StackQuery{
		Name: params.Get("name"),
		Like: params.Get("like"),
	}

	for _, value := range params["packages"] {
		for _, name := range strings.Split(value, ",") {
			if name = strings.TrimSpace(name); name != "" {
				query.Packages = append(query.Packages, name)
			}
		}
	}

	var err error
	if query.Page, err = intParam(params.Get("page")); err != nil {
		return models.StackQuery{}, err
	}
	if query.RowsPerPage, err = intParam(params.Get("rows_per_page")); err != nil {
		return models.StackQuery{}, err
	}

	return query, nil
}

func intParam(value string) (int, error) {
	if value == "" {
		return 0, nil
	}
	return strconv.Atoi(value)
}
