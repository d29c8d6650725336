// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-stack-keeper/internal/service"
	"github.com/MKhiriev/go-stack-keeper/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:      http.StatusBadRequest,
	service.ErrWrongPassword:            http.StatusUnauthorized,
	service.ErrTicketIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrStackAccessForbidden:     http.StatusForbidden,
	service.ErrValidationNoStackName:    http.StatusBadRequest,

	store.ErrLoginAlreadyExists: http.StatusConflict,
	store.ErrNoUserWasFound:     http.StatusNotFound,
	store.ErrStackNotFound:      http.StatusNotFound,
	store.ErrStackNameConflict:  http.StatusConflict,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
