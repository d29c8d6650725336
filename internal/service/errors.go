// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong password")

	ErrTicketCreationFailed     = errors.New("failed to create auth ticket")
	ErrTicketIsExpiredOrInvalid = errors.New("auth ticket is expired or invalid")

	// ErrStackAccessForbidden is returned when a user who is neither a
	// direct owner nor a member of an owning group attempts to modify or
	// delete an owned stack.
	ErrStackAccessForbidden = errors.New("user does not own the stack")

	ErrValidationNoStackName = errors.New("no stack name provided")
)
