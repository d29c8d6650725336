// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-stack-keeper/internal/logger"
	"github.com/MKhiriev/go-stack-keeper/models"
)

// userRepository is the SQL-backed implementation of [UserRepository]. It
// handles user account creation and lookup against the "users" table and
// resolves group membership through the "user_groups" join table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
//
// A debug-level log message is emitted at construction time to aid
// application startup diagnostics.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new user record and returns the fully populated
// [models.User] with server-assigned fields (UserID, CreatedAt).
//
// The INSERT uses the [createUser] prepared query which returns all columns
// via a RETURNING clause, so the caller receives the canonical database
// representation of the newly created account.
//
// Error handling:
//   - unique constraint violation on login → [ErrLoginAlreadyExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createUser, user.Login, user.Name, user.PasswordHash)

	// scan saved user from db
	if err := row.Scan(&user.UserID, &user.Login, &user.Name, &user.PasswordHash, &user.CreatedAt); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error: creating user")

		if r.db.errorClassificator.IsUniqueViolation(err) {
			return models.User{}, ErrLoginAlreadyExists
		}

		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return user, nil
}

// FindUserByLogin retrieves a user record whose Login matches the one
// provided in the input [models.User], with the Groups slice populated from
// the group membership tables.
//
// Error handling:
//   - [sql.ErrNoRows] → [ErrNoUserWasFound].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) FindUserByLogin(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	var foundUser models.User
	row := r.db.QueryRowContext(ctx, findUserByLogin, user.Login)

	// scan found user from db
	if err := row.Scan(&foundUser.UserID, &foundUser.Login, &foundUser.Name, &foundUser.PasswordHash, &foundUser.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}

		log.Err(err).Str("func", "*userRepository.FindUserByLogin").Msg("error: finding user by login")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	groups, err := r.findGroups(ctx, foundUser.UserID)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.FindUserByLogin").Int64("user_id", foundUser.UserID).Msg("error: loading user groups")
		return models.User{}, err
	}
	foundUser.Groups = groups

	return foundUser, nil
}

// FindUserByID retrieves a user record by its identifier, with the Groups
// slice populated from the group membership tables.
//
// Error handling mirrors [userRepository.FindUserByLogin].
func (r *userRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	log := logger.FromContext(ctx)

	var foundUser models.User
	row := r.db.QueryRowContext(ctx, findUserByID, userID)

	if err := row.Scan(&foundUser.UserID, &foundUser.Login, &foundUser.Name, &foundUser.PasswordHash, &foundUser.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}

		log.Err(err).Str("func", "*userRepository.FindUserByID").Int64("user_id", userID).Msg("error: finding user by id")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	groups, err := r.findGroups(ctx, foundUser.UserID)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.FindUserByID").Int64("user_id", userID).Msg("error: loading user groups")
		return models.User{}, err
	}
	foundUser.Groups = groups

	return foundUser, nil
}

// findGroups returns the names of the groups the user belongs to, ordered
// by name.
func (r *userRepository) findGroups(ctx context.Context, userID int64) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, findUserGroups, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var groups []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		groups = append(groups, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return groups, nil
}
