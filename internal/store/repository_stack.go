// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-stack-keeper/internal/logger"
	"github.com/MKhiriev/go-stack-keeper/models"
)

// querier is the subset of *sql.DB and *sql.Tx the stack repository
// helpers run against, so association loading and replacement work both
// inside and outside a transaction.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// stackRepository is the SQL-backed implementation of [StackRepository].
// It manages the "stacks" table and the package, user and group
// association tables around it.
type stackRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewStackRepository constructs a [StackRepository] backed by the provided
// database connection and logger.
func NewStackRepository(db *DB, logger *logger.Logger) StackRepository {
	logger.Debug().Msg("creating stack repository")
	return &stackRepository{
		db:     db,
		logger: logger,
	}
}

// GetStack retrieves a single stack by name with packages, users and
// groups loaded.
func (r *stackRepository) GetStack(ctx context.Context, name string) (models.Stack, error) {
	log := logger.FromContext(ctx)

	stack, err := r.findStack(ctx, r.db, name)
	if err != nil {
		if !errors.Is(err, ErrStackNotFound) {
			log.Err(err).Str("func", "*stackRepository.GetStack").Str("stack", name).Msg("error: finding stack")
		}
		return models.Stack{}, err
	}

	if err := r.loadAssociations(ctx, r.db, &stack); err != nil {
		log.Err(err).Str("func", "*stackRepository.GetStack").Str("stack", name).Msg("error: loading stack associations")
		return models.Stack{}, err
	}

	return stack, nil
}

// QueryStacks returns one page of stacks matching the query plus the total
// match count. The query criteria are assumed to be normalized by the
// caller (Page >= 1, RowsPerPage >= 1).
func (r *stackRepository) QueryStacks(ctx context.Context, query models.StackQuery) ([]models.Stack, int, error) {
	log := logger.FromContext(ctx)

	countQuery, countArgs, err := buildCountStacksQuery(query)
	if err != nil {
		log.Err(err).Str("func", "*stackRepository.QueryStacks").Msg("failed to build count query")
		return nil, 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		log.Err(err).Str("func", "*stackRepository.QueryStacks").Msg("failed to count matching stacks")
		return nil, 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	listQuery, listArgs, err := buildQueryStacksQuery(query)
	if err != nil {
		log.Err(err).Str("func", "*stackRepository.QueryStacks").Msg("failed to build listing query")
		return nil, 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, listQuery, listArgs...)
	if err != nil {
		log.Err(err).Str("func", "*stackRepository.QueryStacks").Msg("failed to execute listing query")
		return nil, 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	stacks := make([]models.Stack, 0, query.RowsPerPage)
	for rows.Next() {
		var stack models.Stack

		if err := rows.Scan(&stack.StackID, &stack.Name, &stack.Description, &stack.CreatedAt, &stack.UpdatedAt); err != nil {
			log.Err(err).Str("func", "*stackRepository.QueryStacks").Msg("failed to scan stack row")
			return nil, 0, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}

		stacks = append(stacks, stack)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "*stackRepository.QueryStacks").Msg("error occurred during rows iteration")
		return nil, 0, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	for i := range stacks {
		if err := r.loadAssociations(ctx, r.db, &stacks[i]); err != nil {
			log.Err(err).Str("func", "*stackRepository.QueryStacks").Str("stack", stacks[i].Name).Msg("error: loading stack associations")
			return nil, 0, err
		}
	}

	return stacks, total, nil
}

// SaveStack creates or updates the stack identified by stack.Name inside a
// single transaction and replaces its package, user and group associations
// with the ones provided. The persisted stack is reloaded and returned with
// all associations in canonical order.
//
// Error handling:
//   - unknown owner login → [ErrNoUserWasFound].
//   - lost unique-constraint race on a new stack name → [ErrStackNameConflict].
//
// Packages and groups referenced by name are created on first use; users
// must already exist.
func (r *stackRepository) SaveStack(ctx context.Context, stack models.Stack) (models.Stack, error) {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*stackRepository.SaveStack").Msg("error during opening transaction")
		return models.Stack{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	saved, err := r.upsertStack(ctx, tx, stack)
	if err != nil {
		log.Err(err).Str("func", "*stackRepository.SaveStack").Str("stack", stack.Name).Msg("error: upserting stack")
		return models.Stack{}, err
	}

	if err := r.replaceAssociations(ctx, tx, saved.StackID, stack); err != nil {
		log.Err(err).Str("func", "*stackRepository.SaveStack").Str("stack", stack.Name).Msg("error: replacing stack associations")
		return models.Stack{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).Str("func", "*stackRepository.SaveStack").Str("stack", stack.Name).Msg("error during committing transaction")
		return models.Stack{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return r.GetStack(ctx, saved.Name)
}

// DeleteStack removes the named stack. The association rows follow via
// ON DELETE CASCADE; package rows survive with their stack reference
// cleared by ON DELETE SET NULL.
func (r *stackRepository) DeleteStack(ctx context.Context, name string) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteStackByName, name)
	if err != nil {
		log.Err(err).Str("func", "*stackRepository.DeleteStack").Str("stack", name).Msg("error: deleting stack")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrStackNotFound
	}

	return nil
}

func (r *stackRepository) findStack(ctx context.Context, q querier, name string) (models.Stack, error) {
	var stack models.Stack

	row := q.QueryRowContext(ctx, findStackByName, name)
	if err := row.Scan(&stack.StackID, &stack.Name, &stack.Description, &stack.CreatedAt, &stack.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Stack{}, ErrStackNotFound
		}
		return models.Stack{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return stack, nil
}

// upsertStack inserts the stack row when the name is new, otherwise
// refreshes description and updated_at on the existing row. An empty
// description leaves the stored one untouched.
func (r *stackRepository) upsertStack(ctx context.Context, tx *sql.Tx, stack models.Stack) (models.Stack, error) {
	existing, err := r.findStack(ctx, tx, stack.Name)
	if errors.Is(err, ErrStackNotFound) {
		var created models.Stack

		row := tx.QueryRowContext(ctx, insertStack, stack.Name, stack.Description)
		if scanErr := row.Scan(&created.StackID, &created.Name, &created.Description, &created.CreatedAt, &created.UpdatedAt); scanErr != nil {
			if r.db.errorClassificator.IsUniqueViolation(scanErr) {
				return models.Stack{}, ErrStackNameConflict
			}
			return models.Stack{}, fmt.Errorf("%w: %w", ErrExecutingStatement, scanErr)
		}

		return created, nil
	}
	if err != nil {
		return models.Stack{}, err
	}

	if stack.Description != "" {
		existing.Description = stack.Description
	}
	existing.UpdatedAt = time.Now().UTC()

	if _, err := tx.ExecContext(ctx, updateStack, existing.Description, existing.UpdatedAt, existing.StackID); err != nil {
		return models.Stack{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return existing, nil
}

// replaceAssociations drops all current package, user and group links of
// the stack and rebuilds them from the provided model.
func (r *stackRepository) replaceAssociations(ctx context.Context, tx *sql.Tx, stackID int64, stack models.Stack) error {
	for _, query := range []string{deleteStackUsers, deleteStackGroups, unassignStackPackages} {
		if _, err := tx.ExecContext(ctx, query, stackID); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	for _, pkg := range stack.Packages {
		packageID, err := r.getOrCreateID(ctx, tx, findPackageIDByName, insertPackage, pkg.Name)
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, assignPackageToStack, stackID, packageID); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	for _, user := range stack.Users {
		var userID int64
		if err := tx.QueryRowContext(ctx, findUserIDByLogin, user.Login).Scan(&userID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("%w: %s", ErrNoUserWasFound, user.Login)
			}
			return fmt.Errorf("%w: %w", ErrScanningRow, err)
		}

		if _, err := tx.ExecContext(ctx, insertStackUser, stackID, userID); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	for _, group := range stack.Groups {
		groupID, err := r.getOrCreateID(ctx, tx, findGroupIDByName, insertGroup, group.Name)
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, insertStackGroup, stackID, groupID); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	return nil
}

// getOrCreateID looks an entity up by name and inserts it when missing.
// Both queries must select/return a single id column.
func (r *stackRepository) getOrCreateID(ctx context.Context, tx *sql.Tx, findQuery, createQuery, name string) (int64, error) {
	var id int64

	err := tx.QueryRowContext(ctx, findQuery, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if err := tx.QueryRowContext(ctx, createQuery, name).Scan(&id); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return id, nil
}

// loadAssociations populates the Packages, Users and Groups slices of the
// stack from the association tables.
func (r *stackRepository) loadAssociations(ctx context.Context, q querier, stack *models.Stack) error {
	packages, err := r.loadPackages(ctx, q, stack.StackID)
	if err != nil {
		return err
	}
	stack.Packages = packages

	users, err := r.loadUsers(ctx, q, stack.StackID)
	if err != nil {
		return err
	}
	stack.Users = users

	groups, err := r.loadGroups(ctx, q, stack.StackID)
	if err != nil {
		return err
	}
	stack.Groups = groups

	return nil
}

func (r *stackRepository) loadPackages(ctx context.Context, q querier, stackID int64) ([]models.Package, error) {
	rows, err := q.QueryContext(ctx, findStackPackages, stackID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var packages []models.Package
	for rows.Next() {
		var pkg models.Package
		if err := rows.Scan(&pkg.PackageID, &pkg.Name, &pkg.Requirements); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		packages = append(packages, pkg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return packages, nil
}

func (r *stackRepository) loadUsers(ctx context.Context, q querier, stackID int64) ([]models.User, error) {
	rows, err := q.QueryContext(ctx, findStackUsers, stackID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.UserID, &user.Login, &user.Name, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return users, nil
}

func (r *stackRepository) loadGroups(ctx context.Context, q querier, stackID int64) ([]models.Group, error) {
	rows, err := q.QueryContext(ctx, findStackGroups, stackID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var groups []models.Group
	for rows.Next() {
		var group models.Group
		if err := rows.Scan(&group.GroupID, &group.Name); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		groups = append(groups, group)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return groups, nil
}
