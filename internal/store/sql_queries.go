// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-stack-keeper/models"
)

const (
	createUser = `INSERT INTO users (login, name, password_hash)
    VALUES ($1, $2, $3)
    RETURNING user_id, login, name, password_hash, created_at;`

	findUserByLogin = `SELECT user_id, login, name, password_hash, created_at
    FROM users
    WHERE login = $1;`

	findUserByID = `SELECT user_id, login, name, password_hash, created_at
    FROM users
    WHERE user_id = $1;`

	findUserGroups = `SELECT g.name
    FROM groups g
    JOIN user_groups ug ON ug.group_id = g.group_id
    WHERE ug.user_id = $1
    ORDER BY g.name;`

	findStackByName = `SELECT stack_id, name, description, created_at, updated_at
    FROM stacks
    WHERE name = $1;`

	findStackPackages = `SELECT package_id, name, requirements
    FROM packages
    WHERE stack_id = $1
    ORDER BY name;`

	findStackUsers = `SELECT u.user_id, u.login, u.name, u.created_at
    FROM users u
    JOIN stack_users su ON su.user_id = u.user_id
    WHERE su.stack_id = $1
    ORDER BY u.login;`

	findStackGroups = `SELECT g.group_id, g.name
    FROM groups g
    JOIN stack_groups sg ON sg.group_id = g.group_id
    WHERE sg.stack_id = $1
    ORDER BY g.name;`

	insertStack = `INSERT INTO stacks (name, description)
    VALUES ($1, $2)
    RETURNING stack_id, name, description, created_at, updated_at;`

	updateStack = `UPDATE stacks
    SET description = $1, updated_at = $2
    WHERE stack_id = $3;`

	deleteStackByName = `DELETE FROM stacks WHERE name = $1;`

	deleteStackUsers  = `DELETE FROM stack_users WHERE stack_id = $1;`
	deleteStackGroups = `DELETE FROM stack_groups WHERE stack_id = $1;`

	unassignStackPackages = `UPDATE packages SET stack_id = NULL WHERE stack_id = $1;`
	assignPackageToStack  = `UPDATE packages SET stack_id = $1 WHERE package_id = $2;`

	findPackageIDByName = `SELECT package_id FROM packages WHERE name = $1;`
	insertPackage       = `INSERT INTO packages (name) VALUES ($1) RETURNING package_id;`

	findUserIDByLogin = `SELECT user_id FROM users WHERE login = $1;`
	insertStackUser   = `INSERT INTO stack_users (stack_id, user_id) VALUES ($1, $2);`

	findGroupIDByName = `SELECT group_id FROM groups WHERE name = $1;`
	insertGroup       = `INSERT INTO groups (name) VALUES ($1) RETURNING group_id;`
	insertStackGroup  = `INSERT INTO stack_groups (stack_id, group_id) VALUES ($1, $2);`
)

// stackFilters applies the optional StackQuery criteria to a squirrel
// builder over "stacks s". The packages filter joins the packages table, so
// callers must de-duplicate (DISTINCT) when it is present.
func stackFilters(builder sq.SelectBuilder, query models.StackQuery) sq.SelectBuilder {
	if query.Name != "" {
		builder = builder.Where(sq.Eq{"s.name": query.Name})
	}

	if query.Like != "" {
		builder = builder.Where(sq.Like{"s.name": "%" + query.Like + "%"})
	}

	if len(query.Packages) > 0 {
		builder = builder.
			Join("packages p ON p.stack_id = s.stack_id").
			Where(sq.Eq{"p.name": query.Packages})
	}

	return builder
}

// buildQueryStacksQuery builds the paginated listing query for the given
// criteria. Results are ordered by stack name descending.
func buildQueryStacksQuery(query models.StackQuery) (string, []any, error) {
	builder := sq.
		Select("s.stack_id", "s.name", "s.description", "s.created_at", "s.updated_at").
		From("stacks s").
		PlaceholderFormat(sq.Dollar)

	if len(query.Packages) > 0 {
		builder = builder.Distinct()
	}

	builder = stackFilters(builder, query).
		OrderBy("s.name DESC").
		Limit(uint64(query.RowsPerPage)).
		Offset(uint64((query.Page - 1) * query.RowsPerPage))

	return builder.ToSql()
}

// buildCountStacksQuery builds the companion total-count query for the same
// criteria, without pagination.
func buildCountStacksQuery(query models.StackQuery) (string, []any, error) {
	builder := sq.
		Select("COUNT(DISTINCT s.stack_id)").
		From("stacks s").
		PlaceholderFormat(sq.Dollar)

	return stackFilters(builder, query).ToSql()
}
