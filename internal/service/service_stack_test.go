// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/go-stack-keeper/internal/cache"
	"github.com/MKhiriev/go-stack-keeper/internal/config"
	"github.com/MKhiriev/go-stack-keeper/internal/logger"
	"github.com/MKhiriev/go-stack-keeper/internal/notify"
	"github.com/MKhiriev/go-stack-keeper/internal/store"
	"github.com/MKhiriev/go-stack-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegions(t *testing.T) *cache.Regions {
	t.Helper()

	regions, err := cache.NewRegions(config.Cache{
		Type:          "memory",
		Regions:       []string{"short_term"},
		DefaultExpire: time.Hour,
	}, logger.Nop())
	require.NoError(t, err)
	return regions
}

func newTestStackService(t *testing.T, stacks *mockStackRepository, users *mockUserRepository, publisher *mockPublisher) StackService {
	t.Helper()
	return NewStackService(stacks, users, newTestRegions(t), publisher, logger.Nop())
}

func TestStackGetStack_Success(t *testing.T) {
	stacks := &mockStackRepository{
		getFn: func(_ context.Context, name string) (models.Stack, error) {
			return models.Stack{StackID: 3, Name: name}, nil
		},
	}

	svc := newTestStackService(t, stacks, &mockUserRepository{}, &mockPublisher{})

	response, err := svc.GetStack(context.Background(), "gnome")
	require.NoError(t, err)
	assert.Equal(t, "gnome", response.Stack.Name)
}

func TestStackGetStack_EmptyName(t *testing.T) {
	svc := newTestStackService(t, &mockStackRepository{}, &mockUserRepository{}, &mockPublisher{})

	_, err := svc.GetStack(context.Background(), "")
	assert.ErrorIs(t, err, ErrValidationNoStackName)
}

func TestStackGetStack_NotFound(t *testing.T) {
	stacks := &mockStackRepository{
		getFn: func(_ context.Context, _ string) (models.Stack, error) {
			return models.Stack{}, store.ErrStackNotFound
		},
	}

	svc := newTestStackService(t, stacks, &mockUserRepository{}, &mockPublisher{})

	_, err := svc.GetStack(context.Background(), "ghost")
	assert.ErrorIs(t, err, store.ErrStackNotFound)
}

func TestQueryStacks_PaginationMetadata(t *testing.T) {
	stacks := &mockStackRepository{
		queryFn: func(_ context.Context, query models.StackQuery) ([]models.Stack, int, error) {
			assert.Equal(t, 1, query.Page)
			assert.Equal(t, defaultRowsPerPage, query.RowsPerPage)
			return []models.Stack{{Name: "gnome"}}, 41, nil
		},
	}

	svc := newTestStackService(t, stacks, &mockUserRepository{}, &mockPublisher{})

	// zero values are normalized to the first default-sized page
	response, err := svc.QueryStacks(context.Background(), models.StackQuery{})
	require.NoError(t, err)

	assert.Equal(t, 1, response.Page)
	assert.Equal(t, 3, response.Pages) // ceil(41/20)
	assert.Equal(t, defaultRowsPerPage, response.RowsPerPage)
	assert.Equal(t, 41, response.Total)
	assert.Len(t, response.Stacks, 1)
}

func TestQueryStacks_RowsPerPageCapped(t *testing.T) {
	stacks := &mockStackRepository{
		queryFn: func(_ context.Context, query models.StackQuery) ([]models.Stack, int, error) {
			assert.Equal(t, maxRowsPerPage, query.RowsPerPage)
			return nil, 0, nil
		},
	}

	svc := newTestStackService(t, stacks, &mockUserRepository{}, &mockPublisher{})

	_, err := svc.QueryStacks(context.Background(), models.StackQuery{RowsPerPage: 10000})
	require.NoError(t, err)
}

func TestQueryStacks_SecondCallServedFromCache(t *testing.T) {
	calls := 0
	stacks := &mockStackRepository{
		queryFn: func(_ context.Context, _ models.StackQuery) ([]models.Stack, int, error) {
			calls++
			return []models.Stack{{Name: "gnome"}}, 1, nil
		},
	}

	svc := newTestStackService(t, stacks, &mockUserRepository{}, &mockPublisher{})

	query := models.StackQuery{Like: "gno"}
	_, err := svc.QueryStacks(context.Background(), query)
	require.NoError(t, err)
	_, err = svc.QueryStacks(context.Background(), query)
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
}

func TestSaveStack_ActingUserBecomesOwner(t *testing.T) {
	var saved models.Stack
	stacks := &mockStackRepository{
		getFn: func(_ context.Context, _ string) (models.Stack, error) {
			return models.Stack{}, store.ErrStackNotFound
		},
		saveFn: func(_ context.Context, stack models.Stack) (models.Stack, error) {
			saved = stack
			stack.StackID = 3
			return stack, nil
		},
	}
	users := &mockUserRepository{
		findByIDFn: func(_ context.Context, userID int64) (models.User, error) {
			return models.User{UserID: userID, Login: "jane"}, nil
		},
	}
	publisher := &mockPublisher{}

	svc := newTestStackService(t, stacks, users, publisher)

	response, err := svc.SaveStack(context.Background(), 7, models.SaveStackRequest{
		Name:     "gnome",
		Packages: []string{"gnome-shell"},
	})
	require.NoError(t, err)

	require.Len(t, saved.Users, 1)
	assert.Equal(t, "jane", saved.Users[0].Login)
	assert.Equal(t, int64(3), response.Stack.StackID)

	require.Len(t, publisher.published, 1)
	assert.Equal(t, notify.TopicStackSave, publisher.published[0].topic)
}

func TestSaveStack_ExplicitOwnersKept(t *testing.T) {
	var saved models.Stack
	stacks := &mockStackRepository{
		getFn: func(_ context.Context, _ string) (models.Stack, error) {
			return models.Stack{}, store.ErrStackNotFound
		},
		saveFn: func(_ context.Context, stack models.Stack) (models.Stack, error) {
			saved = stack
			return stack, nil
		},
	}

	svc := newTestStackService(t, stacks, &mockUserRepository{}, &mockPublisher{})

	_, err := svc.SaveStack(context.Background(), 7, models.SaveStackRequest{
		Name:  "gnome",
		Users: []string{"alice", "bob"},
	})
	require.NoError(t, err)

	require.Len(t, saved.Users, 2)
	assert.Equal(t, "alice", saved.Users[0].Login)
}

func TestSaveStack_ForbiddenForNonOwner(t *testing.T) {
	stacks := &mockStackRepository{
		getFn: func(_ context.Context, name string) (models.Stack, error) {
			return models.Stack{
				Name:  name,
				Users: []models.User{{Login: "alice"}},
			}, nil
		},
	}
	users := &mockUserRepository{
		findByIDFn: func(_ context.Context, userID int64) (models.User, error) {
			return models.User{UserID: userID, Login: "mallory"}, nil
		},
	}

	svc := newTestStackService(t, stacks, users, &mockPublisher{})

	_, err := svc.SaveStack(context.Background(), 7, models.SaveStackRequest{Name: "gnome"})
	assert.ErrorIs(t, err, ErrStackAccessForbidden)
}

func TestSaveStack_GroupMemberMayModify(t *testing.T) {
	stacks := &mockStackRepository{
		getFn: func(_ context.Context, name string) (models.Stack, error) {
			return models.Stack{
				Name:   name,
				Groups: []models.Group{{Name: "desktop-sig"}},
			}, nil
		},
		saveFn: func(_ context.Context, stack models.Stack) (models.Stack, error) {
			return stack, nil
		},
	}
	users := &mockUserRepository{
		findByIDFn: func(_ context.Context, userID int64) (models.User, error) {
			return models.User{UserID: userID, Login: "jane", Groups: []string{"desktop-sig"}}, nil
		},
	}

	svc := newTestStackService(t, stacks, users, &mockPublisher{})

	_, err := svc.SaveStack(context.Background(), 7, models.SaveStackRequest{Name: "gnome"})
	assert.NoError(t, err)
}

func TestSaveStack_InvalidatesListingCache(t *testing.T) {
	queryCalls := 0
	stacks := &mockStackRepository{
		getFn: func(_ context.Context, _ string) (models.Stack, error) {
			return models.Stack{}, store.ErrStackNotFound
		},
		queryFn: func(_ context.Context, _ models.StackQuery) ([]models.Stack, int, error) {
			queryCalls++
			return nil, 0, nil
		},
	}

	svc := newTestStackService(t, stacks, &mockUserRepository{}, &mockPublisher{})

	query := models.StackQuery{}
	_, err := svc.QueryStacks(context.Background(), query)
	require.NoError(t, err)

	_, err = svc.SaveStack(context.Background(), 7, models.SaveStackRequest{Name: "gnome"})
	require.NoError(t, err)

	_, err = svc.QueryStacks(context.Background(), query)
	require.NoError(t, err)

	assert.Equal(t, 2, queryCalls, "listing cache should be flushed after a save")
}

func TestDeleteStack_Success(t *testing.T) {
	stacks := &mockStackRepository{
		getFn: func(_ context.Context, name string) (models.Stack, error) {
			return models.Stack{Name: name, Users: []models.User{{Login: "jane"}}}, nil
		},
	}
	users := &mockUserRepository{
		findByIDFn: func(_ context.Context, userID int64) (models.User, error) {
			return models.User{UserID: userID, Login: "jane"}, nil
		},
	}
	publisher := &mockPublisher{}

	svc := newTestStackService(t, stacks, users, publisher)

	status, err := svc.DeleteStack(context.Background(), 7, "gnome")
	require.NoError(t, err)
	assert.Equal(t, "success", status.Status)

	require.Len(t, publisher.published, 1)
	assert.Equal(t, notify.TopicStackDelete, publisher.published[0].topic)
}

func TestDeleteStack_ForbiddenForNonOwner(t *testing.T) {
	stacks := &mockStackRepository{
		getFn: func(_ context.Context, name string) (models.Stack, error) {
			return models.Stack{Name: name, Users: []models.User{{Login: "alice"}}}, nil
		},
	}
	users := &mockUserRepository{
		findByIDFn: func(_ context.Context, userID int64) (models.User, error) {
			return models.User{UserID: userID, Login: "mallory"}, nil
		},
	}

	svc := newTestStackService(t, stacks, users, &mockPublisher{})

	_, err := svc.DeleteStack(context.Background(), 7, "gnome")
	assert.ErrorIs(t, err, ErrStackAccessForbidden)
}

func TestDeleteStack_NotFound(t *testing.T) {
	stacks := &mockStackRepository{
		getFn: func(_ context.Context, _ string) (models.Stack, error) {
			return models.Stack{}, store.ErrStackNotFound
		},
	}

	svc := newTestStackService(t, stacks, &mockUserRepository{}, &mockPublisher{})

	_, err := svc.DeleteStack(context.Background(), 7, "ghost")
	assert.ErrorIs(t, err, store.ErrStackNotFound)
}

func TestPageCount(t *testing.T) {
	tests := []struct {
		total       int
		rowsPerPage int
		want        int
	}{
		{total: 0, rowsPerPage: 20, want: 0},
		{total: 1, rowsPerPage: 20, want: 1},
		{total: 20, rowsPerPage: 20, want: 1},
		{total: 21, rowsPerPage: 20, want: 2},
		{total: 41, rowsPerPage: 20, want: 3},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, pageCount(tt.total, tt.rowsPerPage), "total=%d rpp=%d", tt.total, tt.rowsPerPage)
	}
}
