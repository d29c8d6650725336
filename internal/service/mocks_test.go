// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-stack-keeper/models"
)

// ─────────────────────────────────────────────
// Mock: store.StackRepository
// ─────────────────────────────────────────────

type mockStackRepository struct {
	getFn    func(ctx context.Context, name string) (models.Stack, error)
	queryFn  func(ctx context.Context, query models.StackQuery) ([]models.Stack, int, error)
	saveFn   func(ctx context.Context, stack models.Stack) (models.Stack, error)
	deleteFn func(ctx context.Context, name string) error
}

func (m *mockStackRepository) GetStack(ctx context.Context, name string) (models.Stack, error) {
	if m.getFn != nil {
		return m.getFn(ctx, name)
	}
	return models.Stack{}, nil
}

func (m *mockStackRepository) QueryStacks(ctx context.Context, query models.StackQuery) ([]models.Stack, int, error) {
	if m.queryFn != nil {
		return m.queryFn(ctx, query)
	}
	return nil, 0, nil
}

func (m *mockStackRepository) SaveStack(ctx context.Context, stack models.Stack) (models.Stack, error) {
	if m.saveFn != nil {
		return m.saveFn(ctx, stack)
	}
	return stack, nil
}

func (m *mockStackRepository) DeleteStack(ctx context.Context, name string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, name)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock: store.UserRepository
// ─────────────────────────────────────────────

type mockUserRepository struct {
	createFn      func(ctx context.Context, user models.User) (models.User, error)
	findByLoginFn func(ctx context.Context, user models.User) (models.User, error)
	findByIDFn    func(ctx context.Context, userID int64) (models.User, error)
}

func (m *mockUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return user, nil
}

func (m *mockUserRepository) FindUserByLogin(ctx context.Context, user models.User) (models.User, error) {
	if m.findByLoginFn != nil {
		return m.findByLoginFn(ctx, user)
	}
	return user, nil
}

func (m *mockUserRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, userID)
	}
	return models.User{UserID: userID}, nil
}

// ─────────────────────────────────────────────
// Mock: notify.Publisher
// ─────────────────────────────────────────────

type mockPublisher struct {
	published []publishedEvent
	publishFn func(topic string, payload any) error
}

type publishedEvent struct {
	topic   string
	payload any
}

func (m *mockPublisher) Publish(topic string, payload any) error {
	m.published = append(m.published, publishedEvent{topic: topic, payload: payload})
	if m.publishFn != nil {
		return m.publishFn(topic, payload)
	}
	return nil
}

func (m *mockPublisher) Close() {}
