// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-stack-keeper/internal/cache"
	"github.com/MKhiriev/go-stack-keeper/internal/logger"
	"github.com/MKhiriev/go-stack-keeper/internal/notify"
	"github.com/MKhiriev/go-stack-keeper/internal/store"
	"github.com/MKhiriev/go-stack-keeper/models"
)

const (
	defaultRowsPerPage = 20
	maxRowsPerPage     = 100

	// listingCacheRegion is the cache region that holds stack listing
	// pages. It is flushed whenever a stack is saved or deleted.
	listingCacheRegion = "short_term"
)

// stackService is the concrete implementation of StackService. It layers
// ownership checks, listing pagination, caching and event publishing over
// the stack repository.
type stackService struct {
	stackRepository store.StackRepository
	userRepository  store.UserRepository

	// regions may be nil when caching is disabled.
	regions *cache.Regions

	publisher notify.Publisher
	logger    *logger.Logger
}

// NewStackService constructs a StackService wired to the given
// repositories, cache regions (nil disables caching) and event publisher.
func NewStackService(stackRepository store.StackRepository, userRepository store.UserRepository, regions *cache.Regions, publisher notify.Publisher, logger *logger.Logger) StackService {
	return &stackService{
		stackRepository: stackRepository,
		userRepository:  userRepository,
		regions:         regions,
		publisher:       publisher,
		logger:          logger,
	}
}

// GetStack returns a single stack by name.
//
// Returns ErrValidationNoStackName when name is empty, or a wrapped storage
// error (see store.ErrStackNotFound).
func (s *stackService) GetStack(ctx context.Context, name string) (models.StackResponse, error) {
	log := logger.FromContext(ctx)

	if name == "" {
		return models.StackResponse{}, ErrValidationNoStackName
	}

	stack, err := s.stackRepository.GetStack(ctx, name)
	if err != nil {
		log.Err(err).Str("stack", name).Msg("stack lookup failed")
		return models.StackResponse{}, fmt.Errorf("stack lookup failed: %w", err)
	}

	return models.StackResponse{Stack: stack}, nil
}

// QueryStacks returns one page of the stack listing. Page numbers are
// 1-based; out-of-range values are normalized. Listing pages are cached in
// the short-lived cache region when caching is enabled.
func (s *stackService) QueryStacks(ctx context.Context, query models.StackQuery) (models.StackListResponse, error) {
	log := logger.FromContext(ctx)

	query = normalizeQuery(query)

	key := listingCacheKey(query)
	if s.regions != nil {
		if cached, ok := s.regions.Get(listingCacheRegion, key); ok {
			if response, ok := cached.(models.StackListResponse); ok {
				return response, nil
			}
		}
	}

	stacks, total, err := s.stackRepository.QueryStacks(ctx, query)
	if err != nil {
		log.Err(err).Msg("stack listing failed")
		return models.StackListResponse{}, fmt.Errorf("stack listing failed: %w", err)
	}

	response := models.StackListResponse{
		Stacks:      stacks,
		Page:        query.Page,
		Pages:       pageCount(total, query.RowsPerPage),
		RowsPerPage: query.RowsPerPage,
		Total:       total,
	}

	if s.regions != nil {
		s.regions.Set(listingCacheRegion, key, response)
	}

	return response, nil
}

// SaveStack creates or updates a stack on behalf of the acting user.
//
// Ownership rules: a stack that has owners may only be modified by one of
// its owners or by a member of an owning group. When the submission leaves
// the stack without any owners, the acting user becomes its owner.
//
// On success a stack.save event is published and the listing cache is
// flushed.
func (s *stackService) SaveStack(ctx context.Context, userID int64, request models.SaveStackRequest) (models.StackResponse, error) {
	log := logger.FromContext(ctx)

	if request.Name == "" {
		return models.StackResponse{}, ErrValidationNoStackName
	}

	user, err := s.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("acting user lookup failed")
		return models.StackResponse{}, fmt.Errorf("acting user lookup failed: %w", err)
	}

	if err := s.checkOwnership(ctx, request.Name, user); err != nil {
		return models.StackResponse{}, err
	}

	stack := stackFromRequest(request)
	if len(stack.Users) == 0 && len(stack.Groups) == 0 {
		stack.Users = []models.User{{Login: user.Login}}
	}

	saved, err := s.stackRepository.SaveStack(ctx, stack)
	if err != nil {
		log.Err(err).Str("stack", request.Name).Msg("stack save failed")
		return models.StackResponse{}, fmt.Errorf("stack save failed: %w", err)
	}

	s.flushListings()
	s.publish(ctx, notify.TopicStackSave, saved, user.Login)

	return models.StackResponse{Stack: saved}, nil
}

// DeleteStack removes a stack on behalf of the acting user, enforcing the
// same ownership rules as SaveStack. On success a stack.delete event is
// published and the listing cache is flushed.
func (s *stackService) DeleteStack(ctx context.Context, userID int64, name string) (models.StatusResponse, error) {
	log := logger.FromContext(ctx)

	if name == "" {
		return models.StatusResponse{}, ErrValidationNoStackName
	}

	user, err := s.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("acting user lookup failed")
		return models.StatusResponse{}, fmt.Errorf("acting user lookup failed: %w", err)
	}

	stack, err := s.stackRepository.GetStack(ctx, name)
	if err != nil {
		log.Err(err).Str("stack", name).Msg("stack lookup failed")
		return models.StatusResponse{}, fmt.Errorf("stack lookup failed: %w", err)
	}

	if stack.HasOwners() && !stack.OwnedBy(user) {
		log.Error().Str("stack", name).Str("login", user.Login).Msg("user does not own the stack")
		return models.StatusResponse{}, ErrStackAccessForbidden
	}

	if err := s.stackRepository.DeleteStack(ctx, name); err != nil {
		log.Err(err).Str("stack", name).Msg("stack deletion failed")
		return models.StatusResponse{}, fmt.Errorf("stack deletion failed: %w", err)
	}

	s.flushListings()
	s.publish(ctx, notify.TopicStackDelete, stack, user.Login)

	return models.StatusResponse{Status: "success"}, nil
}

// checkOwnership enforces the save-side ownership rule: an existing stack
// with owners may only be modified by an owner. A missing stack passes the
// check, as does a stack without owners.
func (s *stackService) checkOwnership(ctx context.Context, name string, user models.User) error {
	log := logger.FromContext(ctx)

	existing, err := s.stackRepository.GetStack(ctx, name)
	if err != nil {
		if errors.Is(err, store.ErrStackNotFound) {
			return nil
		}
		log.Err(err).Str("stack", name).Msg("existing stack lookup failed")
		return fmt.Errorf("existing stack lookup failed: %w", err)
	}

	if existing.HasOwners() && !existing.OwnedBy(user) {
		log.Error().Str("stack", name).Str("login", user.Login).Msg("user does not own the stack")
		return ErrStackAccessForbidden
	}

	return nil
}

// publish emits a stack event. Publish failures are logged and swallowed:
// the mutation has already been committed and must not be reported as
// failed.
func (s *stackService) publish(ctx context.Context, topic string, stack models.Stack, agent string) {
	payload := map[string]any{
		"stack": stack,
		"agent": agent,
	}

	if err := s.publisher.Publish(topic, payload); err != nil {
		logger.FromContext(ctx).Err(err).Str("topic", topic).Str("stack", stack.Name).Msg("event publishing failed")
	}
}

func (s *stackService) flushListings() {
	if s.regions != nil {
		s.regions.Invalidate(listingCacheRegion)
	}
}

func stackFromRequest(request models.SaveStackRequest) models.Stack {
	stack := models.Stack{
		Name:        request.Name,
		Description: request.Description,
	}

	for _, name := range request.Packages {
		stack.Packages = append(stack.Packages, models.Package{Name: name})
	}
	for _, login := range request.Users {
		stack.Users = append(stack.Users, models.User{Login: login})
	}
	for _, name := range request.Groups {
		stack.Groups = append(stack.Groups, models.Group{Name: name})
	}

	return stack
}

func normalizeQuery(query models.StackQuery) models.StackQuery {
	if query.Page < 1 {
		query.Page = 1
	}
	if query.RowsPerPage < 1 {
		query.RowsPerPage = defaultRowsPerPage
	}
	if query.RowsPerPage > maxRowsPerPage {
		query.RowsPerPage = maxRowsPerPage
	}
	return query
}

// pageCount returns the number of pages needed for total rows at the given
// page size.
func pageCount(total, rowsPerPage int) int {
	return (total + rowsPerPage - 1) / rowsPerPage
}

func listingCacheKey(query models.StackQuery) string {
	return fmt.Sprintf("stacks:%s|%s|%s|%d|%d",
		query.Name, query.Like, strings.Join(query.Packages, ","), query.Page, query.RowsPerPage)
}
