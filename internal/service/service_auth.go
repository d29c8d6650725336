// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-stack-keeper/internal/config"
	"github.com/MKhiriev/go-stack-keeper/internal/logger"
	"github.com/MKhiriev/go-stack-keeper/internal/store"
	"github.com/MKhiriev/go-stack-keeper/internal/utils"
	"github.com/MKhiriev/go-stack-keeper/models"
	"golang.org/x/crypto/bcrypt"
)

// ticketIssuer is the "iss" claim embedded in every issued auth ticket.
const ticketIssuer = "stack-keeper"

// authService is the concrete implementation of AuthService.
// It handles user registration, credential verification, and auth ticket
// lifecycle using a UserRepository for persistence and bcrypt for password
// hashing.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// ticketSecret is the HMAC secret used to sign and verify auth tickets.
	ticketSecret string

	// ticketTimeout controls how long a newly issued ticket remains valid.
	ticketTimeout time.Duration

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given UserRepository
// and populated with the authtkt.* settings from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, cfg config.AuthTkt, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		ticketSecret:   cfg.Secret,
		ticketTimeout:  cfg.Timeout,
		logger:         logger,
	}
}

// RegisterUser creates a new user account.
//
// It validates that both Login and Password are non-empty, hashes the
// password with bcrypt, and delegates persistence to the UserRepository.
// The plaintext password is never stored and is cleared from the returned
// record.
//
// Returns the persisted user (with a server-assigned UserID) or:
//   - ErrInvalidDataProvided if Login or Password is empty.
//   - A wrapped storage error if the repository call fails (e.g. login already
//     taken, see store.ErrLoginAlreadyExists).
func (a *authService) RegisterUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	if user.Login == "" || user.Password == "" {
		log.Error().Str("login", user.Login).Msg("invalid user data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Err(err).Str("login", user.Login).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}
	user.Password = ""
	user.PasswordHash = string(hash)

	registeredUser, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("login", user.Login).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registeredUser, nil
}

// Login authenticates an existing user.
//
// It validates that both Login and Password are non-empty, looks up the
// account by login, and compares the stored bcrypt hash against the
// supplied password.
//
// Returns the authenticated user record or:
//   - ErrInvalidDataProvided if Login or Password is empty.
//   - A wrapped storage error if the repository lookup fails (e.g. user not
//     found, see store.ErrNoUserWasFound).
//   - ErrWrongPassword if the password does not match.
func (a *authService) Login(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	if user.Login == "" || user.Password == "" {
		log.Error().Str("login", user.Login).Msg("invalid user data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.FindUserByLogin(ctx, user)
	if err != nil {
		log.Err(err).Str("login", user.Login).Msg("user search by login failed")
		return models.User{}, fmt.Errorf("user search by login failed: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(foundUser.PasswordHash), []byte(user.Password)); err != nil {
		log.Error().
			Int64("id", foundUser.UserID).
			Str("login", foundUser.Login).
			Msg("wrong password")
		return models.User{}, ErrWrongPassword
	}

	return foundUser, nil
}

// CreateTicket issues a signed auth ticket for the given user.
//
// The ticket is signed with the configured authtkt secret and expires after
// the configured authtkt timeout.
//
// Returns the ticket model on success or a wrapped error if generation fails.
func (a *authService) CreateTicket(ctx context.Context, user models.User) (models.Token, error) {
	ticket, err := utils.GenerateAuthTicket(ticketIssuer, user.UserID, a.ticketTimeout, a.ticketSecret)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTicketCreationFailed, err)
	}

	return ticket, nil
}

// ParseTicket validates and parses a raw auth ticket string.
//
// It delegates to utils.ValidateAndParseAuthTicket, verifying the signature
// and the issuer claim. Any validation failure (expired, wrong issuer,
// malformed) is normalised to ErrTicketIsExpiredOrInvalid so that callers do
// not need to inspect low-level token errors.
func (a *authService) ParseTicket(ctx context.Context, ticketString string) (models.Token, error) {
	ticket, err := utils.ValidateAndParseAuthTicket(ticketString, a.ticketSecret, ticketIssuer)
	if err != nil {
		return models.Token{}, ErrTicketIsExpiredOrInvalid
	}

	return ticket, nil
}
