// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-stack-keeper/models"
	"github.com/golang-jwt/jwt/v5"
)

// GenerateAuthTicket creates a signed HMAC-SHA256 auth ticket with the given
// parameters. Tickets are compact JWTs carried in the Authorization header
// of API requests.
//
// The ticket includes the following standard claims:
//   - Issuer    (iss): identifies the service that issued the ticket
//   - Subject   (sub): the user ID encoded as a string
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): the current time plus ticketTimeout
//
// All parameters are required. Returns an error if any of them are empty or
// zero.
func GenerateAuthTicket(issuer string, userID int64, ticketTimeout time.Duration, secret string) (models.Token, error) {
	if issuer == "" || ticketTimeout == 0 || secret == "" {
		return models.Token{}, errors.New("invalid params for generating auth ticket")
	}

	now := time.Now()
	claims := &jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   strconv.FormatInt(userID, 10),
		ExpiresAt: jwt.NewNumericDate(now.Add(ticketTimeout)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during signing auth ticket: %w", err)
	}

	return models.Token{Token: token, SignedString: tokenString}, nil
}

// ValidateAndParseAuthTicket validates the given auth ticket string and
// extracts its claims.
//
// Validation includes:
//   - Signature verification using the provided secret
//   - Issuer (iss) claim check against the provided issuer
//   - Expiration (exp) claim check
//   - Subject (sub) claim presence and conversion to int64 UserID
func ValidateAndParseAuthTicket(ticketString, secret, issuer string) (models.Token, error) {
	token, err := jwt.ParseWithClaims(ticketString, &models.Token{}, func(token *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithIssuer(issuer))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred validating and parsing auth ticket: %w", err)
	}

	userIDStr, err := token.Claims.GetSubject()
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during getting subject from auth ticket: %w", err)
	}
	if userIDStr == "" {
		return models.Token{}, errors.New("empty subject error")
	}

	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during converting subject to user id: %w", err)
	}

	return models.Token{Token: token, UserID: userID}, err
}

// ParseBearerToken extracts the credential value from an Authorization
// header of the form "Bearer <ticket>".
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Split(strings.TrimSpace(authorizationHeader), " ")
	if len(parts) != 2 || parts[1] == "" {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}
