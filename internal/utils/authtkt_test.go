// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testIssuer = "stack-keeper"
	testSecret = "test-secret"
)

func TestGenerateAuthTicket_Success(t *testing.T) {
	ticket, err := GenerateAuthTicket(testIssuer, 42, time.Hour, testSecret)
	require.NoError(t, err)
	require.NotEmpty(t, ticket.SignedString)

	parsed, err := ValidateAndParseAuthTicket(ticket.SignedString, testSecret, testIssuer)
	require.NoError(t, err)
	assert.Equal(t, int64(42), parsed.UserID)
}

func TestGenerateAuthTicket_InvalidParams(t *testing.T) {
	tests := []struct {
		name    string
		issuer  string
		timeout time.Duration
		secret  string
	}{
		{name: "empty issuer", issuer: "", timeout: time.Hour, secret: testSecret},
		{name: "zero timeout", issuer: testIssuer, timeout: 0, secret: testSecret},
		{name: "empty secret", issuer: testIssuer, timeout: time.Hour, secret: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateAuthTicket(tt.issuer, 42, tt.timeout, tt.secret)
			assert.Error(t, err)
		})
	}
}

func TestValidateAndParseAuthTicket_WrongSecret(t *testing.T) {
	ticket, err := GenerateAuthTicket(testIssuer, 42, time.Hour, testSecret)
	require.NoError(t, err)

	_, err = ValidateAndParseAuthTicket(ticket.SignedString, "other-secret", testIssuer)
	assert.Error(t, err)
}

func TestValidateAndParseAuthTicket_WrongIssuer(t *testing.T) {
	ticket, err := GenerateAuthTicket(testIssuer, 42, time.Hour, testSecret)
	require.NoError(t, err)

	_, err = ValidateAndParseAuthTicket(ticket.SignedString, testSecret, "other-issuer")
	assert.Error(t, err)
}

func TestValidateAndParseAuthTicket_Expired(t *testing.T) {
	ticket, err := GenerateAuthTicket(testIssuer, 42, -time.Minute, testSecret)
	require.NoError(t, err)

	_, err = ValidateAndParseAuthTicket(ticket.SignedString, testSecret, testIssuer)
	assert.Error(t, err)
}

func TestParseBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{name: "valid header", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "padded header", header: "  Bearer abc.def.ghi  ", want: "abc.def.ghi"},
		{name: "missing credential", header: "Bearer", wantErr: true},
		{name: "empty header", header: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBearerToken(tt.header)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
