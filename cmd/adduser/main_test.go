package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/expense-report/backend/internal/service"
	"github.com/expense-report/backend/internal/service/servicetest"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestParseArgs(t *testing.T) {
	opts, err := parseArgs([]string{"-u", "alice", "--email", "alice@example.com", "--profile-image", "a.png"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "alice", opts.username)
	assert.Equal(t, "alice@example.com", opts.email)
	assert.Equal(t, "a.png", opts.profileImage)
	assert.Empty(t, opts.password)
}

func TestParseArgsMissingFlags(t *testing.T) {
	var stderr bytes.Buffer
	_, err := parseArgs([]string{"--username", "alice"}, &stderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email")
	assert.Contains(t, stderr.String(), "Usage: adduser")
}

func TestParseArgsHelp(t *testing.T) {
	_, err := parseArgs([]string{"--help"}, io.Discard)
	assert.True(t, errors.Is(err, pflag.ErrHelp))
}

func TestCreateUserPromptsForPassword(t *testing.T) {
	store := servicetest.NewStore()
	users := service.NewUserService(store, nil)

	var stdout bytes.Buffer
	opts := options{username: "alice", email: "alice@example.com"}
	err := createUser(context.Background(), users, opts, strings.NewReader("secret123\n"), &stdout)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "Password: ")
	assert.Contains(t, stdout.String(), "User alice created with ID ")

	stored, err := store.GetUserByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret123")))
}

func TestCreateUserAppliesSignupRules(t *testing.T) {
	tests := []struct {
		name string
		opts options
	}{
		{name: "short-password", opts: options{username: "alice", email: "alice@example.com", password: "123"}},
		{name: "short-username", opts: options{username: "al", email: "alice@example.com", password: "secret123"}},
		{name: "long-username", opts: options{username: strings.Repeat("a", 51), email: "alice@example.com", password: "secret123"}},
		{name: "bad-email", opts: options{username: "alice", email: "not-an-email", password: "secret123"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := servicetest.NewStore()
			users := service.NewUserService(store, nil)

			err := createUser(context.Background(), users, tt.opts, strings.NewReader(""), io.Discard)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid account details")

			_, err = store.GetUserByEmail(context.Background(), tt.opts.email)
			assert.Error(t, err)
		})
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	users := service.NewUserService(servicetest.NewStore(), nil)
	opts := options{username: "alice", email: "alice@example.com", password: "secret123"}

	require.NoError(t, createUser(context.Background(), users, opts, strings.NewReader(""), io.Discard))

	err := createUser(context.Background(), users, opts, strings.NewReader(""), io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}
