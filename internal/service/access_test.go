package service

import (
	"context"
	"testing"

	"github.com/expense-report/backend/internal/model"
	"github.com/expense-report/backend/internal/service/servicetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckOwnership(t *testing.T) {
	stored := &model.User{ID: "u1", Email: "alice@example.com"}

	tests := []struct {
		name    string
		claimed string
		subject string
		email   string
		stored  *model.User
		want    error
	}{
		{name: "match-without-record", claimed: "u1", subject: "u1", email: "alice@example.com"},
		{name: "match-with-record", claimed: "u1", subject: "u1", email: "alice@example.com", stored: stored},
		{name: "path-mismatch", claimed: "u2", subject: "u1", email: "alice@example.com", want: ErrForbidden},
		{name: "empty-path", claimed: "", subject: "", email: "alice@example.com", want: ErrForbidden},
		{name: "stale-email", claimed: "u1", subject: "u1", email: "old@example.com", stored: stored, want: ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckOwnership(tt.claimed, tt.subject, tt.email, tt.stored)
			if tt.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestAuthorizeUser(t *testing.T) {
	ctx := context.Background()
	users := newTestUserService(t, servicetest.NewStore())
	access := NewAccessService(users)

	alice, err := users.Create(ctx, "alice", "alice@example.com", "secret123", "")
	require.NoError(t, err)

	_, err = access.AuthorizeUser(ctx, alice.ID, nil)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = access.AuthorizeUser(ctx, alice.ID, &model.AuthUser{ID: "someone-else", Email: "alice@example.com"})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = access.AuthorizeUser(ctx, "ghost", &model.AuthUser{ID: "ghost", Email: "ghost@example.com"})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = access.AuthorizeUser(ctx, alice.ID, &model.AuthUser{ID: alice.ID, Email: "stale@example.com"})
	assert.ErrorIs(t, err, ErrForbidden)

	got, err := access.AuthorizeUser(ctx, alice.ID, &model.AuthUser{ID: alice.ID, Email: "alice@example.com"})
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.ID)
}
