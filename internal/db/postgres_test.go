package db

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/expense-report/backend/internal/config"
	"github.com/expense-report/backend/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestBuildPostgresURL(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.PostgresConfig
		want    string
		wantErr bool
	}{
		{
			name: "database-url-wins",
			cfg:  config.PostgresConfig{DatabaseURL: "postgres://a@b/c", User: "ignored", Database: "ignored"},
			want: "postgres://a@b/c",
		},
		{
			name: "with-password",
			cfg:  config.PostgresConfig{Host: "db", Port: "5432", User: "app", Password: "p@ss", Database: "expense", SSLMode: "disable"},
			want: "postgres://app:p%40ss@db:5432/expense?sslmode=disable",
		},
		{
			name: "without-password",
			cfg:  config.PostgresConfig{Host: "localhost", Port: "5433", User: "app", Database: "expense", SSLMode: "require"},
			want: "postgres://app@localhost:5433/expense?sslmode=require",
		},
		{
			name:    "missing-user",
			cfg:     config.PostgresConfig{Host: "localhost", Port: "5432", Database: "expense"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := buildPostgresURL(tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("buildPostgresURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorClassifiers(t *testing.T) {
	if !IsNoRows(fmt.Errorf("lookup: %w", pgx.ErrNoRows)) {
		t.Fatalf("wrapped ErrNoRows should be detected")
	}
	if !IsUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})) {
		t.Fatalf("23505 should be a unique violation")
	}
	if IsUniqueViolation(errors.New("boom")) {
		t.Fatalf("plain error is not a unique violation")
	}
}

func setupTestDB(t *testing.T) *Postgres {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := NewPostgresPool(ctx, config.PostgresConfig{DatabaseURL: dsn})
	if err != nil {
		t.Skipf("postgres unavailable: %v", err)
	}
	t.Cleanup(pool.Close)

	pg := NewPostgres(pool)
	if err := pg.EnsureSchema(ctx); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
	for _, table := range []string{"blacklisted_tokens", "expenses", "users"} {
		if _, err := pool.Exec(ctx, "DELETE FROM "+table); err != nil {
			t.Fatalf("cleanup %s: %v", table, err)
		}
	}
	return pg
}

func TestPostgresUsers(t *testing.T) {
	pg := setupTestDB(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	user := &model.User{ID: uuid.NewString(), Username: "alice", Email: "alice@example.com", PasswordHash: "hash", CreatedAt: now, UpdatedAt: now}
	created, err := pg.CreateUser(ctx, user)
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if created.ProfileImage != nil {
		t.Fatalf("expected nil profile image")
	}

	dup := *user
	dup.ID = uuid.NewString()
	if _, err := pg.CreateUser(ctx, &dup); !IsUniqueViolation(err) {
		t.Fatalf("expected unique violation, got %v", err)
	}

	exists, err := pg.UserExistsByEmail(ctx, "alice@example.com")
	if err != nil || !exists {
		t.Fatalf("UserExistsByEmail = %v, %v", exists, err)
	}

	if _, err := pg.GetUserByID(ctx, "missing"); !IsNoRows(err) {
		t.Fatalf("expected no rows, got %v", err)
	}

	img := "me.png"
	created.Username = "alice2"
	created.ProfileImage = &img
	updated, err := pg.UpdateUser(ctx, created)
	if err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	if updated.Username != "alice2" || updated.ProfileImage == nil || *updated.ProfileImage != img {
		t.Fatalf("unexpected update result: %+v", updated)
	}
}

func TestPostgresExpensesOwnership(t *testing.T) {
	pg := setupTestDB(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	e := &model.Expense{
		ID: uuid.NewString(), UserID: "alice", Name: "Lunch", Purpose: "food", Description: "noodles",
		Quantity: 2, Price: 5.5, TotalAmount: 11, ExpenseDate: now, CreatedAt: now, UpdatedAt: now,
	}
	if _, err := pg.CreateExpense(ctx, e); err != nil {
		t.Fatalf("CreateExpense: %v", err)
	}

	if _, err := pg.GetExpenseByIDAndUser(ctx, e.ID, "bob"); !IsNoRows(err) {
		t.Fatalf("expected no rows for other owner, got %v", err)
	}

	list, err := pg.ListExpensesByUser(ctx, "bob")
	if err != nil || len(list) != 0 {
		t.Fatalf("bob list = %v, %v", list, err)
	}

	if err := pg.DeleteExpenseByIDAndUser(ctx, e.ID, "bob"); err != nil {
		t.Fatalf("delete by non-owner: %v", err)
	}
	if _, err := pg.GetExpenseByIDAndUser(ctx, e.ID, "alice"); err != nil {
		t.Fatalf("expense should survive non-owner delete: %v", err)
	}
}

func TestPostgresBlacklist(t *testing.T) {
	pg := setupTestDB(t)
	ctx := context.Background()
	now := time.Now().UTC()

	for i := 0; i < 2; i++ {
		if err := pg.InsertBlacklistedToken(ctx, "tok", "alice", now.Add(time.Hour), now); err != nil {
			t.Fatalf("InsertBlacklistedToken #%d: %v", i, err)
		}
	}

	list, err := pg.ListBlacklistedTokens(ctx)
	if err != nil || len(list) != 1 {
		t.Fatalf("expected one record, got %v, %v", list, err)
	}

	if err := pg.DeleteBlacklistedToken(ctx, list[0].ID); err != nil {
		t.Fatalf("DeleteBlacklistedToken: %v", err)
	}
	exists, err := pg.BlacklistedTokenExists(ctx, "tok")
	if err != nil || exists {
		t.Fatalf("expected token gone, got %v, %v", exists, err)
	}
}
