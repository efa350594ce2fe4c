// Package servicetest provides an in-memory implementation of the service
// repositories. It reports missing rows and duplicate emails with the same
// pgx errors the Postgres store returns.
package servicetest

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/expense-report/backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var ErrInjected = errors.New("injected failure")

type Store struct {
	mu          sync.Mutex
	users       map[string]model.User
	expenses    map[string]model.Expense
	blacklist   map[int64]model.BlacklistedToken
	nextTokenID int64

	// FailDelete makes DeleteBlacklistedToken fail for the given record ids.
	FailDelete map[int64]bool
	// FailList makes ListBlacklistedTokens fail.
	FailList bool
	// SkipExistsCheck makes UserExistsByEmail always report false so tests
	// can reach the unique index path.
	SkipExistsCheck bool
}

func NewStore() *Store {
	return &Store{
		users:      map[string]model.User{},
		expenses:   map[string]model.Expense{},
		blacklist:  map[int64]model.BlacklistedToken{},
		FailDelete: map[int64]bool{},
	}
}

func uniqueViolation() error {
	return &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"}
}

// Users

func (s *Store) CreateUser(_ context.Context, user *model.User) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == user.Email {
			return nil, uniqueViolation()
		}
	}
	s.users[user.ID] = *user
	out := *user
	return &out, nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *Store) GetUserByID(_ context.Context, userID string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &u, nil
}

func (s *Store) UserExistsByEmail(ctx context.Context, email string) (bool, error) {
	if s.SkipExistsCheck {
		return false, nil
	}
	_, err := s.GetUserByEmail(ctx, email)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

func (s *Store) UpdateUser(_ context.Context, user *model.User) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; !ok {
		return nil, pgx.ErrNoRows
	}
	for id, u := range s.users {
		if id != user.ID && u.Email == user.Email {
			return nil, uniqueViolation()
		}
	}
	s.users[user.ID] = *user
	out := *user
	return &out, nil
}

// Expenses

func (s *Store) CreateExpense(_ context.Context, e *model.Expense) (*model.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.expenses[e.ID] = *e
	out := *e
	return &out, nil
}

func (s *Store) ListExpensesByUser(_ context.Context, userID string) ([]model.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var list []model.Expense
	for _, e := range s.expenses {
		if e.UserID == userID {
			list = append(list, e)
		}
	}
	return list, nil
}

func (s *Store) GetExpenseByIDAndUser(_ context.Context, expenseID, userID string) (*model.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.expenses[expenseID]
	if !ok || e.UserID != userID {
		return nil, pgx.ErrNoRows
	}
	return &e, nil
}

func (s *Store) UpdateExpense(_ context.Context, e *model.Expense) (*model.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.expenses[e.ID]
	if !ok || existing.UserID != e.UserID {
		return nil, pgx.ErrNoRows
	}
	s.expenses[e.ID] = *e
	out := *e
	return &out, nil
}

func (s *Store) DeleteExpenseByIDAndUser(_ context.Context, expenseID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.expenses[expenseID]; ok && e.UserID == userID {
		delete(s.expenses, expenseID)
	}
	return nil
}

// Blacklist

func (s *Store) BlacklistedTokenExists(_ context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.blacklist {
		if t.Token == token {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) InsertBlacklistedToken(_ context.Context, token, userID string, expiresAt, blacklistedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.blacklist {
		if t.Token == token {
			return nil
		}
	}
	s.nextTokenID++
	s.blacklist[s.nextTokenID] = model.BlacklistedToken{
		ID:            s.nextTokenID,
		Token:         token,
		UserID:        userID,
		ExpiresAt:     expiresAt,
		BlacklistedAt: blacklistedAt,
	}
	return nil
}

func (s *Store) ListBlacklistedTokens(_ context.Context) ([]model.BlacklistedToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailList {
		return nil, ErrInjected
	}
	list := make([]model.BlacklistedToken, 0, len(s.blacklist))
	for _, t := range s.blacklist {
		list = append(list, t)
	}
	return list, nil
}

func (s *Store) DeleteBlacklistedToken(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailDelete[id] {
		return ErrInjected
	}
	delete(s.blacklist, id)
	return nil
}

// BlacklistCount returns the number of stored blacklist records.
func (s *Store) BlacklistCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.blacklist)
}
