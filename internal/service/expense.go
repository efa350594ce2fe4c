package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/expense-report/backend/internal/db"
	"github.com/expense-report/backend/internal/model"
	"github.com/google/uuid"
)

type ExpenseRepo interface {
	CreateExpense(ctx context.Context, e *model.Expense) (*model.Expense, error)
	ListExpensesByUser(ctx context.Context, userID string) ([]model.Expense, error)
	GetExpenseByIDAndUser(ctx context.Context, expenseID, userID string) (*model.Expense, error)
	UpdateExpense(ctx context.Context, e *model.Expense) (*model.Expense, error)
	DeleteExpenseByIDAndUser(ctx context.Context, expenseID, userID string) error
}

type ExpenseService struct {
	repo ExpenseRepo
	now  func() time.Time
}

func NewExpenseService(repo ExpenseRepo) *ExpenseService {
	return &ExpenseService{repo: repo, now: time.Now}
}

func (s *ExpenseService) Create(ctx context.Context, userID string, req model.CreateExpenseRequest) (*model.Expense, error) {
	if req.Quantity == nil || req.Price == nil || req.ExpenseDate == nil {
		return nil, ErrInvalidInput
	}
	if *req.Quantity <= 0 || *req.Price <= 0 {
		return nil, ErrInvalidInput
	}

	now := s.now()
	e := &model.Expense{
		ID:          uuid.NewString(),
		UserID:      userID,
		Name:        req.Name,
		Purpose:     req.Purpose,
		Description: req.Description,
		Quantity:    *req.Quantity,
		Price:       *req.Price,
		ExpenseDate: req.ExpenseDate.Time,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	e.RecomputeTotal()
	if !finiteTotal(e) {
		return nil, ErrInvalidInput
	}

	created, err := s.repo.CreateExpense(ctx, e)
	if err != nil {
		return nil, fmt.Errorf("create expense: %w", err)
	}
	return created, nil
}

func (s *ExpenseService) ListByUser(ctx context.Context, userID string) ([]model.Expense, error) {
	list, err := s.repo.ListExpensesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	if list == nil {
		list = []model.Expense{}
	}
	return list, nil
}

// FindOwned returns ErrNotFound both for a missing expense and for one that
// belongs to another user.
func (s *ExpenseService) FindOwned(ctx context.Context, expenseID, userID string) (*model.Expense, error) {
	e, err := s.repo.GetExpenseByIDAndUser(ctx, expenseID, userID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get expense: %w", err)
	}
	return e, nil
}

func (s *ExpenseService) Update(ctx context.Context, e *model.Expense, req model.UpdateExpenseRequest) (*model.Expense, error) {
	updated := *e

	if v := nonEmpty(req.Name); v != "" {
		updated.Name = v
	}
	if v := nonEmpty(req.Purpose); v != "" {
		updated.Purpose = v
	}
	if v := nonEmpty(req.Description); v != "" {
		updated.Description = v
	}
	if req.Quantity != nil {
		if *req.Quantity <= 0 {
			return nil, ErrInvalidInput
		}
		updated.Quantity = *req.Quantity
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			return nil, ErrInvalidInput
		}
		updated.Price = *req.Price
	}
	if req.ExpenseDate != nil {
		updated.ExpenseDate = req.ExpenseDate.Time
	}
	updated.RecomputeTotal()
	if !finiteTotal(&updated) {
		return nil, ErrInvalidInput
	}
	updated.UpdatedAt = s.now()

	saved, err := s.repo.UpdateExpense(ctx, &updated)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update expense: %w", err)
	}
	return saved, nil
}

// Delete is a no-op when the expense is missing or owned by someone else.
func (s *ExpenseService) Delete(ctx context.Context, expenseID, userID string) error {
	if err := s.repo.DeleteExpenseByIDAndUser(ctx, expenseID, userID); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return nil
}

// finiteTotal rejects quantity/price pairs whose product overflows float64;
// an infinite total cannot be written back out as JSON.
func finiteTotal(e *model.Expense) bool {
	return !math.IsInf(e.TotalAmount, 0) && !math.IsNaN(e.TotalAmount)
}

func nonEmpty(v *string) string {
	if v == nil {
		return ""
	}
	return strings.TrimSpace(*v)
}
