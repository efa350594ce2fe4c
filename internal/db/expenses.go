package db

import (
	"context"

	"github.com/expense-report/backend/internal/model"
)

const expenseColumns = `id, user_id, name, purpose, description, quantity, price, total_amount, expense_date, created_at, updated_at`

func scanExpense(row rowScanner) (*model.Expense, error) {
	var e model.Expense
	err := row.Scan(
		&e.ID,
		&e.UserID,
		&e.Name,
		&e.Purpose,
		&e.Description,
		&e.Quantity,
		&e.Price,
		&e.TotalAmount,
		&e.ExpenseDate,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (db *Postgres) CreateExpense(ctx context.Context, e *model.Expense) (*model.Expense, error) {
	query := `
		INSERT INTO expenses (` + expenseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + expenseColumns
	return scanExpense(db.Pool.QueryRow(ctx, query,
		e.ID,
		e.UserID,
		e.Name,
		e.Purpose,
		e.Description,
		e.Quantity,
		e.Price,
		e.TotalAmount,
		e.ExpenseDate,
		e.CreatedAt,
		e.UpdatedAt,
	))
}

func (db *Postgres) ListExpensesByUser(ctx context.Context, userID string) ([]model.Expense, error) {
	rows, err := db.Pool.Query(ctx, `SELECT `+expenseColumns+` FROM expenses WHERE user_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []model.Expense{}
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *e)
	}
	return list, rows.Err()
}

// 소유자가 다르면 pgx.ErrNoRows
func (db *Postgres) GetExpenseByIDAndUser(ctx context.Context, expenseID, userID string) (*model.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE id = $1 AND user_id = $2`
	return scanExpense(db.Pool.QueryRow(ctx, query, expenseID, userID))
}

func (db *Postgres) UpdateExpense(ctx context.Context, e *model.Expense) (*model.Expense, error) {
	query := `
		UPDATE expenses
		SET name = $3, purpose = $4, description = $5, quantity = $6, price = $7,
			total_amount = $8, expense_date = $9, updated_at = $10
		WHERE id = $1 AND user_id = $2
		RETURNING ` + expenseColumns
	return scanExpense(db.Pool.QueryRow(ctx, query,
		e.ID,
		e.UserID,
		e.Name,
		e.Purpose,
		e.Description,
		e.Quantity,
		e.Price,
		e.TotalAmount,
		e.ExpenseDate,
		e.UpdatedAt,
	))
}

func (db *Postgres) DeleteExpenseByIDAndUser(ctx context.Context, expenseID, userID string) error {
	_, err := db.Pool.Exec(ctx, `DELETE FROM expenses WHERE id = $1 AND user_id = $2`, expenseID, userID)
	return err
}
