package model

import "time"

type Expense struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Name        string    `json:"expname"`
	Purpose     string    `json:"exppurpose"`
	Description string    `json:"expdescription"`
	Quantity    float64   `json:"expquantity"`
	Price       float64   `json:"expprice"`
	TotalAmount float64   `json:"exptotalAmount"`
	ExpenseDate time.Time `json:"expexpenseDate"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// RecomputeTotal keeps TotalAmount equal to Quantity * Price.
func (e *Expense) RecomputeTotal() {
	e.TotalAmount = e.Quantity * e.Price
}

type CreateExpenseRequest struct {
	Name        string   `json:"expname" binding:"required"`
	Purpose     string   `json:"exppurpose" binding:"required"`
	Description string   `json:"expdescription" binding:"required"`
	Quantity    *float64 `json:"expquantity" binding:"required,gt=0"`
	Price       *float64 `json:"expprice" binding:"required,gt=0"`
	ExpenseDate *Date    `json:"expexpenseDate" binding:"required"`
}

// UpdateExpenseRequest - nil 또는 빈 문자열 필드는 변경하지 않음
type UpdateExpenseRequest struct {
	Name        *string  `json:"expname"`
	Purpose     *string  `json:"exppurpose"`
	Description *string  `json:"expdescription"`
	Quantity    *float64 `json:"expquantity" binding:"omitempty,gt=0"`
	Price       *float64 `json:"expprice" binding:"omitempty,gt=0"`
	ExpenseDate *Date    `json:"expexpenseDate"`
}
