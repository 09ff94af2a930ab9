package models

import "time"

// Lançamento manual do caixa (RECEITA ou DESPESA), independente dos agendamentos.
type Expense struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	HangarID uint `gorm:"index:idx_expense_date" json:"hangar_id"`

	Description   string  `gorm:"size:255;not null" json:"description"`
	Amount        float64 `json:"amount"`
	Category      string  `gorm:"size:50" json:"category"`
	Date          string  `gorm:"size:10;index:idx_expense_date" json:"date"`
	Type          string  `gorm:"size:10" json:"type"`
	PaymentMethod string  `gorm:"size:20" json:"payment_method"`

	CreatedAt time.Time `json:"created_at"`
}
