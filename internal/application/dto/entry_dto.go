package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateEntryRequest body para POST /api/entries. El tipo determina qué
// capability primaria debe tener el usuario para registrarlo.
type CreateEntryRequest struct {
	Type        string          `json:"type" validate:"required,oneof=sale purchase receipt payment journal"`
	Category    string          `json:"category" validate:"required,oneof=income expense"`
	Date        time.Time       `json:"date" validate:"required"`
	Description string          `json:"description" validate:"max=500"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	PartyID     string          `json:"party_id,omitempty"`
}

// EntryResponse asiento en respuestas.
type EntryResponse struct {
	ID          string          `json:"id"`
	ClientID    string          `json:"client_id"`
	Type        string          `json:"type"`
	Category    string          `json:"category"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	PartyID     string          `json:"party_id,omitempty"`
	CreatedBy   string          `json:"created_by"`
	CreatedAt   time.Time       `json:"created_at"`
}

// EntryListResponse lista paginada de asientos.
type EntryListResponse struct {
	Items []EntryResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// ProfitLossResponse estado de resultados de un rango de fechas.
type ProfitLossResponse struct {
	ClientID     string           `json:"client_id"`
	From         time.Time        `json:"from"`
	To           time.Time        `json:"to"`
	Lines        []ProfitLossLine `json:"lines"`
	TotalIncome  decimal.Decimal  `json:"total_income"`
	TotalExpense decimal.Decimal  `json:"total_expense"`
	NetProfit    decimal.Decimal  `json:"net_profit"`
}

// ProfitLossLine total por tipo de asiento.
type ProfitLossLine struct {
	Type     string          `json:"type"`
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}
