package dto

import "time"

// CreateBankDetailRequest body para POST /api/bank-details.
type CreateBankDetailRequest struct {
	BankName      string `json:"bank_name" validate:"required,min=1,max=200"`
	AccountNumber string `json:"account_number" validate:"required,min=1,max=50"`
	AccountType   string `json:"account_type" validate:"required,oneof=savings checking"`
	HolderName    string `json:"holder_name" validate:"required,min=1,max=200"`
}

// UpdateBankDetailRequest body para PUT /api/bank-details/:id (campos opcionales).
type UpdateBankDetailRequest struct {
	BankName      *string `json:"bank_name" validate:"omitempty,min=1,max=200"`
	AccountNumber *string `json:"account_number" validate:"omitempty,min=1,max=50"`
	AccountType   *string `json:"account_type" validate:"omitempty,oneof=savings checking"`
	HolderName    *string `json:"holder_name" validate:"omitempty,min=1,max=200"`
}

// BankDetailResponse dato bancario en respuestas.
type BankDetailResponse struct {
	ID            string    `json:"id"`
	ClientID      string    `json:"client_id"`
	BankName      string    `json:"bank_name"`
	AccountNumber string    `json:"account_number"`
	AccountType   string    `json:"account_type"`
	HolderName    string    `json:"holder_name"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
