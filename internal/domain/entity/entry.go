package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType tipo de asiento contable. Cada tipo está gateado por su capability
// primaria correspondiente (ver PrimaryCapabilityFor).
type EntryType string

const (
	EntrySale     EntryType = "sale"
	EntryPurchase EntryType = "purchase"
	EntryReceipt  EntryType = "receipt"
	EntryPayment  EntryType = "payment"
	EntryJournal  EntryType = "journal"
)

// ValidEntryType informa si el tipo pertenece al conjunto cerrado.
func ValidEntryType(t EntryType) bool {
	switch t {
	case EntrySale, EntryPurchase, EntryReceipt, EntryPayment, EntryJournal:
		return true
	}
	return false
}

// PrimaryCapabilityFor capability primaria que habilita crear asientos del tipo dado.
func PrimaryCapabilityFor(t EntryType) (Capability, bool) {
	switch t {
	case EntrySale:
		return CapCreateSaleEntries, true
	case EntryPurchase:
		return CapCreatePurchaseEntries, true
	case EntryReceipt:
		return CapCreateReceiptEntries, true
	case EntryPayment:
		return CapCreatePaymentEntries, true
	case EntryJournal:
		return CapCreateJournalEntries, true
	}
	return "", false
}

// Clasificación para el estado de resultados (P&L).
const (
	CategoryIncome  = "income"
	CategoryExpense = "expense"
)

// LedgerEntry asiento del libro contable de un Client.
// Amount siempre positivo; Category determina el signo en el P&L.
type LedgerEntry struct {
	ID          string
	ClientID    string
	Type        EntryType
	Category    string // income, expense
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	PartyID     string // customer o vendor asociado, opcional
	CreatedBy   string // user que registró el asiento
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProfitLossLine total agregado por tipo de asiento dentro de un rango.
type ProfitLossLine struct {
	Type     EntryType
	Category string
	Total    decimal.Decimal
}
