package dto

import (
	"time"

	"github.com/tu-usuario/contable-pro/internal/domain/entity"
)

// ValidityResponse envoltura { "validity": {...} } que consume la app móvil.
type ValidityResponse struct {
	Validity ValidityPayload `json:"validity"`
}

// ValidityPayload registro de validez con los campos derivados ya calculados.
type ValidityPayload struct {
	ClientID  string     `json:"client_id"`
	Status    string     `json:"status"`
	StartAt   *time.Time `json:"startAt"`
	ExpiresAt *time.Time `json:"expiresAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	IsActive  bool       `json:"isActive"`
	DaysLeft  *int       `json:"daysLeft"`
	Expired   bool       `json:"expired"`
}

// ToValidityResponse arma la respuesta con derivados evaluados en now.
func ToValidityResponse(v *entity.AccountValidity, now time.Time) ValidityResponse {
	return ValidityResponse{Validity: ValidityPayload{
		ClientID:  v.ClientID,
		Status:    string(v.Status),
		StartAt:   v.StartAt,
		ExpiresAt: v.ExpiresAt,
		UpdatedAt: v.UpdatedAt,
		IsActive:  v.IsActive(),
		DaysLeft:  v.DaysLeft(now),
		Expired:   v.Expired(now),
	}}
}

// ExtendValidityRequest body de PUT /api/account/:clientId/validity.
// API por duración: years/months/days desde startAt (o desde now si es nil).
type ExtendValidityRequest struct {
	Years   int        `json:"years" validate:"min=0"`
	Months  int        `json:"months" validate:"min=0"`
	Days    int        `json:"days" validate:"min=0"`
	StartAt *time.Time `json:"startAt"`
}

// SetExpiryRequest body de PUT /api/account/:clientId/validity/expiry.
// Fecha absoluta objetivo; el servidor la traduce a duración con piso de 1 día.
type SetExpiryRequest struct {
	ExpiresAt time.Time `json:"expiresAt" validate:"required"`
}
