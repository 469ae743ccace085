package entity

import (
	"errors"
	"math"
	"time"
)

// ErrInvalidDuration la ventana otorgada debe durar al menos 1 día.
var ErrInvalidDuration = errors.New("la duración debe ser de al menos 1 día")

// ValidityStatus estado de la ventana de suscripción de un account.
// Enum cerrado: cualquier string fuera del conjunto se coacciona a unknown.
type ValidityStatus string

const (
	StatusActive    ValidityStatus = "active"
	StatusExpired   ValidityStatus = "expired"
	StatusSuspended ValidityStatus = "suspended"
	StatusUnlimited ValidityStatus = "unlimited"
	StatusUnknown   ValidityStatus = "unknown"
	StatusDisabled  ValidityStatus = "disabled"
)

// ParseStatus coacciona un string crudo al enum. Un valor no reconocido se
// mapea a unknown para que el resto del sistema nunca vea un estado extraño.
func ParseStatus(raw string) ValidityStatus {
	switch ValidityStatus(raw) {
	case StatusActive, StatusExpired, StatusSuspended, StatusUnlimited, StatusUnknown, StatusDisabled:
		return ValidityStatus(raw)
	default:
		return StatusUnknown
	}
}

// AccountValidity ventana de suscripción de un client. La crea el servidor al
// aprovisionar el account; el cliente móvil solo la lee y muta, nunca la borra.
type AccountValidity struct {
	ClientID  string
	Status    ValidityStatus
	StartAt   *time.Time
	ExpiresAt *time.Time
	UpdatedAt time.Time
}

// IsActive el account es usable: active o unlimited.
func (v *AccountValidity) IsActive() bool {
	return v.Status == StatusActive || v.Status == StatusUnlimited
}

// Expired informa si la fecha de vencimiento ya pasó (comparación directa, no
// de calendario). Sin fecha de vencimiento => nunca expirado.
func (v *AccountValidity) Expired(now time.Time) bool {
	if v.ExpiresAt == nil {
		return false
	}
	return !v.ExpiresAt.After(now)
}

// DaysLeft días de calendario restantes hasta el vencimiento, o nil si no hay
// fecha (unlimited/unknown). Ambos instantes se normalizan a medianoche UTC
// para que el offset horario local jamás corra el conteo ±1 día; el resto
// sub-día se redondea hacia arriba y el resultado se recorta a mínimo 0.
func (v *AccountValidity) DaysLeft(now time.Time) *int {
	if v.ExpiresAt == nil {
		return nil
	}
	diff := utcMidnight(*v.ExpiresAt).Sub(utcMidnight(now))
	d := int(math.Ceil(diff.Hours() / 24))
	if d < 0 {
		d = 0
	}
	return &d
}

// Disable apaga el account. Solo muta Status: StartAt, ExpiresAt y cualquier
// metadato acompañante quedan intactos. No existe "enable": reactivar es
// otorgar una nueva ventana con Extend.
func (v *AccountValidity) Disable(now time.Time) {
	v.Status = StatusDisabled
	v.UpdatedAt = now
}

// Extend otorga una nueva ventana por duración: start = startAt (o now) y
// expiresAt = start + years/months/days. Reactiva implícitamente (status pasa
// a active). La duración total debe ser de al menos 1 día.
func (v *AccountValidity) Extend(years, months, days int, startAt *time.Time, now time.Time) error {
	if years < 0 || months < 0 || days < 0 {
		return ErrInvalidDuration
	}
	if years == 0 && months == 0 && days == 0 {
		return ErrInvalidDuration
	}
	start := now
	if startAt != nil {
		start = *startAt
	}
	exp := start.AddDate(years, months, days)
	v.Status = StatusActive
	v.StartAt = &start
	v.ExpiresAt = &exp
	v.UpdatedAt = now
	return nil
}

// DaysUntil traduce una fecha objetivo absoluta a una duración en días enteros
// desde now, con piso de 1: el API de extensión es por duración, nunca por
// fecha absoluta, y una fecha en el pasado o igual a now no puede producir una
// ventana degenerada de 0 o días negativos.
func DaysUntil(target, now time.Time) int {
	d := int(math.Ceil(target.Sub(now).Hours() / 24))
	if d < 1 {
		d = 1
	}
	return d
}

// utcMidnight trunca un instante a la medianoche UTC de su fecha UTC.
func utcMidnight(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
