package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/contable-pro/internal/domain/entity"
)

func datePtr(t time.Time) *time.Time { return &t }

// ──────────────────────────────────────────────────────────────────────────────
// ParseStatus
// ──────────────────────────────────────────────────────────────────────────────

func TestParseStatus_CoaccionaAUnknown(t *testing.T) {
	assert.Equal(t, entity.StatusActive, entity.ParseStatus("active"))
	assert.Equal(t, entity.StatusUnlimited, entity.ParseStatus("unlimited"))
	assert.Equal(t, entity.StatusDisabled, entity.ParseStatus("disabled"))
	assert.Equal(t, entity.StatusUnknown, entity.ParseStatus("premium-deluxe"),
		"un estado fuera del enum cae en unknown")
	assert.Equal(t, entity.StatusUnknown, entity.ParseStatus(""))
}

// ──────────────────────────────────────────────────────────────────────────────
// DaysLeft — conteo de días de calendario en UTC
// ──────────────────────────────────────────────────────────────────────────────

func TestDaysLeft_SinVencimientoEsNil(t *testing.T) {
	v := &entity.AccountValidity{Status: entity.StatusUnlimited}
	assert.Nil(t, v.DaysLeft(time.Now()), "unlimited no tiene días restantes")
}

func TestDaysLeft_DiaExactoYMedioDia(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)

	// Vence mañana a cualquier hora: 1 día de calendario
	v := &entity.AccountValidity{ExpiresAt: datePtr(time.Date(2026, 3, 11, 2, 0, 0, 0, time.UTC))}
	d := v.DaysLeft(now)
	require.NotNil(t, d)
	assert.Equal(t, 1, *d)

	// Vence hoy más tarde: 0 días (misma fecha de calendario)
	v = &entity.AccountValidity{ExpiresAt: datePtr(time.Date(2026, 3, 10, 23, 59, 0, 0, time.UTC))}
	d = v.DaysLeft(now)
	require.NotNil(t, d)
	assert.Equal(t, 0, *d)
}

// El conteo no depende del offset local: un instante en UTC-5 y su equivalente
// UTC dan los mismos días restantes.
func TestDaysLeft_InsensibleAlOffsetLocal(t *testing.T) {
	bogota := time.FixedZone("COT", -5*3600)
	exp := time.Date(2026, 6, 20, 0, 0, 0, 0, time.UTC)
	v := &entity.AccountValidity{ExpiresAt: &exp}

	nowUTC := time.Date(2026, 6, 15, 3, 0, 0, 0, time.UTC)
	nowBogota := nowUTC.In(bogota) // 14-jun 22:00 COT, mismo instante

	dUTC := v.DaysLeft(nowUTC)
	dBog := v.DaysLeft(nowBogota)
	require.NotNil(t, dUTC)
	require.NotNil(t, dBog)
	assert.Equal(t, *dUTC, *dBog, "el offset local no puede correr el conteo ±1 día")
	assert.Equal(t, 5, *dUTC)
}

// Offset positivo: en la madrugada local de la India el día calendario local
// ya es el siguiente, pero el conteo sigue anclado a la medianoche UTC.
func TestDaysLeft_InsensibleAOffsetPositivo(t *testing.T) {
	india := time.FixedZone("IST", 5*3600+30*60)
	exp := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	v := &entity.AccountValidity{ExpiresAt: &exp}

	nowUTC := time.Date(2025, 1, 7, 20, 30, 0, 0, time.UTC)
	nowIndia := nowUTC.In(india) // 8-ene 02:00 IST, mismo instante

	dUTC := v.DaysLeft(nowUTC)
	dIST := v.DaysLeft(nowIndia)
	require.NotNil(t, dUTC)
	require.NotNil(t, dIST)
	assert.Equal(t, *dUTC, *dIST, "cruzar la medianoche local no puede restar un día")
	assert.Equal(t, 3, *dUTC)
}

func TestDaysLeft_PasadoSeRecortaACero(t *testing.T) {
	now := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	v := &entity.AccountValidity{ExpiresAt: datePtr(time.Date(2026, 7, 20, 0, 0, 0, 0, time.UTC))}
	d := v.DaysLeft(now)
	require.NotNil(t, d)
	assert.Equal(t, 0, *d, "nunca días negativos")
}

// ──────────────────────────────────────────────────────────────────────────────
// Expired / IsActive
// ──────────────────────────────────────────────────────────────────────────────

func TestExpired(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	v := &entity.AccountValidity{}
	assert.False(t, v.Expired(now), "sin vencimiento nunca expira")

	v.ExpiresAt = datePtr(now.Add(time.Minute))
	assert.False(t, v.Expired(now))

	v.ExpiresAt = datePtr(now)
	assert.True(t, v.Expired(now), "el instante exacto de vencimiento ya cuenta como expirado")

	v.ExpiresAt = datePtr(now.Add(-time.Hour))
	assert.True(t, v.Expired(now))
}

func TestIsActive(t *testing.T) {
	assert.True(t, (&entity.AccountValidity{Status: entity.StatusActive}).IsActive())
	assert.True(t, (&entity.AccountValidity{Status: entity.StatusUnlimited}).IsActive())
	assert.False(t, (&entity.AccountValidity{Status: entity.StatusExpired}).IsActive())
	assert.False(t, (&entity.AccountValidity{Status: entity.StatusSuspended}).IsActive())
	assert.False(t, (&entity.AccountValidity{Status: entity.StatusDisabled}).IsActive())
	assert.False(t, (&entity.AccountValidity{Status: entity.StatusUnknown}).IsActive())
}

// ──────────────────────────────────────────────────────────────────────────────
// Disable — solo muta el status
// ──────────────────────────────────────────────────────────────────────────────

func TestDisable_PreservaFechas(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	exp := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	v := &entity.AccountValidity{
		ClientID:  "acc-1",
		Status:    entity.StatusActive,
		StartAt:   &start,
		ExpiresAt: &exp,
	}

	v.Disable(now)

	assert.Equal(t, entity.StatusDisabled, v.Status)
	require.NotNil(t, v.StartAt)
	require.NotNil(t, v.ExpiresAt)
	assert.Equal(t, start, *v.StartAt, "disable no toca startAt")
	assert.Equal(t, exp, *v.ExpiresAt, "disable no toca expiresAt")
	assert.Equal(t, now, v.UpdatedAt)
}

// ──────────────────────────────────────────────────────────────────────────────
// Extend — otorgar ventana por duración
// ──────────────────────────────────────────────────────────────────────────────

func TestExtend_DesdeAhora(t *testing.T) {
	now := time.Date(2026, 2, 15, 9, 0, 0, 0, time.UTC)
	v := &entity.AccountValidity{Status: entity.StatusExpired}

	require.NoError(t, v.Extend(1, 2, 10, nil, now))

	assert.Equal(t, entity.StatusActive, v.Status, "extend reactiva")
	require.NotNil(t, v.StartAt)
	require.NotNil(t, v.ExpiresAt)
	assert.Equal(t, now, *v.StartAt)
	assert.Equal(t, now.AddDate(1, 2, 10), *v.ExpiresAt)
}

func TestExtend_DesdeFechaExplicita(t *testing.T) {
	now := time.Date(2026, 2, 15, 9, 0, 0, 0, time.UTC)
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	v := &entity.AccountValidity{Status: entity.StatusDisabled}

	require.NoError(t, v.Extend(0, 0, 30, &start, now))

	assert.Equal(t, start, *v.StartAt)
	assert.Equal(t, start.AddDate(0, 0, 30), *v.ExpiresAt)
	assert.Equal(t, now, v.UpdatedAt, "UpdatedAt usa now, no startAt")
}

func TestExtend_DuracionInvalida(t *testing.T) {
	now := time.Now()
	v := &entity.AccountValidity{}

	assert.ErrorIs(t, v.Extend(0, 0, 0, nil, now), entity.ErrInvalidDuration, "duración cero")
	assert.ErrorIs(t, v.Extend(-1, 0, 5, nil, now), entity.ErrInvalidDuration, "componente negativo")
	assert.ErrorIs(t, v.Extend(0, -2, 0, nil, now), entity.ErrInvalidDuration)
	assert.Nil(t, v.ExpiresAt, "un extend inválido no muta el registro")
}

// ──────────────────────────────────────────────────────────────────────────────
// DaysUntil — traducción fecha absoluta -> duración con piso 1
// ──────────────────────────────────────────────────────────────────────────────

func TestDaysUntil_PisoDeUnDia(t *testing.T) {
	now := time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 1, entity.DaysUntil(now, now), "target == now otorga 1 día")
	assert.Equal(t, 1, entity.DaysUntil(now.Add(-48*time.Hour), now), "target en el pasado otorga 1 día")
	assert.Equal(t, 1, entity.DaysUntil(now.Add(6*time.Hour), now), "fracción de día redondea hacia arriba")
	assert.Equal(t, 3, entity.DaysUntil(now.Add(49*time.Hour), now))
	assert.Equal(t, 2, entity.DaysUntil(now.Add(48*time.Hour), now))
}
