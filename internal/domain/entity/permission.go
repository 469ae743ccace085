package entity

import "errors"

// Errores del modelo de permisos.
var (
	ErrNotPrimary        = errors.New("la capability no es primaria")
	ErrUnknownCapability = errors.New("capability fuera del conjunto cerrado")
)

// Capability identifica un permiso puntual dentro de la aplicación.
// El valor string es el nombre de la clave en el API JSON (lo consume la app móvil tal cual).
type Capability string

// Conjunto cerrado de 14 capabilities. No se agregan claves en runtime.
const (
	// Primarias: cada una habilita la creación de un tipo de asiento contable.
	CapCreateSaleEntries     Capability = "canCreateSaleEntries"
	CapCreatePurchaseEntries Capability = "canCreatePurchaseEntries"
	CapCreateReceiptEntries  Capability = "canCreateReceiptEntries"
	CapCreatePaymentEntries  Capability = "canCreatePaymentEntries"
	CapCreateJournalEntries  Capability = "canCreateJournalEntries"

	// Dependientes: se fuerzan en cascada al activar/desactivar una primaria,
	// pero siguen siendo editables individualmente mientras la primaria esté activa.
	CapCreateInventory Capability = "canCreateInventory"
	CapShowInventory   Capability = "canShowInventory"
	CapCreateCustomers Capability = "canCreateCustomers"
	CapShowCustomers   Capability = "canShowCustomers"
	CapCreateVendors   Capability = "canCreateVendors"
	CapShowVendors     Capability = "canShowVendors"
	CapShowEntries     Capability = "canShowEntries"

	// Ocultas: nunca se otorgan por esta vía; se fuerzan a false en cada guardado.
	CapSendInvoiceEmail    Capability = "canSendInvoiceEmail"
	CapSendInvoiceWhatsapp Capability = "canSendInvoiceWhatsapp"
)

// PrimaryCapabilities las 5 capabilities primarias (orden estable para UI y tests).
var PrimaryCapabilities = []Capability{
	CapCreateSaleEntries,
	CapCreatePurchaseEntries,
	CapCreateReceiptEntries,
	CapCreatePaymentEntries,
	CapCreateJournalEntries,
}

// Dependencies dependientes forzadas por cada primaria. Invariante: al cambiar
// una primaria, todas sus dependientes toman el valor NUEVO de la primaria.
var Dependencies = map[Capability][]Capability{
	CapCreateSaleEntries:     {CapCreateInventory, CapShowInventory, CapCreateCustomers, CapShowCustomers},
	CapCreatePurchaseEntries: {CapCreateInventory, CapShowInventory, CapCreateVendors, CapShowVendors},
	CapCreateReceiptEntries:  {CapShowCustomers},
	CapCreatePaymentEntries:  {CapShowVendors},
	CapCreateJournalEntries:  {CapShowEntries},
}

// HiddenCapabilities claves forzadas a false en cada guardado (política de servidor).
var HiddenCapabilities = []Capability{CapSendInvoiceEmail, CapSendInvoiceWhatsapp}

// AllCapabilities las 14 claves del conjunto cerrado.
var AllCapabilities = []Capability{
	CapCreateSaleEntries,
	CapCreatePurchaseEntries,
	CapCreateReceiptEntries,
	CapCreatePaymentEntries,
	CapCreateJournalEntries,
	CapCreateInventory,
	CapShowInventory,
	CapCreateCustomers,
	CapShowCustomers,
	CapCreateVendors,
	CapShowVendors,
	CapShowEntries,
	CapSendInvoiceEmail,
	CapSendInvoiceWhatsapp,
}

// IsPrimary informa si la capability es una de las 5 primarias.
func IsPrimary(c Capability) bool {
	_, ok := Dependencies[c]
	return ok
}

// IsHidden informa si la capability es oculta (forzada por servidor).
func IsHidden(c Capability) bool {
	return c == CapSendInvoiceEmail || c == CapSendInvoiceWhatsapp
}

// IsKnown informa si la clave pertenece al conjunto cerrado.
func IsKnown(c Capability) bool {
	for _, k := range AllCapabilities {
		if k == c {
			return true
		}
	}
	return false
}

// VisibleCapabilities primarias + dependientes (todo menos las ocultas).
// Es el conjunto que afectan las acciones masivas "permitir todo" / "denegar todo".
func VisibleCapabilities() []Capability {
	out := make([]Capability, 0, len(AllCapabilities)-len(HiddenCapabilities))
	for _, c := range AllCapabilities {
		if !IsHidden(c) {
			out = append(out, c)
		}
	}
	return out
}

// OverrideSet mapa capability -> bool para un sujeto (usuario o client).
// Un OverrideSet nil se comporta como todo-false en lecturas (lectura de mapa nil).
type OverrideSet map[Capability]bool

// NewOverrideSet crea un set con las 14 claves definidas en false.
func NewOverrideSet() OverrideSet {
	s := make(OverrideSet, len(AllCapabilities))
	for _, c := range AllCapabilities {
		s[c] = false
	}
	return s
}

// Normalize asegura que las 14 claves conocidas estén definidas (false por defecto)
// y descarta claves fuera del conjunto cerrado.
func (s OverrideSet) Normalize() {
	for k := range s {
		if !IsKnown(k) {
			delete(s, k)
		}
	}
	for _, c := range AllCapabilities {
		if _, ok := s[c]; !ok {
			s[c] = false
		}
	}
}

// Clone copia profunda del set.
func (s OverrideSet) Clone() OverrideSet {
	out := make(OverrideSet, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// TogglePrimary invierte una capability primaria y propaga el valor NUEVO a todas
// sus dependientes. Es el único punto donde hay escritura en cascada.
func (s OverrideSet) TogglePrimary(c Capability) error {
	deps, ok := Dependencies[c]
	if !ok {
		return ErrNotPrimary
	}
	v := !s[c]
	s[c] = v
	for _, d := range deps {
		s[d] = v
	}
	return nil
}

// ToggleDependent invierte exactamente una clave, sin cascada.
// Rechaza primarias (usar TogglePrimary), ocultas y claves desconocidas.
func (s OverrideSet) ToggleDependent(c Capability) error {
	if IsPrimary(c) {
		return ErrNotPrimary
	}
	if !IsKnown(c) || IsHidden(c) {
		return ErrUnknownCapability
	}
	s[c] = !s[c]
	return nil
}

// SetAll asigna value a todas las claves visibles (primarias y dependientes).
// Las ocultas no se tocan: no aparecen en UI y el guardado las fuerza a false igual.
func (s OverrideSet) SetAll(value bool) {
	for _, c := range VisibleCapabilities() {
		s[c] = value
	}
}

// Sanitized devuelve una copia lista para persistir: claves normalizadas y
// ocultas forzadas a false sin importar el estado del borrador. El envío de
// factura por email/WhatsApp jamás se otorga por esta vía.
func (s OverrideSet) Sanitized() OverrideSet {
	out := s.Clone()
	out.Normalize()
	for _, c := range HiddenCapabilities {
		out[c] = false
	}
	return out
}

// Effective calcula el permiso efectivo de una capability para un rol.
// Total y sin efectos: roles no restringidos -> true incondicional; roles
// restringidos -> valor almacenado o false (set nil o clave ausente => false).
func (s OverrideSet) Effective(role Role, c Capability) bool {
	if !role.Constrained() {
		return true
	}
	return s[c]
}
