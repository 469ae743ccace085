package entity

import "time"

// Customer tercero cliente de un Client (a quien se le vende / factura).
type Customer struct {
	ID        string
	ClientID  string
	Name      string
	TaxID     string // NIT o cédula
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Vendor tercero proveedor de un Client (a quien se le compra).
type Vendor struct {
	ID        string
	ClientID  string
	Name      string
	TaxID     string
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
