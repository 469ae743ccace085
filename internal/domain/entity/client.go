package entity

import "time"

// Client representa un account/tenant del sistema (la empresa que contrata el servicio).
type Client struct {
	ID        string
	Name      string
	TaxID     string // NIT/RUT de la empresa contratante
	Address   string
	Phone     string
	Email     string
	Status    string // active, suspended, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ClientPermission permisos y límites a nivel de account. Mismo conjunto de
// capabilities que UserPermission más los topes del plan contratado.
type ClientPermission struct {
	ClientID       string
	Overrides      OverrideSet
	MaxCompanies   int
	MaxUsers       int
	MaxInventories int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// BankDetail datos bancarios de un client (para mostrar en facturas y recibos).
type BankDetail struct {
	ID            string
	ClientID      string
	BankName      string
	AccountNumber string
	AccountType   string // savings, checking
	HolderName    string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
