package dto

import "time"

// CreateClientRequest entrada para crear un client (account).
type CreateClientRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	TaxID   string `json:"tax_id" validate:"required,min=1,max=20"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email" validate:"omitempty,email"`
}

// UpdateClientRequest entrada para actualizar un client (campos opcionales).
type UpdateClientRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=200"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Status  *string `json:"status" validate:"omitempty,oneof=active suspended inactive"`
}

// ClientResponse salida de un client. Incluye los límites del plan para que
// sirva de fallback cuando el registro de permisos del account no existe (404).
type ClientResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	TaxID          string    `json:"tax_id"`
	Address        string    `json:"address"`
	Phone          string    `json:"phone"`
	Email          string    `json:"email"`
	Status         string    `json:"status"`
	MaxCompanies   int       `json:"maxCompanies"`
	MaxUsers       int       `json:"maxUsers"`
	MaxInventories int       `json:"maxInventories"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ClientListResponse lista paginada de clients.
type ClientListResponse struct {
	Items []ClientResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
