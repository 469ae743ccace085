package dto

// CreateCustomerRequest body para POST /api/customers.
type CreateCustomerRequest struct {
	Name  string `json:"name"`
	TaxID string `json:"tax_id"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// CustomerResponse tercero cliente en respuestas.
type CustomerResponse struct {
	ID       string `json:"id"`
	ClientID string `json:"client_id"`
	Name     string `json:"name"`
	TaxID    string `json:"tax_id"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// CustomerListResponse lista paginada de terceros clientes.
type CustomerListResponse struct {
	Items []CustomerResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// CreateVendorRequest body para POST /api/vendors.
type CreateVendorRequest struct {
	Name  string `json:"name"`
	TaxID string `json:"tax_id"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// VendorResponse proveedor en respuestas.
type VendorResponse struct {
	ID       string `json:"id"`
	ClientID string `json:"client_id"`
	Name     string `json:"name"`
	TaxID    string `json:"tax_id"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// VendorListResponse lista paginada de proveedores.
type VendorListResponse struct {
	Items []VendorResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
