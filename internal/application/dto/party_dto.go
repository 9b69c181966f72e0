package dto

import "time"

// WorkerRequest alta de trabajador.
type WorkerRequest struct {
	Names    string `json:"nombres" validate:"required,max=100"`
	Surnames string `json:"apellidos" validate:"max=100"`
	DNI      string `json:"dni" validate:"required,numeric,len=8"`
	Phone    string `json:"telefono" validate:"omitempty,max=20"`
	Email    string `json:"email" validate:"omitempty,email,max=150"`
	Address  string `json:"direccion" validate:"max=255"`
	Position string `json:"cargo" validate:"max=100"`
	Estado   *bool  `json:"estado"`
}

// UpdateWorkerRequest actualización con versión.
type UpdateWorkerRequest struct {
	WorkerRequest
	VersionRequest
}

// WorkerResponse salida de un trabajador.
type WorkerResponse struct {
	ID        int64     `json:"id"`
	Names     string    `json:"nombres"`
	Surnames  string    `json:"apellidos"`
	DNI       string    `json:"dni"`
	Phone     string    `json:"telefono"`
	Email     string    `json:"email"`
	Address   string    `json:"direccion"`
	Position  string    `json:"cargo"`
	Estado    bool      `json:"estado"`
	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NaturalPersonDTO sub-registro de persona natural.
type NaturalPersonDTO struct {
	Names    string `json:"nombres" validate:"required,max=100"`
	Surnames string `json:"apellidos" validate:"max=100"`
	DNI      string `json:"dni" validate:"required,numeric,len=8"`
}

// LegalEntityDTO sub-registro de persona jurídica.
type LegalEntityDTO struct {
	LegalName        string `json:"razon_social" validate:"required,max=200"`
	RUC              string `json:"ruc" validate:"required,numeric,len=11"`
	RepresentativeID *int64 `json:"id_representante" validate:"omitempty,min=1"`
}

// ClientRequest alta de cliente: tipo y exactamente uno de natural/juridico.
type ClientRequest struct {
	Type     string            `json:"tipo" validate:"required,oneof=NATURAL JURIDICO"`
	Phone    string            `json:"telefono" validate:"omitempty,max=20"`
	Email    string            `json:"email" validate:"omitempty,email,max=150"`
	Address  string            `json:"direccion" validate:"max=255"`
	Estado   *bool             `json:"estado"`
	Natural  *NaturalPersonDTO `json:"natural" validate:"omitempty"`
	Juridico *LegalEntityDTO   `json:"juridico" validate:"omitempty"`
}

// UpdateClientRequest actualización con versión.
type UpdateClientRequest struct {
	ClientRequest
	VersionRequest
}

// ClientResponse salida de un cliente.
type ClientResponse struct {
	ID          int64             `json:"id"`
	Type        string            `json:"tipo"`
	DisplayName string            `json:"nombre"`
	Document    string            `json:"documento"`
	Phone       string            `json:"telefono"`
	Email       string            `json:"email"`
	Address     string            `json:"direccion"`
	Estado      bool              `json:"estado"`
	Natural     *NaturalPersonDTO `json:"natural,omitempty"`
	Juridico    *LegalEntityDTO   `json:"juridico,omitempty"`
	Version     int64             `json:"version"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// RepresentativeRequest alta de representante legal.
type RepresentativeRequest struct {
	Names    string `json:"nombres" validate:"required,max=100"`
	Surnames string `json:"apellidos" validate:"max=100"`
	DNI      string `json:"dni" validate:"required,numeric,len=8"`
	Phone    string `json:"telefono" validate:"omitempty,max=20"`
	Estado   *bool  `json:"estado"`
}

// UpdateRepresentativeRequest actualización con versión.
type UpdateRepresentativeRequest struct {
	RepresentativeRequest
	VersionRequest
}

// RepresentativeResponse salida de un representante.
type RepresentativeResponse struct {
	ID        int64     `json:"id"`
	Names     string    `json:"nombres"`
	Surnames  string    `json:"apellidos"`
	DNI       string    `json:"dni"`
	Phone     string    `json:"telefono"`
	Estado    bool      `json:"estado"`
	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SupplierRequest alta de proveedor.
type SupplierRequest struct {
	RUC          string `json:"ruc" validate:"required,numeric,len=11"`
	BusinessName string `json:"razon_social" validate:"required,max=200"`
	Phone        string `json:"telefono" validate:"omitempty,max=20"`
	Email        string `json:"email" validate:"omitempty,email,max=150"`
	Address      string `json:"direccion" validate:"max=255"`
	Estado       *bool  `json:"estado"`
}

// UpdateSupplierRequest actualización con versión.
type UpdateSupplierRequest struct {
	SupplierRequest
	VersionRequest
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID           int64     `json:"id"`
	RUC          string    `json:"ruc"`
	BusinessName string    `json:"razon_social"`
	Phone        string    `json:"telefono"`
	Email        string    `json:"email"`
	Address      string    `json:"direccion"`
	Estado       bool      `json:"estado"`
	Version      int64     `json:"version"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
