package dto

import "github.com/jhoicas/autopartes-api/pkg/listview"

// ErrorResponse cuerpo de error HTTP. Errors solo en validación (422): campo → mensajes.
type ErrorResponse struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// ListResponse respuesta de listado con metadatos de página.
type ListResponse[T any] struct {
	Items []T               `json:"items"`
	Page  listview.PageInfo `json:"page"`
}

// NewListResponse arma la respuesta; items nunca es null en JSON.
func NewListResponse[T any](items []T, q listview.Query, total int) *ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return &ListResponse[T]{Items: items, Page: listview.Info(q, total)}
}

// VersionRequest token de concurrencia optimista que acompaña a toda actualización.
type VersionRequest struct {
	Version int64 `json:"version" validate:"required,min=1"`
}
