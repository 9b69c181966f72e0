package repository

import "github.com/jhoicas/autopartes-api/pkg/listview"

// ListFilter parámetros comunes de listado: búsqueda, página y estado.
// Estado nil lista activos e inactivos.
type ListFilter struct {
	listview.Query
	Estado *bool
}
