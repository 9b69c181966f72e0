package permission

import (
	"errors"
	"fmt"
)

// ErrUnknownSlug el slug no pertenece al catálogo cerrado de módulos.
var ErrUnknownSlug = errors.New("permission: slug de módulo desconocido")

// Slug identifica un módulo/ruta protegida; es la unidad de permiso.
type Slug string

// Catálogo cerrado de módulos. Debe coincidir con el seed de la tabla modules.
const (
	SlugProductos     Slug = "productos"
	SlugCategorias    Slug = "categorias"
	SlugMarcas        Slug = "marcas"
	SlugProveedores   Slug = "proveedores"
	SlugTrabajadores  Slug = "trabajadores"
	SlugClientes      Slug = "clientes"
	SlugCompras       Slug = "compras"
	SlugVentas        Slug = "ventas"
	SlugCuentasCobrar Slug = "cuentas-por-cobrar"
	SlugCuentasPagar  Slug = "cuentas-por-pagar"
	SlugInventario    Slug = "inventario"
	SlugUsuarios      Slug = "usuarios"
	SlugDashboard     Slug = "dashboard"
)

var catalog = []struct {
	slug Slug
	name string
}{
	{SlugProductos, "Productos"},
	{SlugCategorias, "Categorías"},
	{SlugMarcas, "Marcas"},
	{SlugProveedores, "Proveedores"},
	{SlugTrabajadores, "Trabajadores"},
	{SlugClientes, "Clientes"},
	{SlugCompras, "Compras"},
	{SlugVentas, "Ventas"},
	{SlugCuentasCobrar, "Cuentas por cobrar"},
	{SlugCuentasPagar, "Cuentas por pagar"},
	{SlugInventario, "Inventario"},
	{SlugUsuarios, "Usuarios y permisos"},
	{SlugDashboard, "Dashboard"},
}

// AllSlugs devuelve el catálogo en orden de menú.
func AllSlugs() []Slug {
	out := make([]Slug, 0, len(catalog))
	for _, c := range catalog {
		out = append(out, c.slug)
	}
	return out
}

// DisplayName nombre legible del módulo ("" si el slug no existe).
func DisplayName(s Slug) string {
	for _, c := range catalog {
		if c.slug == s {
			return c.name
		}
	}
	return ""
}

// Valid informa si el slug pertenece al catálogo.
func (s Slug) Valid() bool {
	return DisplayName(s) != ""
}

// ParseSlug valida un slug recibido en el borde de la API.
func ParseSlug(s string) (Slug, error) {
	slug := Slug(s)
	if !slug.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownSlug, s)
	}
	return slug, nil
}

// UnmarshalText rechaza slugs fuera del catálogo al decodificar JSON.
func (s *Slug) UnmarshalText(b []byte) error {
	parsed, err := ParseSlug(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
