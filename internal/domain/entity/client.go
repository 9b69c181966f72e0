package entity

import (
	"time"

	"github.com/jhoicas/autopartes-api/internal/domain"
)

// Tipos de cliente.
const (
	ClientTypeNatural  = "NATURAL"
	ClientTypeJuridico = "JURIDICO"
)

// Client cliente del taller. Tiene exactamente un sub-registro según Type.
type Client struct {
	ID        int64
	Type      string
	Phone     string
	Email     string
	Address   string
	Estado    bool
	Natural   *NaturalPerson
	Juridico  *LegalEntity
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NaturalPerson datos de persona natural.
type NaturalPerson struct {
	Names    string
	Surnames string
	DNI      string
}

// LegalEntity datos de persona jurídica.
type LegalEntity struct {
	LegalName        string
	RUC              string
	RepresentativeID *int64
}

// Validate exige que exista el sub-registro que corresponde a Type y solo ese.
func (c *Client) Validate() error {
	switch c.Type {
	case ClientTypeNatural:
		if c.Natural == nil {
			return domain.NewFieldError("natural", "los datos de persona natural son obligatorios")
		}
		if c.Juridico != nil {
			return domain.NewFieldError("juridico", "un cliente natural no puede tener datos de persona jurídica")
		}
		if c.Natural.Names == "" || c.Natural.DNI == "" {
			return domain.NewFieldError("natural", "nombres y dni son obligatorios")
		}
	case ClientTypeJuridico:
		if c.Juridico == nil {
			return domain.NewFieldError("juridico", "los datos de persona jurídica son obligatorios")
		}
		if c.Natural != nil {
			return domain.NewFieldError("natural", "un cliente jurídico no puede tener datos de persona natural")
		}
		if c.Juridico.LegalName == "" || c.Juridico.RUC == "" {
			return domain.NewFieldError("juridico", "razón social y ruc son obligatorios")
		}
	default:
		return domain.NewFieldError("tipo", "tipo debe ser NATURAL o JURIDICO")
	}
	return nil
}

// DisplayName nombre para listados y comprobantes.
func (c *Client) DisplayName() string {
	switch {
	case c.Natural != nil:
		if c.Natural.Surnames == "" {
			return c.Natural.Names
		}
		return c.Natural.Names + " " + c.Natural.Surnames
	case c.Juridico != nil:
		return c.Juridico.LegalName
	default:
		return ""
	}
}

// Document DNI o RUC según el tipo.
func (c *Client) Document() string {
	switch {
	case c.Natural != nil:
		return c.Natural.DNI
	case c.Juridico != nil:
		return c.Juridico.RUC
	default:
		return ""
	}
}

// Representative representante legal de un cliente jurídico.
type Representative struct {
	ID        int64
	Names     string
	Surnames  string
	DNI       string
	Phone     string
	Estado    bool
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
