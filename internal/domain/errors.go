package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrUsernameTaken      = errors.New("el nombre de usuario ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("el registro fue modificado por otro usuario")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrOverpayment        = errors.New("el pago supera el saldo pendiente")
	ErrAlreadyAnnulled    = errors.New("el documento ya está anulado")
	ErrNoChanges          = errors.New("no hay cambios para guardar")
	ErrHasPayments        = errors.New("la cuenta del documento tiene pagos registrados")
)

// FieldError error de validación de negocio asociado a un campo.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string { return e.Field + ": " + e.Message }

// Unwrap permite errors.Is(err, ErrInvalidInput).
func (e *FieldError) Unwrap() error { return ErrInvalidInput }

// NewFieldError construye un FieldError.
func NewFieldError(field, message string) *FieldError {
	return &FieldError{Field: field, Message: message}
}
