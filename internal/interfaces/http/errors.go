package http

import (
	"errors"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/autopartes-api/internal/application/dto"
	"github.com/jhoicas/autopartes-api/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// bindJSON decodifica el cuerpo y valida las etiquetas validate.
// Devuelve errInvalidBody o validator.ValidationErrors; ambos se traducen en respondError.
func bindJSON(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return errInvalidBody
	}
	return validate.Struct(out)
}

var errInvalidBody = errors.New("cuerpo inválido")

// respondError traduce errores de dominio a respuestas HTTP.
func respondError(c *fiber.Ctx, err error) error {
	var fe *domain.FieldError
	if errors.As(err, &fe) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: fe.Message,
			Errors:  map[string][]string{fe.Field: {fe.Message}},
		})
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: "datos inválidos",
			Errors:  fieldErrors(ve),
		})
	}
	status, code := fiber.StatusInternalServerError, "INTERNAL"
	switch {
	case errors.Is(err, errInvalidBody):
		status, code = fiber.StatusBadRequest, "INVALID_BODY"
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		status, code = fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrDuplicate), errors.Is(err, domain.ErrUsernameTaken):
		status, code = fiber.StatusConflict, "DUPLICATE"
	case errors.Is(err, domain.ErrConflict):
		status, code = fiber.StatusConflict, "VERSION_CONFLICT"
	case errors.Is(err, domain.ErrInsufficientStock):
		status, code = fiber.StatusConflict, "INSUFFICIENT_STOCK"
	case errors.Is(err, domain.ErrOverpayment):
		status, code = fiber.StatusConflict, "OVERPAYMENT"
	case errors.Is(err, domain.ErrAlreadyAnnulled):
		status, code = fiber.StatusConflict, "ALREADY_ANNULLED"
	case errors.Is(err, domain.ErrHasPayments):
		status, code = fiber.StatusConflict, "HAS_PAYMENTS"
	case errors.Is(err, domain.ErrNoChanges):
		status, code = fiber.StatusUnprocessableEntity, "NO_CHANGES"
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrUnauthorized):
		status, code = fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrForbidden):
		status, code = fiber.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domain.ErrInvalidInput):
		status, code = fiber.StatusUnprocessableEntity, "VALIDATION"
	}
	if status == fiber.StatusInternalServerError {
		reqLog := RequestLog(c)
		reqLog.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error no controlado")
		return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: "error interno"})
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: errorMessage(err)})
}

// errorMessage mensaje del error centinela; stock insuficiente conserva el detalle del producto.
func errorMessage(err error) string {
	if errors.Is(err, domain.ErrInsufficientStock) {
		return err.Error()
	}
	for _, e := range []error{
		domain.ErrNotFound, domain.ErrUserNotFound, domain.ErrDuplicate, domain.ErrUsernameTaken,
		domain.ErrConflict, domain.ErrOverpayment, domain.ErrAlreadyAnnulled, domain.ErrHasPayments,
		domain.ErrNoChanges, domain.ErrInvalidCredentials, domain.ErrUnauthorized, domain.ErrForbidden,
		errInvalidBody,
	} {
		if errors.Is(err, e) {
			return e.Error()
		}
	}
	return err.Error()
}

// fieldErrors agrupa por campo JSON. "UpdateProductRequest.ProductRequest.codigo" → "codigo".
func fieldErrors(ve validator.ValidationErrors) map[string][]string {
	out := make(map[string][]string, len(ve))
	for _, fe := range ve {
		field := jsonPath(fe.Namespace())
		out[field] = append(out[field], validationMessage(fe))
	}
	return out
}

func jsonPath(namespace string) string {
	parts := strings.Split(namespace, ".")
	kept := parts[:0]
	for _, p := range parts {
		if p == "" {
			continue
		}
		if r := []rune(p)[0]; unicode.IsUpper(r) {
			continue
		}
		kept = append(kept, p)
	}
	if len(kept) == 0 {
		return namespace
	}
	return strings.Join(kept, ".")
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return "es obligatorio"
	case "min":
		if fe.Kind() == reflect.String {
			return "debe tener al menos " + fe.Param() + " caracteres"
		}
		if fe.Kind() == reflect.Slice {
			return "debe tener al menos " + fe.Param() + " elementos"
		}
		return "debe ser mayor o igual a " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return "no debe superar " + fe.Param() + " caracteres"
		}
		return "debe ser menor o igual a " + fe.Param()
	case "len":
		return "debe tener " + fe.Param() + " caracteres"
	case "numeric":
		return "solo admite dígitos"
	case "email":
		return "correo inválido"
	case "oneof":
		return "debe ser uno de: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "alphanumunicode":
		return "solo admite letras y números"
	default:
		return "valor inválido (" + fe.Tag() + ")"
	}
}
