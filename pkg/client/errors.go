package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// NetworkError la petición no llegó al servidor (DNS, conexión, contexto cancelado).
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string { return fmt.Sprintf("%s: error de red: %v", e.Op, e.Err) }
func (e *NetworkError) Unwrap() error { return e.Err }

// ValidationError respuesta 400/422 con mapa campo → mensajes.
type ValidationError struct {
	Status  int
	Message string
	Fields  map[string][]string
}

func (e *ValidationError) Error() string { return strings.Join(e.Messages(), "; ") }

// Messages aplana el mapa de validación: "campo: mensaje" por entrada, ordenado por campo.
func (e *ValidationError) Messages() []string { return flatten(e.Message, e.Fields) }

// AuthError respuesta 401/403 (credenciales inválidas, sesión vencida o acceso denegado).
type AuthError struct {
	Status  int
	Message string
	Fields  map[string][]string
}

func (e *AuthError) Error() string { return strings.Join(e.Messages(), "; ") }

// Messages mensajes legibles del error.
func (e *AuthError) Messages() []string { return flatten(e.Message, e.Fields) }

// Unauthorized 401: la sesión no es válida en el servidor.
func (e *AuthError) Unauthorized() bool { return e.Status == http.StatusUnauthorized }

// ServerError 5xx o cualquier estado inesperado (404, 409...).
type ServerError struct {
	Status  int
	Code    string
	Message string
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("error del servidor (%d)", e.Status)
	}
	return fmt.Sprintf("error del servidor (%d): %s", e.Status, e.Message)
}

// Messages mensajes legibles del error.
func (e *ServerError) Messages() []string { return []string{e.Error()} }

// IsConflict el servidor rechazó la escritura por versión desactualizada.
func IsConflict(err error) bool {
	var se *ServerError
	return errors.As(err, &se) && se.Status == http.StatusConflict
}

// IsNotFound el recurso no existe.
func IsNotFound(err error) bool {
	var se *ServerError
	return errors.As(err, &se) && se.Status == http.StatusNotFound
}

// Messages aplana cualquier error del cliente en mensajes para mostrar al usuario.
func Messages(err error) []string {
	if err == nil {
		return nil
	}
	var m interface{ Messages() []string }
	if errors.As(err, &m) {
		return m.Messages()
	}
	return []string{err.Error()}
}

// errorBody acepta las dos formas de error: {message} plano o {errors:{campo:[mensajes]}}.
type errorBody struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Error   string              `json:"error"`
	Errors  map[string][]string `json:"errors"`
}

func decodeError(status int, body []byte) error {
	var eb errorBody
	if len(body) > 0 {
		if err := json.Unmarshal(body, &eb); err != nil {
			eb.Message = strings.TrimSpace(string(body))
		}
	}
	msg := eb.Message
	if msg == "" {
		msg = eb.Error
	}
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return &AuthError{Status: status, Message: msg, Fields: eb.Errors}
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return &ValidationError{Status: status, Message: msg, Fields: eb.Errors}
	default:
		return &ServerError{Status: status, Code: eb.Code, Message: msg}
	}
}

func flatten(message string, fields map[string][]string) []string {
	if len(fields) == 0 {
		if message == "" {
			return []string{"error desconocido"}
		}
		return []string{message}
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		for _, m := range fields[k] {
			if k == "" {
				out = append(out, m)
				continue
			}
			out = append(out, k+": "+m)
		}
	}
	return out
}
