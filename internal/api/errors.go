package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
)

var (
	// ErrUnauthorized maps 401: the token is missing, expired, or revoked.
	// The session layer clears itself when it sees this.
	ErrUnauthorized = errors.New("no autorizado")
	// ErrForbidden maps 403: authenticated but not allowed.
	ErrForbidden = errors.New("acceso denegado")
)

// ConnError is a transport failure: no response was received at all.
type ConnError struct {
	Err error
}

func (e *ConnError) Error() string { return "no se pudo conectar con el servidor: " + e.Err.Error() }
func (e *ConnError) Unwrap() error { return e.Err }

// APIError is a non-validation server failure (4xx/5xx with or without a
// message body). The operation is considered not applied.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("error del servidor (HTTP %d)", e.Status)
}

// ValidationError carries structured field errors (HTTP 422). The form that
// triggered it stays open and renders these next to its fields.
type ValidationError struct {
	Message string
	Fields  map[string][]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		if e.Message != "" {
			return e.Message
		}
		return "datos inválidos"
	}
	// Stable order so the same failure always reads the same.
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, strings.Join(e.Fields[k], " "))
	}
	return strings.Join(parts, " ")
}

type errorBody struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

func decodeError(resp *http.Response) error {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	var body errorBody
	_ = json.Unmarshal(b, &body)

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusUnprocessableEntity:
		return &ValidationError{Message: body.Message, Fields: body.Errors}
	default:
		if len(body.Errors) > 0 {
			return &ValidationError{Message: body.Message, Fields: body.Errors}
		}
		return &APIError{Status: resp.StatusCode, Message: body.Message}
	}
}
