// Package apperrors defines the error taxonomy shared between services and
// routes.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// BadRequestError signals a malformed inbound payload or unparseable
// feedback text.
type BadRequestError struct {
	Message string
}

func (e *BadRequestError) Error() string {
	return e.Message
}

func NewBadRequest(message string) error {
	return &BadRequestError{Message: message}
}

// NotFoundError signals an unknown customer or missing feedback record.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.Key)
}

func NewNotFound(resource, key string) error {
	return &NotFoundError{Resource: resource, Key: key}
}

// ForbiddenError signals a failed webhook handshake.
type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string {
	return e.Message
}

func NewForbidden(message string) error {
	return &ForbiddenError{Message: message}
}

// ProviderError signals a failed outbound messaging call. NotWhitelisted
// marks the sandbox "recipient not in allowed list" rejection, which gets a
// distinct client-facing message.
type ProviderError struct {
	StatusCode     int
	Message        string
	NotWhitelisted bool
}

func (e *ProviderError) Error() string {
	return e.Message
}

// HTTPStatus maps a taxonomy error to the status code it should surface as.
func HTTPStatus(err error) int {
	var badRequest *BadRequestError
	if errors.As(err, &badRequest) {
		return http.StatusBadRequest
	}
	var notFound *NotFoundError
	if errors.As(err, &notFound) {
		return http.StatusNotFound
	}
	var forbidden *ForbiddenError
	if errors.As(err, &forbidden) {
		return http.StatusForbidden
	}
	var provider *ProviderError
	if errors.As(err, &provider) {
		if provider.NotWhitelisted {
			return http.StatusBadRequest
		}
		if provider.StatusCode >= 400 {
			return provider.StatusCode
		}
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
