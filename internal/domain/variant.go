package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidStatus signals a status code outside the HTTP range.
	ErrInvalidStatus = errors.New("invalid response status")
	// ErrBodyNotAllowed signals a body configured for a status that cannot carry one.
	ErrBodyNotAllowed = errors.New("response status does not allow a body")
	// ErrUnknownVariant signals a server name that maps to no variant.
	ErrUnknownVariant = errors.New("unknown server variant")
)

// Variant is the fixed response a server returns for every request.
type Variant struct {
	Name      string
	LogPrefix string
	Status    int
	Body      string
}

var (
	ServerA = Variant{
		Name:      "Server A",
		LogPrefix: "Server A received",
		Status:    200,
		Body:      "Handled by Server A",
	}
	ServerB = Variant{
		Name:      "Server B",
		LogPrefix: "Server B (mirror) received",
		Status:    204,
	}
)

// Validate checks that the status is a real HTTP status and that bodyless
// statuses (1xx, 204, 304) are not paired with a body.
func (v Variant) Validate() error {
	if v.Status < 100 || v.Status > 599 {
		return fmt.Errorf("%w: %d", ErrInvalidStatus, v.Status)
	}
	if v.Body != "" && !allowsBody(v.Status) {
		return fmt.Errorf("%w: %d", ErrBodyNotAllowed, v.Status)
	}
	return nil
}

func allowsBody(status int) bool {
	return status >= 200 && status != 204 && status != 304
}

// Lookup resolves a configured server name to its variant.
func Lookup(name string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "a", "server-a", "server a":
		return ServerA, nil
	case "b", "server-b", "server b":
		return ServerB, nil
	}
	return Variant{}, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
}
