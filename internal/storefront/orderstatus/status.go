// Package orderstatus projects an order's lifecycle state onto display text,
// color tags and a linear step-progress position.
package orderstatus

import (
	"errors"
	"strings"
)

// Status is one of the fixed order lifecycle states.
type Status string

const (
	Pending    Status = "pending"
	Confirmed  Status = "confirmed"
	Processing Status = "processing"
	Shipped    Status = "shipped"
	Delivered  Status = "delivered"
	// Cancelled is a terminal side-state reachable from any non-terminal state.
	Cancelled Status = "cancelled"
)

// ErrUnknownStatus is returned by Parse for values outside the enumeration.
var ErrUnknownStatus = errors.New("unknown order status")

var all = []Status{Pending, Confirmed, Processing, Shipped, Delivered, Cancelled}

// All lists every status in display order. The slice is a fresh copy.
func All() []Status {
	out := make([]Status, len(all))
	copy(out, all)
	return out
}

// linear is the step-progress sequence. Cancelled is deliberately absent.
var linear = []Status{Pending, Confirmed, Processing, Shipped, Delivered}

var texts = map[Status]string{
	Pending:    "Pendiente",
	Confirmed:  "Confirmado",
	Processing: "Procesando",
	Shipped:    "Enviado",
	Delivered:  "Entregado",
	Cancelled:  "Cancelado",
}

var colors = map[Status]string{
	Pending:    "warning",
	Confirmed:  "info",
	Processing: "primary",
	Shipped:    "success",
	Delivered:  "success",
	Cancelled:  "danger",
}

var stepLabels = map[Status]string{
	Pending:    "Pedido Recibido",
	Confirmed:  "Confirmado",
	Processing: "Preparando",
	Shipped:    "Enviado",
	Delivered:  "Entregado",
}

func (s Status) String() string {
	return string(s)
}

// Valid reports whether s belongs to the enumeration.
func (s Status) Valid() bool {
	_, ok := texts[s]
	return ok
}

// Parse normalizes raw input and rejects unknown values.
func Parse(raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", ErrUnknownStatus
	}
	return s, nil
}

// Text returns the localized label, or the input unchanged when unknown.
func Text(s Status) string {
	if t, ok := texts[s]; ok {
		return t
	}
	return string(s)
}

// Color returns the semantic color tag used by badges.
func Color(s Status) string {
	if c, ok := colors[s]; ok {
		return c
	}
	return "secondary"
}

// IsOpen reports whether the order is still moving through fulfilment.
func IsOpen(s Status) bool {
	switch s {
	case Pending, Confirmed, Processing, Shipped:
		return true
	}
	return false
}

// ProgressIndex returns the position of s in the linear sequence.
// The second result is false for Cancelled and unknown values.
func ProgressIndex(s Status) (int, bool) {
	for i, step := range linear {
		if step == s {
			return i, true
		}
	}
	return -1, false
}
