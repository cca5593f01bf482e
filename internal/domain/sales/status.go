package sales

import "mochini/internal/core/apperror"

// Status is the lifecycle state of an order.
type Status string

// Order lifecycle states.
const (
	StatusPendiente Status = "Pendiente"
	StatusEnProceso Status = "En Proceso"
	StatusEnviado   Status = "Enviado"
	StatusEntregado Status = "Entregado"
	StatusCancelado Status = "Cancelado"
	StatusDevuelto  Status = "Devuelto"
)

// AllStatuses lists every known status.
var AllStatuses = []Status{
	StatusPendiente, StatusEnProceso, StatusEnviado,
	StatusEntregado, StatusCancelado, StatusDevuelto,
}

// transitions is the single source of truth for which status changes are
// allowed. Terminal states have no outgoing edges.
var transitions = map[Status][]Status{
	StatusPendiente: {StatusEnProceso, StatusCancelado},
	StatusEnProceso: {StatusEnviado, StatusEntregado, StatusCancelado, StatusDevuelto},
	StatusEnviado:   {StatusEntregado, StatusCancelado, StatusDevuelto},
	StatusEntregado: {StatusDevuelto},
	StatusCancelado: {},
	StatusDevuelto:  {},
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// Terminal reports whether no further transition is allowed from s.
func (s Status) Terminal() bool {
	return len(transitions[s]) == 0 && s.Valid()
}

// HoldsStock reports whether an order in this status has reserved inventory.
// Pendiente orders have not decremented stock yet; Cancelado and Devuelto
// have already given it back.
func (s Status) HoldsStock() bool {
	switch s {
	case StatusEnProceso, StatusEnviado, StatusEntregado:
		return true
	default:
		return false
	}
}

// CanTransition reports whether from -> to is an allowed edge.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CheckTransition returns a validation error describing the rejected edge,
// or nil when the transition is allowed.
func CheckTransition(from, to Status) error {
	if !from.Valid() {
		return apperror.NewValidation("unknown order status").WithDetail("estado", string(from))
	}
	if !to.Valid() {
		return apperror.NewValidation("unknown order status").WithDetail("estado", string(to))
	}
	if !CanTransition(from, to) {
		return apperror.NewValidation("order status transition not allowed").
			WithDetail("from", string(from)).
			WithDetail("to", string(to))
	}
	return nil
}

// RestoresStock reports whether the from -> to transition must return the
// order's reserved inventory to its warehouses.
func RestoresStock(from, to Status) bool {
	if !from.HoldsStock() {
		return false
	}
	return to == StatusCancelado || to == StatusDevuelto
}
