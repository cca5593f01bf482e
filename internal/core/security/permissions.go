// Package security provides the module/action permission matrix.
//
// The matrix is a closed enumeration: unknown module or action names are
// rejected at construction time instead of silently evaluating to false.
package security

import (
	"encoding/json"
	"fmt"
	"sort"

	"mochini/internal/core/apperror"
)

// Module identifies one permission-guarded area of the system.
type Module string

// Action identifies one operation within a module.
type Action string

const (
	ModuleInventario    Module = "inventario"
	ModuleReportes      Module = "reportes"
	ModulePOS           Module = "pos"
	ModulePedidos       Module = "pedidos"
	ModuleClientes      Module = "clientes"
	ModuleFinanzas      Module = "finanzas"
	ModuleConfiguracion Module = "configuracion"
	ModuleSeguridad     Module = "seguridad"
)

const (
	ActionView     Action = "view"
	ActionCreate   Action = "create"
	ActionEdit     Action = "edit"
	ActionDelete   Action = "delete"
	ActionDownload Action = "download"
	ActionModify   Action = "modify"
	ActionSell     Action = "sell"
	ActionReturn   Action = "return"
	ActionCancel   Action = "cancel"
	ActionReports  Action = "reports"
)

// moduleActions enumerates every valid module/action pair.
var moduleActions = map[Module][]Action{
	ModuleInventario:    {ActionView, ActionCreate, ActionEdit, ActionDelete},
	ModuleReportes:      {ActionView, ActionDownload, ActionModify},
	ModulePOS:           {ActionSell, ActionReturn, ActionCancel},
	ModulePedidos:       {ActionView, ActionCreate, ActionCancel, ActionModify},
	ModuleClientes:      {ActionView, ActionEdit, ActionDelete},
	ModuleFinanzas:      {ActionView, ActionCreate, ActionEdit, ActionDelete, ActionReports},
	ModuleConfiguracion: {ActionView, ActionModify},
	ModuleSeguridad:     {ActionView, ActionCreate, ActionEdit},
}

// Modules returns all known modules in stable order.
func Modules() []Module {
	out := make([]Module, 0, len(moduleActions))
	for m := range moduleActions {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Actions returns the valid actions for a module in stable order.
func Actions(m Module) []Action {
	acts := make([]Action, len(moduleActions[m]))
	copy(acts, moduleActions[m])
	sort.Slice(acts, func(i, j int) bool { return acts[i] < acts[j] })
	return acts
}

// Valid reports whether the module/action pair exists in the matrix.
func Valid(m Module, a Action) bool {
	for _, known := range moduleActions[m] {
		if known == a {
			return true
		}
	}
	return false
}

// PermissionSet is a typed grant table over the closed matrix.
type PermissionSet struct {
	grants map[Module]map[Action]bool
}

// NewPermissionSet builds a PermissionSet from nested grant maps, rejecting
// unknown module or action names.
func NewPermissionSet(grants map[Module]map[Action]bool) (*PermissionSet, error) {
	ps := emptySet()
	for m, actions := range grants {
		if _, ok := moduleActions[m]; !ok {
			return nil, apperror.NewValidation(fmt.Sprintf("unknown permission module %q", m))
		}
		for a, allowed := range actions {
			if !Valid(m, a) {
				return nil, apperror.NewValidation(fmt.Sprintf("unknown action %q for module %q", a, m)).
					WithDetail("module", string(m))
			}
			ps.grants[m][a] = allowed
		}
	}
	return ps, nil
}

func emptySet() *PermissionSet {
	grants := make(map[Module]map[Action]bool, len(moduleActions))
	for m, actions := range moduleActions {
		grants[m] = make(map[Action]bool, len(actions))
		for _, a := range actions {
			grants[m][a] = false
		}
	}
	return &PermissionSet{grants: grants}
}

func uniformSet(allowed bool) *PermissionSet {
	ps := emptySet()
	if allowed {
		for m := range ps.grants {
			for a := range ps.grants[m] {
				ps.grants[m][a] = true
			}
		}
	}
	return ps
}

// Allows reports whether the pair is granted. Pairs outside the matrix are
// never granted (construction already rejected them).
func (ps *PermissionSet) Allows(m Module, a Action) bool {
	if ps == nil {
		return false
	}
	return ps.grants[m][a]
}

// Grant sets one permission. Unknown pairs are rejected.
func (ps *PermissionSet) Grant(m Module, a Action, allowed bool) error {
	if !Valid(m, a) {
		return apperror.NewValidation(fmt.Sprintf("unknown permission %s.%s", m, a))
	}
	ps.grants[m][a] = allowed
	return nil
}

// MarshalJSON persists the set as nested maps, matching the stored layout.
func (ps *PermissionSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(ps.grants)
}

// UnmarshalJSON validates the stored maps against the matrix.
func (ps *PermissionSet) UnmarshalJSON(data []byte) error {
	var raw map[Module]map[Action]bool
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := NewPermissionSet(raw)
	if err != nil {
		return err
	}
	*ps = *parsed
	return nil
}
