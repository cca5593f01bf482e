package security

// Role is a named permission preset.
type Role string

const (
	RoleAdministrador Role = "Administrador"
	RoleVentas        Role = "Ventas"
	RoleInventario    Role = "Inventario"
	RoleContabilidad  Role = "Contabilidad"
	RoleGerencia      Role = "Gerencia"
	RoleDesarrollador Role = "Desarrollador / IT"
)

// Roles lists all known roles.
func Roles() []Role {
	return []Role{
		RoleAdministrador,
		RoleVentas,
		RoleInventario,
		RoleContabilidad,
		RoleGerencia,
		RoleDesarrollador,
	}
}

// ForRole returns the default PermissionSet for a role.
// Unknown roles get an all-deny set.
func ForRole(r Role) *PermissionSet {
	switch r {
	case RoleAdministrador, RoleDesarrollador:
		return uniformSet(true)

	case RoleVentas:
		ps := uniformSet(false)
		mustGrant(ps, ModulePOS, ActionSell)
		mustGrant(ps, ModulePOS, ActionReturn)
		mustGrant(ps, ModulePOS, ActionCancel)
		mustGrant(ps, ModuleInventario, ActionView)
		mustGrant(ps, ModulePedidos, ActionView)
		mustGrant(ps, ModulePedidos, ActionCreate)
		mustGrant(ps, ModuleClientes, ActionView)
		mustGrant(ps, ModuleClientes, ActionEdit)
		return ps

	case RoleInventario:
		ps := uniformSet(false)
		mustGrant(ps, ModuleInventario, ActionView)
		mustGrant(ps, ModuleInventario, ActionCreate)
		mustGrant(ps, ModuleInventario, ActionEdit)
		mustGrant(ps, ModulePedidos, ActionView)
		mustGrant(ps, ModulePedidos, ActionModify)
		return ps

	case RoleContabilidad:
		ps := uniformSet(false)
		mustGrant(ps, ModuleFinanzas, ActionView)
		mustGrant(ps, ModuleFinanzas, ActionCreate)
		mustGrant(ps, ModuleFinanzas, ActionEdit)
		mustGrant(ps, ModuleFinanzas, ActionReports)
		mustGrant(ps, ModuleReportes, ActionView)
		mustGrant(ps, ModuleReportes, ActionDownload)
		return ps

	case RoleGerencia:
		ps := uniformSet(true)
		mustRevoke(ps, ModuleInventario, ActionDelete)
		mustRevoke(ps, ModuleClientes, ActionDelete)
		mustRevoke(ps, ModuleSeguridad, ActionCreate)
		mustRevoke(ps, ModuleSeguridad, ActionEdit)
		return ps

	default:
		return uniformSet(false)
	}
}

func mustGrant(ps *PermissionSet, m Module, a Action) {
	if err := ps.Grant(m, a, true); err != nil {
		panic(err)
	}
}

func mustRevoke(ps *PermissionSet, m Module, a Action) {
	if err := ps.Grant(m, a, false); err != nil {
		panic(err)
	}
}
