// Package domain provides the entity repository and the collection registry.
package domain

// Collection names. Each names one independently stored, insertion-ordered
// list of records.
const (
	CollectionProducts          = "inventario"
	CollectionClients           = "clientes"
	CollectionOrders            = "pedidos"
	CollectionReceivables       = "cxc"
	CollectionPayables          = "cxp"
	CollectionAccounts          = "cuentas_bancarias"
	CollectionTransactions      = "transacciones_financieras"
	CollectionSuppliers         = "proveedores"
	CollectionUsers             = "usuarios"
	CollectionTransfers         = "traspasos"
	CollectionExpenseCategories = "categorias_gastos"
	CollectionEmployees         = "empleados"
	CollectionAttendance        = "asistencias"
	CollectionPayrolls          = "nominas"
)

// DefaultCollections lists every collection created empty on first open.
func DefaultCollections() []string {
	return []string{
		CollectionProducts,
		CollectionClients,
		CollectionOrders,
		CollectionReceivables,
		CollectionPayables,
		CollectionAccounts,
		CollectionTransactions,
		CollectionSuppliers,
		CollectionUsers,
		CollectionTransfers,
		CollectionExpenseCategories,
		CollectionEmployees,
		CollectionAttendance,
		CollectionPayrolls,
	}
}
