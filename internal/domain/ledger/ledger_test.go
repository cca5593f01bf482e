package ledger

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"mochini/internal/core/security"
	"mochini/internal/core/types"
	"mochini/internal/domain"
	"mochini/internal/domain/finance"
	"mochini/internal/domain/inventory"
	"mochini/internal/domain/sales"
	"mochini/internal/domain/users"
	"mochini/internal/storage/sqlite"
)

// fixture is one fully wired ledger over a throwaway store, pre-seeded with
// a product (10 in tienda), a client, an account holding 100 and a supplier.
type fixture struct {
	svc      *Service
	users    *users.Service
	product  *inventory.Product
	client   *sales.Client
	account  *finance.BankAccount
	supplier *finance.Supplier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	store, err := sqlite.Open(sqlite.Config{
		Path:        filepath.Join(t.TempDir(), "test.db"),
		Namespace:   "mochinios_",
		Collections: domain.DefaultCollections(),
	})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	txm := sqlite.NewTxManager(store)
	userSvc := users.NewService(domain.NewRepository[*users.User](store, domain.CollectionUsers))
	svc := NewService(store, txm, userSvc)

	f := &fixture{svc: svc, users: userSvc}

	f.product = &inventory.Product{
		Nombre: "Playera",
		SKU:    "PLY-001",
		Precios: map[string]types.Money{
			inventory.PriceListMenudeo: types.MustMoney("50"),
		},
		StockPorAlmacen: map[string]int{inventory.WarehouseTienda: 10},
	}
	f.product.RecomputeExistencias()
	_, err = svc.Products().Add(ctx, f.product)
	require.NoError(t, err)

	f.client = &sales.Client{Nombre: "Ana", DiasCredito: 15}
	_, err = svc.Clients().Add(ctx, f.client)
	require.NoError(t, err)

	f.account = &finance.BankAccount{Nombre: "Caja", Saldo: types.MustMoney("100")}
	_, err = svc.Accounts().Add(ctx, f.account)
	require.NoError(t, err)

	f.supplier = &finance.Supplier{Nombre: "Proveedor Uno"}
	_, err = svc.Suppliers().Add(ctx, f.supplier)
	require.NoError(t, err)

	return f
}

// addUserWithPIN seeds an active user holding the given PIN.
func (f *fixture) addUserWithPIN(t *testing.T, nombre, pin string, activo bool) *users.User {
	t.Helper()
	ctx := context.Background()

	u := &users.User{Nombre: nombre, Rol: security.RoleAdministrador, Activo: activo}
	require.NoError(t, f.users.SetPIN(ctx, u, pin))
	require.NoError(t, f.users.Create(ctx, u))
	return u
}

// orderFor builds a one-line order for quantity units of the fixture product
// out of tienda at 50 each.
func (f *fixture) orderFor(quantity int) *sales.Order {
	return &sales.Order{
		ClienteID: f.client.ID,
		Productos: []sales.OrderLine{{
			ProductoID:     f.product.ID,
			Nombre:         f.product.Nombre,
			Cantidad:       quantity,
			PrecioUnitario: types.MustMoney("50"),
			Almacen:        inventory.WarehouseTienda,
		}},
	}
}

func (f *fixture) reloadProduct(t *testing.T) *inventory.Product {
	t.Helper()
	p, err := f.svc.Products().GetByID(context.Background(), f.product.ID)
	require.NoError(t, err)
	return p
}

func (f *fixture) reloadAccount(t *testing.T) *finance.BankAccount {
	t.Helper()
	a, err := f.svc.Accounts().GetByID(context.Background(), f.account.ID)
	require.NoError(t, err)
	return a
}
