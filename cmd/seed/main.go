// Package main provides a CLI tool for seeding the store with initial data.
package main

import (
	"context"
	"fmt"
	"os"

	"mochini/internal/config"
	"mochini/internal/core/security"
	"mochini/internal/core/types"
	"mochini/internal/domain"
	"mochini/internal/domain/finance"
	"mochini/internal/domain/inventory"
	"mochini/internal/domain/sales"
	"mochini/internal/domain/users"
	"mochini/internal/storage/sqlite"
	"mochini/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	cfg := config.Load()

	store, err := sqlite.Open(sqlite.Config{
		Path:        cfg.DBPath,
		Namespace:   cfg.Namespace,
		Collections: domain.DefaultCollections(),
	})
	if err != nil {
		log.Fatalw("failed to open store", "path", cfg.DBPath, "error", err)
	}
	defer store.Close()

	log.Infow("store opened", "path", cfg.DBPath)

	if err := seedAdminUser(ctx, store, log); err != nil {
		log.Fatalw("failed to seed admin user", "error", err)
	}

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedDemoData(ctx, store, log); err != nil {
			log.Fatalw("failed to seed demo data", "error", err)
		}
	}

	log.Info("seeding completed successfully")
}

func seedAdminUser(ctx context.Context, store *sqlite.Store, log *logger.Logger) error {
	repo := domain.NewRepository[*users.User](store, domain.CollectionUsers)
	svc := users.NewService(repo)

	adminName := os.Getenv("ADMIN_NAME")
	if adminName == "" {
		adminName = "Admin"
	}
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "admin123"
	}
	adminPIN := os.Getenv("ADMIN_PIN")
	if adminPIN == "" {
		adminPIN = "1234"
	}

	existing, err := svc.List(ctx)
	if err != nil {
		return err
	}
	for _, u := range existing {
		if u.Nombre == adminName {
			log.Infow("admin user already exists", "nombre", adminName, "user_id", u.ID)
			return nil
		}
	}

	admin := &users.User{
		Nombre: adminName,
		Rol:    security.RoleAdministrador,
		Activo: true,
	}
	if err := svc.SetPassword(ctx, admin, adminPassword); err != nil {
		return err
	}
	if err := svc.SetPIN(ctx, admin, adminPIN); err != nil {
		return err
	}
	if err := svc.Create(ctx, admin); err != nil {
		return err
	}

	log.Infow("admin user created", "nombre", adminName, "user_id", admin.ID)
	return nil
}

func seedDemoData(ctx context.Context, store *sqlite.Store, log *logger.Logger) error {
	log.Info("seeding demo data...")

	accounts := domain.NewRepository[*finance.BankAccount](store, domain.CollectionAccounts)
	for _, a := range []*finance.BankAccount{
		{Nombre: "Caja Tienda", Tipo: "efectivo", Saldo: types.MustMoney("5000")},
		{Nombre: "BBVA Empresarial", NombreBanco: "BBVA", Tipo: "banco", Saldo: types.MustMoney("120000"), NumeroCuenta: "0123456789"},
	} {
		if _, err := accounts.Add(ctx, a); err != nil {
			return err
		}
	}

	clients := domain.NewRepository[*sales.Client](store, domain.CollectionClients)
	for _, c := range []*sales.Client{
		{Nombre: "Público General", ListaPrecio: inventory.PriceListMenudeo},
		{Nombre: "Abarrotes La Esquina", Telefono: "555-010-2233", ListaPrecio: inventory.PriceListMayoreo, DiasCredito: 15},
		{Nombre: "Distribuidora del Norte", Telefono: "555-998-7766", ListaPrecio: inventory.PriceListDistribuidor, DiasCredito: 30},
	} {
		if _, err := clients.Add(ctx, c); err != nil {
			return err
		}
	}

	suppliers := domain.NewRepository[*finance.Supplier](store, domain.CollectionSuppliers)
	for _, s := range []*finance.Supplier{
		{Nombre: "Textiles Monterrey SA", Contacto: "Laura Peña", Telefono: "818-555-0101"},
		{Nombre: "Importadora Pacífico", Contacto: "Jorge Lim", Telefono: "664-555-0202"},
	} {
		if _, err := suppliers.Add(ctx, s); err != nil {
			return err
		}
	}

	categories := domain.NewRepository[*finance.ExpenseCategory](store, domain.CollectionExpenseCategories)
	for _, c := range []*finance.ExpenseCategory{
		{Nombre: "Renta", Descripcion: "Renta del local"},
		{Nombre: "Servicios", Descripcion: "Luz, agua e internet"},
		{Nombre: "Nómina"},
	} {
		if _, err := categories.Add(ctx, c); err != nil {
			return err
		}
	}

	products := domain.NewRepository[*inventory.Product](store, domain.CollectionProducts)
	demo := []*inventory.Product{
		{
			Nombre: "Playera básica", SKU: "PLY-001",
			Precios: map[string]types.Money{
				inventory.PriceListMenudeo:      types.MustMoney("120"),
				inventory.PriceListMayoreo:      types.MustMoney("95"),
				inventory.PriceListDistribuidor: types.MustMoney("80"),
			},
			PrecioCompra:    types.MustMoney("55"),
			StockPorAlmacen: map[string]int{inventory.WarehouseTienda: 40, inventory.WarehouseBodega: 160},
			Variants:        []inventory.Variant{{Color: "Negro", Talla: "M"}, {Color: "Negro", Talla: "G"}, {Color: "Blanco", Talla: "M"}},
		},
		{
			Nombre: "Calcetas deportivas", SKU: "CAL-014",
			Precios: map[string]types.Money{
				inventory.PriceListMenudeo: types.MustMoney("45"),
				inventory.PriceListMayoreo: types.MustMoney("32"),
			},
			PrecioCompra:    types.MustMoney("18"),
			StockPorAlmacen: map[string]int{inventory.WarehouseTienda: 120, inventory.WarehouseOficina: 30},
		},
	}
	for _, p := range demo {
		p.RecomputeExistencias()
		if _, err := products.Add(ctx, p); err != nil {
			return err
		}
	}

	log.Info("demo data seeded successfully")
	return nil
}
