package main

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/rl1809/fitgear/internal/adapter/storage"
	"github.com/rl1809/fitgear/internal/core/domain"
	"github.com/rl1809/fitgear/internal/core/service"
)

var errNoMySQL = errors.New("MYSQL_DSN is not configured")

func runSeed(ctx context.Context, stock int) error {
	if cfg.MySQLDSN == "" {
		return errNoMySQL
	}
	db, err := openMySQL(ctx, cfg.MySQLDSN)
	if err != nil {
		return err
	}
	defer db.Close()

	mysqlAdapter := storage.NewMySQLAdapter(db)
	if err := mysqlAdapter.Migrate(ctx); err != nil {
		return err
	}
	products := domain.DefaultProducts()
	if err := mysqlAdapter.SeedProducts(ctx, products, stock); err != nil {
		return err
	}
	log.Info("seeded catalog", zap.Int("products", len(products)), zap.Int("stock", stock))
	return nil
}

func runRestock(ctx context.Context, productID, stock int) error {
	if cfg.MySQLDSN == "" {
		return errNoMySQL
	}
	db, err := openMySQL(ctx, cfg.MySQLDSN)
	if err != nil {
		return err
	}
	defer db.Close()

	inv, err := service.NewInventoryService(storage.NewMySQLAdapter(db), log).Restock(ctx, productID, stock)
	if err != nil {
		return err
	}
	log.Info("restocked", zap.Int("product_id", inv.ProductID), zap.Int("stock", inv.Stock), zap.Int("version", inv.Version))
	return nil
}
