package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/srgjo27/launch_booking/internal/core/domain"
)

// withTx runs fn inside one transaction. Saves rewrite whole tables, so a
// failed save leaves the previous contents in place.
func withTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// insertAll prepares query once and executes it for rows 0..n-1.
func insertAll(ctx context.Context, tx *sql.Tx, table, query string, n int, args func(i int) []any) error {
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare %s statement: %w", table, err)
	}

	defer stmt.Close()

	for i := 0; i < n; i++ {
		if _, err := stmt.ExecContext(ctx, args(i)...); err != nil {
			return fmt.Errorf("failed to insert %s row %d: %w", table, i, err)
		}
	}

	return nil
}

func deleteAll(ctx context.Context, tx *sql.Tx, tables ...string) error {
	for _, table := range tables {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}

func sqlDate(d domain.Date) time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

func productColumns(products []domain.Product) (names, models []string, prices []float64) {
	names = make([]string, 0, len(products))
	models = make([]string, 0, len(products))
	prices = make([]float64, 0, len(products))
	for _, p := range products {
		names = append(names, p.Name)
		models = append(models, p.Model)
		prices = append(prices, p.Price)
	}
	return names, models, prices
}

func productsFrom(names, models []string, prices []float64) ([]domain.Product, error) {
	if len(names) != len(models) || len(names) != len(prices) {
		return nil, fmt.Errorf("product columns disagree: %d names, %d models, %d prices", len(names), len(models), len(prices))
	}
	var products []domain.Product
	for i := range names {
		products = append(products, domain.Product{Name: names[i], Model: models[i], Price: prices[i]})
	}
	return products, nil
}
