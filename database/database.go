// Package database is the relational ledger store. Each user owns one
// SQLite file holding three tables: holdings, transactions and trend
// samples. The store exposes per-entity queries and groups dependent
// writes into a single database transaction.
package database

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"stock-portfolio/models"
)

// ErrNotFound is returned by lookups when no matching row exists.
var ErrNotFound = errors.New("record not found")

// Store wraps the database handle for one user's ledger. It is passed
// explicitly to whoever needs it; there is no package-level handle.
type Store struct {
	db *gorm.DB
}

// Open opens the SQLite file at path, creating it with an empty schema
// the first time that path is used.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", path, err)
	}

	if err := db.AutoMigrate(
		&models.Holding{},
		&models.Transaction{},
		&models.TrendSample{},
	); err != nil {
		return nil, fmt.Errorf("migrate store %s: %w", path, err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Transact runs fn against a transactional view of the store. If fn
// returns an error every write made inside it is rolled back.
func (s *Store) Transact(fn func(tx *Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

// GetHolding returns the holding row for symbol, or ErrNotFound.
func (s *Store) GetHolding(symbol string) (models.Holding, error) {
	var h models.Holding
	err := s.db.Where("symbol = ?", symbol).First(&h).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return h, fmt.Errorf("holding %s: %w", symbol, ErrNotFound)
	}
	return h, err
}

// UpsertHolding creates the holding row or replaces the existing row
// for the same symbol.
func (s *Store) UpsertHolding(h models.Holding) error {
	return s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&h).Error
}

// DeleteHolding removes the holding row for symbol. Transactions and
// trend samples referencing the symbol are left in place.
func (s *Store) DeleteHolding(symbol string) error {
	return s.db.Where("symbol = ?", symbol).Delete(&models.Holding{}).Error
}

// ListHoldings returns every holding ordered by symbol.
func (s *Store) ListHoldings() ([]models.Holding, error) {
	var holdings []models.Holding
	err := s.db.Order("symbol").Find(&holdings).Error
	return holdings, err
}

// AppendTransaction adds one row to the transaction log.
func (s *Store) AppendTransaction(t models.Transaction) error {
	return s.db.Create(&t).Error
}

// ListTransactions returns the whole transaction log ordered by market
// date.
func (s *Store) ListTransactions() ([]models.Transaction, error) {
	var ts []models.Transaction
	err := s.db.Order("market_date").Find(&ts).Error
	return ts, err
}

// ListTransactionsByType returns all transactions of the given type
// (models.TypeBuy or models.TypeSell).
func (s *Store) ListTransactionsByType(txType string) ([]models.Transaction, error) {
	var ts []models.Transaction
	err := s.db.Where("type = ?", txType).Find(&ts).Error
	return ts, err
}

// ListBuyTransactions returns the buy transactions for one symbol,
// used for averaging purchase prices.
func (s *Store) ListBuyTransactions(symbol string) ([]models.Transaction, error) {
	var ts []models.Transaction
	err := s.db.Where("symbol = ? AND type = ?", symbol, models.TypeBuy).Find(&ts).Error
	return ts, err
}

// FindTrendSample returns the sample for (symbol, date), or ErrNotFound.
func (s *Store) FindTrendSample(symbol string, date time.Time) (models.TrendSample, error) {
	var ts models.TrendSample
	err := s.db.Where("symbol = ? AND market_date = ?", symbol, date).First(&ts).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ts, fmt.Errorf("trend sample %s %s: %w", symbol, date.Format("2006-01-02"), ErrNotFound)
	}
	return ts, err
}

// InsertTrendSample records one price observation. Inserting a second
// sample for the same (symbol, date) is a no-op.
func (s *Store) InsertTrendSample(ts models.TrendSample) error {
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "symbol"}, {Name: "market_date"}},
		DoNothing: true,
	}).Create(&ts).Error
}

// ListTrendSamples returns every recorded sample for symbol ordered by
// date.
func (s *Store) ListTrendSamples(symbol string) ([]models.TrendSample, error) {
	var samples []models.TrendSample
	err := s.db.Where("symbol = ?", symbol).Order("market_date").Find(&samples).Error
	return samples, err
}

// DeleteTrendSamplesForSymbol removes all trend history for symbol.
// Kept available for a liquidation cleanup policy; no caller invokes
// it today, so trend history survives a full sell.
func (s *Store) DeleteTrendSamplesForSymbol(symbol string) error {
	return s.db.Where("symbol = ?", symbol).Delete(&models.TrendSample{}).Error
}
