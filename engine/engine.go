// Package engine implements the valuation and transaction-ledger
// logic: buying and selling shares against the holdings table,
// cost-basis averaging, whole-history profit figures and price-trend
// statistics. All amounts are integer cents.
package engine

import (
	"errors"
	"strings"
	"time"

	"stock-portfolio/database"
	"stock-portfolio/models"
	"stock-portfolio/oracle"
)

var (
	// ErrInvalidQuantity rejects a non-positive share quantity.
	ErrInvalidQuantity = errors.New("quantity must be a positive whole number")
	// ErrNotOwned rejects a sell of a symbol with no holding.
	ErrNotOwned = errors.New("stock not owned")
	// ErrInsufficientShares rejects a sell larger than the holding.
	ErrInsufficientShares = errors.New("cannot sell more stock than you own")

	// The following are expected empty-state signals, not failures.
	// Callers should treat them as "nothing to show".
	ErrEmptyPortfolio = errors.New("portfolio is empty")
	ErrNoTransactions = errors.New("no transactions made")
	ErrNoTrendData    = errors.New("no trend data recorded")
)

// Engine owns one user's ledger store and a price source. It is not
// safe for concurrent use; the tracker is single-user and synchronous.
type Engine struct {
	store  *database.Store
	source oracle.PriceSource
	now    func() time.Time
}

func New(store *database.Store, source oracle.PriceSource) *Engine {
	return &Engine{store: store, source: source, now: time.Now}
}

// Normalize maps a user-entered symbol to its storage form.
func Normalize(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// today returns the engine clock's date truncated to a calendar day.
func (e *Engine) today() time.Time {
	y, m, d := e.now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Quote returns the current market price for symbol in cents.
func (e *Engine) Quote(symbol string) (int64, error) {
	return e.source.CurrentPrice(Normalize(symbol))
}

// Owned returns the quantity currently held of symbol, or ErrNotOwned.
func (e *Engine) Owned(symbol string) (int64, error) {
	h, err := e.store.GetHolding(Normalize(symbol))
	if errors.Is(err, database.ErrNotFound) {
		return 0, ErrNotOwned
	}
	if err != nil {
		return 0, err
	}
	return h.QuantityOwned, nil
}

// Buy purchases quantity shares of symbol at the current market price.
// It upserts the holding, appends a buy transaction and records the
// day's trend sample as one atomic unit.
func (e *Engine) Buy(symbol string, quantity int64) error {
	symbol = Normalize(symbol)
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	price, err := e.source.CurrentPrice(symbol)
	if err != nil {
		return err
	}
	day := e.today()

	return e.store.Transact(func(tx *database.Store) error {
		holding, err := tx.GetHolding(symbol)
		switch {
		case errors.Is(err, database.ErrNotFound):
			holding = models.Holding{Symbol: symbol, QuantityOwned: quantity}
		case err != nil:
			return err
		default:
			holding.QuantityOwned += quantity
		}
		if err := tx.UpsertHolding(holding); err != nil {
			return err
		}
		if err := tx.AppendTransaction(models.Transaction{
			Symbol:      symbol,
			Type:        models.TypeBuy,
			Quantity:    quantity,
			MarketPrice: price,
			MarketDate:  day,
		}); err != nil {
			return err
		}
		return tx.InsertTrendSample(models.TrendSample{
			Symbol:      symbol,
			MarketPrice: price,
			MarketDate:  day,
		})
	})
}

// Sell disposes of quantity shares of symbol at the current market
// price. Selling the full holding deletes it; partial sells are not
// allowed to exceed it. The holding update, sell transaction and trend
// sample are written as one atomic unit.
func (e *Engine) Sell(symbol string, quantity int64) error {
	symbol = Normalize(symbol)

	price, err := e.source.CurrentPrice(symbol)
	if err != nil {
		return err
	}
	day := e.today()

	return e.store.Transact(func(tx *database.Store) error {
		holding, err := tx.GetHolding(symbol)
		if errors.Is(err, database.ErrNotFound) {
			return ErrNotOwned
		}
		if err != nil {
			return err
		}
		if quantity > holding.QuantityOwned {
			return ErrInsufficientShares
		}
		if quantity <= 0 {
			return ErrInvalidQuantity
		}

		if quantity == holding.QuantityOwned {
			if err := tx.DeleteHolding(symbol); err != nil {
				return err
			}
		} else {
			holding.QuantityOwned -= quantity
			if err := tx.UpsertHolding(holding); err != nil {
				return err
			}
		}

		if err := tx.AppendTransaction(models.Transaction{
			Symbol:      symbol,
			Type:        models.TypeSell,
			Quantity:    quantity,
			MarketPrice: price,
			MarketDate:  day,
		}); err != nil {
			return err
		}
		return tx.InsertTrendSample(models.TrendSample{
			Symbol:      symbol,
			MarketPrice: price,
			MarketDate:  day,
		})
	})
}

// AverageCost returns the ceiling-rounded weighted mean purchase price
// of symbol over every historical buy. Sells never reduce the average;
// this is deliberate whole-history accounting, not lot tracking.
// Returns 0 when the symbol has no buy transactions.
func (e *Engine) AverageCost(symbol string) (int64, error) {
	buys, err := e.store.ListBuyTransactions(Normalize(symbol))
	if err != nil {
		return 0, err
	}

	var cost, shares int64
	for _, t := range buys {
		cost += t.Quantity * t.MarketPrice
		shares += t.Quantity
	}
	if shares == 0 {
		return 0, nil
	}
	return ceilDiv(cost, shares), nil
}

// TransactionLog returns the full transaction history ordered by
// market date, or ErrNoTransactions when the log is empty.
func (e *Engine) TransactionLog() ([]models.Transaction, error) {
	ts, err := e.store.ListTransactions()
	if err != nil {
		return nil, err
	}
	if len(ts) == 0 {
		return nil, ErrNoTransactions
	}
	return ts, nil
}

// ceilDiv returns ceil(a/b) for b > 0.
func ceilDiv(a, b int64) int64 {
	return (a + b - 1) / b
}
