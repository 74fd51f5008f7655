package engine

import "stock-portfolio/models"

// HoldingLine is one row of the portfolio report.
type HoldingLine struct {
	Symbol        string
	QuantityOwned int64
	AverageCost   int64 // cents, ceiling-rounded weighted mean of buys
	CurrentPrice  int64 // cents
}

// ProfitSummary aggregates whole-history profit figures in cents.
// Gross profit is the value of liquidating everything held today plus
// everything already sold; net profit subtracts everything ever spent
// buying.
type ProfitSummary struct {
	CurrentValue      int64
	TotalSellProceeds int64
	TotalBuyCost      int64
	GrossProfit       int64
	NetProfit         int64
}

// PortfolioReport is the holdings valuation report.
type PortfolioReport struct {
	Lines []HoldingLine
	ProfitSummary
}

// TrendReport is the price history of one symbol with its high, low
// and ceiling-rounded mean.
type TrendReport struct {
	Symbol  string
	Samples []models.TrendSample
	High    int64
	Low     int64
	Average int64
}

// ProfitSummary computes the aggregate profit figures over the whole
// transaction history. It never reports an empty state: with no
// holdings the current value is simply 0, and the buy/sell totals
// still cover fully liquidated symbols.
func (e *Engine) ProfitSummary() (*ProfitSummary, error) {
	holdings, err := e.store.ListHoldings()
	if err != nil {
		return nil, err
	}

	var sum ProfitSummary
	for _, h := range holdings {
		price, err := e.source.CurrentPrice(h.Symbol)
		if err != nil {
			return nil, err
		}
		sum.CurrentValue += h.QuantityOwned * price
	}
	if err := e.addHistoryTotals(&sum); err != nil {
		return nil, err
	}
	return &sum, nil
}

// addHistoryTotals fills in the buy/sell totals over the whole
// transaction log and derives the profit figures from them.
func (e *Engine) addHistoryTotals(sum *ProfitSummary) error {
	sells, err := e.store.ListTransactionsByType(models.TypeSell)
	if err != nil {
		return err
	}
	for _, t := range sells {
		sum.TotalSellProceeds += t.Quantity * t.MarketPrice
	}

	buys, err := e.store.ListTransactionsByType(models.TypeBuy)
	if err != nil {
		return err
	}
	for _, t := range buys {
		sum.TotalBuyCost += t.Quantity * t.MarketPrice
	}

	sum.GrossProfit = sum.CurrentValue + sum.TotalSellProceeds
	sum.NetProfit = sum.GrossProfit - sum.TotalBuyCost
	return nil
}

// PortfolioReport values every current holding at its fresh market
// price and attaches the profit summary. Each priced symbol gets a
// trend sample recorded for today as a side effect. Returns
// ErrEmptyPortfolio when nothing is held.
func (e *Engine) PortfolioReport() (*PortfolioReport, error) {
	holdings, err := e.store.ListHoldings()
	if err != nil {
		return nil, err
	}
	if len(holdings) == 0 {
		return nil, ErrEmptyPortfolio
	}

	day := e.today()
	report := &PortfolioReport{}
	for _, h := range holdings {
		price, err := e.source.CurrentPrice(h.Symbol)
		if err != nil {
			return nil, err
		}
		avg, err := e.AverageCost(h.Symbol)
		if err != nil {
			return nil, err
		}
		if err := e.store.InsertTrendSample(models.TrendSample{
			Symbol:      h.Symbol,
			MarketPrice: price,
			MarketDate:  day,
		}); err != nil {
			return nil, err
		}
		report.Lines = append(report.Lines, HoldingLine{
			Symbol:        h.Symbol,
			QuantityOwned: h.QuantityOwned,
			AverageCost:   avg,
			CurrentPrice:  price,
		})
		report.CurrentValue += h.QuantityOwned * price
	}

	if err := e.addHistoryTotals(&report.ProfitSummary); err != nil {
		return nil, err
	}
	return report, nil
}

// TrendStats folds all recorded samples for symbol into high, low and
// ceiling-rounded average. High and low start from the first sample,
// so single-sample and all-equal series come out right without any
// sentinel bound. Returns ErrNoTrendData when nothing was recorded.
func (e *Engine) TrendStats(symbol string) (*TrendReport, error) {
	symbol = Normalize(symbol)
	samples, err := e.store.ListTrendSamples(symbol)
	if err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		return nil, ErrNoTrendData
	}

	high, low := samples[0].MarketPrice, samples[0].MarketPrice
	var sum int64
	for _, s := range samples {
		if s.MarketPrice > high {
			high = s.MarketPrice
		}
		if s.MarketPrice < low {
			low = s.MarketPrice
		}
		sum += s.MarketPrice
	}

	return &TrendReport{
		Symbol:  symbol,
		Samples: samples,
		High:    high,
		Low:     low,
		Average: ceilDiv(sum, int64(len(samples))),
	}, nil
}
