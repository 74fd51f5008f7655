package engine

import (
	"errors"
	"testing"

	"stock-portfolio/oracle"
)

func TestPortfolioReportValuesHoldings(t *testing.T) {
	src := &fakeSource{prices: map[string]int64{"AAPL": 1000, "MSFT": 2000}}
	e := newTestEngine(t, src)

	if err := e.Buy("AAPL", 10); err != nil {
		t.Fatalf("Buy failed: %v", err)
	}
	if err := e.Buy("MSFT", 2); err != nil {
		t.Fatalf("Buy failed: %v", err)
	}
	src.prices["AAPL"] = 1100

	report, err := e.PortfolioReport()
	if err != nil {
		t.Fatalf("PortfolioReport failed: %v", err)
	}

	if len(report.Lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(report.Lines))
	}
	aapl := report.Lines[0]
	if aapl.Symbol != "AAPL" || aapl.QuantityOwned != 10 || aapl.CurrentPrice != 1100 || aapl.AverageCost != 1000 {
		t.Errorf("AAPL line = %+v, want 10 shares, price 1100, average 1000", aapl)
	}

	// 10*1100 + 2*2000
	if report.CurrentValue != 15000 {
		t.Errorf("CurrentValue = %d, want 15000", report.CurrentValue)
	}
	// 10*1000 + 2*2000
	if report.TotalBuyCost != 14000 {
		t.Errorf("TotalBuyCost = %d, want 14000", report.TotalBuyCost)
	}
	if report.TotalSellProceeds != 0 {
		t.Errorf("TotalSellProceeds = %d, want 0", report.TotalSellProceeds)
	}
	if report.GrossProfit != 15000 {
		t.Errorf("GrossProfit = %d, want 15000", report.GrossProfit)
	}
	if report.NetProfit != 1000 {
		t.Errorf("NetProfit = %d, want 1000", report.NetProfit)
	}
}

func TestPortfolioReportRecordsTrendSamples(t *testing.T) {
	src := &fakeSource{prices: map[string]int64{"AAPL": 1000}}
	e := newTestEngine(t, src)

	if err := e.Buy("AAPL", 1); err != nil {
		t.Fatalf("Buy failed: %v", err)
	}

	// A report on a later day observes a fresh price for the symbol.
	setDay(e, 2026, 9, 2)
	src.prices["AAPL"] = 1200
	if _, err := e.PortfolioReport(); err != nil {
		t.Fatalf("PortfolioReport failed: %v", err)
	}

	trend, err := e.TrendStats("AAPL")
	if err != nil {
		t.Fatalf("TrendStats failed: %v", err)
	}
	if len(trend.Samples) != 2 {
		t.Fatalf("got %d samples, want 2", len(trend.Samples))
	}
	if trend.High != 1200 {
		t.Errorf("High = %d, want the report-day observation 1200", trend.High)
	}
}

func TestPortfolioReportEmpty(t *testing.T) {
	e := newTestEngine(t, &fakeSource{})
	if _, err := e.PortfolioReport(); !errors.Is(err, ErrEmptyPortfolio) {
		t.Errorf("PortfolioReport = %v, want ErrEmptyPortfolio", err)
	}
}

func TestPortfolioReportPropagatesOracleErrors(t *testing.T) {
	src := &fakeSource{prices: map[string]int64{"AAPL": 1000}}
	e := newTestEngine(t, src)

	if err := e.Buy("AAPL", 1); err != nil {
		t.Fatalf("Buy failed: %v", err)
	}
	src.err = oracle.ErrUnavailable

	if _, err := e.PortfolioReport(); !errors.Is(err, oracle.ErrUnavailable) {
		t.Errorf("PortfolioReport = %v, want ErrUnavailable", err)
	}
}

func TestProfitSummaryRoundTripIsZero(t *testing.T) {
	src := &fakeSource{prices: map[string]int64{"AAPL": 1000}}
	e := newTestEngine(t, src)

	// Buy 10 and sell 10 at the same price: no holding, no profit.
	if err := e.Buy("AAPL", 10); err != nil {
		t.Fatalf("Buy failed: %v", err)
	}
	if err := e.Sell("AAPL", 10); err != nil {
		t.Fatalf("Sell failed: %v", err)
	}

	sum, err := e.ProfitSummary()
	if err != nil {
		t.Fatalf("ProfitSummary failed: %v", err)
	}
	if sum.CurrentValue != 0 {
		t.Errorf("CurrentValue = %d, want 0", sum.CurrentValue)
	}
	if sum.NetProfit != 0 {
		t.Errorf("NetProfit = %d, want 0", sum.NetProfit)
	}
	if _, err := e.Owned("AAPL"); !errors.Is(err, ErrNotOwned) {
		t.Errorf("holding survived the round trip: %v", err)
	}
}

func TestProfitSummaryWithEmptyPortfolioUsesHistory(t *testing.T) {
	src := &fakeSource{prices: map[string]int64{"AAPL": 1000}}
	e := newTestEngine(t, src)

	if err := e.Buy("AAPL", 10); err != nil {
		t.Fatalf("Buy failed: %v", err)
	}
	src.prices["AAPL"] = 1500
	if err := e.Sell("AAPL", 10); err != nil {
		t.Fatalf("Sell failed: %v", err)
	}

	sum, err := e.ProfitSummary()
	if err != nil {
		t.Fatalf("ProfitSummary failed: %v", err)
	}
	if sum.CurrentValue != 0 {
		t.Errorf("CurrentValue = %d, want 0 with nothing held", sum.CurrentValue)
	}
	if sum.TotalSellProceeds != 15000 {
		t.Errorf("TotalSellProceeds = %d, want 15000", sum.TotalSellProceeds)
	}
	if sum.TotalBuyCost != 10000 {
		t.Errorf("TotalBuyCost = %d, want 10000", sum.TotalBuyCost)
	}
	if sum.NetProfit != 5000 {
		t.Errorf("NetProfit = %d, want 5000", sum.NetProfit)
	}
}

func TestProfitSummaryEmptyHistory(t *testing.T) {
	e := newTestEngine(t, &fakeSource{})
	sum, err := e.ProfitSummary()
	if err != nil {
		t.Fatalf("ProfitSummary failed: %v", err)
	}
	if sum.CurrentValue != 0 || sum.GrossProfit != 0 || sum.NetProfit != 0 {
		t.Errorf("empty-history summary = %+v, want all zeros", sum)
	}
}
