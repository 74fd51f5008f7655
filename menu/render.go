package menu

import (
	"fmt"
	"io"
	"text/tabwriter"

	"stock-portfolio/engine"
	"stock-portfolio/models"
	"stock-portfolio/money"
)

const dateLayout = "2006-01-02"

// renderPortfolio prints the holdings table followed by the profit
// breakdown footer.
func renderPortfolio(out io.Writer, report *engine.PortfolioReport) {
	w := tabwriter.NewWriter(out, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "Stock Symbol\tQuantity Owned\tAverage Purchase\tCurrent Price")
	for _, line := range report.Lines {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n",
			line.Symbol,
			line.QuantityOwned,
			money.FormatCents(line.AverageCost),
			money.FormatCents(line.CurrentPrice),
		)
	}
	w.Flush()

	fmt.Fprintln(out, "-----------------------------------------------")
	w = tabwriter.NewWriter(out, 0, 8, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(w, "  Total value of stocks sold:\t%s\n", money.FormatCents(report.TotalSellProceeds))
	fmt.Fprintf(w, "+ Today's portfolio value:\t%s\n", money.FormatCents(report.CurrentValue))
	fmt.Fprintf(w, "  Gross Profit:\t%s\n", money.FormatCents(report.GrossProfit))
	fmt.Fprintf(w, "- Total cost of stocks:\t%s\n", money.FormatCents(report.TotalBuyCost))
	fmt.Fprintf(w, "  Net Profit:\t%s\n", money.FormatCents(report.NetProfit))
	w.Flush()
}

// renderLog prints the date-ordered transaction history.
func renderLog(out io.Writer, transactions []models.Transaction) {
	w := tabwriter.NewWriter(out, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "Stock Symbol\tTrans Type\tQuantity\tMarket Price\tMarket Date")
	for _, t := range transactions {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
			t.Symbol,
			t.Type,
			t.Quantity,
			money.FormatCents(t.MarketPrice),
			t.MarketDate.Format(dateLayout),
		)
	}
	w.Flush()
}

// renderTrends prints the recorded price history for one symbol and
// its high, low and average.
func renderTrends(out io.Writer, report *engine.TrendReport) {
	w := tabwriter.NewWriter(out, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "Market Price\tMarket Date")
	for _, s := range report.Samples {
		fmt.Fprintf(w, "%s\t%s\n",
			money.FormatCents(s.MarketPrice),
			s.MarketDate.Format(dateLayout),
		)
	}
	w.Flush()

	fmt.Fprintln(out, "-----------------------------------------------")
	fmt.Fprintf(out, "Highest Price:\t%s\n", money.FormatCents(report.High))
	fmt.Fprintf(out, "Lowest Price:\t%s\n", money.FormatCents(report.Low))
	fmt.Fprintf(out, "Average Price:\t%s\n", money.FormatCents(report.Average))
}
