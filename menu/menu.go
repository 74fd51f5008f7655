// Package menu is the interactive command-line surface: it logs the
// user into their personal store file and loops over the main menu,
// delegating every operation to the valuation engine.
package menu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"stock-portfolio/database"
	"stock-portfolio/engine"
	"stock-portfolio/money"
	"stock-portfolio/oracle"
)

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z]+$`)
	quantityPattern = regexp.MustCompile(`^[0-9]+$`)
)

// Login prompts for a username and opens that user's store under
// dataDir, creating it empty the first time the name is used.
func Login(in *bufio.Reader, out io.Writer, dataDir string) (*database.Store, error) {
	for {
		fmt.Fprint(out, "Enter username: ")
		line, err := in.ReadString('\n')
		if err != nil {
			return nil, err
		}
		name := strings.TrimSpace(line)
		if !usernamePattern.MatchString(name) {
			fmt.Fprintln(out, "username may only contain letters")
			fmt.Fprintln(out)
			continue
		}

		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			return nil, err
		}
		return database.Open(filepath.Join(dataDir, name+".db"))
	}
}

// Run loops over the main menu until the user quits or input ends.
func Run(in *bufio.Reader, out io.Writer, eng *engine.Engine) {
	for {
		fmt.Fprintln(out, "Stock Portfolio Tracker: Main Menu")
		fmt.Fprintln(out, "p - stock portfolio")
		fmt.Fprintln(out, "b - buy stocks")
		fmt.Fprintln(out, "s - sell stocks")
		fmt.Fprintln(out, "l - transaction log")
		fmt.Fprintln(out, "t - stock trends")
		fmt.Fprintln(out, "q - quit")
		fmt.Fprint(out, "Selection: ")

		line, err := in.ReadString('\n')
		if err != nil {
			return
		}
		fmt.Fprintln(out)

		sel := strings.TrimSpace(line)
		if sel == "" {
			fmt.Fprintln(out, "invalid selection")
			fmt.Fprintln(out)
			continue
		}

		switch strings.ToLower(sel[:1]) {
		case "p":
			printPortfolio(out, eng)
		case "b":
			buyStock(in, out, eng)
		case "s":
			sellStock(in, out, eng)
		case "l":
			printLog(out, eng)
		case "t":
			printTrends(in, out, eng)
		case "q":
			return
		default:
			fmt.Fprintln(out, "invalid selection")
		}
		fmt.Fprintln(out)
	}
}

// buyStock quotes the current price for a symbol and records a
// purchase of the requested quantity.
func buyStock(in *bufio.Reader, out io.Writer, eng *engine.Engine) {
	symbol, err := prompt(in, out, "Symbol of stock to purchase: ")
	if err != nil {
		return
	}
	fmt.Fprintln(out)

	price, err := eng.Quote(symbol)
	if err != nil {
		printOracleError(out, symbol, err)
		return
	}
	fmt.Fprintf(out, "Stock price is %s per share\n", money.FormatCents(price))

	quantity, ok, err := promptQuantity(in, out, "How many shares would you like to purchase? ")
	if err != nil || !ok {
		return
	}

	if err := eng.Buy(symbol, quantity); err != nil {
		printOperationError(out, symbol, err)
	}
}

// sellStock quotes the current price and holding for a symbol and
// records a sale of the requested quantity.
func sellStock(in *bufio.Reader, out io.Writer, eng *engine.Engine) {
	symbol, err := prompt(in, out, "Symbol of stock to sell: ")
	if err != nil {
		return
	}
	fmt.Fprintln(out)

	price, err := eng.Quote(symbol)
	if err != nil {
		printOracleError(out, symbol, err)
		return
	}
	owned, err := eng.Owned(symbol)
	if err != nil {
		printOperationError(out, symbol, err)
		return
	}
	fmt.Fprintf(out, "Stock price is %s per share\n", money.FormatCents(price))
	fmt.Fprintf(out, "You own %d shares\n", owned)

	quantity, ok, err := promptQuantity(in, out, "How many shares would you like to sell? ")
	if err != nil || !ok {
		return
	}

	if err := eng.Sell(symbol, quantity); err != nil {
		printOperationError(out, symbol, err)
	}
}

func printTrends(in *bufio.Reader, out io.Writer, eng *engine.Engine) {
	symbol, err := prompt(in, out, "Symbol of stock: ")
	if err != nil {
		return
	}
	fmt.Fprintln(out)

	report, err := eng.TrendStats(symbol)
	if errors.Is(err, engine.ErrNoTrendData) {
		fmt.Fprintln(out, "No trends recorded for this symbol")
		return
	}
	if err != nil {
		printOperationError(out, symbol, err)
		return
	}
	renderTrends(out, report)
}

func printPortfolio(out io.Writer, eng *engine.Engine) {
	report, err := eng.PortfolioReport()
	if errors.Is(err, engine.ErrEmptyPortfolio) {
		fmt.Fprintln(out, "Portfolio is empty")
		return
	}
	if err != nil {
		printOperationError(out, "", err)
		return
	}
	renderPortfolio(out, report)
}

func printLog(out io.Writer, eng *engine.Engine) {
	transactions, err := eng.TransactionLog()
	if errors.Is(err, engine.ErrNoTransactions) {
		fmt.Fprintln(out, "No transactions made")
		return
	}
	if err != nil {
		printOperationError(out, "", err)
		return
	}
	renderLog(out, transactions)
}

// prompt reads one trimmed line of input after printing label.
func prompt(in *bufio.Reader, out io.Writer, label string) (string, error) {
	fmt.Fprint(out, label)
	line, err := in.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptQuantity reads a share quantity. ok is false when the input is
// not a positive whole number, after telling the user so.
func promptQuantity(in *bufio.Reader, out io.Writer, label string) (quantity int64, ok bool, err error) {
	raw, err := prompt(in, out, label)
	if err != nil {
		return 0, false, err
	}
	if !quantityPattern.MatchString(raw) {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "quantity must be a positive whole number")
		return 0, false, nil
	}
	quantity, err = strconv.ParseInt(raw, 10, 64)
	if err != nil {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "quantity must be a positive whole number")
		return 0, false, nil
	}
	return quantity, true, nil
}

// printOracleError reports a failed price lookup in user terms.
func printOracleError(out io.Writer, symbol string, err error) {
	switch {
	case errors.Is(err, oracle.ErrUnknownSymbol):
		fmt.Fprintf(out, "No stock information found for symbol %s\n", engine.Normalize(symbol))
	case errors.Is(err, oracle.ErrUnavailable):
		fmt.Fprintln(out, "Couldn't connect to stock information. Please check internet connection")
	default:
		fmt.Fprintf(out, "Price lookup failed: %v\n", err)
	}
}

// printOperationError reports a failed engine operation in user terms.
func printOperationError(out io.Writer, symbol string, err error) {
	switch {
	case errors.Is(err, engine.ErrInvalidQuantity):
		fmt.Fprintln(out, "cannot buy or sell zero or less stocks")
	case errors.Is(err, engine.ErrNotOwned):
		fmt.Fprintln(out, "You do not own this stock")
	case errors.Is(err, engine.ErrInsufficientShares):
		fmt.Fprintln(out, "You cannot sell more stock than you have")
	case errors.Is(err, oracle.ErrUnknownSymbol), errors.Is(err, oracle.ErrUnavailable):
		printOracleError(out, symbol, err)
	default:
		fmt.Fprintf(out, "Operation failed: %v\n", err)
	}
}
