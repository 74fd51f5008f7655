package menu

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"stock-portfolio/database"
	"stock-portfolio/engine"
	"stock-portfolio/oracle"
)

type fakeSource struct {
	prices map[string]int64
}

func (f *fakeSource) CurrentPrice(symbol string) (int64, error) {
	price, ok := f.prices[symbol]
	if !ok {
		return 0, oracle.ErrUnknownSymbol
	}
	return price, nil
}

func newTestEngine(t *testing.T) *engine.Engine {
	t.Helper()
	store, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return engine.New(store, &fakeSource{prices: map[string]int64{"AAPL": 428}})
}

// runSession feeds a scripted input through the menu loop and returns
// everything it printed.
func runSession(t *testing.T, eng *engine.Engine, input string) string {
	t.Helper()
	var out bytes.Buffer
	Run(bufio.NewReader(strings.NewReader(input)), &out, eng)
	return out.String()
}

func TestRunQuitImmediately(t *testing.T) {
	out := runSession(t, newTestEngine(t), "q\n")
	if !strings.Contains(out, "Main Menu") {
		t.Errorf("menu header missing from output:\n%s", out)
	}
}

func TestRunInvalidSelection(t *testing.T) {
	out := runSession(t, newTestEngine(t), "x\nq\n")
	if !strings.Contains(out, "invalid selection") {
		t.Errorf("expected invalid selection message, got:\n%s", out)
	}
}

func TestRunEmptyPortfolio(t *testing.T) {
	out := runSession(t, newTestEngine(t), "p\nq\n")
	if !strings.Contains(out, "Portfolio is empty") {
		t.Errorf("expected empty portfolio message, got:\n%s", out)
	}
}

func TestRunBuyThenPortfolio(t *testing.T) {
	out := runSession(t, newTestEngine(t), "b\naapl\n10\np\nq\n")

	if !strings.Contains(out, "Stock price is $4.28 per share") {
		t.Errorf("buy flow did not quote the price:\n%s", out)
	}
	if !strings.Contains(out, "AAPL") {
		t.Errorf("portfolio report missing AAPL line:\n%s", out)
	}
	if !strings.Contains(out, "Net Profit:") {
		t.Errorf("portfolio report missing profit footer:\n%s", out)
	}
}

func TestRunBuyRejectsBadQuantity(t *testing.T) {
	out := runSession(t, newTestEngine(t), "b\naapl\nten\nq\n")
	if !strings.Contains(out, "quantity must be a positive whole number") {
		t.Errorf("expected quantity validation message, got:\n%s", out)
	}
}

func TestRunBuyUnknownSymbol(t *testing.T) {
	out := runSession(t, newTestEngine(t), "b\nzzzz\nq\n")
	if !strings.Contains(out, "No stock information found for symbol ZZZZ") {
		t.Errorf("expected unknown symbol message, got:\n%s", out)
	}
}

func TestRunSellMoreThanOwned(t *testing.T) {
	eng := newTestEngine(t)
	if err := eng.Buy("AAPL", 5); err != nil {
		t.Fatalf("Buy failed: %v", err)
	}

	out := runSession(t, eng, "s\naapl\n99\nq\n")
	if !strings.Contains(out, "You own 5 shares") {
		t.Errorf("sell flow did not show the holding:\n%s", out)
	}
	if !strings.Contains(out, "You cannot sell more stock than you have") {
		t.Errorf("expected insufficient shares message, got:\n%s", out)
	}
}

func TestRunTransactionLog(t *testing.T) {
	eng := newTestEngine(t)
	if err := eng.Buy("AAPL", 5); err != nil {
		t.Fatalf("Buy failed: %v", err)
	}

	out := runSession(t, eng, "l\nq\n")
	if !strings.Contains(out, "buy") || !strings.Contains(out, "$4.28") {
		t.Errorf("transaction log missing buy row:\n%s", out)
	}
}

func TestRunTrendsForUnknownSymbol(t *testing.T) {
	out := runSession(t, newTestEngine(t), "t\naapl\nq\n")
	if !strings.Contains(out, "No trends recorded for this symbol") {
		t.Errorf("expected no-trends message, got:\n%s", out)
	}
}

func TestLoginRejectsBadUsername(t *testing.T) {
	dataDir := t.TempDir()
	in := bufio.NewReader(strings.NewReader("bob123\nbob\n"))
	var out bytes.Buffer

	store, err := Login(in, &out, dataDir)
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	defer store.Close()

	if !strings.Contains(out.String(), "username may only contain letters") {
		t.Errorf("expected username validation message, got:\n%s", out.String())
	}
	if _, err := os.Stat(filepath.Join(dataDir, "bob.db")); err != nil {
		t.Errorf("store file not created: %v", err)
	}
}
