package binance

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"CandlePull/internal/domain/models"
	xhttp "CandlePull/pkg/http"
	applogger "CandlePull/pkg/logger"
)

func testLogger(t *testing.T) *applogger.Logger {
	t.Helper()
	l, err := applogger.New(&applogger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return l
}

func TestFetchCandlesDecodesKlines(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("symbol"); got != "BTCUSDT" {
			t.Errorf("symbol query = %q", got)
		}
		if got := r.URL.Query().Get("interval"); got != "1m" {
			t.Errorf("interval query = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			[1650000000000,"40000.1","40100.0","39900.0","40050.5","12.3",1650000059999,"0",10,"0","0","0"],
			[1650000060000,"40050.5","40200.0","40000.0","40123.0","9.8",1650000119999,"0",8,"0","0","0"]
		]`))
	}))
	defer srv.Close()

	c := New(srv.URL, xhttp.NewClient(), testLogger(t))
	candles, err := c.FetchCandles(context.Background(), "BTCUSDT", "1m")
	if err != nil {
		t.Fatalf("FetchCandles: %v", err)
	}
	if len(candles) != 2 {
		t.Fatalf("candles = %d, want 2", len(candles))
	}
	if candles[0].OpenTime != 1650000000000 || candles[0].Close != 40050.5 {
		t.Errorf("candle[0] = %+v", candles[0])
	}
	if candles[1].Close != 40123.0 {
		t.Errorf("candle[1] = %+v", candles[1])
	}
}

func TestFetchCandlesErrorObjectIsParseFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":-1121,"msg":"Invalid symbol."}`))
	}))
	defer srv.Close()

	c := New(srv.URL, xhttp.NewClient(), testLogger(t))
	_, err := c.FetchCandles(context.Background(), "NOPEUSDT", "1m")
	if err == nil {
		t.Fatal("expected error for exchange error payload")
	}
	if kind := models.KindOf(err); kind != models.FailureParse {
		t.Fatalf("kind = %q, want parse", kind)
	}
}

func TestFetchCandlesObjectBodyWith200IsParseFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code":-1121,"msg":"Invalid symbol."}`))
	}))
	defer srv.Close()

	c := New(srv.URL, xhttp.NewClient(), testLogger(t))
	_, err := c.FetchCandles(context.Background(), "NOPEUSDT", "1m")
	if kind := models.KindOf(err); kind != models.FailureParse {
		t.Fatalf("kind = %q, want parse (err: %v)", kind, err)
	}
}

func TestFetchCandlesMalformedRow(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[[1650000000000,"1","2"]]`))
	}))
	defer srv.Close()

	c := New(srv.URL, xhttp.NewClient(), testLogger(t))
	_, err := c.FetchCandles(context.Background(), "BTCUSDT", "1m")
	if kind := models.KindOf(err); kind != models.FailureParse {
		t.Fatalf("kind = %q, want parse (err: %v)", kind, err)
	}
}

func TestFetchCandlesNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	srv.Close() // refuse connections

	c := New(srv.URL, xhttp.NewClient(), testLogger(t))
	_, err := c.FetchCandles(context.Background(), "BTCUSDT", "1m")
	if kind := models.KindOf(err); kind != models.FailureNetwork {
		t.Fatalf("kind = %q, want network (err: %v)", kind, err)
	}
}

func TestFetchCandlesServerErrorIsNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("upstream blew up"))
	}))
	defer srv.Close()

	c := New(srv.URL, xhttp.NewClient(), testLogger(t))
	_, err := c.FetchCandles(context.Background(), "BTCUSDT", "1m")
	if kind := models.KindOf(err); kind != models.FailureNetwork {
		t.Fatalf("kind = %q, want network (err: %v)", kind, err)
	}
}
