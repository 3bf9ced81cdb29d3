package loader

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ammcap/Ammlytics/types"
	"github.com/cockroachdb/apd/v2"
)

func TestPriceFeedUsdPrice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/simple/price" {
			t.Fatalf("Unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("ids") != "bitcoin" {
			t.Fatalf("Unexpected ids param %s", r.URL.Query().Get("ids"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"bitcoin":{"usd":64250.123456789012345678901234567890}}`))
	}))
	defer srv.Close()

	feed := NewPriceFeed(srv.URL)
	price, err := feed.UsdPrice("bitcoin")
	if err != nil {
		t.Fatal(err)
	}

	want, _, err := apd.NewFromString("64250.123456789012345678901234567890")
	if err != nil {
		t.Fatal(err)
	}
	if price.Cmp(want) != 0 {
		t.Fatalf("Quote lost precision: got %s", price.Text('f'))
	}
}

func TestPriceFeedMissingQuote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	feed := NewPriceFeed(srv.URL)
	_, err := feed.UsdPrice("unknown-token")
	if err == nil {
		t.Fatal("Missing quote should error")
	}
	if types.ReasonOf(err) != types.PriceUnresolved {
		t.Fatalf("Expected price_unresolved, got %s", types.ReasonOf(err))
	}
}

func TestPriceFeedUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	feed := NewPriceFeed(srv.URL)
	_, err := feed.UsdPrice("bitcoin")
	if err == nil {
		t.Fatal("Upstream error should surface")
	}
	if types.ReasonOf(err) != types.PriceUnresolved {
		t.Fatalf("Expected price_unresolved, got %s", types.ReasonOf(err))
	}
}
