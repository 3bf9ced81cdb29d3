package loader

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/ammcap/Ammlytics/types"
	"github.com/cockroachdb/apd/v2"
	"github.com/goccy/go-json"
)

// PriceFeed queries an external HTTP quote service for tokens that have
// no on-chain price pool.
type PriceFeed struct {
	BaseURL string
	client  *http.Client
}

func NewPriceFeed(baseURL string) *PriceFeed {
	return &PriceFeed{
		BaseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// UsdPrice fetches the USD quote for a feed id. Quotes parse through
// json.Number so the feed's decimal text never round-trips through a
// float.
func (f *PriceFeed) UsdPrice(feedId string) (*apd.Decimal, error) {
	queryURL := fmt.Sprintf("%s/simple/price?ids=%s&vs_currencies=usd",
		f.BaseURL, url.QueryEscape(feedId))

	resp, err := f.client.Get(queryURL)
	if err != nil {
		return nil, types.Fail(types.PriceUnresolved, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, types.Failf(types.PriceUnresolved, "price feed returned status %d for %s",
			resp.StatusCode, feedId)
	}

	var quotes map[string]map[string]json.Number
	if err := json.NewDecoder(resp.Body).Decode(&quotes); err != nil {
		return nil, types.Fail(types.PriceUnresolved, err)
	}

	quote, ok := quotes[feedId]["usd"]
	if !ok {
		return nil, types.Failf(types.PriceUnresolved, "no usd quote for feed id %s", feedId)
	}

	price, _, err := apd.NewFromString(quote.String())
	if err != nil {
		return nil, types.Failf(types.PriceUnresolved, "unparseable quote %q for %s", quote, feedId)
	}
	return price, nil
}
