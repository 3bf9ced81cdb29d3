package views

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/ammcap/Ammlytics/types"
	"github.com/cnf/structhash"
	"github.com/goccy/go-json"
)

// RewardEntry is one pending reward line of a position report.
type RewardEntry struct {
	Amount   string `json:"amount"`
	Symbol   string `json:"symbol"`
	UsdValue string `json:"usd_value"`
}

// InitialState is the entry snapshot section of a position report.
type InitialState struct {
	Date     string `json:"date"`
	Balances string `json:"balances"`
	Price    string `json:"price"`
	UsdValue string `json:"usd_value"`
}

// BoundReport is the IL outlook at one edge of the range.
type BoundReport struct {
	Price             string      `json:"price"`
	IlUsd             string      `json:"il_usd"`
	IlPerc            string      `json:"il_perc"`
	BreakevenTime     string      `json:"breakeven_time"`
	BreakevenTimePerc json.Number `json:"breakeven_time_perc"`
	FeesVsIl          string      `json:"fees_vs_il"`
}

// CurrentILReport is the realized IL at the present price.
type CurrentILReport struct {
	IlUsd       string `json:"il_usd"`
	IlPerc      string `json:"il_perc"`
	NetGainLoss string `json:"net_gain_loss"`
}

// ILReport is the full impermanent-loss section. When a position has no
// usable baseline the report carries an empty object in its place.
type ILReport struct {
	LowerBound  BoundReport     `json:"lower_bound"`
	UpperBound  BoundReport     `json:"upper_bound"`
	Current     CurrentILReport `json:"current"`
	PositionAge string          `json:"position_age"`
}

// PositionReport is the per-position payload served to the dashboard.
// Monetary fields are pre-formatted strings; the two percentage gauges the
// frontend animates stay numeric.
type PositionReport struct {
	TokenId                    json.Number  `json:"token_id"`
	PositionTag                string       `json:"position_tag"`
	Pair                       string       `json:"pair"`
	Status                     string       `json:"status"`
	EstimatedValueUsd          string       `json:"estimated_value_usd"`
	PriceRange                 string       `json:"price_range"`
	PriceRangeLower            string       `json:"price_range_lower"`
	PriceRangeUpper            string       `json:"price_range_upper"`
	PriceRangePercentage       json.Number  `json:"price_range_percentage"`
	PercToLower                string       `json:"perc_to_lower"`
	PercToUpper                string       `json:"perc_to_upper"`
	CurrentPrice               string       `json:"current_price"`
	InitialState               InitialState `json:"initial_state"`
	CurrentBalances            string       `json:"current_balances"`
	Rewards                    []RewardEntry `json:"rewards"`
	TotalRewardsUsd            string       `json:"total_rewards_usd"`
	AnnualizedApr              string       `json:"annualized_apr"`
	DailyProjectedUsdEarnings  string       `json:"daily_projected_usd_earnings"`
	AnnualProjectedUsdEarnings string       `json:"annual_projected_usd_earnings"`
	ImpermanentLossData        interface{}  `json:"impermanent_loss_data"`
	PriceUnresolved            bool         `json:"price_unresolved,omitempty"`
}

// PortfolioReport is the top-level response of the data endpoint. Message
// is set instead of the aggregates when the wallet has nothing to report.
type PortfolioReport struct {
	TotalPortfolioValue             string           `json:"total_portfolio_value,omitempty"`
	NumActivePositions              int              `json:"num_active_positions,omitempty"`
	TotalDailyProjectedUsdEarnings  string           `json:"total_daily_projected_usd_earnings,omitempty"`
	TotalAnnualProjectedUsdEarnings string           `json:"total_annual_projected_usd_earnings,omitempty"`
	TotalAnnualYield                string           `json:"total_annual_yield,omitempty"`
	Positions                       []PositionReport `json:"positions,omitempty"`
	Message                         string           `json:"message,omitempty"`
}

const reportHashVersion = 1

type positionLocation struct {
	Wallet types.EthAddress
	Pool   types.EthAddress
	NftId  types.PositionId
}

// formPositionTag derives a stable opaque id for a position, so the
// frontend can key DOM state without leaking the raw NFT id into element
// ids.
func formPositionTag(wallet, pool types.EthAddress, id types.PositionId) string {
	loc := positionLocation{Wallet: wallet, Pool: pool, NftId: id}
	hash := sha256.Sum256(structhash.Dump(loc, reportHashVersion))
	return "pos_" + hex.EncodeToString(hash[:8])
}
