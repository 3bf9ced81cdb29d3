package views

import (
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/ammcap/Ammlytics/loader"
	"github.com/ammcap/Ammlytics/model"
	"github.com/ammcap/Ammlytics/store"
	"github.com/ammcap/Ammlytics/types"
	"github.com/cockroachdb/apd/v2"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
)

var vctx = apd.BaseContext.WithPrecision(model.EnginePrecision)

// Views composes the report pipeline: chain reads, price resolution, and
// baseline persistence behind one report-building surface.
type Views struct {
	OnChain *loader.OnChainLoader
	Oracle  *model.PriceOracle
	Tokens  *model.TokenDirectory
	Store   *store.BaselineStore

	now func() time.Time
}

func New(onChain *loader.OnChainLoader, oracle *model.PriceOracle,
	tokens *model.TokenDirectory, baselines *store.BaselineStore) *Views {
	return &Views{
		OnChain: onChain,
		Oracle:  oracle,
		Tokens:  tokens,
		Store:   baselines,
		now:     time.Now,
	}
}

// rewardSnapshot pairs one reward read with everything needed to price it.
type rewardSnapshot struct {
	read  loader.RewardRead
	meta  types.TokenMetadata
	price *apd.Decimal
}

// positionSnapshot is everything the compute phase needs for one position.
// The fetch phase fills it with network reads; after that no I/O happens.
type positionSnapshot struct {
	pos   loader.PositionDetails
	meta0 types.TokenMetadata
	meta1 types.TokenMetadata
	pool  loader.PoolState

	// USD prices per leg; nil marks an unresolved quote, which degrades
	// the valuation instead of failing the report.
	price0 *apd.Decimal
	price1 *apd.Decimal

	rewards []rewardSnapshot

	baseline      store.BaselineSnapshot
	baselineKnown bool

	err error
}

// BuildPortfolioReport assembles the full portfolio payload for a wallet.
// All network reads happen in a concurrent fetch phase; the valuation,
// yield, and IL math that follows is pure and deterministic over the
// fetched snapshots.
func (v *Views) BuildPortfolioReport(wallet types.EthAddress) (PortfolioReport, error) {
	baselines := v.loadBaselines()

	positions, balance, err := v.OnChain.WalletPositions(wallet)
	if err != nil {
		return PortfolioReport{}, err
	}
	if balance == 0 {
		return PortfolioReport{Message: "No positions found for this wallet."}, nil
	}
	if len(positions) == 0 {
		return PortfolioReport{Message: "No active positions found."}, nil
	}

	snapshots := make([]positionSnapshot, len(positions))
	var wg sync.WaitGroup
	for i := range positions {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			snapshots[i] = v.fetchPosition(wallet, positions[i], baselines)
		}(i)
	}
	wg.Wait()

	now := v.now()
	totalValue := apd.New(0, 0)
	totalDaily := apd.New(0, 0)
	totalAnnual := apd.New(0, 0)
	reports := make([]PositionReport, 0, len(snapshots))

	for i := range snapshots {
		snap := &snapshots[i]
		if snap.err != nil {
			log.Warn().Err(snap.err).Str("tokenId", snap.pos.Id.String()).
				Msg("Skipping position with unreadable pool")
			continue
		}

		report, usd, daily, annual, err := v.computePosition(wallet, snap, now)
		if err != nil {
			log.Warn().Err(err).Str("tokenId", snap.pos.Id.String()).
				Msg("Skipping position that failed valuation")
			continue
		}
		reports = append(reports, report)

		if _, err := vctx.Add(totalValue, totalValue, usd); err != nil {
			return PortfolioReport{}, types.Fail(types.ArithmeticDegenerate, err)
		}
		if _, err := vctx.Add(totalDaily, totalDaily, daily); err != nil {
			return PortfolioReport{}, types.Fail(types.ArithmeticDegenerate, err)
		}
		if _, err := vctx.Add(totalAnnual, totalAnnual, annual); err != nil {
			return PortfolioReport{}, types.Fail(types.ArithmeticDegenerate, err)
		}
	}

	totalYield := apd.New(0, 0)
	if totalValue.Sign() > 0 {
		if _, err := vctx.Quo(totalYield, totalAnnual, totalValue); err != nil {
			return PortfolioReport{}, types.Fail(types.ArithmeticDegenerate, err)
		}
		if _, err := vctx.Mul(totalYield, totalYield, apd.New(100, 0)); err != nil {
			return PortfolioReport{}, types.Fail(types.ArithmeticDegenerate, err)
		}
	}

	return PortfolioReport{
		TotalPortfolioValue:             formatUsd(totalValue),
		NumActivePositions:              len(positions),
		TotalDailyProjectedUsdEarnings:  formatUsd(totalDaily),
		TotalAnnualProjectedUsdEarnings: formatUsd(totalAnnual),
		TotalAnnualYield:                formatPercent(totalYield),
		Positions:                       reports,
	}, nil
}

func (v *Views) loadBaselines() map[types.PositionId]store.BaselineSnapshot {
	baselines, err := v.Store.LoadAll()
	if err != nil {
		log.Warn().Err(err).Msg("Baseline store unreadable, treating all positions as new")
		return map[types.PositionId]store.BaselineSnapshot{}
	}
	return baselines
}

// fetchPosition performs all network reads for one position.
func (v *Views) fetchPosition(wallet types.EthAddress, pos loader.PositionDetails,
	baselines map[types.PositionId]store.BaselineSnapshot) positionSnapshot {

	snap := positionSnapshot{pos: pos}
	snap.meta0 = v.Tokens.Metadata(pos.Token0)
	snap.meta1 = v.Tokens.Metadata(pos.Token1)

	pool, err := v.OnChain.PoolStateAt(pos.Token0, pos.Token1, nil)
	if err != nil {
		snap.err = err
		return snap
	}
	snap.pool = pool

	if price, err := v.Oracle.TokenUsdPrice(pos.Token0); err == nil {
		snap.price0 = price
	} else {
		log.Debug().Err(err).Str("token", snap.meta0.Symbol).Msg("Price unresolved")
	}
	if price, err := v.Oracle.TokenUsdPrice(pos.Token1); err == nil {
		snap.price1 = price
	} else {
		log.Debug().Err(err).Str("token", snap.meta1.Symbol).Msg("Price unresolved")
	}

	snap.rewards = v.fetchRewards(pool.Pool, pos.Id)

	if baseline, ok := baselines[pos.PositionId()]; ok {
		snap.baseline = baseline
		snap.baselineKnown = true
	} else {
		snap.baseline, snap.baselineKnown = v.captureBaseline(wallet, pos, pool)
	}
	return snap
}

func (v *Views) fetchRewards(pool types.EthAddress, id *big.Int) []rewardSnapshot {
	reads, err := v.OnChain.GaugeRewards(pool, id)
	if err != nil {
		log.Warn().Err(err).Str("tokenId", id.String()).Msg("Rewards unreadable")
		return nil
	}

	rewards := make([]rewardSnapshot, 0, len(reads))
	for _, read := range reads {
		r := rewardSnapshot{read: read, meta: v.Tokens.Metadata(read.Token)}
		if price, err := v.Oracle.TokenUsdPrice(read.Token); err == nil {
			r.price = price
		}
		rewards = append(rewards, r)
	}
	return rewards
}

// captureBaseline builds and persists the entry snapshot for a position
// seen for the first time. Pool state at the mint block gives true entry
// amounts; when the mint falls outside the scan window the live state
// stands in, marked as approximate.
func (v *Views) captureBaseline(wallet types.EthAddress, pos loader.PositionDetails,
	pool loader.PoolState) (store.BaselineSnapshot, bool) {

	baseline, err := v.buildBaseline(wallet, pos, pool)
	if err != nil {
		log.Warn().Err(err).Str("tokenId", pos.Id.String()).Msg("Baseline capture failed")
		return store.BaselineSnapshot{}, false
	}

	if err := v.Store.Save(baseline); err != nil {
		log.Warn().Err(err).Str("tokenId", pos.Id.String()).Msg("Baseline not persisted")
	}
	return baseline, true
}

func (v *Views) buildBaseline(wallet types.EthAddress, pos loader.PositionDetails,
	pool loader.PoolState) (store.BaselineSnapshot, error) {

	mint, err := v.OnChain.MintEvent(wallet, pos.Id)
	if err != nil {
		log.Warn().Err(err).Str("tokenId", pos.Id.String()).Msg("Mint scan failed, using live state")
		mint = nil
	}

	if mint != nil {
		block := new(big.Int).SetUint64(mint.BlockNumber)
		histPool, err := v.OnChain.PoolStateAt(pos.Token0, pos.Token1, block)
		if err != nil {
			return store.BaselineSnapshot{}, err
		}
		return v.baselineFromState(pos, histPool,
			mint.Timestamp.Format(store.DateLayout),
			fmt.Sprintf("%d", mint.BlockNumber))
	}

	return v.baselineFromState(pos, pool,
		v.now().Format(store.DateLayout)+store.CurrentSuffix, "N/A")
}

func (v *Views) baselineFromState(pos loader.PositionDetails, pool loader.PoolState,
	date string, blockLabel string) (store.BaselineSnapshot, error) {

	sqrtPrice, err := model.SqrtPriceOfX96(pool.SqrtPriceX96)
	if err != nil {
		return store.BaselineSnapshot{}, types.Fail(types.ArithmeticDegenerate, err)
	}
	amount0, amount1, err := model.TokenAmounts(pos.Liquidity, sqrtPrice, pos.TickLower, pos.TickUpper)
	if err != nil {
		return store.BaselineSnapshot{}, types.Fail(types.ArithmeticDegenerate, err)
	}

	meta0 := v.Tokens.Metadata(pos.Token0)
	meta1 := v.Tokens.Metadata(pos.Token1)
	price, err := model.PriceOfTick(pool.CurrentTick, meta0.Decimals, meta1.Decimals)
	if err != nil {
		return store.BaselineSnapshot{}, types.Fail(types.ArithmeticDegenerate, err)
	}

	return store.BaselineSnapshot{
		PositionId:   pos.PositionId(),
		CreationDate: date,
		BlockNumber:  blockLabel,
		Amount0:      amount0.String(),
		Amount1:      amount1.String(),
		Price:        price.Text('f'),
	}, nil
}

// computePosition turns one fetched snapshot into its report entry. Pure
// over the snapshot; returns the position's USD value and projected daily
// and annual earnings for the portfolio totals.
func (v *Views) computePosition(wallet types.EthAddress, snap *positionSnapshot,
	now time.Time) (PositionReport, *apd.Decimal, *apd.Decimal, *apd.Decimal, error) {

	pos := snap.pos
	meta0, meta1 := snap.meta0, snap.meta1

	sqrtPrice, err := model.SqrtPriceOfX96(snap.pool.SqrtPriceX96)
	if err != nil {
		return PositionReport{}, nil, nil, nil, types.Fail(types.ArithmeticDegenerate, err)
	}
	amount0, amount1, err := model.TokenAmounts(pos.Liquidity, sqrtPrice, pos.TickLower, pos.TickUpper)
	if err != nil {
		return PositionReport{}, nil, nil, nil, types.Fail(types.ArithmeticDegenerate, err)
	}

	currentPrice, err := model.PriceOfTick(snap.pool.CurrentTick, meta0.Decimals, meta1.Decimals)
	if err != nil {
		return PositionReport{}, nil, nil, nil, types.Fail(types.ArithmeticDegenerate, err)
	}
	priceLower, err := model.PriceOfTick(pos.TickLower, meta0.Decimals, meta1.Decimals)
	if err != nil {
		return PositionReport{}, nil, nil, nil, types.Fail(types.ArithmeticDegenerate, err)
	}
	priceUpper, err := model.PriceOfTick(pos.TickUpper, meta0.Decimals, meta1.Decimals)
	if err != nil {
		return PositionReport{}, nil, nil, nil, types.Fail(types.ArithmeticDegenerate, err)
	}

	positionUsd, err := model.PositionValueUsd(
		model.TokenLeg{Amount: amount0, Decimals: meta0.Decimals, Price: snap.price0, IsQuote: meta0.IsQuote},
		model.TokenLeg{Amount: amount1, Decimals: meta1.Decimals, Price: snap.price1, IsQuote: meta1.IsQuote})
	if err != nil {
		return PositionReport{}, nil, nil, nil, types.Fail(types.ArithmeticDegenerate, err)
	}

	status := "OUT OF RANGE"
	if pos.TickLower <= snap.pool.CurrentTick && snap.pool.CurrentTick <= pos.TickUpper {
		status = "IN RANGE"
	}

	entry := v.entryEconomics(snap, meta0, meta1)

	rewards, totalRewardsUsd, err := v.priceRewards(snap.rewards)
	if err != nil {
		return PositionReport{}, nil, nil, nil, err
	}

	fresh := !snap.baselineKnown || snap.baseline.Fresh() || entry.captured.IsZero()
	proj, err := model.ProjectYield(totalRewardsUsd, positionUsd, entry.captured, fresh, now)
	if err != nil {
		return PositionReport{}, nil, nil, nil, types.Fail(types.ArithmeticDegenerate, err)
	}

	ilData, err := v.ilSection(snap, entry, currentPrice, priceLower, priceUpper,
		positionUsd, totalRewardsUsd, proj)
	if err != nil {
		log.Warn().Err(err).Str("tokenId", pos.Id.String()).Msg("IL section failed")
		ilData = struct{}{}
	}

	percToLower, percToUpper := rangeDistances(currentPrice, priceLower, priceUpper)
	rangePct := rangePosition(currentPrice, priceLower, priceUpper)

	report := PositionReport{
		TokenId:              json.Number(pos.Id.String()),
		PositionTag:          formPositionTag(wallet, snap.pool.Pool, pos.PositionId()),
		Pair:                 fmt.Sprintf("%s/%s", meta0.Symbol, meta1.Symbol),
		Status:               status,
		EstimatedValueUsd:    formatUsd(positionUsd),
		PriceRange:           fmt.Sprintf("%s - %s", formatPrice(priceLower), formatPrice(priceUpper)),
		PriceRangeLower:      formatPrice(priceLower),
		PriceRangeUpper:      formatPrice(priceUpper),
		PriceRangePercentage: rangePct,
		PercToLower:          percToLower,
		PercToUpper:          percToUpper,
		CurrentPrice:         fmt.Sprintf("%s %s/%s", formatPrice(currentPrice), meta1.Symbol, meta0.Symbol),
		InitialState:         v.initialStateSection(snap, entry, meta0, meta1),
		CurrentBalances: fmt.Sprintf("%s %s & %s %s",
			formatAmount(amount0, meta0.Decimals), meta0.Symbol,
			formatAmount(amount1, meta1.Decimals), meta1.Symbol),
		Rewards:                    rewards,
		TotalRewardsUsd:            formatUsd(totalRewardsUsd),
		AnnualizedApr:              formatPercent(proj.AprPercent),
		DailyProjectedUsdEarnings:  formatUsd(proj.DailyUsd),
		AnnualProjectedUsdEarnings: formatUsd(proj.AnnualUsd),
		ImpermanentLossData:        ilData,
		PriceUnresolved:            snap.price0 == nil || snap.price1 == nil,
	}

	return report, positionUsd, proj.DailyUsd, proj.AnnualUsd, nil
}

// entryEconomics is the parsed baseline: entry price, whole-token entry
// amounts, and capture time. usable is false when the baseline is missing
// or corrupt.
type entryEconomics struct {
	usable   bool
	price    *apd.Decimal
	adj0     *apd.Decimal
	adj1     *apd.Decimal
	raw0     *big.Int
	raw1     *big.Int
	captured time.Time
}

func (v *Views) entryEconomics(snap *positionSnapshot, meta0, meta1 types.TokenMetadata) entryEconomics {
	out := entryEconomics{}
	if !snap.baselineKnown {
		return out
	}

	price, err := model.ParseDec(snap.baseline.Price)
	if err != nil || price.Sign() <= 0 {
		return out
	}

	raw0, ok0 := new(big.Int).SetString(snap.baseline.Amount0, 10)
	raw1, ok1 := new(big.Int).SetString(snap.baseline.Amount1, 10)
	if !ok0 || !ok1 {
		return out
	}

	adj0, err := model.AdjustedAmount(raw0, meta0.Decimals)
	if err != nil {
		return out
	}
	adj1, err := model.AdjustedAmount(raw1, meta1.Decimals)
	if err != nil {
		return out
	}

	return entryEconomics{
		usable:   true,
		price:    price,
		adj0:     adj0,
		adj1:     adj1,
		raw0:     raw0,
		raw1:     raw1,
		captured: snap.baseline.CaptureTime(),
	}
}

func (v *Views) initialStateSection(snap *positionSnapshot, entry entryEconomics,
	meta0, meta1 types.TokenMetadata) InitialState {

	out := InitialState{Date: "N/A", Balances: "N/A", Price: "N/A", UsdValue: formatUsd(nil)}
	if !snap.baselineKnown {
		return out
	}
	out.Date = snap.baseline.CreationDate

	if !entry.usable {
		return out
	}

	out.Balances = fmt.Sprintf("%s %s & %s %s",
		formatAmount(entry.raw0, meta0.Decimals), meta0.Symbol,
		formatAmount(entry.raw1, meta1.Decimals), meta1.Symbol)
	out.Price = fmt.Sprintf("%s %s/%s", formatPrice(entry.price), meta1.Symbol, meta0.Symbol)

	initialUsd, err := model.BaselineValueUsd(entry.adj0, entry.adj1, entry.price,
		meta0.IsQuote, meta1.IsQuote, snap.price0, snap.price1)
	if err == nil {
		out.UsdValue = formatUsd(initialUsd)
	}
	return out
}

func (v *Views) priceRewards(rewards []rewardSnapshot) ([]RewardEntry, *apd.Decimal, error) {
	entries := make([]RewardEntry, 0, len(rewards))
	total := apd.New(0, 0)

	for _, r := range rewards {
		usd, err := model.RewardUsdValue(r.read.Amount, r.meta.Decimals, r.price, r.meta.RewardCreditPercent)
		if err != nil {
			return nil, nil, types.Fail(types.ArithmeticDegenerate, err)
		}
		if _, err := vctx.Add(total, total, usd); err != nil {
			return nil, nil, types.Fail(types.ArithmeticDegenerate, err)
		}
		entries = append(entries, RewardEntry{
			Amount:   formatAmount(r.read.Amount, r.meta.Decimals),
			Symbol:   r.meta.Symbol,
			UsdValue: formatUsd(usd),
		})
	}
	return entries, total, nil
}

// ilSection builds the impermanent-loss block, or an empty object when the
// entry economics cannot support it.
func (v *Views) ilSection(snap *positionSnapshot, entry entryEconomics,
	currentPrice, priceLower, priceUpper, positionUsd, totalRewardsUsd *apd.Decimal,
	proj model.YieldProjection) (interface{}, error) {

	if !entry.usable || positionUsd.Sign() <= 0 || proj.DaysActive.Sign() <= 0 {
		return struct{}{}, nil
	}

	dailyReward, err := model.DailyRewardUsd(positionUsd, proj.AprPercent)
	if err != nil {
		return struct{}{}, types.Fail(types.ArithmeticDegenerate, err)
	}

	lower, err := model.ProjectBound(entry.price, priceLower, priceLower, priceUpper,
		entry.adj0, entry.adj1, totalRewardsUsd, dailyReward, proj.DaysActive)
	if err != nil {
		return struct{}{}, types.Fail(types.ArithmeticDegenerate, err)
	}
	upper, err := model.ProjectBound(entry.price, priceUpper, priceLower, priceUpper,
		entry.adj0, entry.adj1, totalRewardsUsd, dailyReward, proj.DaysActive)
	if err != nil {
		return struct{}{}, types.Fail(types.ArithmeticDegenerate, err)
	}
	current, err := model.ProjectCurrent(entry.price, currentPrice, priceLower, priceUpper,
		entry.adj0, entry.adj1, totalRewardsUsd)
	if err != nil {
		return struct{}{}, types.Fail(types.ArithmeticDegenerate, err)
	}

	return ILReport{
		LowerBound:  boundReport(lower),
		UpperBound:  boundReport(upper),
		Current: CurrentILReport{
			IlUsd:       formatUsd(current.ILUsd),
			IlPerc:      formatILPercent(current.ILPercent),
			NetGainLoss: formatUsd(current.NetGainLoss),
		},
		PositionAge: model.FormatDaySpan(proj.DaysActive),
	}, nil
}

func boundReport(b model.BoundProjection) BoundReport {
	return BoundReport{
		Price:             formatPrice(b.Price),
		IlUsd:             formatUsd(b.ILUsd),
		IlPerc:            formatILPercent(b.ILPercent),
		BreakevenTime:     b.Display,
		BreakevenTimePerc: json.Number(formatFixed(b.CompletionPercent, 2)),
		FeesVsIl:          formatUsd(b.FeesMinusIl),
	}
}

// rangeDistances is the percentage move from the current price to either
// bound. Empty strings when the current price is not positive.
func rangeDistances(currentPrice, priceLower, priceUpper *apd.Decimal) (string, string) {
	if currentPrice.Sign() <= 0 {
		return "", ""
	}

	toLower := new(apd.Decimal)
	if _, err := vctx.Sub(toLower, currentPrice, priceLower); err != nil {
		return "", ""
	}
	if _, err := vctx.Quo(toLower, toLower, currentPrice); err != nil {
		return "", ""
	}
	if _, err := vctx.Mul(toLower, toLower, apd.New(100, 0)); err != nil {
		return "", ""
	}

	toUpper := new(apd.Decimal)
	if _, err := vctx.Sub(toUpper, priceUpper, currentPrice); err != nil {
		return "", ""
	}
	if _, err := vctx.Quo(toUpper, toUpper, currentPrice); err != nil {
		return "", ""
	}
	if _, err := vctx.Mul(toUpper, toUpper, apd.New(100, 0)); err != nil {
		return "", ""
	}

	return formatPercent(toLower), formatPercent(toUpper)
}

// rangePosition is where the current price sits inside the range, as a
// numeric percentage the frontend renders as a gauge.
func rangePosition(currentPrice, priceLower, priceUpper *apd.Decimal) json.Number {
	span := new(apd.Decimal)
	if _, err := vctx.Sub(span, priceUpper, priceLower); err != nil {
		return json.Number("0")
	}
	if span.Sign() <= 0 {
		return json.Number("0")
	}

	pct := new(apd.Decimal)
	if _, err := vctx.Sub(pct, currentPrice, priceLower); err != nil {
		return json.Number("0")
	}
	if _, err := vctx.Quo(pct, pct, span); err != nil {
		return json.Number("0")
	}
	if _, err := vctx.Mul(pct, pct, apd.New(100, 0)); err != nil {
		return json.Number("0")
	}
	return json.Number(formatFixed(pct, 2))
}
