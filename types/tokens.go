package types

// TokenMetadata describes an ERC-20 leg of a pool. IsQuote tags the USD
// quote-currency leg (USDC and friends). The flag is resolved exactly once,
// when the token is registered, so pricing never falls back to symbol
// matching at valuation time.
type TokenMetadata struct {
	Symbol   string
	Decimals int
	IsQuote  bool

	// RewardCreditPercent is the share of nominal USD value credited when
	// the token arrives as an emission reward. 100 for normal tokens; 50
	// for vesting claim tokens like xSHADOW, whose discount is a fixed
	// business rule applied to display values and aggregates alike.
	RewardCreditPercent int
}

// FullRewardCredit is the default credit for reward tokens with no
// registered discount.
const FullRewardCredit = 100
