package loader

import (
	"math/big"

	"github.com/ammcap/Ammlytics/types"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// PoolState is a pool's slot0 reading at a single block.
type PoolState struct {
	Pool         types.EthAddress
	SqrtPriceX96 *big.Int
	CurrentTick  int
}

// PoolSlotPrice is the sqrt price of a concentrated pool together with
// its token ordering, used for deriving a token0/token1 exchange rate.
type PoolSlotPrice struct {
	Token0       types.EthAddress
	Token1       types.EthAddress
	SqrtPriceX96 *big.Int
}

// PoolReserves is the reserve pair of a constant-product pool together
// with its token ordering.
type PoolReserves struct {
	Token0   types.EthAddress
	Token1   types.EthAddress
	Reserve0 *big.Int
	Reserve1 *big.Int
}

// PoolStateAt reads slot0 for the registered pool of a token pair at the
// given block (nil for latest).
func (c *OnChainLoader) PoolStateAt(token0, token1 types.EthAddress, block *big.Int) (PoolState, error) {
	pool, ok := c.Cfg.PoolForPair(token0, token1)
	if !ok {
		return PoolState{}, types.Failf(types.DataUnavailable,
			"no registered pool for pair %s/%s", token0, token1)
	}

	result, err := c.callContractFn("slot0", pool, c.slotAbi, block)
	if err != nil {
		return PoolState{}, err
	}
	if len(result) < 2 {
		return PoolState{}, types.Failf(types.DataUnavailable, "truncated slot0 result from %s", pool)
	}

	return PoolState{
		Pool:         pool,
		SqrtPriceX96: result[0].(*big.Int),
		CurrentTick:  int(result[1].(*big.Int).Int64()),
	}, nil
}

// SlotPrice reads a concentrated pool's sqrt price and token ordering.
func (c *OnChainLoader) SlotPrice(pool types.EthAddress) (PoolSlotPrice, error) {
	result, err := c.callContractFn("slot0", pool, c.slotAbi, nil)
	if err != nil {
		return PoolSlotPrice{}, err
	}

	token0, token1, err := c.poolTokens(pool, c.slotAbi)
	if err != nil {
		return PoolSlotPrice{}, err
	}

	return PoolSlotPrice{
		Token0:       token0,
		Token1:       token1,
		SqrtPriceX96: result[0].(*big.Int),
	}, nil
}

// Reserves reads a constant-product pool's reserves and token ordering.
// Used as the fallback when a price pool has no slot0.
func (c *OnChainLoader) Reserves(pool types.EthAddress) (PoolReserves, error) {
	result, err := c.callContractFn("getReserves", pool, c.reservesAbi, nil)
	if err != nil {
		return PoolReserves{}, err
	}
	if len(result) < 2 {
		return PoolReserves{}, types.Failf(types.DataUnavailable, "truncated getReserves result from %s", pool)
	}

	token0, token1, err := c.poolTokens(pool, c.reservesAbi)
	if err != nil {
		return PoolReserves{}, err
	}

	return PoolReserves{
		Token0:   token0,
		Token1:   token1,
		Reserve0: result[0].(*big.Int),
		Reserve1: result[1].(*big.Int),
	}, nil
}

func (c *OnChainLoader) poolTokens(pool types.EthAddress, parsed abi.ABI) (types.EthAddress, types.EthAddress, error) {
	t0Result, err := c.callContractFn("token0", pool, parsed, nil)
	if err != nil {
		return "", "", err
	}
	t1Result, err := c.callContractFn("token1", pool, parsed, nil)
	if err != nil {
		return "", "", err
	}
	return ethAddrOf(t0Result[0].(common.Address)), ethAddrOf(t1Result[0].(common.Address)), nil
}
