package loader

import (
	"context"
	"math/big"
	"sync"

	"github.com/ammcap/Ammlytics/types"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/rs/zerolog/log"
)

// OnChainLoader is the chain data source: contract reads, log scans, and
// block lookups over a single RPC endpoint.
type OnChainLoader struct {
	Cfg ChainConfig

	dialOnce sync.Once
	client   *ethclient.Client
	dialErr  error

	nftAbi      abi.ABI
	slotAbi     abi.ABI
	reservesAbi abi.ABI
	voterAbi    abi.ABI
	gaugeAbi    abi.ABI
	tokenAbi    abi.ABI
}

func NewOnChainLoader(cfg ChainConfig) *OnChainLoader {
	return &OnChainLoader{
		Cfg:         cfg,
		nftAbi:      mustParseAbi("nftManager", nftManagerABI),
		slotAbi:     mustParseAbi("poolSlot", poolSlotABI),
		reservesAbi: mustParseAbi("poolReserves", poolReservesABI),
		voterAbi:    mustParseAbi("voter", voterABI),
		gaugeAbi:    mustParseAbi("gauge", gaugeABI),
		tokenAbi:    mustParseAbi("erc20", erc20ABI),
	}
}

func (c *OnChainLoader) ethClient() (*ethclient.Client, error) {
	c.dialOnce.Do(func() {
		c.client, c.dialErr = ethclient.DialContext(context.Background(), c.Cfg.RPCEndpoint)
		if c.dialErr != nil {
			log.Warn().Err(c.dialErr).Str("rpc", c.Cfg.RPCEndpoint).Msg("RPC connection error")
		}
	})
	if c.dialErr != nil {
		return nil, types.Fail(types.ConnectivityFailure, c.dialErr)
	}
	return c.client, nil
}

// callContractFn packs, calls, and unpacks a view function at the given
// block (nil for latest).
func (c *OnChainLoader) callContractFn(methodName string, contract types.EthAddress,
	parsed abi.ABI, block *big.Int, args ...interface{}) ([]interface{}, error) {

	callData, err := parsed.Pack(methodName, args...)
	if err != nil {
		return nil, types.Failf(types.DataUnavailable, "pack %s: %w", methodName, err)
	}

	result, err := c.contractDataCall(contract, callData, block)
	if err != nil {
		return nil, err
	}

	unparsed, err := parsed.Unpack(methodName, result)
	if err != nil || len(unparsed) == 0 {
		return nil, types.Failf(types.DataUnavailable, "unpack %s result: %w", methodName, err)
	}
	return unparsed, nil
}

func (c *OnChainLoader) contractDataCall(contract types.EthAddress, data []byte, block *big.Int) ([]byte, error) {
	client, err := c.ethClient()
	if err != nil {
		return nil, err
	}

	addr := common.HexToAddress(string(contract))
	msg := ethereum.CallMsg{
		To:   &addr,
		Data: data,
	}

	result, err := client.CallContract(context.Background(), msg, block)
	if err != nil {
		return nil, types.Fail(types.DataUnavailable, err)
	}
	return result, nil
}

func addrOf(a types.EthAddress) common.Address {
	return common.HexToAddress(string(a))
}

func ethAddrOf(a common.Address) types.EthAddress {
	return types.ValidateEthAddr(a.Hex())
}
