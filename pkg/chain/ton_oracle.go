package chain

import (
	"context"
	"log"
	"math/big"
	"strconv"
	"sync"
	"time"

	"Go-Course-Market/internal/utils"

	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/liteclient"
	"github.com/xssnick/tonutils-go/ton"
	"github.com/xssnick/tonutils-go/tvm/cell"
)

const (
	mainnetConfigURL = "https://ton.org/global.config.json"
	testnetConfigURL = "https://ton.org/testnet-global.config.json"

	defaultTimeout = 10 * time.Second
)

// tonOracle reads course entitlement from the marketplace contract on TON.
type tonOracle struct {
	testnet         bool
	contractAddress string
	timeout         time.Duration

	mu     sync.Mutex
	client ton.APIClientWrapped
}

func NewTonOracle(testnet bool, contractAddress string, timeout time.Duration) Oracle {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &tonOracle{
		testnet:         testnet,
		contractAddress: contractAddress,
		timeout:         timeout,
	}
}

// NewOracleFromConfig builds the configured oracle, or a disabled one when the
// chain integration is turned off.
func NewOracleFromConfig() Oracle {
	if utils.GetConfig("TON_ENABLED") != "true" || utils.GetConfig("TON_MARKET_CONTRACT") == "" {
		return NewDisabledOracle()
	}

	timeout := defaultTimeout
	if raw := utils.GetConfig("TON_TIMEOUT_SECONDS"); raw != "" {
		if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
			timeout = time.Duration(secs) * time.Second
		}
	}

	return NewTonOracle(
		utils.GetConfig("TON_TESTNET") == "true",
		utils.GetConfig("TON_MARKET_CONTRACT"),
		timeout,
	)
}

// connect establishes the lite client connection lazily on first use.
func (o *tonOracle) connect(ctx context.Context) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.client != nil {
		return nil
	}

	pool := liteclient.NewConnectionPool()

	configURL := mainnetConfigURL
	if o.testnet {
		configURL = testnetConfigURL
	}

	if err := pool.AddConnectionsFromConfigUrl(ctx, configURL); err != nil {
		return err
	}

	o.client = ton.NewAPIClient(pool).WithRetry()
	return nil
}

func (o *tonOracle) HasOnChainAccess(ctx context.Context, courseExternalID int64, buyerAddress string) bool {
	res, err := o.runGetMethod(ctx, "has_course_access", func(addr *address.Address) []any {
		return []any{big.NewInt(courseExternalID), addrSlice(addr)}
	}, buyerAddress)
	if err != nil {
		log.Printf("[ton] has_course_access failed for course %d: %v", courseExternalID, err)
		return false
	}
	return res
}

func (o *tonOracle) IsRegisteredCreator(ctx context.Context, addr string) bool {
	res, err := o.runGetMethod(ctx, "is_registered_creator", func(a *address.Address) []any {
		return []any{addrSlice(a)}
	}, addr)
	if err != nil {
		log.Printf("[ton] is_registered_creator failed: %v", err)
		return false
	}
	return res
}

// runGetMethod executes a boolean getter on the marketplace contract with a
// bounded timeout.
func (o *tonOracle) runGetMethod(ctx context.Context, method string, params func(*address.Address) []any, rawAddr string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	if err := o.connect(ctx); err != nil {
		return false, err
	}

	contractAddr, err := address.ParseAddr(o.contractAddress)
	if err != nil {
		return false, err
	}

	callerAddr, err := address.ParseAddr(rawAddr)
	if err != nil {
		return false, err
	}

	master, err := o.client.CurrentMasterchainInfo(ctx)
	if err != nil {
		return false, err
	}

	result, err := o.client.RunGetMethod(ctx, master, contractAddr, method, params(callerAddr)...)
	if err != nil {
		return false, err
	}

	value, err := result.Int(0)
	if err != nil {
		return false, err
	}

	return value.Sign() != 0, nil
}

func addrSlice(a *address.Address) *cell.Slice {
	return cell.BeginCell().MustStoreAddr(a).EndCell().BeginParse()
}
