// Package chain holds the JSON-RPC client for the certificate registry
// contract: anonymous reads through a public endpoint, keystore-signed
// writes, and the typed error taxonomy shared by every operation.
package chain

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/certichain/certichain/internal/config"
	"github.com/certichain/certichain/internal/logger"
	"github.com/certichain/certichain/models"
)

// ReadClient is a read-only connection to the registry contract. It is
// usable without a wallet and never caches: every lookup hits the chain.
type ReadClient struct {
	eth      *ethclient.Client
	contract *bind.BoundContract
	address  common.Address
	chainID  *big.Int
	log      *logger.Logger
}

// NewReadClient dials the configured public RPC endpoint and binds the
// registry contract.
func NewReadClient(ctx context.Context, cfg config.Chain, log *logger.Logger) (*ReadClient, error) {
	return Dial(ctx, cfg.RPCURL, common.HexToAddress(cfg.ContractAddress), log)
}

// Dial connects to an arbitrary RPC endpoint and binds the registry
// contract at the given address. It fails with [ErrNoContractCode] when the
// address holds no bytecode on that chain.
func Dial(ctx context.Context, rawURL string, contractAddr common.Address, log *logger.Logger) (*ReadClient, error) {
	eth, err := ethclient.DialContext(ctx, rawURL)
	if err != nil {
		return nil, &Error{Kind: KindConnection, Err: fmt.Errorf("dial %s: %w", rawURL, err)}
	}

	chainID, err := eth.ChainID(ctx)
	if err != nil {
		eth.Close()
		return nil, &Error{Kind: KindConnection, Err: fmt.Errorf("query chain id: %w", err)}
	}

	code, err := eth.CodeAt(ctx, contractAddr, nil)
	if err != nil {
		eth.Close()
		return nil, &Error{Kind: KindConnection, Err: fmt.Errorf("query contract code: %w", err)}
	}
	if len(code) == 0 {
		eth.Close()
		return nil, &Error{Kind: KindEnvironment, Err: ErrNoContractCode}
	}

	log.Debug().
		Str("endpoint", rawURL).
		Str("contract", contractAddr.Hex()).
		Uint64("chain_id", chainID.Uint64()).
		Msg("connected to registry contract")

	return &ReadClient{
		eth:      eth,
		contract: bind.NewBoundContract(contractAddr, registryABI, eth, eth, eth),
		address:  contractAddr,
		chainID:  chainID,
		log:      log,
	}, nil
}

// ChainID reports the chain the client is connected to.
func (c *ReadClient) ChainID() uint64 {
	return c.chainID.Uint64()
}

// ContractAddress reports the bound registry address.
func (c *ReadClient) ContractAddress() common.Address {
	return c.address
}

// Close releases the underlying RPC connection.
func (c *ReadClient) Close() {
	c.eth.Close()
}

// GetCertificate looks up a certificate by its string ID. Absent IDs are not
// an error here: the contract returns zero values and the caller decides via
// [models.Certificate.Found].
func (c *ReadClient) GetCertificate(ctx context.Context, certID string) (models.Certificate, error) {
	var out []interface{}
	err := c.contract.Call(&bind.CallOpts{Context: ctx}, &out, "getCertificate", certID)
	if err != nil {
		return models.Certificate{}, Classify(err)
	}

	cert := models.Certificate{
		ID:          certID,
		ProductName: *abi.ConvertType(out[0], new(string)).(*string),
		MfgName:     *abi.ConvertType(out[1], new(string)).(*string),
		Valid:       *abi.ConvertType(out[3], new(bool)).(*bool),
	}
	cert.MfgDate = (*abi.ConvertType(out[2], new(*big.Int)).(**big.Int)).Int64()

	return cert, nil
}

// Owner returns the single contract owner address.
func (c *ReadClient) Owner(ctx context.Context) (common.Address, error) {
	var out []interface{}
	err := c.contract.Call(&bind.CallOpts{Context: ctx}, &out, "owner")
	if err != nil {
		return common.Address{}, Classify(err)
	}
	return *abi.ConvertType(out[0], new(common.Address)).(*common.Address), nil
}

// IsAdmin reports whether an arbitrary address is on the admin roster.
func (c *ReadClient) IsAdmin(ctx context.Context, account common.Address) (bool, error) {
	var out []interface{}
	err := c.contract.Call(&bind.CallOpts{Context: ctx}, &out, "isAdmin", account)
	if err != nil {
		return false, Classify(err)
	}
	return *abi.ConvertType(out[0], new(bool)).(*bool), nil
}

// AdminInfo runs the combined role query evaluated from the caller's
// address: total admin count plus the caller's admin and owner flags.
func (c *ReadClient) AdminInfo(ctx context.Context, caller common.Address) (models.RoleInfo, error) {
	var out []interface{}
	err := c.contract.Call(&bind.CallOpts{Context: ctx, From: caller}, &out, "getAllAdminInfo")
	if err != nil {
		return models.RoleInfo{}, Classify(err)
	}

	total := *abi.ConvertType(out[0], new(*big.Int)).(**big.Int)
	return models.RoleInfo{
		TotalAdmins: total.Uint64(),
		IsAdmin:     *abi.ConvertType(out[1], new(bool)).(*bool),
		IsOwner:     *abi.ConvertType(out[2], new(bool)).(*bool),
	}, nil
}
