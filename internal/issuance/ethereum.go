package issuance

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/osse101/EcoHunt_Go/internal/domain"
	"github.com/osse101/EcoHunt_Go/internal/logger"
)

// erc20ABI holds the two ERC-20 methods the issuer needs
const erc20ABI = `[
  {"type":"function","name":"transfer","stateMutability":"nonpayable",
   "inputs":[{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],
   "outputs":[{"name":"","type":"bool"}]},
  {"type":"function","name":"balanceOf","stateMutability":"view",
   "inputs":[{"name":"account","type":"address"}],
   "outputs":[{"name":"","type":"uint256"}]}
]`

// Backend is the chain access the issuer needs; *ethclient.Client satisfies it
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	ChainID(ctx context.Context) (*big.Int, error)
}

// EthereumConfig configures an EthereumIssuer
type EthereumConfig struct {
	RPCURL          string
	ChainID         int64 // 0 asks the node
	PrivateKey      string
	ContractAddress string
	Decimals        int
}

// EthereumIssuer pays rewards with ERC-20 transfers from a treasury key
type EthereumIssuer struct {
	backend  Backend
	contract *bind.BoundContract
	address  common.Address
	abi      abi.ABI
	signer   *bind.TransactOpts
	decimals int
}

// NewEthereumIssuer dials the node and prepares the treasury signer
func NewEthereumIssuer(ctx context.Context, cfg EthereumConfig) (*EthereumIssuer, error) {
	client, err := ethclient.DialContext(ctx, cfg.RPCURL)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgDial, err)
	}
	return NewEthereumIssuerWithBackend(ctx, client, cfg)
}

// NewEthereumIssuerWithBackend builds an issuer over an existing backend
func NewEthereumIssuerWithBackend(ctx context.Context, backend Backend, cfg EthereumConfig) (*EthereumIssuer, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf(ErrMsgPrivateKey, err)
	}
	if !common.IsHexAddress(cfg.ContractAddress) {
		return nil, fmt.Errorf("%w: "+ErrMsgBadAddress, domain.ErrInvalidInput, cfg.ContractAddress)
	}

	chainID := big.NewInt(cfg.ChainID)
	if cfg.ChainID == 0 {
		if chainID, err = backend.ChainID(ctx); err != nil {
			return nil, fmt.Errorf(ErrMsgChainID, err)
		}
	}

	signer, err := newSigner(key, chainID)
	if err != nil {
		return nil, err
	}

	parsed, err := abi.JSON(strings.NewReader(erc20ABI))
	if err != nil {
		return nil, fmt.Errorf(ErrMsgParseABI, err)
	}

	address := common.HexToAddress(cfg.ContractAddress)
	return &EthereumIssuer{
		backend:  backend,
		contract: bind.NewBoundContract(address, parsed, backend, backend, backend),
		address:  address,
		abi:      parsed,
		signer:   signer,
		decimals: cfg.Decimals,
	}, nil
}

func newSigner(key *ecdsa.PrivateKey, chainID *big.Int) (*bind.TransactOpts, error) {
	opts, err := bind.NewKeyedTransactorWithChainID(key, chainID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgTransactor, err)
	}
	return opts, nil
}

// Issue transfers req.Amount tokens and waits for the receipt. The receipt
// always describes the outcome; the error carries the failure class.
func (e *EthereumIssuer) Issue(ctx context.Context, req domain.IssueRequest) (domain.IssuanceReceipt, error) {
	log := logger.FromContext(ctx)
	fail := func(err error) (domain.IssuanceReceipt, error) {
		log.Warn(LogMsgIssueFailed, "recipient", req.Recipient, "error", err)
		return domain.IssuanceReceipt{Status: domain.IssuanceFailed, Error: err.Error()}, err
	}

	if err := ValidateRequest(req); err != nil {
		return fail(err)
	}
	recipient := common.HexToAddress(req.Recipient)
	amount := ToBaseUnits(req.Amount, e.decimals)

	balance, err := e.balanceOf(ctx, e.signer.From)
	if err != nil {
		return fail(fmt.Errorf("%w: balanceOf: %v", domain.ErrIssuanceNetwork, err))
	}
	if balance.Cmp(amount) < 0 {
		return fail(fmt.Errorf("%w: treasury holds %s, need %s", domain.ErrInsufficientFunds, balance, amount))
	}

	data, err := e.abi.Pack("transfer", recipient, amount)
	if err != nil {
		return fail(fmt.Errorf("%w: %v", domain.ErrIssuanceFailure, err))
	}
	gasPrice, err := e.backend.SuggestGasPrice(ctx)
	if err != nil {
		return fail(fmt.Errorf("%w: gas price: %v", domain.ErrIssuanceNetwork, err))
	}
	gas, err := e.backend.EstimateGas(ctx, ethereum.CallMsg{From: e.signer.From, To: &e.address, Data: data})
	if err != nil {
		gas = TransferGasLimit
	}
	fee := FormatFee(new(big.Int).Mul(gasPrice, new(big.Int).SetUint64(gas)))

	opts := *e.signer
	opts.Context = ctx
	opts.GasLimit = gas
	opts.GasPrice = gasPrice

	tx, err := e.contract.Transact(&opts, "transfer", recipient, amount)
	if err != nil {
		return fail(classifySendError(err))
	}
	log.Info(LogMsgTransferPending, "tx", tx.Hash().Hex(), "recipient", req.Recipient, "amount", req.Amount)

	mined, err := bind.WaitMined(ctx, e.backend, tx)
	if err != nil {
		receipt := domain.IssuanceReceipt{
			Status:         domain.IssuanceSubmitted,
			TransactionRef: tx.Hash().Hex(),
			EstimatedFee:   fee,
			Error:          err.Error(),
		}
		return receipt, fmt.Errorf("%w: waiting for %s: %v", domain.ErrIssuanceNetwork, tx.Hash().Hex(), err)
	}
	if mined.Status != types.ReceiptStatusSuccessful {
		err := fmt.Errorf("%w: "+ErrMsgReceiptStatus, domain.ErrIssuanceFailure, mined.Status)
		return domain.IssuanceReceipt{
			Status:         domain.IssuanceFailed,
			TransactionRef: tx.Hash().Hex(),
			EstimatedFee:   fee,
			BlockNumber:    mined.BlockNumber.Uint64(),
			Error:          err.Error(),
		}, err
	}

	log.Info(LogMsgIssued, "tx", tx.Hash().Hex(), "block", mined.BlockNumber)
	return domain.IssuanceReceipt{
		Status:         domain.IssuanceConfirmed,
		TransactionRef: tx.Hash().Hex(),
		EstimatedFee:   fee,
		Confirmed:      true,
		BlockNumber:    mined.BlockNumber.Uint64(),
	}, nil
}

func (e *EthereumIssuer) balanceOf(ctx context.Context, account common.Address) (*big.Int, error) {
	var out []interface{}
	if err := e.contract.Call(&bind.CallOpts{Context: ctx}, &out, "balanceOf", account); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, errors.New("empty balanceOf result")
	}
	balance, ok := out[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("unexpected balanceOf result %T", out[0])
	}
	return balance, nil
}

// ToBaseUnits converts a token amount to the contract's smallest unit
func ToBaseUnits(amount float64, decimals int) *big.Int {
	scaled := new(big.Float).Mul(big.NewFloat(amount), new(big.Float).SetInt(pow10(decimals)))
	out, _ := scaled.Int(nil)
	return out
}

func classifySendError(err error) error {
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "insufficient funds") {
		return fmt.Errorf("%w: %v", domain.ErrInsufficientFunds, err)
	}
	return fmt.Errorf("%w: %v", domain.ErrIssuanceNetwork, err)
}
