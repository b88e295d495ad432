package issuance

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/osse101/EcoHunt_Go/internal/domain"
	"github.com/osse101/EcoHunt_Go/internal/logger"
)

// Issuer transfers reward tokens to a user's wallet
type Issuer interface {
	Issue(ctx context.Context, req domain.IssueRequest) (domain.IssuanceReceipt, error)
}

// Transfer gas and fee presentation
const (
	TransferGasLimit  = 65_000
	SimulatedGasPrice = 1_000_000_000 // 1 gwei
	feeDecimals       = 18
)

// Log messages
const (
	LogMsgIssued          = "Reward issued"
	LogMsgIssueFailed     = "Reward issuance failed"
	LogMsgTransferPending = "Reward transfer sent"
)

// Error messages
const (
	ErrMsgNonPositiveAmount = "amount must be positive"
	ErrMsgBadAddress        = "not a hex address: %q"
	ErrMsgReceiptStatus     = "transfer reverted with status %d"
	ErrMsgPrivateKey        = "invalid issuer private key: %w"
	ErrMsgDial              = "failed to connect to ethereum node: %w"
	ErrMsgChainID           = "failed to read chain id: %w"
	ErrMsgParseABI          = "failed to parse token ABI: %w"
	ErrMsgTransactor        = "failed to create transactor: %w"
)

// ValidateRequest checks the recipient and amount of a request
func ValidateRequest(req domain.IssueRequest) error {
	if !common.IsHexAddress(req.Recipient) {
		return fmt.Errorf("%w: "+ErrMsgBadAddress, domain.ErrInvalidRecipient, req.Recipient)
	}
	if !(req.Amount > 0) {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgNonPositiveAmount)
	}
	return nil
}

// FormatFee renders a wei amount as ETH with up to six decimals
func FormatFee(wei *big.Int) string {
	eth := new(big.Float).Quo(new(big.Float).SetInt(wei), new(big.Float).SetInt(pow10(feeDecimals)))
	s := strings.TrimRight(strings.TrimRight(eth.Text('f', 6), "0"), ".")
	if s == "" {
		s = "0"
	}
	return s + " ETH"
}

// SimulatedIssuer confirms every valid transfer without touching a chain.
// Transaction references are deterministic per request.
type SimulatedIssuer struct {
	block atomic.Uint64
}

// NewSimulatedIssuer creates a SimulatedIssuer starting at startBlock
func NewSimulatedIssuer(startBlock uint64) *SimulatedIssuer {
	s := &SimulatedIssuer{}
	s.block.Store(startBlock)
	return s
}

// Issue validates req and returns a confirmed receipt
func (s *SimulatedIssuer) Issue(ctx context.Context, req domain.IssueRequest) (domain.IssuanceReceipt, error) {
	log := logger.FromContext(ctx)
	if err := ValidateRequest(req); err != nil {
		log.Warn(LogMsgIssueFailed, "error", err)
		return domain.IssuanceReceipt{Status: domain.IssuanceFailed, Error: err.Error()}, err
	}
	if err := ctx.Err(); err != nil {
		wrapped := fmt.Errorf("%w: %v", domain.ErrIssuanceNetwork, err)
		return domain.IssuanceReceipt{Status: domain.IssuanceFailed, Error: wrapped.Error()}, wrapped
	}

	payload := fmt.Sprintf("%s|%s|%.8f|%s", req.ProcessID, strings.ToLower(req.Recipient), req.Amount, req.Tier)
	fee := new(big.Int).Mul(big.NewInt(TransferGasLimit), big.NewInt(SimulatedGasPrice))

	receipt := domain.IssuanceReceipt{
		Status:         domain.IssuanceConfirmed,
		TransactionRef: crypto.Keccak256Hash([]byte(payload)).Hex(),
		EstimatedFee:   FormatFee(fee),
		Confirmed:      true,
		BlockNumber:    s.block.Add(1),
	}
	log.Info(LogMsgIssued,
		"recipient", req.Recipient,
		"amount", req.Amount,
		"tx", receipt.TransactionRef)
	return receipt, nil
}

func pow10(n int) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
}
