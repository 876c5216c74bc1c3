// Package raydiumparser decodes Raydium AMM v4 swap instructions from a
// transaction's ray_log program output: the base64 payload behind each
// "ray_log:" line carries a one-byte discriminator followed by
// little-endian amounts and the source/destination mints at fixed
// offsets.
package raydiumparser

import (
	"encoding/base64"
	"encoding/binary"
	"regexp"

	"github.com/subhdotsol/Indexer-with-benifit/internal/domain"
	"github.com/subhdotsol/Indexer-with-benifit/internal/idcodec"
)

// ProgramID is the Raydium AMM v4 program address.
const ProgramID = "675kPX9MHTjS2zt1qfr1NYHuzeLXfQM9H24wFSUt1Mp8"

// ammIDAccountIndex is where the pool address sits in a Raydium swap
// instruction's account list.
const ammIDAccountIndex = 1

// ownerAccountIndex is where the transaction signer sits in a Raydium
// swapBaseIn/swapBaseOut account list.
const ownerAccountIndex = 17

var rayLogPattern = regexp.MustCompile(`ray_log: ([A-Za-z0-9+/=]+)`)

// swapPayloadLen is discriminator(1) + ammId(32) + inputMint(32) +
// outputMint(32) + amountIn(8) + amountOut(8).
const swapPayloadLen = 1 + 32 + 32 + 32 + 8 + 8

// Parser implements parser.Parser for Raydium AMM v4 swaps.
type Parser struct{}

// New returns a ready-to-use Raydium parser.
func New() *Parser { return &Parser{} }

func (*Parser) Name() string { return "raydium" }

// Parse scans tx.Logs for ray_log entries carrying a swap discriminator
// and turns each into a domain.RaydiumSwap.
func (p *Parser) Parse(tx *domain.RawTransaction) ([]domain.TypedEvent, bool) {
	var events []domain.TypedEvent
	recognized := false

	for i, line := range tx.Logs {
		match := rayLogPattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		// A ray_log line means Raydium ran, whether or not this entry
		// is a swap we decode.
		recognized = true

		data, err := base64.StdEncoding.DecodeString(match[1])
		if err != nil || len(data) < 1 {
			continue
		}
		if !isSwapDiscriminator(data[0]) {
			continue
		}
		if len(data) < swapPayloadLen {
			continue
		}

		swap := decodeSwap(tx, data)
		events = append(events, domain.TypedEvent{
			Kind:        domain.KindRaydiumSwap,
			RawLogIndex: i,
			RaydiumSwap: swap,
		})
	}

	return events, recognized
}

func isSwapDiscriminator(disc byte) bool {
	switch disc {
	case 0x09, 0x0b, 0x0d, 0x0e:
		return true
	default:
		return false
	}
}

func decodeSwap(tx *domain.RawTransaction, data []byte) *domain.RaydiumSwap {
	inputMint := idcodec.Encode(data[33:65])
	outputMint := idcodec.Encode(data[65:97])
	amountIn := binary.LittleEndian.Uint64(data[97:105])
	amountOut := binary.LittleEndian.Uint64(data[105:113])

	swap := &domain.RaydiumSwap{
		Signature:       tx.Signature,
		Slot:            tx.Slot,
		AmountIn:        amountIn,
		AmountReceived:  amountOut,
		MintSource:      inputMint,
		MintDestination: outputMint,
	}

	if len(tx.AccountKeys) > ammIDAccountIndex {
		swap.AMMPool = tx.AccountKeys[ammIDAccountIndex]
	}
	if len(tx.AccountKeys) > ownerAccountIndex {
		swap.Signer = tx.AccountKeys[ownerAccountIndex]
	}

	return swap
}
