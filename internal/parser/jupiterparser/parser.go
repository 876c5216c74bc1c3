// Package jupiterparser decodes swaps routed through the Jupiter
// aggregator. Jupiter emits its swap event as an Anchor CPI event —
// a "Program data: <base64>" log line rather than a "Program log:"
// line — so this decoder applies the same base64-log, fixed-offset
// binary decode idiom the ray_log decoder uses (raydiumparser),
// adapted to the "Program data:" prefix and Jupiter's own field
// layout instead of Raydium's.
package jupiterparser

import (
	"encoding/base64"
	"encoding/binary"
	"regexp"
	"strings"

	"github.com/subhdotsol/Indexer-with-benifit/internal/domain"
	"github.com/subhdotsol/Indexer-with-benifit/internal/idcodec"
)

// ProgramID is Jupiter's aggregator v6 program address.
const ProgramID = "JUP6LkbZbjS1jKKwapdHNy74zcZ3tLUZoi5QNyVTaV4"

var programDataPattern = regexp.MustCompile(`Program data: ([A-Za-z0-9+/=]+)`)

// swapEventLen is discriminator(8) + amm(32) + inputMint(32) +
// outputMint(32) + inputAmount(8) + outputAmount(8).
const swapEventLen = 8 + 32 + 32 + 32 + 8 + 8

// Parser implements parser.Parser for Jupiter-routed swaps.
type Parser struct{}

// New returns a ready-to-use Jupiter parser.
func New() *Parser { return &Parser{} }

func (*Parser) Name() string { return "jupiter" }

func (p *Parser) Parse(tx *domain.RawTransaction) ([]domain.TypedEvent, bool) {
	if !mentionsJupiter(tx.Logs) {
		return nil, false
	}

	var events []domain.TypedEvent
	for i, line := range tx.Logs {
		match := programDataPattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}

		data, err := base64.StdEncoding.DecodeString(match[1])
		if err != nil || len(data) < swapEventLen {
			continue
		}

		swap := decodeSwapEvent(tx, data)
		events = append(events, domain.TypedEvent{
			Kind:        domain.KindJupiterSwap,
			RawLogIndex: i,
			JupiterSwap: swap,
		})
	}

	// The program was invoked, so the transaction is recognized even
	// when no decodable swap event was emitted.
	return events, true
}

func mentionsJupiter(logs []string) bool {
	for _, line := range logs {
		if strings.Contains(line, "Program "+ProgramID+" invoke") {
			return true
		}
	}
	return false
}

func decodeSwapEvent(tx *domain.RawTransaction, data []byte) *domain.JupiterSwap {
	amm := idcodec.Encode(data[8:40])
	inputMint := idcodec.Encode(data[40:72])
	outputMint := idcodec.Encode(data[72:104])
	amountIn := binary.LittleEndian.Uint64(data[104:112])
	amountOut := binary.LittleEndian.Uint64(data[112:120])

	var signer string
	if len(tx.AccountKeys) > 0 {
		signer = tx.AccountKeys[0]
	}

	return &domain.JupiterSwap{
		Signature: tx.Signature,
		Slot:      tx.Slot,
		Signer:    signer,
		AMMPool:   amm,
		MintIn:    inputMint,
		MintOut:   outputMint,
		AmountIn:  amountIn,
		AmountOut: amountOut,
	}
}
