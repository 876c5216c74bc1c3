// Package splparser decodes SPL Token Transfer and TransferChecked
// instructions. Unlike the ray_log and pump.fun decoders, the token
// program does not emit a custom log line carrying the amount, so this
// decoder reads the instruction's own data bytes instead of scanning
// logs — the same kind of fixed-offset binary layout the ray_log
// decoder uses, just sourced from instruction data rather than program
// logs.
package splparser

import (
	"encoding/binary"

	"github.com/subhdotsol/Indexer-with-benifit/internal/domain"
)

// ProgramID is the SPL Token program address.
const ProgramID = "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"

const (
	instructionTransfer        byte = 3
	instructionTransferChecked byte = 12
)

// Parser implements parser.Parser for SPL Token transfers.
type Parser struct{}

// New returns a ready-to-use SPL Token transfer parser.
func New() *Parser { return &Parser{} }

func (*Parser) Name() string { return "spl-token" }

func (p *Parser) Parse(tx *domain.RawTransaction) ([]domain.TypedEvent, bool) {
	var events []domain.TypedEvent
	recognized := false

	for i, ix := range tx.Instructions {
		if ix.ProgramID != ProgramID {
			continue
		}
		// The transaction touches the token program even if this
		// particular instruction is an opcode we don't decode.
		recognized = true

		transfer, ok := decodeTransfer(tx, ix)
		if !ok {
			continue
		}

		events = append(events, domain.TypedEvent{
			Kind:          domain.KindTokenTransfer,
			RawLogIndex:   i,
			TokenTransfer: transfer,
		})
	}

	return events, recognized
}

func decodeTransfer(tx *domain.RawTransaction, ix domain.CompiledInstruction) (*domain.TokenTransfer, bool) {
	if len(ix.Data) < 1 {
		return nil, false
	}

	switch ix.Data[0] {
	case instructionTransfer:
		// Accounts: source, destination, authority.
		if len(ix.Data) < 9 || len(ix.Accounts) < 2 {
			return nil, false
		}
		amount := binary.LittleEndian.Uint64(ix.Data[1:9])
		return &domain.TokenTransfer{
			Signature: tx.Signature,
			Slot:      tx.Slot,
			From:      ix.Accounts[0],
			To:        ix.Accounts[1],
			Amount:    amount,
		}, true

	case instructionTransferChecked:
		// Accounts: source, mint, destination, authority.
		if len(ix.Data) < 9 || len(ix.Accounts) < 3 {
			return nil, false
		}
		amount := binary.LittleEndian.Uint64(ix.Data[1:9])
		mint := ix.Accounts[1]
		return &domain.TokenTransfer{
			Signature: tx.Signature,
			Slot:      tx.Slot,
			From:      ix.Accounts[0],
			To:        ix.Accounts[2],
			Amount:    amount,
			Mint:      &mint,
		}, true

	default:
		return nil, false
	}
}
