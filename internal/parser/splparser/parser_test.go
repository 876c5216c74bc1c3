package splparser

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/subhdotsol/Indexer-with-benifit/internal/domain"
)

func transferData(amount uint64) []byte {
	b := make([]byte, 9)
	b[0] = instructionTransfer
	binary.LittleEndian.PutUint64(b[1:9], amount)
	return b
}

func transferCheckedData(amount uint64, decimals byte) []byte {
	b := make([]byte, 10)
	b[0] = instructionTransferChecked
	binary.LittleEndian.PutUint64(b[1:9], amount)
	b[9] = decimals
	return b
}

func TestParserDecodesTransfer(t *testing.T) {
	tx := &domain.RawTransaction{
		Signature: "sig1",
		Slot:      7,
		Instructions: []domain.CompiledInstruction{
			{ProgramID: ProgramID, Accounts: []string{"Source1", "Dest1", "Authority1"}, Data: transferData(42)},
		},
	}

	events, ok := New().Parse(tx)
	require.True(t, ok)
	require.Len(t, events, 1)

	tr := events[0].TokenTransfer
	require.Equal(t, "Source1", tr.From)
	require.Equal(t, "Dest1", tr.To)
	require.Equal(t, uint64(42), tr.Amount)
	require.Nil(t, tr.Mint)
}

func TestParserDecodesTransferChecked(t *testing.T) {
	tx := &domain.RawTransaction{
		Instructions: []domain.CompiledInstruction{
			{ProgramID: ProgramID, Accounts: []string{"Source1", "Mint1", "Dest1", "Authority1"}, Data: transferCheckedData(99, 6)},
		},
	}

	events, ok := New().Parse(tx)
	require.True(t, ok)
	require.Equal(t, "Source1", events[0].TokenTransfer.From)
	require.Equal(t, "Dest1", events[0].TokenTransfer.To)
	require.NotNil(t, events[0].TokenTransfer.Mint)
	require.Equal(t, "Mint1", *events[0].TokenTransfer.Mint)
}

func TestParserRecognizesUnsupportedOpcodeWithoutEvents(t *testing.T) {
	tx := &domain.RawTransaction{
		Instructions: []domain.CompiledInstruction{
			{ProgramID: ProgramID, Accounts: []string{"A", "B"}, Data: []byte{7}}, // MintTo, not a transfer
		},
	}
	events, ok := New().Parse(tx)
	require.True(t, ok)
	require.Empty(t, events)
}

func TestParserIgnoresOtherPrograms(t *testing.T) {
	tx := &domain.RawTransaction{
		Instructions: []domain.CompiledInstruction{
			{ProgramID: "SomeOtherProgram", Data: transferData(1)},
		},
	}
	_, ok := New().Parse(tx)
	require.False(t, ok)
}
