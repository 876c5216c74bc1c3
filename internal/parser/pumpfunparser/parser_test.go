package pumpfunparser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/subhdotsol/Indexer-with-benifit/internal/domain"
)

func testAccountKeys() []string {
	keys := make([]string, 12)
	keys[mintAccountIndex] = "MintAddr1111111111111111111111111111111111"
	keys[bondingCurveAccountIndex] = "CurveAddr111111111111111111111111111111111"
	keys[userAccountIndex] = "UserAddr1111111111111111111111111111111111"
	return keys
}

func TestParserDecodesBuy(t *testing.T) {
	tx := &domain.RawTransaction{
		Signature:   "sig1",
		Slot:        5,
		AccountKeys: testAccountKeys(),
		Logs: []string{
			"Program " + ProgramID + " invoke [1]",
			"Program log: Instruction: Buy",
			"Program log: sol_amount=1000000",
			"Program log: token_amount=2000000",
			"Program " + ProgramID + " success",
		},
	}

	events, ok := New().Parse(tx)
	require.True(t, ok)
	require.Len(t, events, 1)

	swap := events[0].PumpFunSwap
	require.True(t, swap.IsBuy)
	require.Equal(t, uint64(1000000), swap.SolAmount)
	require.Equal(t, uint64(2000000), swap.TokenAmount)
	require.Equal(t, "MintAddr1111111111111111111111111111111111", swap.Mint)
	require.Equal(t, "CurveAddr111111111111111111111111111111111", swap.BondingCurve)
	require.Equal(t, "UserAddr1111111111111111111111111111111111", swap.Signer)
}

func TestParserDecodesSell(t *testing.T) {
	tx := &domain.RawTransaction{
		AccountKeys: testAccountKeys(),
		Logs: []string{
			"Program " + ProgramID + " invoke [1]",
			"Program log: Instruction: Sell",
			"Program " + ProgramID + " success",
		},
	}

	events, ok := New().Parse(tx)
	require.True(t, ok)
	require.False(t, events[0].PumpFunSwap.IsBuy)
}

func TestParserIgnoresLogsOutsideInvocationScope(t *testing.T) {
	tx := &domain.RawTransaction{
		Logs: []string{"Program log: Instruction: Buy"},
	}
	_, ok := New().Parse(tx)
	require.False(t, ok)
}
