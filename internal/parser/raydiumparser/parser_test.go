package raydiumparser

import (
	"encoding/base64"
	"encoding/binary"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/require"

	"github.com/subhdotsol/Indexer-with-benifit/internal/domain"
)

func buildRayLog(disc byte, inputMint, outputMint string, amountIn, amountOut uint64) string {
	data := make([]byte, swapPayloadLen)
	data[0] = disc
	if inputMint != "" {
		copy(data[33:65], mustDecodeBase58(inputMint))
	}
	if outputMint != "" {
		copy(data[65:97], mustDecodeBase58(outputMint))
	}
	binary.LittleEndian.PutUint64(data[97:105], amountIn)
	binary.LittleEndian.PutUint64(data[105:113], amountOut)
	return "Program log: ray_log: " + base64.StdEncoding.EncodeToString(data)
}

func mustDecodeBase58(s string) []byte {
	b, err := base58.Decode(s)
	if err != nil {
		panic(err)
	}
	return b
}

func TestParserDecodesSwap(t *testing.T) {
	const wsol = "So11111111111111111111111111111111111111112"
	const usdc = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"

	accountKeys := make([]string, 18)
	accountKeys[ammIDAccountIndex] = "PoolAddr111111111111111111111111111111111"
	accountKeys[ownerAccountIndex] = "OwnerAddr11111111111111111111111111111111"

	tx := &domain.RawTransaction{
		Signature:   "sig1",
		Slot:        10,
		AccountKeys: accountKeys,
		Logs: []string{
			"Program " + ProgramID + " invoke [1]",
			buildRayLog(0x09, wsol, usdc, 1_000_000, 500_000),
			"Program " + ProgramID + " success",
		},
	}

	p := New()
	events, ok := p.Parse(tx)
	require.True(t, ok)
	require.Len(t, events, 1)

	swap := events[0].RaydiumSwap
	require.Equal(t, "PoolAddr111111111111111111111111111111111", swap.AMMPool)
	require.Equal(t, "OwnerAddr11111111111111111111111111111111", swap.Signer)
	require.Equal(t, uint64(1_000_000), swap.AmountIn)
	require.Equal(t, uint64(500_000), swap.AmountReceived)
	require.Equal(t, wsol, swap.MintSource)
	require.Equal(t, usdc, swap.MintDestination)
	require.Equal(t, 1, events[0].RawLogIndex)
}

func TestParserRecognizesNonSwapDiscriminatorWithoutEvents(t *testing.T) {
	tx := &domain.RawTransaction{
		Logs: []string{buildRayLog(0x03, "", "", 0, 0)},
	}
	events, ok := New().Parse(tx)
	require.True(t, ok)
	require.Empty(t, events)
}

func TestParserIgnoresUnrelatedLogs(t *testing.T) {
	tx := &domain.RawTransaction{Logs: []string{"Program log: nothing to see here"}}
	_, ok := New().Parse(tx)
	require.False(t, ok)
}
