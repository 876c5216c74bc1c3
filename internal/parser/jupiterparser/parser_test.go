package jupiterparser

import (
	"encoding/base64"
	"encoding/binary"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/require"

	"github.com/subhdotsol/Indexer-with-benifit/internal/domain"
)

func buildSwapEventLog(amm, inputMint, outputMint string, amountIn, amountOut uint64) string {
	data := make([]byte, swapEventLen)
	// discriminator bytes are opaque to the decoder; leave zeroed.
	ammBytes, _ := base58.Decode(amm)
	inBytes, _ := base58.Decode(inputMint)
	outBytes, _ := base58.Decode(outputMint)
	copy(data[8:40], ammBytes)
	copy(data[40:72], inBytes)
	copy(data[72:104], outBytes)
	binary.LittleEndian.PutUint64(data[104:112], amountIn)
	binary.LittleEndian.PutUint64(data[112:120], amountOut)
	return "Program data: " + base64.StdEncoding.EncodeToString(data)
}

func TestParserDecodesSwapEvent(t *testing.T) {
	const wsol = "So11111111111111111111111111111111111111112"
	const usdc = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
	const amm = "PoolAddr111111111111111111111111111111111"

	tx := &domain.RawTransaction{
		Signature:   "sig1",
		Slot:        3,
		AccountKeys: []string{"Signer1111111111111111111111111111111111111"},
		Logs: []string{
			"Program " + ProgramID + " invoke [1]",
			buildSwapEventLog(amm, wsol, usdc, 1000, 2000),
			"Program " + ProgramID + " success",
		},
	}

	events, ok := New().Parse(tx)
	require.True(t, ok)
	require.Len(t, events, 1)

	swap := events[0].JupiterSwap
	require.Equal(t, "Signer1111111111111111111111111111111111111", swap.Signer)
	require.Equal(t, wsol, swap.MintIn)
	require.Equal(t, usdc, swap.MintOut)
	require.Equal(t, uint64(1000), swap.AmountIn)
	require.Equal(t, uint64(2000), swap.AmountOut)
}

func TestParserIgnoresTransactionsWithoutJupiterInvocation(t *testing.T) {
	tx := &domain.RawTransaction{Logs: []string{"Program log: unrelated"}}
	_, ok := New().Parse(tx)
	require.False(t, ok)
}
