package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/subhdotsol/Indexer-with-benifit/internal/domain"
)

func swapEvent(sig string) domain.TypedEvent {
	return domain.TypedEvent{
		Kind:        domain.KindRaydiumSwap,
		RaydiumSwap: &domain.RaydiumSwap{Signature: sig, Slot: 1},
	}
}

func TestSaveOneThenGet(t *testing.T) {
	s := New()
	require.NoError(t, s.SaveOne(context.Background(), swapEvent("sig1")))

	got, ok := s.Get(domain.KindRaydiumSwap, "sig1")
	require.True(t, ok)
	require.Equal(t, "sig1", got.RaydiumSwap.Signature)
	require.Equal(t, 1, s.Len())
}

func TestSaveOneDuplicateIsSilentlySkipped(t *testing.T) {
	s := New()
	require.NoError(t, s.SaveOne(context.Background(), swapEvent("sig1")))
	require.NoError(t, s.SaveOne(context.Background(), swapEvent("sig1")))
	require.Equal(t, 1, s.Len())
}

func TestSaveBatchReturnsInsertedCountExcludingDuplicates(t *testing.T) {
	s := New()
	require.NoError(t, s.SaveOne(context.Background(), swapEvent("sig1")))

	n, err := s.SaveBatch(context.Background(), []domain.TypedEvent{
		swapEvent("sig1"), // duplicate, skipped
		swapEvent("sig2"),
		swapEvent("sig3"),
	})
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Equal(t, 3, s.Len())
}

func TestSaveBatchDedupsWithinTheBatchItself(t *testing.T) {
	s := New()
	n, err := s.SaveBatch(context.Background(), []domain.TypedEvent{
		swapEvent("sig1"),
		swapEvent("sig1"),
	})
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, 1, s.Len())
}
