package filesource

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/subhdotsol/Indexer-with-benifit/internal/ingestsource"
)

func TestSourceReplaysInOrder(t *testing.T) {
	data := `{"signature":"sig1","slot":1,"success":true}
{"signature":"sig2","slot":2,"success":true}
`
	s := New(strings.NewReader(data))

	tx1, err := s.Next(context.Background())
	require.NoError(t, err)
	require.Equal(t, "sig1", tx1.Signature)

	tx2, err := s.Next(context.Background())
	require.NoError(t, err)
	require.Equal(t, uint64(2), tx2.Slot)

	_, err = s.Next(context.Background())
	require.True(t, errors.Is(err, ingestsource.ErrSourceExhausted))
}

func TestSourceEmptyIsImmediatelyExhausted(t *testing.T) {
	s := New(strings.NewReader(""))
	_, err := s.Next(context.Background())
	require.True(t, errors.Is(err, ingestsource.ErrSourceExhausted))
}

func TestSourceMalformedLineIsTransient(t *testing.T) {
	s := New(strings.NewReader("not json\n"))
	_, err := s.Next(context.Background())
	require.True(t, errors.Is(err, ingestsource.ErrTransientSource))
}
