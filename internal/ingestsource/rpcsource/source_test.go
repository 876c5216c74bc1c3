package rpcsource

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func fakeRPCServer(t *testing.T, handlers map[string]func(params json.RawMessage) interface{}) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		h, ok := handlers[req.Method]
		require.True(t, ok, "unexpected method %s", req.Method)

		raw, err := json.Marshal(req.Params)
		require.NoError(t, err)

		result := h(raw)
		resultJSON, err := json.Marshal(result)
		require.NoError(t, err)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"jsonrpc": "2.0",
			"id":      req.ID,
			"result":  json.RawMessage(resultJSON),
		})
	}))
}

func TestSourceFetchesSignatureThenTransaction(t *testing.T) {
	calls := 0
	srv := fakeRPCServer(t, map[string]func(json.RawMessage) interface{}{
		"getSignaturesForAddress": func(json.RawMessage) interface{} {
			calls++
			if calls > 1 {
				return []signatureInfo{}
			}
			return []signatureInfo{{Signature: "sig-abc"}}
		},
		"getTransaction": func(json.RawMessage) interface{} {
			return txResult{
				Slot: 42,
				Meta: &txMeta{Err: nil, LogMessages: []string{"Program log: hello"}},
				Transaction: json.RawMessage(`{"message":{"accountKeys":["AcctOne","AcctTwo"]}}`),
			}
		},
	})
	defer srv.Close()

	s := New(srv.URL, "ProgramAddr", WithPollInterval(10*time.Millisecond))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	tx, err := s.Next(ctx)
	require.NoError(t, err)
	require.Equal(t, "sig-abc", tx.Signature)
	require.Equal(t, uint64(42), tx.Slot)
	require.True(t, tx.Success)
	require.Equal(t, []string{"Program log: hello"}, tx.Logs)
	require.Equal(t, []string{"AcctOne", "AcctTwo"}, tx.AccountKeys)
}

func TestSourcePollsUntilContextCancelled(t *testing.T) {
	srv := fakeRPCServer(t, map[string]func(json.RawMessage) interface{}{
		"getSignaturesForAddress": func(json.RawMessage) interface{} {
			return []signatureInfo{}
		},
	})
	defer srv.Close()

	s := New(srv.URL, "ProgramAddr", WithPollInterval(5*time.Millisecond))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err := s.Next(ctx)
	require.Error(t, err)
}
