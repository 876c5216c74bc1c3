// Package rpcsource polls Solana JSON-RPC for committed transactions
// touching one program address. It is the SOURCE_TYPE=rpc driver,
// used for historical backfill and as a fallback when no geyser feed is
// available.
package rpcsource

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/subhdotsol/Indexer-with-benifit/internal/domain"
	"github.com/subhdotsol/Indexer-with-benifit/internal/idcodec"
	"github.com/subhdotsol/Indexer-with-benifit/internal/ingestsource"
)

// DefaultPollInterval is how long Next sleeps between empty
// getSignaturesForAddress pages before retrying.
const DefaultPollInterval = 2 * time.Second

// DefaultPageLimit bounds how many signatures are requested per page.
const DefaultPageLimit = 100

// Source polls one Solana program address for new signatures and fetches
// each transaction in turn. Concurrent Next calls are serialized by an
// internal mutex.
type Source struct {
	endpoint     string
	address      string
	pollInterval time.Duration
	pageLimit    int
	client       *http.Client
	requestID    atomic.Uint64

	mu      sync.Mutex
	pending []string // signatures fetched but not yet turned into transactions
	before  string   // pagination cursor: fetch older than this signature
}

// Option configures Source.
type Option func(*Source)

// WithPollInterval overrides DefaultPollInterval.
func WithPollInterval(d time.Duration) Option {
	return func(s *Source) { s.pollInterval = d }
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Source) { s.client = c }
}

// New creates a polling source against endpoint for address.
func New(endpoint, address string, opts ...Option) *Source {
	s := &Source{
		endpoint:     endpoint,
		address:      address,
		pollInterval: DefaultPollInterval,
		pageLimit:    DefaultPageLimit,
		client:       &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Next returns the next transaction touching address, paging backwards
// from the newest signature and polling for more once a page runs dry.
// Next never returns ErrSourceExhausted on its own: a polling backfill
// source only ends when the caller's context is cancelled.
func (s *Source) Next(ctx context.Context) (*domain.RawTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for {
		if len(s.pending) > 0 {
			sig := s.pending[0]
			s.pending = s.pending[1:]
			tx, err := s.getTransaction(ctx, sig)
			if err != nil {
				return nil, fmt.Errorf("%w: getTransaction %s: %v", ingestsource.ErrTransientSource, sig, err)
			}
			if tx != nil {
				return tx, nil
			}
			continue // transaction vanished/unconfirmed, try next
		}

		sigs, err := s.getSignatures(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: getSignaturesForAddress: %v", ingestsource.ErrTransientSource, err)
		}
		if len(sigs) > 0 {
			s.pending = sigs
			continue
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", ingestsource.ErrTransientSource, ctx.Err())
		case <-time.After(s.pollInterval):
		}
	}
}

type rpcRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      uint64        `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params,omitempty"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result,omitempty"`
	Error  *rpcError       `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *rpcError) Error() string { return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message) }

func (s *Source) call(ctx context.Context, method string, params []interface{}, out interface{}) error {
	reqBody, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		ID:      s.requestID.Add(1),
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var rpcResp rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		return err
	}
	if rpcResp.Error != nil {
		return rpcResp.Error
	}
	if out == nil || rpcResp.Result == nil {
		return nil
	}
	return json.Unmarshal(rpcResp.Result, out)
}

type signatureInfo struct {
	Signature string `json:"signature"`
}

func (s *Source) getSignatures(ctx context.Context) ([]string, error) {
	params := map[string]interface{}{"limit": s.pageLimit}
	if s.before != "" {
		params["before"] = s.before
	}

	var infos []signatureInfo
	if err := s.call(ctx, "getSignaturesForAddress", []interface{}{s.address, params}, &infos); err != nil {
		return nil, err
	}
	if len(infos) == 0 {
		return nil, nil
	}

	s.before = infos[len(infos)-1].Signature

	sigs := make([]string, len(infos))
	for i, info := range infos {
		sigs[i] = info.Signature
	}
	return sigs, nil
}

type txMeta struct {
	Err         interface{} `json:"err"`
	LogMessages []string    `json:"logMessages"`
}

type rpcInstruction struct {
	ProgramIDIndex int    `json:"programIdIndex"`
	Accounts       []int  `json:"accounts"`
	Data           string `json:"data"` // base58-encoded
}

type txMessage struct {
	AccountKeys  []string         `json:"accountKeys"`
	Instructions []rpcInstruction `json:"instructions"`
}

type txBody struct {
	Message txMessage `json:"message"`
}

type txResult struct {
	Slot        uint64          `json:"slot"`
	Meta        *txMeta         `json:"meta"`
	Transaction json.RawMessage `json:"transaction"`
}

func (s *Source) getTransaction(ctx context.Context, signature string) (*domain.RawTransaction, error) {
	params := map[string]interface{}{
		"encoding":                       "json",
		"maxSupportedTransactionVersion": 0,
	}

	var result *txResult
	if err := s.call(ctx, "getTransaction", []interface{}{signature, params}, &result); err != nil {
		return nil, err
	}
	if result == nil {
		return nil, nil
	}

	var body txBody
	if err := json.Unmarshal(result.Transaction, &body); err != nil {
		return nil, fmt.Errorf("decode transaction body: %w", err)
	}

	var logs []string
	if result.Meta != nil {
		logs = result.Meta.LogMessages
	}

	return &domain.RawTransaction{
		Signature:    signature,
		Slot:         result.Slot,
		Success:      result.Meta == nil || result.Meta.Err == nil,
		Logs:         logs,
		AccountKeys:  body.Message.AccountKeys,
		Instructions: resolveInstructions(body.Message),
	}, nil
}

func resolveInstructions(msg txMessage) []domain.CompiledInstruction {
	if len(msg.Instructions) == 0 {
		return nil
	}

	out := make([]domain.CompiledInstruction, 0, len(msg.Instructions))
	for _, ix := range msg.Instructions {
		var programID string
		if ix.ProgramIDIndex >= 0 && ix.ProgramIDIndex < len(msg.AccountKeys) {
			programID = msg.AccountKeys[ix.ProgramIDIndex]
		}

		accounts := make([]string, 0, len(ix.Accounts))
		for _, idx := range ix.Accounts {
			if idx >= 0 && idx < len(msg.AccountKeys) {
				accounts = append(accounts, msg.AccountKeys[idx])
			}
		}

		data, err := idcodec.Decode(ix.Data)
		if err != nil {
			data = nil
		}

		out = append(out, domain.CompiledInstruction{
			ProgramID: programID,
			Accounts:  accounts,
			Data:      data,
		})
	}
	return out
}
