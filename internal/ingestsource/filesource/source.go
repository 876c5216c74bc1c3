// Package filesource replays a newline-delimited JSON file of
// RawTransaction records. It is the SOURCE_TYPE=file driver: useful for
// local replay and fixtures.
package filesource

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/subhdotsol/Indexer-with-benifit/internal/domain"
	"github.com/subhdotsol/Indexer-with-benifit/internal/ingestsource"
)

// record is the on-disk JSON shape of one RawTransaction line.
type record struct {
	Signature    string                       `json:"signature"`
	Slot         uint64                       `json:"slot"`
	Success      bool                         `json:"success"`
	Logs         []string                     `json:"logs,omitempty"`
	AccountKeys  []string                     `json:"account_keys,omitempty"`
	Instructions []domain.CompiledInstruction `json:"instructions,omitempty"`
	RawBytes     []byte                       `json:"raw_bytes,omitempty"` // base64 via encoding/json's []byte handling
}

// Source reads RawTransactions one line at a time from an io.Reader.
// Next serializes concurrent calls with an internal mutex; in the
// engine, the producer goroutine is its only caller.
type Source struct {
	mu     sync.Mutex
	scan   *bufio.Scanner
	closer io.Closer // nil when constructed from a bare io.Reader
}

// New wraps an already-open reader. The caller owns closing it.
func New(r io.Reader) *Source {
	return &Source{scan: bufio.NewScanner(r)}
}

// Open opens path and replays it line by line; Close (or draining to
// ErrSourceExhausted) releases the underlying file.
func Open(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("filesource: open %s: %w", path, err)
	}
	s := New(f)
	s.closer = f
	return s, nil
}

// Next returns the next replayed transaction, or ErrSourceExhausted at
// end of file.
func (s *Source) Next(ctx context.Context) (*domain.RawTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", ingestsource.ErrTransientSource, ctx.Err())
	default:
	}

	if !s.scan.Scan() {
		if err := s.scan.Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", ingestsource.ErrFatalSource, err)
		}
		if s.closer != nil {
			_ = s.closer.Close()
		}
		return nil, ingestsource.ErrSourceExhausted
	}

	var rec record
	if err := json.Unmarshal(s.scan.Bytes(), &rec); err != nil {
		return nil, fmt.Errorf("%w: decode line: %v", ingestsource.ErrTransientSource, err)
	}

	return &domain.RawTransaction{
		Signature:    rec.Signature,
		Slot:         rec.Slot,
		Success:      rec.Success,
		Logs:         rec.Logs,
		AccountKeys:  rec.AccountKeys,
		Instructions: rec.Instructions,
		RawBytes:     rec.RawBytes,
	}, nil
}

// Close releases the underlying file, if any.
func (s *Source) Close() error {
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}
