package postgres

import (
	"context"
	"fmt"

	"github.com/subhdotsol/Indexer-with-benifit/internal/domain"
	"github.com/subhdotsol/Indexer-with-benifit/internal/store"
)

// Store implements store.EventStore across the four variant tables
// migrations/ creates, dispatching each event by its Kind.
type Store struct {
	pool *Pool
}

var _ store.EventStore = (*Store)(nil)

// New wraps an already-connected pool.
func New(pool *Pool) *Store {
	return &Store{pool: pool}
}

// SaveOne inserts e, treating a duplicate signature as success.
func (s *Store) SaveOne(ctx context.Context, e domain.TypedEvent) error {
	stmt, args, err := insertStatement(e)
	if err != nil {
		return err
	}

	_, execErr := s.pool.Exec(ctx, stmt, args...)
	if execErr != nil {
		if isDuplicateKeyError(execErr) {
			return nil
		}
		return classify(execErr)
	}
	return nil
}

// SaveMany inserts each event independently, each absorbing its own
// duplicate the way SaveOne does. One event's failure does not prevent
// the rest from being attempted; the first error is returned.
func (s *Store) SaveMany(ctx context.Context, es []domain.TypedEvent) error {
	var firstErr error
	for _, e := range es {
		if err := s.SaveOne(ctx, e); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// SaveBatch inserts es inside one transaction using ON CONFLICT (signature)
// DO NOTHING per row, so duplicates are skipped without aborting the
// rest of the batch. It returns how many rows were newly inserted.
func (s *Store) SaveBatch(ctx context.Context, es []domain.TypedEvent) (int, error) {
	if len(es) == 0 {
		return 0, nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: begin tx: %v", store.ErrTransientStore, err)
	}
	defer tx.Rollback(ctx)

	inserted := 0
	for _, e := range es {
		stmt, args, err := insertStatement(e)
		if err != nil {
			return 0, err
		}

		tag, execErr := tx.Exec(ctx, stmt, args...)
		if execErr != nil {
			return 0, classify(execErr)
		}
		inserted += int(tag.RowsAffected())
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("%w: commit tx: %v", store.ErrTransientStore, err)
	}
	return inserted, nil
}

func insertStatement(e domain.TypedEvent) (string, []interface{}, error) {
	switch e.Kind {
	case domain.KindTokenTransfer:
		t := e.TokenTransfer
		return `INSERT INTO token_transfers (signature, slot, source, dest, amount, mint)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (signature) DO NOTHING`,
			[]interface{}{t.Signature, int64(t.Slot), t.From, t.To, int64(t.Amount), t.Mint}, nil

	case domain.KindRaydiumSwap:
		r := e.RaydiumSwap
		return `INSERT INTO raydium_swaps (
				signature, slot, amm_pool, signer, amount_in, min_amount_out,
				amount_received, mint_source, mint_destination
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT (signature) DO NOTHING`,
			[]interface{}{
				r.Signature, int64(r.Slot), r.AMMPool, r.Signer,
				int64(r.AmountIn), int64(r.MinAmountOut), int64(r.AmountReceived),
				r.MintSource, r.MintDestination,
			}, nil

	case domain.KindJupiterSwap:
		j := e.JupiterSwap
		return `INSERT INTO jupiter_swaps (
				signature, slot, signer, amm_pool, mint_in, mint_out,
				amount_in, amount_out, slippage_bps
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT (signature) DO NOTHING`,
			[]interface{}{
				j.Signature, int64(j.Slot), j.Signer, j.AMMPool, j.MintIn, j.MintOut,
				int64(j.AmountIn), int64(j.AmountOut), int32(j.SlippageBps),
			}, nil

	case domain.KindPumpFunSwap:
		p := e.PumpFunSwap
		return `INSERT INTO pumpfun_swaps (
				signature, slot, signer, mint, is_buy, sol_amount, token_amount, bonding_curve
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (signature) DO NOTHING`,
			[]interface{}{
				p.Signature, int64(p.Slot), p.Signer, p.Mint, p.IsBuy,
				int64(p.SolAmount), int64(p.TokenAmount), p.BondingCurve,
			}, nil

	default:
		return "", nil, fmt.Errorf("%w: unrecognized event kind %s", store.ErrFatalStore, e.Kind)
	}
}
