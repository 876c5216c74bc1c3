// Package parser turns a domain.RawTransaction into zero or more
// domain.TypedEvent values. Each concrete decoder lives in its own
// subpackage and is registered into a Registry that tries all of them
// against every transaction (broadcast, not first-match), since one
// transaction can carry events for several programs at once.
package parser

import (
	"github.com/subhdotsol/Indexer-with-benifit/internal/domain"
)

// Parser recognizes and decodes events belonging to one DEX or program.
// Parse returns recognized=false when the transaction carries nothing
// this parser understands; that is not an error, just a miss.
type Parser interface {
	Name() string
	Parse(tx *domain.RawTransaction) (events []domain.TypedEvent, recognized bool)
}

// Registry holds an ordered set of Parsers and dispatches every
// transaction to all of them, concatenating whatever each recognizes.
// Several parsers may recognize the same transaction — an aggregator
// route with a nested token transfer yields events from both — and
// registration order fixes the order their events appear in.
type Registry struct {
	parsers []Parser
}

// NewRegistry builds a Registry from the given parsers, in the order
// they should be tried.
func NewRegistry(parsers ...Parser) *Registry {
	return &Registry{parsers: parsers}
}

// Dispatch runs tx through every registered parser and returns the
// concatenation of everything any of them recognized.
func (r *Registry) Dispatch(tx *domain.RawTransaction) []domain.TypedEvent {
	var out []domain.TypedEvent
	for _, p := range r.parsers {
		events, ok := p.Parse(tx)
		if !ok {
			continue
		}
		out = append(out, events...)
	}
	return out
}
