// Package pumpfunparser decodes pump.fun bonding-curve buy/sell
// instructions from program logs. Log lines between the program's
// invoke and success/failed markers are scanned for the buy/sell
// instruction name and its amount fields; the signer and bonding curve
// accounts are resolved from the transaction's account list using
// pump.fun's documented Buy/Sell account ordering.
package pumpfunparser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/subhdotsol/Indexer-with-benifit/internal/domain"
)

// ProgramID is the pump.fun program address.
const ProgramID = "6EF8rrecthR5Dkzon8Nwu78hRvfCKubJ14M5uBEwF6P"

// Account indices for pump.fun's Buy/Sell instruction: global,
// feeRecipient, mint, bondingCurve, associatedBondingCurve,
// associatedUser, user, systemProgram, tokenProgram, rent,
// eventAuthority, program.
const (
	mintAccountIndex         = 2
	bondingCurveAccountIndex = 3
	userAccountIndex         = 6
)

var (
	buyPattern        = regexp.MustCompile(`Program log: Instruction: Buy`)
	sellPattern       = regexp.MustCompile(`Program log: Instruction: Sell`)
	mintLogPattern    = regexp.MustCompile(`mint=([A-Za-z0-9]+)`)
	tokenAmountRegexp = regexp.MustCompile(`\b(?:amount|token_amount)[=:]?\s*(\d+)`)
	solAmountRegexp   = regexp.MustCompile(`sol_amount[=:]?\s*(\d+)`)
)

// Parser implements parser.Parser for pump.fun buy/sell instructions.
type Parser struct{}

// New returns a ready-to-use pump.fun parser.
func New() *Parser { return &Parser{} }

func (*Parser) Name() string { return "pumpfun" }

func (p *Parser) Parse(tx *domain.RawTransaction) ([]domain.TypedEvent, bool) {
	var events []domain.TypedEvent

	var currentMint string
	var pendingSol, pendingToken uint64
	inPumpFun := false
	recognized := false
	// current is the scope's latest Buy/Sell event; amount and mint lines
	// that follow the instruction line still fill it in.
	var current *domain.PumpFunSwap

	mint, bondingCurve, signer := resolveAccounts(tx.AccountKeys)

	for i, line := range tx.Logs {
		switch {
		case strings.Contains(line, "Program "+ProgramID+" invoke"):
			inPumpFun = true
			recognized = true
			currentMint = ""
			pendingSol, pendingToken = 0, 0
			current = nil
			continue
		case strings.Contains(line, "Program "+ProgramID+" success"),
			strings.Contains(line, "Program "+ProgramID+" failed"):
			inPumpFun = false
			currentMint = ""
			current = nil
			continue
		}

		if !inPumpFun {
			continue
		}

		if m := mintLogPattern.FindStringSubmatch(line); m != nil {
			currentMint = m[1]
		}
		if m := tokenAmountRegexp.FindStringSubmatch(line); m != nil {
			if v, err := strconv.ParseUint(m[1], 10, 64); err == nil {
				pendingToken = v
			}
		}
		if m := solAmountRegexp.FindStringSubmatch(line); m != nil {
			if v, err := strconv.ParseUint(m[1], 10, 64); err == nil {
				pendingSol = v
			}
		}
		if current != nil {
			current.SolAmount, current.TokenAmount = pendingSol, pendingToken
			if currentMint != "" {
				current.Mint = currentMint
			}
		}

		isBuy := buyPattern.MatchString(line)
		isSell := sellPattern.MatchString(line)
		if !isBuy && !isSell {
			continue
		}

		eventMint := currentMint
		if eventMint == "" {
			eventMint = mint
		}

		events = append(events, domain.TypedEvent{
			Kind:        domain.KindPumpFunSwap,
			RawLogIndex: i,
			PumpFunSwap: &domain.PumpFunSwap{
				Signature:    tx.Signature,
				Slot:         tx.Slot,
				Signer:       signer,
				Mint:         eventMint,
				IsBuy:        isBuy,
				SolAmount:    pendingSol,
				TokenAmount:  pendingToken,
				BondingCurve: bondingCurve,
			},
		})
		current = events[len(events)-1].PumpFunSwap
	}

	return events, recognized
}

func resolveAccounts(accountKeys []string) (mint, bondingCurve, signer string) {
	if len(accountKeys) > userAccountIndex {
		signer = accountKeys[userAccountIndex]
	}
	if len(accountKeys) > bondingCurveAccountIndex {
		bondingCurve = accountKeys[bondingCurveAccountIndex]
	}
	if len(accountKeys) > mintAccountIndex {
		mint = accountKeys[mintAccountIndex]
	}
	return
}
