package domain

// EventKind tags which variant of TypedEvent is populated.
type EventKind int

const (
	KindUnknown EventKind = iota
	KindTokenTransfer
	KindRaydiumSwap
	KindJupiterSwap
	KindPumpFunSwap
)

func (k EventKind) String() string {
	switch k {
	case KindTokenTransfer:
		return "TokenTransfer"
	case KindRaydiumSwap:
		return "RaydiumSwap"
	case KindJupiterSwap:
		return "JupiterSwap"
	case KindPumpFunSwap:
		return "PumpFunSwap"
	default:
		return "Unknown"
	}
}

// TypedEvent is a tagged union over the four decoded event variants.
// Exactly one of TokenTransfer, RaydiumSwap, JupiterSwap, PumpFunSwap is
// non-nil, selected by Kind.
type TypedEvent struct {
	Kind EventKind

	// RawLogIndex is the position of the decoded instruction within the
	// originating transaction, used as the tie-breaker for deterministic
	// ordering when one transaction yields multiple events.
	RawLogIndex int

	TokenTransfer *TokenTransfer
	RaydiumSwap   *RaydiumSwap
	JupiterSwap   *JupiterSwap
	PumpFunSwap   *PumpFunSwap
}

// Signature returns the signature of the transaction this event
// originated from, regardless of variant.
func (e TypedEvent) Signature() string {
	switch e.Kind {
	case KindTokenTransfer:
		return e.TokenTransfer.Signature
	case KindRaydiumSwap:
		return e.RaydiumSwap.Signature
	case KindJupiterSwap:
		return e.JupiterSwap.Signature
	case KindPumpFunSwap:
		return e.PumpFunSwap.Signature
	default:
		return ""
	}
}

// Slot returns the slot of the transaction this event originated from.
func (e TypedEvent) Slot() uint64 {
	switch e.Kind {
	case KindTokenTransfer:
		return e.TokenTransfer.Slot
	case KindRaydiumSwap:
		return e.RaydiumSwap.Slot
	case KindJupiterSwap:
		return e.JupiterSwap.Slot
	case KindPumpFunSwap:
		return e.PumpFunSwap.Slot
	default:
		return 0
	}
}

// TokenTransfer is an SPL Token Transfer/TransferChecked instruction.
type TokenTransfer struct {
	Signature string
	Slot      uint64
	From      string
	To        string
	Amount    uint64
	Mint      *string // optional: absent for legacy Transfer instructions
}

// RaydiumSwap is a swap executed against a Raydium AMM v4 pool.
type RaydiumSwap struct {
	Signature       string
	Slot            uint64
	AMMPool         string
	Signer          string
	AmountIn        uint64
	MinAmountOut    uint64
	AmountReceived  uint64
	MintSource      string
	MintDestination string
}

// JupiterSwap is a swap routed through the Jupiter aggregator.
type JupiterSwap struct {
	Signature   string
	Slot        uint64
	Signer      string
	AMMPool     string
	MintIn      string
	MintOut     string
	AmountIn    uint64
	AmountOut   uint64
	SlippageBps uint16
}

// PumpFunSwap is a buy or sell against a pump.fun bonding curve.
type PumpFunSwap struct {
	Signature    string
	Slot         uint64
	Signer       string
	Mint         string
	IsBuy        bool
	SolAmount    uint64
	TokenAmount  uint64
	BondingCurve string
}
