// Package domain holds the plain value records that flow through the
// ingestion engine. Types here carry no behavior: decoding, persistence,
// and transport are all handled by other packages.
package domain

// RawTransaction is the unit a Source produces: one committed Solana
// transaction, not yet decoded into any protocol-specific event.
type RawTransaction struct {
	// Signature uniquely identifies the transaction across the chain and
	// is the idempotence key every downstream TypedEvent carries forward.
	Signature string
	Slot      uint64
	Success   bool
	// Logs is the transaction's program log output, in emission order.
	// Every decoder in internal/parser works off these lines the same way
	// the log-scanning parsers they are modeled on do.
	Logs []string
	// AccountKeys is the transaction's account list in instruction order,
	// needed to resolve pool and mint addresses that ray_log-style binary
	// logs reference only by account index.
	AccountKeys []string
	// Instructions is the transaction's top-level compiled instruction
	// list, needed by decoders (splparser) that read instruction data
	// directly instead of scanning program logs.
	Instructions []CompiledInstruction
	// RawBytes carries whatever the source driver could not otherwise
	// structure into Logs/AccountKeys/Instructions. Not every driver
	// populates it.
	RawBytes []byte
}

// CompiledInstruction is one instruction from a transaction's message,
// with account references already resolved to addresses so decoders
// never need the raw account-index table.
type CompiledInstruction struct {
	ProgramID string   `json:"program_id"`
	Accounts  []string `json:"accounts"`
	Data      []byte   `json:"data"`
}
