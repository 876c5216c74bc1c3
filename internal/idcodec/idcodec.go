// Package idcodec centralizes the base58 encoding Solana signatures,
// pubkeys, and mint addresses use on the wire, so callers don't need to
// know which base58 implementation the rest of the repo picked.
package idcodec

import "github.com/mr-tron/base58"

// Encode renders raw bytes (a pubkey, a mint, a signature) as the
// base58 string Solana tooling expects.
func Encode(b []byte) string {
	return base58.Encode(b)
}

// Decode parses a base58 string back into raw bytes.
func Decode(s string) ([]byte, error) {
	return base58.Decode(s)
}
