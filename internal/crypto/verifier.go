package crypto

//go:generate mockgen -source=verifier.go -destination=mock_verifier.go -package=crypto

// Verifier checks sealed bids without access to any decryption key.
// Implementations must be pure and safe for concurrent use.
type Verifier interface {
	// VerifyCommitment reports whether ciphertext is a well-formed encrypted
	// input, as attested by proof.
	VerifyCommitment(ciphertext, proof []byte) bool
	// VerifyOpening reports whether plaintext is the true opening of
	// ciphertext, as attested by proof.
	VerifyOpening(ciphertext []byte, plaintext uint64, proof []byte) bool
}
