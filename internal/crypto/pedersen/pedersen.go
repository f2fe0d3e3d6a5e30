// Package pedersen implements sealed bids as Pedersen commitments over the
// bn254 G1 group.
//
// A sealed bid for amount v with blinding r is the compressed point
// C = v·G + r·H, where H is hashed to the curve from a domain tag so that
// nobody knows log_G(H). The commitment proof is a non-interactive proof of
// knowledge of (v, r):
//
//	T = a·G + b·H,  c = SHA3-256(domain | C | T) mod q,  s1 = a + c·v,  s2 = b + c·r
//
// checked as s1·G + s2·H == T + c·C. The opening proof is r itself; anyone
// holding it can check that v is the unique amount the commitment binds.
package pedersen

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"golang.org/x/crypto/sha3"

	bidcrypto "sealed-auction/internal/crypto"
)

// DefaultDomain separates generators and challenges of this deployment
const DefaultDomain = "sealed-auction/pedersen/v1"

const (
	// CommitmentSize is the length of a ciphertext (compressed G1 point)
	CommitmentSize = bn254.SizeOfG1AffineCompressed
	// ScalarSize is the length of an encoded scalar field element
	ScalarSize = fr.Bytes
	// ProofSize is the length of a commitment proof (T, s1, s2)
	ProofSize = CommitmentSize + 2*ScalarSize
	// OpeningSize is the length of an opening proof (the blinding r)
	OpeningSize = ScalarSize
)

var errEmptyDomain = errors.New("pedersen: empty domain")

var _ bidcrypto.Verifier = (*Scheme)(nil)

// Scheme holds the public parameters. It is immutable and safe for
// concurrent use.
type Scheme struct {
	domain []byte
	g      bn254.G1Affine
	h      bn254.G1Affine
}

// New derives the generators for domain
func New(domain string) (*Scheme, error) {
	if domain == "" {
		return nil, errEmptyDomain
	}

	_, _, g, _ := bn254.Generators()
	h, err := bn254.HashToG1([]byte("pedersen-generator-h"), []byte(domain))
	if err != nil {
		return nil, fmt.Errorf("pedersen: derive generator: %w", err)
	}

	return &Scheme{domain: []byte(domain), g: g, h: h}, nil
}

// VerifyCommitment checks the proof of knowledge of the commitment's opening
func (s *Scheme) VerifyCommitment(ciphertext, proof []byte) bool {
	c, ok := decodePoint(ciphertext)
	if !ok || len(proof) != ProofSize {
		return false
	}
	t, ok := decodePoint(proof[:CommitmentSize])
	if !ok {
		return false
	}
	s1, ok := decodeScalar(proof[CommitmentSize : CommitmentSize+ScalarSize])
	if !ok {
		return false
	}
	s2, ok := decodeScalar(proof[CommitmentSize+ScalarSize:])
	if !ok {
		return false
	}

	ch := s.challenge(&c, &t)

	lhs := s.combine(&s1, &s2)

	var cc, rhs bn254.G1Affine
	cc.ScalarMultiplication(&c, ch.BigInt(new(big.Int)))
	rhs.Add(&t, &cc)

	return lhs.Equal(&rhs)
}

// VerifyOpening checks that ciphertext commits to plaintext under the
// blinding carried by proof
func (s *Scheme) VerifyOpening(ciphertext []byte, plaintext uint64, proof []byte) bool {
	c, ok := decodePoint(ciphertext)
	if !ok || len(proof) != OpeningSize {
		return false
	}
	r, ok := decodeScalar(proof)
	if !ok {
		return false
	}

	var v fr.Element
	v.SetUint64(plaintext)
	expected := s.combine(&v, &r)

	return expected.Equal(&c)
}

// combine returns x·G + y·H
func (s *Scheme) combine(x, y *fr.Element) bn254.G1Affine {
	var xg, yh, res bn254.G1Affine
	xg.ScalarMultiplication(&s.g, x.BigInt(new(big.Int)))
	yh.ScalarMultiplication(&s.h, y.BigInt(new(big.Int)))
	res.Add(&xg, &yh)
	return res
}

func (s *Scheme) challenge(c, t *bn254.G1Affine) fr.Element {
	cb := c.Bytes()
	tb := t.Bytes()

	h := sha3.New256()
	h.Write(s.domain)
	h.Write(cb[:])
	h.Write(tb[:])

	var e fr.Element
	e.SetBytes(h.Sum(nil))
	return e
}

// decodePoint accepts exactly one compressed, non-identity point in the
// prime-order subgroup
func decodePoint(buf []byte) (bn254.G1Affine, bool) {
	var p bn254.G1Affine
	if len(buf) != CommitmentSize {
		return p, false
	}
	n, err := p.SetBytes(buf)
	if err != nil || n != CommitmentSize || p.IsInfinity() {
		return p, false
	}
	return p, true
}

func decodeScalar(buf []byte) (fr.Element, bool) {
	var e fr.Element
	if len(buf) != ScalarSize {
		return e, false
	}
	if err := e.SetBytesCanonical(buf); err != nil {
		return e, false
	}
	return e, true
}
