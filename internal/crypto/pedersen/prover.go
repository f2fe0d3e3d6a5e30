package pedersen

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Sealed is everything a bidder produces client-side: the ciphertext and
// commitment proof to submit during the window, and the opening to keep
// until the reveal phase.
type Sealed struct {
	Ciphertext      []byte
	CommitmentProof []byte
	Opening         Opening
}

// Opening is the secret needed to reveal a sealed bid
type Opening struct {
	Amount   uint64
	Blinding fr.Element
}

// Proof encodes the opening proof expected by VerifyOpening
func (o Opening) Proof() []byte {
	b := o.Blinding.Bytes()
	return b[:]
}

// Seal commits to amount with fresh randomness and proves knowledge of the
// opening
func (s *Scheme) Seal(amount uint64) (*Sealed, error) {
	var r fr.Element
	if _, err := r.SetRandom(); err != nil {
		return nil, fmt.Errorf("pedersen: sample blinding: %w", err)
	}
	return s.SealWithBlinding(amount, r)
}

// SealWithBlinding is Seal with a caller-chosen blinding factor
func (s *Scheme) SealWithBlinding(amount uint64, r fr.Element) (*Sealed, error) {
	var v fr.Element
	v.SetUint64(amount)

	c := s.combine(&v, &r)
	proof, err := s.prove(&c, &v, &r)
	if err != nil {
		return nil, err
	}

	cb := c.Bytes()
	return &Sealed{
		Ciphertext:      cb[:],
		CommitmentProof: proof,
		Opening:         Opening{Amount: amount, Blinding: r},
	}, nil
}

func (s *Scheme) prove(c *bn254.G1Affine, v, r *fr.Element) ([]byte, error) {
	var a, b fr.Element
	if _, err := a.SetRandom(); err != nil {
		return nil, fmt.Errorf("pedersen: sample nonce: %w", err)
	}
	if _, err := b.SetRandom(); err != nil {
		return nil, fmt.Errorf("pedersen: sample nonce: %w", err)
	}

	t := s.combine(&a, &b)
	ch := s.challenge(c, &t)

	var s1, s2, tmp fr.Element
	s1.Add(&a, tmp.Mul(&ch, v))
	s2.Add(&b, tmp.Mul(&ch, r))

	tb := t.Bytes()
	s1b := s1.Bytes()
	s2b := s2.Bytes()

	proof := make([]byte, 0, ProofSize)
	proof = append(proof, tb[:]...)
	proof = append(proof, s1b[:]...)
	proof = append(proof, s2b[:]...)
	return proof, nil
}
