package rsasig

import (
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/forcebit/rsapad-go/pkg/padding"
)

const (
	// MinKeyBits is the default minimum modulus size.
	MinKeyBits = 2048

	// LegacyMinKeyBits is the lowest minimum a Signer or Verifier may be configured with.
	LegacyMinKeyBits = 1024

	// MaxKeyBits is the largest modulus size, matching the padding layer.
	MaxKeyBits = padding.MaxModulusBits
)

// rsaAlgorithm binds a padding scheme to the RSA primitive.
type rsaAlgorithm struct {
	id     string
	scheme padding.Scheme
}

func (a *rsaAlgorithm) ID() string { return a.id }

func (a *rsaAlgorithm) Scheme() padding.Scheme { return a.scheme }

// Sign encodes message with the algorithm's scheme and applies the private
// key. Salts and blinding factors come from crypto/rand.Reader.
func (a *rsaAlgorithm) Sign(message []byte, key interface{}) ([]byte, error) {
	rsaKey, ok := key.(*rsa.PrivateKey)
	if !ok || rsaKey == nil {
		return nil, fmt.Errorf("invalid key type for %s: expected *rsa.PrivateKey, got %T", a.id, key)
	}
	return a.sign(message, rsaKey, rand.Reader, MinKeyBits)
}

// Verify applies the public key to signature and checks the recovered block
// against message.
func (a *rsaAlgorithm) Verify(message, signature []byte, key interface{}) error {
	rsaKey, ok := key.(*rsa.PublicKey)
	if !ok || rsaKey == nil {
		return fmt.Errorf("invalid key type for %s: expected *rsa.PublicKey, got %T", a.id, key)
	}
	if err := validateRSAPublicKey(rsaKey, MinKeyBits); err != nil {
		return err
	}
	return a.verify(message, signature, rsaKey)
}

func (a *rsaAlgorithm) sign(message []byte, key *rsa.PrivateKey, random io.Reader, minBits int) ([]byte, error) {
	enc, ok := padding.AsEncoder(a.scheme)
	if !ok {
		return nil, ErrSigningUnavailable
	}
	if err := validateRSAPrivateKey(key, minBits); err != nil {
		return nil, err
	}
	if random == nil {
		random = rand.Reader
	}

	bits := key.N.BitLen()
	em := make([]byte, (bits+7)/8)
	defer clear(em)
	if err := enc.Encode(message, em, bits, random); err != nil {
		return nil, fmt.Errorf("%s encoding failed: %w", a.scheme.ID(), err)
	}

	signature, err := privateOp(random, key, em)
	if err != nil {
		return nil, fmt.Errorf("%s signing failed: %w", a.id, err)
	}
	return signature, nil
}

// verify assumes key has already been validated.
func (a *rsaAlgorithm) verify(message, signature []byte, key *rsa.PublicKey) error {
	em, ok := publicOp(key, signature)
	if !ok {
		return ErrVerification
	}
	if err := a.scheme.Verify(message, em, key.N.BitLen()); err != nil {
		return ErrVerification
	}
	return nil
}

// publicOp computes signature^e mod N as a k-byte block. It reports false
// when signature is not exactly k bytes or is not below N.
func publicOp(key *rsa.PublicKey, signature []byte) ([]byte, bool) {
	k := (key.N.BitLen() + 7) / 8
	if len(signature) != k {
		return nil, false
	}
	s := new(big.Int).SetBytes(signature)
	if s.Cmp(key.N) >= 0 {
		return nil, false
	}
	m := new(big.Int).Exp(s, big.NewInt(int64(key.E)), key.N)
	return m.FillBytes(make([]byte, k)), true
}

// privateOp computes em^d mod N with multiplicative blinding and checks the
// result against the public exponent before returning it.
//
// The exponentiation uses math/big, which is not constant time. Blinding
// randomizes the base; the exponent timing is not masked.
func privateOp(random io.Reader, key *rsa.PrivateKey, em []byte) ([]byte, error) {
	n := key.N
	m := new(big.Int).SetBytes(em)
	if m.Cmp(n) >= 0 {
		return nil, errors.New("encoded message out of range for modulus")
	}
	e := big.NewInt(int64(key.E))

	var r, rInv *big.Int
	for {
		var err error
		r, err = rand.Int(random, n)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", padding.ErrEntropyUnavailable, err)
		}
		if r.Sign() == 0 {
			continue
		}
		if rInv = new(big.Int).ModInverse(r, n); rInv != nil {
			break
		}
	}

	c := new(big.Int).Exp(r, e, n)
	c.Mul(c, m).Mod(c, n)
	s := decrypt(key, c)
	s.Mul(s, rInv).Mod(s, n)

	if new(big.Int).Exp(s, e, n).Cmp(m) != 0 {
		return nil, errors.New("private key operation failed consistency check")
	}
	return s.FillBytes(make([]byte, (n.BitLen()+7)/8)), nil
}

// decrypt computes c^d mod N. Two-prime keys with precomputed values go
// through the CRT (RFC 8017 Section 5.1.2, step 2.b); any other key uses d
// directly.
func decrypt(key *rsa.PrivateKey, c *big.Int) *big.Int {
	pre := key.Precomputed
	if len(key.Primes) != 2 || pre.Dp == nil || pre.Dq == nil || pre.Qinv == nil {
		return new(big.Int).Exp(c, key.D, key.N)
	}
	p, q := key.Primes[0], key.Primes[1]

	m1 := new(big.Int).Exp(c, pre.Dp, p)
	m2 := new(big.Int).Exp(c, pre.Dq, q)
	h := m1.Sub(m1, m2)
	h.Mul(h, pre.Qinv).Mod(h, p)
	return h.Mul(h, q).Add(h, m2)
}
