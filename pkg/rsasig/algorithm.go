// Package rsasig produces and verifies complete RSA signatures by combining
// a padding scheme from pkg/padding with a raw RSA engine.
//
// Supported algorithms:
//   - rsa-pss-sha256, rsa-pss-sha384, rsa-pss-sha512
//   - rsa-pss-sha3-256, rsa-pss-sha3-384, rsa-pss-sha3-512
//   - rsa-v1_5-sha1, rsa-v1_5-sha256, rsa-v1_5-sha384, rsa-v1_5-sha512
//   - rsa-v1_5-sha3-256, rsa-v1_5-sha3-384, rsa-v1_5-sha3-512
//
// # Basic Usage
//
// Sign a message with RSA-PSS-SHA256:
//
//	alg, _ := rsasig.GetAlgorithm("rsa-pss-sha256")
//	signature, _ := alg.Sign(message, privateKey)
//
// Verify a signature:
//
//	alg, _ := rsasig.GetAlgorithm("rsa-pss-sha256")
//	if err := alg.Verify(message, signature, publicKey); err != nil {
//	    // Signature invalid
//	}
//
// # Key Management
//
// Load keys from PEM or DER:
//
//	keyData, _ := os.ReadFile("private-key.pem")
//	privateKey, _ := rsasig.ParsePrivateKey(keyData)
//
// # Security
//
//   - Every rejected signature wraps ErrVerification and nothing else
//   - Private operations are blinded, use the CRT when the key carries
//     precomputed values and are checked with the public exponent
//   - math/big exponentiation is not constant time
//   - Keys outside 2048..8192 bits are refused
//
// Building with the verifyonly tag removes the signing path; Sign then
// returns ErrSigningUnavailable.
package rsasig

import (
	"errors"
	"fmt"
	"sort"

	"github.com/forcebit/rsapad-go/pkg/padding"
)

var (
	// ErrVerification is wrapped by every signature rejection.
	ErrVerification = errors.New("signature verification failed")

	// ErrSigningUnavailable is returned by Sign in a verify-only build.
	ErrSigningUnavailable = errors.New("signing is not available in this build")
)

// Algorithm is an RSA signature algorithm: a padding scheme bound to the
// RSA primitive.
//
// Implementations are stateless and safe for concurrent use.
type Algorithm interface {
	// ID returns the algorithm identifier, e.g. "rsa-pss-sha256".
	ID() string

	// Scheme returns the padding scheme the algorithm encodes with.
	Scheme() padding.Scheme

	// Sign signs message with key, which must be an *rsa.PrivateKey.
	//
	// Error Conditions:
	//   - key is nil or not an *rsa.PrivateKey
	//   - key size is outside 2048..8192 bits
	//   - the random source fails
	//   - the build has no signing capability (ErrSigningUnavailable)
	Sign(message []byte, key interface{}) ([]byte, error)

	// Verify checks signature over message with key, which must be an
	// *rsa.PublicKey. Any cryptographic mismatch wraps ErrVerification.
	Verify(message, signature []byte, key interface{}) error
}

// algorithms is the fixed set of RSA algorithms.
var algorithms = map[string]*rsaAlgorithm{}

func init() {
	for _, a := range []*rsaAlgorithm{
		{id: "rsa-pss-sha256", scheme: padding.PSSSHA256},
		{id: "rsa-pss-sha384", scheme: padding.PSSSHA384},
		{id: "rsa-pss-sha512", scheme: padding.PSSSHA512},
		{id: "rsa-pss-sha3-256", scheme: padding.PSSSHA3_256},
		{id: "rsa-pss-sha3-384", scheme: padding.PSSSHA3_384},
		{id: "rsa-pss-sha3-512", scheme: padding.PSSSHA3_512},
		{id: "rsa-v1_5-sha1", scheme: padding.PKCS1SHA1},
		{id: "rsa-v1_5-sha256", scheme: padding.PKCS1SHA256},
		{id: "rsa-v1_5-sha384", scheme: padding.PKCS1SHA384},
		{id: "rsa-v1_5-sha512", scheme: padding.PKCS1SHA512},
		{id: "rsa-v1_5-sha3-256", scheme: padding.PKCS1SHA3_256},
		{id: "rsa-v1_5-sha3-384", scheme: padding.PKCS1SHA3_384},
		{id: "rsa-v1_5-sha3-512", scheme: padding.PKCS1SHA3_512},
	} {
		algorithms[a.id] = a
	}
}

// GetAlgorithm retrieves an algorithm implementation by its identifier.
//
// Error Conditions:
//   - id is empty string
//   - id is not one of the supported algorithms
//
// Example:
//
//	alg, err := rsasig.GetAlgorithm("rsa-pss-sha512")
//	if err != nil {
//	    return fmt.Errorf("unsupported algorithm: %w", err)
//	}
func GetAlgorithm(id string) (Algorithm, error) {
	a, err := lookup(id)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func lookup(id string) (*rsaAlgorithm, error) {
	if id == "" {
		return nil, fmt.Errorf("algorithm ID cannot be empty")
	}
	a, ok := algorithms[id]
	if !ok {
		return nil, fmt.Errorf("unsupported algorithm: %q", id)
	}
	return a, nil
}

// SupportedAlgorithms returns the identifiers of every algorithm, sorted.
func SupportedAlgorithms() []string {
	ids := make([]string, 0, len(algorithms))
	for id := range algorithms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
