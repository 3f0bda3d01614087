// Package digest provides the digest algorithm descriptors consumed by the
// RSA padding schemes: SHA-1, the SHA-2 and SHA-3 families, and BLAKE2b.
//
// Each descriptor is an immutable, process-wide value. Padding schemes hold a
// pointer to one and never mutate it.
package digest

import (
	"crypto"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// Algorithm identifiers.
const (
	// SHA-1 is only kept for verifying legacy PKCS#1 v1.5 signatures.
	AlgorithmSHA1 = "sha-1"

	// SHA-2 family (NIST FIPS 180-4)
	AlgorithmSHA256    = "sha-256"
	AlgorithmSHA384    = "sha-384"
	AlgorithmSHA512    = "sha-512"
	AlgorithmSHA512256 = "sha-512/256"

	// SHA-3 family (NIST FIPS 202)
	AlgorithmSHA3256 = "sha3-256"
	AlgorithmSHA3384 = "sha3-384"
	AlgorithmSHA3512 = "sha3-512"

	// BLAKE2b family (RFC 7693)
	AlgorithmBLAKE2b256 = "blake2b-256"
	AlgorithmBLAKE2b512 = "blake2b-512"
)

// MaxOutputLen is the largest OutputLen of any supported algorithm.
const MaxOutputLen = 64

// Algorithm describes a hash function and its fixed output length.
type Algorithm struct {
	id        string
	outputLen int
	hash      crypto.Hash
	newFunc   func() hash.Hash
}

// ID returns the algorithm identifier, e.g. "sha-256".
func (a *Algorithm) ID() string { return a.id }

// OutputLen returns the digest length in bytes.
func (a *Algorithm) OutputLen() int { return a.outputLen }

// CryptoHash returns the matching crypto.Hash, or 0 for algorithms the
// standard library does not enumerate (BLAKE2b).
func (a *Algorithm) CryptoHash() crypto.Hash { return a.hash }

// New returns a fresh incremental digest context.
func (a *Algorithm) New() hash.Hash { return a.newFunc() }

// Sum computes the digest of data in one shot.
func (a *Algorithm) Sum(data []byte) []byte {
	h := a.newFunc()
	h.Write(data)
	return h.Sum(nil)
}

func (a *Algorithm) String() string { return a.id }

// Descriptors for every supported algorithm.
var (
	SHA1      = &Algorithm{id: AlgorithmSHA1, outputLen: sha1.Size, hash: crypto.SHA1, newFunc: sha1.New}
	SHA256    = &Algorithm{id: AlgorithmSHA256, outputLen: sha256.Size, hash: crypto.SHA256, newFunc: sha256.New}
	SHA384    = &Algorithm{id: AlgorithmSHA384, outputLen: sha512.Size384, hash: crypto.SHA384, newFunc: sha512.New384}
	SHA512    = &Algorithm{id: AlgorithmSHA512, outputLen: sha512.Size, hash: crypto.SHA512, newFunc: sha512.New}
	SHA512256 = &Algorithm{id: AlgorithmSHA512256, outputLen: sha512.Size256, hash: crypto.SHA512_256, newFunc: sha512.New512_256}

	SHA3256 = &Algorithm{id: AlgorithmSHA3256, outputLen: 32, hash: crypto.SHA3_256, newFunc: func() hash.Hash { return sha3.New256() }}
	SHA3384 = &Algorithm{id: AlgorithmSHA3384, outputLen: 48, hash: crypto.SHA3_384, newFunc: func() hash.Hash { return sha3.New384() }}
	SHA3512 = &Algorithm{id: AlgorithmSHA3512, outputLen: 64, hash: crypto.SHA3_512, newFunc: func() hash.Hash { return sha3.New512() }}

	BLAKE2b256 = &Algorithm{id: AlgorithmBLAKE2b256, outputLen: blake2b.Size256, newFunc: newBLAKE2b256}
	BLAKE2b512 = &Algorithm{id: AlgorithmBLAKE2b512, outputLen: blake2b.Size, newFunc: newBLAKE2b512}
)

// blake2b.New* only fails for keys longer than 64 bytes; these are unkeyed.
func newBLAKE2b256() hash.Hash {
	h, _ := blake2b.New256(nil)
	return h
}

func newBLAKE2b512() hash.Hash {
	h, _ := blake2b.New512(nil)
	return h
}

// SupportedAlgorithms maps every algorithm identifier to its descriptor.
// Use O(1) lookup: alg, ok := SupportedAlgorithms[id].
var SupportedAlgorithms = map[string]*Algorithm{
	AlgorithmSHA1:       SHA1,
	AlgorithmSHA256:     SHA256,
	AlgorithmSHA384:     SHA384,
	AlgorithmSHA512:     SHA512,
	AlgorithmSHA512256:  SHA512256,
	AlgorithmSHA3256:    SHA3256,
	AlgorithmSHA3384:    SHA3384,
	AlgorithmSHA3512:    SHA3512,
	AlgorithmBLAKE2b256: BLAKE2b256,
	AlgorithmBLAKE2b512: BLAKE2b512,
}

// Lookup returns the descriptor registered under id.
func Lookup(id string) (*Algorithm, error) {
	if id == "" {
		return nil, fmt.Errorf("digest algorithm cannot be empty")
	}
	alg, ok := SupportedAlgorithms[id]
	if !ok {
		return nil, fmt.Errorf("unsupported algorithm %q", id)
	}
	return alg, nil
}

// NewDigester creates a hash.Hash instance for streaming digest computation.
//
// Returns hash.Hash for incremental computation, or error if algorithm
// is unsupported.
func NewDigester(algorithm string) (hash.Hash, error) {
	alg, err := Lookup(algorithm)
	if err != nil {
		return nil, err
	}
	return alg.New(), nil
}
