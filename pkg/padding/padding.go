// Package padding implements the RSA signature encodings of RFC 8017
// (originally RFC 3447): EMSA-PKCS1-v1_5 and EMSA-PSS with MGF1.
//
// A scheme turns a message into the fixed-width encoded block that an RSA
// engine exponentiates, and checks that a block recovered from a signature
// represents the digest of a claimed message. The modular arithmetic, key
// handling and randomness are left to the caller.
//
// # Basic Usage
//
// Encode a message for a 2048-bit modulus:
//
//	em := make([]byte, 256)
//	err := padding.PSSSHA256.Encode(message, em, 2048, rand.Reader)
//
// Verify a block recovered from a signature:
//
//	if err := padding.PSSSHA256.Verify(message, em, 2048); err != nil {
//	    // reject
//	}
//
// # Schemes
//
// The set of schemes is fixed:
//   - pkcs1-sha1, pkcs1-sha256, pkcs1-sha384, pkcs1-sha512
//   - pkcs1-sha3-256, pkcs1-sha3-384, pkcs1-sha3-512
//   - pss-sha256, pss-sha384, pss-sha512
//   - pss-sha3-256, pss-sha3-384, pss-sha3-512
//
// PSS always uses a salt as long as the digest output and MGF1 over the same
// digest.
//
// # Security
//
// Every verification failure returns the same ErrVerification value. The
// failing step is never reported, so a verifier cannot be used as a padding
// oracle.
//
// Building with the verifyonly tag leaves out the Encode methods.
package padding

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/forcebit/rsapad-go/pkg/digest"
)

// MaxModulusBits is the largest RSA modulus the schemes accept.
const MaxModulusBits = 8192

// MaxEncodedLen is the largest encoded block, in bytes.
const MaxEncodedLen = MaxModulusBits / 8

var (
	// ErrVerification is returned for every rejected block.
	ErrVerification = errors.New("padding: verification failed")

	// ErrEntropyUnavailable is returned when the random source cannot supply a salt.
	ErrEntropyUnavailable = errors.New("padding: entropy unavailable")

	// ErrBufferLength is returned when an output buffer does not hold exactly ceil(bitLen/8) bytes.
	ErrBufferLength = errors.New("padding: output buffer length does not match modulus")

	// ErrInvalidBitLength is returned for a modulus size outside (0, MaxModulusBits].
	ErrInvalidBitLength = errors.New("padding: invalid modulus bit length")

	// ErrModulusTooSmall is returned when the block cannot hold the mandatory padding.
	ErrModulusTooSmall = errors.New("padding: modulus too small for digest")

	// ErrMaskTooLong is returned when MGF1 would need more than 2^32 digest blocks.
	ErrMaskTooLong = errors.New("padding: mask too long")
)

// Scheme is the verification capability shared by every padding scheme.
//
// Implementations are immutable and safe for concurrent use.
type Scheme interface {
	// ID returns the scheme identifier, e.g. "pss-sha256".
	ID() string

	// Digest returns the digest algorithm the scheme is bound to.
	Digest() *digest.Algorithm

	// Verify checks that encoded is a valid encoding of message for a
	// modulus of bitLen bits. It returns nil or ErrVerification.
	Verify(message, encoded []byte, bitLen int) error
}

// Encoder is the signing capability. It is only available when the package
// is built without the verifyonly tag.
type Encoder interface {
	Scheme

	// Encode writes the encoding of message into out, which must be exactly
	// ceil(bitLen/8) bytes long. rand supplies the PSS salt; nil selects
	// crypto/rand.Reader. PKCS#1 v1.5 ignores it.
	Encode(message, out []byte, bitLen int, rand io.Reader) error
}

// AsEncoder returns the signing capability of s, if this build provides one.
func AsEncoder(s Scheme) (Encoder, bool) {
	e, ok := s.(Encoder)
	return e, ok
}

var schemes = map[string]Scheme{}

func init() {
	for _, s := range []Scheme{
		PKCS1SHA1, PKCS1SHA256, PKCS1SHA384, PKCS1SHA512,
		PKCS1SHA3_256, PKCS1SHA3_384, PKCS1SHA3_512,
		PSSSHA256, PSSSHA384, PSSSHA512,
		PSSSHA3_256, PSSSHA3_384, PSSSHA3_512,
	} {
		schemes[s.ID()] = s
	}
}

// GetScheme retrieves a scheme by its identifier.
func GetScheme(id string) (Scheme, error) {
	if id == "" {
		return nil, fmt.Errorf("scheme ID cannot be empty")
	}
	s, ok := schemes[id]
	if !ok {
		return nil, fmt.Errorf("unsupported padding scheme: %q", id)
	}
	return s, nil
}

// SupportedSchemes returns the identifiers of every scheme, sorted.
func SupportedSchemes() []string {
	ids := make([]string, 0, len(schemes))
	for id := range schemes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// encodedLen returns ceil(bitLen/8) after range-checking bitLen.
func encodedLen(bitLen int) (int, error) {
	if bitLen <= 0 || bitLen > MaxModulusBits {
		return 0, fmt.Errorf("%w: %d", ErrInvalidBitLength, bitLen)
	}
	return (bitLen + 7) / 8, nil
}

// checkOutput validates an Encode destination buffer.
func checkOutput(out []byte, bitLen int) error {
	k, err := encodedLen(bitLen)
	if err != nil {
		return err
	}
	if len(out) != k {
		return fmt.Errorf("%w: got %d bytes, want %d for %d-bit modulus", ErrBufferLength, len(out), k, bitLen)
	}
	return nil
}
