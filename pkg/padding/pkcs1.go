package padding

import (
	"crypto/subtle"

	"github.com/forcebit/rsapad-go/pkg/digest"
)

// minPKCS1PadLen is the minimum number of 0xFF padding bytes.
const minPKCS1PadLen = 8

// PKCS1 implements EMSA-PKCS1-v1_5 (RFC 8017 Section 9.2):
//
//	00 || 01 || FF..FF (at least 8) || 00 || DigestInfo prefix || Hash(M)
//
// DEPRECATED for new deployments: the encoding is deterministic and PKCS#1
// v1.5 verifiers have a long history of lenient-parsing forgeries. Prefer PSS.
type PKCS1 struct {
	id     string
	alg    *digest.Algorithm
	prefix []byte
}

// PKCS#1 v1.5 schemes.
var (
	PKCS1SHA1     = &PKCS1{id: "pkcs1-sha1", alg: digest.SHA1, prefix: sha1DigestInfoPrefix}
	PKCS1SHA256   = &PKCS1{id: "pkcs1-sha256", alg: digest.SHA256, prefix: sha256DigestInfoPrefix}
	PKCS1SHA384   = &PKCS1{id: "pkcs1-sha384", alg: digest.SHA384, prefix: sha384DigestInfoPrefix}
	PKCS1SHA512   = &PKCS1{id: "pkcs1-sha512", alg: digest.SHA512, prefix: sha512DigestInfoPrefix}
	PKCS1SHA3_256 = &PKCS1{id: "pkcs1-sha3-256", alg: digest.SHA3256, prefix: sha3_256DigestInfoPrefix}
	PKCS1SHA3_384 = &PKCS1{id: "pkcs1-sha3-384", alg: digest.SHA3384, prefix: sha3_384DigestInfoPrefix}
	PKCS1SHA3_512 = &PKCS1{id: "pkcs1-sha3-512", alg: digest.SHA3512, prefix: sha3_512DigestInfoPrefix}
)

// ID returns the scheme identifier.
func (p *PKCS1) ID() string { return p.id }

// Digest returns the bound digest algorithm.
func (p *PKCS1) Digest() *digest.Algorithm { return p.alg }

// DigestInfoPrefix returns a copy of the DER prefix placed before the digest.
func (p *PKCS1) DigestInfoPrefix() []byte {
	return append([]byte(nil), p.prefix...)
}

// MinEncodedLen returns the smallest block, in bytes, that holds the
// mandatory 3 fixed bytes, 8 padding bytes, prefix and digest.
func (p *PKCS1) MinEncodedLen() int {
	return len(p.prefix) + p.alg.OutputLen() + 3 + minPKCS1PadLen
}

// Verify checks encoded against message.
//
// A block of a given length has exactly one valid encoding, so the whole
// block is compared against it in constant time. This rejects, with the same
// error, a wrong leading byte, a short or broken 0xFF run, a missing
// terminator, a wrong prefix, a wrong digest and trailing bytes.
func (p *PKCS1) Verify(message, encoded []byte, bitLen int) error {
	k, err := encodedLen(bitLen)
	if err != nil || len(encoded) != k || k < p.MinEncodedLen() {
		return ErrVerification
	}

	var buf [MaxEncodedLen]byte
	expected := buf[:k]
	p.fill(expected, p.alg.Sum(message))

	if subtle.ConstantTimeCompare(expected, encoded) != 1 {
		return ErrVerification
	}
	return nil
}

// fill writes 00 01 FF..FF 00 prefix hashed into out. The caller guarantees
// len(out) >= MinEncodedLen.
func (p *PKCS1) fill(out, hashed []byte) {
	padLen := len(out) - len(p.prefix) - len(hashed) - 3
	out[0] = 0x00
	out[1] = 0x01
	for i := 0; i < padLen; i++ {
		out[2+i] = 0xff
	}
	out[2+padLen] = 0x00
	copy(out[3+padLen:], p.prefix)
	copy(out[3+padLen+len(p.prefix):], hashed)
}
