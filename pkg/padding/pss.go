package padding

import (
	"crypto/subtle"

	"github.com/forcebit/rsapad-go/pkg/digest"
)

// PSS implements EMSA-PSS (RFC 8017 Section 9.1) with MGF1 over the scheme's
// digest and a salt as long as the digest output:
//
//	EM = maskedDB || H || 0xBC
//	DB = 00..00 || 01 || salt
//	maskedDB = DB XOR MGF1(H, len(DB))
//	H = Hash(00 00 00 00 00 00 00 00 || Hash(M) || salt)
type PSS struct {
	id  string
	alg *digest.Algorithm
}

// PSS schemes. There is no SHA-1 variant.
var (
	PSSSHA256   = &PSS{id: "pss-sha256", alg: digest.SHA256}
	PSSSHA384   = &PSS{id: "pss-sha384", alg: digest.SHA384}
	PSSSHA512   = &PSS{id: "pss-sha512", alg: digest.SHA512}
	PSSSHA3_256 = &PSS{id: "pss-sha3-256", alg: digest.SHA3256}
	PSSSHA3_384 = &PSS{id: "pss-sha3-384", alg: digest.SHA3384}
	PSSSHA3_512 = &PSS{id: "pss-sha3-512", alg: digest.SHA3512}
)

var pssPrefixZeros [8]byte

// ID returns the scheme identifier.
func (p *PSS) ID() string { return p.id }

// Digest returns the bound digest algorithm, also used by MGF1.
func (p *PSS) Digest() *digest.Algorithm { return p.alg }

// SaltLen returns the salt length in bytes.
func (p *PSS) SaltLen() int { return p.alg.OutputLen() }

// pssLayout places EM inside a ceil(bitLen/8)-byte block. With
// emBits = bitLen-1 the encoded message is ceil(emBits/8) bytes; when bitLen%8
// is 1 that is one byte short and the block starts with a fixed zero byte.
// topMask keeps the emBits low bits of the first EM byte.
func pssLayout(bitLen int) (offset, emLen int, topMask byte) {
	emBits := bitLen - 1
	emLen = (emBits + 7) / 8
	offset = (bitLen+7)/8 - emLen
	topMask = byte(0xff >> uint(8*emLen-emBits))
	return offset, emLen, topMask
}

// TopByteMask returns the mask applied to the first encoded-message byte for
// a modulus of bitLen bits.
func TopByteMask(bitLen int) byte {
	_, _, m := pssLayout(bitLen)
	return m
}

func (p *PSS) saltedHash(mHash, salt []byte) []byte {
	h := p.alg.New()
	h.Write(pssPrefixZeros[:])
	h.Write(mHash)
	h.Write(salt)
	return h.Sum(nil)
}

// Verify checks encoded against message per RFC 8017 Section 9.1.2.
// encoded is not modified.
func (p *PSS) Verify(message, encoded []byte, bitLen int) error {
	var buf [MaxEncodedLen]byte
	return p.verify(message, encoded, bitLen, &buf)
}

// verify unmasks DB into scratch and zeroes scratch before returning.
func (p *PSS) verify(message, encoded []byte, bitLen int, scratch *[MaxEncodedLen]byte) error {
	defer clear(scratch[:])

	k, err := encodedLen(bitLen)
	if err != nil || len(encoded) != k {
		return ErrVerification
	}

	hLen := p.alg.OutputLen()
	offset, emLen, topMask := pssLayout(bitLen)
	if emLen < 2*hLen+2 {
		return ErrVerification
	}
	if offset == 1 && encoded[0] != 0 {
		return ErrVerification
	}

	em := encoded[offset:]
	dbLen := emLen - hLen - 1
	maskedDB := em[:dbLen]
	h := em[dbLen : dbLen+hLen]
	if em[emLen-1] != 0xbc {
		return ErrVerification
	}
	if maskedDB[0]&^topMask != 0 {
		return ErrVerification
	}

	db := scratch[:dbLen]
	copy(db, maskedDB)
	mgf1XOR(p.alg, h, db)
	db[0] &= topMask

	padLen := dbLen - hLen - 1
	var nonZero byte
	for _, b := range db[:padLen] {
		nonZero |= b
	}
	if nonZero != 0 || db[padLen] != 0x01 {
		return ErrVerification
	}

	salt := db[padLen+1:]
	if subtle.ConstantTimeCompare(h, p.saltedHash(p.alg.Sum(message), salt)) != 1 {
		return ErrVerification
	}
	return nil
}
