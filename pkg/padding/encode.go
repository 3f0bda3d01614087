//go:build !verifyonly

package padding

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/forcebit/rsapad-go/pkg/digest"
)

// SigningEnabled reports whether this build includes the Encode methods.
const SigningEnabled = true

// Encode writes the EMSA-PKCS1-v1_5 encoding of message into out. The
// encoding is deterministic; the random source is not read.
//
// out is left untouched when an error is returned.
func (p *PKCS1) Encode(message, out []byte, bitLen int, _ io.Reader) error {
	if err := checkOutput(out, bitLen); err != nil {
		return err
	}
	if len(out) < p.MinEncodedLen() {
		return fmt.Errorf("%w: %d-byte block leaves %d padding bytes for %s, need %d",
			ErrModulusTooSmall, len(out), len(out)-len(p.prefix)-p.alg.OutputLen()-3, p.id, minPKCS1PadLen)
	}
	p.fill(out, p.alg.Sum(message))
	return nil
}

// Encode writes the EMSA-PSS encoding of message into out using a fresh
// salt read from random (crypto/rand.Reader when nil).
//
// Length checks and the salt read happen before out is written, so out is
// left untouched when an error is returned.
func (p *PSS) Encode(message, out []byte, bitLen int, random io.Reader) error {
	if err := checkOutput(out, bitLen); err != nil {
		return err
	}

	hLen := p.alg.OutputLen()
	offset, emLen, topMask := pssLayout(bitLen)
	if emLen < 2*hLen+2 {
		return fmt.Errorf("%w: %d-byte encoded message for %s, need %d",
			ErrModulusTooSmall, emLen, p.id, 2*hLen+2)
	}

	if random == nil {
		random = rand.Reader
	}
	var saltBuf [digest.MaxOutputLen]byte
	salt := saltBuf[:hLen]
	defer clear(salt)
	if _, err := io.ReadFull(random, salt); err != nil {
		return fmt.Errorf("%w: %w", ErrEntropyUnavailable, err)
	}

	h := p.saltedHash(p.alg.Sum(message), salt)

	// The mask goes straight into the output; DB = PS || 01 || salt is then
	// XORed over it. PS is all zeros, so only the separator and salt matter.
	clear(out)
	em := out[offset:]
	dbLen := emLen - hLen - 1
	db := em[:dbLen]
	mgf1XOR(p.alg, h, db)

	padLen := dbLen - hLen - 1
	db[padLen] ^= 0x01
	for i, b := range salt {
		db[padLen+1+i] ^= b
	}
	db[0] &= topMask

	copy(em[dbLen:], h)
	em[emLen-1] = 0xbc
	return nil
}
