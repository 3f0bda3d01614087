//go:build !verifyonly

package padding

import (
	"bytes"
	"crypto"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"math/big"
	"sync"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rawSign applies the private exponent to an encoded block.
func rawSign(key *rsa.PrivateKey, em []byte) []byte {
	s := new(big.Int).Exp(new(big.Int).SetBytes(em), key.D, key.N)
	return s.FillBytes(make([]byte, (key.N.BitLen()+7)/8))
}

// TestPKCS1_EncodeLayout tests the byte layout for SHA-256 and a 256-byte modulus.
func TestPKCS1_EncodeLayout(t *testing.T) {
	out := make([]byte, 256)
	require.NoError(t, PKCS1SHA256.Encode([]byte("test"), out, 2048, nil))

	hashed := sha256.Sum256([]byte("test"))
	assert.Equal(t, byte(0x00), out[0])
	assert.Equal(t, byte(0x01), out[1])
	assert.Equal(t, bytes.Repeat([]byte{0xff}, 202), out[2:204])
	assert.Equal(t, byte(0x00), out[204])
	assert.Equal(t, sha256DigestInfoPrefix, out[205:224])
	assert.Equal(t, hashed[:], out[224:256])

	assert.NoError(t, PKCS1SHA256.Verify([]byte("test"), out, 2048))
	assert.ErrorIs(t, PKCS1SHA256.Verify([]byte("Test"), out, 2048), ErrVerification)

	out[255] ^= 0x01
	assert.ErrorIs(t, PKCS1SHA256.Verify([]byte("test"), out, 2048), ErrVerification)
}

// TestPKCS1_EncodeDeterministic tests that encoding ignores the random source.
func TestPKCS1_EncodeDeterministic(t *testing.T) {
	a := make([]byte, 384)
	b := make([]byte, 384)
	require.NoError(t, PKCS1SHA512.Encode([]byte("message"), a, 3072, nil))
	require.NoError(t, PKCS1SHA512.Encode([]byte("message"), b, 3072, iotest.ErrReader(errors.New("unused"))))
	assert.Equal(t, a, b)
}

// TestPKCS1_EncodeMatchesStdlib tests byte equality with the block inside a crypto/rsa signature.
func TestPKCS1_EncodeMatchesStdlib(t *testing.T) {
	key := testKey(t, 2048)
	msg := []byte("interop with crypto/rsa")

	tests := []struct {
		scheme *PKCS1
		hash   crypto.Hash
	}{
		{PKCS1SHA1, crypto.SHA1},
		{PKCS1SHA256, crypto.SHA256},
		{PKCS1SHA384, crypto.SHA384},
		{PKCS1SHA512, crypto.SHA512},
	}

	for _, tt := range tests {
		t.Run(tt.scheme.ID(), func(t *testing.T) {
			sig, err := rsa.SignPKCS1v15(nil, key, tt.hash, tt.scheme.Digest().Sum(msg))
			require.NoError(t, err)

			out := make([]byte, 256)
			require.NoError(t, tt.scheme.Encode(msg, out, 2048, nil))
			assert.Equal(t, openSignature(&key.PublicKey, sig), out)
			assert.Equal(t, sig, rawSign(key, out))
		})
	}
}

// TestPKCS1_EncodeMinimumPadding tests that fewer than 8 padding bytes is refused.
func TestPKCS1_EncodeMinimumPadding(t *testing.T) {
	for _, s := range pkcs1Schemes {
		t.Run(s.ID(), func(t *testing.T) {
			minLen := s.MinEncodedLen()

			out := make([]byte, minLen)
			require.NoError(t, s.Encode([]byte("m"), out, minLen*8, nil))
			assert.Equal(t, bytes.Repeat([]byte{0xff}, 8), out[2:10])
			assert.NoError(t, s.Verify([]byte("m"), out, minLen*8))

			short := bytes.Repeat([]byte{0xaa}, minLen-1)
			err := s.Encode([]byte("m"), short, (minLen-1)*8, nil)
			require.ErrorIs(t, err, ErrModulusTooSmall)
			assert.Equal(t, bytes.Repeat([]byte{0xaa}, minLen-1), short, "buffer written on failure")
		})
	}
}

// TestEncode_ContractViolations tests buffer and bit length checks on both schemes.
func TestEncode_ContractViolations(t *testing.T) {
	tests := []struct {
		name    string
		outLen  int
		bitLen  int
		wantErr error
	}{
		{"buffer too long", 257, 2048, ErrBufferLength},
		{"buffer too short", 255, 2048, ErrBufferLength},
		{"buffer not rounded up", 256, 2049, ErrBufferLength},
		{"zero bit length", 0, 0, ErrInvalidBitLength},
		{"negative bit length", 0, -8, ErrInvalidBitLength},
		{"modulus too large", MaxEncodedLen + 1, MaxModulusBits + 8, ErrInvalidBitLength},
	}

	for _, s := range []Encoder{PKCS1SHA256, PSSSHA256} {
		for _, tt := range tests {
			t.Run(s.ID()+"/"+tt.name, func(t *testing.T) {
				out := bytes.Repeat([]byte{0xaa}, tt.outLen)
				err := s.Encode([]byte("m"), out, tt.bitLen, nil)
				require.ErrorIs(t, err, tt.wantErr)
				assert.NotErrorIs(t, err, ErrVerification)
				assert.Equal(t, bytes.Repeat([]byte{0xaa}, tt.outLen), out)
			})
		}
	}
}

// TestEncode_RoundTrip tests Verify(Encode(m)) for every scheme and many modulus sizes.
func TestEncode_RoundTrip(t *testing.T) {
	msg := []byte("round trip message")
	bitLens := []int{1024, 1025, 1026, 1031, 1535, 2048, 2049, 3072, 4096, 8191, 8192}

	var schemes []Encoder
	for _, s := range pkcs1Schemes {
		schemes = append(schemes, s)
	}
	for _, s := range pssSchemes {
		schemes = append(schemes, s)
	}

	for _, s := range schemes {
		for _, bitLen := range bitLens {
			out := make([]byte, (bitLen+7)/8)
			if err := s.Encode(msg, out, bitLen, nil); err != nil {
				require.ErrorIs(t, err, ErrModulusTooSmall, "%s/%d", s.ID(), bitLen)
				continue
			}
			assert.NoError(t, s.Verify(msg, out, bitLen), "%s/%d", s.ID(), bitLen)
			assert.ErrorIs(t, s.Verify([]byte("other"), out, bitLen), ErrVerification, "%s/%d", s.ID(), bitLen)
		}
	}
}

// TestPSS_EncodeKnownAnswers tests encoding with a fixed salt.
func TestPSS_EncodeKnownAnswers(t *testing.T) {
	for _, v := range pssVectors {
		out := make([]byte, (v.bitLen+7)/8)
		require.NoError(t, PSSSHA256.Encode([]byte("test"), out, v.bitLen, bytes.NewReader(vectorSalt())))
		assert.Equal(t, v.em, hex.EncodeToString(out), "bitLen %d", v.bitLen)
	}
}

// TestPSS_EncodeStaleBuffer tests that previous buffer contents do not leak into the block.
func TestPSS_EncodeStaleBuffer(t *testing.T) {
	out := bytes.Repeat([]byte{0xff}, 129)
	require.NoError(t, PSSSHA256.Encode([]byte("test"), out, 1025, bytes.NewReader(vectorSalt())))
	assert.Equal(t, pssVectors[1].em, hex.EncodeToString(out))
}

// TestPSS_EncodeRandomized tests that two encodings differ but both verify.
func TestPSS_EncodeRandomized(t *testing.T) {
	a := make([]byte, 256)
	b := make([]byte, 256)
	require.NoError(t, PSSSHA256.Encode([]byte("m"), a, 2048, nil))
	require.NoError(t, PSSSHA256.Encode([]byte("m"), b, 2048, nil))
	assert.NotEqual(t, a, b)
	assert.NoError(t, PSSSHA256.Verify([]byte("m"), a, 2048))
	assert.NoError(t, PSSSHA256.Verify([]byte("m"), b, 2048))
}

// TestPSS_EncodeEntropyUnavailable tests that salt failures surface as ErrEntropyUnavailable.
func TestPSS_EncodeEntropyUnavailable(t *testing.T) {
	cause := errors.New("entropy pool empty")
	out := bytes.Repeat([]byte{0xaa}, 256)

	err := PSSSHA256.Encode([]byte("m"), out, 2048, iotest.ErrReader(cause))
	require.ErrorIs(t, err, ErrEntropyUnavailable)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrVerification)
	assert.Equal(t, bytes.Repeat([]byte{0xaa}, 256), out)

	// A source that runs dry mid-salt.
	err = PSSSHA256.Encode([]byte("m"), out, 2048, bytes.NewReader(make([]byte, 10)))
	require.ErrorIs(t, err, ErrEntropyUnavailable)
	assert.Equal(t, bytes.Repeat([]byte{0xaa}, 256), out)
}

// TestPSS_EncodeModulusTooSmall tests the emLen >= 2*hLen+2 bound on encode.
func TestPSS_EncodeModulusTooSmall(t *testing.T) {
	// SHA-512 needs 130 bytes of EM.
	out := make([]byte, 129)
	require.NoError(t, PSSSHA512.Encode([]byte("m"), make([]byte, 130), 1040, nil))
	require.ErrorIs(t, PSSSHA512.Encode([]byte("m"), out, 1032, nil), ErrModulusTooSmall)
	// 1041 bits still yields a 130-byte EM behind a leading zero byte.
	require.NoError(t, PSSSHA512.Encode([]byte("m"), make([]byte, 131), 1041, nil))
	// 1033 bits has a 129-byte EM.
	require.ErrorIs(t, PSSSHA512.Encode([]byte("m"), make([]byte, 130), 1033, nil), ErrModulusTooSmall)
}

// TestPSS_EncodeTopBits tests that exactly the excess high bits are cleared.
func TestPSS_EncodeTopBits(t *testing.T) {
	for _, bitLen := range []int{2048, 2049, 2050, 2053, 2055} {
		offset, emLen, topMask := pssLayout(bitLen)
		hLen := 32
		dbLen := emLen - hLen - 1

		for i := 0; i < 32; i++ {
			out := make([]byte, (bitLen+7)/8)
			require.NoError(t, PSSSHA256.Encode([]byte("m"), out, bitLen, nil))

			em := out[offset:]
			h := em[dbLen : dbLen+hLen]
			mask := make([]byte, dbLen)
			require.NoError(t, MGF1(PSSSHA256.Digest(), h, mask))

			if offset == 1 {
				require.Zero(t, out[0], "bitLen %d", bitLen)
			}
			// DB[0] is zero padding, so the first EM byte is the mask byte
			// with only the excess bits cleared.
			require.Equal(t, mask[0]&topMask, em[0], "bitLen %d", bitLen)
		}
	}
}

// TestPSS_EncodeVerifiedByStdlib tests that crypto/rsa accepts signatures over our blocks.
func TestPSS_EncodeVerifiedByStdlib(t *testing.T) {
	msg := []byte("interop with crypto/rsa")
	tests := []struct {
		scheme *PSS
		hash   crypto.Hash
		bits   int
	}{
		{PSSSHA256, crypto.SHA256, 1024},
		{PSSSHA256, crypto.SHA256, 1025},
		{PSSSHA256, crypto.SHA256, 1031},
		{PSSSHA384, crypto.SHA384, 2048},
		{PSSSHA512, crypto.SHA512, 2049},
	}

	for _, tt := range tests {
		t.Run(tt.scheme.ID(), func(t *testing.T) {
			key := testKey(t, tt.bits)
			out := make([]byte, (tt.bits+7)/8)
			require.NoError(t, tt.scheme.Encode(msg, out, tt.bits, nil))

			sig := rawSign(key, out)
			opts := &rsa.PSSOptions{SaltLength: rsa.PSSSaltLengthEqualsHash, Hash: tt.hash}
			assert.NoError(t, rsa.VerifyPSS(&key.PublicKey, tt.hash, tt.scheme.Digest().Sum(msg), sig, opts))
		})
	}
}

// TestEncode_Concurrent tests that shared scheme values are safe for concurrent use.
func TestEncode_Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	errs := make(chan error, 64)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s := Encoder(PSSSHA384)
			if i%2 == 0 {
				s = PKCS1SHA384
			}
			msg := []byte{byte(i)}
			out := make([]byte, 512)
			if err := s.Encode(msg, out, 4096, nil); err != nil {
				errs <- err
				return
			}
			if err := s.Verify(msg, out, 4096); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}
