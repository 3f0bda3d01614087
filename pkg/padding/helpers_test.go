package padding

import (
	"crypto/rand"
	"crypto/rsa"
	"math/big"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	testKeysMu sync.Mutex
	testKeys   = map[int]*rsa.PrivateKey{}
)

// testKey returns a cached RSA key with an exact modulus size.
func testKey(t testing.TB, bits int) *rsa.PrivateKey {
	t.Helper()
	testKeysMu.Lock()
	defer testKeysMu.Unlock()
	if k, ok := testKeys[bits]; ok {
		return k
	}
	k, err := rsa.GenerateKey(rand.Reader, bits)
	require.NoError(t, err)
	require.Equal(t, bits, k.N.BitLen())
	testKeys[bits] = k
	return k
}

// openSignature applies the public exponent and returns the k-byte block.
func openSignature(pub *rsa.PublicKey, sig []byte) []byte {
	m := new(big.Int).Exp(new(big.Int).SetBytes(sig), big.NewInt(int64(pub.E)), pub.N)
	return m.FillBytes(make([]byte, (pub.N.BitLen()+7)/8))
}

// buildPKCS1 assembles a PKCS#1 v1.5 block by hand.
func buildPKCS1(pad int, prefix, hashed []byte) []byte {
	b := []byte{0x00, 0x01}
	for i := 0; i < pad; i++ {
		b = append(b, 0xff)
	}
	b = append(b, 0x00)
	b = append(b, prefix...)
	return append(b, hashed...)
}

// pssSchemes lists every PSS scheme.
var pssSchemes = []*PSS{PSSSHA256, PSSSHA384, PSSSHA512, PSSSHA3_256, PSSSHA3_384, PSSSHA3_512}

// pkcs1Schemes lists every PKCS#1 v1.5 scheme.
var pkcs1Schemes = []*PKCS1{PKCS1SHA1, PKCS1SHA256, PKCS1SHA384, PKCS1SHA512, PKCS1SHA3_256, PKCS1SHA3_384, PKCS1SHA3_512}
