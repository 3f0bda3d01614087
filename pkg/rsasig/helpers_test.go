package rsasig

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
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

// stdlibCases maps algorithms to the crypto/rsa parameters that produce the
// same signatures.
var stdlibCases = []struct {
	id   string
	hash crypto.Hash
	pss  bool
}{
	{"rsa-pss-sha256", crypto.SHA256, true},
	{"rsa-pss-sha384", crypto.SHA384, true},
	{"rsa-pss-sha512", crypto.SHA512, true},
	{"rsa-v1_5-sha1", crypto.SHA1, false},
	{"rsa-v1_5-sha256", crypto.SHA256, false},
	{"rsa-v1_5-sha384", crypto.SHA384, false},
	{"rsa-v1_5-sha512", crypto.SHA512, false},
}

// stdlibSign signs message with crypto/rsa.
func stdlibSign(t testing.TB, key *rsa.PrivateKey, hash crypto.Hash, pss bool, message []byte) []byte {
	t.Helper()
	h := hash.New()
	h.Write(message)
	hashed := h.Sum(nil)

	var sig []byte
	var err error
	if pss {
		sig, err = rsa.SignPSS(rand.Reader, key, hash, hashed, &rsa.PSSOptions{SaltLength: rsa.PSSSaltLengthEqualsHash})
	} else {
		sig, err = rsa.SignPKCS1v15(nil, key, hash, hashed)
	}
	require.NoError(t, err)
	return sig
}

// stdlibVerify verifies signature with crypto/rsa.
func stdlibVerify(key *rsa.PublicKey, hash crypto.Hash, pss bool, message, signature []byte) error {
	h := hash.New()
	h.Write(message)
	hashed := h.Sum(nil)
	if pss {
		return rsa.VerifyPSS(key, hash, hashed, signature, &rsa.PSSOptions{SaltLength: rsa.PSSSaltLengthAuto})
	}
	return rsa.VerifyPKCS1v15(key, hash, hashed, signature)
}
