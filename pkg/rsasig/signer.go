package rsasig

import (
	"crypto/rsa"
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

// SignerOptions configures a Signer.
type SignerOptions struct {
	Algorithm string
	Key       *rsa.PrivateKey

	// Rand supplies PSS salts and blinding factors. Defaults to crypto/rand.Reader.
	Rand io.Reader

	// MinKeyBits raises or lowers the key size floor. Zero means MinKeyBits.
	MinKeyBits int

	Logger *zerolog.Logger
}

// Signer signs messages with a fixed algorithm and private key.
type Signer struct {
	alg     *rsaAlgorithm
	key     *rsa.PrivateKey
	rand    io.Reader
	minBits int
	log     zerolog.Logger
}

// NewSigner creates a Signer with the provided options.
func NewSigner(opts SignerOptions) (*Signer, error) {
	if opts.Algorithm == "" {
		return nil, fmt.Errorf("algorithm is required")
	}
	if opts.Key == nil {
		return nil, fmt.Errorf("signing key is required")
	}

	alg, err := lookup(opts.Algorithm)
	if err != nil {
		return nil, err
	}

	minBits := opts.MinKeyBits
	if minBits == 0 {
		minBits = MinKeyBits
	}
	if err := checkMinBits(minBits); err != nil {
		return nil, err
	}
	if err := validateRSAPrivateKey(opts.Key, minBits); err != nil {
		return nil, err
	}

	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}

	return &Signer{
		alg:     alg,
		key:     opts.Key,
		rand:    opts.Rand,
		minBits: minBits,
		log:     log.With().Str("component", "signer").Str("algorithm", alg.id).Logger(),
	}, nil
}

// Algorithm returns the algorithm identifier the Signer uses.
func (s *Signer) Algorithm() string { return s.alg.id }

// PublicKey returns the public half of the signing key.
func (s *Signer) PublicKey() *rsa.PublicKey { return &s.key.PublicKey }

// Sign returns a signature over message, exactly as long as the modulus.
func (s *Signer) Sign(message []byte) ([]byte, error) {
	signature, err := s.alg.sign(message, s.key, s.rand, s.minBits)
	if err != nil {
		s.log.Debug().Msg("signing failed")
		return nil, err
	}
	s.log.Debug().
		Int("modulus_bits", s.key.N.BitLen()).
		Int("signature_len", len(signature)).
		Msg("message signed")
	return signature, nil
}
