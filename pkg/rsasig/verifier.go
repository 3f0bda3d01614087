package rsasig

import (
	"crypto/rsa"
	"fmt"

	"github.com/rs/zerolog"
)

// VerifierOptions configures a Verifier.
type VerifierOptions struct {
	Algorithm string
	Key       *rsa.PublicKey

	// MinKeyBits raises or lowers the key size floor. Zero means MinKeyBits.
	MinKeyBits int

	Logger *zerolog.Logger
}

// Verifier checks signatures with a fixed algorithm and public key.
type Verifier struct {
	alg *rsaAlgorithm
	key *rsa.PublicKey
	log zerolog.Logger
}

// NewVerifier creates a Verifier with the provided options.
func NewVerifier(opts VerifierOptions) (*Verifier, error) {
	if opts.Algorithm == "" {
		return nil, fmt.Errorf("algorithm is required")
	}
	if opts.Key == nil {
		return nil, fmt.Errorf("verification key is required")
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
	if err := validateRSAPublicKey(opts.Key, minBits); err != nil {
		return nil, err
	}

	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}

	return &Verifier{
		alg: alg,
		key: opts.Key,
		log: log.With().Str("component", "verifier").Str("algorithm", alg.id).Logger(),
	}, nil
}

// Algorithm returns the algorithm identifier the Verifier uses.
func (v *Verifier) Algorithm() string { return v.alg.id }

// Verify returns nil when signature is a valid signature over message, and
// ErrVerification otherwise.
func (v *Verifier) Verify(message, signature []byte) error {
	if err := v.alg.verify(message, signature, v.key); err != nil {
		v.log.Debug().Int("signature_len", len(signature)).Msg("signature rejected")
		return err
	}
	v.log.Debug().Int("modulus_bits", v.key.N.BitLen()).Msg("signature verified")
	return nil
}
