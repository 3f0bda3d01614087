package padding

import (
	"encoding/binary"
	"math"

	"github.com/forcebit/rsapad-go/pkg/digest"
)

// MGF1 fills mask with the MGF1 expansion of seed (RFC 8017 Appendix B.2.1):
//
//	Hash(seed || BE32(0)) || Hash(seed || BE32(1)) || ...
//
// truncated to len(mask). The output is deterministic in seed and len(mask).
func MGF1(alg *digest.Algorithm, seed, mask []byte) error {
	if err := checkMaskLen(alg, len(mask)); err != nil {
		return err
	}
	clear(mask)
	mgf1XOR(alg, seed, mask)
	return nil
}

func checkMaskLen(alg *digest.Algorithm, n int) error {
	if n == 0 {
		return nil
	}
	if uint64(n-1)/uint64(alg.OutputLen()) > math.MaxUint32 {
		return ErrMaskTooLong
	}
	return nil
}

// mgf1XOR XORs the MGF1 mask for seed into out. Callers bound len(out) by
// MaxEncodedLen, so the counter cannot overflow.
func mgf1XOR(alg *digest.Algorithm, seed, out []byte) {
	var counter [4]byte
	var block [digest.MaxOutputLen]byte

	h := alg.New()
	for c, done := uint32(0), 0; done < len(out); c++ {
		binary.BigEndian.PutUint32(counter[:], c)
		h.Reset()
		h.Write(seed)
		h.Write(counter[:])
		sum := h.Sum(block[:0])
		for _, b := range sum {
			if done == len(out) {
				break
			}
			out[done] ^= b
			done++
		}
	}
}
