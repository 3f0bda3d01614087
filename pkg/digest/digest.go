package digest

import (
	"fmt"
	"io"
)

// ComputeDigest hashes a message that is already in memory.
func ComputeDigest(message []byte, algorithm string) ([]byte, error) {
	h, err := NewDigester(algorithm)
	if err != nil {
		return nil, fmt.Errorf("failed to create digester: %w", err)
	}
	h.Write(message)
	return h.Sum(nil), nil
}

// ComputeDigestReader hashes everything r yields, without buffering it.
func ComputeDigestReader(r io.Reader, algorithm string) ([]byte, error) {
	h, err := NewDigester(algorithm)
	if err != nil {
		return nil, fmt.Errorf("failed to create digester: %w", err)
	}
	if _, err := io.Copy(h, r); err != nil {
		return nil, fmt.Errorf("failed to read message: %w", err)
	}
	return h.Sum(nil), nil
}
