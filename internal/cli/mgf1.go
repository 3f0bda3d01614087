package cli

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/forcebit/rsapad-go/pkg/digest"
	"github.com/forcebit/rsapad-go/pkg/padding"
)

const (
	FlagDigest = "digest"
	FlagSeed   = "seed"
	FlagLength = "length"
)

// maxMGF1Length caps command line masks; the library bound is far larger.
const maxMGF1Length = 1 << 20

func newMGF1Cmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mgf1",
		Short: "Print an MGF1 mask",
		Long: `Print the MGF1 mask of the given length for a hex seed, using any
supported digest (sha-1, sha-256, sha3-256, blake2b-512, ...).`,
		Args:              cobra.NoArgs,
		RunE:              runMGF1,
		DisableAutoGenTag: true,
	}
	cmd.Flags().String(FlagDigest, digest.AlgorithmSHA256, "digest algorithm")
	cmd.Flags().String(FlagSeed, "", "seed as hex")
	cmd.Flags().Int(FlagLength, 0, "mask length in bytes")
	_ = cmd.MarkFlagRequired(FlagLength)
	return cmd
}

func runMGF1(cmd *cobra.Command, _ []string) error {
	cfg := configFrom(cmd)

	id, err := cmd.Flags().GetString(FlagDigest)
	if err != nil {
		return fmt.Errorf("getting digest flag failed: %w", err)
	}
	alg, err := digest.Lookup(id)
	if err != nil {
		return err
	}
	seedHex, err := cmd.Flags().GetString(FlagSeed)
	if err != nil {
		return fmt.Errorf("getting seed flag failed: %w", err)
	}
	seed, err := hex.DecodeString(seedHex)
	if err != nil {
		return fmt.Errorf("invalid seed hex: %w", err)
	}
	n, err := cmd.Flags().GetInt(FlagLength)
	if err != nil {
		return fmt.Errorf("getting length flag failed: %w", err)
	}
	if n < 0 || n > maxMGF1Length {
		return fmt.Errorf("mask length %d outside 0..%d", n, maxMGF1Length)
	}

	mask := make([]byte, n)
	if err := padding.MGF1(alg, seed, mask); err != nil {
		return err
	}
	return writeLine(cmd, encodeBinary(cfg, mask))
}
