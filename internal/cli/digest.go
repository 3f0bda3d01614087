package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/forcebit/rsapad-go/pkg/digest"
)

func newDigestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "digest",
		Short: "Print the digest of a message",
		Long: `Print the digest a padding scheme would embed for a message. Files and
stdin are hashed as a stream.`,
		Args:              cobra.NoArgs,
		RunE:              runDigest,
		DisableAutoGenTag: true,
	}
	cmd.Flags().String(FlagDigest, digest.AlgorithmSHA256, "digest algorithm")
	addMessageFlags(cmd)
	return cmd
}

func runDigest(cmd *cobra.Command, _ []string) error {
	cfg := configFrom(cmd)

	id, err := cmd.Flags().GetString(FlagDigest)
	if err != nil {
		return fmt.Errorf("getting digest flag failed: %w", err)
	}

	path, err := cmd.Flags().GetString(FlagIn)
	if err != nil {
		return fmt.Errorf("getting in flag failed: %w", err)
	}

	var sum []byte
	switch {
	case cmd.Flags().Changed(FlagMessage):
		msg, err := readMessage(cmd)
		if err != nil {
			return err
		}
		sum, err = digest.ComputeDigest(msg, id)
		if err != nil {
			return err
		}
	case path == "" || path == "-":
		if sum, err = digest.ComputeDigestReader(cmd.InOrStdin(), id); err != nil {
			return err
		}
	default:
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("reading message file: %w", err)
		}
		defer f.Close()
		if sum, err = digest.ComputeDigestReader(f, id); err != nil {
			return err
		}
	}
	return writeLine(cmd, encodeBinary(cfg, sum))
}
