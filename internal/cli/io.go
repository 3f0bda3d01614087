package cli

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/forcebit/rsapad-go/internal/config"
)

const (
	FlagMessage = "message"
	FlagIn      = "in"
)

// addMessageFlags registers the two ways of supplying a message.
func addMessageFlags(cmd *cobra.Command) {
	cmd.Flags().String(FlagMessage, "", "message given literally on the command line")
	cmd.Flags().String(FlagIn, "", `file holding the message, "-" for stdin (default stdin when --message is unset)`)
	cmd.MarkFlagsMutuallyExclusive(FlagMessage, FlagIn)
}

// readMessage returns the message selected by --message or --in.
func readMessage(cmd *cobra.Command) ([]byte, error) {
	if cmd.Flags().Changed(FlagMessage) {
		msg, err := cmd.Flags().GetString(FlagMessage)
		if err != nil {
			return nil, fmt.Errorf("getting message flag failed: %w", err)
		}
		return []byte(msg), nil
	}

	path, err := cmd.Flags().GetString(FlagIn)
	if err != nil {
		return nil, fmt.Errorf("getting in flag failed: %w", err)
	}
	if path == "" || path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("reading message from stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading message file: %w", err)
	}
	return data, nil
}

// encodeBinary renders b in the configured encoding.
func encodeBinary(cfg *config.Config, b []byte) string {
	if cfg.Encoding == config.EncodingBase64 {
		return base64.StdEncoding.EncodeToString(b)
	}
	return hex.EncodeToString(b)
}

// decodeBinary parses s in the configured encoding. Surrounding whitespace
// is ignored.
func decodeBinary(cfg *config.Config, s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if cfg.Encoding == config.EncodingBase64 {
		b, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return nil, fmt.Errorf("invalid base64: %w", err)
		}
		return b, nil
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex: %w", err)
	}
	return b, nil
}

// writeLine prints s followed by a newline to the command output.
func writeLine(cmd *cobra.Command, s string) error {
	_, err := fmt.Fprintln(cmd.OutOrStdout(), s)
	return err
}
