// Package config loads rsapad settings from a YAML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/forcebit/rsapad-go/pkg/padding"
	"github.com/forcebit/rsapad-go/pkg/rsasig"
)

// Output encodings for binary values.
const (
	EncodingHex    = "hex"
	EncodingBase64 = "base64"
)

// Log formats.
const (
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

// Config holds defaults for every command.
type Config struct {
	Algorithm      string `yaml:"algorithm"`
	Scheme         string `yaml:"scheme"`
	Encoding       string `yaml:"encoding"`
	MinKeyBits     int    `yaml:"minKeyBits"`
	PrivateKeyFile string `yaml:"privateKeyFile"`
	PublicKeyFile  string `yaml:"publicKeyFile"`
	Log            Log    `yaml:"log"`
}

// Log configures the CLI logger.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Algorithm:  "rsa-pss-sha512",
		Scheme:     padding.PSSSHA256.ID(),
		Encoding:   EncodingHex,
		MinKeyBits: rsasig.MinKeyBits,
		Log: Log{
			Level:  zerolog.InfoLevel.String(),
			Format: LogFormatConsole,
		},
	}
}

// Load reads the file at path over the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result. Unknown
// keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every invalid field.
func (c *Config) Validate() error {
	var errs []error
	if _, err := rsasig.GetAlgorithm(c.Algorithm); err != nil {
		errs = append(errs, fmt.Errorf("algorithm: %w", err))
	}
	if _, err := padding.GetScheme(c.Scheme); err != nil {
		errs = append(errs, fmt.Errorf("scheme: %w", err))
	}
	switch c.Encoding {
	case EncodingHex, EncodingBase64:
	default:
		errs = append(errs, fmt.Errorf("encoding: must be %q or %q, got %q", EncodingHex, EncodingBase64, c.Encoding))
	}
	if c.MinKeyBits < rsasig.LegacyMinKeyBits || c.MinKeyBits > rsasig.MaxKeyBits {
		errs = append(errs, fmt.Errorf("minKeyBits: %d outside %d..%d", c.MinKeyBits, rsasig.LegacyMinKeyBits, rsasig.MaxKeyBits))
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil || c.Log.Level == "" {
		errs = append(errs, fmt.Errorf("log.level: invalid level %q", c.Log.Level))
	}
	switch c.Log.Format {
	case LogFormatConsole, LogFormatJSON:
	default:
		errs = append(errs, fmt.Errorf("log.format: must be %q or %q, got %q", LogFormatConsole, LogFormatJSON, c.Log.Format))
	}
	return errors.Join(errs...)
}

// Logger builds a zerolog logger writing to w.
func (c *Config) Logger(w io.Writer) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(c.Log.Level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", c.Log.Level, err)
	}
	var out io.Writer
	switch c.Log.Format {
	case LogFormatJSON:
		out = w
	case LogFormatConsole:
		out = zerolog.ConsoleWriter{Out: w, NoColor: true}
	default:
		return zerolog.Nop(), fmt.Errorf("invalid log format: %s", c.Log.Format)
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger(), nil
}
