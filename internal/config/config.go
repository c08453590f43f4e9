package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	derrors "git.home.luguber.info/inful/docsite/internal/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"gopkg.in/yaml.v3"
)

// Load reads, normalizes, defaults and validates the configuration at configPath.
// YAML and JSON files are both accepted.
func Load(configPath string) (*SiteConfig, error) {
	if envPath, err := loadEnvFile(); err != nil && !errors.Is(err, errNoEnvFile) {
		slog.Warn("Failed to load environment file", logfields.File(envPath), logfields.Error(err))
	}

	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		return nil, derrors.ConfigNotFound(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, derrors.FileSystemError("read", configPath, err)
	}

	cfg, res, err := parse(data)
	if err != nil {
		var dse *derrors.DocsiteError
		if errors.As(err, &dse) {
			return nil, dse.WithContext("path", configPath)
		}
		return nil, derrors.ConfigDecode(configPath, err)
	}
	for _, w := range res.Warnings {
		slog.Warn("Configuration normalized", logfields.Path(configPath), slog.String("change", w))
	}
	return cfg, nil
}

// Parse runs the load pipeline on in-memory configuration data.
func Parse(data []byte) (*SiteConfig, error) {
	cfg, _, err := parse(data)
	if err != nil {
		var dse *derrors.DocsiteError
		if errors.As(err, &dse) {
			return nil, err
		}
		return nil, derrors.ConfigDecode("<memory>", err)
	}
	return cfg, nil
}

func parse(data []byte) (*SiteConfig, *NormalizationResult, error) {
	cfg, err := Decode(bytes.NewReader(expandEnv(data)))
	if err != nil {
		return nil, nil, err
	}

	res := Normalize(cfg)
	ApplyDefaults(cfg)

	if err := Validate(cfg); err != nil {
		return nil, res, err
	}
	return cfg, res, nil
}

// Decode strictly decodes a single configuration document without any
// post-processing. Unknown keys are rejected.
func Decode(r io.Reader) (*SiteConfig, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var cfg SiteConfig
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("configuration is empty")
		}
		return nil, err
	}
	return &cfg, nil
}

// Marshal encodes the configuration as YAML.
func Marshal(cfg *SiteConfig) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return buf.Bytes(), nil
}

// Init writes the example configuration to configPath.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return derrors.ConfigExists(configPath)
	}

	data, err := Marshal(Example())
	if err != nil {
		return derrors.InternalError("marshal example configuration", err)
	}

	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return derrors.FileSystemError("write", configPath, err)
	}
	return nil
}
