package server

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/iwvelando/buhcalc/internal/config"
	"github.com/iwvelando/buhcalc/pkg/constants"
	"gopkg.in/yaml.v3"
)

// Config defines runtime parameters for the HTTP server.
type Config struct {
	Address       string               `yaml:"address"`
	MaxBodySize   string               `yaml:"maxBodySize"`
	Logging       config.LoggingConfig `yaml:"logging"`
	Rates         config.RatesConfig   `yaml:"rates"`
	bodySizeBytes int64
}

// LoadConfig loads the server configuration from YAML. If the file does not exist,
// defaults are returned without error.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Address:       constants.DefaultServerAddress,
		MaxBodySize:   fmt.Sprintf("%d", constants.DefaultMaxBodySizeBytes),
		bodySizeBytes: constants.DefaultMaxBodySizeBytes,
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read server config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse server config: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// BodySizeBytes returns the request body limit in bytes.
func (c *Config) BodySizeBytes() int64 {
	return c.bodySizeBytes
}

// OverrideMaxBodySize replaces the configured request body limit with a
// human-friendly size such as "256K". An empty value keeps the current limit.
func (c *Config) OverrideMaxBodySize(value string) error {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	size, err := ParseSize(value)
	if err != nil {
		return err
	}
	if size <= 0 {
		return fmt.Errorf("max body size must be positive, got %q", value)
	}
	c.bodySizeBytes = size
	c.MaxBodySize = value
	return nil
}

func (c *Config) normalize() error {
	if c.Address == "" {
		c.Address = constants.DefaultServerAddress
	}

	sizeStr := strings.TrimSpace(c.MaxBodySize)
	if sizeStr == "" {
		c.bodySizeBytes = constants.DefaultMaxBodySizeBytes
		c.MaxBodySize = fmt.Sprintf("%d", constants.DefaultMaxBodySizeBytes)
		return nil
	}

	bytes, err := ParseSize(sizeStr)
	if err != nil {
		return err
	}
	if bytes <= 0 {
		bytes = constants.DefaultMaxBodySizeBytes
	}
	c.bodySizeBytes = bytes
	return nil
}

// ParseSize converts a human-friendly byte string (e.g., "64K", "1M") into bytes.
func ParseSize(value string) (int64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return constants.DefaultMaxBodySizeBytes, nil
	}

	upper := strings.ToUpper(trimmed)
	idx := len(upper)
	for idx > 0 && !unicode.IsDigit(rune(upper[idx-1])) {
		idx--
	}
	if idx == 0 {
		return 0, fmt.Errorf("invalid size: %s", value)
	}
	numPart := strings.TrimSpace(upper[:idx])
	unitPart := strings.TrimSpace(upper[idx:])

	n, err := strconv.ParseInt(numPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size value %q: %w", value, err)
	}

	var multiplier int64
	switch unitPart {
	case "", "B":
		multiplier = 1
	case "K", "KB":
		multiplier = 1024
	case "M", "MB":
		multiplier = 1024 * 1024
	default:
		return 0, fmt.Errorf("unsupported size unit %q", unitPart)
	}

	result := n * multiplier
	if result < 0 || (n != 0 && result/multiplier != n) {
		return 0, fmt.Errorf("size overflow for value %s", value)
	}
	return result, nil
}
