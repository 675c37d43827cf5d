package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every parse and mapping error.
var ErrInvalidConfig = errors.New("invalid config")

// Parse decodes a conventions document. Unknown keys are rejected; an empty
// document decodes to the zero value.
func Parse(b []byte) (Conventions, error) {
	var dto Conventions
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&dto); err != nil && !errors.Is(err, io.EOF) {
		return Conventions{}, fmt.Errorf("config.Parse: %w: %w", err, ErrInvalidConfig)
	}
	return dto, nil
}

// LoadFile reads and decodes the conventions document at path.
func LoadFile(path string) (Conventions, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Conventions{}, fmt.Errorf("config.LoadFile: %w", err)
	}
	dto, err := Parse(b)
	if err != nil {
		return Conventions{}, fmt.Errorf("%s: %w", path, err)
	}
	return dto, nil
}
