package chainconf

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// RegistryFile is the on-disk form of a chain catalog.
type RegistryFile struct {
	Chains []ChainDescriptor `yaml:"chains"`
}

// DecodeRegistry reads a YAML chain catalog from r and builds a registry from
// it. Unknown fields are rejected.
func DecodeRegistry(r io.Reader) (*Registry, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f RegistryFile
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode registry: %w", err)
	}

	return NewRegistry(f.Chains...)
}

// LoadRegistryFile reads the chain catalog at path.
func LoadRegistryFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read registry file: %w", err)
	}
	return DecodeRegistry(bytes.NewReader(data))
}
