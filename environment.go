package chainconf

import (
	"encoding/json"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// ResolvedEnvironment is the immutable result of a resolution pass: an
// ordered mapping from network name to NetworkConfig that always contains
// the local network. It is safe for concurrent use.
type ResolvedEnvironment struct {
	networks []NetworkConfig
	byName   map[string]int
}

// newResolvedEnvironment freezes entries. The caller must not keep them.
func newResolvedEnvironment(entries []NetworkConfig) *ResolvedEnvironment {
	env := &ResolvedEnvironment{
		networks: entries,
		byName:   make(map[string]int, len(entries)),
	}
	for i, n := range entries {
		env.byName[n.Name] = i
	}
	return env
}

// Get returns the network registered under name.
func (e *ResolvedEnvironment) Get(name string) (NetworkConfig, error) {
	i, ok := e.byName[name]
	if !ok {
		return NetworkConfig{}, &NotFoundError{Name: name}
	}
	return e.networks[i].clone(), nil
}

// Has reports whether a network named name was resolved.
func (e *ResolvedEnvironment) Has(name string) bool {
	_, ok := e.byName[name]
	return ok
}

// Local returns the local simulated network.
func (e *ResolvedEnvironment) Local() NetworkConfig {
	for _, n := range e.networks {
		if n.Local {
			return n.clone()
		}
	}
	return NetworkConfig{}
}

// Remote returns the remote networks in registry order.
func (e *ResolvedEnvironment) Remote() []NetworkConfig {
	out := make([]NetworkConfig, 0, len(e.networks))
	for _, n := range e.networks {
		if !n.Local {
			out = append(out, n.clone())
		}
	}
	return out
}

// All returns every network, remote ones first in registry order.
func (e *ResolvedEnvironment) All() []NetworkConfig {
	out := make([]NetworkConfig, len(e.networks))
	for i, n := range e.networks {
		out[i] = n.clone()
	}
	return out
}

// Names returns the network names in the order of All.
func (e *ResolvedEnvironment) Names() []string {
	out := make([]string, len(e.networks))
	for i, n := range e.networks {
		out[i] = n.Name
	}
	return out
}

// Len returns the number of networks, the local one included.
func (e *ResolvedEnvironment) Len() int { return len(e.networks) }

// MarshalJSON emits a name-keyed object in network order.
func (e *ResolvedEnvironment) MarshalJSON() ([]byte, error) {
	buf := []byte{'{'}
	for i, n := range e.networks {
		if i > 0 {
			buf = append(buf, ',')
		}
		key, err := json.Marshal(n.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(n)
		if err != nil {
			return nil, err
		}
		buf = append(buf, key...)
		buf = append(buf, ':')
		buf = append(buf, val...)
	}
	return append(buf, '}'), nil
}

// MarshalYAML emits a name-keyed mapping in network order.
func (e *ResolvedEnvironment) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, n := range e.networks {
		var val yaml.Node
		if err := val.Encode(n); err != nil {
			return nil, err
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: n.Name},
			&val,
		)
	}
	return node, nil
}

// Environment bundles everything a resolution produces for the host tool.
type Environment struct {
	Networks     *ResolvedEnvironment `json:"networks" yaml:"networks"`
	Verification []VerificationConfig `json:"verification" yaml:"verification"`
	Compiler     CompilerSettings     `json:"compiler" yaml:"compiler"`
	Toolchain    ToolchainSettings    `json:"toolchain" yaml:"toolchain"`

	providerKey string
	templates   map[string]string // endpoint templates of networks that embed providerKey
}

// Verifier returns the verification record for chain.
func (e *Environment) Verifier(chain string) (VerificationConfig, error) {
	for _, v := range e.Verification {
		if v.Chain == chain {
			return v, nil
		}
	}
	return VerificationConfig{}, &NotFoundError{Name: chain}
}

// Redacted returns a copy of e with every secret masked.
func (e *Environment) Redacted() *Environment {
	entries := e.Networks.All()
	for i := range entries {
		if tmpl, ok := e.templates[entries[i].Name]; ok && e.providerKey != "" {
			entries[i].URL = strings.ReplaceAll(tmpl, ProviderKeyPlaceholder, MaskSecret(e.providerKey))
		}
		for j, a := range entries[i].Accounts {
			entries[i].Accounts[j] = MaskSecret(a)
		}
	}

	verification := slices.Clone(e.Verification)
	for i := range verification {
		if verification[i].APIKey != "" {
			verification[i].APIKey = MaskSecret(verification[i].APIKey)
		}
	}

	return &Environment{
		Networks:     newResolvedEnvironment(entries),
		Verification: verification,
		Compiler:     e.Compiler,
		Toolchain:    e.Toolchain,
	}
}

// MaskSecret keeps a short prefix and suffix of long secrets and hides the rest.
func MaskSecret(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 12 {
		return "****"
	}
	return s[:6] + "..." + s[len(s)-4:]
}
