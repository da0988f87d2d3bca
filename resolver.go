package chainconf

import (
	"fmt"
	"log/slog"
)

// Resolver turns a registry and a credential bundle into network and
// verification configuration. It performs no I/O.
type Resolver struct {
	registry     *Registry
	logger       *slog.Logger
	compiler     CompilerSettings
	toolchain    ToolchainSettings
	localChainID uint64
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithCompiler overrides the compiler settings passed through to the host.
func WithCompiler(c CompilerSettings) ResolverOption {
	return func(r *Resolver) { r.compiler = c }
}

// WithToolchain overrides the toolchain settings passed through to the host.
func WithToolchain(t ToolchainSettings) ResolverOption {
	return func(r *Resolver) { r.toolchain = t }
}

// WithLocalChainID changes the chain id of the local network. Resolution
// fails with a *RegistryConflictError when a registered chain uses the same id.
func WithLocalChainID(id uint64) ResolverOption {
	return func(r *Resolver) {
		if id != 0 {
			r.localChainID = id
		}
	}
}

// NewResolver creates a resolver over reg.
func NewResolver(reg *Registry, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		registry:     reg,
		logger:       slog.Default(),
		compiler:     DefaultCompilerSettings(),
		toolchain:    DefaultToolchainSettings(),
		localChainID: DefaultLocalChainID,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Registry returns the registry the resolver reads.
func (r *Resolver) Registry() *Registry { return r.registry }

// Resolve produces the network mapping. Without a deployer key only the
// local network is emitted. With one, every registered chain is emitted, and
// a chain whose endpoint needs the provider key fails the whole pass with a
// *MissingCredentialError when that key is absent.
func (r *Resolver) Resolve(creds Credentials) (*ResolvedEnvironment, error) {
	if err := r.checkLocalChainID(); err != nil {
		return nil, err
	}

	creds = creds.normalized()
	candidates, err := r.candidates(creds)
	if err != nil {
		return nil, err
	}

	entries := make([]NetworkConfig, 0, len(candidates)+1)
	for _, d := range candidates {
		n := NetworkConfig{
			Name:     d.Name,
			ChainID:  d.ChainID,
			URL:      d.EndpointURL(creds.RPCProviderKey),
			Accounts: []string{creds.DeployerKey},
		}
		r.logger.Debug("resolved network",
			slog.String("chain", n.Name),
			slog.Uint64("chain_id", n.ChainID),
		)
		entries = append(entries, n)
	}
	entries = append(entries, r.localNetwork())

	return newResolvedEnvironment(entries), nil
}

// candidates selects the descriptors to emit and checks that every secret
// their endpoints need is present.
func (r *Resolver) candidates(creds Credentials) ([]ChainDescriptor, error) {
	if !creds.HasDeployer() {
		r.logger.Info("deployer key not set, resolving local network only",
			slog.String("secret", EnvDeployerKey),
		)
		return nil, nil
	}

	out := make([]ChainDescriptor, 0, r.registry.Len())
	for _, d := range r.registry.chains {
		if d.NeedsProviderKey() && !creds.HasProviderKey() {
			err := &MissingCredentialError{Chain: d.Name, Secret: EnvRPCProviderKey}
			r.logger.Error("resolution aborted",
				slog.String("chain", d.Name),
				slog.String("secret", EnvRPCProviderKey),
			)
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// checkLocalChainID rejects a registry chain that shares the local network's
// chain id.
func (r *Resolver) checkLocalChainID() error {
	for _, d := range r.registry.chains {
		if d.ChainID != r.localChainID {
			continue
		}
		err := &RegistryConflictError{
			Chain:  d.Name,
			Field:  "chainId",
			Reason: fmt.Sprintf("%d is already used by the local network", d.ChainID),
		}
		r.logger.Error("resolution aborted",
			slog.String("chain", d.Name),
			slog.Uint64("chain_id", d.ChainID),
		)
		return err
	}
	return nil
}

func (r *Resolver) localNetwork() NetworkConfig {
	return NetworkConfig{
		Name:     LocalNetworkName,
		ChainID:  r.localChainID,
		Local:    true,
		Gas:      GasAuto,
		GasPrice: GasAuto,
	}
}

// Verification builds one record per chain that has an explorer, in registry
// order. It does not depend on the deployer key; a missing explorer key
// yields an empty APIKey rather than a missing record.
func (r *Resolver) Verification(creds Credentials) []VerificationConfig {
	creds = creds.normalized()
	out := make([]VerificationConfig, 0, r.registry.Len())
	for _, d := range r.registry.chains {
		if d.Explorer == nil {
			continue
		}
		out = append(out, VerificationConfig{
			Chain:      d.Name,
			ChainID:    d.ChainID,
			APIKey:     creds.ExplorerKey(d.Name),
			APIURL:     d.Explorer.APIURL,
			BrowserURL: d.Explorer.BrowserURL,
			Custom:     d.Explorer.Custom,
		})
	}
	return out
}

// Environment runs Resolve and Verification and attaches the static
// compiler and toolchain settings.
func (r *Resolver) Environment(creds Credentials) (*Environment, error) {
	networks, err := r.Resolve(creds)
	if err != nil {
		return nil, err
	}

	creds = creds.normalized()
	templates := make(map[string]string)
	for _, d := range r.registry.chains {
		if d.NeedsProviderKey() && networks.Has(d.Name) {
			templates[d.Name] = d.Endpoint
		}
	}

	r.logger.Info("environment resolved",
		slog.Int("networks", networks.Len()),
		slog.Bool("remote", creds.HasDeployer()),
	)

	return &Environment{
		Networks:     networks,
		Verification: r.Verification(creds),
		Compiler:     r.compiler,
		Toolchain:    r.toolchain,
		providerKey:  creds.RPCProviderKey,
		templates:    templates,
	}, nil
}
