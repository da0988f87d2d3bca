package chainconf

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Registry is a frozen, ordered catalog of chain descriptors.
type Registry struct {
	chains []ChainDescriptor
	byName map[string]int
}

// NewRegistry builds a registry from descs, keeping their order. It fails
// with a *RegistryConflictError when a descriptor is invalid, reuses a name
// or chain id, or takes the reserved local network name.
func NewRegistry(descs ...ChainDescriptor) (*Registry, error) {
	r := &Registry{
		chains: make([]ChainDescriptor, 0, len(descs)),
		byName: make(map[string]int, len(descs)),
	}
	byID := make(map[uint64]string, len(descs))

	for _, d := range descs {
		if err := validateDescriptor(d); err != nil {
			return nil, err
		}
		if d.Name == LocalNetworkName {
			return nil, &RegistryConflictError{Chain: d.Name, Field: "name", Reason: "is reserved for the local network"}
		}
		if _, ok := r.byName[d.Name]; ok {
			return nil, &RegistryConflictError{Chain: d.Name, Field: "name", Reason: "is registered twice"}
		}
		if other, ok := byID[d.ChainID]; ok {
			return nil, &RegistryConflictError{
				Chain:  d.Name,
				Field:  "chainId",
				Reason: fmt.Sprintf("%d is already used by chain %q", d.ChainID, other),
			}
		}

		if d.Explorer != nil {
			e := *d.Explorer
			d.Explorer = &e
		}
		byID[d.ChainID] = d.Name
		r.byName[d.Name] = len(r.chains)
		r.chains = append(r.chains, d)
	}

	return r, nil
}

// MustRegistry is like NewRegistry but panics on error. Use it for
// hard-coded tables only.
func MustRegistry(descs ...ChainDescriptor) *Registry {
	r, err := NewRegistry(descs...)
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup returns the descriptor registered under name.
func (r *Registry) Lookup(name string) (ChainDescriptor, error) {
	i, ok := r.byName[name]
	if !ok {
		return ChainDescriptor{}, &NotFoundError{Name: name}
	}
	return cloneDescriptor(r.chains[i]), nil
}

// All returns every descriptor in insertion order.
func (r *Registry) All() []ChainDescriptor {
	out := make([]ChainDescriptor, len(r.chains))
	for i, d := range r.chains {
		out[i] = cloneDescriptor(d)
	}
	return out
}

// Names returns the registered chain names in insertion order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.chains))
	for i, d := range r.chains {
		out[i] = d.Name
	}
	return out
}

// Len returns the number of registered chains.
func (r *Registry) Len() int { return len(r.chains) }

func cloneDescriptor(d ChainDescriptor) ChainDescriptor {
	if d.Explorer != nil {
		e := *d.Explorer
		d.Explorer = &e
	}
	return d
}

// validateDescriptor checks struct tags, then the endpoint with the
// placeholder filled in so templates validate like plain URLs.
func validateDescriptor(d ChainDescriptor) error {
	if err := validate.Struct(d); err != nil {
		return descriptorError(d, err)
	}
	if err := validate.Var(d.EndpointURL("key"), "url"); err != nil {
		return &RegistryConflictError{Chain: d.Name, Field: "endpoint", Reason: "must be a valid URL"}
	}
	return nil
}

func descriptorError(d ChainDescriptor, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &RegistryConflictError{Chain: d.Name, Field: "descriptor", Reason: err.Error()}
	}

	fe := verrs[0]
	field := fe.Namespace()
	switch fe.Tag() {
	case "required":
		return &RegistryConflictError{Chain: d.Name, Field: field, Reason: "is required"}
	case "url":
		return &RegistryConflictError{Chain: d.Name, Field: field, Reason: "must be a valid URL"}
	case "gt":
		return &RegistryConflictError{Chain: d.Name, Field: field, Reason: "must be greater than " + fe.Param()}
	default:
		return &RegistryConflictError{Chain: d.Name, Field: field, Reason: "is invalid (" + fe.Tag() + ")"}
	}
}
