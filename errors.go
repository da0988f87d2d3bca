package chainconf

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	ErrMissingCredential = errors.New("chainconf: missing credential")
	ErrRegistryConflict  = errors.New("chainconf: registry conflict")
	ErrChainNotFound     = errors.New("chainconf: chain not found")
)

// MissingCredentialError reports a secret that a chain's endpoint needs but
// the credential bundle does not carry. It aborts the whole resolution pass.
type MissingCredentialError struct {
	Chain  string
	Secret string
}

func (e *MissingCredentialError) Error() string {
	return fmt.Sprintf("chainconf: chain %q requires %s, which is not set", e.Chain, e.Secret)
}

// Is makes errors.Is(err, ErrMissingCredential) hold.
func (e *MissingCredentialError) Is(target error) bool {
	return target == ErrMissingCredential
}

// RegistryConflictError reports a malformed chain registry: a duplicate name
// or chain id, a reserved name, or an invalid descriptor field.
type RegistryConflictError struct {
	Chain  string
	Field  string
	Reason string
}

func (e *RegistryConflictError) Error() string {
	if e.Chain == "" {
		return fmt.Sprintf("chainconf: registry conflict: %s %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("chainconf: registry conflict for chain %q: %s %s", e.Chain, e.Field, e.Reason)
}

func (e *RegistryConflictError) Is(target error) bool {
	return target == ErrRegistryConflict
}

// NotFoundError is returned when a caller asks for an unregistered chain.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("chainconf: chain %q not found", e.Name)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrChainNotFound
}
