package keys

import (
	"errors"
	"fmt"
)

// ErrKeyDerivation matches every *KeyDerivationError through errors.Is.
var ErrKeyDerivation = errors.New("key derivation failed")

// ErrInvalidSignature is returned by KeyPair.Verify when the signature does not match.
var ErrInvalidSignature = errors.New("invalid signature")

// KeyDerivationError reports malformed or undersized private key material.
// It is fatal at client construction and never retryable.
type KeyDerivationError struct {
	Reason string
	Err    error
}

func (e *KeyDerivationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", ErrKeyDerivation, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", ErrKeyDerivation, e.Reason)
}

func (e *KeyDerivationError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrKeyDerivation) hold for any KeyDerivationError.
func (e *KeyDerivationError) Is(target error) bool {
	return target == ErrKeyDerivation
}
