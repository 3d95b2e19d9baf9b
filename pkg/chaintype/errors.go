// 17 Oct 2026

package chaintype

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfiguration comes from New when the target is not a
	// real linkage category.
	ErrInvalidConfiguration = errors.New("invalid chain type configuration")
	// ErrUnclassifiableMonomer only comes back in strict mode.
	ErrUnclassifiableMonomer = errors.New("unclassifiable monomer")
)

// UnclassifiableMonomerError says which monomer we could not look up.
type UnclassifiableMonomerError struct {
	Record  string
	Chain   string
	Monomer string
}

func (e *UnclassifiableMonomerError) Error() string {
	return fmt.Sprintf("%s: record %s chain %s monomer %q",
		ErrUnclassifiableMonomer, e.Record, e.Chain, e.Monomer)
}

// Is lets errors.Is(err, ErrUnclassifiableMonomer) work.
func (e *UnclassifiableMonomerError) Is(target error) bool {
	return target == ErrUnclassifiableMonomer
}
