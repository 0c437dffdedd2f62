package butterfly

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Scheme selects how faces are refined.
type Scheme uint8

const (
	// SchemeButterfly splits every face into four, placing new vertices with
	// the butterfly stencil (boundary stencil near the boundary).
	SchemeButterfly Scheme = iota

	// SchemeLinear splits every face into four at edge midpoints.
	SchemeLinear

	// SchemeBoundaryTriangular refines only faces touching the boundary and
	// copies interior faces through unchanged.
	SchemeBoundaryTriangular

	// SchemeSillyPascal drops faces whose edges are all interior and splits
	// the rest into four, thinning the mesh into a Pascal's-triangle-like
	// pattern over repeated passes.
	SchemeSillyPascal
)

// ErrUnknownScheme is returned for a Scheme value or name that does not
// exist.
var ErrUnknownScheme = errors.New("butterfly: unknown scheme")

var schemeNames = [...]string{
	SchemeButterfly:          "butterfly",
	SchemeLinear:             "linear",
	SchemeBoundaryTriangular: "boundary",
	SchemeSillyPascal:        "pascal",
}

// String returns the scheme's configuration name.
func (s Scheme) String() string {
	if int(s) < len(schemeNames) {
		return schemeNames[s]
	}
	return fmt.Sprintf("Scheme(%d)", s)
}

// Valid reports whether s names a known scheme.
func (s Scheme) Valid() bool {
	return int(s) < len(schemeNames)
}

// ParseScheme returns the scheme with the given name, as produced by
// String. Matching is case-insensitive.
func ParseScheme(name string) (Scheme, error) {
	for i, n := range schemeNames {
		if strings.EqualFold(n, name) {
			return Scheme(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownScheme, name)
}

// SchemeNames returns the names accepted by ParseScheme.
func SchemeNames() []string {
	return slices.Clone(schemeNames[:])
}
