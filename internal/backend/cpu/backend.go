// Package cpu provides the pure Go reference implementation of the fast-path
// convolution kernels.
//
// The kernels honor the same contracts as an architecture-specific backend
// would: inputs arrive pre-padded, outputs are fully written. The 1x1 kernel
// and the Winograd tile multiply are expressed as GEMMs over gonum's BLAS
// implementation; the 3x3 kernels are unrolled direct loops.
package cpu

import (
	"github.com/slate-ml/slate/internal/parallel"
)

// Backend implements the fast-path kernel contract on the CPU.
type Backend struct {
	pool parallel.Config
}

// New creates a CPU backend with default parallelism.
func New() *Backend {
	return &Backend{pool: parallel.DefaultConfig()}
}

// NewWithParallel creates a CPU backend with explicit parallelism settings.
func NewWithParallel(cfg parallel.Config) *Backend {
	return &Backend{pool: cfg}
}
