// Package activation implements the element-wise activation functions applied
// by the convolution engine's output assembly pass.
package activation

import (
	"math"

	"github.com/slate-ml/slate/internal/parallel"
)

// Kind identifies an activation function.
type Kind int

// Supported activation kinds.
const (
	None Kind = iota
	Relu
	ReluN
	Tanh
	Sigmoid
)

// String returns a human-readable activation name.
func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case Relu:
		return "relu"
	case ReluN:
		return "relun"
	case Tanh:
		return "tanh"
	case Sigmoid:
		return "sigmoid"
	default:
		return "unknown"
	}
}

// Config selects an activation function and its parameters.
// MaxLimit is only meaningful for ReluN (clamp to [0, MaxLimit]).
type Config struct {
	Kind     Kind
	MaxLimit float32
}

// Apply runs the configured activation in place over data.
// None is a valid configuration and leaves the buffer untouched.
func Apply(data []float32, cfg Config, pcfg parallel.Config) {
	switch cfg.Kind {
	case None:
	case Relu:
		parallel.For(len(data), func(i int) {
			if data[i] < 0 {
				data[i] = 0
			}
		}, pcfg)
	case ReluN:
		limit := cfg.MaxLimit
		parallel.For(len(data), func(i int) {
			v := data[i]
			if v < 0 {
				v = 0
			} else if v > limit {
				v = limit
			}
			data[i] = v
		}, pcfg)
	case Tanh:
		parallel.For(len(data), func(i int) {
			data[i] = float32(math.Tanh(float64(data[i])))
		}, pcfg)
	case Sigmoid:
		parallel.For(len(data), func(i int) {
			data[i] = float32(1 / (1 + math.Exp(-float64(data[i]))))
		}, pcfg)
	}
}
