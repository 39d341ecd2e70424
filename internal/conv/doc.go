// Package conv implements the 2D convolution execution engine.
//
// A single invocation flows through a fixed pipeline: shape and padding
// resolution, strategy selection, tile extension, scratch arena sizing, an
// optional one-time filter transform, padding materialization, the compute
// kernel itself, and output assembly (unpack, bias, activation). The engine
// owns the output tensor's shape and a bounded scratch arena reused across
// invocations; inputs, filter, and bias stay read-only.
package conv
