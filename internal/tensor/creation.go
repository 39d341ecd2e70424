package tensor

// Zeros creates a zero-filled float32 tensor.
func Zeros(shape Shape) *Tensor {
	t, err := New(shape, Float32)
	if err != nil {
		panic("tensor: " + err.Error())
	}
	return t
}

// Full creates a float32 tensor with every element set to value.
func Full(shape Shape, value float32) *Tensor {
	t := Zeros(shape)
	data := t.AsFloat32()
	for i := range data {
		data[i] = value
	}
	return t
}

// FromFloat32 creates a float32 tensor initialized from values.
// The value count must match the shape's element count.
func FromFloat32(shape Shape, values []float32) *Tensor {
	t := Zeros(shape)
	t.SetFloat32(values)
	return t
}
