package tensor

// Backend is the primitive set the façade requires from a compute engine.
//
// Every primitive is fallible: it either returns a fresh result or a *Error
// (wrapped with a stack) describing what went wrong. Out-of-place primitives
// never write into their operands. In-place primitives validate completely
// before writing, so a returned error means the target is untouched.
//
// Implementations:
//   - internal/backend/cpu: reference engine on host memory
type Backend interface {
	// Allocation.
	Zeros(shape Shape, dtype DataType, device Device) (*RawTensor, error)
	Ones(shape Shape, dtype DataType, device Device) (*RawTensor, error)
	RandInt(high int64, shape Shape, dtype DataType, device Device) (*RawTensor, error) // Uniform in [0, high).

	// Host transfer. src/dst are typed slices ([]float32, []int64, ...) whose
	// element type is the storage layout of the tensor kind.
	FromHost(src any, shape Shape, device Device) (*RawTensor, error)
	ToHost(x *RawTensor, dst any) error

	// Element-wise binary operations with broadcasting.
	Add(a, b *RawTensor) (*RawTensor, error)
	Sub(a, b *RawTensor) (*RawTensor, error)
	Mul(a, b *RawTensor) (*RawTensor, error)
	Div(a, b *RawTensor) (*RawTensor, error)

	// In-place variants: a op= b, b broadcast to a's shape.
	AddInplace(a, b *RawTensor) error
	SubInplace(a, b *RawTensor) error
	MulInplace(a, b *RawTensor) error
	DivInplace(a, b *RawTensor) error

	// Scalar right-hand side.
	AddScalar(x *RawTensor, s Scalar) (*RawTensor, error)
	SubScalar(x *RawTensor, s Scalar) (*RawTensor, error)
	MulScalar(x *RawTensor, s Scalar) (*RawTensor, error)
	DivScalar(x *RawTensor, s Scalar) (*RawTensor, error)

	AddScalarInplace(x *RawTensor, s Scalar) error
	SubScalarInplace(x *RawTensor, s Scalar) error
	MulScalarInplace(x *RawTensor, s Scalar) error
	DivScalarInplace(x *RawTensor, s Scalar) error

	// Unary math.
	Neg(x *RawTensor) (*RawTensor, error)
	Pow(x *RawTensor, exponent Scalar) (*RawTensor, error)

	// Reductions.
	Argmax(x *RawTensor, dim int, keepDim bool) (*RawTensor, error) // Int64 indices.
	All(x *RawTensor) (*RawTensor, error)                           // Rank-0 Bool.
	Mean(x *RawTensor) (*RawTensor, error)                          // Rank-0, same kind.

	// Comparison, returns a Bool tensor.
	Equal(a, b *RawTensor) (*RawTensor, error)

	// Indexing.
	IndexSelect(x *RawTensor, dim int, index *RawTensor) (*RawTensor, error)
	ScatterValue(x *RawTensor, dim int, index *RawTensor, value Scalar) error // In place.

	// Kind, storage and placement.
	Cast(x *RawTensor, dtype DataType) (*RawTensor, error)
	CopyInplace(dst, src *RawTensor) error
	To(x *RawTensor, device Device) (*RawTensor, error)
	Reshape(x *RawTensor, shape Shape) (*RawTensor, error) // Alias with a new shape; one -1 allowed.

	// Neural-network building blocks.
	LogSoftmax(x *RawTensor, dim int) (*RawTensor, error)
	NLLLoss(logProbs, targets *RawTensor, ignoreIndex int64) (*RawTensor, error) // Mean reduction.
	MaxPool2D(x *RawTensor, kernelSize, stride int) (*RawTensor, error)
	AvgPool2D(x *RawTensor, kernelSize, stride int) (*RawTensor, error)

	// Metadata.
	Name() string
	Device() Device
}
