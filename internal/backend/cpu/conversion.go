package cpu

import (
	"unsafe"

	bfloat16 "github.com/d4l3k/go-bfloat16"
	"github.com/x448/float16"

	"github.com/born-ml/facade/internal/tensor"
)

type integer interface {
	int8 | int16 | int32 | int64 | uint8
}

type float interface {
	float32 | float64
}

type realNumber interface {
	integer | float
}

type number interface {
	realNumber | complex64 | complex128
}

// Cast converts the tensor to a different element kind.
// Casting to the same kind returns an alias.
func (cpu *CPUBackend) Cast(x *tensor.RawTensor, dtype tensor.DataType) (*tensor.RawTensor, error) {
	if x.DType() == dtype {
		return x.Clone(), nil
	}

	result, err := cpu.alloc("cast", x.Shape(), dtype, x.Device())
	if err != nil {
		return nil, err
	}
	castInto(result, x)
	return result, nil
}

// widen returns x in its compute kind. The result may be x itself and must
// only be read.
func (cpu *CPUBackend) widen(op string, x *tensor.RawTensor) (*tensor.RawTensor, error) {
	ct := x.DType().ComputeType()
	if ct == x.DType() {
		return x, nil
	}
	result, err := cpu.alloc(op, x.Shape(), ct, x.Device())
	if err != nil {
		return nil, err
	}
	castInto(result, x)
	return result, nil
}

// narrow converts a compute-kind result back to dtype.
func (cpu *CPUBackend) narrow(op string, x *tensor.RawTensor, dtype tensor.DataType) (*tensor.RawTensor, error) {
	if x.DType() == dtype {
		return x, nil
	}
	result, err := cpu.alloc(op, x.Shape(), dtype, x.Device())
	if err != nil {
		return nil, err
	}
	castInto(result, x)
	return result, nil
}

// castInto converts every element of src into dst (same element count).
//
// Integer and bool pairs go through int64 so 64-bit values survive; complex
// destinations go through complex128; everything else through float64.
// Complex sources cast to real kinds keep the real part.
func castInto(dst, src *tensor.RawTensor) {
	from, to := src.DType(), dst.DType()
	switch {
	case from == to:
		copy(dst.Data(), src.Data())
	case to.IsComplex():
		storeComplex128(dst, loadComplex128(src))
	case isExactInt(from) && isExactInt(to):
		storeInt64(dst, loadInt64(src))
	default:
		storeFloat64(dst, loadFloat64(src))
	}
}

func isExactInt(dt tensor.DataType) bool {
	return dt.IsInteger() || dt == tensor.Bool
}

func convert[D, S realNumber](src []S) []D {
	out := make([]D, len(src))
	for i, v := range src {
		out[i] = D(v)
	}
	return out
}

func convertInto[D, S realNumber](dst []D, src []S) {
	for i, v := range src {
		dst[i] = D(v)
	}
}

func boolsTo[D realNumber](src []bool) []D {
	out := make([]D, len(src))
	for i, v := range src {
		if v {
			out[i] = 1
		}
	}
	return out
}

func nonZero[S realNumber](dst []bool, src []S) {
	for i, v := range src {
		dst[i] = v != 0
	}
}

func decodeFloat16(src []float16.Float16) []float32 {
	out := make([]float32, len(src))
	for i, v := range src {
		out[i] = v.Float32()
	}
	return out
}

func encodeFloat16(dst []float16.Float16, src []float32) {
	for i, v := range src {
		dst[i] = float16.Fromfloat32(v)
	}
}

// loadFloat64 reads any kind as float64 values.
func loadFloat64(x *tensor.RawTensor) []float64 {
	switch x.DType() {
	case tensor.Int8:
		return convert[float64](tensor.Elements[int8](x))
	case tensor.Int16:
		return convert[float64](tensor.Elements[int16](x))
	case tensor.Int32:
		return convert[float64](tensor.Elements[int32](x))
	case tensor.Int64:
		return convert[float64](tensor.Elements[int64](x))
	case tensor.Uint8:
		return convert[float64](tensor.Elements[uint8](x))
	case tensor.Float16:
		return convert[float64](decodeFloat16(tensor.Elements[float16.Float16](x)))
	case tensor.BFloat16:
		return convert[float64](bfloat16.DecodeFloat32(x.Data()))
	case tensor.Float32:
		return convert[float64](tensor.Elements[float32](x))
	case tensor.Float64:
		return append([]float64(nil), tensor.Elements[float64](x)...)
	case tensor.Bool:
		return boolsTo[float64](tensor.Elements[bool](x))
	default:
		c := loadComplex128(x)
		out := make([]float64, len(c))
		for i, v := range c {
			out[i] = real(v)
		}
		return out
	}
}

// storeFloat64 writes float64 values into any real or bool kind.
func storeFloat64(x *tensor.RawTensor, values []float64) {
	switch x.DType() {
	case tensor.Int8:
		convertInto(tensor.Elements[int8](x), values)
	case tensor.Int16:
		convertInto(tensor.Elements[int16](x), values)
	case tensor.Int32:
		convertInto(tensor.Elements[int32](x), values)
	case tensor.Int64:
		convertInto(tensor.Elements[int64](x), values)
	case tensor.Uint8:
		convertInto(tensor.Elements[uint8](x), values)
	case tensor.Float16:
		encodeFloat16(tensor.Elements[float16.Float16](x), convert[float32](values))
	case tensor.BFloat16:
		copy(x.Data(), bfloat16.EncodeFloat32(convert[float32](values)))
	case tensor.Float32:
		convertInto(tensor.Elements[float32](x), values)
	case tensor.Float64:
		copy(tensor.Elements[float64](x), values)
	case tensor.Bool:
		nonZero(tensor.Elements[bool](x), values)
	default:
		c := make([]complex128, len(values))
		for i, v := range values {
			c[i] = complex(v, 0)
		}
		storeComplex128(x, c)
	}
}

// loadInt64 reads integer and bool kinds exactly; other kinds truncate.
func loadInt64(x *tensor.RawTensor) []int64 {
	switch x.DType() {
	case tensor.Int8:
		return convert[int64](tensor.Elements[int8](x))
	case tensor.Int16:
		return convert[int64](tensor.Elements[int16](x))
	case tensor.Int32:
		return convert[int64](tensor.Elements[int32](x))
	case tensor.Int64:
		return append([]int64(nil), tensor.Elements[int64](x)...)
	case tensor.Uint8:
		return convert[int64](tensor.Elements[uint8](x))
	case tensor.Bool:
		return boolsTo[int64](tensor.Elements[bool](x))
	default:
		return convert[int64](loadFloat64(x))
	}
}

// storeInt64 writes int64 values into any kind.
func storeInt64(x *tensor.RawTensor, values []int64) {
	switch x.DType() {
	case tensor.Int8:
		convertInto(tensor.Elements[int8](x), values)
	case tensor.Int16:
		convertInto(tensor.Elements[int16](x), values)
	case tensor.Int32:
		convertInto(tensor.Elements[int32](x), values)
	case tensor.Int64:
		copy(tensor.Elements[int64](x), values)
	case tensor.Uint8:
		convertInto(tensor.Elements[uint8](x), values)
	case tensor.Bool:
		nonZero(tensor.Elements[bool](x), values)
	default:
		storeFloat64(x, convert[float64](values))
	}
}

func loadComplex128(x *tensor.RawTensor) []complex128 {
	switch x.DType() {
	case tensor.ComplexHalf:
		src := tensor.Elements[tensor.Complex32](x)
		out := make([]complex128, len(src))
		for i, v := range src {
			out[i] = complex(float64(v.Real.Float32()), float64(v.Imag.Float32()))
		}
		return out
	case tensor.Complex64:
		src := tensor.Elements[complex64](x)
		out := make([]complex128, len(src))
		for i, v := range src {
			out[i] = complex128(v)
		}
		return out
	case tensor.Complex128:
		return append([]complex128(nil), tensor.Elements[complex128](x)...)
	default:
		re := loadFloat64(x)
		out := make([]complex128, len(re))
		for i, v := range re {
			out[i] = complex(v, 0)
		}
		return out
	}
}

func storeComplex128(x *tensor.RawTensor, values []complex128) {
	switch x.DType() {
	case tensor.ComplexHalf:
		dst := tensor.Elements[tensor.Complex32](x)
		for i, v := range values {
			dst[i] = tensor.Complex32{
				Real: float16.Fromfloat32(float32(real(v))),
				Imag: float16.Fromfloat32(float32(imag(v))),
			}
		}
	case tensor.Complex64:
		dst := tensor.Elements[complex64](x)
		for i, v := range values {
			dst[i] = complex64(v)
		}
	case tensor.Complex128:
		copy(tensor.Elements[complex128](x), values)
	default:
		re := make([]float64, len(values))
		for i, v := range values {
			re[i] = real(v)
		}
		storeFloat64(x, re)
	}
}

// scalarElement encodes s as a single element of dtype.
func scalarElement(s tensor.Scalar, dtype tensor.DataType) []byte {
	one, err := tensor.NewRaw(tensor.Shape{}, dtype, tensor.Host)
	if err != nil {
		panic(err) // Rank-0 shapes are always valid.
	}
	if s.IsFloat() {
		storeFloat64(one, []float64{s.Float()})
	} else {
		storeInt64(one, []int64{s.Int()})
	}
	return one.Data()
}

// fill sets every element of x to s.
func fill(x *tensor.RawTensor, s tensor.Scalar) {
	elem := scalarElement(s, x.DType())
	data := x.Data()
	for off := 0; off < len(data); off += len(elem) {
		copy(data[off:], elem)
	}
}

// scalarAs converts s into the Go type of a compute kind.
func scalarAs[T number](s tensor.Scalar) T {
	var out T
	switch p := any(&out).(type) {
	case *int8:
		*p = int8(s.Int())
	case *int16:
		*p = int16(s.Int())
	case *int32:
		*p = int32(s.Int())
	case *int64:
		*p = s.Int()
	case *uint8:
		*p = uint8(s.Int())
	case *float32:
		*p = float32(s.Float())
	case *float64:
		*p = s.Float()
	case *complex64:
		*p = complex(float32(s.Float()), 0)
	case *complex128:
		*p = complex(s.Float(), 0)
	}
	return out
}

// hostBytes exposes the memory of a typed host slice.
func hostBytes(v any) (tensor.DataType, []byte, int, bool) {
	switch s := v.(type) {
	case []int8:
		return sliceBytes(s)
	case []int16:
		return sliceBytes(s)
	case []int32:
		return sliceBytes(s)
	case []int64:
		return sliceBytes(s)
	case []uint8:
		return sliceBytes(s)
	case []float16.Float16:
		return sliceBytes(s)
	case []bfloat16.BF16:
		return sliceBytes(s)
	case []float32:
		return sliceBytes(s)
	case []float64:
		return sliceBytes(s)
	case []tensor.Complex32:
		return sliceBytes(s)
	case []complex64:
		return sliceBytes(s)
	case []complex128:
		return sliceBytes(s)
	case []bool:
		return sliceBytes(s)
	default:
		return 0, nil, 0, false
	}
}

func sliceBytes[T tensor.Element](s []T) (tensor.DataType, []byte, int, bool) {
	dtype := tensor.DataTypeOf[T]()
	if len(s) == 0 {
		return dtype, nil, 0, true
	}
	//nolint:gosec // unsafe.Slice for zero-copy transfer, length derived from len(s)
	data := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*dtype.Size())
	return dtype, data, len(s), true
}
