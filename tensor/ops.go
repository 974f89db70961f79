// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"runtime"
)

// operator is the single implementation behind every syntactic form of an
// arithmetic operator: tensor/tensor, tensor/scalar, scalar/tensor and the
// compound assignments.
type operator struct {
	tensor        func(b Backend, x, y *RawTensor) (*RawTensor, error)
	scalar        func(b Backend, x *RawTensor, s Scalar) (*RawTensor, error)
	inplace       func(b Backend, x, y *RawTensor) error
	inplaceScalar func(b Backend, x *RawTensor, s Scalar) error

	// reverse turns t op s into s op t.
	reverse func(t *Tensor) (*Tensor, error)
}

func identity(t *Tensor) (*Tensor, error) {
	return t, nil
}

var (
	addOp = operator{
		tensor:        Backend.Add,
		scalar:        Backend.AddScalar,
		inplace:       Backend.AddInplace,
		inplaceScalar: Backend.AddScalarInplace,
		reverse:       identity,
	}
	subOp = operator{
		tensor:        Backend.Sub,
		scalar:        Backend.SubScalar,
		inplace:       Backend.SubInplace,
		inplaceScalar: Backend.SubScalarInplace,
		reverse:       (*Tensor).TryNeg, // s - t = -(t - s)
	}
	mulOp = operator{
		tensor:        Backend.Mul,
		scalar:        Backend.MulScalar,
		inplace:       Backend.MulInplace,
		inplaceScalar: Backend.MulScalarInplace,
		reverse:       identity,
	}
	divOp = operator{
		tensor:        Backend.Div,
		scalar:        Backend.DivScalar,
		inplace:       Backend.DivInplace,
		inplaceScalar: Backend.DivScalarInplace,
		reverse:       (*Tensor).TryReciprocal, // s / t = (t / s)^-1
	}
)

func (op operator) apply(a, b *Tensor) (*Tensor, error) {
	return a.binary(b, op.tensor)
}

func (op operator) applyScalar(a *Tensor, s Scalar) (*Tensor, error) {
	return a.unary(func(b Backend, x *RawTensor) (*RawTensor, error) {
		return op.scalar(b, x, s)
	})
}

func (op operator) applyScalarLeft(s Scalar, a *Tensor) (*Tensor, error) {
	partial, err := op.applyScalar(a, s)
	if err != nil {
		return nil, err
	}
	result, err := op.reverse(partial)
	if result != partial {
		partial.Release()
	}
	return result, err
}

func (op operator) assign(a, b *Tensor) {
	defer runtime.KeepAlive(a)
	defer runtime.KeepAlive(b)
	check(op.inplace(a.backend, a.raw, b.raw))
}

func (op operator) assignScalar(a *Tensor, s Scalar) {
	defer runtime.KeepAlive(a)
	check(op.inplaceScalar(a.backend, a.raw, s))
}

// TryAdd returns t + o with broadcasting.
func (t *Tensor) TryAdd(o *Tensor) (*Tensor, error) { return addOp.apply(t, o) }

// Add returns t + o with broadcasting. Panics on failure.
func (t *Tensor) Add(o *Tensor) *Tensor { return must(addOp.apply(t, o)) }

// TrySub returns t - o with broadcasting.
func (t *Tensor) TrySub(o *Tensor) (*Tensor, error) { return subOp.apply(t, o) }

// Sub returns t - o with broadcasting. Panics on failure.
func (t *Tensor) Sub(o *Tensor) *Tensor { return must(subOp.apply(t, o)) }

// TryMul returns t * o with broadcasting.
func (t *Tensor) TryMul(o *Tensor) (*Tensor, error) { return mulOp.apply(t, o) }

// Mul returns t * o with broadcasting. Panics on failure.
func (t *Tensor) Mul(o *Tensor) *Tensor { return must(mulOp.apply(t, o)) }

// TryDiv returns t / o with broadcasting.
func (t *Tensor) TryDiv(o *Tensor) (*Tensor, error) { return divOp.apply(t, o) }

// Div returns t / o with broadcasting. Panics on failure.
func (t *Tensor) Div(o *Tensor) *Tensor { return must(divOp.apply(t, o)) }

// TryAddScalar returns t + s.
func (t *Tensor) TryAddScalar(s Scalar) (*Tensor, error) { return addOp.applyScalar(t, s) }

// AddScalar returns t + s. Panics on failure.
func (t *Tensor) AddScalar(s Scalar) *Tensor { return must(addOp.applyScalar(t, s)) }

// TrySubScalar returns t - s.
func (t *Tensor) TrySubScalar(s Scalar) (*Tensor, error) { return subOp.applyScalar(t, s) }

// SubScalar returns t - s. Panics on failure.
func (t *Tensor) SubScalar(s Scalar) *Tensor { return must(subOp.applyScalar(t, s)) }

// TryMulScalar returns t * s.
func (t *Tensor) TryMulScalar(s Scalar) (*Tensor, error) { return mulOp.applyScalar(t, s) }

// MulScalar returns t * s. Panics on failure.
func (t *Tensor) MulScalar(s Scalar) *Tensor { return must(mulOp.applyScalar(t, s)) }

// TryDivScalar returns t / s.
func (t *Tensor) TryDivScalar(s Scalar) (*Tensor, error) { return divOp.applyScalar(t, s) }

// DivScalar returns t / s. Panics on failure.
func (t *Tensor) DivScalar(s Scalar) *Tensor { return must(divOp.applyScalar(t, s)) }

// TryScalarAdd returns s + t.
func TryScalarAdd(s Scalar, t *Tensor) (*Tensor, error) { return addOp.applyScalarLeft(s, t) }

// ScalarAdd returns s + t. Panics on failure.
func ScalarAdd(s Scalar, t *Tensor) *Tensor { return must(addOp.applyScalarLeft(s, t)) }

// TryScalarSub returns s - t, computed as -(t - s).
func TryScalarSub(s Scalar, t *Tensor) (*Tensor, error) { return subOp.applyScalarLeft(s, t) }

// ScalarSub returns s - t. Panics on failure.
//
// Example:
//
//	a := tensor.FromSlice([]float64{1, 2, 3}, backend)
//	b := tensor.ScalarSub(tensor.Float(10), a)  // [9, 8, 7]
func ScalarSub(s Scalar, t *Tensor) *Tensor { return must(subOp.applyScalarLeft(s, t)) }

// TryScalarMul returns s * t.
func TryScalarMul(s Scalar, t *Tensor) (*Tensor, error) { return mulOp.applyScalarLeft(s, t) }

// ScalarMul returns s * t. Panics on failure.
func ScalarMul(s Scalar, t *Tensor) *Tensor { return must(mulOp.applyScalarLeft(s, t)) }

// TryScalarDiv returns s / t, computed as (t / s)^-1.
//
// Integer tensors divided by an integer scalar have no integral reciprocal and
// fail with ErrUnsupported; use a float scalar or cast t first.
func TryScalarDiv(s Scalar, t *Tensor) (*Tensor, error) { return divOp.applyScalarLeft(s, t) }

// ScalarDiv returns s / t. Panics on failure.
func ScalarDiv(s Scalar, t *Tensor) *Tensor { return must(divOp.applyScalarLeft(s, t)) }

// AddAssign computes t += o in place, visible to every alias of t.
// Panics on failure; t is left unchanged in that case.
func (t *Tensor) AddAssign(o *Tensor) { addOp.assign(t, o) }

// SubAssign computes t -= o in place.
func (t *Tensor) SubAssign(o *Tensor) { subOp.assign(t, o) }

// MulAssign computes t *= o in place.
func (t *Tensor) MulAssign(o *Tensor) { mulOp.assign(t, o) }

// DivAssign computes t /= o in place.
func (t *Tensor) DivAssign(o *Tensor) { divOp.assign(t, o) }

// AddAssignScalar computes t += s in place.
func (t *Tensor) AddAssignScalar(s Scalar) { addOp.assignScalar(t, s) }

// SubAssignScalar computes t -= s in place.
func (t *Tensor) SubAssignScalar(s Scalar) { subOp.assignScalar(t, s) }

// MulAssignScalar computes t *= s in place.
func (t *Tensor) MulAssignScalar(s Scalar) { mulOp.assignScalar(t, s) }

// DivAssignScalar computes t /= s in place.
func (t *Tensor) DivAssignScalar(s Scalar) { divOp.assignScalar(t, s) }

// TryNeg returns -t.
func (t *Tensor) TryNeg() (*Tensor, error) {
	return t.unary(Backend.Neg)
}

// Neg returns -t. Panics on failure.
func (t *Tensor) Neg() *Tensor {
	return must(t.TryNeg())
}

// TryPow raises every element to exponent.
func (t *Tensor) TryPow(exponent Scalar) (*Tensor, error) {
	return t.unary(func(b Backend, x *RawTensor) (*RawTensor, error) {
		return b.Pow(x, exponent)
	})
}

// Pow raises every element to exponent. Panics on failure.
func (t *Tensor) Pow(exponent Scalar) *Tensor {
	return must(t.TryPow(exponent))
}

// TryReciprocal returns t^-1 element-wise.
func (t *Tensor) TryReciprocal() (*Tensor, error) {
	return t.TryPow(Int(-1))
}

// Reciprocal returns t^-1 element-wise. Panics on failure.
func (t *Tensor) Reciprocal() *Tensor {
	return must(t.TryReciprocal())
}

// TrySum folds ts with Add. An empty list gives a rank-0 Float64 zero on b's
// default device.
func TrySum(b Backend, ts ...*Tensor) (*Tensor, error) {
	if len(ts) == 0 {
		return TryFromScalar(0.0, b)
	}
	acc := ts[0].ShallowClone()
	for _, t := range ts[1:] {
		next, err := t.TryAdd(acc)
		acc.Release()
		if err != nil {
			return nil, err
		}
		acc = next
	}
	return acc, nil
}

// Sum folds ts with Add. Panics on failure.
func Sum(b Backend, ts ...*Tensor) *Tensor {
	return must(TrySum(b, ts...))
}
