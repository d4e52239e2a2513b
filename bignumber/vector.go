// Copyright (c) 2023 Colin McRae

package bignumber

import (
	"fmt"
	"math/big"
)

// NewVector returns a vector of length dim with 0 in each entry
func NewVector(dim int) []*BigNumber {
	retVal := make([]*BigNumber, dim)
	for i := 0; i < dim; i++ {
		retVal[i] = NewFromInt64(0)
	}
	return retVal
}

// NewVectorFromInts returns a rational copy of the integer vector x
func NewVectorFromInts(x []*big.Int) []*BigNumber {
	retVal := make([]*BigNumber, len(x))
	for i := 0; i < len(x); i++ {
		retVal[i] = NewFromInt(x[i])
	}
	return retVal
}

// DotProduct returns sum(x[k] y[k]). If x and y have different lengths, an
// error is returned.
func DotProduct(x, y []*BigNumber) (*BigNumber, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("DotProduct: len(x) = %d != %d = len(y)", len(x), len(y))
	}
	retVal := NewFromInt64(0)
	for k := 0; k < len(x); k++ {
		retVal.MulAdd(x[k], y[k])
	}
	return retVal, nil
}

// IntDotProduct returns sum(x[k] y[k]) for an integer vector x and a
// rational vector y. If x and y have different lengths, an error is returned.
func IntDotProduct(x []*big.Int, y []*BigNumber) (*BigNumber, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("IntDotProduct: len(x) = %d != %d = len(y)", len(x), len(y))
	}
	retVal := NewFromInt64(0)
	for k := 0; k < len(x); k++ {
		retVal.IntMulAdd(x[k], y[k])
	}
	return retVal, nil
}

// NormSquared returns sum(x[k]^2)
func NormSquared(x []*BigNumber) *BigNumber {
	retVal := NewFromInt64(0)
	for k := 0; k < len(x); k++ {
		retVal.MulAdd(x[k], x[k])
	}
	return retVal
}

// SubScaled replaces x with x - c y, in place. If x and y have different
// lengths, an error is returned and x is unchanged.
func SubScaled(x []*BigNumber, c *BigNumber, y []*BigNumber) error {
	if len(x) != len(y) {
		return fmt.Errorf("SubScaled: len(x) = %d != %d = len(y)", len(x), len(y))
	}
	if c.IsZero() {
		return nil
	}
	term := NewFromInt64(0)
	for k := 0; k < len(x); k++ {
		term.Mul(c, y[k])
		x[k].Sub(x[k], term)
	}
	return nil
}

// ScalarMul returns a new vector c x
func ScalarMul(c *BigNumber, x []*BigNumber) []*BigNumber {
	retVal := make([]*BigNumber, len(x))
	for k := 0; k < len(x); k++ {
		retVal[k] = NewFromInt64(0).Mul(c, x[k])
	}
	return retVal
}

// Sub returns a new vector x - y. If x and y have different lengths, an
// error is returned.
func Sub(x, y []*BigNumber) ([]*BigNumber, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("Sub: len(x) = %d != %d = len(y)", len(x), len(y))
	}
	retVal := make([]*BigNumber, len(x))
	for k := 0; k < len(x); k++ {
		retVal[k] = NewFromInt64(0).Sub(x[k], y[k])
	}
	return retVal, nil
}
