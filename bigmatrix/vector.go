// Copyright (c) 2023 Colin McRae

package bigmatrix

import (
	"fmt"
	"math/big"
)

// DimensionMismatchError reports operands whose lengths disagree: rows of
// unequal length in a basis, or vectors of unequal length in a vector
// operation. Row is the offending row, or -1 when no row applies.
type DimensionMismatchError struct {
	Op       string
	Row      int
	Expected int
	Actual   int
}

func (e *DimensionMismatchError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("%s: dimension mismatch: expected %d, got %d", e.Op, e.Expected, e.Actual)
	}
	return fmt.Sprintf(
		"%s: dimension mismatch: row %d has %d entries, expected %d",
		e.Op, e.Row, e.Actual, e.Expected,
	)
}

// DotProduct returns sum(x[k] y[k])
func DotProduct(x, y []*big.Int) (*big.Int, error) {
	if len(x) != len(y) {
		return nil, &DimensionMismatchError{Op: "DotProduct", Row: -1, Expected: len(x), Actual: len(y)}
	}
	retVal := big.NewInt(0)
	term := big.NewInt(0)
	for k := 0; k < len(x); k++ {
		retVal.Add(retVal, term.Mul(x[k], y[k]))
	}
	return retVal, nil
}

// Sub returns a new vector x - y
func Sub(x, y []*big.Int) ([]*big.Int, error) {
	if len(x) != len(y) {
		return nil, &DimensionMismatchError{Op: "Sub", Row: -1, Expected: len(x), Actual: len(y)}
	}
	retVal := make([]*big.Int, len(x))
	for k := 0; k < len(x); k++ {
		retVal[k] = big.NewInt(0).Sub(x[k], y[k])
	}
	return retVal, nil
}

// ScalarMul returns a new vector q x
func ScalarMul(q *big.Int, x []*big.Int) []*big.Int {
	retVal := make([]*big.Int, len(x))
	for k := 0; k < len(x); k++ {
		retVal[k] = big.NewInt(0).Mul(q, x[k])
	}
	return retVal
}

// NormSquared returns sum(x[k]^2)
func NormSquared(x []*big.Int) *big.Int {
	retVal := big.NewInt(0)
	term := big.NewInt(0)
	for k := 0; k < len(x); k++ {
		retVal.Add(retVal, term.Mul(x[k], x[k]))
	}
	return retVal
}
