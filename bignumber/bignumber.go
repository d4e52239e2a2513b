// Copyright (c) 2023 Colin McRae

// Package bignumber provides an exact rational number type for lattice
// reduction.
//
// BigNumber is a type that
// o Holds a fraction with arbitrary-precision numerator and denominator,
//   always in lowest terms with a positive denominator
// o Supports arithmetic operations with no roundoff, so comparisons such
//   as the Lovasz condition are decided exactly
// o Rounds to the nearest integer with ties going away from zero
//
// The receiver-style API mirrors math/big: z.Add(x, y) sets z to x+y and
// returns z, so intermediate allocations can be avoided in inner loops.
package bignumber

import (
	"fmt"
	"math/big"
	"strings"
)

type BigNumber struct {
	value big.Rat
}

// NewFromInt64 constructs an instance equal to the provided int64
// and denominator 1
func NewFromInt64(input int64) *BigNumber {
	retVal := &BigNumber{}
	retVal.value.SetInt64(input)
	return retVal
}

// NewFromInt returns a BigNumber with the value of the provided big.Int
// and denominator 1
func NewFromInt(input *big.Int) *BigNumber {
	retVal := &BigNumber{}
	retVal.value.SetInt(input)
	return retVal
}

// NewFromFraction returns numerator / denominator in lowest terms. If
// denominator is zero, an error is returned.
func NewFromFraction(numerator, denominator int64) (*BigNumber, error) {
	if denominator == 0 {
		return nil, fmt.Errorf("NewFromFraction: denominator is 0")
	}
	retVal := &BigNumber{}
	retVal.value.SetFrac64(numerator, denominator)
	return retVal, nil
}

// NewFromDecimalString parses input, which can be an integer ("-12"), a
// fraction ("3/4") or a finite decimal ("0.75"). Each is converted exactly.
func NewFromDecimalString(input string) (*BigNumber, error) {
	input = strings.TrimSpace(input)
	if len(input) == 0 {
		return nil, fmt.Errorf("NewFromDecimalString: input must have length > 0")
	}
	if strings.ContainsAny(input, "eE") {
		// big.Rat accepts exponents, which are not a supported input format
		return nil, fmt.Errorf("NewFromDecimalString: exponents are not supported in %q", input)
	}
	retVal := &BigNumber{}
	if _, ok := retVal.value.SetString(input); !ok {
		return nil, fmt.Errorf("NewFromDecimalString: could not parse %q as a rational number", input)
	}
	return retVal, nil
}

// Set sets bn to x and returns bn. This is a deep copy
func (bn *BigNumber) Set(x *BigNumber) *BigNumber {
	bn.value.Set(&x.value)
	return bn
}

// SetInt sets bn to the integer x and returns bn
func (bn *BigNumber) SetInt(x *big.Int) *BigNumber {
	bn.value.SetInt(x)
	return bn
}

// Add sets bn to the sum x+y and returns bn
func (bn *BigNumber) Add(x *BigNumber, y *BigNumber) *BigNumber {
	bn.value.Add(&x.value, &y.value)
	return bn
}

// Sub sets bn to the difference x-y and returns bn
func (bn *BigNumber) Sub(x *BigNumber, y *BigNumber) *BigNumber {
	bn.value.Sub(&x.value, &y.value)
	return bn
}

// Mul sets bn to the product x*y and returns bn
func (bn *BigNumber) Mul(x *BigNumber, y *BigNumber) *BigNumber {
	bn.value.Mul(&x.value, &y.value)
	return bn
}

// MulAdd sets bn to bn + xy and returns bn.
//
// bn may alias x or y.
func (bn *BigNumber) MulAdd(x *BigNumber, y *BigNumber) *BigNumber {
	var xy big.Rat
	xy.Mul(&x.value, &y.value)
	bn.value.Add(&bn.value, &xy)
	return bn
}

// IntMulAdd sets bn to bn + xy for integer x and returns bn
func (bn *BigNumber) IntMulAdd(x *big.Int, y *BigNumber) *BigNumber {
	if x.Sign() == 0 || y.IsZero() {
		return bn
	}
	var xy big.Rat
	xy.SetInt(x)
	xy.Mul(&xy, &y.value)
	bn.value.Add(&bn.value, &xy)
	return bn
}

// Quo sets bn to the quotient x/y for y != 0 and returns bn. The quotient
// is exact.
//
// If y == 0, a division-by-zero error is returned and bn is unchanged.
func (bn *BigNumber) Quo(x *BigNumber, y *BigNumber) (*BigNumber, error) {
	if y.IsZero() {
		return nil, fmt.Errorf("BigNumber.Quo: division by zero")
	}
	bn.value.Quo(&x.value, &y.value)
	return bn, nil
}

// Abs sets bn to |x| (the absolute value of x) and returns bn
func (bn *BigNumber) Abs(x *BigNumber) *BigNumber {
	bn.value.Abs(&x.value)
	return bn
}

// Neg sets bn to -x and returns bn
func (bn *BigNumber) Neg(x *BigNumber) *BigNumber {
	bn.value.Neg(&x.value)
	return bn
}

// Square sets bn to x*x and returns bn
func (bn *BigNumber) Square(x *BigNumber) *BigNumber {
	bn.value.Mul(&x.value, &x.value)
	return bn
}

// Round returns the integer nearest to bn. A value exactly halfway between
// two integers is rounded away from zero, so 5/2 rounds to 3 and -5/2 to -3.
func (bn *BigNumber) Round() *big.Int {
	// For bn = p/q with q > 0, round(|p|/q) = floor((2|p| + q) / 2q)
	num := bn.value.Num()
	den := bn.value.Denom()
	if den.Cmp(big.NewInt(1)) == 0 {
		return big.NewInt(0).Set(num)
	}
	twiceAbsNum := big.NewInt(0).Abs(num)
	twiceAbsNum.Lsh(twiceAbsNum, 1)
	twiceDen := big.NewInt(0).Lsh(den, 1)
	retVal := big.NewInt(0).Add(twiceAbsNum, den)
	retVal.Quo(retVal, twiceDen)
	if num.Sign() < 0 {
		retVal.Neg(retVal)
	}
	return retVal
}

// AsInt returns bn as a big.Int, if bn is an integer; otherwise nil with an
// error message.
func (bn *BigNumber) AsInt() (*big.Int, error) {
	if !bn.value.IsInt() {
		return nil, fmt.Errorf("AsInt: bn = %q is not an integer", bn.value.RatString())
	}
	return big.NewInt(0).Set(bn.value.Num()), nil
}

// AsInt64 returns bn as an int64, if possible; otherwise 0 with an error
// message.
func (bn *BigNumber) AsInt64() (int64, error) {
	asInt, err := bn.AsInt()
	if err != nil {
		return 0, err
	}
	if !asInt.IsInt64() {
		return 0, fmt.Errorf("AsInt64: could not represent bn = %q as an int64", asInt.String())
	}
	return asInt.Int64(), nil
}

// AsFloat64 returns the float64 nearest to bn, and whether that float64 is
// exact. Values too large for a float64 become +/-Inf.
func (bn *BigNumber) AsFloat64() (float64, bool) {
	return bn.value.Float64()
}

// AsRat returns a copy of bn as a big.Rat
func (bn *BigNumber) AsRat() *big.Rat {
	return big.NewRat(0, 1).Set(&bn.value)
}

// Cmp compares bn and y and returns:
//
// -1 if bn <  y
//
//	0 if bn == y
//
// +1 if bn >  y
func (bn *BigNumber) Cmp(y *BigNumber) int {
	return bn.value.Cmp(&y.value)
}

// CmpAbs compares |bn| and |y| and returns -1, 0 or +1 as Cmp does
func (bn *BigNumber) CmpAbs(y *BigNumber) int {
	var absBn, absY big.Rat
	absBn.Abs(&bn.value)
	absY.Abs(&y.value)
	return absBn.Cmp(&absY)
}

// IsInt reports whether bn is an integer
func (bn *BigNumber) IsInt() bool {
	return bn.value.IsInt()
}

// IsZero reports whether bn is equal to 0
func (bn *BigNumber) IsZero() bool {
	return bn.value.Sign() == 0
}

// IsNegative reports whether bn is less than 0
func (bn *BigNumber) IsNegative() bool {
	return bn.value.Sign() < 0
}

// Sign returns -1, 0 or +1 according to the sign of bn
func (bn *BigNumber) Sign() int {
	return bn.value.Sign()
}

// String formats bn as a decimal numerator/denominator, or just the
// numerator if bn is an integer.
func (bn *BigNumber) String() string {
	return bn.value.RatString()
}
