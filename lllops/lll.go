// Copyright (c) 2023 Colin McRae

package lllops

import (
	"fmt"

	"github.com/ethereum/go-ethereum/log"
	"github.com/kobzistiy/lll/bigmatrix"
	"github.com/kobzistiy/lll/bignumber"
)

var logger = log.New("pkg", "lllops")

// Stats counts the row operations performed by one reduction
type Stats struct {
	Swaps          int
	SizeReductions int
}

// Add accumulates the counts in other into stats
func (stats *Stats) Add(other Stats) {
	stats.Swaps += other.Swaps
	stats.SizeReductions += other.SizeReductions
}

// Reduce LLL-reduces the rows of b in place with parameter delta.
//
// A basis with 0 or 1 rows is already reduced. Linearly dependent rows are
// allowed: a zero b*_j contributes mu[i][j] = 0, and the Lovasz test is skipped
// whenever the preceding b*_{k-1} is zero. Termination is only guaranteed
// efficient for 1/4 < delta < 1.
func Reduce(b *bigmatrix.BigMatrix, delta *bignumber.BigNumber) (Stats, error) {
	return ReduceWithTransform(b, nil, delta)
}

// ReduceWithTransform is Reduce, additionally applying every row operation on
// b to u. If u starts as the identity, U = u on return satisfies U * B = b,
// where B is the input basis. u may be nil.
func ReduceWithTransform(b, u *bigmatrix.BigMatrix, delta *bignumber.BigNumber) (Stats, error) {
	var stats Stats
	if b == nil {
		return stats, fmt.Errorf("ReduceWithTransform: basis is nil")
	}
	if delta == nil {
		return stats, fmt.Errorf("ReduceWithTransform: delta is nil")
	}
	numRows := b.NumRows()
	if u != nil && u.NumRows() != numRows {
		return stats, &bigmatrix.DimensionMismatchError{
			Op: "ReduceWithTransform", Row: -1, Expected: numRows, Actual: u.NumRows(),
		}
	}
	if numRows < 2 {
		return stats, nil
	}
	gs, err := NewGramSchmidt(b)
	if err != nil {
		return stats, fmt.Errorf("ReduceWithTransform: %q", err.Error())
	}
	for k := 1; k < numRows; {
		err = sizeReduce(b, u, gs, k, &stats)
		if err != nil {
			return stats, fmt.Errorf("ReduceWithTransform: %q", err.Error())
		}

		// Lovasz test
		if gs.normSq[k-1].IsZero() {
			k++
			continue
		}
		if satisfiesLovasz(gs, k, delta) {
			k++
			continue
		}
		err = b.SwapRows(k-1, k)
		if err != nil {
			return stats, fmt.Errorf("ReduceWithTransform: %q", err.Error())
		}
		if u != nil {
			err = u.SwapRows(k-1, k)
			if err != nil {
				return stats, fmt.Errorf("ReduceWithTransform: %q", err.Error())
			}
		}
		err = gs.UpdateFrom(b, k-1)
		if err != nil {
			return stats, fmt.Errorf("ReduceWithTransform: %q", err.Error())
		}
		stats.Swaps++
		logger.Trace("Swapped rows", "k", k, "swaps", stats.Swaps)
		if k > 1 {
			k--
		}
	}
	logger.Debug(
		"LLL reduction finished", "rows", numRows, "cols", b.NumCols(),
		"swaps", stats.Swaps, "sizereductions", stats.SizeReductions,
	)
	return stats, nil
}

// sizeReduce subtracts integer multiples of earlier rows from row k of b until
// |mu[k][j]| <= 1/2 for all j < k. After each subtraction the scan restarts at
// j = k-1.
func sizeReduce(b, u *bigmatrix.BigMatrix, gs *GramSchmidt, k int, stats *Stats) error {
	for j := k - 1; j >= 0; {
		if gs.mu[k][j].CmpAbs(half) <= 0 {
			j--
			continue
		}
		q := gs.mu[k][j].Round()
		err := b.SubtractRowMultiple(k, j, q)
		if err != nil {
			return err
		}
		if u != nil {
			err = u.SubtractRowMultiple(k, j, q)
			if err != nil {
				return err
			}
		}

		// Subtracting a multiple of an earlier row changes neither b*_i for any
		// i nor mu[i][*] for i > k, so only row k needs to be recomputed.
		err = gs.updateRow(b, k)
		if err != nil {
			return err
		}
		stats.SizeReductions++
		j = k - 1
	}
	return nil
}

// satisfiesLovasz returns whether
// <b*_k, b*_k> >= (delta - mu[k][k-1]^2) <b*_{k-1}, b*_{k-1}>
func satisfiesLovasz(gs *GramSchmidt, k int, delta *bignumber.BigNumber) bool {
	rhs := bignumber.NewFromInt64(0).Square(gs.mu[k][k-1])
	rhs.Sub(delta, rhs)
	rhs.Mul(rhs, gs.normSq[k-1])
	return gs.normSq[k].Cmp(rhs) >= 0
}

var half = func() *bignumber.BigNumber {
	retVal, _ := bignumber.NewFromFraction(1, 2)
	return retVal
}()

// CheckReduced returns nil if b is LLL-reduced with parameter delta, i.e.
//
// - |mu[i][j]| <= 1/2 for all j < i
//
// - <b*_k, b*_k> >= (delta - mu[k][k-1]^2) <b*_{k-1}, b*_{k-1}> whenever b*_{k-1} != 0
//
// Otherwise it returns an error describing the first violation.
func CheckReduced(b *bigmatrix.BigMatrix, delta *bignumber.BigNumber) error {
	gs, err := NewGramSchmidt(b)
	if err != nil {
		return fmt.Errorf("CheckReduced: %q", err.Error())
	}
	for i := 1; i < gs.numRows; i++ {
		for j := 0; j < i; j++ {
			if gs.mu[i][j].CmpAbs(half) > 0 {
				return fmt.Errorf("CheckReduced: |mu[%d][%d]| = |%s| > 1/2", i, j, gs.mu[i][j].String())
			}
		}
		if gs.normSq[i-1].IsZero() {
			continue
		}
		if !satisfiesLovasz(gs, i, delta) {
			return fmt.Errorf("CheckReduced: Lovasz condition fails at row %d", i)
		}
	}
	return nil
}
