// Copyright (c) 2023 Colin McRae

// Package bkz implements a block-sweep variant of BKZ reduction. Each pass
// LLL-reduces every window of blockSize consecutive basis vectors on its own,
// then LLL-reduces the whole basis. Passes repeat until one leaves the basis
// unchanged. There is no shortest-vector enumeration inside a block, so the
// output is an LLL-reduced basis that is often, but not provably, better than
// a single LLL pass.
package bkz

import (
	"fmt"

	"github.com/ethereum/go-ethereum/log"
	"github.com/kobzistiy/lll/bigmatrix"
	"github.com/kobzistiy/lll/bignumber"
	"github.com/kobzistiy/lll/lllops"
)

const (
	// DefaultBlockSize is the window width used when none is configured
	DefaultBlockSize = 2

	// DefaultPassesPerRow caps the number of passes at DefaultPassesPerRow * n
	DefaultPassesPerRow = 10
)

var logger = log.New("pkg", "bkz")

// BlockSizeError reports a block size outside {2,...,n} for a basis with n rows
type BlockSizeError struct {
	BlockSize int
	NumRows   int
}

func (e *BlockSizeError) Error() string {
	return fmt.Sprintf("block size %d is not in {2,...,%d}", e.BlockSize, e.NumRows)
}

// Options adjusts the pass loop
type Options struct {
	// PassesPerRow bounds the number of passes by PassesPerRow times the
	// number of rows. When it is exhausted the current basis is returned
	// without an error.
	PassesPerRow int
}

// DefaultOptions returns the options used by Reduce
func DefaultOptions() Options {
	return Options{PassesPerRow: DefaultPassesPerRow}
}

// Stats describes one reduction
type Stats struct {
	Passes    int
	Converged bool
	LLL       lllops.Stats
}

// Reduce reduces the rows of b in place, with window width blockSize and LLL
// parameter delta
func Reduce(b *bigmatrix.BigMatrix, delta *bignumber.BigNumber, blockSize int) (Stats, error) {
	return ReduceWithTransform(b, nil, delta, blockSize, DefaultOptions())
}

// ReduceWithOptions is Reduce with a configurable pass limit
func ReduceWithOptions(
	b *bigmatrix.BigMatrix, delta *bignumber.BigNumber, blockSize int, options Options,
) (Stats, error) {
	return ReduceWithTransform(b, nil, delta, blockSize, options)
}

// ReduceWithTransform is ReduceWithOptions, additionally applying every row
// operation on b to u (see lllops.ReduceWithTransform). u may be nil.
//
// A basis with 0 or 1 rows is returned unchanged for any block size.
// Otherwise blockSize must be in {2,...,n}; if it is not, a *BlockSizeError is
// returned and b is not modified.
func ReduceWithTransform(
	b, u *bigmatrix.BigMatrix, delta *bignumber.BigNumber, blockSize int, options Options,
) (Stats, error) {
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
	if numRows <= 1 {
		stats.Converged = true
		return stats, nil
	}
	if blockSize < 2 || numRows < blockSize {
		return stats, &BlockSizeError{BlockSize: blockSize, NumRows: numRows}
	}
	if options.PassesPerRow < 1 {
		return stats, fmt.Errorf("ReduceWithTransform: passes per row = %d < 1", options.PassesPerRow)
	}
	return reduceWithPassLimit(b, u, delta, blockSize, options.PassesPerRow*numRows)
}

// reduceWithPassLimit runs at most maxPasses passes over b, which must have
// at least blockSize >= 2 rows. Reaching maxPasses is not an error; the
// current basis is kept and Converged is false.
func reduceWithPassLimit(
	b, u *bigmatrix.BigMatrix, delta *bignumber.BigNumber, blockSize, maxPasses int,
) (Stats, error) {
	var stats Stats
	numRows := b.NumRows()
	for stats.Passes < maxPasses {
		snapshot := b.Clone()
		passStats, err := pass(b, u, delta, blockSize)
		stats.Passes++
		stats.LLL.Add(passStats)
		if err != nil {
			return stats, fmt.Errorf("ReduceWithTransform: pass %d: %q", stats.Passes, err.Error())
		}
		logger.Trace(
			"Finished pass", "pass", stats.Passes, "swaps", passStats.Swaps,
			"sizereductions", passStats.SizeReductions,
		)
		if snapshot.Equals(b) {
			stats.Converged = true
			break
		}
	}
	if !stats.Converged {
		logger.Debug("Pass limit reached before the basis stabilized", "passes", stats.Passes)
	}
	logger.Debug(
		"BKZ reduction finished", "rows", numRows, "blocksize", blockSize, "passes", stats.Passes,
		"converged", stats.Converged, "swaps", stats.LLL.Swaps,
	)
	return stats, nil
}

// pass LLL-reduces each window of blockSize rows of b in turn, writing each
// reduced window back before the next is extracted, then LLL-reduces all of b
func pass(b, u *bigmatrix.BigMatrix, delta *bignumber.BigNumber, blockSize int) (lllops.Stats, error) {
	var stats lllops.Stats
	numRows := b.NumRows()
	for k := 0; k <= numRows-blockSize; k++ {
		window, err := b.SubMatrix(k, blockSize)
		if err != nil {
			return stats, err
		}
		var windowTransform *bigmatrix.BigMatrix
		if u != nil {
			windowTransform, err = u.SubMatrix(k, blockSize)
			if err != nil {
				return stats, err
			}
		}
		windowStats, err := lllops.ReduceWithTransform(window, windowTransform, delta)
		stats.Add(windowStats)
		if err != nil {
			return stats, fmt.Errorf("window at row %d: %q", k, err.Error())
		}
		err = b.SetSubMatrix(k, window)
		if err != nil {
			return stats, err
		}
		if u != nil {
			err = u.SetSubMatrix(k, windowTransform)
			if err != nil {
				return stats, err
			}
		}
	}
	fullStats, err := lllops.ReduceWithTransform(b, u, delta)
	stats.Add(fullStats)
	return stats, err
}
