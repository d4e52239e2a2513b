// Copyright (c) 2023 Colin McRae

package util

import (
	"fmt"
	"math/big"

	"github.com/kobzistiy/lll/bigmatrix"
)

// NewBasisFromInt64Rows returns the basis whose rows are the given int64 rows.
// Every row must have the same length.
func NewBasisFromInt64Rows(rows [][]int64) (*bigmatrix.BigMatrix, error) {
	bigRows := make([][]*big.Int, len(rows))
	for i, row := range rows {
		bigRows[i] = make([]*big.Int, len(row))
		for j, entry := range row {
			bigRows[i][j] = big.NewInt(entry)
		}
	}
	retVal, err := bigmatrix.NewFromRows(bigRows)
	if err != nil {
		return nil, fmt.Errorf("NewBasisFromInt64Rows: %w", err)
	}
	return retVal, nil
}

// Int64Rows returns the rows of b as int64s, or an error if an entry does not fit
func Int64Rows(b *bigmatrix.BigMatrix) ([][]int64, error) {
	rows := b.Rows()
	retVal := make([][]int64, len(rows))
	for i, row := range rows {
		retVal[i] = make([]int64, len(row))
		for j, entry := range row {
			if !entry.IsInt64() {
				return nil, fmt.Errorf("Int64Rows: entry (%d,%d) = %s does not fit in an int64", i, j, entry.String())
			}
			retVal[i][j] = entry.Int64()
		}
	}
	return retVal, nil
}

// IsUnimodular returns whether u is a square integer matrix with determinant 1 or -1
func IsUnimodular(u *bigmatrix.BigMatrix) (bool, error) {
	det, err := u.Determinant()
	if err != nil {
		return false, fmt.Errorf("IsUnimodular: %q", err.Error())
	}
	return det.CmpAbs(big.NewInt(1)) == 0, nil
}

// IsChangeOfBasis returns whether u is unimodular and u * before = after, in
// which case before and after span the same lattice
func IsChangeOfBasis(u, before, after *bigmatrix.BigMatrix) (bool, error) {
	if before.NumRows() == 0 {
		return after.NumRows() == 0, nil
	}
	isUnimodular, err := IsUnimodular(u)
	if err != nil {
		return false, fmt.Errorf("IsChangeOfBasis: %q", err.Error())
	}
	if !isUnimodular {
		return false, nil
	}
	product, err := bigmatrix.NewEmpty(0, 0).Mul(u, before)
	if err != nil {
		return false, fmt.Errorf("IsChangeOfBasis: could not multiply u by before: %q", err.Error())
	}
	return product.Equals(after), nil
}
