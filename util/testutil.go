// Copyright (c) 2023 Colin McRae

package util

import (
	"fmt"
	"math/big"
	"math/rand"

	"github.com/kobzistiy/lll/bigmatrix"
)

// CreateInversePair creates a pair of inverse matrices with integer entries and determinant 1,
// as a product of random elementary row operations
func CreateInversePair(rng *rand.Rand, dim int) (*bigmatrix.BigMatrix, *bigmatrix.BigMatrix, error) {
	const maxRowOpEntry = 10
	const maxRowOps = 10
	const maxMatrixEntry = 100
	if dim < 2 {
		return nil, nil, fmt.Errorf("CreateInversePair: dim = %d < 2", dim)
	}
	a, err := bigmatrix.NewIdentity(dim)
	if err != nil {
		return nil, nil, fmt.Errorf("CreateInversePair: %q", err.Error())
	}
	aInverse := a.Clone()

	// The inverse operation to adding c times row i to row j is to add -c times row i to
	// row j. On the right of the inverse, that operation subtracts c times column j from
	// column i.
	for i := 0; i < maxRowOps; i++ {
		srcRow := rng.Intn(dim)
		destRow := rng.Intn(dim - 1)
		if srcRow <= destRow {
			destRow++
		}
		multiple := int64(rng.Intn(maxRowOpEntry) - (maxRowOpEntry / 2))
		if multiple == 0 {
			multiple = 1
		}
		tmpA := a.Clone()
		err = tmpA.SubtractRowMultiple(destRow, srcRow, big.NewInt(-multiple))
		if err != nil {
			return nil, nil, fmt.Errorf("CreateInversePair: %q", err.Error())
		}
		tmpB := aInverse.Clone()
		for k := 0; k < dim; k++ {
			// tmpB[k][srcRow] -= multiple * tmpB[k][destRow]
			bkDest, _ := tmpB.Get(k, destRow)
			bkSrc, _ := tmpB.Get(k, srcRow)
			term := big.NewInt(0).Mul(big.NewInt(multiple), bkDest)
			_ = tmpB.Set(k, srcRow, big.NewInt(0).Sub(bkSrc, term))
		}

		// An entry in tmpA or tmpB may exceed the maximum desired
		if exceeds(tmpA, maxMatrixEntry) || exceeds(tmpB, maxMatrixEntry) {
			return a, aInverse, nil
		}
		a = tmpA
		aInverse = tmpB
	}

	// The maximum number of iterations has been reached
	return a, aInverse, nil
}

func exceeds(x *bigmatrix.BigMatrix, maxEntry int64) bool {
	bound := big.NewInt(maxEntry)
	for _, row := range x.Rows() {
		for _, entry := range row {
			if entry.CmpAbs(bound) > 0 {
				return true
			}
		}
	}
	return false
}

// IsInversePair returns whether x and y are inverses of each other
func IsInversePair(x, y *bigmatrix.BigMatrix) (bool, error) {
	shouldBeIdentity, err := bigmatrix.NewEmpty(0, 0).Mul(x, y)
	if err != nil {
		return false, fmt.Errorf("IsInversePair: could not multiply x by y: %q", err.Error())
	}
	identity, err := bigmatrix.NewIdentity(x.NumRows())
	if err != nil {
		return false, fmt.Errorf("IsInversePair: %q", err.Error())
	}
	return shouldBeIdentity.Equals(identity), nil
}

// RandomBasis returns a numRows x numCols integer matrix with entries in
// [-maxEntry, maxEntry]. Its rows need not be linearly independent.
func RandomBasis(rng *rand.Rand, numRows, numCols int, maxEntry int64) (*bigmatrix.BigMatrix, error) {
	rows := make([][]int64, numRows)
	for i := 0; i < numRows; i++ {
		rows[i] = make([]int64, numCols)
		for j := 0; j < numCols; j++ {
			rows[i][j] = rng.Int63n(2*maxEntry+1) - maxEntry
		}
	}
	return NewBasisFromInt64Rows(rows)
}

// KnapsackBasis returns the basis with rows (e_i, weights[i]), the standard
// embedding of a subset-sum or integer relation problem
func KnapsackBasis(weights []int64) (*bigmatrix.BigMatrix, error) {
	numRows := len(weights)
	rows := make([][]int64, numRows)
	for i := 0; i < numRows; i++ {
		rows[i] = make([]int64, numRows+1)
		rows[i][i] = 1
		rows[i][numRows] = weights[i]
	}
	return NewBasisFromInt64Rows(rows)
}

// GetPermutation returns a random permutation of {0,...,size-1} that is not the
// identity. size must be at least 2.
func GetPermutation(rng *rand.Rand, size int) []int {
	permutation := rng.Perm(size)

	// Return the random permutation if it is not the identity
	isIdentity := true
	for i := 0; i < size; i++ {
		if permutation[i] != i {
			isIdentity = false
		}
	}
	if !isIdentity {
		return permutation
	}

	// The random permutation is the identity. Return a random swap.
	src := rng.Intn(size)
	dest := rng.Intn(size - 1)
	if src <= dest {
		dest++
	}
	permutation[src] = dest
	permutation[dest] = src
	return permutation
}

// PermuteRows returns a copy of x whose row i is row perm[i] of x
func PermuteRows(x *bigmatrix.BigMatrix, perm []int) (*bigmatrix.BigMatrix, error) {
	rows := x.Rows()
	if len(perm) != len(rows) {
		return nil, &bigmatrix.DimensionMismatchError{
			Op: "PermuteRows", Row: -1, Expected: len(rows), Actual: len(perm),
		}
	}
	permuted := make([][]*big.Int, len(rows))
	for i := range perm {
		permuted[i] = rows[perm[i]]
	}
	return bigmatrix.NewFromRows(permuted)
}
