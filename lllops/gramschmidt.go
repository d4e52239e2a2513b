// Copyright (c) 2023 Colin McRae

package lllops

import (
	"fmt"

	"github.com/kobzistiy/lll/bigmatrix"
	"github.com/kobzistiy/lll/bignumber"
)

// GramSchmidt holds the exact Gram-Schmidt orthogonalization of a basis b:
//
// - bStar[i] = b*_i, the component of b_i orthogonal to b_0,...,b_{i-1}
//
// - mu[i][j] = <b_i, b*_j> / <b*_j, b*_j> for j < i, or 0 when b*_j = 0
//
// - normSq[i] = <b*_i, b*_i>
//
// The b*_i are not normalized, so every entry is rational.
type GramSchmidt struct {
	numRows int
	numCols int
	bStar   [][]*bignumber.BigNumber
	mu      [][]*bignumber.BigNumber // mu[i] has length i
	normSq  []*bignumber.BigNumber
}

// NewGramSchmidt returns the Gram-Schmidt orthogonalization of the rows of b
func NewGramSchmidt(b *bigmatrix.BigMatrix) (*GramSchmidt, error) {
	numRows, numCols := b.Dimensions()
	retVal := &GramSchmidt{
		numRows: numRows,
		numCols: numCols,
		bStar:   make([][]*bignumber.BigNumber, numRows),
		mu:      make([][]*bignumber.BigNumber, numRows),
		normSq:  make([]*bignumber.BigNumber, numRows),
	}
	for i := 0; i < numRows; i++ {
		retVal.mu[i] = make([]*bignumber.BigNumber, i)
	}
	err := retVal.UpdateFrom(b, 0)
	if err != nil {
		return nil, fmt.Errorf("NewGramSchmidt: %q", err.Error())
	}
	return retVal, nil
}

// UpdateFrom recomputes b*_i, mu[i][*] and normSq[i] for i = start,...,numRows-1
// from the current rows of b. Rows of b before start must not have changed
// since they were last computed; then the result is identical to a full
// recomputation, because every value is exact.
func (gs *GramSchmidt) UpdateFrom(b *bigmatrix.BigMatrix, start int) error {
	numRows, numCols := b.Dimensions()
	if numRows != gs.numRows || numCols != gs.numCols {
		return fmt.Errorf(
			"GramSchmidt.UpdateFrom: b is %d x %d but the orthogonalization is %d x %d",
			numRows, numCols, gs.numRows, gs.numCols,
		)
	}
	if start < 0 || (numRows > 0 && numRows <= start) {
		return fmt.Errorf("GramSchmidt.UpdateFrom: start = %d not in {0,...,%d}", start, numRows-1)
	}
	for i := start; i < numRows; i++ {
		err := gs.updateRow(b, i)
		if err != nil {
			return fmt.Errorf("GramSchmidt.UpdateFrom: row %d: %q", i, err.Error())
		}
	}
	return nil
}

// updateRow recomputes b*_i, mu[i][*] and normSq[i], assuming b*_j and normSq[j]
// are current for all j < i.
func (gs *GramSchmidt) updateRow(b *bigmatrix.BigMatrix, i int) error {
	bi, err := b.Row(i)
	if err != nil {
		return err
	}
	bStarI := bignumber.NewVectorFromInts(bi)
	for j := 0; j < i; j++ {
		if gs.normSq[j].IsZero() {
			// b_j depends on b_0,...,b_{j-1}, so there is nothing to project onto
			gs.mu[i][j] = bignumber.NewFromInt64(0)
			continue
		}
		numerator, err := bignumber.IntDotProduct(bi, gs.bStar[j])
		if err != nil {
			return err
		}
		muIJ, err := bignumber.NewFromInt64(0).Quo(numerator, gs.normSq[j])
		if err != nil {
			return err
		}
		gs.mu[i][j] = muIJ
		err = bignumber.SubScaled(bStarI, muIJ, gs.bStar[j])
		if err != nil {
			return err
		}
	}
	gs.bStar[i] = bStarI
	gs.normSq[i] = bignumber.NormSquared(bStarI)
	return nil
}

// Mu returns mu[i][j] for 0 <= j < i < numRows. This is not a deep copy.
func (gs *GramSchmidt) Mu(i, j int) (*bignumber.BigNumber, error) {
	if i < 0 || gs.numRows <= i || j < 0 || i <= j {
		return nil, fmt.Errorf("GramSchmidt.Mu: (%d, %d) is not below the diagonal of a %d x %d table",
			i, j, gs.numRows, gs.numRows,
		)
	}
	return gs.mu[i][j], nil
}

// BStar returns b*_i. This is not a deep copy.
func (gs *GramSchmidt) BStar(i int) ([]*bignumber.BigNumber, error) {
	if i < 0 || gs.numRows <= i {
		return nil, fmt.Errorf("GramSchmidt.BStar: index i = %d outside range {0, ... %d}", i, gs.numRows-1)
	}
	return gs.bStar[i], nil
}

// NormSquared returns <b*_i, b*_i>. This is not a deep copy.
func (gs *GramSchmidt) NormSquared(i int) (*bignumber.BigNumber, error) {
	if i < 0 || gs.numRows <= i {
		return nil, fmt.Errorf(
			"GramSchmidt.NormSquared: index i = %d outside range {0, ... %d}", i, gs.numRows-1,
		)
	}
	return gs.normSq[i], nil
}

// Rank returns the number of non-zero b*_i, which is the dimension of the
// lattice spanned by b
func (gs *GramSchmidt) Rank() int {
	retVal := 0
	for i := 0; i < gs.numRows; i++ {
		if !gs.normSq[i].IsZero() {
			retVal++
		}
	}
	return retVal
}

// NumRows returns the number of basis vectors that were orthogonalized
func (gs *GramSchmidt) NumRows() int {
	return gs.numRows
}
