// Copyright (c) 2023 Colin McRae

// Package bigmatrix represents a lattice basis: a matrix of arbitrary-precision
// integers whose rows are the basis vectors
package bigmatrix

import (
	"fmt"
	"math/big"
	"strings"
)

type BigMatrix struct {
	values  []*big.Int
	numRows int
	numCols int
}

// NewFromInt64Array creates a matrix from input with dimensions numRowsIn x
// numColsIn, filling rows in order. If the number of rows and columns are not
// positive and/or do not match the length of the input, an error is returned.
func NewFromInt64Array(input []int64, numRowsIn int, numColsIn int) (*BigMatrix, error) {
	if len(input) != numRowsIn*numColsIn {
		return nil, fmt.Errorf("BigMatrix.NewFromInt64Array: length of input does not match dimensions")
	}
	if numRowsIn <= 0 || numColsIn <= 0 {
		return nil, fmt.Errorf(
			"BigMatrix.NewFromInt64Array: illegal number of rows %d or columns %d",
			numRowsIn, numColsIn,
		)
	}
	retVal := &BigMatrix{
		values:  make([]*big.Int, numRowsIn*numColsIn),
		numRows: numRowsIn,
		numCols: numColsIn,
	}
	for index, value := range input {
		retVal.values[index] = big.NewInt(value)
	}
	return retVal, nil
}

// NewFromDecimalStringArray creates a matrix from decimal integer strings
// with dimensions numRowsIn x numColsIn
func NewFromDecimalStringArray(input []string, numRowsIn int, numColsIn int) (*BigMatrix, error) {
	if len(input) != numRowsIn*numColsIn {
		return nil, fmt.Errorf("BigMatrix.NewFromDecimalStringArray: length of input does not match dimensions")
	}
	if numRowsIn <= 0 || numColsIn <= 0 {
		return nil, fmt.Errorf(
			"BigMatrix.NewFromDecimalStringArray: illegal number of rows %d or columns %d",
			numRowsIn, numColsIn,
		)
	}
	retVal := &BigMatrix{
		values:  make([]*big.Int, numRowsIn*numColsIn),
		numRows: numRowsIn,
		numCols: numColsIn,
	}
	for index, value := range input {
		entry, ok := big.NewInt(0).SetString(strings.TrimSpace(value), 10)
		if !ok {
			return nil, fmt.Errorf(
				"BigMatrix.NewFromDecimalStringArray: could not parse %q as an integer", value,
			)
		}
		retVal.values[index] = entry
	}
	return retVal, nil
}

// NewFromRows creates a matrix whose rows are deep copies of the provided
// rows. No rows at all gives the empty 0 x 0 matrix. Rows of unequal length
// give a *DimensionMismatchError.
func NewFromRows(rows [][]*big.Int) (*BigMatrix, error) {
	if len(rows) == 0 {
		return NewEmpty(0, 0), nil
	}
	numCols := len(rows[0])
	if numCols == 0 {
		return nil, fmt.Errorf("BigMatrix.NewFromRows: row 0 has no entries")
	}
	retVal := &BigMatrix{
		values:  make([]*big.Int, len(rows)*numCols),
		numRows: len(rows),
		numCols: numCols,
	}
	for i, row := range rows {
		if len(row) != numCols {
			return nil, &DimensionMismatchError{
				Op: "BigMatrix.NewFromRows", Row: i, Expected: numCols, Actual: len(row),
			}
		}
		for j, entry := range row {
			if entry == nil {
				return nil, fmt.Errorf("BigMatrix.NewFromRows: entry [%d][%d] is nil", i, j)
			}
			retVal.values[i*numCols+j] = big.NewInt(0).Set(entry)
		}
	}
	return retVal, nil
}

// NewEmpty returns a numRows x numCols matrix with 0s in each value. Negative numRows
// or numCols is interpreted as 0, and a 0 x n or n x 0 matrix is interpreted as 0 x 0.
func NewEmpty(numRows int, numCols int) *BigMatrix {
	if numRows < 0 {
		numRows = 0
	}
	if numCols < 0 {
		numCols = 0
	}
	if numRows*numCols == 0 {
		return &BigMatrix{
			values:  nil,
			numRows: 0,
			numCols: 0,
		}
	}
	retVal := &BigMatrix{
		values:  make([]*big.Int, numRows*numCols),
		numRows: numRows,
		numCols: numCols,
	}
	for i := 0; i < numRows*numCols; i++ {
		retVal.values[i] = big.NewInt(0)
	}
	return retVal
}

// NewIdentity returns a dim x dim identity matrix. If dim < 1,
// an error is returned.
func NewIdentity(dim int) (*BigMatrix, error) {
	if dim < 1 {
		return nil, fmt.Errorf("NewIdentity: dimension %d < 1", dim)
	}
	retVal := NewEmpty(dim, dim)
	for i := 0; i < dim; i++ {
		retVal.values[i*dim+i].SetInt64(1)
	}
	return retVal, nil
}

// Copy copies x to bm and returns bm. This is a deep copy.
func (bm *BigMatrix) Copy(x *BigMatrix) *BigMatrix {
	if x.numRows <= 0 || x.numCols <= 0 {
		bm.numRows = 0
		bm.numCols = 0
		bm.values = nil
		return bm
	}
	bm.numRows = x.numRows
	bm.numCols = x.numCols
	bm.values = make([]*big.Int, bm.numRows*bm.numCols)
	for i := 0; i < bm.numRows*bm.numCols; i++ {
		bm.values[i] = big.NewInt(0).Set(x.values[i])
	}
	return bm
}

// Clone returns a deep copy of bm
func (bm *BigMatrix) Clone() *BigMatrix {
	return NewEmpty(0, 0).Copy(bm)
}

// Set sets the value in row i, column j to x. This is a deep
// copy.
func (bm *BigMatrix) Set(i int, j int, x *big.Int) error {
	if i < 0 || bm.numRows <= i {
		return fmt.Errorf("BigMatrix.Set: index i = %d outside range {0, ... %d}", i, bm.numRows-1)
	}
	if j < 0 || bm.numCols <= j {
		return fmt.Errorf("BigMatrix.Set: index j = %d outside range {0, ... %d}", j, bm.numCols-1)
	}
	bm.values[i*bm.numCols+j].Set(x)
	return nil
}

// Get returns the pointer to the value in row i, column j of bm.
// This is not a deep copy.
func (bm *BigMatrix) Get(i int, j int) (*big.Int, error) {
	if i < 0 || bm.numRows <= i {
		return nil, fmt.Errorf("BigMatrix.Get: index i = %d outside range {0, ... %d}", i, bm.numRows-1)
	}
	if j < 0 || bm.numCols <= j {
		return nil, fmt.Errorf("BigMatrix.Get: index j = %d outside range {0, ... %d}", j, bm.numCols-1)
	}
	return bm.values[i*bm.numCols+j], nil
}

// Row returns the pointers to the values in row i of bm. This is not a deep
// copy; changing an entry of the returned slice changes bm.
func (bm *BigMatrix) Row(i int) ([]*big.Int, error) {
	if i < 0 || bm.numRows <= i {
		return nil, fmt.Errorf("BigMatrix.Row: index i = %d outside range {0, ... %d}", i, bm.numRows-1)
	}
	return bm.values[i*bm.numCols : (i+1)*bm.numCols], nil
}

// Rows returns a deep copy of the rows of bm
func (bm *BigMatrix) Rows() [][]*big.Int {
	retVal := make([][]*big.Int, bm.numRows)
	for i := 0; i < bm.numRows; i++ {
		retVal[i] = make([]*big.Int, bm.numCols)
		for j := 0; j < bm.numCols; j++ {
			retVal[i][j] = big.NewInt(0).Set(bm.values[i*bm.numCols+j])
		}
	}
	return retVal
}

// SwapRows exchanges rows i and j of bm in place
func (bm *BigMatrix) SwapRows(i, j int) error {
	if i < 0 || bm.numRows <= i || j < 0 || bm.numRows <= j {
		return fmt.Errorf(
			"BigMatrix.SwapRows: rows %d and %d not both in {0, ... %d}", i, j, bm.numRows-1,
		)
	}
	for k := 0; k < bm.numCols; k++ {
		bm.values[i*bm.numCols+k], bm.values[j*bm.numCols+k] =
			bm.values[j*bm.numCols+k], bm.values[i*bm.numCols+k]
	}
	return nil
}

// SubtractRowMultiple performs the row operation row dest <- row dest - q row src
// in place. dest and src must differ.
func (bm *BigMatrix) SubtractRowMultiple(dest, src int, q *big.Int) error {
	if dest < 0 || bm.numRows <= dest || src < 0 || bm.numRows <= src {
		return fmt.Errorf(
			"BigMatrix.SubtractRowMultiple: rows %d and %d not both in {0, ... %d}",
			dest, src, bm.numRows-1,
		)
	}
	if dest == src {
		return fmt.Errorf("BigMatrix.SubtractRowMultiple: dest and src are both row %d", dest)
	}
	if q.Sign() == 0 {
		return nil
	}
	term := big.NewInt(0)
	for k := 0; k < bm.numCols; k++ {
		term.Mul(q, bm.values[src*bm.numCols+k])
		bm.values[dest*bm.numCols+k].Sub(bm.values[dest*bm.numCols+k], term)
	}
	return nil
}

// SubMatrix returns a deep copy of the numRows rows of bm starting at row start
func (bm *BigMatrix) SubMatrix(start, numRows int) (*BigMatrix, error) {
	if start < 0 || numRows <= 0 || bm.numRows < start+numRows {
		return nil, fmt.Errorf(
			"BigMatrix.SubMatrix: rows {%d,...,%d} not in {0, ... %d}",
			start, start+numRows-1, bm.numRows-1,
		)
	}
	retVal := &BigMatrix{
		values:  make([]*big.Int, numRows*bm.numCols),
		numRows: numRows,
		numCols: bm.numCols,
	}
	for i := 0; i < numRows*bm.numCols; i++ {
		retVal.values[i] = big.NewInt(0).Set(bm.values[start*bm.numCols+i])
	}
	return retVal, nil
}

// SetSubMatrix overwrites the rows of bm starting at row start with deep copies
// of the rows of x. x must have as many columns as bm.
func (bm *BigMatrix) SetSubMatrix(start int, x *BigMatrix) error {
	if x.numCols != bm.numCols {
		return &DimensionMismatchError{
			Op: "BigMatrix.SetSubMatrix", Row: -1, Expected: bm.numCols, Actual: x.numCols,
		}
	}
	if start < 0 || bm.numRows < start+x.numRows {
		return fmt.Errorf(
			"BigMatrix.SetSubMatrix: rows {%d,...,%d} not in {0, ... %d}",
			start, start+x.numRows-1, bm.numRows-1,
		)
	}
	for i := 0; i < x.numRows*x.numCols; i++ {
		bm.values[start*bm.numCols+i].Set(x.values[i])
	}
	return nil
}

// Mul replaces the contents of bm with the matrix xy and returns bm. If
// dimensions of x and y are invalid or do not match, an error is returned.
func (bm *BigMatrix) Mul(x *BigMatrix, y *BigMatrix) (*BigMatrix, error) {
	err := checkInput(x, y, "Mul")
	if err != nil {
		return nil, err
	}
	retVal := NewEmpty(x.numRows, y.numCols)
	term := big.NewInt(0)
	for i := 0; i < x.numRows; i++ {
		for j := 0; j < y.numCols; j++ {
			entry := retVal.values[i*retVal.numCols+j]
			for k := 0; k < x.numCols; k++ {
				term.Mul(x.values[i*x.numCols+k], y.values[k*y.numCols+j])
				entry.Add(entry, term)
			}
		}
	}
	bm.Copy(retVal)
	return bm, nil
}

// Transpose replaces the contents of bm with the transpose of matrix x. If
// dimensions of x are invalid, an error is returned.
func (bm *BigMatrix) Transpose(x *BigMatrix) (*BigMatrix, error) {
	err := checkInput(x, nil, "Transpose")
	if err != nil {
		return nil, err
	}
	retVal := NewEmpty(x.numCols, x.numRows)
	for i := 0; i < retVal.numRows; i++ {
		for j := 0; j < retVal.numCols; j++ {
			retVal.values[i*retVal.numCols+j].Set(x.values[j*x.numCols+i])
		}
	}
	bm.Copy(retVal)
	return bm, nil
}

// Determinant returns the determinant of the square matrix bm, computed
// exactly with fraction-free (Bareiss) elimination. The empty matrix has
// determinant 1.
func (bm *BigMatrix) Determinant() (*big.Int, error) {
	if bm.numRows != bm.numCols {
		return nil, fmt.Errorf(
			"BigMatrix.Determinant: %d x %d matrix is not square", bm.numRows, bm.numCols,
		)
	}
	n := bm.numRows
	if n == 0 {
		return big.NewInt(1), nil
	}
	a := bm.Clone().values
	sign := 1
	prevPivot := big.NewInt(1)
	for k := 0; k < n-1; k++ {
		if a[k*n+k].Sign() == 0 {
			// Find a row below k with a non-zero entry in column k
			swapRow := -1
			for i := k + 1; i < n; i++ {
				if a[i*n+k].Sign() != 0 {
					swapRow = i
					break
				}
			}
			if swapRow == -1 {
				return big.NewInt(0), nil
			}
			for j := 0; j < n; j++ {
				a[k*n+j], a[swapRow*n+j] = a[swapRow*n+j], a[k*n+j]
			}
			sign = -sign
		}

		// a[i][j] <- (a[i][j] a[k][k] - a[i][k] a[k][j]) / prevPivot, which is exact
		term := big.NewInt(0)
		for i := k + 1; i < n; i++ {
			for j := k + 1; j < n; j++ {
				a[i*n+j].Mul(a[i*n+j], a[k*n+k])
				term.Mul(a[i*n+k], a[k*n+j])
				a[i*n+j].Sub(a[i*n+j], term)
				a[i*n+j].Quo(a[i*n+j], prevPivot)
			}
		}
		prevPivot = a[k*n+k]
	}
	retVal := big.NewInt(0).Set(a[n*n-1])
	if sign < 0 {
		retVal.Neg(retVal)
	}
	return retVal, nil
}

// Equals returns whether bm and x have the same dimensions and equal
// corresponding entries
func (bm *BigMatrix) Equals(x *BigMatrix) bool {
	if (bm.numRows != x.numRows) || (bm.numCols != x.numCols) {
		return false
	}
	for i := 0; i < len(bm.values); i++ {
		if bm.values[i].Cmp(x.values[i]) != 0 {
			return false
		}
	}
	return true
}

// Dimensions returns the number of rows and columns in bm, in that order.
func (bm *BigMatrix) Dimensions() (int, int) {
	return bm.numRows, bm.numCols
}

// NumRows returns the number of rows in bm
func (bm *BigMatrix) NumRows() int {
	return bm.numRows
}

// NumCols returns the number of columns in bm
func (bm *BigMatrix) NumCols() int {
	return bm.numCols
}

// String returns a string representing bm with rows separated by newlines.
func (bm *BigMatrix) String() string {
	var sb strings.Builder
	for i := 0; i < bm.numRows; i++ {
		for j := 0; j < bm.numCols; j++ {
			sb.WriteString(fmt.Sprintf("%s, ", bm.values[i*bm.numCols+j].String()))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func checkInput(x, y *BigMatrix, caller string) error {
	if len(x.values) != x.numRows*x.numCols {
		return fmt.Errorf(
			"BigMatrix.%s: malformed input matrix x[%d][%d] with %d entries",
			caller, x.numRows, x.numCols, len(x.values),
		)
	}
	if x.numRows <= 0 || x.numCols <= 0 {
		return fmt.Errorf(
			"BigMatrix.%s: malformed input matrix x[%d][%d] with %d entries",
			caller, x.numRows, x.numCols, len(x.values),
		)
	}
	if y == nil {
		return nil
	}
	if len(y.values) != y.numRows*y.numCols {
		return fmt.Errorf(
			"BigMatrix.%s: malformed matrix y[%d][%d] with %d entries",
			caller, y.numRows, y.numCols, len(y.values),
		)
	}
	if y.numRows <= 0 || y.numCols <= 0 {
		return fmt.Errorf(
			"BigMatrix.%s: malformed input matrix y[%d][%d] with %d entries",
			caller, y.numRows, y.numCols, len(y.values),
		)
	}
	if caller == "Mul" && (x.numCols != y.numRows) {
		return &DimensionMismatchError{
			Op: "BigMatrix.Mul", Row: -1, Expected: x.numCols, Actual: y.numRows,
		}
	}
	return nil
}
