// Copyright (c) 2023 Colin McRae

package bigmatrix

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intRows(rows ...[]int64) [][]*big.Int {
	retVal := make([][]*big.Int, len(rows))
	for i, row := range rows {
		retVal[i] = make([]*big.Int, len(row))
		for j, entry := range row {
			retVal[i][j] = big.NewInt(entry)
		}
	}
	return retVal
}

func checkEntries(t *testing.T, expected []int64, actual *BigMatrix) {
	numRows, numCols := actual.Dimensions()
	require.Equal(t, len(expected), numRows*numCols)
	for i := 0; i < numRows; i++ {
		for j := 0; j < numCols; j++ {
			entry, err := actual.Get(i, j)
			assert.NoError(t, err)
			assert.Equalf(
				t, 0, big.NewInt(expected[i*numCols+j]).Cmp(entry),
				"entry [%d][%d]: expected %d, got %s", i, j, expected[i*numCols+j], entry.String(),
			)
		}
	}
}

func TestNewFromInt64Array(t *testing.T) {
	x, err := NewFromInt64Array([]int64{0}, 1, 2)
	assert.Error(t, err)
	assert.Nil(t, x)

	x, err = NewFromInt64Array([]int64{}, 0, 1)
	assert.Error(t, err)
	assert.Nil(t, x)

	x, err = NewFromInt64Array([]int64{1, -2, 3, -4, 5, -6}, 2, 3)
	assert.NoError(t, err)
	checkEntries(t, []int64{1, -2, 3, -4, 5, -6}, x)
}

func TestNewFromDecimalStringArray(t *testing.T) {
	x, err := NewFromDecimalStringArray([]string{"0"}, 1, 2)
	assert.Error(t, err)
	assert.Nil(t, x)

	x, err = NewFromDecimalStringArray([]string{"0", "0", "a"}, 3, 1)
	assert.Error(t, err)
	assert.Nil(t, x)

	x, err = NewFromDecimalStringArray([]string{"0", "0", "1.5"}, 3, 1)
	assert.Error(t, err)
	assert.Nil(t, x)

	x, err = NewFromDecimalStringArray(
		[]string{"-123456789012345678901234567890", " 7 "}, 1, 2,
	)
	assert.NoError(t, err)
	entry, err := x.Get(0, 0)
	assert.NoError(t, err)
	assert.Equal(t, "-123456789012345678901234567890", entry.String())
	entry, err = x.Get(0, 1)
	assert.NoError(t, err)
	assert.Equal(t, "7", entry.String())
}

func TestNewFromRows(t *testing.T) {
	x, err := NewFromRows(intRows([]int64{1, 2}, []int64{3, 4}, []int64{5, 6}))
	assert.NoError(t, err)
	assert.Equal(t, 3, x.NumRows())
	assert.Equal(t, 2, x.NumCols())
	checkEntries(t, []int64{1, 2, 3, 4, 5, 6}, x)

	// Empty basis
	x, err = NewFromRows(nil)
	assert.NoError(t, err)
	numRows, numCols := x.Dimensions()
	assert.Equal(t, 0, numRows)
	assert.Equal(t, 0, numCols)

	// Ragged rows
	x, err = NewFromRows(intRows([]int64{1, 2}, []int64{3, 4}, []int64{5}))
	assert.Nil(t, x)
	var dimErr *DimensionMismatchError
	require.True(t, errors.As(err, &dimErr))
	assert.Equal(t, 2, dimErr.Row)
	assert.Equal(t, 2, dimErr.Expected)
	assert.Equal(t, 1, dimErr.Actual)

	// A row with no entries
	_, err = NewFromRows(intRows([]int64{}))
	assert.Error(t, err)

	// Input rows are copied
	rows := intRows([]int64{1, 2})
	x, err = NewFromRows(rows)
	assert.NoError(t, err)
	rows[0][0].SetInt64(100)
	checkEntries(t, []int64{1, 2}, x)
}

func TestNewIdentity(t *testing.T) {
	identity, err := NewIdentity(3)
	assert.NoError(t, err)
	checkEntries(t, []int64{1, 0, 0, 0, 1, 0, 0, 0, 1}, identity)

	// Dimension 0 or less
	_, err = NewIdentity(0)
	assert.Error(t, err)
}

func TestBigMatrix_GetSet(t *testing.T) {
	x := NewEmpty(2, 2)
	assert.NoError(t, x.Set(1, 0, big.NewInt(-5)))
	assert.Error(t, x.Set(2, 0, big.NewInt(1)))
	assert.Error(t, x.Set(0, -1, big.NewInt(1)))
	_, err := x.Get(0, 2)
	assert.Error(t, err)
	checkEntries(t, []int64{0, 0, -5, 0}, x)

	row, err := x.Row(1)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(row))
	row[1].SetInt64(9)
	checkEntries(t, []int64{0, 0, -5, 9}, x)
	_, err = x.Row(2)
	assert.Error(t, err)

	rows := x.Rows()
	rows[0][0].SetInt64(42)
	checkEntries(t, []int64{0, 0, -5, 9}, x)
}

func TestBigMatrix_RowOperations(t *testing.T) {
	x, err := NewFromInt64Array([]int64{1, 1, 1, -1, 0, 2, 3, 5, 6}, 3, 3)
	require.NoError(t, err)

	assert.NoError(t, x.SwapRows(0, 2))
	checkEntries(t, []int64{3, 5, 6, -1, 0, 2, 1, 1, 1}, x)
	assert.Error(t, x.SwapRows(0, 3))

	assert.NoError(t, x.SubtractRowMultiple(0, 2, big.NewInt(3)))
	checkEntries(t, []int64{0, 2, 3, -1, 0, 2, 1, 1, 1}, x)
	assert.NoError(t, x.SubtractRowMultiple(1, 2, big.NewInt(-1)))
	checkEntries(t, []int64{0, 2, 3, 0, 1, 3, 1, 1, 1}, x)
	assert.NoError(t, x.SubtractRowMultiple(1, 2, big.NewInt(0)))
	checkEntries(t, []int64{0, 2, 3, 0, 1, 3, 1, 1, 1}, x)
	assert.Error(t, x.SubtractRowMultiple(1, 1, big.NewInt(1)))
	assert.Error(t, x.SubtractRowMultiple(-1, 1, big.NewInt(1)))
}

func TestBigMatrix_SubMatrix(t *testing.T) {
	x, err := NewFromInt64Array([]int64{1, 2, 3, 4, 5, 6, 7, 8}, 4, 2)
	require.NoError(t, err)

	sub, err := x.SubMatrix(1, 2)
	assert.NoError(t, err)
	checkEntries(t, []int64{3, 4, 5, 6}, sub)

	// sub is a deep copy
	assert.NoError(t, sub.Set(0, 0, big.NewInt(-3)))
	checkEntries(t, []int64{1, 2, 3, 4, 5, 6, 7, 8}, x)

	assert.NoError(t, x.SetSubMatrix(2, sub))
	checkEntries(t, []int64{1, 2, 3, 4, -3, 4, 5, 6}, x)

	_, err = x.SubMatrix(3, 2)
	assert.Error(t, err)
	_, err = x.SubMatrix(0, 0)
	assert.Error(t, err)
	assert.Error(t, x.SetSubMatrix(3, sub))

	wide := NewEmpty(1, 3)
	err = x.SetSubMatrix(0, wide)
	var dimErr *DimensionMismatchError
	assert.True(t, errors.As(err, &dimErr))
}

func TestBigMatrix_Mul(t *testing.T) {
	x, err := NewFromInt64Array([]int64{1, 2, 3, 4, 5, 6}, 2, 3)
	require.NoError(t, err)
	y, err := NewFromInt64Array([]int64{7, 8, 9, 10, 11, 12}, 3, 2)
	require.NoError(t, err)
	xy, err := NewEmpty(0, 0).Mul(x, y)
	assert.NoError(t, err)
	checkEntries(t, []int64{58, 64, 139, 154}, xy)

	// Mismatched dimensions
	out, err := NewEmpty(0, 0).Mul(x, x)
	assert.Nil(t, out)
	var dimErr *DimensionMismatchError
	assert.True(t, errors.As(err, &dimErr))

	// Empty operand
	out, err = NewEmpty(0, 0).Mul(NewEmpty(0, 0), y)
	assert.Nil(t, out)
	assert.Error(t, err)
}

func TestBigMatrix_Transpose(t *testing.T) {
	x, err := NewFromInt64Array([]int64{1, 2, 3, 4, 5, 6}, 2, 3)
	require.NoError(t, err)
	xt, err := NewEmpty(0, 0).Transpose(x)
	assert.NoError(t, err)
	assert.Equal(t, 3, xt.NumRows())
	checkEntries(t, []int64{1, 4, 2, 5, 3, 6}, xt)
}

func TestBigMatrix_Determinant(t *testing.T) {
	testCases := []struct {
		entries  []int64
		dim      int
		expected int64
	}{
		{[]int64{5}, 1, 5},
		{[]int64{2, 0, 0, 3}, 2, 6},
		{[]int64{0, 1, 1, 0}, 2, -1},
		{[]int64{1, 2, 2, 4}, 2, 0},
		{[]int64{1, 2, 3, 4, 5, 6, 7, 8, 10}, 3, -3},
		{[]int64{0, 2, 1, 1, 0, 0, 0, 0, 3}, 3, -6},
		{[]int64{1, 1, 1, -1, 0, 2, 3, 5, 6}, 3, -3},
		{[]int64{0, 0, 0, 0, 1, 2, 0, 3, 4}, 3, 0},
	}
	for _, tc := range testCases {
		x, err := NewFromInt64Array(tc.entries, tc.dim, tc.dim)
		require.NoError(t, err)
		det, err := x.Determinant()
		assert.NoError(t, err)
		assert.Equalf(t, tc.expected, det.Int64(), "det of %v", tc.entries)

		// Determinant does not modify x
		checkEntries(t, tc.entries, x)
	}

	det, err := NewEmpty(0, 0).Determinant()
	assert.NoError(t, err)
	assert.Equal(t, int64(1), det.Int64())

	_, err = NewEmpty(2, 3).Determinant()
	assert.Error(t, err)
}

func TestBigMatrix_Equals(t *testing.T) {
	x, err := NewFromInt64Array([]int64{1, 2, 3, 4}, 2, 2)
	require.NoError(t, err)
	y := x.Clone()
	assert.True(t, x.Equals(y))
	assert.NoError(t, y.Set(1, 1, big.NewInt(5)))
	assert.False(t, x.Equals(y))

	z, err := NewFromInt64Array([]int64{1, 2, 3, 4}, 1, 4)
	require.NoError(t, err)
	assert.False(t, x.Equals(z))
	assert.True(t, NewEmpty(0, 0).Equals(NewEmpty(0, 5)))
	assert.Equal(t, "1, 2, \n3, 4, \n", x.String())
}
