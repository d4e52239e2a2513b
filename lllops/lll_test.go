// Copyright (c) 2023 Colin McRae

package lllops

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/kobzistiy/lll/bigmatrix"
	"github.com/kobzistiy/lll/bignumber"
	"github.com/kobzistiy/lll/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeQuarters(t *testing.T) *bignumber.BigNumber {
	delta, err := bignumber.NewFromFraction(3, 4)
	require.NoError(t, err)
	return delta
}

func basisFromRows(t *testing.T, rows [][]int64) *bigmatrix.BigMatrix {
	b, err := util.NewBasisFromInt64Rows(rows)
	require.NoError(t, err)
	return b
}

var knapsackWeights = []int64{1234, 2345, 3456, 4567, 5678}

func knapsackRows(t *testing.T) [][]int64 {
	b, err := util.KnapsackBasis(knapsackWeights)
	require.NoError(t, err)
	rows, err := util.Int64Rows(b)
	require.NoError(t, err)
	return rows
}

func TestReduce_Golden(t *testing.T) {
	testCases := []struct {
		name     string
		input    [][]int64
		expected [][]int64
		stats    Stats
	}{
		{
			name:     "3x3",
			input:    [][]int64{{1, 1, 1}, {-1, 0, 2}, {3, 5, 6}},
			expected: [][]int64{{0, 1, 0}, {1, 0, 1}, {-1, 0, 2}},
			stats:    Stats{Swaps: 2, SizeReductions: 3},
		},
		{
			name:     "repeated row",
			input:    [][]int64{{1, 2, 3}, {1, 2, 3}, {4, 5, 6}},
			expected: [][]int64{{0, 0, 0}, {2, 1, 0}, {-1, 1, 3}},
			stats:    Stats{Swaps: 2, SizeReductions: 3},
		},
		{
			name:  "knapsack",
			input: knapsackRows(t),
			expected: [][]int64{
				{1, -1, -1, 1, 0, 0},
				{1, -2, 1, 0, 0, 0},
				{1, -1, 0, -1, 1, 0},
				{-7, -5, -2, 1, 4, 4},
				{-30, -19, -8, 4, 16, -107},
			},
			stats: Stats{Swaps: 9, SizeReductions: 25},
		},
		{
			name:     "single vector",
			input:    [][]int64{{7, 0, 0}},
			expected: [][]int64{{7, 0, 0}},
		},
		{
			name:     "leading zero vector",
			input:    [][]int64{{0, 0, 0}, {1, 2, 3}},
			expected: [][]int64{{0, 0, 0}, {1, 2, 3}},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := basisFromRows(t, tc.input)
			stats, err := Reduce(b, threeQuarters(t))
			assert.NoError(t, err)
			assert.Equal(t, tc.stats, stats)
			actual, err := util.Int64Rows(b)
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, actual)
			assert.NoError(t, CheckReduced(b, threeQuarters(t)))
		})
	}
}

func TestReduce_EmptyBasis(t *testing.T) {
	b := bigmatrix.NewEmpty(0, 0)
	stats, err := Reduce(b, threeQuarters(t))
	assert.NoError(t, err)
	assert.Equal(t, Stats{}, stats)
	assert.Equal(t, 0, b.NumRows())
}

func TestReduce_BadArguments(t *testing.T) {
	_, err := Reduce(nil, threeQuarters(t))
	assert.Error(t, err)
	_, err = Reduce(basisFromRows(t, [][]int64{{1, 0}, {0, 1}}), nil)
	assert.Error(t, err)
	_, err = ReduceWithTransform(
		basisFromRows(t, [][]int64{{1, 0}, {0, 1}}), bigmatrix.NewEmpty(3, 3), threeQuarters(t),
	)
	var dimErr *bigmatrix.DimensionMismatchError
	assert.ErrorAs(t, err, &dimErr)
}

// With mu = 5/2, rounding half away from zero subtracts 3 b_0; rounding half
// to even would subtract 2 b_0 and leave (1, 7).
func TestReduce_RoundingTies(t *testing.T) {
	testCases := []struct {
		input    [][]int64
		expected [][]int64
	}{
		{[][]int64{{2, 0}, {5, 7}}, [][]int64{{2, 0}, {-1, 7}}},
		{[][]int64{{2, 0}, {-5, 7}}, [][]int64{{2, 0}, {1, 7}}},
		{[][]int64{{2, 0}, {1, 5}}, [][]int64{{2, 0}, {1, 5}}},
		{[][]int64{{2, 0}, {-1, 5}}, [][]int64{{2, 0}, {-1, 5}}},
	}
	for _, tc := range testCases {
		b := basisFromRows(t, tc.input)
		_, err := Reduce(b, threeQuarters(t))
		assert.NoError(t, err)
		actual, err := util.Int64Rows(b)
		assert.NoError(t, err)
		assert.Equalf(t, tc.expected, actual, "input %v", tc.input)
	}
}

func TestReduce_Idempotent(t *testing.T) {
	b, err := util.KnapsackBasis(knapsackWeights)
	require.NoError(t, err)
	_, err = Reduce(b, threeQuarters(t))
	require.NoError(t, err)
	reduced := b.Clone()
	stats, err := Reduce(b, threeQuarters(t))
	assert.NoError(t, err)
	assert.Equal(t, Stats{}, stats)
	assert.True(t, reduced.Equals(b))
}

func TestReduce_LargerDelta(t *testing.T) {
	delta, err := bignumber.NewFromFraction(99, 100)
	require.NoError(t, err)
	b := basisFromRows(t, [][]int64{{1, 1, 1}, {-1, 0, 2}, {3, 5, 6}})
	_, err = Reduce(b, delta)
	assert.NoError(t, err)
	actual, err := util.Int64Rows(b)
	assert.NoError(t, err)
	assert.Equal(t, [][]int64{{0, 1, 0}, {1, 0, 1}, {-1, 0, 2}}, actual)
	assert.NoError(t, CheckReduced(b, delta))
}

// TestReduceWithTransform_Random checks on random bases, some of them rank
// deficient, that the output is LLL-reduced and that the accumulated transform
// is a unimodular change of basis from the input to the output.
func TestReduceWithTransform_Random(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	delta := threeQuarters(t)
	for _, dims := range [][2]int{{2, 2}, {3, 3}, {4, 6}, {5, 5}, {6, 4}, {8, 8}} {
		numRows, numCols := dims[0], dims[1]
		for trial := 0; trial < 5; trial++ {
			t.Run(fmt.Sprintf("%dx%d-%d", numRows, numCols, trial), func(t *testing.T) {
				b, err := util.RandomBasis(rng, numRows, numCols, 50)
				require.NoError(t, err)
				original := b.Clone()
				u, err := bigmatrix.NewIdentity(numRows)
				require.NoError(t, err)

				_, err = ReduceWithTransform(b, u, delta)
				require.NoError(t, err)
				assert.NoError(t, CheckReduced(b, delta))
				isChange, err := util.IsChangeOfBasis(u, original, b)
				assert.NoError(t, err)
				assert.True(t, isChange)
			})
		}
	}
}

// A basis disguised by a unimodular transform reduces to a basis of the
// original lattice
func TestReduce_DisguisedBasis(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	delta := threeQuarters(t)
	original := basisFromRows(t, [][]int64{{1, 0, 0, 3}, {0, 1, 0, 5}, {0, 0, 1, 7}, {0, 0, 0, 11}})
	for trial := 0; trial < 10; trial++ {
		a, aInverse, err := util.CreateInversePair(rng, 4)
		require.NoError(t, err)
		isInverse, err := util.IsInversePair(a, aInverse)
		require.NoError(t, err)
		require.True(t, isInverse)

		disguised, err := bigmatrix.NewEmpty(0, 0).Mul(a, original)
		require.NoError(t, err)
		b := disguised.Clone()
		u, err := bigmatrix.NewIdentity(4)
		require.NoError(t, err)
		_, err = ReduceWithTransform(b, u, delta)
		require.NoError(t, err)
		assert.NoError(t, CheckReduced(b, delta))

		// u * a is the change of basis from original to b
		ua, err := bigmatrix.NewEmpty(0, 0).Mul(u, a)
		require.NoError(t, err)
		isChange, err := util.IsChangeOfBasis(ua, original, b)
		assert.NoError(t, err)
		assert.True(t, isChange)
	}
}

// Reordering the input rows changes the reduced basis but not the lattice
func TestReduce_PermutedRows(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	delta := threeQuarters(t)
	knapsack, err := util.KnapsackBasis(knapsackWeights)
	require.NoError(t, err)
	for trial := 0; trial < 10; trial++ {
		random, err := util.RandomBasis(rng, 5, 4, 30)
		require.NoError(t, err)
		for _, b := range []*bigmatrix.BigMatrix{knapsack, random} {
			perm := util.GetPermutation(rng, b.NumRows())
			permuted, err := util.PermuteRows(b, perm)
			require.NoError(t, err)
			for i, src := range perm {
				expected, err := b.Row(src)
				require.NoError(t, err)
				actual, err := permuted.Row(i)
				require.NoError(t, err)
				for j := range expected {
					assert.Zero(t, expected[j].Cmp(actual[j]))
				}
			}

			reduced := permuted.Clone()
			u, err := bigmatrix.NewIdentity(reduced.NumRows())
			require.NoError(t, err)
			_, err = ReduceWithTransform(reduced, u, delta)
			require.NoError(t, err)
			assert.NoError(t, CheckReduced(reduced, delta))
			isChange, err := util.IsChangeOfBasis(u, permuted, reduced)
			assert.NoError(t, err)
			assert.True(t, isChange)
		}
	}

	_, err = util.PermuteRows(knapsack, []int{1, 0})
	var dimErr *bigmatrix.DimensionMismatchError
	assert.ErrorAs(t, err, &dimErr)
}

func TestCheckReduced(t *testing.T) {
	delta := threeQuarters(t)

	// |mu[1][0]| = 3/2
	assert.Error(t, CheckReduced(basisFromRows(t, [][]int64{{2, 0}, {3, 5}}), delta))

	// Size reduced, but 1 < (3/4 - 0) * 100
	assert.Error(t, CheckReduced(basisFromRows(t, [][]int64{{10, 0}, {0, 1}}), delta))

	assert.NoError(t, CheckReduced(basisFromRows(t, [][]int64{{0, 1}, {10, 0}}), delta))
	assert.NoError(t, CheckReduced(bigmatrix.NewEmpty(0, 0), delta))
}

func TestStats_Add(t *testing.T) {
	stats := Stats{Swaps: 1, SizeReductions: 2}
	stats.Add(Stats{Swaps: 3, SizeReductions: 4})
	assert.Equal(t, Stats{Swaps: 4, SizeReductions: 6}, stats)
}
