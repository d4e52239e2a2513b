// Copyright (c) 2023 Colin McRae

package lllops

import (
	"math/big"
	"testing"

	"github.com/kobzistiy/lll/bigmatrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGramSchmidt(t *testing.T) {
	b := basisFromRows(t, [][]int64{{1, 1, 1}, {-1, 0, 2}, {3, 5, 6}})
	gs, err := NewGramSchmidt(b)
	require.NoError(t, err)
	assert.Equal(t, 3, gs.NumRows())
	assert.Equal(t, 3, gs.Rank())

	expectedMu := map[[2]int]string{{1, 0}: "1/3", {2, 0}: "14/3", {2, 1}: "13/14"}
	for ij, expected := range expectedMu {
		mu, err := gs.Mu(ij[0], ij[1])
		assert.NoError(t, err)
		assert.Equalf(t, expected, mu.String(), "mu[%d][%d]", ij[0], ij[1])
	}
	for i, expected := range []string{"3", "14/3", "9/14"} {
		normSq, err := gs.NormSquared(i)
		assert.NoError(t, err)
		assert.Equalf(t, expected, normSq.String(), "normSq[%d]", i)
	}
	bStar1, err := gs.BStar(1)
	assert.NoError(t, err)
	for j, expected := range []string{"-4/3", "-1/3", "5/3"} {
		assert.Equal(t, expected, bStar1[j].String())
	}

	// Out of range
	_, err = gs.Mu(1, 1)
	assert.Error(t, err)
	_, err = gs.Mu(3, 0)
	assert.Error(t, err)
	_, err = gs.NormSquared(3)
	assert.Error(t, err)
	_, err = gs.BStar(-1)
	assert.Error(t, err)
}

func TestNewGramSchmidt_Dependent(t *testing.T) {
	b := basisFromRows(t, [][]int64{{1, 2, 3}, {2, 4, 6}, {0, 1, 0}})
	gs, err := NewGramSchmidt(b)
	require.NoError(t, err)
	assert.Equal(t, 2, gs.Rank())

	normSq, err := gs.NormSquared(1)
	assert.NoError(t, err)
	assert.True(t, normSq.IsZero())
	mu, err := gs.Mu(1, 0)
	assert.NoError(t, err)
	assert.Equal(t, "2", mu.String())
	mu, err = gs.Mu(2, 1)
	assert.NoError(t, err)
	assert.True(t, mu.IsZero())
}

func TestGramSchmidt_UpdateFrom(t *testing.T) {
	b := basisFromRows(t, [][]int64{{1, 1, 1}, {-1, 0, 2}, {3, 5, 6}, {2, -7, 1}})
	gs, err := NewGramSchmidt(b)
	require.NoError(t, err)

	// Change rows 2 and 3, then recompute only from row 2
	require.NoError(t, b.SubtractRowMultiple(2, 0, big.NewInt(5)))
	require.NoError(t, b.SwapRows(2, 3))
	require.NoError(t, gs.UpdateFrom(b, 2))

	expected, err := NewGramSchmidt(b)
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		actualNormSq, _ := gs.NormSquared(i)
		expectedNormSq, _ := expected.NormSquared(i)
		assert.Equal(t, 0, expectedNormSq.Cmp(actualNormSq))
		for j := 0; j < i; j++ {
			actualMu, _ := gs.Mu(i, j)
			expectedMu, _ := expected.Mu(i, j)
			assert.Equalf(t, 0, expectedMu.Cmp(actualMu), "mu[%d][%d]", i, j)
		}
	}

	assert.Error(t, gs.UpdateFrom(b, 4))
	assert.Error(t, gs.UpdateFrom(b, -1))
	assert.Error(t, gs.UpdateFrom(bigmatrix.NewEmpty(4, 2), 0))
}

func TestNewGramSchmidt_Empty(t *testing.T) {
	gs, err := NewGramSchmidt(bigmatrix.NewEmpty(0, 0))
	assert.NoError(t, err)
	assert.Equal(t, 0, gs.NumRows())
	assert.Equal(t, 0, gs.Rank())
}
