// Copyright (c) 2023 Colin McRae

// Package quality measures how reduced a basis is. The measures are floating
// point approximations meant for reporting only; reduction itself never uses
// them.
package quality

import (
	"fmt"
	"math"
	"math/big"

	"github.com/kobzistiy/lll/bigmatrix"
	"github.com/kobzistiy/lll/lllops"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Report describes a basis b with Rows rows and lattice volume vol.
//
// - Norms[i] is the Euclidean length of b_i
//
// - LogDetGram is ln det(b b^T) = 2 ln vol, or -Inf if the rows are dependent
//
// - HermiteFactor is ||b_i|| / vol^(1/Rank) for the first non-zero b_i
//
// - OrthogonalityDefect is prod ||b_i|| / vol; it is 1 exactly when the rows
// are orthogonal, and +Inf if they are dependent
type Report struct {
	Rows                int
	Cols                int
	Rank                int
	Norms               []float64
	LogDetGram          float64
	HermiteFactor       float64
	OrthogonalityDefect float64
}

// Compute returns the Report for b
func Compute(b *bigmatrix.BigMatrix) (*Report, error) {
	numRows, numCols := b.Dimensions()
	retVal := &Report{Rows: numRows, Cols: numCols, Norms: []float64{}}
	if numRows == 0 {
		return retVal, nil
	}

	// Exact Gram-Schmidt gives the rank and the volume, even for dependent rows
	gs, err := lllops.NewGramSchmidt(b)
	if err != nil {
		return nil, fmt.Errorf("Compute: %q", err.Error())
	}
	retVal.Rank = gs.Rank()
	logNormSq := make([]float64, 0, numRows)
	for i := 0; i < numRows; i++ {
		normSq, _ := gs.NormSquared(i)
		if normSq.IsZero() {
			continue
		}
		logNormSq = append(logNormSq, logOfRat(normSq.AsRat()))
	}
	logVolume := floats.Sum(logNormSq) / 2

	values := make([]float64, numRows*numCols)
	for i, row := range b.Rows() {
		for j, entry := range row {
			values[i*numCols+j], _ = new(big.Float).SetInt(entry).Float64()
		}
	}
	basis := mat.NewDense(numRows, numCols, values)
	retVal.Norms = make([]float64, numRows)
	logNorms := make([]float64, numRows)
	for i := 0; i < numRows; i++ {
		retVal.Norms[i] = floats.Norm(basis.RawRowView(i), 2)
		logNorms[i] = math.Log(retVal.Norms[i])
	}

	if retVal.Rank < numRows {
		retVal.LogDetGram = math.Inf(-1)
		retVal.OrthogonalityDefect = math.Inf(1)
	} else {
		gram := mat.NewSymDense(numRows, nil)
		gram.SymOuterK(1, basis)
		logDet, sign := mat.LogDet(gram)
		if sign <= 0 || math.IsInf(logDet, 0) || math.IsNaN(logDet) {
			// The Gram matrix is too ill-conditioned for floating point
			logDet = 2 * logVolume
		}
		retVal.LogDetGram = logDet
		retVal.OrthogonalityDefect = math.Exp(floats.Sum(logNorms) - logDet/2)
	}
	if retVal.Rank > 0 {
		for i := 0; i < numRows; i++ {
			if retVal.Norms[i] > 0 {
				retVal.HermiteFactor = math.Exp(logNorms[i] - logVolume/float64(retVal.Rank))
				break
			}
		}
	}
	return retVal, nil
}

// logOfRat returns ln(x) for a positive rational x, without overflowing when
// the numerator or denominator exceeds the range of a float64
func logOfRat(x *big.Rat) float64 {
	return logOfInt(x.Num()) - logOfInt(x.Denom())
}

func logOfInt(x *big.Int) float64 {
	bitLen := x.BitLen()
	if bitLen <= 1000 {
		f, _ := new(big.Float).SetInt(x).Float64()
		return math.Log(f)
	}
	shift := uint(bitLen - 64)
	mantissa, _ := new(big.Float).SetInt(new(big.Int).Rsh(x, shift)).Float64()
	return math.Log(mantissa) + float64(shift)*math.Ln2
}

// LogContext returns the report as key/value pairs for a structured logger
func (r *Report) LogContext() []interface{} {
	return []interface{}{
		"rows", r.Rows, "cols", r.Cols, "rank", r.Rank,
		"logdetgram", r.LogDetGram, "hermite", r.HermiteFactor, "defect", r.OrthogonalityDefect,
		"maxnorm", maxOrZero(r.Norms),
	}
}

func maxOrZero(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return floats.Max(x)
}
