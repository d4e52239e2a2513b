// Copyright (c) 2023 Colin McRae

package main

import (
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/kobzistiy/lll/bigmatrix"
	"github.com/kobzistiy/lll/bkz"
	"github.com/kobzistiy/lll/config"
	"github.com/kobzistiy/lll/lllops"
	"github.com/kobzistiy/lll/util"
)

var exampleBasis = [][]int64{{1, 1, 1}, {-1, 0, 2}, {3, 5, 6}}

// runTestMode reduces exampleBasis with LLL and with BKZ and writes the three
// bases side by side, with the squared length of every vector
func runTestMode(cfg *config.Config, w io.Writer) error {
	original, err := util.NewBasisFromInt64Rows(exampleBasis)
	if err != nil {
		return err
	}
	cfg.Algorithm = config.AlgorithmBKZ
	err = cfg.ValidateForBasis(original.NumRows())
	if err != nil {
		return err
	}
	delta, err := cfg.DeltaValue()
	if err != nil {
		return err
	}

	lllBasis := original.Clone()
	lllStats, err := lllops.Reduce(lllBasis, delta)
	if err != nil {
		return err
	}
	bkzBasis := original.Clone()
	bkzStats, err := bkz.ReduceWithOptions(
		bkzBasis, delta, cfg.BlockSize, bkz.Options{PassesPerRow: cfg.PassesPerRow},
	)
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Row", "Original", "|b|^2", "LLL", "|b|^2", "BKZ", "|b|^2"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for i := 0; i < original.NumRows(); i++ {
		line := []string{fmt.Sprint(i)}
		for _, b := range []*bigmatrix.BigMatrix{original, lllBasis, bkzBasis} {
			row, err := b.Row(i)
			if err != nil {
				return err
			}
			line = append(line, formatRow(row), bigmatrix.NormSquared(row).String())
		}
		table.Append(line)
	}
	table.Render()
	_, err = fmt.Fprintf(
		w, "delta = %s; LLL: %d swaps, %d size reductions; BKZ with block size %d: %d passes, %d swaps\n",
		delta.String(), lllStats.Swaps, lllStats.SizeReductions, cfg.BlockSize, bkzStats.Passes,
		bkzStats.LLL.Swaps,
	)
	return err
}

func formatRow(row []*big.Int) string {
	entries := make([]string, len(row))
	for j, entry := range row {
		entries[j] = entry.String()
	}
	return "[" + strings.Join(entries, ", ") + "]"
}
