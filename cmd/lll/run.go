// Copyright (c) 2023 Colin McRae

package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"gopkg.in/urfave/cli.v1"

	"github.com/kobzistiy/lll/basisio"
	"github.com/kobzistiy/lll/bigmatrix"
	"github.com/kobzistiy/lll/bignumber"
	"github.com/kobzistiy/lll/bkz"
	"github.com/kobzistiy/lll/config"
	"github.com/kobzistiy/lll/lllops"
	"github.com/kobzistiy/lll/quality"
)

// run is the action of the app. Every error is returned before anything is
// written to stdout.
func run(ctx *cli.Context, stdout, stderr io.Writer) error {
	cfg, err := buildConfig(ctx)
	if err != nil {
		return err
	}
	verbosity := cfg.Verbosity
	if ctx.Bool(statsFlag.Name) && !ctx.IsSet(verbosityFlag.Name) && verbosity < int(log.LvlInfo) {
		verbosity = int(log.LvlInfo)
	}
	setupLogging(verbosity, stderr)

	if ctx.Bool(dumpConfigFlag.Name) {
		out, err := cfg.Dump()
		if err != nil {
			return err
		}
		_, err = io.WriteString(stdout, out)
		return err
	}
	if ctx.Bool(testFlag.Name) {
		return runTestMode(cfg, stdout)
	}

	err = checkInputFlags(ctx)
	if err != nil {
		return err
	}
	err = cfg.Validate()
	if err != nil {
		return err
	}
	b, err := loadBasis(ctx)
	if err != nil {
		return err
	}
	if b.NumRows() == 0 {
		_, err = fmt.Fprintln(stdout, basisio.Format(b))
		return err
	}
	err = cfg.ValidateForBasis(b.NumRows())
	if err != nil {
		return err
	}
	delta, err := cfg.DeltaValue()
	if err != nil {
		return err
	}

	withStats := ctx.Bool(statsFlag.Name)
	if withStats {
		logQuality("Input basis", b)
	}
	err = reduce(cfg, b, delta)
	if err != nil {
		return err
	}
	if withStats {
		logQuality("Reduced basis", b)
	}
	_, err = fmt.Fprintln(stdout, basisio.Format(b))
	return err
}

// buildConfig starts from config.Defaults, applies the --config file and
// then any flag that was given
func buildConfig(ctx *cli.Context) (*config.Config, error) {
	cfg := config.Defaults()
	if ctx.IsSet(configFileFlag.Name) {
		path := ctx.String(configFileFlag.Name)
		if path == "" {
			return nil, &config.ConfigError{Msg: "--config was given an empty path"}
		}
		err := cfg.LoadFile(path)
		if err != nil {
			return nil, err
		}
	}

	useLLL, useBKZ := ctx.Bool(lllFlag.Name), ctx.Bool(bkzFlag.Name)
	switch {
	case useLLL && useBKZ:
		return nil, &config.ConfigError{Msg: "--lll and --bkz cannot be used together"}
	case useLLL:
		cfg.Algorithm = config.AlgorithmLLL
	case useBKZ:
		cfg.Algorithm = config.AlgorithmBKZ
	}
	if ctx.IsSet(blockSizeFlag.Name) {
		cfg.BlockSize = int(ctx.Uint(blockSizeFlag.Name))
	}
	if ctx.IsSet(deltaFlag.Name) {
		cfg.Delta = ctx.String(deltaFlag.Name)
	}
	if ctx.IsSet(verbosityFlag.Name) {
		cfg.Verbosity = ctx.Int(verbosityFlag.Name)
	}
	return cfg, nil
}

// checkInputFlags requires exactly one of --file and --data
func checkInputFlags(ctx *cli.Context) error {
	hasFile, hasData := ctx.IsSet(fileFlag.Name), ctx.IsSet(dataFlag.Name)
	switch {
	case hasFile && hasData:
		return &config.ConfigError{Msg: "--file and --data cannot be used together"}
	case !hasFile && !hasData:
		return &config.ConfigError{Msg: "specify input with --test, --file <path> or --data <array>"}
	}
	return nil
}

func loadBasis(ctx *cli.Context) (*bigmatrix.BigMatrix, error) {
	if ctx.IsSet(fileFlag.Name) {
		return basisio.LoadFromCSV(ctx.String(fileFlag.Name))
	}
	return basisio.LoadFromString(ctx.String(dataFlag.Name))
}

// reduce runs the configured algorithm on b in place
func reduce(cfg *config.Config, b *bigmatrix.BigMatrix, delta *bignumber.BigNumber) error {
	start := time.Now()
	switch cfg.Algorithm {
	case config.AlgorithmLLL:
		stats, err := lllops.Reduce(b, delta)
		if err != nil {
			return err
		}
		log.Info(
			"Reduced basis with LLL", "rows", b.NumRows(), "swaps", stats.Swaps,
			"sizereductions", stats.SizeReductions, "elapsed", common.PrettyDuration(time.Since(start)),
		)
	case config.AlgorithmBKZ:
		stats, err := bkz.ReduceWithOptions(
			b, delta, cfg.BlockSize, bkz.Options{PassesPerRow: cfg.PassesPerRow},
		)
		var blockSizeErr *bkz.BlockSizeError
		if errors.As(err, &blockSizeErr) {
			return &config.ConfigError{Msg: "--block-size", Err: err}
		}
		if err != nil {
			return err
		}
		if !stats.Converged {
			log.Warn("BKZ stopped at the pass limit before the basis stabilized", "passes", stats.Passes)
		}
		log.Info(
			"Reduced basis with BKZ", "rows", b.NumRows(), "blocksize", cfg.BlockSize,
			"passes", stats.Passes, "swaps", stats.LLL.Swaps,
			"elapsed", common.PrettyDuration(time.Since(start)),
		)
	default:
		return &config.ConfigError{Msg: fmt.Sprintf("unknown algorithm %q", cfg.Algorithm)}
	}
	return nil
}

func logQuality(msg string, b *bigmatrix.BigMatrix) {
	report, err := quality.Compute(b)
	if err != nil {
		log.Warn("Could not measure basis quality", "err", err)
		return
	}
	log.Info(msg, report.LogContext()...)
}
