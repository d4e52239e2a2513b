// Copyright (c) 2023 Colin McRae

package main

import (
	"gopkg.in/urfave/cli.v1"

	"github.com/kobzistiy/lll/config"
)

var (
	fileFlag = cli.StringFlag{
		Name:  "file",
		Usage: "CSV file with one basis vector per line",
	}
	dataFlag = cli.StringFlag{
		Name:  "data",
		Usage: `Basis as an array literal, e.g. [["11","3","4"],["2","11","5"]]`,
	}
	testFlag = cli.BoolFlag{
		Name:  "test",
		Usage: "Reduce a built-in example basis with both algorithms and print a table",
	}
	lllFlag = cli.BoolFlag{
		Name:  "lll",
		Usage: "Reduce with LLL",
	}
	bkzFlag = cli.BoolFlag{
		Name:  "bkz",
		Usage: "Reduce with block-sweep BKZ",
	}
	blockSizeFlag = cli.UintFlag{
		Name:  "block-size",
		Usage: "BKZ window width, from 2 to the number of basis vectors",
		Value: config.DefaultBlockSize,
	}
	deltaFlag = cli.StringFlag{
		Name:  "delta",
		Usage: `LLL parameter in (1/4, 1), as a fraction or decimal, e.g. "3/4" or "0.99"`,
		Value: config.DefaultDelta,
	}
	configFileFlag = cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file",
	}
	dumpConfigFlag = cli.BoolFlag{
		Name:  "dumpconfig",
		Usage: "Print the effective configuration as TOML and exit",
	}
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Usage: "Logging verbosity: 0=silent, 1=error, 2=warn, 3=info, 4=debug, 5=detail",
		Value: config.DefaultVerbosity,
	}
	statsFlag = cli.BoolFlag{
		Name:  "stats",
		Usage: "Log quality measures of the basis before and after reduction",
	}
)

var appFlags = []cli.Flag{
	fileFlag,
	dataFlag,
	testFlag,
	lllFlag,
	bkzFlag,
	blockSizeFlag,
	deltaFlag,
	configFileFlag,
	dumpConfigFlag,
	verbosityFlag,
	statsFlag,
}
