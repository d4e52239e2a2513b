// Copyright (c) 2023 Colin McRae

package main

import (
	"io"
	"os"

	"github.com/ethereum/go-ethereum/log"
	colorable "github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// setupLogging sends log records at or above the given verbosity to w. Colour
// is used only when w is a terminal.
func setupLogging(verbosity int, w io.Writer) {
	usecolor := false
	if f, ok := w.(*os.File); ok {
		usecolor = (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) && os.Getenv("TERM") != "dumb"
		if usecolor {
			w = colorable.NewColorable(f)
		}
	}
	log.Root().SetHandler(log.LvlFilterHandler(
		log.Lvl(verbosity), log.StreamHandler(w, log.TerminalFormat(usecolor)),
	))
}
