package main

import (
	"github.com/gekko3d/voxtrace"
	"github.com/urfave/cli"
)

var logger = voxtrace.NewDefaultLogger("voxtrace", false)

func setupLogging(ctx *cli.Context) {
	logger.SetQuiet()

	if ctx.GlobalBool("v") {
		logger.SetDebug(false)
	}

	if ctx.GlobalBool("vv") {
		logger.SetDebug(true)
	}
}
