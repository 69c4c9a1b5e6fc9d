// cmd/ligactl - Administrative CLI: migrations, seed import, season rollover
package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	zerolog.DefaultContextLogger = &log.Logger

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
