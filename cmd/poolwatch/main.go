// Poolwatch - worker pool inventory for task-scheduling deployments.
package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Progress goes to stderr so summaries and CSV stay pipeable.
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.WarnLevel)

	Execute()
}
