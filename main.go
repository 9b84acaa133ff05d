package main

import (
	"errors"
	"log"
	"os"

	"github.com/thiagokokada/spdx-guide/cmd"
	"github.com/thiagokokada/spdx-guide/internal/prompt"
)

func main() {
	err := cmd.Run()
	switch {
	case err == nil:
	case errors.Is(err, prompt.ErrInterrupted):
		os.Exit(130)
	case errors.Is(err, cmd.ErrAborted):
		os.Exit(1)
	default:
		log.Fatalf("spdx-guide: %v", err)
	}
}
