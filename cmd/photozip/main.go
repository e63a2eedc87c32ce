package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"photozip/internal/errkind"
)

const version = "1.0.0"

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(errkind.ExitCode(err))
	}
}
