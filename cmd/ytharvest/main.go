package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		// An interrupted harvest surfaces as context.Canceled; exit quietly
		// with the conventional SIGINT status.
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "ytharvest: %v\n", err)
		os.Exit(1)
	}
}
