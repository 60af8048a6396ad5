package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/grovetools/agentperms/cmd"
	"github.com/grovetools/agentperms/internal/report"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		if !errors.Is(err, report.ErrReported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
