package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/shipsite-io/shipsite/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)

		var rem interface{ Remediation() string }
		if errors.As(err, &rem) {
			fmt.Fprintln(os.Stderr, "Hint:", rem.Remediation())
		}
		os.Exit(1)
	}
}
