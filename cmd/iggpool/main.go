// iggpool merges per-sample species profiles into a pooled workspace.
package main

import (
	"fmt"
	"os"

	"github.com/me/iggpool/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
