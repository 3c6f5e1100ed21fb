// Command apigen resolves API description types and identifiers through an
// analyzer rule document.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/apigen/internal/cli"
)

func main() {
	err := cli.NewRootCommand().Execute()
	if err != nil && !cli.IsReported(err) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(cli.GetExitCode(err))
}
