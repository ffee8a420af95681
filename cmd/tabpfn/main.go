package main

import (
	"os"

	"github.com/priorlabs/tabpfn-cli/cmd/cli"
)

func main() {
	os.Exit(cli.Execute())
}
