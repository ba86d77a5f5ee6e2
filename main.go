package main

import (
	"os"

	"github.com/notargets/m2c/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
