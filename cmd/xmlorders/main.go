package main

import (
	"os"

	"github.com/Gunvolt24/xmlorders/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Stderr))
}
