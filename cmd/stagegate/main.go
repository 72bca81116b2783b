package main

import (
	"os"

	"stagegate/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:]))
}
