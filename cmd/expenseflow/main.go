package main

import (
	"os"

	"expenseflow/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
