package main

import (
	"os"

	_ "github.com/nakagami/firebirdsql"

	"db-meta/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
