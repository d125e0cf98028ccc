// cmd/pkgx/main.go
package main

import (
	"os"

	"github.com/arc-language/pkgx/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
