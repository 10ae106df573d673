// imdbsieve filters the IMDb title datasets into personal watch lists.
package main

import (
	"os"

	"github.com/hupe1980/imdbsieve/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
