// Command server-b answers every request with an empty 204.
package main

import (
	"os"

	"mirrorlab/internal/app"
	"mirrorlab/internal/domain"
)

func main() {
	if err := app.Run(domain.ServerB); err != nil {
		os.Exit(1)
	}
}
