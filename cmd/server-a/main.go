// Command server-a answers every request with 200 "Handled by Server A".
package main

import (
	"os"

	"mirrorlab/internal/app"
	"mirrorlab/internal/domain"
)

func main() {
	if err := app.Run(domain.ServerA); err != nil {
		os.Exit(1)
	}
}
