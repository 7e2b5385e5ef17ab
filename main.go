package main

import (
	"os"

	"github.com/go-authdemo/authdemo/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
