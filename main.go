package main

import (
	"os"

	"github.com/GoAuth-Admin/GoAuth-Admin/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
