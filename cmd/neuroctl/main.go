package main

import (
	"os"

	"neuroctl/internal/bootstrap"
)

func main() {
	os.Exit(bootstrap.Main())
}
