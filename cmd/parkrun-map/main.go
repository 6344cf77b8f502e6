package main

import (
	"github.com/pfrederiksen/parkrun-map/internal/cli"
)

func main() {
	cli.Execute()
}
