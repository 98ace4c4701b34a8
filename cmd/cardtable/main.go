package main

import (
	"github.com/jmdjr/card-games/internal/cli"
)

func main() {
	cli.Execute()
}
