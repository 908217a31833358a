package main

import (
	"github.com/smeargame/smearcli/internal/cli"
)

func main() {
	cli.Execute()
}
