package main

import (
	"github.com/c9s/bitkub/pkg/cmd"
)

func main() {
	cmd.Execute()
}
