package main

import (
	"festival-pass/cmd"

	_ "go.uber.org/automaxprocs"
)

func main() {
	cmd.Start()
}
