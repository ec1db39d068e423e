package main

import (
	"github.com/zenith-terminal/zenith/pkg/cmd"
)

func main() {
	cmd.Execute()
}
