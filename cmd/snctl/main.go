package main

import (
	"github.com/snctl/snctl/cmd/snctl/commands"
)

func main() {
	commands.Execute()
}
