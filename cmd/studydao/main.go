package main

import (
	"github.com/arktech/studydao/cmd/studydao/cmd"
)

func main() {
	cmd.Execute()
}
