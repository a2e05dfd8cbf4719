package main

import (
	"github.com/oxygen311/PanACoTA/cmd"
)

func main() {
	cmd.Execute() // initialize cobra commands
}
