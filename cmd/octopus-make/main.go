package main

import "github.com/luntergroup/octopus-make/cmd/octopus-make/internal"

func main() {
	internal.Execute()
}
