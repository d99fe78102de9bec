package main

import "github.com/truemediaorg/postgrab/cmd"

func main() {
	cmd.Execute()
}
