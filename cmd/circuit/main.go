package main

import "circuitlab/cmd/circuit/cmd"

func main() {
	cmd.Execute()
}
