package main

import "gobemt/cmd"

func main() {
	cmd.Execute()
}
