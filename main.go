package main

import "github.com/stackpilot/stackpilot/cmd"

func main() {
	cmd.Execute()
}
