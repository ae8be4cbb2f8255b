package main

import "github.com/noteflow/noteflow/cmd"

func main() {
	cmd.Execute()
}
