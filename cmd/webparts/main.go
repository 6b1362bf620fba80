package main

import "github.com/OpenTraceLab/webparts/cmd/webparts/cmd"

func main() {
	cmd.Execute()
}
