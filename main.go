package main

import "github.com/fiffeek/xrandrprofiles/cmd"

func main() {
	cmd.Execute()
}
