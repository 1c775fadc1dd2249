package main

import "github.com/mj1618/hud-a11y/cmd"

func main() {
	cmd.Execute()
}
