package main

import "story-manager/cmd"

func main() {
	cmd.Execute()
}
