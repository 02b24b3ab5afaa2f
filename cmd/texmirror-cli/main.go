package main

import "texmirror/cmd/texmirror-cli/cmd"

func main() {
	cmd.Execute()
}
