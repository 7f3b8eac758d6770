package main

import "github.com/douhashi/remove-labels/cmd"

func main() {
	cmd.Execute()
}
