package main

import "github.com/taskkeep/taskkeep/cmd"

func main() {
	cmd.Execute()
}
