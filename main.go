package main

import "github.com/fgrehm/codejump/cmd"

func main() {
	cmd.Execute()
}
