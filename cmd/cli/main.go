package main

import "github.com/westat/peregrine/cmd/cli/cmd"

func main() {
	cmd.Execute()
}
