package main

import "github.com/mist/mist/cmd/mist-ctl/cmd"

func main() {
	cmd.Execute()
}
