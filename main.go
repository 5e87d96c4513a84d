package main

import "github.com/capripot/rswag/cmd"

func main() {
	cmd.Execute()
}
