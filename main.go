package main

import "github.com/pders01/stsweep/cmd"

func main() {
	cmd.Execute()
}
