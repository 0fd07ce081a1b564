package main

import "github.com/doplab/jobfinder/cmd"

func main() {
	cmd.Execute()
}
