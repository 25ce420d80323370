package main

import "github.com/shaharia-lab/kundeploy/cmd"

func main() {
	cmd.Execute()
}
