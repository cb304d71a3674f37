package main

import "github.com/hwdb-project/hwdbctl/cmd"

func main() {
	cmd.Execute()
}
