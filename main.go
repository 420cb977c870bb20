package main

import "github.com/taskslip/taskslip/cmd"

func main() {
	cmd.Execute()
}
