package main

import "github.com/Tiliavir/schedule-planner/cmd"

func main() {
	cmd.Execute()
}
