package main

import "github.com/arminghobadi/alarm-scheduler/cmd/alarm-scheduler/cmd"

func main() {
	cmd.Execute()
}
