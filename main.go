package main

import "github.com/shrtyk/stm-core/cmd"

func main() {
	cmd.Execute()
}
