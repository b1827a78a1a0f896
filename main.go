package main

import "github.com/user/pagesmith/cmd"

func main() {
	cmd.Execute()
}
