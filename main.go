package main

import "medibook/cmd"

func main() {
	cmd.Execute()
}
