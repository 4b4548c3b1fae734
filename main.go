package main

import "local-tp/cmd"

func main() {
	cmd.Execute()
}
