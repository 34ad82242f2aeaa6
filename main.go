package main

import "coffee-house/cmd"

func main() {
	cmd.Execute()
}
