package main

import "example.com/packpal/cmd"

func main() {
	cmd.Execute()
}
