package main

import "wcgoals/internal/cli"

func main() {
	cli.Execute()
}
