package main

import "feat/internal/cli"

func main() {
	cli.Execute()
}
