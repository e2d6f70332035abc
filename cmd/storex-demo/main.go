package main

import "github.com/comalice/storex/internal/cli"

func main() {
	cli.Execute()
}
