package main

import "github.com/andrescamacho/shipforge-go/internal/adapters/cli"

func main() {
	cli.Execute()
}
