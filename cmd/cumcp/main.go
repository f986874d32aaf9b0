package main

import "github.com/kylelegare/cu-MCP/internal/cli"

func main() {
	cli.Execute()
}
