package main

import "github.com/hann12-34/discovr-pipeline/internal/cli"

func main() {
	cli.Execute()
}
