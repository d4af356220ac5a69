package main

import "github.com/peregrinstark/debugagent/internal/cli"

func main() {
	cli.Execute()
}
