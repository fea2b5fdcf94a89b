// Package main provides the modelsafe CLI.
package main

import "github.com/sorakthunly/modelsafe/internal/cli"

func main() {
	cli.Execute()
}
