// Package main provides the CLI entrypoint for SchemaForge.
package main

import "github.com/leapstack-labs/schemaforge/internal/cli"

func main() {
	cli.Execute()
}
