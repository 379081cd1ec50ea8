// Package main provides the CLI entrypoint for windex.
package main

func main() {
	Execute()
}
