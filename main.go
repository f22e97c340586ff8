package main

import "github.com/naka-gawa/aoc-langstats/cmd"

func main() {
	cmd.Execute()
}
