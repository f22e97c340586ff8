package domain

// searchTerms are the spellings people use when naming their Advent of Code 2021 repositories.
var searchTerms = []string{
	"adventofcode21",
	"adventofcode2021",
	"advent-of-code21",
	"advent-of-code2021",
	"advent-of-code-21",
	"advent-of-code-2021",
	"aoc21",
	"aoc2021",
	"aoc-21",
	"aoc-2021",
}

// SearchTerms returns a copy of the fixed search term list.
func SearchTerms() []string {
	out := make([]string, len(searchTerms))
	copy(out, searchTerms)
	return out
}
