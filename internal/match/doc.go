// Package match ranks a closed list of candidate labels against free text.
//
// Ranking is pure and deterministic: prefix matches first, then substring
// matches by position, then everything else by normalized edit distance.
// Equal scores keep their original relative order.
package match
