package cache

import "strconv"

// Key construction is pure and deterministic: identical inputs always
// produce identical keys. List keys end in the ":list" tag and item
// keys end in a decimal id, so a list key can never collide with an
// item key of the same kind.

// ListKey returns the key covering the full collection of a kind.
func ListKey(kind string) string {
	return kind + ":list"
}

// ItemKey returns the key for a single entity of a kind.
func ItemKey(kind string, id int) string {
	return kind + ":" + strconv.Itoa(id)
}
