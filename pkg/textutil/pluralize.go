// Package textutil holds small text and value helpers shared by the form
// packages and the CLI.
package textutil

// Pluralize returns word for a quantity of exactly one (or a negative
// quantity) and its plural otherwise. The plural defaults to word + "s".
func Pluralize(word string, quantity int, plural ...string) string {
	if quantity > 1 || quantity == 0 {
		if len(plural) > 0 {
			return plural[0]
		}
		return word + "s"
	}
	return word
}
