package answerkey

import "fmt"

// DefaultPaddingWidth is the token width of a .mem answer line.
const DefaultPaddingWidth = 8

// Format renders r in decimal, left-padded with '0' to width characters.
func Format(r int, width int) string {
	return fmt.Sprintf("%0*d", width, r)
}
