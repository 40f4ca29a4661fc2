package layout

// AlignUp returns n rounded up to the next multiple of Alignment.
//
// Example:
//
//	AlignUp(1)  = 16
//	AlignUp(16) = 16
//	AlignUp(17) = 32
func AlignUp(n int) int {
	return (n + alignMask) &^ alignMask
}

// Aligned reports whether n is a multiple of Alignment.
func Aligned(n int) bool {
	return n&alignMask == 0
}

// EvenWords rounds a word count up to the next even count, keeping extension
// sizes double-word aligned.
func EvenWords(words int) int {
	if words%2 != 0 {
		return words + 1
	}
	return words
}
