package engine

// Guard keeps a strategy from ever making a file bigger. When compressed is
// not strictly smaller than original, the original bytes are returned and
// nullified is true.
func Guard(original, compressed []byte) (content []byte, nullified bool) {
	if len(compressed) >= len(original) {
		return original, true
	}
	return compressed, false
}
