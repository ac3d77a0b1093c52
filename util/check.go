package util

// Check panics on errors that leave the program in an unusable state.
func Check(err error) {
	if err != nil {
		panic(err)
	}
}
