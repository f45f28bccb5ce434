package errors

// ValidateCount checks that n can be used as an element count.
func ValidateCount(what string, n int) error {
	if n < 0 {
		return New(ErrCodeInvalidArgument, "%s must not be negative, got %d", what, n)
	}
	return nil
}

// ValidateID checks that id addresses one of n elements, i.e. lies in [0, n).
// Blocks and positions share this range, so both report NOT_FOUND the same way.
func ValidateID(id, n int) error {
	if id < 0 || id >= n {
		return New(ErrCodeNotFound, "no element at %d", id)
	}
	return nil
}
