package testutil

// String returns a pointer to the given string
func String(s string) *string {
	return &s
}

// Bool returns a pointer to the given bool
func Bool(b bool) *bool {
	return &b
}

// Int64 returns a pointer to the given int64
func Int64(i int64) *int64 {
	return &i
}
