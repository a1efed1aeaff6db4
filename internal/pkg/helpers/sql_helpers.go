package helpers

// NullIfEmpty maps "" to a NULL column value and anything else to a pointer
// pgx encodes as text.
func NullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// StringOrDefault returns *s, or def when s is nil or empty.
func StringOrDefault(s *string, def string) string {
	if s == nil || *s == "" {
		return def
	}
	return *s
}

// NullInt64 maps 0 to NULL; used for optional foreign keys.
func NullInt64(i int64) *int64 {
	if i == 0 {
		return nil
	}
	return &i
}
