package user

const (
	minUsernameLen = 4
	maxUsernameLen = 20
)

// ValidUsername reports whether name is 4 to 20 characters of letters, digits,
// '.' and '_', neither starts nor ends with '.' or '_', and never has two of
// them in a row.
func ValidUsername(name string) bool {
	if len(name) < minUsernameLen || len(name) > maxUsernameLen {
		return false
	}
	prevSep := false
	for i := range len(name) {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			prevSep = false
		case c == '.' || c == '_':
			if i == 0 || i == len(name)-1 || prevSep {
				return false
			}
			prevSep = true
		default:
			return false
		}
	}
	return true
}
