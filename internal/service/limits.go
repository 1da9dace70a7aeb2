package service

// Limits bounds the number of rows a list operation may return.
type Limits struct {
	Default int
	Max     int
}

// Apply resolves a requested row count: zero or less means "not given" and
// yields Default, anything above Max is capped.
func (l Limits) Apply(requested int) int {
	switch {
	case requested <= 0:
		return l.Default
	case requested > l.Max:
		return l.Max
	default:
		return requested
	}
}
