package vidinfo

// Warner receives non-fatal warnings raised during extraction.
// Warn must not block and never affects control flow.
type Warner interface {
	Warn(msg string)
}

// WarnFunc adapts a function to the Warner interface.
type WarnFunc func(msg string)

// Warn calls f(msg).
func (f WarnFunc) Warn(msg string) {
	f(msg)
}
