package repository

// Window is an inclusive [From, To] range of epoch milliseconds.
type Window struct {
	From int64
	To   int64
}

// Contains reports whether millis falls inside the window.
func (w Window) Contains(millis int64) bool {
	return millis >= w.From && millis <= w.To
}
