package store

// Outcome reports whether a best-effort write reached the disk. The
// interactive flow never blocks on it; callers log and move on.
type Outcome struct {
	Err error
}

func ok() Outcome {
	return Outcome{}
}

func degraded(err error) Outcome {
	return Outcome{Err: err}
}

func (o Outcome) OK() bool {
	return o.Err == nil
}

func (o Outcome) Degraded() bool {
	return o.Err != nil
}
