package ui

// Option is one entry of a selection menu. Key is what the caller gets back.
type Option struct {
	Key   string
	Label string
}

func NewOption(label string, key string) Option {
	return Option{Key: key, Label: label}
}
