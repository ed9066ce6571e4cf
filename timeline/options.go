package timeline

// DefaultPageSize is the number of posts requested per page
const DefaultPageSize = 10

// Notifier shows a failure notice to the user
type Notifier interface {
	Notify(msg string)
}

// NotifierFunc adapts a function to a Notifier
type NotifierFunc func(msg string)

// Notify ...
func (f NotifierFunc) Notify(msg string) {
	f(msg)
}

// Option is a function that takes a timeline and modifies it
type Option func(*Timeline)

// WithPageSize overrides DefaultPageSize
func WithPageSize(size int) Option {
	return func(t *Timeline) {
		if size > 0 {
			t.pageSize = size
		}
	}
}

// WithNotifier sets where like failure notices go
func WithNotifier(n Notifier) Option {
	return func(t *Timeline) {
		t.notifier = n
	}
}
