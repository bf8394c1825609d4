package api

// Envelope is the outcome of one backend call: either Success carrying data
// or Failure carrying a user-facing message. Transport marks failures where
// no usable HTTP response was obtained.
type Envelope[T any] struct {
	data      T
	message   string
	ok        bool
	transport bool
}

func Success[T any](data T) Envelope[T] {
	return Envelope[T]{data: data, ok: true}
}

func Failure[T any](message string) Envelope[T] {
	return Envelope[T]{message: message}
}

// TransportFailure is a Failure caused by the network or an unreadable body.
func TransportFailure[T any](message string) Envelope[T] {
	return Envelope[T]{message: message, transport: true}
}

func (e Envelope[T]) OK() bool { return e.ok }

// Data is the zero value for a Failure.
func (e Envelope[T]) Data() T { return e.data }

// Message is empty for a Success.
func (e Envelope[T]) Message() string { return e.message }

func (e Envelope[T]) Transport() bool { return !e.ok && e.transport }
