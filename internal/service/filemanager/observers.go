package filemanager

// observers is a synchronous listener list. Listeners run in registration
// order on the caller's goroutine.
type observers[T any] struct {
	nextID  int
	entries []observer[T]
}

type observer[T any] struct {
	id int
	fn func(T)
}

func (o *observers[T]) add(fn func(T)) func() {
	o.nextID++
	id := o.nextID
	o.entries = append(o.entries, observer[T]{id: id, fn: fn})
	return func() {
		for i, e := range o.entries {
			if e.id == id {
				o.entries = append(o.entries[:i], o.entries[i+1:]...)
				return
			}
		}
	}
}

func (o *observers[T]) notify(v T) {
	// copy so a listener may unsubscribe while being notified
	entries := append([]observer[T](nil), o.entries...)
	for _, e := range entries {
		e.fn(v)
	}
}
