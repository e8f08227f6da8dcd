package plan

type subscription struct {
	id int
	fn func()
}

// Subscribe registers a callback invoked synchronously after every
// mutation, in subscription order. It returns a handle for Unsubscribe.
func (e *Engine) Subscribe(fn func()) int {
	e.nextID++
	e.subs = append(e.subs, subscription{id: e.nextID, fn: fn})
	return e.nextID
}

func (e *Engine) Unsubscribe(id int) {
	for i := range e.subs {
		if e.subs[i].id == id {
			e.subs = append(e.subs[:i], e.subs[i+1:]...)
			return
		}
	}
}

// notify fans out to a snapshot of the current subscribers, so a callback
// may unsubscribe itself without affecting delivery to the others in the
// same pass.
func (e *Engine) notify() {
	snapshot := make([]subscription, len(e.subs))
	copy(snapshot, e.subs)
	for _, s := range snapshot {
		s.fn()
	}
}
