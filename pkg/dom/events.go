package dom

// Event is delivered to listeners.
type Event struct {
	Type   string
	Target *Node // nil for document-level events
}

// Listener handles an event.
type Listener func(Event)

// ListenerID identifies a registered listener. The zero value is never issued.
type ListenerID uint64

type listener struct {
	id   ListenerID
	fn   Listener
	once bool
}

type listenerSet struct {
	byType map[string][]listener
}

func (s *listenerSet) add(doc *Document, typ string, fn Listener, once bool) ListenerID {
	if s.byType == nil {
		s.byType = make(map[string][]listener)
	}
	doc.nextListener++
	id := doc.nextListener
	s.byType[typ] = append(s.byType[typ], listener{id: id, fn: fn, once: once})
	return id
}

func (s *listenerSet) remove(typ string, id ListenerID) {
	list := s.byType[typ]
	for i, l := range list {
		if l.id == id {
			s.byType[typ] = append(list[:i:i], list[i+1:]...)
			return
		}
	}
}

func (s *listenerSet) count(typ string) int {
	return len(s.byType[typ])
}

// dispatch calls the listeners registered when the event starts.
// One-shot listeners are removed before they run.
func (s *listenerSet) dispatch(ev Event) {
	list := s.byType[ev.Type]
	if len(list) == 0 {
		return
	}
	snapshot := make([]listener, len(list))
	copy(snapshot, list)

	for _, l := range snapshot {
		if l.once {
			s.remove(ev.Type, l.id)
		}
	}
	for _, l := range snapshot {
		if !s.registered(ev.Type, l.id) && !l.once {
			continue
		}
		l.fn(ev)
	}
}

func (s *listenerSet) registered(typ string, id ListenerID) bool {
	for _, l := range s.byType[typ] {
		if l.id == id {
			return true
		}
	}
	return false
}
