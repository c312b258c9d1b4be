package pipeline

// List is an ordered collection of transactions with FIFO semantics:
// producers append at the tail, the consumer takes the head. All operations
// are O(1).
//
// List does no locking of its own. The pipeline serializes every mutation
// (capture-callback context vs. worker context) under one mutex; standalone
// use must do the same.
type List struct {
	head, tail *Transaction
	n          int
}

func (l *List) Len() int { return l.n }

// Head peeks at the oldest transaction without removing it.
func (l *List) Head() *Transaction { return l.head }

// Put appends t at the tail. t must not be a member of any list.
func (l *List) Put(t *Transaction) {
	if t.owner != nil {
		panic("pipeline: transaction already owned by a list")
	}
	t.owner = l
	t.prev = l.tail
	t.next = nil
	if l.tail != nil {
		l.tail.next = t
	} else {
		l.head = t
	}
	l.tail = t
	l.n++
}

// RemoveHead detaches and returns the oldest transaction, or nil when the
// list is empty.
func (l *List) RemoveHead() *Transaction {
	t := l.head
	if t == nil {
		return nil
	}
	l.Remove(t)
	return t
}

// Remove detaches t. It is a no-op if t is not a member of this list.
func (l *List) Remove(t *Transaction) {
	if t.owner != l {
		return
	}
	if t.prev != nil {
		t.prev.next = t.next
	} else {
		l.head = t.next
	}
	if t.next != nil {
		t.next.prev = t.prev
	} else {
		l.tail = t.prev
	}
	t.next = nil
	t.prev = nil
	t.owner = nil
	l.n--
}
