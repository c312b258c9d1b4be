package pipeline

import "voicedrive-go/errcode"

// Transaction binds one fixed-size capture buffer to its place in the
// hardware ring and to whichever ownership list currently holds it.
// Exactly one transaction exists per buffer for the life of the pipeline.
type Transaction struct {
	Buf  []byte
	Size int

	// Ownership-list linkage, owned by List.
	next, prev *Transaction
	owner      *List

	// Fixed ring linkage, set once by NewRing.
	ringNext, ringPrev *Transaction
	index              int
}

// Owner returns the list currently holding the transaction, or nil when it
// is checked out (actively written by the capture hardware or read by the
// worker).
func (t *Transaction) Owner() *List { return t.owner }

// NextInRing follows the fixed hardware ring order.
func (t *Transaction) NextInRing() *Transaction { return t.ringNext }

// Index is the transaction's fixed position in the ring.
func (t *Transaction) Index() int { return t.index }

// Ring is the fixed set of transaction descriptors the capture hardware
// cycles through. All buffers come from one pool allocated at construction;
// nothing is allocated afterwards.
type Ring struct {
	txns []*Transaction
}

func NewRing(n, blockLen int) (*Ring, error) {
	if n < 2 {
		return nil, &errcode.E{C: errcode.InvalidParams, Op: "ring", Msg: "need at least 2 buffers"}
	}
	if blockLen <= 0 || blockLen%2 != 0 {
		return nil, &errcode.E{C: errcode.InvalidParams, Op: "ring", Msg: "block length must be a positive even byte count"}
	}

	pool := make([]byte, n*blockLen)
	txns := make([]*Transaction, n)
	for i := range txns {
		txns[i] = &Transaction{
			Buf:   pool[i*blockLen : (i+1)*blockLen],
			Size:  blockLen,
			index: i,
		}
	}
	for i, t := range txns {
		t.ringNext = txns[(i+1)%n]
		t.ringPrev = txns[(i+n-1)%n]
	}
	return &Ring{txns: txns}, nil
}

func (r *Ring) Len() int { return len(r.txns) }

// Head is the transaction the capture hardware is started on.
func (r *Ring) Head() *Transaction { return r.txns[0] }

// At returns the i-th transaction in ring order.
func (r *Ring) At(i int) *Transaction { return r.txns[i] }

// CompletedPredecessorOf resolves the completion lag of streaming capture
// hardware: the block-start notification for cur fires when cur's transfer
// begins, which is the moment the ring predecessor's transfer has finished
// and its data is valid.
func (r *Ring) CompletedPredecessorOf(cur *Transaction) *Transaction {
	return cur.ringPrev
}
