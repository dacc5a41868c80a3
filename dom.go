package jsnpg

// DOM is the event log: a linked list of fixed-capacity chunks holding a
// flat, replayable record of events. It can be used as a generator sink
// (capturing events as they are produced) or as a parser input source
// (replaying them later).
//
// Each chunk is a slice of domRecord with a capacity ceiling, linked to
// the next chunk on overflow, so growth never requires copying the
// whole log.
const domMinChunkCapacity = 8192 / 24 // 341 records per chunk before growing

type domRecord struct {
	typ     Type
	integer int64
	real    float64
	bytes   []byte
}

type domChunk struct {
	records []domRecord
	next    *domChunk
}

// DOM owns the chunk chain. head is never nil once constructed; cur is
// the chunk currently being appended to.
type DOM struct {
	head *domChunk
	cur  *domChunk
}

// NewDOM creates an empty event log. A Generator built with
// GeneratorOpts{DOM: true} creates its own log this way and fills it.
func NewDOM() *DOM {
	c := &domChunk{records: make([]domRecord, 0, domMinChunkCapacity)}
	return &DOM{head: c, cur: c}
}

// append adds one record, allocating a new chunk (double the previous
// chunk's capacity, floored at domMinChunkCapacity) when the current one
// is full.
func (d *DOM) append(r domRecord) {
	if len(d.cur.records) == cap(d.cur.records) {
		next := &domChunk{records: make([]domRecord, 0, cap(d.cur.records)*2)}
		d.cur.next = next
		d.cur = next
	}
	d.cur.records = append(d.cur.records, r)
}

// Len reports the total number of recorded events, across all chunks.
func (d *DOM) Len() int {
	n := 0
	for c := d.head; c != nil; c = c.next {
		n += len(c.records)
	}
	return n
}

// domCursor is a (chunk, index) read position into a DOM, used for
// replaying it either all at once or one event per call.
type domCursor struct {
	chunk *domChunk
	idx   int
}

func (d *DOM) cursor() domCursor {
	return domCursor{chunk: d.head, idx: 0}
}

// next returns the record at the cursor and advances it, or ok=false at
// the end of the log.
func (c *domCursor) next() (domRecord, bool) {
	for c.chunk != nil && c.idx >= len(c.chunk.records) {
		c.chunk = c.chunk.next
		c.idx = 0
	}
	if c.chunk == nil {
		return domRecord{}, false
	}
	r := c.chunk.records[c.idx]
	c.idx++
	return r, true
}

// ReplayInto drives every record in the DOM through a Generator,
// stopping at the first sink error. This is how a DOM doubles as parser
// input: GeneratorOpts{DOM: true} captures events, and ParserOpts{DOM:
// dom} (via WithDOMSource) replays them.
func (d *DOM) ReplayInto(g *Generator) error {
	cur := d.cursor()
	for {
		r, ok := cur.next()
		if !ok {
			return nil
		}
		var err error
		switch r.typ {
		case TypeNull:
			err = g.Null()
		case TypeTrue:
			err = g.Boolean(true)
		case TypeFalse:
			err = g.Boolean(false)
		case TypeInteger:
			err = g.Integer(r.integer)
		case TypeReal:
			err = g.Real(r.real)
		case TypeString:
			err = g.String(r.bytes)
		case TypeKey:
			err = g.Key(r.bytes)
		case TypeStartArray:
			err = g.StartArray()
		case TypeEndArray:
			err = g.EndArray()
		case TypeStartObject:
			err = g.StartObject()
		case TypeEndObject:
			err = g.EndObject()
		}
		if err != nil {
			return err
		}
	}
}

// domSink is the Generator sink implementation that appends events to a
// DOM.
type domSink struct {
	dom *DOM
}

func (s *domSink) onNull() error { s.dom.append(domRecord{typ: TypeNull}); return nil }
func (s *domSink) onBool(b bool) error {
	if b {
		s.dom.append(domRecord{typ: TypeTrue})
	} else {
		s.dom.append(domRecord{typ: TypeFalse})
	}
	return nil
}
func (s *domSink) onInteger(v int64) error {
	s.dom.append(domRecord{typ: TypeInteger, integer: v})
	return nil
}
func (s *domSink) onReal(v float64) error {
	s.dom.append(domRecord{typ: TypeReal, real: v})
	return nil
}
func (s *domSink) onString(b []byte) error {
	s.dom.append(domRecord{typ: TypeString, bytes: pooledCopy(b)})
	return nil
}
func (s *domSink) onKey(b []byte) error {
	s.dom.append(domRecord{typ: TypeKey, bytes: pooledCopy(b)})
	return nil
}

// pooledCopy copies b into a freshly sized slice, drawing the backing
// array from the buffer pool installed via SetBufferPool when one is
// present, instead of always handing a fresh allocation to the garbage
// collector.
func pooledCopy(b []byte) []byte {
	if bufferPool == nil {
		return append([]byte(nil), b...)
	}
	if v, ok := bufferPool.Get().([]byte); ok && cap(v) >= len(b) {
		return append(v[:0], b...)
	}
	return append([]byte(nil), b...)
}
func (s *domSink) onStartArray() error  { s.dom.append(domRecord{typ: TypeStartArray}); return nil }
func (s *domSink) onEndArray() error    { s.dom.append(domRecord{typ: TypeEndArray}); return nil }
func (s *domSink) onStartObject() error { s.dom.append(domRecord{typ: TypeStartObject}); return nil }
func (s *domSink) onEndObject() error   { s.dom.append(domRecord{typ: TypeEndObject}); return nil }
