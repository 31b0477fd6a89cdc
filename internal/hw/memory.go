package hw

// ClauseRecord is one fixed-width clause-memory word (§4.6.1): a sat hint, a
// 3-bit size, and up to MaxLiteralsPerClause 16-bit literal slots.
type ClauseRecord struct {
	Sat      bool
	Size     uint8
	Literals [MaxLiteralsPerClause]uint16
}

// ClauseMemory mirrors the accelerator's clause database. Reads are
// 2-cycle latency (registered address, registered data); writes are
// synchronous and host-driven, only ever issued while BCP is idle (§5
// "Shared-resource policy").
type ClauseMemory struct {
	records [MaxClauses]ClauseRecord
}

// ReadLatencyCycles is the fixed 2-cycle read latency modeled by this
// memory, used by callers computing round cycle counts.
const ReadLatencyCycles = 2

func (m *ClauseMemory) Write(cid uint16, rec ClauseRecord) {
	m.records[cid] = rec
}

func (m *ClauseMemory) Read(cid uint16) ClauseRecord {
	return m.records[cid]
}

// WatchListMemory mirrors the two banks described in §4.6.1: a length bank
// (depth = number of literal codes) and a clause-ID bank (depth = codes ×
// MaxWatchListLen).
type WatchListMemory struct {
	lengths map[uint16]uint8
	entries map[uint16][]uint16
}

func NewWatchListMemory() *WatchListMemory {
	return &WatchListMemory{
		lengths: make(map[uint16]uint8),
		entries: make(map[uint16][]uint16),
	}
}

func (m *WatchListMemory) SetLength(lit uint16, length uint8) {
	m.lengths[lit] = length
	if _, ok := m.entries[lit]; !ok {
		m.entries[lit] = make([]uint16, length)
	}
}

func (m *WatchListMemory) SetEntry(lit uint16, idx uint8, cid uint16) {
	entries := m.entries[lit]
	for uint8(len(entries)) <= idx {
		entries = append(entries, 0)
	}
	entries[idx] = cid
	m.entries[lit] = entries
}

// List returns the watch list for a literal code as currently mirrored in
// hardware memory, up to the mirrored length.
func (m *WatchListMemory) List(lit uint16) []uint16 {
	length := m.lengths[lit]
	entries := m.entries[lit]
	if int(length) > len(entries) {
		length = uint8(len(entries))
	}
	return entries[:length]
}

// AssignmentMemory mirrors the per-variable assignment bank: 2-bit values,
// combinational read, synchronous write (§4.6.1) — i.e. reads observe the
// value written in the same cycle, unlike the clause and watch-list banks.
type AssignmentMemory struct {
	values [MaxVariables + 1]HWValue
}

func (m *AssignmentMemory) Write(v uint16, val HWValue) {
	m.values[v] = val
}

func (m *AssignmentMemory) Read(v uint16) HWValue {
	return m.values[v]
}

func (m *AssignmentMemory) Reset() {
	for i := range m.values {
		m.values[i] = HWUnassigned
	}
}
