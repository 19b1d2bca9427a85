package dbc

// Message is a CAN frame template identified by a numeric id and a fixed
// payload size. A Message owns its Signals; they are destroyed with it.
type Message struct {
	Name    string
	ID      uint32
	Size    int // payload bytes, 0-8 for CAN, 0-64 for CAN-FD
	Sender  string
	Signals map[string]*Signal
	// order preserves SG_ declaration order for Describe and for
	// deterministic iteration independent of map ordering.
	order []string
}

func newMessage(name string, id uint32, size int, sender string) *Message {
	return &Message{
		Name:    name,
		ID:      id,
		Size:    size,
		Sender:  sender,
		Signals: map[string]*Signal{},
	}
}

// addSignal stores sig under the message, enforcing name uniqueness.
func (m *Message) addSignal(sig *Signal) error {
	if _, exists := m.Signals[sig.Name]; exists {
		return &DuplicateSignalError{Message: m.Name, Signal: sig.Name}
	}
	m.Signals[sig.Name] = sig
	m.order = append(m.order, sig.Name)
	return nil
}

// orderedSignals returns this message's signals in declaration order.
func (m *Message) orderedSignals() []*Signal {
	out := make([]*Signal, 0, len(m.order))
	for _, name := range m.order {
		out = append(out, m.Signals[name])
	}
	return out
}

// decode validates dlc against the message's declared size and then
// decodes every signal, returning a map from signal name to physical
// value.
func (m *Message) decode(payload []byte, dlc int) (map[string]float64, error) {
	if dlc != m.Size {
		return nil, &LengthMismatchError{Expected: m.Size, Actual: dlc}
	}
	result := make(map[string]float64, len(m.Signals))
	for _, sig := range m.Signals {
		result[sig.Name] = sig.decode(payload)
	}
	return result, nil
}

// decodeSignal decodes a single named signal out of payload.
func (m *Message) decodeSignal(payload []byte, dlc int, name string) (float64, error) {
	if dlc != m.Size {
		return 0, &LengthMismatchError{Expected: m.Size, Actual: dlc}
	}
	sig, ok := m.Signals[name]
	if !ok {
		return 0, &UnknownSignalError{Message: m.Name, Signal: name}
	}
	return sig.decode(payload), nil
}

// encodeResult carries the outcome of encode beyond the written buffer so
// the caller (Database.Encode) can log recoverable diagnostics.
type encodeResult struct {
	rangeSubstitutions []string // names of signals substituted for out-of-range values
	truncated          bool
}

// encode validates assignment names, zeroes buffer, and writes every
// signal's bits into it: either the supplied physical value (if in
// range), or the signal's initial value / the database global default.
func (m *Message) encode(assignments map[string]float64, buffer []byte, capacity int, globalDefault float64) (int, encodeResult, error) {
	for name := range assignments {
		if _, ok := m.Signals[name]; !ok {
			return 0, encodeResult{}, &UnknownSignalError{Message: m.Name, Signal: name}
		}
	}

	for i := range buffer {
		buffer[i] = 0
	}

	var res encodeResult
	for _, sig := range m.Signals {
		physical, hasAssignment := assignments[sig.Name]
		if hasAssignment && !sig.inRange(physical) {
			res.rangeSubstitutions = append(res.rangeSubstitutions, sig.Name)
			physical = sig.resolveInitialPhysical(globalDefault)
			hasAssignment = false
		}
		if !hasAssignment {
			physical = sig.resolveInitialPhysical(globalDefault)
		}
		sig.encode(physical, buffer)
	}

	if capacity < m.Size {
		res.truncated = true
	}
	return m.Size, res, nil
}
