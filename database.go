package dbc

import (
	"fmt"
	"strings"
)

// BusType identifies which CAN bus variant a database targets, from the
// BA_ "BusType" attribute.
type BusType uint8

const (
	// BusTypeUnset means no BA_ "BusType" attribute was present.
	BusTypeUnset BusType = iota
	// BusTypeUnknown is an explicit BA_ "BusType" "Unknown" value.
	BusTypeUnknown
	// BusTypeCAN is classic CAN: message_size is capped at 8 bytes.
	BusTypeCAN
	// BusTypeCANFD is CAN-FD: message_size is capped at 64 bytes.
	BusTypeCANFD
)

// maxMessageSize returns the payload size ceiling, in bytes, permitted
// for this bus type.
func (b BusType) maxMessageSize() int {
	if b == BusTypeCANFD {
		return 64
	}
	return 8
}

// SignalAssignment pairs a signal name with the physical value to encode
// for it, mirroring the language-neutral Seq<(string,f64)> of spec.md §6.
type SignalAssignment struct {
	Name  string
	Value float64
}

// Database is a parsed CAN network database: a collection of Messages
// keyed by numeric id, plus the global signal-attribute defaults sourced
// from GenSigStartValue. All entities are created during Parse and are
// read-only afterwards; Database may be shared across goroutines without
// locking once Parse has returned.
type Database struct {
	Messages map[uint32]*Message
	// order preserves BO_ declaration order for deterministic
	// enumeration independent of map ordering.
	order []uint32

	BusType BusType

	// GlobalInitialValue, GlobalInitialMin and GlobalInitialMax are the
	// database-wide GenSigStartValue defaults, used by a signal that
	// carries no explicit initial value.
	GlobalInitialValue float64
	GlobalInitialMin   float64
	GlobalInitialMax   float64

	log Logger
}

func newDatabase() *Database {
	return &Database{
		Messages: map[uint32]*Message{},
		log:      defaultLogger(),
	}
}

// SetLogger overrides the logger used for recoverable encode/consistency
// diagnostics. Passing nil restores the package default.
func (db *Database) SetLogger(l Logger) {
	if l == nil {
		l = defaultLogger()
	}
	db.log = l
}

func (db *Database) addMessage(msg *Message) error {
	if _, exists := db.Messages[msg.ID]; exists {
		return &DuplicateMessageError{Name: msg.Name, ID: msg.ID}
	}
	db.Messages[msg.ID] = msg
	db.order = append(db.order, msg.ID)
	return nil
}

// OrderedMessages returns the database's messages in BO_ declaration
// order.
func (db *Database) OrderedMessages() []*Message {
	out := make([]*Message, 0, len(db.order))
	for _, id := range db.order {
		out = append(out, db.Messages[id])
	}
	return out
}

// Decode looks up the message for msgID and decodes every one of its
// signals out of payload, returning a map from signal name to physical
// value. dlc must equal the message's declared size.
func (db *Database) Decode(msgID uint32, payload []byte, dlc int) (map[string]float64, error) {
	msg, ok := db.Messages[msgID]
	if !ok {
		return nil, &UnknownMessageError{ID: msgID}
	}
	return msg.decode(payload, dlc)
}

// DecodeSignal decodes only the named signal out of payload, without
// building the full per-message result map.
func (db *Database) DecodeSignal(msgID uint32, payload []byte, dlc int, signalName string) (float64, error) {
	msg, ok := db.Messages[msgID]
	if !ok {
		return 0, &UnknownMessageError{ID: msgID}
	}
	return msg.decodeSignal(payload, dlc, signalName)
}

// Encode looks up the message for msgID, validates assignments, zeroes
// buffer, and writes every signal's bits into it. Signals without an
// assignment fall back to their initial value or the database global
// default; out-of-range assignments are substituted the same way and
// logged as a recoverable warning instead of failing the call. Returns
// the message's declared size; if capacity is smaller, the shortfall is
// logged but the declared size is still returned.
func (db *Database) Encode(msgID uint32, assignments []SignalAssignment, buffer []byte, capacity int) (int, error) {
	msg, ok := db.Messages[msgID]
	if !ok {
		return 0, &UnknownMessageError{ID: msgID}
	}

	byName := make(map[string]float64, len(assignments))
	for _, a := range assignments {
		byName[a.Name] = a.Value
	}

	dlc, res, err := msg.encode(byName, buffer, capacity, db.GlobalInitialValue)
	if err != nil {
		return 0, err
	}

	for _, name := range res.rangeSubstitutions {
		db.log.Warningf("dbc: message %q signal %q: assigned value out of range, substituted initial value", msg.Name, name)
	}
	if res.truncated {
		db.log.Warningf("dbc: message %q: buffer capacity %d is smaller than declared size %d, payload truncated", msg.Name, capacity, dlc)
	}
	return dlc, nil
}

// Describe renders a human-readable dump of every message and signal in
// the database, in declaration order.
func (db *Database) Describe() string {
	var b strings.Builder
	for _, msg := range db.OrderedMessages() {
		fmt.Fprintf(&b, "-------------------------------\n")
		fmt.Fprintf(&b, "<Message> %s %d\n", msg.Name, msg.ID)
		for _, sig := range msg.orderedSignals() {
			fmt.Fprintf(&b, "<Signal> %s  %d,%d\n", sig.Name, sig.StartBit, sig.Size)
			fmt.Fprintf(&b, "\t\t(%v, %v)\n", sig.Factor, sig.Offset)
			fmt.Fprintf(&b, "\t\t[%v,%v]\n", sig.Min, sig.Max)
			if sig.ByteOrder == ByteOrderIntel {
				fmt.Fprintf(&b, "\t\tINTEL\n")
			} else {
				fmt.Fprintf(&b, "\t\tMOTOROLA\n")
			}
			switch sig.ValueType {
			case ValueTypeSigned:
				fmt.Fprintf(&b, "\t\tSIGNED\n")
			case ValueTypeIeeeFloat:
				fmt.Fprintf(&b, "\t\tIEEE FLOAT\n")
			case ValueTypeIeeeDouble:
				fmt.Fprintf(&b, "\t\tIEEE DOUBLE\n")
			default:
				fmt.Fprintf(&b, "\t\tUNSIGNED\n")
			}
			if sig.Unit != "" {
				fmt.Fprintf(&b, "\t\t%s\n", sig.Unit)
			}
			if sig.InitialValue != nil {
				fmt.Fprintf(&b, "\t\t%v\n", *sig.InitialValue)
			}
			b.WriteByte('\n')
		}
	}
	fmt.Fprintf(&b, "-------------------------------\n")
	return b.String()
}

// checkConsistency validates, for every signal, that its initial value
// (explicit or inherited from the database global) lies within its
// [Min, Max] range. Run once at the end of Parse.
func (db *Database) checkConsistency() error {
	for _, msg := range db.OrderedMessages() {
		for _, sig := range msg.orderedSignals() {
			if sig.InitialValue != nil {
				v := *sig.InitialValue
				if v < sig.Min || v > sig.Max {
					return &InconsistentInitialValueError{Signal: sig.Name, Value: v, Min: sig.Min, Max: sig.Max}
				}
				continue
			}
			if db.GlobalInitialMin == 0 && db.GlobalInitialMax == 0 {
				continue
			}
			if db.GlobalInitialValue < sig.Min || db.GlobalInitialValue > sig.Max {
				return &InconsistentInitialValueError{Signal: sig.Name, Value: db.GlobalInitialValue, Min: sig.Min, Max: sig.Max}
			}
		}
	}
	return nil
}
