package dbc

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Parse opens and parses the DBC file at path, returning a ready-to-use
// Database or the first structural error encountered.
func Parse(path string) (*Database, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &IoError{Path: path, Err: err}
	}
	return ParseBytes(data)
}

// ParseBytes parses DBC file content already held in memory.
func ParseBytes(data []byte) (*Database, error) {
	db := newDatabase()
	t := newTokenizer(data)

	for {
		tok, ok := t.next()
		if !ok {
			break
		}
		if err := dispatch(db, t, tok); err != nil {
			return nil, &ParseError{Line: t.lineNumber(), Content: t.currentLine(), Err: err}
		}
	}

	if err := db.checkConsistency(); err != nil {
		return nil, err
	}
	for _, msg := range db.OrderedMessages() {
		if msg.Size > db.BusType.maxMessageSize() {
			return nil, &MessageSizeError{Message: msg.Name, Size: msg.Size, Max: db.BusType.maxMessageSize()}
		}
	}
	return db, nil
}

// dispatch handles one top-level logical line, identified by its first
// token. Every arm consumes exactly the fields it needs and then skips
// whatever remains of the line, so misaligned tokenisation never leaks
// into the next line (spec.md §4.4).
func dispatch(db *Database, t *tokenizer, tok string) error {
	switch tok {
	case "NS_":
		for {
			next, ok := t.next()
			if !ok || next == "BS_:" || next == "BS_" {
				break
			}
		}
		t.skipLine()
		return nil
	case "BO_":
		// parseMessage consumes the header line and every following
		// SG_ line itself; it leaves the stream positioned at the
		// start of the next unconsumed line.
		return parseMessage(db, t)
	case "VAL_":
		return parseValueDescriptionLine(db, t)
	case "BA_DEF_":
		return parseAttributeDefinitionLine(db, t)
	case "BA_DEF_DEF_":
		return parseAttributeDefaultLine(db, t)
	case "BA_":
		return parseAttributeValueLine(db, t)
	case "SIG_VALTYPE_":
		return parseSigValTypeLine(db, t)
	default:
		t.skipLine()
		return nil
	}
}

// parseNumberLiteral accepts decimal, 0x... hexadecimal and 0... octal
// integer literals, per spec.md §6.
func parseNumberLiteral(s string) (uint64, error) {
	v, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("dbc: invalid integer literal %q: %w", s, err)
	}
	return v, nil
}

// parseMessage parses a BO_ header line and every SG_ line that follows
// it, adding the resulting Message (with its Signals) to db.
func parseMessage(db *Database, t *tokenizer) error {
	idTok, _ := t.next()
	id, err := parseNumberLiteral(idTok)
	if err != nil {
		return err
	}

	nameTok, _ := t.next()
	name := nameTok
	if strings.HasSuffix(name, ":") {
		name = strings.TrimSuffix(name, ":")
	} else {
		// new format: the colon is its own token, let the tokenizer
		// consume it.
		t.next()
	}

	sizeTok, _ := t.next()
	size, err := parseNumberLiteral(sizeTok)
	if err != nil {
		return err
	}

	senderTok, _ := t.next()
	t.skipLine()

	msg := newMessage(name, uint32(id), int(size), senderTok)

	for {
		next, ok := t.peek()
		if !ok || next != "SG_" {
			break
		}
		t.next() // consume "SG_"
		sig, err := parseSignal(t)
		if err != nil {
			return err
		}
		if err := msg.addSignal(sig); err != nil {
			return err
		}
	}

	return db.addMessage(msg)
}

// parseSignal parses one SG_ line's fields into a new Signal.
//
//	SG_ <name> : <startbit>|<size>@<order><sign> (<factor>,<offset>) [<min>|<max>] "<unit>" <receivers>
func parseSignal(t *tokenizer) (*Signal, error) {
	nameTok, _ := t.next()
	sig := newSignal(nameTok)

	colonTok, _ := t.next()
	if colonTok != ":" {
		return nil, &MultiplexedSignalError{Signal: sig.Name}
	}

	layoutTok, _ := t.next()
	if err := parseSignalLayout(sig, layoutTok); err != nil {
		return nil, err
	}

	factorOffsetTok, _ := t.next()
	if err := parseFactorOffset(sig, factorOffsetTok); err != nil {
		return nil, err
	}

	rangeTok, _ := t.next()
	if err := parseMinMax(sig, rangeTok); err != nil {
		return nil, err
	}

	unitTok, _ := t.next()
	sig.Unit = unitTok

	receiversTok, _ := t.next()
	if receiversTok != "" && receiversTok != "Vector__XXX" {
		sig.Receivers = strings.Split(receiversTok, ",")
	}

	t.skipLine()
	return sig, nil
}

func parseSignalLayout(sig *Signal, tok string) error {
	barIdx := strings.IndexByte(tok, '|')
	atIdx := strings.IndexByte(tok, '@')
	if barIdx < 0 || atIdx < 0 || atIdx < barIdx || atIdx+3 > len(tok) {
		return fmt.Errorf("dbc: malformed signal layout %q for signal %q", tok, sig.Name)
	}
	startBit, err := parseNumberLiteral(tok[:barIdx])
	if err != nil {
		return err
	}
	size, err := parseNumberLiteral(tok[barIdx+1 : atIdx])
	if err != nil {
		return err
	}
	sig.StartBit = uint(startBit)
	sig.Size = uint(size)

	orderSign := tok[atIdx+1:]
	switch orderSign[0] {
	case '0':
		sig.ByteOrder = ByteOrderMotorola
	case '1':
		sig.ByteOrder = ByteOrderIntel
	default:
		return ErrByteOrderUnrecognised
	}
	switch orderSign[1] {
	case '+':
		sig.ValueType = ValueTypeUnsigned
	case '-':
		sig.ValueType = ValueTypeSigned
	default:
		return ErrValueTypeUnrecognised
	}
	return nil
}

func parseFactorOffset(sig *Signal, tok string) error {
	tok = strings.TrimSuffix(strings.TrimPrefix(tok, "("), ")")
	parts := strings.SplitN(tok, ",", 2)
	if len(parts) != 2 {
		return fmt.Errorf("dbc: malformed factor/offset %q for signal %q", tok, sig.Name)
	}
	factor, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return fmt.Errorf("dbc: invalid factor %q for signal %q: %w", parts[0], sig.Name, err)
	}
	offset, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return fmt.Errorf("dbc: invalid offset %q for signal %q: %w", parts[1], sig.Name, err)
	}
	sig.Factor = factor
	sig.Offset = offset
	return nil
}

func parseMinMax(sig *Signal, tok string) error {
	tok = strings.TrimSuffix(strings.TrimPrefix(tok, "["), "]")
	parts := strings.SplitN(tok, "|", 2)
	if len(parts) != 2 {
		return fmt.Errorf("dbc: malformed min/max %q for signal %q", tok, sig.Name)
	}
	min, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return fmt.Errorf("dbc: invalid min %q for signal %q: %w", parts[0], sig.Name, err)
	}
	max, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return fmt.Errorf("dbc: invalid max %q for signal %q: %w", parts[1], sig.Name, err)
	}
	sig.Min = min
	sig.Max = max
	return nil
}

// parseValueDescriptionLine handles VAL_ <msgid> <signame> <value> "<label>" ... ;
// A zero message id names an environment variable; those are tokenised
// but otherwise inert, so the line is discarded once recognised as one.
func parseValueDescriptionLine(db *Database, t *tokenizer) error {
	idTok, _ := t.next()
	id, err := parseNumberLiteral(idTok)
	if err != nil {
		return err
	}
	if id == 0 {
		t.skipLine()
		return nil
	}

	msg, ok := db.Messages[uint32(id)]
	if !ok {
		return &UnknownMessageError{ID: uint32(id)}
	}

	sigNameTok, _ := t.next()
	sig, ok := msg.Signals[sigNameTok]
	if !ok {
		return &UnknownSignalError{Message: msg.Name, Signal: sigNameTok}
	}

	for {
		valueTok, ok := t.next()
		if !ok || valueTok == ";" {
			break
		}
		value, err := strconv.ParseFloat(valueTok, 64)
		if err != nil {
			return fmt.Errorf("dbc: invalid value description key %q for signal %q: %w", valueTok, sig.Name, err)
		}
		labelTok, _ := t.next()
		if _, exists := sig.ValueDescriptions[value]; exists {
			return &DuplicateValueDescriptionError{Signal: sig.Name, Value: value}
		}
		sig.ValueDescriptions[value] = labelTok
	}
	t.skipLine()
	return nil
}

// parseAttributeDefinitionLine handles BA_DEF_ SG_ "GenSigStartValue" FLOAT <min> <max>;
func parseAttributeDefinitionLine(db *Database, t *tokenizer) error {
	objectType, _ := t.next()
	if objectType != "SG_" {
		t.skipLine()
		return nil
	}
	attrName, _ := t.next()
	if attrName != "GenSigStartValue" {
		t.skipLine()
		return nil
	}
	t.next() // attribute value type marker (e.g. "FLOAT"), unused
	minTok, _ := t.next()
	maxTok, _ := t.next()
	maxTok = strings.TrimSuffix(maxTok, ";")
	min, err := strconv.ParseFloat(minTok, 64)
	if err != nil {
		return fmt.Errorf("dbc: invalid GenSigStartValue min %q: %w", minTok, err)
	}
	max, err := strconv.ParseFloat(maxTok, 64)
	if err != nil {
		return fmt.Errorf("dbc: invalid GenSigStartValue max %q: %w", maxTok, err)
	}
	db.GlobalInitialMin = min
	db.GlobalInitialMax = max
	t.skipLine()
	return nil
}

// parseAttributeDefaultLine handles BA_DEF_DEF_ "GenSigStartValue" <value>;
func parseAttributeDefaultLine(db *Database, t *tokenizer) error {
	attrName, _ := t.next()
	if attrName != "GenSigStartValue" {
		t.skipLine()
		return nil
	}
	valueTok, _ := t.next()
	valueTok = strings.TrimSuffix(valueTok, ";")
	value, err := strconv.ParseFloat(valueTok, 64)
	if err != nil {
		return fmt.Errorf("dbc: invalid GenSigStartValue default %q: %w", valueTok, err)
	}
	db.GlobalInitialValue = value
	t.skipLine()
	return nil
}

// parseAttributeValueLine handles:
//
//	BA_ "BusType" "<CAN|CAN FD>";
//	BA_ "GenSigStartValue" SG_ <msgid> <signame> <value>;
func parseAttributeValueLine(db *Database, t *tokenizer) error {
	attrName, _ := t.next()
	switch attrName {
	case "BusType":
		valueTok, _ := t.next()
		switch valueTok {
		case "CAN":
			db.BusType = BusTypeCAN
		case "CAN FD":
			db.BusType = BusTypeCANFD
		case "Unknown":
			db.BusType = BusTypeUnknown
		default:
			return &UnknownBusTypeError{Token: valueTok}
		}
		t.skipLine()
		return nil
	case "GenSigStartValue":
		objectType, _ := t.next()
		if objectType != "SG_" {
			t.skipLine()
			return nil
		}
		idTok, _ := t.next()
		id, err := parseNumberLiteral(idTok)
		if err != nil {
			return err
		}
		msg, ok := db.Messages[uint32(id)]
		if !ok {
			return &UnknownMessageError{ID: uint32(id)}
		}
		sigNameTok, _ := t.next()
		sig, ok := msg.Signals[sigNameTok]
		if !ok {
			return &UnknownSignalError{Message: msg.Name, Signal: sigNameTok}
		}
		valueTok, _ := t.next()
		valueTok = strings.TrimSuffix(valueTok, ";")
		value, err := strconv.ParseFloat(valueTok, 64)
		if err != nil {
			return fmt.Errorf("dbc: invalid initial value %q for signal %q: %w", valueTok, sig.Name, err)
		}
		sig.InitialValue = &value
		t.skipLine()
		return nil
	default:
		t.skipLine()
		return nil
	}
}

// parseSigValTypeLine handles SIG_VALTYPE_ <msgid> <signame> : <k>;
// Parsing order matters: a signal only becomes an IEEE float/double once
// this line is seen, never before (spec.md §3).
func parseSigValTypeLine(db *Database, t *tokenizer) error {
	idTok, _ := t.next()
	id, err := parseNumberLiteral(idTok)
	if err != nil {
		return err
	}
	msg, ok := db.Messages[uint32(id)]
	if !ok {
		return &UnknownMessageError{ID: uint32(id)}
	}
	sigNameTok, _ := t.next()
	sig, ok := msg.Signals[sigNameTok]
	if !ok {
		return &UnknownSignalError{Message: msg.Name, Signal: sigNameTok}
	}
	t.next() // ":"
	kTok, _ := t.next()
	kTok = strings.TrimSuffix(kTok, ";")
	k, err := strconv.Atoi(kTok)
	if err != nil {
		return fmt.Errorf("dbc: invalid SIG_VALTYPE_ identifier %q for signal %q: %w", kTok, sig.Name, err)
	}
	switch k {
	case 1:
		sig.ValueType = ValueTypeIeeeFloat
	case 2:
		sig.ValueType = ValueTypeIeeeDouble
	default:
		return ErrValueTypeIdentifierUnrecognised
	}
	t.skipLine()
	return nil
}
