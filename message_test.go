package dbc

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func newTestMessage() *Message {
	msg := newMessage("TestMsg", 100, 8, "Vector__XXX")
	sig := newSignal("Sig1")
	sig.StartBit = 0
	sig.Size = 16
	sig.ByteOrder = ByteOrderIntel
	sig.ValueType = ValueTypeUnsigned
	sig.Factor = 1
	sig.Min = 0
	sig.Max = 65535
	_ = msg.addSignal(sig)
	return msg
}

func TestMessage_AddSignal_DuplicateRejected(t *testing.T) {
	msg := newTestMessage()
	dup := newSignal("Sig1")
	err := msg.addSignal(dup)
	assert.Error(t, err)
	var dupErr *DuplicateSignalError
	assert.ErrorAs(t, err, &dupErr)
}

func TestMessage_Decode_LengthMismatch(t *testing.T) {
	msg := newTestMessage()
	_, err := msg.decode(make([]byte, 8), 7)
	assert.Error(t, err)
	var lenErr *LengthMismatchError
	assert.ErrorAs(t, err, &lenErr)
	assert.Equal(t, 8, lenErr.Expected)
	assert.Equal(t, 7, lenErr.Actual)
}

func TestMessage_DecodeSignal_UnknownSignal(t *testing.T) {
	msg := newTestMessage()
	_, err := msg.decodeSignal(make([]byte, 8), 8, "DoesNotExist")
	assert.Error(t, err)
	var unknownErr *UnknownSignalError
	assert.ErrorAs(t, err, &unknownErr)
}

func TestMessage_Encode_UnassignedSignalUsesInitialValue(t *testing.T) {
	msg := newTestMessage()
	initial := 42.0
	msg.Signals["Sig1"].InitialValue = &initial

	buf := make([]byte, 8)
	dlc, res, err := msg.encode(nil, buf, 8, 0)
	assert.NoError(t, err)
	assert.Equal(t, 8, dlc)
	assert.Empty(t, res.rangeSubstitutions)
	assert.False(t, res.truncated)

	got, err := msg.decode(buf, 8)
	assert.NoError(t, err)
	assert.Equal(t, 42.0, got["Sig1"])
}

func TestMessage_Encode_S6_OutOfRangeSubstitutesInitialValue(t *testing.T) {
	msg := newMessage("RangeMsg", 600, 8, "Vector__XXX")
	sig := newSignal("Sig1")
	sig.StartBit = 0
	sig.Size = 8
	sig.ByteOrder = ByteOrderIntel
	sig.ValueType = ValueTypeUnsigned
	sig.Factor = 1
	sig.Min = 0
	sig.Max = 10
	initial := 3.0
	sig.InitialValue = &initial
	_ = msg.addSignal(sig)

	buf := make([]byte, 8)
	_, res, err := msg.encode(map[string]float64{"Sig1": 11}, buf, 8, 0)
	assert.NoError(t, err)
	assert.Equal(t, []string{"Sig1"}, res.rangeSubstitutions)

	got, err := msg.decode(buf, 8)
	assert.NoError(t, err)
	assert.Equal(t, 3.0, got["Sig1"])
}

func TestMessage_Encode_CapacitySmallerThanSizeIsTruncatedFlag(t *testing.T) {
	msg := newTestMessage()
	buf := make([]byte, 8)
	_, res, err := msg.encode(nil, buf, 4, 0)
	assert.NoError(t, err)
	assert.True(t, res.truncated)
}

func TestMessage_Encode_UnknownAssignmentRejected(t *testing.T) {
	msg := newTestMessage()
	buf := make([]byte, 8)
	_, _, err := msg.encode(map[string]float64{"Missing": 1}, buf, 8, 0)
	assert.Error(t, err)
	var unknownErr *UnknownSignalError
	assert.ErrorAs(t, err, &unknownErr)
}

func TestMessage_OrderedSignals_PreservesDeclarationOrder(t *testing.T) {
	msg := newMessage("Multi", 1, 8, "Vector__XXX")
	names := []string{"A", "B", "C"}
	for _, n := range names {
		_ = msg.addSignal(newSignal(n))
	}
	var got []string
	for _, s := range msg.orderedSignals() {
		got = append(got, s.Name)
	}
	assert.Equal(t, names, got)
}
