package dbctest

// Fixture DBC sources for the seed scenarios, one message per scenario
// so a test can parse just the slice it needs via strings.Join.

// IntelUnsigned is scenario S1: start_bit=0, signal_size=16, factor=1,
// offset=0. Decoding payload [0x34,0x12,0,0,0,0,0,0] yields 4660.0.
const IntelUnsigned = `VERSION ""

BO_ 100 IntelMsg: 8 Vector__XXX
 SG_ Sig1 : 0|16@1+ (1,0) [0|65535] "" Vector__XXX
`

// MotorolaUnsigned is scenario S2: start_bit=7, signal_size=16. Decoding
// payload [0x12,0x34,0,0,0,0,0,0] yields 4660.0 and re-encodes to the
// same bytes.
const MotorolaUnsigned = `VERSION ""

BO_ 200 MotorolaMsg: 8 Vector__XXX
 SG_ Sig1 : 7|16@0+ (1,0) [0|65535] "" Vector__XXX
`

// ScaledSigned is scenario S3: start_bit=8, size=8, Signed,
// factor=0.5, offset=-10. Decoding payload [0x00,0xFF,...] yields -10.5.
const ScaledSigned = `VERSION ""

BO_ 300 ScaledMsg: 8 Vector__XXX
 SG_ Sig1 : 8|8@1- (0.5,-10) [-100|100] "" Vector__XXX
`

// IeeeFloat is scenario S4: start_bit=0, size=32, IeeeFloat. Encoding
// 1.0 yields [0x00,0x00,0x80,0x3F,0,0,0,0] (Intel byte order).
const IeeeFloat = `VERSION ""

BO_ 400 FloatMsg: 8 Vector__XXX
 SG_ Sig1 : 0|32@1+ (1,0) [0|0] "" Vector__XXX
SIG_VALTYPE_ 400 Sig1 : 1;
`

// LengthMismatch is scenario S5: message_size=7, so decoding an 8-byte
// payload against it fails with LengthMismatchError{7,8}.
const LengthMismatch = `VERSION ""

BO_ 500 ShortMsg: 7 Vector__XXX
 SG_ Sig1 : 0|16@1+ (1,0) [0|65535] "" Vector__XXX
`

// OutOfRangeEncode is scenario S6: Sig1's max is 10; assigning 11
// exceeds it and the encoder substitutes the initial value instead.
const OutOfRangeEncode = `VERSION ""

BO_ 600 RangeMsg: 8 Vector__XXX
 SG_ Sig1 : 0|8@1+ (1,0) [0|10] "" Vector__XXX

BA_DEF_ SG_ "GenSigStartValue" FLOAT 0 10;
BA_DEF_DEF_ "GenSigStartValue" 3;
BA_ "GenSigStartValue" SG_ 600 Sig1 3;
`
