package hw

import (
	"encoding/binary"
	"fmt"
)

// Command byte tags (§6 host -> device).
const (
	CmdWriteClause  byte = 0x01
	CmdWriteWLEntry byte = 0x02
	CmdWriteWLLen   byte = 0x03
	CmdWriteAssign  byte = 0x04
	CmdBCPStart     byte = 0x05
	CmdResetState   byte = 0x06
)

// Response byte tags (§6 device -> host).
const (
	RespImplication byte = 0xB0
	RespDoneOK      byte = 0xC0
	RespDoneConflict byte = 0xC1
)

// ProtocolFramingError is a host-side decoder error: an unexpected response
// byte (§7 ProtocolFraming). Fatal.
type ProtocolFramingError struct {
	Got byte
}

func (e *ProtocolFramingError) Error() string {
	return fmt.Sprintf("hw: protocol framing error: unexpected response byte 0x%02x", e.Got)
}

// WriteClauseCmd encodes command 0x01: install a clause at cid (15 bytes
// total with the tag byte).
type WriteClauseCmd struct {
	CID      uint16
	Size     uint8
	Sat      uint8
	Literals [5]uint16
}

func (c WriteClauseCmd) Encode() []byte {
	buf := make([]byte, 15)
	buf[0] = CmdWriteClause
	binary.BigEndian.PutUint16(buf[1:3], c.CID)
	buf[3] = c.Size
	buf[4] = c.Sat
	for i, lit := range c.Literals {
		binary.BigEndian.PutUint16(buf[5+2*i:7+2*i], lit)
	}
	return buf
}

func DecodeWriteClauseCmd(buf []byte) (WriteClauseCmd, error) {
	if len(buf) < 15 || buf[0] != CmdWriteClause {
		return WriteClauseCmd{}, &ProtocolFramingError{Got: buf[0]}
	}
	var c WriteClauseCmd
	c.CID = binary.BigEndian.Uint16(buf[1:3])
	c.Size = buf[3]
	c.Sat = buf[4]
	for i := range c.Literals {
		c.Literals[i] = binary.BigEndian.Uint16(buf[5+2*i : 7+2*i])
	}
	return c, nil
}

// WriteWLEntryCmd encodes command 0x02: set one watch-list entry (6 bytes
// total with the tag byte).
type WriteWLEntryCmd struct {
	Lit uint16
	Idx uint8
	CID uint16
}

func (c WriteWLEntryCmd) Encode() []byte {
	buf := make([]byte, 6)
	buf[0] = CmdWriteWLEntry
	binary.BigEndian.PutUint16(buf[1:3], c.Lit)
	buf[3] = c.Idx
	binary.BigEndian.PutUint16(buf[4:6], c.CID)
	return buf
}

func DecodeWriteWLEntryCmd(buf []byte) (WriteWLEntryCmd, error) {
	if len(buf) < 6 || buf[0] != CmdWriteWLEntry {
		return WriteWLEntryCmd{}, &ProtocolFramingError{Got: buf[0]}
	}
	return WriteWLEntryCmd{
		Lit: binary.BigEndian.Uint16(buf[1:3]),
		Idx: buf[3],
		CID: binary.BigEndian.Uint16(buf[4:6]),
	}, nil
}

// WriteWLLenCmd encodes command 0x03: set a watch-list length (4 bytes
// total with the tag byte).
type WriteWLLenCmd struct {
	Lit uint16
	Len uint8
}

func (c WriteWLLenCmd) Encode() []byte {
	buf := make([]byte, 4)
	buf[0] = CmdWriteWLLen
	binary.BigEndian.PutUint16(buf[1:3], c.Lit)
	buf[3] = c.Len
	return buf
}

func DecodeWriteWLLenCmd(buf []byte) (WriteWLLenCmd, error) {
	if len(buf) < 4 || buf[0] != CmdWriteWLLen {
		return WriteWLLenCmd{}, &ProtocolFramingError{Got: buf[0]}
	}
	return WriteWLLenCmd{
		Lit: binary.BigEndian.Uint16(buf[1:3]),
		Len: buf[3],
	}, nil
}

// WriteAssignCmd encodes command 0x04: write one variable's assignment (4
// bytes total with the tag byte).
type WriteAssignCmd struct {
	Var uint16
	Val uint8
}

func (c WriteAssignCmd) Encode() []byte {
	buf := make([]byte, 4)
	buf[0] = CmdWriteAssign
	binary.BigEndian.PutUint16(buf[1:3], c.Var)
	buf[3] = c.Val
	return buf
}

func DecodeWriteAssignCmd(buf []byte) (WriteAssignCmd, error) {
	if len(buf) < 4 || buf[0] != CmdWriteAssign {
		return WriteAssignCmd{}, &ProtocolFramingError{Got: buf[0]}
	}
	return WriteAssignCmd{
		Var: binary.BigEndian.Uint16(buf[1:3]),
		Val: buf[3],
	}, nil
}

// BCPStartCmd encodes command 0x05: begin one propagation round (3 bytes
// total with the tag byte).
type BCPStartCmd struct {
	FalseLit uint16
}

func (c BCPStartCmd) Encode() []byte {
	buf := make([]byte, 3)
	buf[0] = CmdBCPStart
	binary.BigEndian.PutUint16(buf[1:3], c.FalseLit)
	return buf
}

func DecodeBCPStartCmd(buf []byte) (BCPStartCmd, error) {
	if len(buf) < 3 || buf[0] != CmdBCPStart {
		return BCPStartCmd{}, &ProtocolFramingError{Got: buf[0]}
	}
	return BCPStartCmd{FalseLit: binary.BigEndian.Uint16(buf[1:3])}, nil
}

// ResetStateCmd encodes command 0x06: no payload.
type ResetStateCmd struct{}

func (ResetStateCmd) Encode() []byte {
	return []byte{CmdResetState}
}

func DecodeResetStateCmd(buf []byte) (ResetStateCmd, error) {
	if len(buf) < 1 || buf[0] != CmdResetState {
		return ResetStateCmd{}, &ProtocolFramingError{Got: buf[0]}
	}
	return ResetStateCmd{}, nil
}

// ImplicationResp encodes response 0xB0: one implication (5-byte payload).
type ImplicationResp struct {
	Var    uint16
	Val    uint8
	Reason uint16
}

func (r ImplicationResp) Encode() []byte {
	buf := make([]byte, 6)
	buf[0] = RespImplication
	binary.BigEndian.PutUint16(buf[1:3], r.Var)
	buf[3] = r.Val
	binary.BigEndian.PutUint16(buf[4:6], r.Reason)
	return buf
}

// DoneResp encodes responses 0xC0/0xC1: a 3-byte payload (clause ID then a
// zero padding byte; the ID is ignored on a no-conflict done).
type DoneResp struct {
	Conflict bool
	ClauseID uint16
}

func (r DoneResp) Encode() []byte {
	buf := make([]byte, 4)
	if r.Conflict {
		buf[0] = RespDoneConflict
	} else {
		buf[0] = RespDoneOK
	}
	binary.BigEndian.PutUint16(buf[1:3], r.ClauseID)
	buf[3] = 0x00
	return buf
}

// Response is the decoded union of one device->host packet.
type Response struct {
	Implication *ImplicationResp
	Done        *DoneResp
}

// decoderState drives the response-byte dispatch described in §4.7: on the
// response-type byte, consume a 5-byte (implication) or 3-byte
// (done/conflict) continuation.
type decoderState int

const (
	decoderExpectTag decoderState = iota
	decoderExpectImplicationPayload
	decoderExpectDonePayload
)

// ResponseDecoder is a small streaming state machine over a byte stream of
// device responses, mirroring §4.7's description exactly.
type ResponseDecoder struct {
	state decoderState
	tag   byte
	buf   []byte
}

// Feed appends bytes to the decoder and returns every fully decoded
// response found so far, in stream order.
func (d *ResponseDecoder) Feed(data []byte) ([]Response, error) {
	var out []Response
	for _, b := range data {
		switch d.state {
		case decoderExpectTag:
			d.tag = b
			d.buf = d.buf[:0]
			switch b {
			case RespImplication:
				d.state = decoderExpectImplicationPayload
			case RespDoneOK, RespDoneConflict:
				d.state = decoderExpectDonePayload
			default:
				return out, &ProtocolFramingError{Got: b}
			}
		case decoderExpectImplicationPayload:
			d.buf = append(d.buf, b)
			if len(d.buf) == 5 {
				out = append(out, Response{Implication: &ImplicationResp{
					Var:    binary.BigEndian.Uint16(d.buf[0:2]),
					Val:    d.buf[2],
					Reason: binary.BigEndian.Uint16(d.buf[3:5]),
				}})
				d.state = decoderExpectTag
			}
		case decoderExpectDonePayload:
			d.buf = append(d.buf, b)
			if len(d.buf) == 3 {
				out = append(out, Response{Done: &DoneResp{
					Conflict: d.tag == RespDoneConflict,
					ClauseID: binary.BigEndian.Uint16(d.buf[0:2]),
				}})
				d.state = decoderExpectTag
			}
		}
	}
	return out, nil
}
