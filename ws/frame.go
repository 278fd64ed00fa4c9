package ws

import (
	"encoding/binary"

	"github.com/oesand/ember/specs"
)

// Frame is a single parsed websocket frame. Frames are values produced by
// ParseFrame and are not modified afterwards.
type Frame struct {
	fin     bool
	opcode  Opcode
	payload []byte

	hasCloseCode bool
	closeCode    specs.WebSocketClose
	closeMessage []byte
}

func (frame Frame) Fin() bool {
	return frame.fin
}

func (frame Frame) Opcode() Opcode {
	return frame.opcode
}

// Name is the human readable opcode name: text, binary, close, ping, pong
// or UnknownOpcodeName.
func (frame Frame) Name() string {
	return frame.opcode.String()
}

// Payload returns the unmasked payload bytes.
func (frame Frame) Payload() []byte {
	return frame.payload
}

func (frame Frame) Text() string {
	return string(frame.payload)
}

// CloseCode returns the status code of a close frame. When the frame is not a
// close frame or its payload is shorter than two bytes the code is
// specs.WebSocketCloseNoStatusReceived and ok is false.
func (frame Frame) CloseCode() (code specs.WebSocketClose, ok bool) {
	if !frame.hasCloseCode {
		return specs.WebSocketCloseNoStatusReceived, false
	}
	return frame.closeCode, true
}

// CloseMessage returns the close reason following the status code.
func (frame Frame) CloseMessage() []byte {
	return frame.closeMessage
}

// ParseFrame decodes the frame at the start of data. It returns the frame and
// the number of bytes it occupied. ErrIncompleteFrame is returned when data is
// shorter than the frame header announces. Bytes after the frame are ignored.
func ParseFrame(data []byte) (Frame, int, error) {
	if len(data) < 2 {
		return Frame{}, 0, ErrIncompleteFrame
	}

	var frame Frame
	frame.fin = data[0]&0x80 != 0
	frame.opcode = Opcode(data[0] & 0x0F)

	masked := data[1]&0x80 != 0
	length := uint64(data[1] & 0x7F)
	offset := 2

	switch length {
	case 126:
		if len(data) < offset+2 {
			return Frame{}, 0, ErrIncompleteFrame
		}
		length = uint64(binary.BigEndian.Uint16(data[offset:]))
		offset += 2
	case 127:
		if len(data) < offset+8 {
			return Frame{}, 0, ErrIncompleteFrame
		}
		length = binary.BigEndian.Uint64(data[offset:])
		offset += 8
	}

	var maskingKey []byte
	if masked {
		if len(data) < offset+4 {
			return Frame{}, 0, ErrIncompleteFrame
		}
		maskingKey = data[offset : offset+4]
		offset += 4
	}

	if length > uint64(len(data)-offset) {
		return Frame{}, 0, ErrIncompleteFrame
	}
	end := offset + int(length)

	// copied, the caller may reuse data
	frame.payload = make([]byte, length)
	copy(frame.payload, data[offset:end])
	if maskingKey != nil {
		for i := range frame.payload {
			frame.payload[i] ^= maskingKey[i%4]
		}
	}

	if frame.opcode == OpClose && len(frame.payload) >= 2 {
		frame.hasCloseCode = true
		frame.closeCode = specs.WebSocketClose(binary.BigEndian.Uint16(frame.payload))
		if len(frame.payload) > 2 {
			frame.closeMessage = frame.payload[2:]
		}
	}

	return frame, end, nil
}

// AppendFrame appends an unmasked, final frame to dst. Server frames are
// never masked and never fragmented.
func AppendFrame(dst []byte, opcode Opcode, payload []byte) []byte {
	dst = appendFrameHeader(dst, opcode, len(payload), false)
	return append(dst, payload...)
}

// BuildFrame serializes an unmasked, final frame.
func BuildFrame(opcode Opcode, payload []byte) []byte {
	return AppendFrame(make([]byte, 0, frameHeaderSize(len(payload))+len(payload)), opcode, payload)
}

// BuildMaskedFrame serializes a final frame masked with maskingKey, the way
// clients send them.
func BuildMaskedFrame(opcode Opcode, payload []byte, maskingKey [4]byte) []byte {
	buf := make([]byte, 0, frameHeaderSize(len(payload))+4+len(payload))
	buf = appendFrameHeader(buf, opcode, len(payload), true)
	buf = append(buf, maskingKey[:]...)
	start := len(buf)
	buf = append(buf, payload...)
	for i := range payload {
		buf[start+i] ^= maskingKey[i%4]
	}
	return buf
}

// ClosePayload encodes a close status code followed by the close message.
func ClosePayload(code specs.WebSocketClose, message []byte) []byte {
	buf := binary.BigEndian.AppendUint16(make([]byte, 0, 2+len(message)), uint16(code))
	return append(buf, message...)
}

func frameHeaderSize(length int) int {
	switch {
	case length <= 125:
		return 2
	case length <= 0xFFFF:
		return 4
	}
	return 10
}

func appendFrameHeader(dst []byte, opcode Opcode, length int, masked bool) []byte {
	first := 0x80 | byte(opcode&0x0F)

	var maskBit byte
	if masked {
		maskBit = 0x80
	}

	switch {
	case length <= 125:
		dst = append(dst, first, byte(length)|maskBit)
	case length <= 0xFFFF:
		dst = append(dst, first, 126|maskBit)
		dst = binary.BigEndian.AppendUint16(dst, uint16(length))
	default:
		dst = append(dst, first, 127|maskBit)
		dst = binary.BigEndian.AppendUint64(dst, uint64(length))
	}
	return dst
}
