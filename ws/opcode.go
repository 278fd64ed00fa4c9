package ws

// Opcode identifies the type of a websocket frame.
type Opcode byte

const (
	OpContinuation Opcode = 0x0
	OpText         Opcode = 0x1
	OpBinary       Opcode = 0x2
	OpClose        Opcode = 0x8
	OpPing         Opcode = 0x9
	OpPong         Opcode = 0xA
)

// UnknownOpcodeName is the name of opcodes outside text, binary, close, ping and pong.
const UnknownOpcodeName = "unknown"

func (op Opcode) String() string {
	switch op {
	case OpText:
		return "text"
	case OpBinary:
		return "binary"
	case OpClose:
		return "close"
	case OpPing:
		return "ping"
	case OpPong:
		return "pong"
	}
	return UnknownOpcodeName
}

func (op Opcode) IsControl() bool {
	return op&0x8 != 0
}

func (op Opcode) IsContent() bool {
	return op == OpText || op == OpBinary
}
