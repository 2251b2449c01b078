// Package vmtypes consolidates shared types and constants for the machine.
package vmtypes

import "fmt"

// ============================================================================
// Machine State Constants
// ============================================================================

// Status is the run status of a machine instance.
type Status uint8

const (
	RUNNING        Status = 0 // executing, or ready to execute
	AWAITING_INPUT Status = 1 // input instruction decoded with an empty input queue
	HALT           Status = 2 // halt opcode decoded (terminal)
	FAULT          Status = 3 // invalid opcode or address (terminal)
)

func (s Status) String() string {
	switch s {
	case RUNNING:
		return "running"
	case AWAITING_INPUT:
		return "awaiting-input"
	case HALT:
		return "halted"
	case FAULT:
		return "faulted"
	default:
		return fmt.Sprintf("status(%d)", uint8(s))
	}
}

// Terminal reports whether no further steps are allowed.
func (s Status) Terminal() bool {
	return s == HALT || s == FAULT
}

// ============================================================================
// Addressing Modes
// ============================================================================

// Mode selects how an operand is interpreted.
type Mode uint8

const (
	POSITION  Mode = 0 // operand is an address
	IMMEDIATE Mode = 1 // operand is the value
	RELATIVE  Mode = 2 // operand is an offset from the relative base
)

func (m Mode) String() string {
	switch m {
	case POSITION:
		return "position"
	case IMMEDIATE:
		return "immediate"
	case RELATIVE:
		return "relative"
	default:
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
}

// ============================================================================
// Network Constants
// ============================================================================

const (
	NoPacket        int64 = -1  // fed to an idle network node instead of blocking
	DefaultSink     int64 = 255 // address of the packet sink
	DefaultNICCount       = 50
	PacketWidth           = 3 // destination, X, Y
)
