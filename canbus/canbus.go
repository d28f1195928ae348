// Package canbus defines the transport boundary between motor controller
// objects and the physical CAN bus. The bus itself (socketcan, vendor DLL,
// simulation) lives behind the Bus and Conn interfaces; everything above this
// package only produces encoded numeric requests and interprets what comes
// back.
package canbus

// A Bus hands out connections to individual devices by arbitration ID.
// Opening the same arbitration ID twice yields connections to the same
// underlying device.
type Bus interface {
	// Open creates a connection to the device at the given arbitration ID.
	Open(arbID uint32) (Conn, error)
	Close() error
}

// A Conn is an opaque handle to one device on the bus.
//
// Implementations must serialize concurrent calls on a single connection;
// callers may invoke a Conn from multiple goroutines.
type Conn interface {
	// Send transmits an encoded request. If timeoutMs is greater than zero
	// the call blocks until the device confirms the request or the timeout
	// elapses, in which case ErrRxTimeout is returned. A timeoutMs of zero
	// is fire-and-forget: no blocking, no confirmation.
	Send(op Opcode, timeoutMs int, args ...float64) error

	// Query reads back a single value from the device.
	Query(op Opcode, args ...float64) (float64, error)

	// QueryFrame reads back a multi-value status frame from the device.
	// The value layout is per-opcode; see the opcode documentation.
	QueryFrame(op Opcode, args ...float64) ([]float64, error)

	Close() error
}
