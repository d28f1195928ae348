// Package fakecan is an in-memory stand-in for a physical CAN bus, backed by
// a small model of motor controller firmware. It exists for tests and for
// running the library on a desk with no hardware attached.
package fakecan

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	goutils "go.viam.com/utils"

	"github.com/frc-go/phoenix/canbus"
)

// defaultBottomCapacity matches the trajectory buffer depth of shipping
// firmware.
const defaultBottomCapacity = 128

// Config describes the simulated firmware.
type Config struct {
	// BottomBufferCapacity is the depth of each device's on-board trajectory
	// buffer. Zero selects the firmware default.
	BottomBufferCapacity int `json:"bottom_buffer_capacity,omitempty"`
}

// Validate ensures all parts of the config are valid.
func (cfg *Config) Validate(path string) error {
	if cfg.BottomBufferCapacity < 0 {
		return goutils.NewConfigValidationError(path, errors.New("bottom_buffer_capacity cannot be negative"))
	}
	return nil
}

// Bus is an in-memory canbus.Bus. Devices come into existence the first time
// their arbitration ID is opened (or inspected) and persist for the life of
// the bus, so reopening an ID reconnects to the same simulated hardware.
type Bus struct {
	mu      sync.Mutex
	cfg     Config
	logger  golog.Logger
	clk     clock.Clock
	devices map[uint32]*Device
	closed  bool
}

// NewBus creates a bus running on the wall clock.
func NewBus(cfg Config, logger golog.Logger) *Bus {
	return NewBusWithClock(cfg, logger, clock.New())
}

// NewBusWithClock creates a bus whose confirmation timeouts are driven by the
// given clock.
func NewBusWithClock(cfg Config, logger golog.Logger, clk clock.Clock) *Bus {
	if cfg.BottomBufferCapacity == 0 {
		cfg.BottomBufferCapacity = defaultBottomCapacity
	}
	return &Bus{
		cfg:     cfg,
		logger:  logger,
		clk:     clk,
		devices: make(map[uint32]*Device),
	}
}

// Open implements canbus.Bus.
func (b *Bus) Open(arbID uint32) (canbus.Conn, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, canbus.ErrTxFailed
	}
	b.logger.Debugw("opened device", "arb_id", arbID)
	return &conn{dev: b.deviceLocked(arbID)}, nil
}

// Close implements canbus.Bus.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	return nil
}

// Device returns the simulated device at the given arbitration ID, creating
// it if needed. Intended for test setup and inspection.
func (b *Bus) Device(arbID uint32) *Device {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.deviceLocked(arbID)
}

func (b *Bus) deviceLocked(arbID uint32) *Device {
	dev, ok := b.devices[arbID]
	if !ok {
		dev = newDevice(arbID, b.cfg.BottomBufferCapacity, b.clk, b.logger)
		b.devices[arbID] = dev
	}
	return dev
}

// conn is one handle onto a device. All state lives on the Device so that
// multiple handles to the same arbitration ID observe the same firmware.
type conn struct {
	dev *Device
}

func (c *conn) Send(op canbus.Opcode, timeoutMs int, args ...float64) error {
	return c.dev.send(op, timeoutMs, args...)
}

func (c *conn) Query(op canbus.Opcode, args ...float64) (float64, error) {
	return c.dev.query(op, args...)
}

func (c *conn) QueryFrame(op canbus.Opcode, args ...float64) ([]float64, error) {
	return c.dev.queryFrame(op, args...)
}

func (c *conn) Close() error {
	return nil
}

// paramKey addresses one generic parameter instance.
type paramKey struct {
	param   int
	ordinal int
}

// Device models the firmware state of one controller.
type Device struct {
	mu       sync.Mutex
	arbID    uint32
	clk      clock.Clock
	logger   golog.Logger
	capacity int

	demandMode  int
	demand0     float64
	demand1     float64
	demand1Type int

	params       map[paramKey]float64
	customParams map[int]float64
	signals      map[canbus.Opcode]float64
	lastArgs     map[canbus.Opcode][]float64

	unconfirmable map[canbus.Opcode]bool
	failWith      map[canbus.Opcode]canbus.ErrorCode

	bottom       [][]float64
	active       []float64
	hasUnderrun  bool
	isUnderrun   bool
	outputEnable int

	faults       int32
	stickyFaults int32
	firmware     int32
	lastError    canbus.ErrorCode
	resetFlag    bool
}

func newDevice(arbID uint32, capacity int, clk clock.Clock, logger golog.Logger) *Device {
	return &Device{
		arbID:         arbID,
		clk:           clk,
		logger:        logger,
		capacity:      capacity,
		params:        make(map[paramKey]float64),
		customParams:  make(map[int]float64),
		signals:       make(map[canbus.Opcode]float64),
		lastArgs:      make(map[canbus.Opcode][]float64),
		unconfirmable: make(map[canbus.Opcode]bool),
		failWith:      make(map[canbus.Opcode]canbus.ErrorCode),
	}
}

func (d *Device) send(op canbus.Opcode, timeoutMs int, args ...float64) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.lastArgs[op] = append([]float64(nil), args...)

	if code, ok := d.failWith[op]; ok {
		d.lastError = code
		return code
	}
	if timeoutMs > 0 && d.unconfirmable[op] {
		clk := d.clk
		d.mu.Unlock()
		clk.Sleep(time.Duration(timeoutMs) * time.Millisecond)
		d.mu.Lock()
		d.lastError = canbus.ErrRxTimeout
		return canbus.ErrRxTimeout
	}

	switch op {
	case canbus.OpSetDemand:
		if len(args) != 4 {
			d.lastError = canbus.ErrInvalidParamValue
			return canbus.ErrInvalidParamValue
		}
		d.demandMode = int(args[0])
		d.demand0 = args[1]
		d.demand1 = args[2]
		d.demand1Type = int(args[3])
	case canbus.OpPushTrajectory:
		if len(d.bottom) >= d.capacity {
			return canbus.ErrBufferFull
		}
		d.bottom = append(d.bottom, append([]float64(nil), args...))
		d.isUnderrun = false
	case canbus.OpClearTrajectories:
		d.bottom = nil
		d.active = nil
		d.isUnderrun = false
	case canbus.OpClearHasUnderrun:
		d.hasUnderrun = false
	case canbus.OpClearStickyFaults:
		d.stickyFaults = 0
	case canbus.OpConfigSetParameter:
		if len(args) == 4 {
			d.params[paramKey{param: int(args[0]), ordinal: int(args[3])}] = args[1]
		}
	case canbus.OpConfigSetCustomParam:
		if len(args) == 2 {
			d.customParams[int(args[1])] = args[0]
		}
	}
	return nil
}

func (d *Device) query(op canbus.Opcode, args ...float64) (float64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if code, ok := d.failWith[op]; ok {
		return 0, code
	}

	switch op {
	case canbus.OpGetDeviceNumber:
		return float64(canbus.DeviceNumber(d.arbID)), nil
	case canbus.OpGetFaults:
		return float64(d.faults), nil
	case canbus.OpGetStickyFaults:
		return float64(d.stickyFaults), nil
	case canbus.OpGetFirmwareVersion:
		return float64(d.firmware), nil
	case canbus.OpGetLastError:
		return float64(d.lastError), nil
	case canbus.OpHasResetOccurred:
		occurred := d.resetFlag
		d.resetFlag = false
		if occurred {
			return 1, nil
		}
		return 0, nil
	case canbus.OpConfigGetParameter:
		if len(args) < 2 {
			return 0, canbus.ErrInvalidParamValue
		}
		return d.params[paramKey{param: int(args[0]), ordinal: int(args[1])}], nil
	case canbus.OpConfigGetCustomParam:
		if len(args) < 1 {
			return 0, canbus.ErrInvalidParamValue
		}
		return d.customParams[int(args[0])], nil
	default:
		return d.signals[op], nil
	}
}

func (d *Device) queryFrame(op canbus.Opcode, args ...float64) ([]float64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if code, ok := d.failWith[op]; ok {
		return nil, code
	}
	if op != canbus.OpMotionProfileStatus {
		return nil, canbus.ErrFeatureNotSupported
	}

	frame := make([]float64, canbus.MPStatusFrameLen)
	frame[canbus.MPStatusBtmBufferCnt] = float64(len(d.bottom))
	frame[canbus.MPStatusHasUnderrun] = boolToFloat(d.hasUnderrun)
	frame[canbus.MPStatusIsUnderrun] = boolToFloat(d.isUnderrun)
	frame[canbus.MPStatusActivePointValid] = boolToFloat(d.active != nil)
	frame[canbus.MPStatusOutputEnable] = float64(d.outputEnable)
	if d.active != nil && len(d.active) == 8 {
		frame[canbus.MPStatusIsLast] = d.active[5]
		frame[canbus.MPStatusProfileSlotSelect0] = d.active[3]
		frame[canbus.MPStatusProfileSlotSelect1] = d.active[4]
		frame[canbus.MPStatusTimeDurMs] = d.active[7]
	}
	return frame, nil
}

// Advance runs the simulated motion profile executer for n trajectory point
// periods, consuming buffered points in order. Running out of points while a
// non-final point is active trips the underrun flags. It reports how many
// points were consumed.
func (d *Device) Advance(n int) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	consumed := 0
	for i := 0; i < n; i++ {
		if len(d.bottom) == 0 {
			if d.active != nil && len(d.active) == 8 && d.active[5] == 0 {
				d.hasUnderrun = true
				d.isUnderrun = true
			}
			break
		}
		d.active = d.bottom[0]
		d.bottom = d.bottom[1:]
		d.isUnderrun = false
		d.outputEnable = 1
		consumed++
	}
	return consumed
}

// LastDemand reports the most recent demand write.
func (d *Device) LastDemand() (mode int, demand0, demand1 float64, demand1Type int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.demandMode, d.demand0, d.demand1, d.demand1Type
}

// LastSent reports the args of the most recent request with the given opcode,
// or nil if none was seen.
func (d *Device) LastSent(op canbus.Opcode) []float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	args, ok := d.lastArgs[op]
	if !ok {
		return nil
	}
	return append([]float64(nil), args...)
}

// Parameter reports the stored value of a generic parameter.
func (d *Device) Parameter(param, ordinal int) float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.params[paramKey{param: param, ordinal: ordinal}]
}

// BottomBufferCount reports the number of buffered trajectory points.
func (d *Device) BottomBufferCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.bottom)
}

// BottomBuffer returns a copy of the buffered trajectory frames in push order.
func (d *Device) BottomBuffer() [][]float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([][]float64, len(d.bottom))
	for i, frame := range d.bottom {
		out[i] = append([]float64(nil), frame...)
	}
	return out
}

// SetSignal sets the value returned by Query for the given opcode.
func (d *Device) SetSignal(op canbus.Opcode, value float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.signals[op] = value
}

// SetFaults sets the live fault field.
func (d *Device) SetFaults(raw int32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.faults = raw
}

// SetStickyFaults sets the sticky fault field.
func (d *Device) SetStickyFaults(raw int32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stickyFaults = raw
}

// SetFirmwareVersion sets the reported firmware version.
func (d *Device) SetFirmwareVersion(version int32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.firmware = version
}

// FlagReset arms the has-reset-occurred flag.
func (d *Device) FlagReset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.resetFlag = true
}

// SetUnconfirmable marks an opcode as one the device will never confirm, so
// confirmed sends against it time out.
func (d *Device) SetUnconfirmable(op canbus.Opcode, unconfirmable bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if unconfirmable {
		d.unconfirmable[op] = true
	} else {
		delete(d.unconfirmable, op)
	}
}

// FailWith makes every request with the given opcode fail with code. A code
// of zero clears the injection.
func (d *Device) FailWith(op canbus.Opcode, code canbus.ErrorCode) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if code == 0 {
		delete(d.failWith, op)
		return
	}
	d.failWith[op] = code
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
