// Package motorcontrol commands CAN-attached motor controllers: Talon SRX
// and Victor SPX. It translates high-level control intents (percent output,
// velocity, position, motion profiles, device-to-device following) into the
// numeric encodings the firmware expects and manages the handshake for
// streaming trajectories into the bounded on-device buffer.
//
// The physical bus lives behind the canbus package; everything here is a
// synchronous facade meant to be driven by a periodic host control loop.
package motorcontrol

import (
	"github.com/edaniels/golog"
	"github.com/pkg/errors"

	"github.com/frc-go/phoenix/canbus"
)

// Family tags OR'd with the 0-62 device number to form the full arbitration
// ID of a device.
const (
	TalonSRXFamilyTag  uint32 = 0x02040000
	VictorSPXFamilyTag uint32 = 0x01040000
)

// A MotorController is one CAN motor controller. Exactly two device families
// implement it, TalonSRX and VictorSPX; the set is closed and the interface
// cannot be implemented outside this package.
type MotorController interface {
	// BaseID returns the full arbitration ID, family tag included.
	BaseID() uint32
	// DeviceID queries the device for its configured device number.
	DeviceID() (int, error)
	// Set commands the output. See ControlMode for the unit semantics of
	// demand0 per mode.
	Set(mode ControlMode, demand0 float64, demand1Type DemandType, demand1 float64)
	// NeutralOutput neutrals the output by switching to Disabled.
	NeutralOutput()
	// Follow makes this controller mirror the given master.
	Follow(master MotorController, followerType FollowerType)
	// Faults reads and decodes the live fault field.
	Faults() (Faults, error)
	// StickyFaults reads and decodes the latched fault field.
	StickyFaults() (StickyFaults, error)
	// LastError returns the most recent error the device reported, if any.
	// Operations that return no error themselves report through here.
	LastError() error
	// Close releases the device connection.
	Close() error

	mustEmbedController()
}

// Equal reports whether two controllers address the same physical device,
// compared by their device-reported IDs. Controllers that cannot be queried
// compare unequal.
func Equal(a, b MotorController) bool {
	idA, errA := a.DeviceID()
	idB, errB := b.DeviceID()
	if errA != nil || errB != nil {
		return false
	}
	return idA == idB
}

// open connects to the device composed from the family tag and number.
func open(familyTag uint32, deviceNumber int, bus canbus.Bus, logger golog.Logger) (*controller, error) {
	arbID := canbus.ArbitrationID(familyTag, deviceNumber)
	conn, err := bus.Open(arbID)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open device %d", deviceNumber)
	}
	logger.Debugw("motor controller connected", "arb_id", arbID, "device_number", deviceNumber)
	return &controller{conn: conn, arbID: arbID, logger: logger}, nil
}
