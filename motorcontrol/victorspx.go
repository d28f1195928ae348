package motorcontrol

import (
	"github.com/edaniels/golog"

	"github.com/frc-go/phoenix/canbus"
)

// VictorSPX is a VEX Victor SPX motor controller on the CAN bus. It carries
// the shared controller surface only; it has no feedback connector and no
// current limiting.
type VictorSPX struct {
	*controller
}

// NewVictorSPX connects to the Victor SPX with the given device number (0-62).
func NewVictorSPX(deviceNumber int, bus canbus.Bus, logger golog.Logger) (*VictorSPX, error) {
	ctrl, err := open(VictorSPXFamilyTag, deviceNumber, bus, logger)
	if err != nil {
		return nil, err
	}
	return &VictorSPX{controller: ctrl}, nil
}

func (v *VictorSPX) String() string {
	return v.describe("VictorSPX")
}

// interface conformance
var (
	_ MotorController = (*TalonSRX)(nil)
	_ MotorController = (*VictorSPX)(nil)
)
