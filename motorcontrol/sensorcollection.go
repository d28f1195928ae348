package motorcontrol

import (
	"github.com/frc-go/phoenix/canbus"
)

// Sensor collection: raw access to the Talon SRX feedback connector,
// independent of which sensor the closed loops have selected.

// AnalogIn reads the analog input. The 10-bit converted value sits in the
// low bits; the upper bits accumulate rollovers.
func (t *TalonSRX) AnalogIn() (int, error) {
	return t.queryInt(canbus.OpGetAnalogIn)
}

// SetAnalogPosition overwrites the accumulated analog position.
func (t *TalonSRX) SetAnalogPosition(newPosition, timeoutMs int) error {
	return t.conn.Send(canbus.OpSetAnalogPosition, timeoutMs, float64(newPosition))
}

// AnalogInRaw reads the 10-bit analog conversion without rollover tracking.
func (t *TalonSRX) AnalogInRaw() (int, error) {
	return t.queryInt(canbus.OpGetAnalogInRaw)
}

// AnalogInVel reads the analog input velocity.
func (t *TalonSRX) AnalogInVel() (int, error) {
	return t.queryInt(canbus.OpGetAnalogInVel)
}

// QuadraturePosition reads the quadrature decoder position.
func (t *TalonSRX) QuadraturePosition() (int, error) {
	return t.queryInt(canbus.OpGetQuadraturePosition)
}

// SetQuadraturePosition overwrites the quadrature decoder position.
func (t *TalonSRX) SetQuadraturePosition(newPosition, timeoutMs int) error {
	return t.conn.Send(canbus.OpSetQuadraturePosition, timeoutMs, float64(newPosition))
}

// QuadratureVelocity reads the quadrature decoder velocity.
func (t *TalonSRX) QuadratureVelocity() (int, error) {
	return t.queryInt(canbus.OpGetQuadratureVelocity)
}

// PulseWidthPosition reads the pulse width decoder position.
func (t *TalonSRX) PulseWidthPosition() (int, error) {
	return t.queryInt(canbus.OpGetPulseWidthPosition)
}

// SetPulseWidthPosition overwrites the pulse width decoder position.
func (t *TalonSRX) SetPulseWidthPosition(newPosition, timeoutMs int) error {
	return t.conn.Send(canbus.OpSetPulseWidthPosition, timeoutMs, float64(newPosition))
}

// PulseWidthVelocity reads the pulse width decoder velocity.
func (t *TalonSRX) PulseWidthVelocity() (int, error) {
	return t.queryInt(canbus.OpGetPulseWidthVelocity)
}

// PulseWidthRiseToFallUs reads the measured pulse high time in microseconds.
func (t *TalonSRX) PulseWidthRiseToFallUs() (int, error) {
	return t.queryInt(canbus.OpGetPulseWidthRiseToFallUs)
}

// PulseWidthRiseToRiseUs reads the measured pulse period in microseconds.
func (t *TalonSRX) PulseWidthRiseToRiseUs() (int, error) {
	return t.queryInt(canbus.OpGetPulseWidthRiseToRiseUs)
}

// PinStateQuadA reads the quadrature A pin.
func (t *TalonSRX) PinStateQuadA() (bool, error) {
	return t.queryPin(canbus.OpGetPinStateQuadA)
}

// PinStateQuadB reads the quadrature B pin.
func (t *TalonSRX) PinStateQuadB() (bool, error) {
	return t.queryPin(canbus.OpGetPinStateQuadB)
}

// PinStateQuadIdx reads the quadrature index pin.
func (t *TalonSRX) PinStateQuadIdx() (bool, error) {
	return t.queryPin(canbus.OpGetPinStateQuadIdx)
}

// IsFwdLimitSwitchClosed reads the forward limit switch pin.
func (t *TalonSRX) IsFwdLimitSwitchClosed() (bool, error) {
	return t.queryPin(canbus.OpIsFwdLimitSwitchClosed)
}

// IsRevLimitSwitchClosed reads the reverse limit switch pin.
func (t *TalonSRX) IsRevLimitSwitchClosed() (bool, error) {
	return t.queryPin(canbus.OpIsRevLimitSwitchClosed)
}

func (t *TalonSRX) queryPin(op canbus.Opcode) (bool, error) {
	v, err := t.conn.Query(op)
	if err != nil {
		return false, err
	}
	return v != 0, nil
}
