package motorcontrol

import (
	"github.com/edaniels/golog"
	goutils "go.viam.com/utils"

	"github.com/frc-go/phoenix/canbus"
)

// TalonSRX is a CTRE Talon SRX motor controller on the CAN bus. On top of the
// shared controller surface it exposes the feedback connector (sensor
// collection), velocity measurement tuning, and current limiting.
type TalonSRX struct {
	*controller
}

// NewTalonSRX connects to the Talon SRX with the given device number (0-62).
func NewTalonSRX(deviceNumber int, bus canbus.Bus, logger golog.Logger) (*TalonSRX, error) {
	ctrl, err := open(TalonSRXFamilyTag, deviceNumber, bus, logger)
	if err != nil {
		return nil, err
	}
	return &TalonSRX{controller: ctrl}, nil
}

func (t *TalonSRX) String() string {
	return t.describe("TalonSRX")
}

// ConfigSelectedFeedbackSensor selects a directly wired feedback device for a
// closed loop. This shadows the remote-sensor variant of the shared surface;
// pidIdx 0 is the primary loop, 1 the auxiliary loop.
func (t *TalonSRX) ConfigSelectedFeedbackSensor(feedbackDevice FeedbackDevice, pidIdx, timeoutMs int) error {
	return t.conn.Send(canbus.OpConfigSelectedFeedbackSensor, timeoutMs, float64(feedbackDevice), float64(pidIdx))
}

// SetStatusFramePeriod sets the transmit period of a status frame, including
// the frames only controllers with a feedback connector emit.
func (t *TalonSRX) SetStatusFramePeriod(frame StatusFrameEnhanced, periodMs, timeoutMs int) error {
	return t.conn.Send(canbus.OpSetStatusFramePeriod, timeoutMs, float64(frame), float64(periodMs))
}

// StatusFramePeriod reads the transmit period of a status frame.
func (t *TalonSRX) StatusFramePeriod(frame StatusFrameEnhanced, timeoutMs int) (int, error) {
	return t.queryInt(canbus.OpGetStatusFramePeriod, float64(frame), float64(timeoutMs))
}

// ConfigForwardLimitSwitchSource configures the forward limit switch from a
// local or remote source. Remote sources assume device ID zero; use the
// shared four-argument variant when that is not wanted.
func (t *TalonSRX) ConfigForwardLimitSwitchSource(
	limitSwitchSource LimitSwitchSource,
	normalOpenOrClose LimitSwitchNormal,
	timeoutMs int,
) error {
	return t.conn.Send(canbus.OpConfigForwardLimitSwitchSource, timeoutMs,
		float64(limitSwitchSource), float64(normalOpenOrClose), 0)
}

// ConfigReverseLimitSwitchSource configures the reverse limit switch from a
// local or remote source.
func (t *TalonSRX) ConfigReverseLimitSwitchSource(
	limitSwitchSource LimitSwitchSource,
	normalOpenOrClose LimitSwitchNormal,
	timeoutMs int,
) error {
	return t.conn.Send(canbus.OpConfigReverseLimitSwitchSource, timeoutMs,
		float64(limitSwitchSource), float64(normalOpenOrClose), 0)
}

// ConfigVelocityMeasurementPeriod sets the sampling period of the velocity
// filter. Every 1ms a position sample is taken and differenced against the
// sample from one period ago.
func (t *TalonSRX) ConfigVelocityMeasurementPeriod(period VelocityMeasPeriod, timeoutMs int) error {
	return t.conn.Send(canbus.OpConfigVelocityMeasurementPeriod, timeoutMs, float64(period))
}

// ConfigVelocityMeasurementWindow sets how many velocity samples are averaged.
func (t *TalonSRX) ConfigVelocityMeasurementWindow(windowSize, timeoutMs int) error {
	return t.conn.Send(canbus.OpConfigVelocityMeasurementWindow, timeoutMs, float64(windowSize))
}

// ConfigPeakCurrentLimit sets the peak allowable current. Current limiting
// activates once current exceeds this peak for longer than the peak duration,
// after which output is held to the continuous limit. For single-threshold
// limiting, set the peak to zero and use only the continuous limit.
func (t *TalonSRX) ConfigPeakCurrentLimit(amps, timeoutMs int) error {
	return t.conn.Send(canbus.OpConfigPeakCurrentLimit, timeoutMs, float64(amps))
}

// ConfigPeakCurrentDuration sets how long current may exceed the peak limit
// before limiting engages.
//
// NOTE: this issues the peak current *limit* request, matching the vendor
// binding as shipped. Confirm against the authoritative device protocol
// before changing it.
func (t *TalonSRX) ConfigPeakCurrentDuration(milliseconds, timeoutMs int) error {
	return t.conn.Send(canbus.OpConfigPeakCurrentLimit, timeoutMs, float64(milliseconds))
}

// ConfigContinuousCurrentLimit sets the continuous allowable current draw.
func (t *TalonSRX) ConfigContinuousCurrentLimit(amps, timeoutMs int) error {
	return t.conn.Send(canbus.OpConfigContinuousCurrentLimit, timeoutMs, float64(amps))
}

// EnableCurrentLimit enables or disables current limiting; the thresholds
// are kept.
func (t *TalonSRX) EnableCurrentLimit(enable bool) {
	goutils.UncheckedError(t.conn.Send(canbus.OpEnableCurrentLimit, 0, boolArg(enable)))
}
