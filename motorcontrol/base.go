package motorcontrol

import (
	"fmt"
	"sync"

	"github.com/edaniels/golog"
	"go.uber.org/multierr"
	goutils "go.viam.com/utils"

	"github.com/frc-go/phoenix/canbus"
)

// controller carries everything shared by the two device families. Both
// TalonSRX and VictorSPX embed it; it is the only implementation of the
// MotorController interface surface.
//
// A controller holds no mutable state beyond the connection and the
// motion-profile top-level buffer. Every operation is a single
// request/response exchange over the connection.
type controller struct {
	conn   canbus.Conn
	arbID  uint32
	logger golog.Logger

	// top-level trajectory buffer; see motionprofile.go.
	topMu sync.Mutex
	top   []TrajectoryPoint
}

func (c *controller) mustEmbedController() {}

// BaseID returns the full arbitration ID of the device, family tag included.
func (c *controller) BaseID() uint32 {
	return c.arbID
}

// DeviceID queries the device for its configured device number.
func (c *controller) DeviceID() (int, error) {
	return c.queryInt(canbus.OpGetDeviceNumber)
}

// Close releases the device connection.
func (c *controller) Close() error {
	return c.conn.Close()
}

// Set commands the controller output.
//
// The meaning of demand0 depends on mode: fractional output in [-1, 1] for
// PercentOutput, raw sensor units for Position, sensor units per 100ms for
// Velocity, amperes for Current, and the device number (or full composite ID)
// of the master for Follower. demand1 is a supplemental value applied per
// demand1Type.
//
// Set never fails locally; a rejected demand is reported by the device and
// visible through LastError.
func (c *controller) Set(mode ControlMode, demand0 float64, demand1Type DemandType, demand1 float64) {
	switch mode {
	case Follower:
		// Callers pass either a bare device number or a precomputed
		// composite ID. A bare number gets this device's own family
		// bits folded in.
		work := demand0
		if demand0 >= 0.0 && demand0 <= 62.0 {
			work = float64(((c.arbID >> 16) << 8) | uint32(demand0))
		}
		goutils.UncheckedError(c.conn.Send(canbus.OpSetDemand, 0,
			float64(mode), work, demand1, float64(demand1Type)))
	case Current:
		// firmware takes milliamps
		goutils.UncheckedError(c.conn.Send(canbus.OpSetDemand, 0,
			float64(mode), 1000.0*demand0, 0, float64(DemandTypeNeutral)))
	case Disabled:
		goutils.UncheckedError(c.conn.Send(canbus.OpSetDemand, 0,
			float64(mode), 0, 0, float64(DemandTypeNeutral)))
	default:
		goutils.UncheckedError(c.conn.Send(canbus.OpSetDemand, 0,
			float64(mode), demand0, demand1, float64(demand1Type)))
	}
}

// NeutralOutput neutrals the motor output by switching to Disabled.
func (c *controller) NeutralOutput() {
	c.Set(Disabled, 0.0, DemandTypeNeutral, 0.0)
}

// Follow makes this controller mirror the given master. FollowerPercentOutput
// mirrors the master's primary output; FollowerAuxOutput1 mirrors its
// auxiliary closed-loop output.
//
// No family compatibility check is performed; the composite ID keeps the
// master's family tag.
func (c *controller) Follow(master MotorController, followerType FollowerType) {
	baseID := master.BaseID()
	id24 := ((baseID >> 0x10) << 8) | (baseID & 0xFF)
	if followerType == FollowerAuxOutput1 {
		c.Set(Follower, float64(id24), DemandTypeAuxPID, 0.0)
		return
	}
	c.Set(Follower, float64(id24), DemandTypeNeutral, 0.0)
}

// SetNeutralMode sets the behavior during neutral throttle output.
func (c *controller) SetNeutralMode(neutralMode NeutralMode) {
	goutils.UncheckedError(c.conn.Send(canbus.OpSetNeutralMode, 0, float64(neutralMode)))
}

// SetSensorPhase sets the phase of the selected sensor. Pick a value so that
// positive PercentOutput yields a positive change in sensor reading.
func (c *controller) SetSensorPhase(phaseSensor bool) {
	goutils.UncheckedError(c.conn.Send(canbus.OpSetSensorPhase, 0, boolArg(phaseSensor)))
}

// SetInverted inverts the h-bridge output. This does not affect sensor phase.
func (c *controller) SetInverted(invert bool) {
	goutils.UncheckedError(c.conn.Send(canbus.OpSetInverted, 0, boolArg(invert)))
}

// ConfigOpenloopRamp sets the minimum time from neutral to full throttle in
// open loop modes.
func (c *controller) ConfigOpenloopRamp(secondsFromNeutralToFull float64, timeoutMs int) error {
	return c.conn.Send(canbus.OpConfigOpenLoopRamp, timeoutMs, secondsFromNeutralToFull)
}

// ConfigClosedloopRamp sets the minimum time from neutral to full throttle in
// closed loop modes.
func (c *controller) ConfigClosedloopRamp(secondsFromNeutralToFull float64, timeoutMs int) error {
	return c.conn.Send(canbus.OpConfigClosedLoopRamp, timeoutMs, secondsFromNeutralToFull)
}

// ConfigPeakOutputForward caps the forward output, [0, 1].
func (c *controller) ConfigPeakOutputForward(percentOut float64, timeoutMs int) error {
	return c.conn.Send(canbus.OpConfigPeakOutputForward, timeoutMs, percentOut)
}

// ConfigPeakOutputReverse caps the reverse output, [-1, 0].
func (c *controller) ConfigPeakOutputReverse(percentOut float64, timeoutMs int) error {
	return c.conn.Send(canbus.OpConfigPeakOutputReverse, timeoutMs, percentOut)
}

// ConfigNominalOutputForward sets the minimal nonzero forward output.
func (c *controller) ConfigNominalOutputForward(percentOut float64, timeoutMs int) error {
	return c.conn.Send(canbus.OpConfigNominalOutputForward, timeoutMs, percentOut)
}

// ConfigNominalOutputReverse sets the minimal nonzero reverse output.
func (c *controller) ConfigNominalOutputReverse(percentOut float64, timeoutMs int) error {
	return c.conn.Send(canbus.OpConfigNominalOutputReverse, timeoutMs, percentOut)
}

// ConfigNeutralDeadband sets the output deadband treated as neutral.
func (c *controller) ConfigNeutralDeadband(percentDeadband float64, timeoutMs int) error {
	return c.conn.Send(canbus.OpConfigNeutralDeadband, timeoutMs, percentDeadband)
}

// ConfigVoltageCompSaturation sets the voltage treated as "full output" when
// voltage compensation is enabled.
func (c *controller) ConfigVoltageCompSaturation(voltage float64, timeoutMs int) error {
	return c.conn.Send(canbus.OpConfigVoltageCompSaturation, timeoutMs, voltage)
}

// ConfigVoltageMeasurementFilter sets the rolling-average window of the bus
// voltage measurement.
func (c *controller) ConfigVoltageMeasurementFilter(filterWindowSamples, timeoutMs int) error {
	return c.conn.Send(canbus.OpConfigVoltageMeasurementFilter, timeoutMs, float64(filterWindowSamples))
}

// EnableVoltageCompensation enables voltage compensation in all control modes.
func (c *controller) EnableVoltageCompensation(enable bool) {
	goutils.UncheckedError(c.conn.Send(canbus.OpEnableVoltageCompensation, 0, boolArg(enable)))
}

// BusVoltage reads the input bus voltage in volts.
func (c *controller) BusVoltage() (float64, error) {
	return c.conn.Query(canbus.OpGetBusVoltage)
}

// MotorOutputPercent reads the applied output in [-1, 1].
func (c *controller) MotorOutputPercent() (float64, error) {
	return c.conn.Query(canbus.OpGetMotorOutputPercent)
}

// MotorOutputVoltage reads the applied output voltage.
func (c *controller) MotorOutputVoltage() (float64, error) {
	bus, err := c.BusVoltage()
	if err != nil {
		return 0, err
	}
	percent, err := c.MotorOutputPercent()
	if err != nil {
		return 0, err
	}
	return bus * percent, nil
}

// OutputCurrent reads the output current in amperes.
func (c *controller) OutputCurrent() (float64, error) {
	return c.conn.Query(canbus.OpGetOutputCurrent)
}

// Temperature reads the controller temperature in degrees Celsius.
func (c *controller) Temperature() (float64, error) {
	return c.conn.Query(canbus.OpGetTemperature)
}

// ConfigSelectedFeedbackSensor selects the remote feedback device for a
// closed loop. pidIdx 0 is the primary loop, 1 the auxiliary loop.
func (c *controller) ConfigSelectedFeedbackSensor(feedbackDevice RemoteFeedbackDevice, pidIdx, timeoutMs int) error {
	return c.conn.Send(canbus.OpConfigSelectedFeedbackSensor, timeoutMs, float64(feedbackDevice), float64(pidIdx))
}

// ConfigSelectedFeedbackCoefficient scales the selected sensor within the
// closed-loop math. Maximum 1, resolution 1/2^16, cannot be zero.
func (c *controller) ConfigSelectedFeedbackCoefficient(coefficient float64, pidIdx, timeoutMs int) error {
	return c.conn.Send(canbus.OpConfigSelectedFeedbackCoefficient, timeoutMs, coefficient, float64(pidIdx))
}

// ConfigRemoteFeedbackFilter binds a remote device and signal to a remote
// sensor slot, which can then be selected as a closed-loop source.
func (c *controller) ConfigRemoteFeedbackFilter(
	deviceID int,
	remoteSensorSource RemoteSensorSource,
	remoteOrdinal, timeoutMs int,
) error {
	return c.conn.Send(canbus.OpConfigRemoteFeedbackFilter, timeoutMs,
		float64(deviceID), float64(remoteSensorSource), float64(remoteOrdinal))
}

// ConfigSensorTerm binds a feedback device to one term of the sensor
// sum/difference virtual sensors.
func (c *controller) ConfigSensorTerm(sensorTerm SensorTerm, feedbackDevice FeedbackDevice, timeoutMs int) error {
	return c.conn.Send(canbus.OpConfigSensorTerm, timeoutMs, float64(sensorTerm), float64(feedbackDevice))
}

// SelectedSensorPosition reads the selected sensor position in raw units.
func (c *controller) SelectedSensorPosition(pidIdx int) (int, error) {
	return c.queryInt(canbus.OpGetSelectedSensorPosition, float64(pidIdx))
}

// SelectedSensorVelocity reads the selected sensor velocity in raw units per
// 100ms.
func (c *controller) SelectedSensorVelocity(pidIdx int) (int, error) {
	return c.queryInt(canbus.OpGetSelectedSensorVelocity, float64(pidIdx))
}

// SetSelectedSensorPosition overwrites the selected sensor position.
func (c *controller) SetSelectedSensorPosition(sensorPos, pidIdx, timeoutMs int) error {
	return c.conn.Send(canbus.OpSetSelectedSensorPosition, timeoutMs, float64(sensorPos), float64(pidIdx))
}

// SetControlFramePeriod sets the transmit period of a control frame.
func (c *controller) SetControlFramePeriod(frame ControlFrame, periodMs int) error {
	return c.conn.Send(canbus.OpSetControlFramePeriod, 0, float64(frame), float64(periodMs))
}

// SetStatusFramePeriod sets the transmit period of a status frame.
func (c *controller) SetStatusFramePeriod(frame StatusFrame, periodMs, timeoutMs int) error {
	return c.conn.Send(canbus.OpSetStatusFramePeriod, timeoutMs, float64(frame), float64(periodMs))
}

// StatusFramePeriod reads the transmit period of a status frame.
func (c *controller) StatusFramePeriod(frame StatusFrame, timeoutMs int) (int, error) {
	return c.queryInt(canbus.OpGetStatusFramePeriod, float64(frame), float64(timeoutMs))
}

// ConfigForwardLimitSwitchSource configures the forward limit switch from a
// remote source, e.g. the Limit-F pin of another controller.
func (c *controller) ConfigForwardLimitSwitchSource(
	limitSwitchSource RemoteLimitSwitchSource,
	normalOpenOrClose LimitSwitchNormal,
	deviceID, timeoutMs int,
) error {
	return c.conn.Send(canbus.OpConfigForwardLimitSwitchSource, timeoutMs,
		float64(limitSwitchSource), float64(normalOpenOrClose), float64(deviceID))
}

// ConfigReverseLimitSwitchSource configures the reverse limit switch from a
// remote source.
func (c *controller) ConfigReverseLimitSwitchSource(
	limitSwitchSource RemoteLimitSwitchSource,
	normalOpenOrClose LimitSwitchNormal,
	deviceID, timeoutMs int,
) error {
	return c.conn.Send(canbus.OpConfigReverseLimitSwitchSource, timeoutMs,
		float64(limitSwitchSource), float64(normalOpenOrClose), float64(deviceID))
}

// OverrideLimitSwitchesEnable enables or disables limit switch handling
// without losing the configuration.
func (c *controller) OverrideLimitSwitchesEnable(enable bool) {
	goutils.UncheckedError(c.conn.Send(canbus.OpOverrideLimitSwitchesEnable, 0, boolArg(enable)))
}

// ConfigForwardSoftLimitThreshold sets the forward soft limit in raw sensor
// units.
func (c *controller) ConfigForwardSoftLimitThreshold(forwardSensorLimit, timeoutMs int) error {
	return c.conn.Send(canbus.OpConfigForwardSoftLimitThreshold, timeoutMs, float64(forwardSensorLimit))
}

// ConfigReverseSoftLimitThreshold sets the reverse soft limit in raw sensor
// units.
func (c *controller) ConfigReverseSoftLimitThreshold(reverseSensorLimit, timeoutMs int) error {
	return c.conn.Send(canbus.OpConfigReverseSoftLimitThreshold, timeoutMs, float64(reverseSensorLimit))
}

// ConfigForwardSoftLimitEnable enables the forward soft limit.
func (c *controller) ConfigForwardSoftLimitEnable(enable bool, timeoutMs int) error {
	return c.conn.Send(canbus.OpConfigForwardSoftLimitEnable, timeoutMs, boolArg(enable))
}

// ConfigReverseSoftLimitEnable enables the reverse soft limit.
func (c *controller) ConfigReverseSoftLimitEnable(enable bool, timeoutMs int) error {
	return c.conn.Send(canbus.OpConfigReverseSoftLimitEnable, timeoutMs, boolArg(enable))
}

// OverrideSoftLimitsEnable enables or disables soft limit handling without
// losing the configuration.
func (c *controller) OverrideSoftLimitsEnable(enable bool) {
	goutils.UncheckedError(c.conn.Send(canbus.OpOverrideSoftLimitsEnable, 0, boolArg(enable)))
}

// ConfigKP sets the proportional gain of a slot.
func (c *controller) ConfigKP(slotIdx int, value float64, timeoutMs int) error {
	return c.conn.Send(canbus.OpConfigKP, timeoutMs, float64(slotIdx), value)
}

// ConfigKI sets the integral gain of a slot.
func (c *controller) ConfigKI(slotIdx int, value float64, timeoutMs int) error {
	return c.conn.Send(canbus.OpConfigKI, timeoutMs, float64(slotIdx), value)
}

// ConfigKD sets the derivative gain of a slot.
func (c *controller) ConfigKD(slotIdx int, value float64, timeoutMs int) error {
	return c.conn.Send(canbus.OpConfigKD, timeoutMs, float64(slotIdx), value)
}

// ConfigKF sets the feed-forward gain of a slot.
func (c *controller) ConfigKF(slotIdx int, value float64, timeoutMs int) error {
	return c.conn.Send(canbus.OpConfigKF, timeoutMs, float64(slotIdx), value)
}

// ConfigPIDF sets all four gains of a slot, reporting every failure.
func (c *controller) ConfigPIDF(slotIdx int, kP, kI, kD, kF float64, timeoutMs int) error {
	return multierr.Combine(
		c.ConfigKP(slotIdx, kP, timeoutMs),
		c.ConfigKI(slotIdx, kI, timeoutMs),
		c.ConfigKD(slotIdx, kD, timeoutMs),
		c.ConfigKF(slotIdx, kF, timeoutMs),
	)
}

// ConfigIntegralZone caps how far from target the integral term accumulates.
func (c *controller) ConfigIntegralZone(slotIdx, izone, timeoutMs int) error {
	return c.conn.Send(canbus.OpConfigIntegralZone, timeoutMs, float64(slotIdx), float64(izone))
}

// ConfigAllowableClosedloopError sets the error band treated as on-target.
func (c *controller) ConfigAllowableClosedloopError(slotIdx, allowableClosedLoopError, timeoutMs int) error {
	return c.conn.Send(canbus.OpConfigAllowableClosedloopError, timeoutMs,
		float64(slotIdx), float64(allowableClosedLoopError))
}

// ConfigMaxIntegralAccumulator caps the integral accumulator.
func (c *controller) ConfigMaxIntegralAccumulator(slotIdx int, iaccum float64, timeoutMs int) error {
	return c.conn.Send(canbus.OpConfigMaxIntegralAccumulator, timeoutMs, float64(slotIdx), iaccum)
}

// ConfigClosedLoopPeakOutput caps the closed-loop output of a slot.
func (c *controller) ConfigClosedLoopPeakOutput(slotIdx int, percentOut float64, timeoutMs int) error {
	return c.conn.Send(canbus.OpConfigClosedLoopPeakOutput, timeoutMs, float64(slotIdx), percentOut)
}

// ConfigClosedLoopPeriod sets the closed-loop calculation period of a slot.
func (c *controller) ConfigClosedLoopPeriod(slotIdx, loopTimeMs, timeoutMs int) error {
	return c.conn.Send(canbus.OpConfigClosedLoopPeriod, timeoutMs, float64(slotIdx), float64(loopTimeMs))
}

// ConfigAuxPIDPolarity inverts the auxiliary closed-loop output.
func (c *controller) ConfigAuxPIDPolarity(invert bool, timeoutMs int) error {
	return c.ConfigSetParameter(ParamPIDLoopPolarity, boolArg(invert), 0, 1, timeoutMs)
}

// SetIntegralAccumulator overwrites the integral accumulator.
func (c *controller) SetIntegralAccumulator(iaccum float64, pidIdx, timeoutMs int) error {
	return c.conn.Send(canbus.OpSetIntegralAccumulator, timeoutMs, iaccum, float64(pidIdx))
}

// ClosedLoopError reads the closed-loop error in raw sensor units.
func (c *controller) ClosedLoopError(pidIdx int) (int, error) {
	return c.queryInt(canbus.OpGetClosedLoopError, float64(pidIdx))
}

// IntegralAccumulator reads the integral accumulator.
func (c *controller) IntegralAccumulator(pidIdx int) (float64, error) {
	return c.conn.Query(canbus.OpGetIntegralAccumulator, float64(pidIdx))
}

// ErrorDerivative reads the derivative of the closed-loop error.
func (c *controller) ErrorDerivative(pidIdx int) (float64, error) {
	return c.conn.Query(canbus.OpGetErrorDerivative, float64(pidIdx))
}

// SelectProfileSlot selects which gain slot a closed loop uses.
func (c *controller) SelectProfileSlot(slotIdx, pidIdx int) error {
	return c.conn.Send(canbus.OpSelectProfileSlot, 0, float64(slotIdx), float64(pidIdx))
}

// ClosedLoopTarget reads the current closed-loop target.
func (c *controller) ClosedLoopTarget(pidIdx int) (int, error) {
	return c.queryInt(canbus.OpGetClosedLoopTarget, float64(pidIdx))
}

// ActiveTrajectoryPosition reads the target position of the active
// trajectory point in MotionMagic and MotionProfile modes.
func (c *controller) ActiveTrajectoryPosition() (int, error) {
	return c.queryInt(canbus.OpGetActiveTrajectoryPosition)
}

// ActiveTrajectoryVelocity reads the target velocity of the active
// trajectory point.
func (c *controller) ActiveTrajectoryVelocity() (int, error) {
	return c.queryInt(canbus.OpGetActiveTrajectoryVelocity)
}

// ActiveTrajectoryHeading reads the target heading of the active trajectory
// point.
func (c *controller) ActiveTrajectoryHeading() (float64, error) {
	return c.conn.Query(canbus.OpGetActiveTrajectoryHeading)
}

// ConfigMotionCruiseVelocity sets the peak velocity of the motion magic
// curve generator, in sensor units per 100ms.
func (c *controller) ConfigMotionCruiseVelocity(sensorUnitsPer100ms, timeoutMs int) error {
	return c.conn.Send(canbus.OpConfigMotionCruiseVelocity, timeoutMs, float64(sensorUnitsPer100ms))
}

// ConfigMotionAcceleration sets the acceleration of the motion magic curve
// generator, in sensor units per 100ms per second.
func (c *controller) ConfigMotionAcceleration(sensorUnitsPer100msPerSec, timeoutMs int) error {
	return c.conn.Send(canbus.OpConfigMotionAcceleration, timeoutMs, float64(sensorUnitsPer100msPerSec))
}

// LastError returns the most recent error the device reported, if any. Not
// every operation returns its error directly; those that do not report
// through here.
func (c *controller) LastError() error {
	v, err := c.conn.Query(canbus.OpGetLastError)
	if err != nil {
		return err
	}
	if code := canbus.ErrorCode(int32(v)); code != 0 {
		return code
	}
	return nil
}

// Faults reads and decodes the live fault field.
func (c *controller) Faults() (Faults, error) {
	raw, err := c.conn.Query(canbus.OpGetFaults)
	if err != nil {
		return Faults{}, err
	}
	return FaultsFromRaw(int32(raw)), nil
}

// StickyFaults reads and decodes the latched fault field.
func (c *controller) StickyFaults() (StickyFaults, error) {
	raw, err := c.conn.Query(canbus.OpGetStickyFaults)
	if err != nil {
		return StickyFaults{}, err
	}
	return StickyFaultsFromRaw(int32(raw)), nil
}

// ClearStickyFaults clears all latched fault flags.
func (c *controller) ClearStickyFaults(timeoutMs int) error {
	return c.conn.Send(canbus.OpClearStickyFaults, timeoutMs)
}

// FirmwareVersion reads the device firmware version; version 1.2 reads as
// 0x0102.
func (c *controller) FirmwareVersion() (int, error) {
	return c.queryInt(canbus.OpGetFirmwareVersion)
}

// HasResetOccurred reports whether the device reset since the last call.
func (c *controller) HasResetOccurred() (bool, error) {
	v, err := c.conn.Query(canbus.OpHasResetOccurred)
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

// ConfigSetCustomParam stores an arbitrary value in device flash. Useful for
// calibration data that should travel with the hardware. paramIndex is 0 or 1.
func (c *controller) ConfigSetCustomParam(newValue, paramIndex, timeoutMs int) error {
	return c.conn.Send(canbus.OpConfigSetCustomParam, timeoutMs, float64(newValue), float64(paramIndex))
}

// ConfigGetCustomParam reads back a custom parameter.
func (c *controller) ConfigGetCustomParam(paramIndex, timeoutMs int) (int, error) {
	return c.queryInt(canbus.OpConfigGetCustomParam, float64(paramIndex), float64(timeoutMs))
}

// ConfigSetParameter sets a raw parameter. Generally unused; it exists for
// new firmware features, errata workarounds, and firmware testing.
func (c *controller) ConfigSetParameter(param ParamEnum, value float64, subValue uint8, ordinal, timeoutMs int) error {
	return c.conn.Send(canbus.OpConfigSetParameter, timeoutMs,
		float64(param), value, float64(subValue), float64(ordinal))
}

// ConfigGetParameter reads a raw parameter.
func (c *controller) ConfigGetParameter(param ParamEnum, ordinal, timeoutMs int) (float64, error) {
	return c.conn.Query(canbus.OpConfigGetParameter, float64(param), float64(ordinal), float64(timeoutMs))
}

func (c *controller) queryInt(op canbus.Opcode, args ...float64) (int, error) {
	v, err := c.conn.Query(op, args...)
	if err != nil {
		return 0, err
	}
	return int(v), nil
}

// describe renders a family-prefixed identity for String implementations.
func (c *controller) describe(family string) string {
	id, err := c.DeviceID()
	if err != nil {
		id = canbus.DeviceNumber(c.arbID)
	}
	return fmt.Sprintf("%s(id=%d)", family, id)
}
