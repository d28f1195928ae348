package canbus

// Opcode identifies one request or query understood by motor controller
// firmware. Argument layouts are flat float64 slices; integral arguments are
// carried as their exact float64 representation (all values fit well inside
// the 53-bit integral range of a double).
type Opcode uint16

// Control and output ops.
const (
	// OpSetDemand args: mode, demand0, demand1, demand1Type.
	OpSetDemand Opcode = iota + 1
	OpSetNeutralMode
	OpSetSensorPhase
	OpSetInverted
	OpSetControlFramePeriod
	OpSetStatusFramePeriod
	OpGetStatusFramePeriod
)

// Configuration ops. Unless noted, args are the setter's values in declaration
// order; the confirmation timeout travels in Send's timeoutMs, not in args.
const (
	OpConfigOpenLoopRamp Opcode = iota + 0x20
	OpConfigClosedLoopRamp
	OpConfigPeakOutputForward
	OpConfigPeakOutputReverse
	OpConfigNominalOutputForward
	OpConfigNominalOutputReverse
	OpConfigNeutralDeadband
	OpConfigVoltageCompSaturation
	OpConfigVoltageMeasurementFilter
	OpEnableVoltageCompensation
	OpConfigSelectedFeedbackSensor
	OpConfigSelectedFeedbackCoefficient
	OpConfigRemoteFeedbackFilter
	OpConfigSensorTerm
	OpSetSelectedSensorPosition
	OpConfigForwardLimitSwitchSource
	OpConfigReverseLimitSwitchSource
	OpOverrideLimitSwitchesEnable
	OpConfigForwardSoftLimitThreshold
	OpConfigReverseSoftLimitThreshold
	OpConfigForwardSoftLimitEnable
	OpConfigReverseSoftLimitEnable
	OpOverrideSoftLimitsEnable
	OpConfigKP
	OpConfigKI
	OpConfigKD
	OpConfigKF
	OpConfigIntegralZone
	OpConfigAllowableClosedloopError
	OpConfigMaxIntegralAccumulator
	OpConfigClosedLoopPeakOutput
	OpConfigClosedLoopPeriod
	OpSetIntegralAccumulator
	OpSelectProfileSlot
	OpConfigMotionCruiseVelocity
	OpConfigMotionAcceleration
	OpChangeMotionControlFramePeriod
	OpConfigMotionProfileTrajectoryPeriod
	// OpConfigSetParameter args: param, value, subValue, ordinal.
	OpConfigSetParameter
	OpConfigSetCustomParam
	OpClearStickyFaults
	OpConfigVelocityMeasurementPeriod
	OpConfigVelocityMeasurementWindow
	OpConfigPeakCurrentLimit
	OpConfigPeakCurrentDuration
	OpConfigContinuousCurrentLimit
	OpEnableCurrentLimit
)

// Query ops.
const (
	OpGetDeviceNumber Opcode = iota + 0x60
	OpGetBusVoltage
	OpGetMotorOutputPercent
	OpGetOutputCurrent
	OpGetTemperature
	OpGetSelectedSensorPosition
	OpGetSelectedSensorVelocity
	OpGetClosedLoopError
	OpGetIntegralAccumulator
	OpGetErrorDerivative
	OpGetClosedLoopTarget
	OpGetActiveTrajectoryPosition
	OpGetActiveTrajectoryVelocity
	OpGetActiveTrajectoryHeading
	OpGetLastError
	OpGetFaults
	OpGetStickyFaults
	OpGetFirmwareVersion
	OpHasResetOccurred
	// OpConfigGetParameter args: param, ordinal, timeoutMs.
	OpConfigGetParameter
	OpConfigGetCustomParam
)

// Sensor collection ops (Talon SRX feedback connector).
const (
	OpGetAnalogIn Opcode = iota + 0x80
	OpSetAnalogPosition
	OpGetAnalogInRaw
	OpGetAnalogInVel
	OpGetQuadraturePosition
	OpSetQuadraturePosition
	OpGetQuadratureVelocity
	OpGetPulseWidthPosition
	OpSetPulseWidthPosition
	OpGetPulseWidthVelocity
	OpGetPulseWidthRiseToFallUs
	OpGetPulseWidthRiseToRiseUs
	OpGetPinStateQuadA
	OpGetPinStateQuadB
	OpGetPinStateQuadIdx
	OpIsFwdLimitSwitchClosed
	OpIsRevLimitSwitchClosed
)

// Motion profile ops.
const (
	// OpPushTrajectory args: position, velocity, auxiliaryPos,
	// profileSlotSelect0, profileSlotSelect1, isLastPoint, zeroPos,
	// timeDurMs. Returns ErrBufferFull when the device-side buffer has no
	// room for another point.
	OpPushTrajectory Opcode = iota + 0xA0
	OpClearTrajectories
	OpClearHasUnderrun
	// OpMotionProfileStatus is a QueryFrame op; the reply layout is
	// btmBufferCnt, hasUnderrun, isUnderrun, activePointValid, isLast,
	// profileSlotSelect0, outputEnable, timeDurMs, profileSlotSelect1.
	OpMotionProfileStatus
)

// Field indexes into the OpMotionProfileStatus reply frame.
const (
	MPStatusBtmBufferCnt = iota
	MPStatusHasUnderrun
	MPStatusIsUnderrun
	MPStatusActivePointValid
	MPStatusIsLast
	MPStatusProfileSlotSelect0
	MPStatusOutputEnable
	MPStatusTimeDurMs
	MPStatusProfileSlotSelect1
	mpStatusFrameLen
)

// MPStatusFrameLen is the number of values in an OpMotionProfileStatus reply.
const MPStatusFrameLen = mpStatusFrameLen
