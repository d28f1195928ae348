package motorcontrol

// ControlMode selects the output mode of a motor controller and fixes the
// unit semantics of the demand values passed to Set.
type ControlMode int

// Control modes.
const (
	PercentOutput    ControlMode = 0
	Position         ControlMode = 1
	Velocity         ControlMode = 2
	Current          ControlMode = 3
	Follower         ControlMode = 5
	MotionProfile    ControlMode = 6
	MotionMagic      ControlMode = 7
	MotionProfileArc ControlMode = 10
	Disabled         ControlMode = 15
)

func (m ControlMode) String() string {
	switch m {
	case PercentOutput:
		return "PercentOutput"
	case Position:
		return "Position"
	case Velocity:
		return "Velocity"
	case Current:
		return "Current"
	case Follower:
		return "Follower"
	case MotionProfile:
		return "MotionProfile"
	case MotionMagic:
		return "MotionMagic"
	case MotionProfileArc:
		return "MotionProfileArc"
	case Disabled:
		return "Disabled"
	}
	return "Unknown"
}

// DemandType describes how the secondary demand value is applied.
type DemandType int

// Demand types.
const (
	// DemandTypeNeutral ignores the secondary demand value.
	DemandTypeNeutral DemandType = 0
	// DemandTypeAuxPID feeds the secondary value to the auxiliary closed loop.
	DemandTypeAuxPID DemandType = 1
	// DemandTypeArbitraryFeedForward adds the secondary value to the primary
	// output directly.
	DemandTypeArbitraryFeedForward DemandType = 2
)

// FollowerType selects which output channel of a master a follower mirrors.
type FollowerType int

// Follower types.
const (
	FollowerPercentOutput FollowerType = 0
	FollowerAuxOutput1    FollowerType = 1
)

// NeutralMode is the behavior of the h-bridge during neutral throttle.
type NeutralMode int

// Neutral modes.
const (
	NeutralModeEEPROMSetting NeutralMode = 0
	NeutralModeCoast         NeutralMode = 1
	NeutralModeBrake         NeutralMode = 2
)

// FeedbackDevice is a sensor source wired directly to a controller.
type FeedbackDevice int

// Feedback devices.
const (
	FeedbackQuadEncoder               FeedbackDevice = 0
	FeedbackAnalog                    FeedbackDevice = 2
	FeedbackTachometer                FeedbackDevice = 4
	FeedbackPulseWidthEncodedPosition FeedbackDevice = 8
	FeedbackSensorSum                 FeedbackDevice = 9
	FeedbackSensorDifference          FeedbackDevice = 10
	FeedbackRemoteSensor0             FeedbackDevice = 11
	FeedbackRemoteSensor1             FeedbackDevice = 12
	FeedbackSoftwareEmulatedSensor    FeedbackDevice = 15

	// Mag encoder aliases.
	FeedbackCTREMagEncoderAbsolute FeedbackDevice = 8
	FeedbackCTREMagEncoderRelative FeedbackDevice = 0
)

// RemoteFeedbackDevice is a sensor source observed over the bus.
type RemoteFeedbackDevice int

// Remote feedback devices.
const (
	RemoteFeedbackNone                   RemoteFeedbackDevice = 0
	RemoteFeedbackSensorSum              RemoteFeedbackDevice = 9
	RemoteFeedbackSensorDifference       RemoteFeedbackDevice = 10
	RemoteFeedbackRemoteSensor0          RemoteFeedbackDevice = 11
	RemoteFeedbackRemoteSensor1          RemoteFeedbackDevice = 12
	RemoteFeedbackSoftwareEmulatedSensor RemoteFeedbackDevice = 15
)

// RemoteSensorSource selects which signal of a remote device feeds a remote
// sensor slot.
type RemoteSensorSource int

// Remote sensor sources.
const (
	RemoteSensorOff                  RemoteSensorSource = 0
	RemoteSensorTalonSRXSelected     RemoteSensorSource = 1
	RemoteSensorPigeonYaw            RemoteSensorSource = 2
	RemoteSensorPigeonPitch          RemoteSensorSource = 3
	RemoteSensorPigeonRoll           RemoteSensorSource = 4
	RemoteSensorCANifierQuadrature   RemoteSensorSource = 5
	RemoteSensorCANifierPWMInput0    RemoteSensorSource = 6
	RemoteSensorCANifierPWMInput1    RemoteSensorSource = 7
	RemoteSensorCANifierPWMInput2    RemoteSensorSource = 8
	RemoteSensorCANifierPWMInput3    RemoteSensorSource = 9
	RemoteSensorGadgeteerPigeonYaw   RemoteSensorSource = 10
	RemoteSensorGadgeteerPigeonPitch RemoteSensorSource = 11
	RemoteSensorGadgeteerPigeonRoll  RemoteSensorSource = 12
)

// SensorTerm addresses one operand of the sensor sum/difference virtual
// sensors.
type SensorTerm int

// Sensor terms.
const (
	SensorTermSum0  SensorTerm = 0
	SensorTermSum1  SensorTerm = 1
	SensorTermDiff0 SensorTerm = 2
	SensorTermDiff1 SensorTerm = 3
)

// LimitSwitchSource is a local or remote limit switch input.
type LimitSwitchSource int

// Limit switch sources.
const (
	LimitSwitchFeedbackConnector LimitSwitchSource = 0
	LimitSwitchRemoteTalonSRX    LimitSwitchSource = 1
	LimitSwitchRemoteCANifier    LimitSwitchSource = 2
	LimitSwitchDeactivated       LimitSwitchSource = 3
)

// RemoteLimitSwitchSource is a limit switch input observed over the bus.
type RemoteLimitSwitchSource int

// Remote limit switch sources.
const (
	RemoteLimitSwitchRemoteTalonSRX RemoteLimitSwitchSource = 1
	RemoteLimitSwitchRemoteCANifier RemoteLimitSwitchSource = 2
	RemoteLimitSwitchDeactivated    RemoteLimitSwitchSource = 3
)

// LimitSwitchNormal is the wiring convention of a limit switch.
type LimitSwitchNormal int

// Limit switch normal settings.
const (
	LimitSwitchNormallyOpen   LimitSwitchNormal = 0
	LimitSwitchNormallyClosed LimitSwitchNormal = 1
	LimitSwitchDisabled       LimitSwitchNormal = 2
)

// VelocityMeasPeriod is the sampling period of the velocity filter, in ms.
type VelocityMeasPeriod int

// Velocity measurement periods.
const (
	VelocityMeasPeriod1Ms   VelocityMeasPeriod = 1
	VelocityMeasPeriod2Ms   VelocityMeasPeriod = 2
	VelocityMeasPeriod5Ms   VelocityMeasPeriod = 5
	VelocityMeasPeriod10Ms  VelocityMeasPeriod = 10
	VelocityMeasPeriod20Ms  VelocityMeasPeriod = 20
	VelocityMeasPeriod25Ms  VelocityMeasPeriod = 25
	VelocityMeasPeriod50Ms  VelocityMeasPeriod = 50
	VelocityMeasPeriod100Ms VelocityMeasPeriod = 100
)

// ControlFrame identifies a periodic control frame common to both families.
type ControlFrame int

// Control frames.
const (
	Control3General             ControlFrame = 0x040080
	Control4Advanced            ControlFrame = 0x0400C0
	Control6MotProfAddTrajPoint ControlFrame = 0x040140
)

// ControlFrameEnhanced identifies a periodic control frame on controllers
// with a feedback connector.
type ControlFrameEnhanced int

// Enhanced control frames.
const (
	ControlEnhanced3General                ControlFrameEnhanced = 0x040080
	ControlEnhanced4Advanced               ControlFrameEnhanced = 0x0400C0
	ControlEnhanced5FeedbackOutputOverride ControlFrameEnhanced = 0x040100
	ControlEnhanced6MotProfAddTrajPoint    ControlFrameEnhanced = 0x040140
)

// StatusFrame identifies a periodic status frame common to both families.
type StatusFrame int

// Status frames.
const (
	Status1General       StatusFrame = 0x1400
	Status2Feedback0     StatusFrame = 0x1440
	Status4AinTempVbat   StatusFrame = 0x14C0
	Status6Misc          StatusFrame = 0x1540
	Status7CommStatus    StatusFrame = 0x1580
	Status9MotProfBuffer StatusFrame = 0x1600
	Status10MotionMagic  StatusFrame = 0x1640
	Status12Feedback1    StatusFrame = 0x16C0
	Status13BasePIDF0    StatusFrame = 0x1700
	Status14TurnPIDF1    StatusFrame = 0x1740
	Status15FirmwareAPI  StatusFrame = 0x1780
)

// StatusFrameEnhanced identifies a periodic status frame on controllers with
// a feedback connector.
type StatusFrameEnhanced int

// Enhanced status frames.
const (
	StatusEnhanced1General       StatusFrameEnhanced = 0x1400
	StatusEnhanced2Feedback0     StatusFrameEnhanced = 0x1440
	StatusEnhanced3Quadrature    StatusFrameEnhanced = 0x1480
	StatusEnhanced4AinTempVbat   StatusFrameEnhanced = 0x14C0
	StatusEnhanced6Misc          StatusFrameEnhanced = 0x1540
	StatusEnhanced7CommStatus    StatusFrameEnhanced = 0x1580
	StatusEnhanced8PulseWidth    StatusFrameEnhanced = 0x15C0
	StatusEnhanced9MotProfBuffer StatusFrameEnhanced = 0x1600
	StatusEnhanced10MotionMagic  StatusFrameEnhanced = 0x1640
	StatusEnhanced11UART         StatusFrameEnhanced = 0x1680
	StatusEnhanced12Feedback1    StatusFrameEnhanced = 0x16C0
	StatusEnhanced13BasePIDF0    StatusFrameEnhanced = 0x1700
	StatusEnhanced14TurnPIDF1    StatusFrameEnhanced = 0x1740
	StatusEnhanced15FirmwareAPI  StatusFrameEnhanced = 0x1780
)

// SetValueMotionProfile is the output-enable state of the motion profile
// executer.
type SetValueMotionProfile int

// Motion profile output-enable states.
const (
	MotionProfileInvalid SetValueMotionProfile = -1
	MotionProfileDisable SetValueMotionProfile = 0
	MotionProfileEnable  SetValueMotionProfile = 1
	MotionProfileHold    SetValueMotionProfile = 2
)

// ParamEnum addresses one scalar tuning value in device flash.
type ParamEnum int

// Parameters used by the configuration surface. The numbering follows the
// firmware parameter table.
const (
	ParamOpenloopRamp                  ParamEnum = 297
	ParamClosedloopRamp                ParamEnum = 298
	ParamNeutralDeadband               ParamEnum = 299
	ParamPeakPosOutput                 ParamEnum = 305
	ParamNominalPosOutput              ParamEnum = 306
	ParamPeakNegOutput                 ParamEnum = 307
	ParamNominalNegOutput              ParamEnum = 308
	ParamProfileParamSlotP             ParamEnum = 310
	ParamProfileParamSlotI             ParamEnum = 311
	ParamProfileParamSlotD             ParamEnum = 312
	ParamProfileParamSlotF             ParamEnum = 313
	ParamProfileParamSlotIZone         ParamEnum = 314
	ParamProfileParamSlotAllowableErr  ParamEnum = 315
	ParamProfileParamSlotMaxIAccum     ParamEnum = 316
	ParamProfileParamSlotPeakOutput    ParamEnum = 317
	ParamSampleVelocityPeriod          ParamEnum = 325
	ParamSampleVelocityWindow          ParamEnum = 326
	ParamFeedbackSensorType            ParamEnum = 330
	ParamSelectedSensorPosition        ParamEnum = 331
	ParamRemoteSensorSource            ParamEnum = 333
	ParamRemoteSensorDeviceID          ParamEnum = 334
	ParamSensorTerm                    ParamEnum = 335
	ParamPIDLoopPolarity               ParamEnum = 337
	ParamPIDLoopPeriod                 ParamEnum = 338
	ParamSelectedSensorCoefficient     ParamEnum = 339
	ParamForwardSoftLimitThreshold     ParamEnum = 340
	ParamReverseSoftLimitThreshold     ParamEnum = 341
	ParamForwardSoftLimitEnable        ParamEnum = 342
	ParamReverseSoftLimitEnable        ParamEnum = 343
	ParamNominalBatteryVoltage         ParamEnum = 350
	ParamBatteryVoltageFilterSize      ParamEnum = 351
	ParamContinuousCurrentLimitAmps    ParamEnum = 360
	ParamPeakCurrentLimitMs            ParamEnum = 361
	ParamPeakCurrentLimitAmps          ParamEnum = 362
	ParamCustomParam                   ParamEnum = 370
	ParamStickyFaults                  ParamEnum = 390
	ParamAnalogPosition                ParamEnum = 400
	ParamQuadraturePosition            ParamEnum = 401
	ParamPulseWidthPosition            ParamEnum = 402
	ParamMotMagAccel                   ParamEnum = 410
	ParamMotMagVelCruise               ParamEnum = 411
	ParamLimitSwitchSource             ParamEnum = 421
	ParamLimitSwitchNormal             ParamEnum = 422
	ParamLimitSwitchRemoteDevID        ParamEnum = 424
	ParamMotionProfileTrajectoryPeriod ParamEnum = 430
)
