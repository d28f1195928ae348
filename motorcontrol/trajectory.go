package motorcontrol

// TrajectoryPoint is one waypoint of a motion profile. Points are created by
// the application, pushed into the top-level buffer, and streamed down to the
// controller as room allows.
type TrajectoryPoint struct {
	// Position in raw sensor units.
	Position float64
	// Velocity in raw sensor units per 100ms.
	Velocity float64
	// AuxiliaryPos is the target of the auxiliary closed loop, for
	// dual-loop modes.
	AuxiliaryPos float64
	// ProfileSlotSelect0 chooses the gain slot of the primary loop.
	ProfileSlotSelect0 int
	// ProfileSlotSelect1 chooses the gain slot of the auxiliary loop.
	ProfileSlotSelect1 int
	// IsLastPoint marks the final point of the profile; the executer holds
	// it once reached.
	IsLastPoint bool
	// ZeroPos zeroes the sensor position when this point becomes active.
	ZeroPos bool
	// TimeDurMs is the per-point duration, summed with the base trajectory
	// period configured on the device.
	TimeDurMs int
}

// frameArgs flattens the point into the OpPushTrajectory wire layout.
func (p TrajectoryPoint) frameArgs() []float64 {
	return []float64{
		p.Position,
		p.Velocity,
		p.AuxiliaryPos,
		float64(p.ProfileSlotSelect0),
		float64(p.ProfileSlotSelect1),
		boolArg(p.IsLastPoint),
		boolArg(p.ZeroPos),
		float64(p.TimeDurMs),
	}
}

func boolArg(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// MotionProfileStatus is a snapshot of the motion profile executer and both
// trajectory buffers. It is recomputed fresh on every query, never cached.
type MotionProfileStatus struct {
	// TopBufferRem is the remaining room in the api-level buffer.
	TopBufferRem int
	// TopBufferCnt is the number of points waiting in the api-level buffer.
	TopBufferCnt int
	// BtmBufferCnt is the number of points buffered in controller RAM.
	BtmBufferCnt int
	// HasUnderrun latches when the executer starves; it stays set until
	// ClearMotionProfileHasUnderrun.
	HasUnderrun bool
	// IsUnderrun reports the executer is starved right now. It clears
	// itself as soon as another point is available.
	IsUnderrun bool
	// ActivePointValid reports whether the executer currently holds a point.
	ActivePointValid bool
	// IsLast reports the active point is the final point of the profile.
	IsLast bool
	// ProfileSlotSelect0 is the primary gain slot of the active point.
	ProfileSlotSelect0 int
	// ProfileSlotSelect1 is the auxiliary gain slot of the active point.
	ProfileSlotSelect1 int
	// OutputEnable is the executer's output state.
	OutputEnable SetValueMotionProfile
	// TimeDurMs is the duration of the active point.
	TimeDurMs int
}
