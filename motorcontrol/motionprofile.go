package motorcontrol

import (
	"github.com/frc-go/phoenix/canbus"
)

// topBufferCapacity is the nominal depth of the api-level trajectory buffer
// reported through MotionProfileStatus. Pushes past it still succeed; it only
// drives the remaining-room and is-full reporting.
const topBufferCapacity = 2048

// PushMotionProfileTrajectory appends one point to the api-level (top)
// trajectory buffer, which ProcessMotionProfileBuffer empties into the
// controller's bottom buffer as room allows. The top buffer has no hard
// capacity; a push never fails locally.
func (c *controller) PushMotionProfileTrajectory(trajPt TrajectoryPoint) error {
	c.topMu.Lock()
	c.top = append(c.top, trajPt)
	c.topMu.Unlock()
	return nil
}

// MotionProfileTopLevelBufferCount reports how many points wait in the
// api-level buffer. It performs no bus traffic, so it is safe to poll
// tightly; for everything else use MotionProfileStatus.
func (c *controller) MotionProfileTopLevelBufferCount() int {
	c.topMu.Lock()
	defer c.topMu.Unlock()
	return len(c.top)
}

// IsMotionProfileTopLevelBufferFull reports whether the api-level buffer is
// at its nominal capacity. It performs no bus traffic.
func (c *controller) IsMotionProfileTopLevelBufferFull() bool {
	c.topMu.Lock()
	defer c.topMu.Unlock()
	return len(c.top) >= topBufferCapacity
}

// ProcessMotionProfileBuffer funnels trajectory points from the api-level
// buffer into the controller's bottom buffer. This must be called
// periodically while a profile is active; call it at twice the execution
// rate of the profile, so every 10ms for 20ms trajectory points. Skipping
// calls starves the executer and eventually trips the underrun flags.
//
// Safe to call concurrently with pushes; the buffer is mutex protected.
func (c *controller) ProcessMotionProfileBuffer() {
	c.topMu.Lock()
	defer c.topMu.Unlock()
	for len(c.top) > 0 {
		err := c.conn.Send(canbus.OpPushTrajectory, 0, c.top[0].frameArgs()...)
		if err != nil {
			// Bottom buffer full or bus trouble; the point stays
			// queued for the next cycle either way.
			return
		}
		c.top = c.top[1:]
	}
}

// MotionProfileStatus snapshots the state of the motion profile executer and
// both trajectory buffers. It is cheap enough to call every control cycle
// alongside ProcessMotionProfileBuffer. The result is fully populated or the
// error is returned; never a partial fill.
func (c *controller) MotionProfileStatus() (MotionProfileStatus, error) {
	frame, err := c.conn.QueryFrame(canbus.OpMotionProfileStatus)
	if err != nil {
		return MotionProfileStatus{}, err
	}
	if len(frame) < canbus.MPStatusFrameLen {
		return MotionProfileStatus{}, canbus.ErrSigNotUpdated
	}

	c.topMu.Lock()
	topCnt := len(c.top)
	c.topMu.Unlock()

	topRem := topBufferCapacity - topCnt
	if topRem < 0 {
		topRem = 0
	}
	return MotionProfileStatus{
		TopBufferRem:       topRem,
		TopBufferCnt:       topCnt,
		BtmBufferCnt:       int(frame[canbus.MPStatusBtmBufferCnt]),
		HasUnderrun:        frame[canbus.MPStatusHasUnderrun] != 0,
		IsUnderrun:         frame[canbus.MPStatusIsUnderrun] != 0,
		ActivePointValid:   frame[canbus.MPStatusActivePointValid] != 0,
		IsLast:             frame[canbus.MPStatusIsLast] != 0,
		ProfileSlotSelect0: int(frame[canbus.MPStatusProfileSlotSelect0]),
		ProfileSlotSelect1: int(frame[canbus.MPStatusProfileSlotSelect1]),
		OutputEnable:       SetValueMotionProfile(frame[canbus.MPStatusOutputEnable]),
		TimeDurMs:          int(frame[canbus.MPStatusTimeDurMs]),
	}, nil
}

// ClearMotionProfileTrajectories empties the buffered profile in both the
// api-level buffer and controller RAM. Used to abort or reset a profile.
func (c *controller) ClearMotionProfileTrajectories() error {
	c.topMu.Lock()
	c.top = nil
	c.topMu.Unlock()
	return c.conn.Send(canbus.OpClearTrajectories, 0)
}

// ClearMotionProfileHasUnderrun clears the latched underrun flag. Call it
// after the application has observed and handled an underrun; the flag does
// not clear itself.
func (c *controller) ClearMotionProfileHasUnderrun(timeoutMs int) error {
	return c.conn.Send(canbus.OpClearHasUnderrun, timeoutMs)
}

// ChangeMotionControlFramePeriod speeds up (or slows down) the handshake
// frame that downloads trajectory points. Ideally the period is no more than
// half the duration of a trajectory point.
func (c *controller) ChangeMotionControlFramePeriod(periodMs int) error {
	return c.conn.Send(canbus.OpChangeMotionControlFramePeriod, 0, float64(periodMs))
}

// ConfigMotionProfileTrajectoryPeriod sets the base duration added to every
// trajectory point's own duration.
func (c *controller) ConfigMotionProfileTrajectoryPeriod(baseTrajDurationMs, timeoutMs int) error {
	return c.conn.Send(canbus.OpConfigMotionProfileTrajectoryPeriod, timeoutMs, float64(baseTrajDurationMs))
}
