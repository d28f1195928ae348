package motorcontrol_test

import (
	"sync"
	"testing"

	"github.com/edaniels/golog"
	"go.viam.com/test"

	"github.com/frc-go/phoenix/canbus"
	"github.com/frc-go/phoenix/canbus/fakecan"
	"github.com/frc-go/phoenix/motorcontrol"
)

func TestProcessDrainsTopIntoBoundedBottom(t *testing.T) {
	bus := fakecan.NewBus(fakecan.Config{BottomBufferCapacity: 16}, golog.NewTestLogger(t))
	talon, dev := newTestTalon(t, bus, 1)

	const pushed = 100
	for i := 0; i < pushed; i++ {
		pt := motorcontrol.TrajectoryPoint{
			Position:  float64(i),
			Velocity:  10,
			TimeDurMs: 20,
		}
		test.That(t, talon.PushMotionProfileTrajectory(pt), test.ShouldBeNil)
	}
	test.That(t, talon.MotionProfileTopLevelBufferCount(), test.ShouldEqual, pushed)

	// first process fills the bottom buffer to capacity and no further
	talon.ProcessMotionProfileBuffer()
	test.That(t, dev.BottomBufferCount(), test.ShouldEqual, 16)
	test.That(t, talon.MotionProfileTopLevelBufferCount(), test.ShouldEqual, pushed-16)

	total := 0
	for talon.MotionProfileTopLevelBufferCount() > 0 || dev.BottomBufferCount() > 0 {
		talon.ProcessMotionProfileBuffer()
		test.That(t, dev.BottomBufferCount(), test.ShouldBeLessThanOrEqualTo, 16)
		total += dev.Advance(5)
	}
	test.That(t, total, test.ShouldEqual, pushed)
}

func TestTrajectoryPointWireEncoding(t *testing.T) {
	bus := newTestBus(t)
	talon, dev := newTestTalon(t, bus, 1)

	pt := motorcontrol.TrajectoryPoint{
		Position:           4096.5,
		Velocity:           -512.25,
		AuxiliaryPos:       77,
		ProfileSlotSelect0: 2,
		ProfileSlotSelect1: 1,
		IsLastPoint:        true,
		ZeroPos:            true,
		TimeDurMs:          30,
	}
	test.That(t, talon.PushMotionProfileTrajectory(pt), test.ShouldBeNil)
	talon.ProcessMotionProfileBuffer()

	frames := dev.BottomBuffer()
	test.That(t, frames, test.ShouldHaveLength, 1)
	test.That(t, frames[0], test.ShouldResemble, []float64{4096.5, -512.25, 77, 2, 1, 1, 1, 30})
}

func TestMotionProfileStatusSnapshot(t *testing.T) {
	bus := newTestBus(t)
	talon, dev := newTestTalon(t, bus, 1)

	st, err := talon.MotionProfileStatus()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, st.TopBufferCnt, test.ShouldEqual, 0)
	test.That(t, st.BtmBufferCnt, test.ShouldEqual, 0)
	test.That(t, st.ActivePointValid, test.ShouldBeFalse)
	test.That(t, st.HasUnderrun, test.ShouldBeFalse)

	for i := 0; i < 3; i++ {
		pt := motorcontrol.TrajectoryPoint{
			Position:           float64(i),
			ProfileSlotSelect0: 1,
			ProfileSlotSelect1: 2,
			IsLastPoint:        i == 2,
			TimeDurMs:          20,
		}
		test.That(t, talon.PushMotionProfileTrajectory(pt), test.ShouldBeNil)
	}
	talon.ProcessMotionProfileBuffer()
	dev.Advance(1)

	st, err = talon.MotionProfileStatus()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, st.TopBufferCnt, test.ShouldEqual, 0)
	test.That(t, st.TopBufferRem, test.ShouldBeGreaterThan, 0)
	test.That(t, st.BtmBufferCnt, test.ShouldEqual, 2)
	test.That(t, st.ActivePointValid, test.ShouldBeTrue)
	test.That(t, st.IsLast, test.ShouldBeFalse)
	test.That(t, st.ProfileSlotSelect0, test.ShouldEqual, 1)
	test.That(t, st.ProfileSlotSelect1, test.ShouldEqual, 2)
	test.That(t, st.TimeDurMs, test.ShouldEqual, 20)
	test.That(t, st.OutputEnable, test.ShouldEqual, motorcontrol.MotionProfileEnable)

	// snapshot queries propagate transport errors whole
	dev.FailWith(canbus.OpMotionProfileStatus, canbus.ErrRxTimeout)
	_, err = talon.MotionProfileStatus()
	test.That(t, canbus.Code(err), test.ShouldEqual, canbus.ErrRxTimeout)
}

func TestUnderrunLifecycle(t *testing.T) {
	bus := newTestBus(t)
	talon, dev := newTestTalon(t, bus, 1)

	for i := 0; i < 2; i++ {
		test.That(t, talon.PushMotionProfileTrajectory(motorcontrol.TrajectoryPoint{
			Position:  float64(i),
			TimeDurMs: 20,
		}), test.ShouldBeNil)
	}
	talon.ProcessMotionProfileBuffer()

	// consume both points, then starve the executer
	dev.Advance(5)
	st, err := talon.MotionProfileStatus()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, st.HasUnderrun, test.ShouldBeTrue)
	test.That(t, st.IsUnderrun, test.ShouldBeTrue)

	// clearing the sticky flag leaves the instantaneous condition alone
	test.That(t, talon.ClearMotionProfileHasUnderrun(0), test.ShouldBeNil)
	st, err = talon.MotionProfileStatus()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, st.HasUnderrun, test.ShouldBeFalse)
	test.That(t, st.IsUnderrun, test.ShouldBeTrue)
}

func TestClearMotionProfileTrajectories(t *testing.T) {
	bus := newTestBus(t)
	talon, dev := newTestTalon(t, bus, 1)

	for i := 0; i < 40; i++ {
		test.That(t, talon.PushMotionProfileTrajectory(motorcontrol.TrajectoryPoint{
			Position: float64(i),
		}), test.ShouldBeNil)
	}
	talon.ProcessMotionProfileBuffer()
	test.That(t, dev.BottomBufferCount(), test.ShouldBeGreaterThan, 0)

	test.That(t, talon.ClearMotionProfileTrajectories(), test.ShouldBeNil)
	test.That(t, talon.MotionProfileTopLevelBufferCount(), test.ShouldEqual, 0)
	test.That(t, dev.BottomBufferCount(), test.ShouldEqual, 0)
}

func TestProcessKeepsPointOnTransportError(t *testing.T) {
	bus := newTestBus(t)
	talon, dev := newTestTalon(t, bus, 1)

	test.That(t, talon.PushMotionProfileTrajectory(motorcontrol.TrajectoryPoint{Position: 1}), test.ShouldBeNil)

	dev.FailWith(canbus.OpPushTrajectory, canbus.ErrTxFailed)
	talon.ProcessMotionProfileBuffer()
	test.That(t, talon.MotionProfileTopLevelBufferCount(), test.ShouldEqual, 1)
	test.That(t, canbus.Code(talon.LastError()), test.ShouldEqual, canbus.ErrTxFailed)

	dev.FailWith(canbus.OpPushTrajectory, 0)
	talon.ProcessMotionProfileBuffer()
	test.That(t, talon.MotionProfileTopLevelBufferCount(), test.ShouldEqual, 0)
	test.That(t, dev.BottomBufferCount(), test.ShouldEqual, 1)
}

func TestConcurrentPushAndProcess(t *testing.T) {
	bus := newTestBus(t)
	talon, dev := newTestTalon(t, bus, 1)

	const pushed = 200
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < pushed; i++ {
			test.That(t, talon.PushMotionProfileTrajectory(motorcontrol.TrajectoryPoint{
				Position: float64(i),
			}), test.ShouldBeNil)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < pushed; i++ {
			talon.ProcessMotionProfileBuffer()
			dev.Advance(2)
		}
	}()
	wg.Wait()

	total := 0
	for talon.MotionProfileTopLevelBufferCount() > 0 || dev.BottomBufferCount() > 0 {
		talon.ProcessMotionProfileBuffer()
		total += dev.Advance(5)
	}
	test.That(t, talon.MotionProfileTopLevelBufferCount(), test.ShouldEqual, 0)
}

func TestTopLevelBufferFullReporting(t *testing.T) {
	bus := newTestBus(t)
	talon, _ := newTestTalon(t, bus, 1)

	test.That(t, talon.IsMotionProfileTopLevelBufferFull(), test.ShouldBeFalse)
	for i := 0; i < 2048; i++ {
		test.That(t, talon.PushMotionProfileTrajectory(motorcontrol.TrajectoryPoint{}), test.ShouldBeNil)
	}
	test.That(t, talon.IsMotionProfileTopLevelBufferFull(), test.ShouldBeTrue)

	// pushes past the nominal capacity still succeed
	test.That(t, talon.PushMotionProfileTrajectory(motorcontrol.TrajectoryPoint{}), test.ShouldBeNil)
	test.That(t, talon.MotionProfileTopLevelBufferCount(), test.ShouldEqual, 2049)
}
