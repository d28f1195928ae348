package motorcontrol_test

import (
	"fmt"
	"testing"

	"github.com/edaniels/golog"
	"go.viam.com/test"

	"github.com/frc-go/phoenix/canbus"
	"github.com/frc-go/phoenix/canbus/fakecan"
	"github.com/frc-go/phoenix/motorcontrol"
)

func newTestBus(t *testing.T) *fakecan.Bus {
	t.Helper()
	return fakecan.NewBus(fakecan.Config{}, golog.NewTestLogger(t))
}

func newTestTalon(t *testing.T, bus *fakecan.Bus, number int) (*motorcontrol.TalonSRX, *fakecan.Device) {
	t.Helper()
	talon, err := motorcontrol.NewTalonSRX(number, bus, golog.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	return talon, bus.Device(talon.BaseID())
}

func newTestVictor(t *testing.T, bus *fakecan.Bus, number int) (*motorcontrol.VictorSPX, *fakecan.Device) {
	t.Helper()
	victor, err := motorcontrol.NewVictorSPX(number, bus, golog.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	return victor, bus.Device(victor.BaseID())
}

func TestSetPassthroughModes(t *testing.T) {
	bus := newTestBus(t)
	talon, dev := newTestTalon(t, bus, 3)

	for _, mode := range []motorcontrol.ControlMode{
		motorcontrol.PercentOutput,
		motorcontrol.Position,
		motorcontrol.Velocity,
		motorcontrol.MotionMagic,
		motorcontrol.MotionProfile,
		motorcontrol.MotionProfileArc,
	} {
		t.Run(mode.String(), func(t *testing.T) {
			talon.Set(mode, 0.25, motorcontrol.DemandTypeArbitraryFeedForward, -0.1)
			gotMode, d0, d1, d1Type := dev.LastDemand()
			test.That(t, gotMode, test.ShouldEqual, int(mode))
			test.That(t, d0, test.ShouldEqual, 0.25)
			test.That(t, d1, test.ShouldEqual, -0.1)
			test.That(t, d1Type, test.ShouldEqual, int(motorcontrol.DemandTypeArbitraryFeedForward))
		})
	}
}

func TestSetCurrentScalesToMilliamps(t *testing.T) {
	bus := newTestBus(t)
	talon, dev := newTestTalon(t, bus, 3)

	for _, amps := range []float64{0, 1.5, -2.25, 39.6} {
		t.Run(fmt.Sprintf("%v amps", amps), func(t *testing.T) {
			talon.Set(motorcontrol.Current, amps, motorcontrol.DemandTypeAuxPID, 5)
			mode, d0, d1, d1Type := dev.LastDemand()
			test.That(t, mode, test.ShouldEqual, int(motorcontrol.Current))
			test.That(t, d0, test.ShouldEqual, 1000.0*amps)
			// supplemental demand is dropped in current mode
			test.That(t, d1, test.ShouldEqual, 0.0)
			test.That(t, d1Type, test.ShouldEqual, int(motorcontrol.DemandTypeNeutral))
		})
	}
}

func TestSetDisabledForcesZeroDemand(t *testing.T) {
	bus := newTestBus(t)
	talon, dev := newTestTalon(t, bus, 3)

	talon.Set(motorcontrol.Disabled, 0.9, motorcontrol.DemandTypeArbitraryFeedForward, 0.4)
	mode, d0, d1, _ := dev.LastDemand()
	test.That(t, mode, test.ShouldEqual, int(motorcontrol.Disabled))
	test.That(t, d0, test.ShouldEqual, 0.0)
	test.That(t, d1, test.ShouldEqual, 0.0)

	talon.Set(motorcontrol.PercentOutput, 0.5, motorcontrol.DemandTypeNeutral, 0)
	talon.NeutralOutput()
	mode, d0, d1, _ = dev.LastDemand()
	test.That(t, mode, test.ShouldEqual, int(motorcontrol.Disabled))
	test.That(t, d0, test.ShouldEqual, 0.0)
	test.That(t, d1, test.ShouldEqual, 0.0)
}

func TestSetFollowerDeviceNumber(t *testing.T) {
	bus := newTestBus(t)

	// the encoded value depends only on the caller's family bits and the
	// target number, not on the caller's own device number
	talonA, devA := newTestTalon(t, bus, 5)
	talonB, devB := newTestTalon(t, bus, 20)

	talonA.Set(motorcontrol.Follower, 7, motorcontrol.DemandTypeNeutral, 0)
	talonB.Set(motorcontrol.Follower, 7, motorcontrol.DemandTypeNeutral, 0)

	want := float64(((talonA.BaseID() >> 16) << 8) | 7)
	_, d0A, _, _ := devA.LastDemand()
	_, d0B, _, _ := devB.LastDemand()
	test.That(t, d0A, test.ShouldEqual, want)
	test.That(t, d0B, test.ShouldEqual, want)
}

func TestSetFollowerCompositePassthrough(t *testing.T) {
	bus := newTestBus(t)
	talon, dev := newTestTalon(t, bus, 5)

	// values beyond 62 are treated as precomputed composite IDs
	talon.Set(motorcontrol.Follower, 131079, motorcontrol.DemandTypeNeutral, 0)
	_, d0, _, _ := dev.LastDemand()
	test.That(t, d0, test.ShouldEqual, 131079.0)
}

func TestFollow(t *testing.T) {
	bus := newTestBus(t)
	master, _ := newTestTalon(t, bus, 9)
	followerTalon, devT := newTestTalon(t, bus, 10)
	followerVictor, devV := newTestVictor(t, bus, 11)

	wantID := float64(((master.BaseID() >> 16) << 8) | (master.BaseID() & 0xFF))

	followerTalon.Follow(master, motorcontrol.FollowerPercentOutput)
	mode, d0, _, d1Type := devT.LastDemand()
	test.That(t, mode, test.ShouldEqual, int(motorcontrol.Follower))
	test.That(t, d0, test.ShouldEqual, wantID)
	test.That(t, d1Type, test.ShouldEqual, int(motorcontrol.DemandTypeNeutral))

	// cross-family follow keeps the master's family tag
	followerVictor.Follow(master, motorcontrol.FollowerAuxOutput1)
	mode, d0, _, d1Type = devV.LastDemand()
	test.That(t, mode, test.ShouldEqual, int(motorcontrol.Follower))
	test.That(t, d0, test.ShouldEqual, wantID)
	test.That(t, d1Type, test.ShouldEqual, int(motorcontrol.DemandTypeAuxPID))
}

func TestDeviceIdentity(t *testing.T) {
	bus := newTestBus(t)
	talon, _ := newTestTalon(t, bus, 9)
	victor, _ := newTestVictor(t, bus, 9)

	test.That(t, talon.BaseID(), test.ShouldEqual, motorcontrol.TalonSRXFamilyTag|9)
	test.That(t, victor.BaseID(), test.ShouldEqual, motorcontrol.VictorSPXFamilyTag|9)

	id, err := talon.DeviceID()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, id, test.ShouldEqual, 9)

	test.That(t, talon.String(), test.ShouldEqual, "TalonSRX(id=9)")
	test.That(t, victor.String(), test.ShouldEqual, "VictorSPX(id=9)")
}

func TestEqual(t *testing.T) {
	bus := newTestBus(t)
	talonA, _ := newTestTalon(t, bus, 4)
	talonB, _ := newTestTalon(t, bus, 4)
	talonC, _ := newTestTalon(t, bus, 6)

	test.That(t, motorcontrol.Equal(talonA, talonB), test.ShouldBeTrue)
	test.That(t, motorcontrol.Equal(talonA, talonC), test.ShouldBeFalse)

	bus.Device(talonC.BaseID()).FailWith(canbus.OpGetDeviceNumber, canbus.ErrRxTimeout)
	test.That(t, motorcontrol.Equal(talonA, talonC), test.ShouldBeFalse)
}

func TestLastError(t *testing.T) {
	bus := newTestBus(t)
	talon, dev := newTestTalon(t, bus, 3)

	test.That(t, talon.LastError(), test.ShouldBeNil)

	dev.FailWith(canbus.OpSetDemand, canbus.ErrTxFailed)
	talon.Set(motorcontrol.PercentOutput, 0.5, motorcontrol.DemandTypeNeutral, 0)
	test.That(t, canbus.Code(talon.LastError()), test.ShouldEqual, canbus.ErrTxFailed)
}
