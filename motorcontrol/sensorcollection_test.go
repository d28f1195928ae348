package motorcontrol_test

import (
	"testing"

	"go.viam.com/test"

	"github.com/frc-go/phoenix/canbus"
)

func TestSensorCollectionReads(t *testing.T) {
	bus := newTestBus(t)
	talon, dev := newTestTalon(t, bus, 7)

	dev.SetSignal(canbus.OpGetQuadraturePosition, 1024)
	dev.SetSignal(canbus.OpGetQuadratureVelocity, -300)
	dev.SetSignal(canbus.OpGetAnalogIn, 512)
	dev.SetSignal(canbus.OpGetPulseWidthRiseToRiseUs, 4096)

	pos, err := talon.QuadraturePosition()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, pos, test.ShouldEqual, 1024)

	vel, err := talon.QuadratureVelocity()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, vel, test.ShouldEqual, -300)

	analog, err := talon.AnalogIn()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, analog, test.ShouldEqual, 512)

	period, err := talon.PulseWidthRiseToRiseUs()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, period, test.ShouldEqual, 4096)
}

func TestSensorCollectionSetters(t *testing.T) {
	bus := newTestBus(t)
	talon, dev := newTestTalon(t, bus, 7)

	test.That(t, talon.SetQuadraturePosition(5000, 0), test.ShouldBeNil)
	test.That(t, dev.LastSent(canbus.OpSetQuadraturePosition), test.ShouldResemble, []float64{5000})

	test.That(t, talon.SetAnalogPosition(-20, 0), test.ShouldBeNil)
	test.That(t, dev.LastSent(canbus.OpSetAnalogPosition), test.ShouldResemble, []float64{-20})

	test.That(t, talon.SetPulseWidthPosition(0, 0), test.ShouldBeNil)
	test.That(t, dev.LastSent(canbus.OpSetPulseWidthPosition), test.ShouldResemble, []float64{0})
}

func TestPinStates(t *testing.T) {
	bus := newTestBus(t)
	talon, dev := newTestTalon(t, bus, 7)

	closed, err := talon.IsFwdLimitSwitchClosed()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, closed, test.ShouldBeFalse)

	dev.SetSignal(canbus.OpIsFwdLimitSwitchClosed, 1)
	dev.SetSignal(canbus.OpGetPinStateQuadA, 1)

	closed, err = talon.IsFwdLimitSwitchClosed()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, closed, test.ShouldBeTrue)

	quadA, err := talon.PinStateQuadA()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, quadA, test.ShouldBeTrue)

	quadB, err := talon.PinStateQuadB()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, quadB, test.ShouldBeFalse)

	dev.FailWith(canbus.OpGetPinStateQuadIdx, canbus.ErrSensorNotPresent)
	_, err = talon.PinStateQuadIdx()
	test.That(t, canbus.Code(err), test.ShouldEqual, canbus.ErrSensorNotPresent)
}
