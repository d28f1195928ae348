package fakecan_test

import (
	"testing"

	"github.com/edaniels/golog"
	"go.viam.com/test"

	"github.com/frc-go/phoenix/canbus"
	"github.com/frc-go/phoenix/canbus/fakecan"
)

func TestConfigValidate(t *testing.T) {
	cfg := fakecan.Config{}
	test.That(t, cfg.Validate("path"), test.ShouldBeNil)

	cfg = fakecan.Config{BottomBufferCapacity: -1}
	err := cfg.Validate("path")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "bottom_buffer_capacity")
}

func TestReopenReconnectsToSameDevice(t *testing.T) {
	bus := fakecan.NewBus(fakecan.Config{}, golog.NewTestLogger(t))

	conn1, err := bus.Open(0x02040001)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, conn1.Send(canbus.OpSetDemand, 0, 0, 0.75, 0, 0), test.ShouldBeNil)
	test.That(t, conn1.Close(), test.ShouldBeNil)

	conn2, err := bus.Open(0x02040001)
	test.That(t, err, test.ShouldBeNil)
	defer func() {
		test.That(t, conn2.Close(), test.ShouldBeNil)
	}()

	_, demand0, _, _ := bus.Device(0x02040001).LastDemand()
	test.That(t, demand0, test.ShouldEqual, 0.75)
}

func TestOpenAfterClose(t *testing.T) {
	bus := fakecan.NewBus(fakecan.Config{}, golog.NewTestLogger(t))
	test.That(t, bus.Close(), test.ShouldBeNil)

	_, err := bus.Open(0x02040001)
	test.That(t, canbus.Code(err), test.ShouldEqual, canbus.ErrTxFailed)
}

func TestDevicesAreIsolated(t *testing.T) {
	bus := fakecan.NewBus(fakecan.Config{}, golog.NewTestLogger(t))

	conn1, err := bus.Open(0x02040001)
	test.That(t, err, test.ShouldBeNil)
	conn2, err := bus.Open(0x02040002)
	test.That(t, err, test.ShouldBeNil)

	test.That(t, conn1.Send(canbus.OpSetDemand, 0, 0, 1, 0, 0), test.ShouldBeNil)
	test.That(t, conn2.Send(canbus.OpSetDemand, 0, 0, -1, 0, 0), test.ShouldBeNil)

	_, demand1, _, _ := bus.Device(0x02040001).LastDemand()
	_, demand2, _, _ := bus.Device(0x02040002).LastDemand()
	test.That(t, demand1, test.ShouldEqual, 1)
	test.That(t, demand2, test.ShouldEqual, -1)
}

func TestQueryFrameUnsupportedOpcode(t *testing.T) {
	bus := fakecan.NewBus(fakecan.Config{}, golog.NewTestLogger(t))
	conn, err := bus.Open(0x02040001)
	test.That(t, err, test.ShouldBeNil)

	_, err = conn.QueryFrame(canbus.OpGetFaults)
	test.That(t, canbus.Code(err), test.ShouldEqual, canbus.ErrFeatureNotSupported)
}
