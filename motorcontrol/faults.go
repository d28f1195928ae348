package motorcontrol

// Faults is a decoded snapshot of the live fault field of a controller. Each
// accessor tests a single bit of the copied raw value; decoding never fails
// and unassigned bits are inert.
type Faults struct {
	raw int32
}

// FaultsFromRaw wraps a raw fault field as read off the wire.
func FaultsFromRaw(raw int32) Faults {
	return Faults{raw: raw}
}

// Raw returns the undecoded fault field.
func (f Faults) Raw() int32 { return f.raw }

// UnderVoltage reports a bus voltage below the operating minimum.
func (f Faults) UnderVoltage() bool { return f.raw&(1<<0) != 0 }

// ForwardLimitSwitch reports the forward limit switch is asserted.
func (f Faults) ForwardLimitSwitch() bool { return f.raw&(1<<1) != 0 }

// ReverseLimitSwitch reports the reverse limit switch is asserted.
func (f Faults) ReverseLimitSwitch() bool { return f.raw&(1<<2) != 0 }

// ForwardSoftLimit reports the forward soft limit is exceeded.
func (f Faults) ForwardSoftLimit() bool { return f.raw&(1<<3) != 0 }

// ReverseSoftLimit reports the reverse soft limit is exceeded.
func (f Faults) ReverseSoftLimit() bool { return f.raw&(1<<4) != 0 }

// HardwareFailure reports a hardware fault in the power stage. This condition
// has no sticky counterpart.
func (f Faults) HardwareFailure() bool { return f.raw&(1<<5) != 0 }

// ResetDuringEn reports the device reset while output was enabled.
func (f Faults) ResetDuringEn() bool { return f.raw&(1<<6) != 0 }

// SensorOverflow reports the selected sensor overflowed its counter.
func (f Faults) SensorOverflow() bool { return f.raw&(1<<7) != 0 }

// SensorOutOfPhase reports the selected sensor moves opposite the output.
func (f Faults) SensorOutOfPhase() bool { return f.raw&(1<<8) != 0 }

// HardwareESDReset reports the device reset due to an ESD event.
func (f Faults) HardwareESDReset() bool { return f.raw&(1<<9) != 0 }

// RemoteLossOfSignal reports a remote sensor or limit source went stale.
func (f Faults) RemoteLossOfSignal() bool { return f.raw&(1<<10) != 0 }

// Any reports whether any fault bit is set, including bits with no named
// accessor.
func (f Faults) Any() bool { return f.raw != 0 }

// StickyFaults is a decoded snapshot of the sticky fault field. Sticky flags
// latch when their condition occurs and persist until explicitly cleared with
// ClearStickyFaults.
//
// The bit layout is one position tighter than Faults from ResetDuringEn on:
// hardware failure has no sticky form, so everything above it shifts down a
// bit. This asymmetry matches the firmware and is deliberate.
type StickyFaults struct {
	raw int32
}

// StickyFaultsFromRaw wraps a raw sticky fault field as read off the wire.
func StickyFaultsFromRaw(raw int32) StickyFaults {
	return StickyFaults{raw: raw}
}

// Raw returns the undecoded sticky fault field.
func (f StickyFaults) Raw() int32 { return f.raw }

// UnderVoltage reports a latched under-voltage condition.
func (f StickyFaults) UnderVoltage() bool { return f.raw&(1<<0) != 0 }

// ForwardLimitSwitch reports a latched forward limit switch assertion.
func (f StickyFaults) ForwardLimitSwitch() bool { return f.raw&(1<<1) != 0 }

// ReverseLimitSwitch reports a latched reverse limit switch assertion.
func (f StickyFaults) ReverseLimitSwitch() bool { return f.raw&(1<<2) != 0 }

// ForwardSoftLimit reports a latched forward soft limit trip.
func (f StickyFaults) ForwardSoftLimit() bool { return f.raw&(1<<3) != 0 }

// ReverseSoftLimit reports a latched reverse soft limit trip.
func (f StickyFaults) ReverseSoftLimit() bool { return f.raw&(1<<4) != 0 }

// ResetDuringEn reports a latched reset-while-enabled condition.
func (f StickyFaults) ResetDuringEn() bool { return f.raw&(1<<5) != 0 }

// SensorOverflow reports a latched sensor counter overflow.
func (f StickyFaults) SensorOverflow() bool { return f.raw&(1<<6) != 0 }

// SensorOutOfPhase reports a latched sensor phase fault.
func (f StickyFaults) SensorOutOfPhase() bool { return f.raw&(1<<7) != 0 }

// HardwareESDReset reports a latched ESD reset.
func (f StickyFaults) HardwareESDReset() bool { return f.raw&(1<<8) != 0 }

// RemoteLossOfSignal reports a latched remote signal loss.
func (f StickyFaults) RemoteLossOfSignal() bool { return f.raw&(1<<9) != 0 }

// Any reports whether any sticky fault bit is set, including bits with no
// named accessor.
func (f StickyFaults) Any() bool { return f.raw != 0 }
