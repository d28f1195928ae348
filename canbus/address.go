package canbus

// Arbitration IDs combine a device family tag in the upper bits with a 6-bit
// device number (0-62) in the low bits. The family tag carries the device
// class and manufacturer fields of the CAN arbitration scheme; this package
// treats it as opaque.
const deviceNumberMask = 0x3F

// ArbitrationID composes a device address from a family tag and device
// number. The device number is not range checked here; out-of-range numbers
// are rejected by the device, not this layer.
func ArbitrationID(familyTag uint32, deviceNumber int) uint32 {
	return familyTag | uint32(deviceNumber)&deviceNumberMask
}

// DeviceNumber extracts the device number from an arbitration ID.
func DeviceNumber(arbID uint32) int {
	return int(arbID & deviceNumberMask)
}

// FamilyTag extracts the family tag from an arbitration ID.
func FamilyTag(arbID uint32) uint32 {
	return arbID &^ deviceNumberMask
}
