package maestro

// CRC7 calculates the 7-bit CRC the Maestro expects when its serial CRC
// option is enabled. Polynomial 0x91, LSB-first, matching Pololu's
// reference implementation.
func CRC7(data []byte) byte {
	crc := byte(0)
	for _, b := range data {
		crc ^= b
		for j := 0; j < 8; j++ {
			if crc&1 != 0 {
				crc ^= 0x91
			}
			crc >>= 1
		}
	}
	return crc
}
