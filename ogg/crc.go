package ogg

// crcPolynomial is the unreflected CRC-32 polynomial Ogg specifies for its
// page checksum (0x04c11db7) -- distinct from the reflected polynomial
// zlib/CRC-32 uses, so the standard library's hash/crc32 cannot serve
// this (spec.md §6 "Ogg::PageHeader::checksum").
const crcPolynomial = 0x04c11db7

var crcTable [256]uint32

func init() {
	for i := range 256 {
		crc := uint32(i) << 24

		for range 8 {
			if crc&0x80000000 != 0 {
				crc = (crc << 1) ^ crcPolynomial
			} else {
				crc <<= 1
			}
		}

		crcTable[i] = crc
	}
}

// checksum computes the Ogg page CRC-32 over data, which must have its
// checksum field already zeroed.
func checksum(data []byte) uint32 {
	var crc uint32

	for _, b := range data {
		crc = (crc << 8) ^ crcTable[byte(crc>>24)^b]
	}

	return crc
}
