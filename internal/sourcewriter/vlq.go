package sourcewriter

// Base64 VLQ encoding for the V3 sourcemap `mappings` field (§6 Wire
// formats). One base64 digit carries 6 bits: five payload bits and, on top,
// the continuation flag. The sign is the low bit of the first digit's
// payload only.

var base64Chars = []byte("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/")

func encodeVLQ(dst []byte, value int) []byte {
	var vlq int
	if value < 0 {
		vlq = ((-value) << 1) | 1
	} else {
		vlq = value << 1
	}

	for {
		digit := vlq & 31
		vlq >>= 5
		if vlq != 0 {
			digit |= 32
		}
		dst = append(dst, base64Chars[digit])
		if vlq == 0 {
			break
		}
	}
	return dst
}
