// Package blend implements the two Porter-Duff compositing operators the
// engine needs: source-over for drawing and layer flattening, and
// destination-out for erasing.
//
// Both operate in place on premultiplied alpha bytes, the storage format
// of flipbook pixel buffers.
//
// References:
//   - Porter-Duff: "Compositing Digital Images" (1984)
//   - W3C Compositing and Blending Level 1: https://www.w3.org/TR/compositing-1/
package blend

// SourceOverPixel blends one premultiplied source pixel over the destination
// bytes at dst[0:4] in place.
// Formula: S + D * (1 - Sa)
func SourceOverPixel(dst []byte, sr, sg, sb, sa byte) {
	if sa == 255 {
		dst[0], dst[1], dst[2], dst[3] = sr, sg, sb, sa
		return
	}
	invSa := 255 - sa
	dst[0] = addClamp255(sr, mulDiv255(dst[0], invSa))
	dst[1] = addClamp255(sg, mulDiv255(dst[1], invSa))
	dst[2] = addClamp255(sb, mulDiv255(dst[2], invSa))
	dst[3] = addClamp255(sa, mulDiv255(dst[3], invSa))
}

// DestinationOutPixel removes sa/255 of the destination pixel at dst[0:4]
// in place.
// Formula: D * (1 - Sa)
func DestinationOutPixel(dst []byte, sa byte) {
	if sa == 0 {
		return
	}
	invSa := 255 - sa
	dst[0] = mulDiv255(dst[0], invSa)
	dst[1] = mulDiv255(dst[1], invSa)
	dst[2] = mulDiv255(dst[2], invSa)
	dst[3] = mulDiv255(dst[3], invSa)
}

// mulDiv255 multiplies two byte values and divides by 255 with proper rounding.
// Formula: (a * b + 127) / 255
// The +127 provides correct rounding (equivalent to adding 0.5 before truncation).
func mulDiv255(a, b byte) byte {
	return byte((uint16(a)*uint16(b) + 127) / 255)
}

// addClamp255 adds two byte values with clamping to 255.
func addClamp255(a, b byte) byte {
	sum := uint16(a) + uint16(b)
	if sum > 255 {
		return 255
	}
	return byte(sum)
}
