package blend

import "testing"

func TestSourceOverPixel(t *testing.T) {
	tests := []struct {
		name           string
		sr, sg, sb, sa byte
		dst            [4]byte
		want           [4]byte
	}{
		{"opaque source replaces", 255, 0, 0, 255, [4]byte{0, 0, 255, 255}, [4]byte{255, 0, 0, 255}},
		{"transparent source keeps destination", 0, 0, 0, 0, [4]byte{10, 20, 30, 255}, [4]byte{10, 20, 30, 255}},
		{"over transparent destination", 64, 32, 16, 128, [4]byte{0, 0, 0, 0}, [4]byte{64, 32, 16, 128}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := append([]byte(nil), tt.dst[:]...)
			SourceOverPixel(dst, tt.sr, tt.sg, tt.sb, tt.sa)
			for i := range tt.want {
				if dst[i] != tt.want[i] {
					t.Fatalf("byte %d = %d, want %d (dst %v)", i, dst[i], tt.want[i], dst)
				}
			}
		})
	}
}

func TestSourceOverPixelHalf(t *testing.T) {
	// 50% red (premultiplied 128,0,0,128) over opaque white.
	dst := []byte{255, 255, 255, 255}
	SourceOverPixel(dst, 128, 0, 0, 128)
	if dst[3] != 255 {
		t.Errorf("alpha over opaque destination must stay opaque, got %d", dst[3])
	}
	// r = 128 + 255*(127/255) ≈ 255, g and b ≈ 127.
	if dst[0] < 254 {
		t.Errorf("red channel too low: %d", dst[0])
	}
	if dst[1] < 126 || dst[1] > 128 || dst[2] < 126 || dst[2] > 128 {
		t.Errorf("expected half-blended green/blue, got g=%d b=%d", dst[1], dst[2])
	}
}

func TestDestinationOutPixel(t *testing.T) {
	tests := []struct {
		name  string
		sa    byte
		wantA byte
	}{
		{"full erase", 255, 0},
		{"no erase", 0, 200},
		{"half erase", 128, 100}, // 200 * 127/255 ≈ 100
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := []byte{150, 150, 150, 200}
			DestinationOutPixel(dst, tt.sa)
			if diff := int(dst[3]) - int(tt.wantA); diff > 1 || diff < -1 {
				t.Errorf("alpha: got %d, want ~%d", dst[3], tt.wantA)
			}
			// Premultiplied color shrinks with the alpha.
			if tt.sa == 255 && (dst[0] != 0 || dst[1] != 0 || dst[2] != 0) {
				t.Errorf("full erase left color bytes: %v", dst)
			}
		})
	}
}

func TestMulDiv255Rounding(t *testing.T) {
	tests := []struct {
		a, b, want byte
	}{
		{255, 255, 255},
		{255, 0, 0},
		{255, 128, 128},
		{128, 128, 64},
	}
	for _, tt := range tests {
		if got := mulDiv255(tt.a, tt.b); got != tt.want {
			t.Errorf("mulDiv255(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
