package geometry

// SignalTint maps a 0..1 signal-strength ratio to the wire tint color.
// Channels are computed as r = ratio*0.7 + 0.3, g = ratio²*0.7 - 0.5,
// b = ratio²*0.6 - 0.7, each clamped to [0,1] and scaled to 0..255 with
// truncation. Full strength yields (255, 51, 0), zero yields (76, 0, 0).
func SignalTint(ratio float64) RGB {
	if ratio < 0 {
		ratio = 0
	} else if ratio > 1 {
		ratio = 1
	}

	r := ratio*0.7 + 0.3
	g := ratio*ratio*0.7 - 0.5
	b := ratio*ratio*0.6 - 0.7

	return RGB{
		R: channelByte(r),
		G: channelByte(g),
		B: channelByte(b),
	}
}

// channelByte clamps to [0,1] and truncates to 0..255.
func channelByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v * 255)
}
