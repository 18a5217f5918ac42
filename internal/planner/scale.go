package planner

// Bounding boxes per resolution ceiling, keyed by MaxHeight. Widths follow
// the usual 16:9 frame sizes; sources with other aspect ratios are fitted
// within the box, never cropped or stretched.
var boundingBoxes = map[int][2]int{
	480:  {854, 480},
	720:  {1280, 720},
	1080: {1920, 1080},
	1440: {2560, 1440},
	2160: {3840, 2160},
}

// needsScale reports whether a source of srcW x srcH exceeds the ceiling.
// Unknown dimensions (zero) never trigger scaling.
func needsScale(srcW, srcH, maxHeight int) bool {
	box, ok := boundingBoxes[maxHeight]
	if !ok || srcW <= 0 || srcH <= 0 {
		return false
	}
	return srcW > box[0] || srcH > box[1]
}

// fitWithin computes the scale target: the largest size preserving aspect
// ratio that fits the bounding box, with each dimension rounded down to an
// even integer (block-based codecs require even sizes) and clamped to at
// least 2.
func fitWithin(srcW, srcH, maxHeight int) (int, int) {
	box := boundingBoxes[maxHeight]
	fw := float64(box[0]) / float64(srcW)
	fh := float64(box[1]) / float64(srcH)
	f := fw
	if fh < fw {
		f = fh
	}

	// Epsilon keeps exact fits (e.g. 3840 -> 1920) from truncating a pixel
	// off through floating-point noise before the even floor.
	const eps = 1e-9
	w := evenFloor(int(float64(srcW)*f + eps))
	h := evenFloor(int(float64(srcH)*f + eps))
	if w < 2 {
		w = 2
	}
	if h < 2 {
		h = 2
	}
	return w, h
}

func evenFloor(n int) int {
	return n &^ 1
}
