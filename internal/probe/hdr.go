package probe

import "strings"

// detectHDR reports whether the stream's color tags indicate an HDR source.
// The heuristic mirrors the usual transfer-characteristic checks: PQ
// (smpte2084), HLG (arib-std-b67), or BT.2020 primaries/matrix. It is
// approximate by design; it exists to decide whether tonemapping makes
// sense, not to do color science.
func detectHDR(v *VideoInfo) bool {
	switch v.ColorTransfer {
	case "smpte2084", "arib-std-b67":
		return true
	}
	if strings.Contains(v.ColorPrimaries, "bt2020") {
		return true
	}
	return strings.Contains(v.ColorSpace, "bt2020")
}
