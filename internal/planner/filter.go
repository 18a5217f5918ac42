package planner

import (
	"fmt"
	"strings"

	"github.com/ExploreAritra/format-flex/internal/caps"
)

// tonemapChain is the zscale+tonemap pipeline converting HDR (PQ/HLG) to SDR
// BT.709 on the software path. Hable curve with desaturation off, same as
// the usual ffmpeg recipe.
const tonemapChain = "zscale=t=linear:npl=100,format=gbrpf32le,zscale=p=bt709," +
	"tonemap=tonemap=hable:desat=0," +
	"zscale=t=bt709:m=bt709:r=tv,format=yuv420p"

// canToneMap reports whether the detected build carries the filters the
// tonemap chain needs. An empty set means detection failed, not that the
// filters are absent, so the chain is still attempted and ffmpeg gets the
// final say.
func canToneMap(cs *caps.Set) bool {
	if cs.Empty() {
		return true
	}
	return cs.HasFilter("zscale") && cs.HasFilter("tonemap")
}

// buildVideoFilters fuses the needed stages into a single filter-graph
// description. Stage order is fixed: tonemap first (operates on full-range
// source color), then scale. The two are always issued as one -vf chain,
// never as separate passes.
//
// VAAPI encoders consume GPU surfaces, so their chain ends with an upload;
// every other backend takes software frames directly.
func buildVideoFilters(toneMap bool, scaleW, scaleH int, encoder string) string {
	var stages []string

	if toneMap {
		stages = append(stages, tonemapChain)
	}
	if scaleW > 0 && scaleH > 0 {
		stages = append(stages, fmt.Sprintf("scale=%d:%d:flags=lanczos", scaleW, scaleH))
	}

	if strings.HasSuffix(encoder, "_vaapi") {
		stages = append(stages, "format=nv12", "hwupload")
	}

	return strings.Join(stages, ",")
}
