package planner

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ExploreAritra/format-flex/internal/caps"
	"github.com/ExploreAritra/format-flex/internal/config"
)

// selectEncoder resolves the encoder identifier for the effective codec.
// Hardware is tried only when requested (or turbo) and not forced off; the
// capability set answers with the best backend in its fixed vendor priority
// order, and software is the fallback when nothing is available.
// forceSoftware always wins outright.
func selectEncoder(codec config.VideoCodec, opts *config.Options, cs *caps.Set, forceSoftware bool) (name string, hardware bool) {
	wantHW := (opts.UseHardware || opts.Turbo) && !forceSoftware
	if wantHW {
		if hw := cs.BestHWEncoder(codec); hw != "" {
			return hw, true
		}
	}
	return codec.SoftwareEncoder(), false
}

// rateControlArgs maps the user's quality-or-bitrate intent onto the chosen
// encoder's rate-control vocabulary. For software encoders this is the
// native CRF/bitrate switch plus a speed preset. Hardware encoders get an
// approximation of the same intent in their own terms (CQ, global_quality,
// QP); the mapping is best-effort — lower still means higher quality, but no
// numeric equivalence with software CRF is claimed.
func rateControlArgs(encoder string, opts *config.Options) []string {
	crf := opts.CRF
	bitrate := strconv.Itoa(opts.BitrateKbps) + "k"

	switch {
	case encoder == "libx264" || encoder == "libx265":
		preset := "medium"
		if opts.Turbo {
			preset = "veryfast"
		}
		if opts.UseCRF {
			return []string{"-crf", strconv.Itoa(crf), "-preset", preset}
		}
		return []string{"-b:v", bitrate, "-preset", preset}

	case encoder == "libsvtav1":
		preset := "8"
		if opts.Turbo {
			preset = "11"
		}
		if opts.UseCRF {
			return []string{"-crf", strconv.Itoa(crf), "-preset", preset}
		}
		return []string{"-b:v", bitrate, "-preset", preset}

	case strings.HasSuffix(encoder, "_nvenc"):
		preset := "p4"
		if opts.Turbo {
			preset = "p2"
		}
		if opts.UseCRF {
			return []string{"-rc", "vbr", "-cq", strconv.Itoa(crf), "-preset", preset}
		}
		return []string{"-b:v", bitrate, "-preset", preset}

	case strings.HasSuffix(encoder, "_qsv"):
		preset := "medium"
		if opts.Turbo {
			preset = "veryfast"
		}
		if opts.UseCRF {
			return []string{"-global_quality", strconv.Itoa(crf), "-preset", preset}
		}
		return []string{"-b:v", bitrate, "-preset", preset}

	case strings.HasSuffix(encoder, "_vaapi"):
		if opts.UseCRF {
			return []string{"-qp", strconv.Itoa(crf)}
		}
		return []string{"-b:v", bitrate}

	case strings.HasSuffix(encoder, "_videotoolbox"):
		if opts.UseCRF {
			// VideoToolbox quality runs 1-100, higher is better; invert the
			// CRF scale coarsely so the quality knob still points the same way.
			q := clamp(100-crf*2, 1, 100)
			return []string{"-q:v", strconv.Itoa(q)}
		}
		return []string{"-b:v", bitrate}
	}

	// Unreachable for the closed encoder vocabulary, but keep the command
	// buildable if a new backend slips in.
	if opts.UseCRF {
		return []string{"-crf", strconv.Itoa(crf)}
	}
	return []string{"-b:v", bitrate}
}

// vaapiPreInput returns the hardware-device setup VAAPI encoders need ahead
// of the input. Other backends configure themselves from the encoder name.
func vaapiPreInput(device string) []string {
	return []string{
		"-init_hw_device", fmt.Sprintf("vaapi=va:%s", device),
		"-filter_hw_device", "va",
	}
}

// defaultVaapiDevice is the first render node on virtually every Linux system.
const defaultVaapiDevice = "/dev/dri/renderD128"

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
