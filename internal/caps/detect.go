package caps

import (
	"bufio"
	"context"
	"os/exec"
	"regexp"
	"strings"
)

// Line shapes in ffmpeg self-report output. Capability flag columns vary a
// little across versions, so both patterns anchor on the flag block followed
// by an identifier and tolerate everything after it.
var (
	encoderLineRe = regexp.MustCompile(`^\s*[VASFXBD.]{6}\s+(\S+)`)
	filterLineRe  = regexp.MustCompile(`^\s*[TSC.]{3}\s+(\S+)\s+\S+->`)
)

// Detect probes the ffmpeg build at ffmpegPath for its encoders, filters,
// and hardware acceleration methods. It never fails: every probing error
// just leaves that portion of the set empty. Callers cache the result for
// the process lifetime and may call Detect again after the user points at a
// different ffmpeg binary.
func Detect(ctx context.Context, ffmpegPath string) *Set {
	s := EmptySet()

	if out, err := selfReport(ctx, ffmpegPath, "-encoders"); err == nil {
		parseEncoders(out, s.encoders)
	}
	if out, err := selfReport(ctx, ffmpegPath, "-filters"); err == nil {
		parseFilters(out, s.filters)
	}
	if out, err := selfReport(ctx, ffmpegPath, "-hwaccels"); err == nil {
		parseHWAccels(out, s.hwaccels)
	}
	return s
}

func selfReport(ctx context.Context, ffmpegPath, flag string) (string, error) {
	cmd := exec.CommandContext(ctx, ffmpegPath, "-hide_banner", flag)
	out, err := cmd.Output()
	return string(out), err
}

// parseEncoders reads `ffmpeg -encoders` output. Lines before the "------"
// separator are legend; malformed lines are skipped, never fatal.
func parseEncoders(out string, into map[string]bool) {
	started := false
	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		line := sc.Text()
		if !started {
			if strings.Contains(line, "------") {
				started = true
			}
			continue
		}
		if m := encoderLineRe.FindStringSubmatch(line); m != nil {
			into[m[1]] = true
		}
	}
}

// parseFilters reads `ffmpeg -filters` output, matching lines of the form
// " T.. scale_vaapi V->V ...".
func parseFilters(out string, into map[string]bool) {
	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		if m := filterLineRe.FindStringSubmatch(sc.Text()); m != nil {
			into[m[1]] = true
		}
	}
}

// parseHWAccels reads `ffmpeg -hwaccels` output: a header line followed by
// one method name per line.
func parseHWAccels(out string, into map[string]bool) {
	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasSuffix(line, ":") {
			continue
		}
		if strings.ContainsAny(line, " \t") {
			continue
		}
		into[line] = true
	}
}
