package ffmpeg

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// Telemetry is one batch of progress values parsed from the -progress
// stream. OutTimeMs is -1 when the batch carried no usable output time,
// Speed is 0 when unknown. EndOfStream marks the final batch.
type Telemetry struct {
	OutTimeMs   int64
	Speed       float64
	Frame       int64
	EndOfStream bool
}

// readProgress consumes ffmpeg's -progress pipe:1 output: key=value lines
// batched by a trailing "progress=continue" or "progress=end" marker. Each
// completed batch is handed to emit. Unparseable lines are skipped; the
// stream ending without an end marker simply stops emission.
func readProgress(r io.Reader, emit func(Telemetry)) {
	scanner := bufio.NewScanner(r)
	// Default 64KB line buffer can be exceeded by metadata lines.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	batch := Telemetry{OutTimeMs: -1}
	for scanner.Scan() {
		line := scanner.Text()

		if strings.HasPrefix(line, "progress=") {
			batch.EndOfStream = strings.TrimPrefix(line, "progress=") == "end"
			emit(batch)
			batch = Telemetry{OutTimeMs: -1}
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case "frame":
			if n, err := strconv.ParseInt(value, 10, 64); err == nil && n >= 0 {
				batch.Frame = n
			}
		case "out_time_us", "out_time_ms":
			// Both keys carry microseconds in every ffmpeg release that
			// emits them; out_time_ms is misnamed upstream.
			if us, err := strconv.ParseInt(value, 10, 64); err == nil && us >= 0 {
				batch.OutTimeMs = us / 1000
			}
		case "out_time":
			if ms := parseClockTime(value); ms >= 0 {
				batch.OutTimeMs = ms
			}
		case "speed":
			if value == "N/A" || value == "" {
				break
			}
			if s, err := strconv.ParseFloat(strings.TrimSuffix(value, "x"), 64); err == nil && s >= 0 {
				batch.Speed = s
			}
		}
	}
}

// parseClockTime converts "HH:MM:SS.micros" to milliseconds, -1 on failure.
func parseClockTime(s string) int64 {
	if s == "" || s == "N/A" {
		return -1
	}
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return -1
	}
	h, err1 := strconv.ParseInt(parts[0], 10, 64)
	m, err2 := strconv.ParseInt(parts[1], 10, 64)
	sec, err3 := strconv.ParseFloat(parts[2], 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return -1
	}
	ms := h*3600000 + m*60000 + int64(sec*1000)
	if neg {
		// ffmpeg emits negative out_time before the first packet lands.
		return -1
	}
	return ms
}
