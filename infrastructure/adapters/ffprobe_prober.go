package adapters

import (
	"os/exec"
	"strconv"
	"strings"

	"github.com/manavmaharishi/voicemation-final/application/ports/outbound"
)

type ffprobeProber struct {
	logger outbound.LoggerPort
}

// NewFFprobeProber reads durations back from encoded files. Subtitle timing
// and loop/trim decisions key off these values, so the fractional part is kept.
func NewFFprobeProber(logger outbound.LoggerPort) outbound.MediaProberPort {
	return &ffprobeProber{
		logger: logger,
	}
}

func (p *ffprobeProber) Duration(filePath string) (float64, error) {
	cmd := exec.Command("ffprobe", "-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1", filePath)

	out, err := cmd.Output()
	if err != nil {
		p.logger.ErrorWithFields(err, "Failed to probe media duration", map[string]interface{}{
			"file": filePath,
		})
		return 0, err
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil {
		p.logger.Error(err, "Failed to parse media duration")
		return 0, err
	}

	return duration, nil
}
