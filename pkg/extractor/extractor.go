// Package extractor reads screens and design styles from a host into a session.
package extractor

import (
	"fmt"
	"math"

	"github.com/hellenic-development/figma-claude/pkg/host"
)

// Logger receives progress messages. A nil Logger means silent operation.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Infof(string, ...any)  {}
func (nopLogger) Warnf(string, ...any)  {}
func (nopLogger) Errorf(string, ...any) {}

func loggerOrNop(l Logger) Logger {
	if l == nil {
		return nopLogger{}
	}
	return l
}

// ProbeDevMode reports whether the host exposes a code-generation surface.
// Presence of either extension is treated as availability; nothing else is negotiated.
func ProbeDevMode(h host.Host) bool {
	return h.HasExtension(host.ExtensionDevMode) || h.HasExtension(host.ExtensionCodegen)
}

// to255 scales a 0-1 channel to 0-255, rounding to nearest.
func to255(c float64) int {
	return int(math.Round(c * 255))
}

// rgbToHex formats 0-255 channels as #RRGGBB. Alpha is not encoded.
func rgbToHex(r, g, b int) string {
	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}
