package termproto

import (
	"strconv"
	"strings"

	"github.com/mdshow/mdshow/internal/style"
)

// sgrSequence builds a Select Graphic Rendition escape for s's flags and
// colors. An empty string means "no styling needed".
func sgrSequence(s style.TextStyle) string {
	var codes []string

	if s.Has(style.FlagBold) {
		codes = append(codes, "1")
	}
	if s.Has(style.FlagItalic) {
		codes = append(codes, "3")
	}
	if s.Has(style.FlagUnderlined) {
		codes = append(codes, "4")
	}
	if s.Has(style.FlagStrikethrough) {
		codes = append(codes, "9")
	}

	colors := s.Colors()
	if colors.Fg != nil {
		codes = append(codes, "38;2;"+rgbCodes(*colors.Fg))
	}
	if colors.Bg != nil {
		codes = append(codes, "48;2;"+rgbCodes(*colors.Bg))
	}

	if len(codes) == 0 {
		return ""
	}
	return "\x1b[" + strings.Join(codes, ";") + "m"
}

func rgbCodes(c style.Color) string {
	return strconv.Itoa(int(c.R)) + ";" + strconv.Itoa(int(c.G)) + ";" + strconv.Itoa(int(c.B))
}
