package style

import (
	"strings"

	"github.com/fatih/color"
)

var (
	buyColor  = color.New(color.FgHiGreen)
	sellColor = color.New(color.FgHiRed)
	warnColor = color.New(color.FgHiYellow)
)

// SideString colors buy/bid green and sell/ask red.
func SideString[T ~string](side T) string {
	s := string(side)
	switch strings.ToLower(s) {
	case "buy", "bid":
		return buyColor.Sprint(s)
	case "sell", "ask":
		return sellColor.Sprint(s)
	}
	return s
}

func Warn(format string, args ...interface{}) string {
	return warnColor.Sprintf(format, args...)
}
