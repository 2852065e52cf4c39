package encode

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

type ColorAttr int

const (
	FieldColor ColorAttr = iota
	StringColor
	NumberColor
	BoolColor
	SepColor
)

type Colors struct {
	Default func(string, ...any) string
	Map     map[ColorAttr]func(string, ...any) string

	attrs map[ColorAttr][]color.Attribute
}

func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map:     map[ColorAttr]func(string, ...any) string{},
		attrs: map[ColorAttr][]color.Attribute{
			FieldColor:  {color.FgBlue},
			StringColor: {color.FgGreen},
			NumberColor: {color.FgCyan},
			BoolColor:   {color.FgMagenta},
			SepColor:    {color.FgHiBlack},
		},
	}
	for a, attrs := range colors.attrs {
		f := color.New(attrs...).SprintfFunc()
		colors.Map[a] = func(v string, _ ...any) string {
			return f(strings.ReplaceAll(v, "%", "%%"))
		}
	}
	return colors
}

func colorDefault(v string, _ ...any) string { return v }

func (c *Colors) Color(a ColorAttr, s string) string {
	return c.Get(a)(s)
}

func (c *Colors) Get(a ColorAttr) func(string, ...any) string {
	f := c.Map[a]
	if f == nil {
		return c.Default
	}
	return f
}

// escapes returns the raw escape sequences around text of attribute a, for
// printers that take a prefix and a suffix. Both are empty when colour is
// disabled.
func (c *Colors) escapes(a ColorAttr) (string, string) {
	attrs := c.attrs[a]
	if color.NoColor || len(attrs) == 0 {
		return "", ""
	}
	codes := make([]string, len(attrs))
	for i, at := range attrs {
		codes[i] = fmt.Sprint(int(at))
	}
	return "\x1b[" + strings.Join(codes, ";") + "m", "\x1b[0m"
}
