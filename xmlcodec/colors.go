package xmlcodec

import (
	"strings"

	"github.com/fatih/color"
)

type ColorClass int

const (
	TagColor ColorClass = iota
	AttrNameColor
	AttrValueColor
	TextColor
	CDATAColor
	CommentColor
	PIColor
	DeclColor
)

type Colors struct {
	Default func(string, ...any) string
	Map     map[ColorClass]func(string, ...any) string
}

func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map:     map[ColorClass]func(string, ...any) string{},
	}
	colors.Map[TagColor] = color.RGB(74, 92, 138).SprintfFunc()
	colors.Map[AttrNameColor] = color.RGB(196, 96, 16).SprintfFunc()
	colors.Map[AttrValueColor] = color.RGB(8, 196, 16).SprintfFunc()
	colors.Map[TextColor] = color.RGB(128, 216, 236).SprintfFunc()
	colors.Map[CDATAColor] = color.RGB(198, 198, 46).SprintfFunc()
	colors.Map[CommentColor] = color.BlueString
	colors.Map[PIColor] = color.RGB(168, 0, 196).SprintfFunc()
	colors.Map[DeclColor] = color.RGB(96, 96, 96).SprintfFunc()
	for k, f := range colors.Map {
		colors.Map[k] = func(v string, _ ...any) string {
			return f(strings.Replace(v, "%", "%%", -1))
		}
	}
	return colors
}

func colorDefault(v string, _ ...any) string { return v }

func (c *Colors) Color(cl ColorClass, s string) string {
	return c.Get(cl)(s)
}

func (c *Colors) Get(cl ColorClass) func(string, ...any) string {
	f := c.Map[cl]
	if f == nil {
		return c.Default
	}
	return f
}
