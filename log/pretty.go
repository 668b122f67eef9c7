package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// palette holds the styles of the pretty text handler. Styles are bound to
// a renderer for the handler's writer, so color is only emitted when that
// writer is a terminal that supports it.
type palette struct {
	key, str, num, time lipgloss.Style
	yes, no, msg        lipgloss.Style
	level               map[slog.Level]lipgloss.Style
}

func makePalette(w io.Writer) palette {
	r := lipgloss.NewRenderer(w)
	fg := func(c string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c))
	}

	return palette{
		key:  fg("8"),
		str:  fg("6"),
		num:  fg("3"),
		time: fg("4"),
		yes:  fg("2"),
		no:   fg("1"),
		msg:  r.NewStyle().Bold(true),
		level: map[slog.Level]lipgloss.Style{
			slog.Level(LevelTrace): fg("5"),
			slog.Level(LevelDebug): fg("4"),
			slog.Level(LevelInfo):  fg("2"),
			slog.Level(LevelWarn):  fg("3"),
			slog.Level(LevelError): fg("1").Bold(true),
		},
	}
}

// levelStyle returns the style of the nearest defined level at or below l.
func (p palette) levelStyle(l slog.Level) lipgloss.Style {
	switch {
	case l >= slog.LevelError:
		return p.level[slog.LevelError]
	case l >= slog.LevelWarn:
		return p.level[slog.LevelWarn]
	case l >= slog.LevelInfo:
		return p.level[slog.LevelInfo]
	case l >= slog.LevelDebug:
		return p.level[slog.LevelDebug]
	default:
		return p.level[slog.Level(LevelTrace)]
	}
}

// prettyHandler writes records as colorized key=value text:
//
//	2025-01-02T15:04:05Z INFO parse complete argument_count=3
type prettyHandler struct {
	opts   slog.HandlerOptions
	mu     *sync.Mutex
	w      io.Writer
	colors palette
	attrs  []byte // preformatted attributes from WithAttrs
	prefix string // dotted group prefix from WithGroup
}

func newPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *prettyHandler {
	return &prettyHandler{
		opts:   *opts,
		mu:     &sync.Mutex{},
		w:      w,
		colors: makePalette(w),
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}

	return level >= minLevel
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer

	if !r.Time.IsZero() {
		if a := h.builtin(slog.Time(slog.TimeKey, r.Time)); a.Key != "" {
			buf.WriteString(h.colors.time.Render(a.Value.String()))
			buf.WriteByte(' ')
		}
	}

	level := h.builtin(slog.Any(slog.LevelKey, r.Level))
	buf.WriteString(h.colors.levelStyle(r.Level).Render(level.Value.String()))

	if h.opts.AddSource && r.PC != 0 {
		if src := r.Source(); src != nil {
			buf.WriteByte(' ')
			buf.WriteString(h.colors.key.Render(
				fmt.Sprintf("%s:%d", src.File, src.Line)))
		}
	}

	buf.WriteByte(' ')
	buf.WriteString(h.colors.msg.Render(r.Message))
	buf.Write(h.attrs)

	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(&buf, h.prefix, a)

		return true
	})

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	c := *h
	buf := bytes.NewBuffer(append([]byte(nil), h.attrs...))

	for _, a := range attrs {
		h.writeAttr(buf, h.prefix, a)
	}

	c.attrs = buf.Bytes()

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.prefix = h.prefix + name + "."

	return &c
}

// builtin applies ReplaceAttr to one of the record's built-in attributes.
func (h *prettyHandler) builtin(a slog.Attr) slog.Attr {
	if h.opts.ReplaceAttr == nil {
		return a
	}

	return h.opts.ReplaceAttr(nil, a)
}

func (h *prettyHandler) writeAttr(buf *bytes.Buffer, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()

	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		if a.Key != "" {
			prefix += a.Key + "."
		}

		for _, g := range a.Value.Group() {
			h.writeAttr(buf, prefix, g)
		}

		return
	}

	buf.WriteByte(' ')
	buf.WriteString(h.colors.key.Render(prefix + a.Key + "="))
	buf.WriteString(h.value(a.Value))
}

func (h *prettyHandler) value(v slog.Value) string {
	switch v.Kind() {
	case slog.KindInt64:
		return h.colors.num.Render(strconv.FormatInt(v.Int64(), 10))
	case slog.KindUint64:
		return h.colors.num.Render(strconv.FormatUint(v.Uint64(), 10))
	case slog.KindFloat64:
		return h.colors.num.Render(strconv.FormatFloat(v.Float64(), 'g', -1, 64))
	case slog.KindBool:
		if v.Bool() {
			return h.colors.yes.Render("true")
		}

		return h.colors.no.Render("false")
	case slog.KindDuration:
		return h.colors.num.Render(v.Duration().String())
	case slog.KindTime:
		return h.colors.time.Render(v.Time().String())
	default:
		s := v.String()
		if s == "" || strings.ContainsAny(s, " \t\r\n=\"") {
			s = strconv.Quote(s)
		}

		return h.colors.str.Render(s)
	}
}
