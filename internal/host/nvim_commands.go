// Package host exposes the editing core to Neovim: preview lifecycle,
// buffer synchronization, and the Enter/Backspace/style-toggle commands.
package host

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/neovim/go-client/nvim"
	"github.com/neovim/go-client/nvim/plugin"

	"mdlive/internal/app"
	"mdlive/internal/contracts"
	"mdlive/internal/export"
	"mdlive/internal/style"
	"mdlive/internal/textpos"
)

const defaultAddr = "127.0.0.1:7777"

// Commands is the state container for Neovim handlers. It owns the editor
// session and delegates preview delivery to the LivePreview coordinator.
type Commands struct {
	session *app.Session
	preview *app.LivePreview
	export  *export.Exporter

	nv     *nvim.Nvim
	active bool
	dirty  bool
	path   string

	// applying suppresses re-interpretation of buffer writes issued by the
	// session itself; it is passed explicitly into every reconcile.
	applying bool

	lastCursorLine int
	lastCursorCol  int
}

func NewCommands(addr string) *Commands {
	c := &Commands{
		session: app.NewSession(""),
		preview: app.NewLivePreview(addr),
		export:  export.New(),
	}
	c.preview.SetGoToLineHandler(func(msg contracts.GoToLineMessage) {
		c.handleGoToLine(msg)
	})
	return c
}

// Register registers all Neovim command and function handlers.
func Register(p *plugin.Plugin) error {
	commands := NewCommands(defaultAddr)

	p.Handle("poll", func() (string, error) {
		return "ok", nil
	})

	p.HandleCommand(&plugin.CommandOptions{Name: "MdliveStart"}, commands.Start)
	p.HandleCommand(&plugin.CommandOptions{Name: "MdliveStop"}, commands.StopPreview)
	p.HandleCommand(&plugin.CommandOptions{Name: "MdliveExport"}, commands.Export)

	p.HandleFunction(&plugin.FunctionOptions{Name: "MdliveInternalUpdate"}, commands.Update)
	p.HandleFunction(&plugin.FunctionOptions{Name: "MdliveInternalCursor"}, commands.Cursor)
	p.HandleFunction(&plugin.FunctionOptions{Name: "MdliveReturn"}, commands.Return)
	p.HandleFunction(&plugin.FunctionOptions{Name: "MdliveBackspace"}, commands.Backspace)
	p.HandleFunction(&plugin.FunctionOptions{Name: "MdliveToggleBold"}, commands.toggleMarker(style.Bold))
	p.HandleFunction(&plugin.FunctionOptions{Name: "MdliveToggleItalic"}, commands.toggleMarker(style.Italic))
	p.HandleFunction(&plugin.FunctionOptions{Name: "MdliveToggleStrike"}, commands.toggleMarker(style.Strikethrough))
	p.HandleFunction(&plugin.FunctionOptions{Name: "MdliveToggleCode"}, commands.toggleMarker(style.Code))
	p.HandleFunction(&plugin.FunctionOptions{Name: "MdliveToggleHeading"}, commands.ToggleHeading)
	p.HandleFunction(&plugin.FunctionOptions{Name: "MdliveToggleBullets"}, commands.ToggleBullets)
	p.HandleFunction(&plugin.FunctionOptions{Name: "MdliveToggleNumbers"}, commands.ToggleNumbers)
	p.HandleFunction(&plugin.FunctionOptions{Name: "MdliveToggleQuote"}, commands.ToggleQuote)
	p.HandleFunction(&plugin.FunctionOptions{Name: "MdliveToggleTask"}, commands.ToggleTask)

	return nil
}

func (c *Commands) Start(v *nvim.Nvim) error {
	c.active = true
	c.dirty = false
	c.nv = v
	c.lastCursorLine = 0
	c.lastCursorCol = 0

	if err := c.loadBuffer(v); err != nil {
		return err
	}
	if err := c.preview.PublishNow(c.session.Source(), filepath.Base(c.path)); err != nil {
		return err
	}
	if err := c.publishCursor(v); err != nil {
		return err
	}
	log.Printf("[mdlive] preview started at %s", c.preview.URL())
	return v.Command(fmt.Sprintf(`echom "[mdlive] preview: %s"`, c.preview.URL()))
}

func (c *Commands) StopPreview(v *nvim.Nvim) error {
	c.active = false
	return c.preview.Stop()
}

// Update fires on buffer change: the host edit is reconciled back into the
// canonical source and the preview re-published.
func (c *Commands) Update(v *nvim.Nvim) error {
	if !c.active {
		return nil
	}
	lines, err := bufferLines(v)
	if err != nil {
		return err
	}
	caret, err := c.caretOffset(v, lines)
	if err != nil {
		return err
	}
	remapped := c.session.ReconcileDisplay(lines, caret, c.applying)
	if !c.applying {
		c.dirty = true
		if remapped != caret {
			if err := c.moveCursor(v, remapped); err != nil {
				return err
			}
		}
	}
	c.preview.Publish(c.session.Source(), filepath.Base(c.path))
	return nil
}

func (c *Commands) Cursor(v *nvim.Nvim) error {
	if !c.active {
		return nil
	}
	return c.publishCursor(v)
}

// Return intercepts Enter. Returns 1 when the core handled it (the mapping
// swallows the key) and 0 to fall through to default insertion.
func (c *Commands) Return(v *nvim.Nvim) (int, error) {
	if !c.active {
		return 0, nil
	}
	caret, err := c.currentCaret(v)
	if err != nil {
		return 0, err
	}
	newCaret, ok := c.session.HandleReturn(caret)
	if !ok {
		return 0, nil
	}
	if err := c.writeBack(v, newCaret); err != nil {
		return 0, err
	}
	return 1, nil
}

// Backspace intercepts Backspace at block starts; other positions fall
// through to default deletion.
func (c *Commands) Backspace(v *nvim.Nvim) (int, error) {
	if !c.active {
		return 0, nil
	}
	caret, err := c.currentCaret(v)
	if err != nil {
		return 0, err
	}
	newCaret, ok := c.session.HandleBackspace(caret)
	if !ok {
		return 0, nil
	}
	if err := c.writeBack(v, newCaret); err != nil {
		return 0, err
	}
	return 1, nil
}

// toggleMarker builds a handler that applies one inline marker at the caret.
func (c *Commands) toggleMarker(m style.Marker) func(v *nvim.Nvim) error {
	return func(v *nvim.Nvim) error {
		if !c.active {
			return nil
		}
		caret, err := c.currentCaret(v)
		if err != nil {
			return err
		}
		sel := c.session.ToggleInline(style.Selection{Start: caret}, m)
		return c.writeBack(v, sel.Start+sel.Length)
	}
}

func (c *Commands) ToggleHeading(v *nvim.Nvim, args []int) error {
	if !c.active {
		return nil
	}
	level := 1
	if len(args) > 0 {
		level = args[0]
	}
	caret, err := c.currentCaret(v)
	if err != nil {
		return err
	}
	sel := c.session.ToggleHeading(style.Selection{Start: caret}, level)
	return c.writeBack(v, sel.Start+sel.Length)
}

func (c *Commands) ToggleBullets(v *nvim.Nvim) error {
	return c.lineToggle(v, c.session.ToggleUnorderedList)
}

func (c *Commands) ToggleNumbers(v *nvim.Nvim) error {
	return c.lineToggle(v, c.session.ToggleOrderedList)
}

func (c *Commands) ToggleQuote(v *nvim.Nvim) error {
	return c.lineToggle(v, c.session.ToggleQuote)
}

func (c *Commands) lineToggle(v *nvim.Nvim, toggle func(style.Selection) style.Selection) error {
	if !c.active {
		return nil
	}
	caret, err := c.currentCaret(v)
	if err != nil {
		return err
	}
	sel := toggle(style.Selection{Start: caret})
	return c.writeBack(v, sel.Start+sel.Length)
}

func (c *Commands) ToggleTask(v *nvim.Nvim, args []int) error {
	if !c.active || len(args) == 0 {
		return nil
	}
	if !c.session.ToggleTask(args[0]) {
		return nil
	}
	caret, err := c.currentCaret(v)
	if err != nil {
		return err
	}
	return c.writeBack(v, caret)
}

// Export writes a standalone HTML page next to the current file.
func (c *Commands) Export(v *nvim.Nvim) error {
	if err := c.loadBuffer(v); err != nil {
		return err
	}
	page, err := c.export.Page([]byte(c.session.Source()))
	if err != nil {
		return err
	}
	out := strings.TrimSuffix(c.path, filepath.Ext(c.path)) + ".html"
	if err := os.WriteFile(out, []byte(page), 0o644); err != nil {
		return err
	}
	return v.Command(fmt.Sprintf(`echom "[mdlive] exported %s"`, out))
}

// loadBuffer replaces the session source with the current buffer contents.
func (c *Commands) loadBuffer(v *nvim.Nvim) error {
	lines, err := bufferLines(v)
	if err != nil {
		return err
	}
	c.session.SetSource(strings.Join(lines, "\n"))
	path, err := v.BufferName(0)
	if err != nil {
		return err
	}
	c.path = path
	return nil
}

func bufferLines(v *nvim.Nvim) ([]string, error) {
	buf, err := v.CurrentBuffer()
	if err != nil {
		return nil, err
	}
	raw, err := v.BufferLines(buf, 0, -1, true)
	if err != nil {
		return nil, err
	}
	lines := make([]string, len(raw))
	for i, l := range raw {
		lines[i] = string(l)
	}
	return lines, nil
}

// currentCaret reads the cursor and flattens it to a UTF-16 offset over the
// buffer text.
func (c *Commands) currentCaret(v *nvim.Nvim) (int, error) {
	lines, err := bufferLines(v)
	if err != nil {
		return 0, err
	}
	return c.caretOffset(v, lines)
}

func (c *Commands) caretOffset(v *nvim.Nvim, lines []string) (int, error) {
	var row int
	if err := v.Eval(`line(".")`, &row); err != nil {
		return 0, err
	}
	var col int
	if err := v.Eval(`col(".")`, &col); err != nil {
		return 0, err
	}
	return flattenCaret(lines, row, col), nil
}

// flattenCaret converts a 1-based (row, byte column) cursor into a flat
// UTF-16 offset over the buffer lines. A column landing inside a multi-byte
// rune rounds down to the rune start.
func flattenCaret(lines []string, row, col int) int {
	offset := 0
	for i := 0; i < row-1 && i < len(lines); i++ {
		offset += textpos.Len16(lines[i]) + 1
	}
	if row-1 >= 0 && row-1 < len(lines) {
		line := lines[row-1]
		byteCol := col - 1
		if byteCol > len(line) {
			byteCol = len(line)
		}
		if byteCol < 0 {
			byteCol = 0
		}
		for byteCol > 0 && byteCol < len(line) && !utf8.RuneStart(line[byteCol]) {
			byteCol--
		}
		offset += textpos.Len16(line[:byteCol])
	}
	return offset
}

// writeBack replaces the buffer with the session source and positions the
// cursor, flagging the write so Update does not re-interpret it.
func (c *Commands) writeBack(v *nvim.Nvim, caret int) error {
	c.applying = true
	defer func() { c.applying = false }()

	source := c.session.Source()
	lines := strings.Split(source, "\n")
	raw := make([][]byte, len(lines))
	for i, l := range lines {
		raw[i] = []byte(l)
	}

	buf, err := v.CurrentBuffer()
	if err != nil {
		return err
	}
	if err := v.SetBufferLines(buf, 0, -1, true, raw); err != nil {
		return err
	}
	if err := c.moveCursor(v, caret); err != nil {
		return err
	}

	c.dirty = true
	c.preview.Publish(source, filepath.Base(c.path))
	return nil
}

// moveCursor positions the window cursor at a flat UTF-16 offset over the
// session source.
func (c *Commands) moveCursor(v *nvim.Nvim, caret int) error {
	source := c.session.Source()
	pos := textpos.ToPos(source, caret)
	line := strings.Split(source, "\n")[pos.Line]
	byteCol := len(textpos.Slice16(line, 0, pos.Col))
	win, err := v.CurrentWindow()
	if err != nil {
		return err
	}
	return v.SetWindowCursor(win, [2]int{pos.Line + 1, byteCol})
}

func (c *Commands) publishCursor(v *nvim.Nvim) error {
	var line int
	if err := v.Eval(`line(".")`, &line); err != nil {
		return err
	}
	var col int
	if err := v.Eval(`col(".")`, &col); err != nil {
		return err
	}
	if line == c.lastCursorLine && col == c.lastCursorCol {
		return nil
	}
	c.lastCursorLine = line
	c.lastCursorCol = col
	return c.preview.PublishCursor(line, col)
}

func (c *Commands) handleGoToLine(msg contracts.GoToLineMessage) {
	if !c.active || c.nv == nil {
		return
	}
	v := c.nv
	if msg.Line == c.lastCursorLine {
		return
	}
	win, err := v.CurrentWindow()
	if err != nil {
		return
	}
	if err := v.SetWindowCursor(win, [2]int{msg.Line, 0}); err != nil {
		return
	}
	_ = v.Command("normal! zz")
	c.lastCursorLine = msg.Line
	c.lastCursorCol = 0
}
