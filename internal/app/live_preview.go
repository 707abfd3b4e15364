package app

import (
	"sync"
	"time"

	"mdlive/internal/contracts"
	"mdlive/internal/projection"
	"mdlive/internal/render"
	httpserver "mdlive/internal/transport/http"
)

// debounceDelay coalesces rapid keystrokes before the preview re-renders.
const debounceDelay = 80 * time.Millisecond

// LivePreview coordinates between the rendering core and HTTP delivery.
// Publication is debounced and token-checked: a newer edit invalidates any
// render still in flight, and its result is discarded instead of applied.
type LivePreview struct {
	server *httpserver.Server
	tokens *projection.TokenSource

	mu    sync.Mutex
	timer *time.Timer
}

func NewLivePreview(addr string) *LivePreview {
	return &LivePreview{
		server: httpserver.NewServer(addr, render.Shell()),
		tokens: &projection.TokenSource{},
	}
}

func (p *LivePreview) URL() string {
	return p.server.URL()
}

// Running reports whether the preview server is currently serving.
func (p *LivePreview) Running() bool {
	return p.server.Running()
}

// Publish schedules a debounced render of source. The render runs against
// the token issued here; if another Publish arrives first, this render's
// result is dropped.
func (p *LivePreview) Publish(source, filename string) {
	token := p.tokens.Next()

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.timer != nil {
		p.timer.Stop()
	}
	p.timer = time.AfterFunc(debounceDelay, func() {
		fragment := render.RenderHTML(source)
		if !p.tokens.Valid(token) {
			return
		}
		_ = p.server.StartOrUpdate(fragment, filename, token)
	})
}

// PublishNow renders and publishes immediately, bypassing the debounce.
func (p *LivePreview) PublishNow(source, filename string) error {
	token := p.tokens.Next()
	return p.server.StartOrUpdate(render.RenderHTML(source), filename, token)
}

// PublishCursor forwards the editor caret to the preview.
func (p *LivePreview) PublishCursor(line, col int) error {
	return p.server.UpdateCursor(contracts.CursorMessage{
		Type: contracts.MessageTypeCursor,
		Line: line,
		Col:  col,
	})
}

// SetGoToLineHandler registers the callback for browser go-to-line requests.
func (p *LivePreview) SetGoToLineHandler(fn func(contracts.GoToLineMessage)) {
	p.server.OnGoToLine = fn
}

// Stop shuts the preview server down and cancels any pending publication.
// The token bump invalidates renders already in flight, so a debounced render
// racing Stop cannot restart the server.
func (p *LivePreview) Stop() error {
	p.tokens.Next()
	p.mu.Lock()
	if p.timer != nil {
		p.timer.Stop()
	}
	p.mu.Unlock()
	return p.server.Stop()
}
