package host

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// HeadlessGraphics is the default graphics adapter. It issues window
// handles and accepts drawing calls without rendering anything, so
// scripts using the graphics statements run unchanged on machines
// without a display. Calls are logged at debug level.
type HeadlessGraphics struct {
	mu   sync.Mutex
	next int
	log  *logrus.Logger
}

// NewHeadlessGraphics returns the headless adapter. A nil logger falls
// back to the standard logrus logger.
func NewHeadlessGraphics(log *logrus.Logger) *HeadlessGraphics {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &HeadlessGraphics{log: log}
}

// CreateWindow issues the next window handle.
func (g *HeadlessGraphics) CreateWindow(title string, width, height int, useOpenGL bool) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	g.log.WithFields(logrus.Fields{
		"handle": g.next,
		"title":  title,
		"width":  width,
		"height": height,
		"opengl": useOpenGL,
	}).Debug("window created")
	return g.next, nil
}

// Clear discards a clear call.
func (g *HeadlessGraphics) Clear(handle, r, gr, b int) {
	g.log.WithField("handle", handle).Debug("clear")
}

// Rect discards a rectangle call.
func (g *HeadlessGraphics) Rect(handle, x, y, w, h, r, gr, b, a int) {
	g.log.WithField("handle", handle).Debug("rect")
}

// Circle discards a circle call.
func (g *HeadlessGraphics) Circle(handle, cx, cy, radius, r, gr, b, a int) {
	g.log.WithField("handle", handle).Debug("circle")
}

// Render discards a present call.
func (g *HeadlessGraphics) Render(handle int) {
	g.log.WithField("handle", handle).Debug("render")
}
