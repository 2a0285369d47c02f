package app

// Viewer limits.
const (
	MinZoom     = 10
	MaxZoom     = 1000
	DefaultZoom = 100

	scrollStep = 10
	pageJump   = 10
)

// Scroll positions along one axis, in percent of the scrollable range.
const (
	ScrollStart  = 0
	ScrollMiddle = 50
	ScrollEnd    = 100
)

// Viewer is the reading state the bound actions operate on.
type Viewer struct {
	Page       int
	Pages      int
	Zoom       int
	ScrollX    int
	ScrollY    int
	Fullscreen bool
	OSD        bool

	// Message is the last notification shown in the status line.
	Message string
}

// NewViewer returns a viewer on page 1 of pages.
func NewViewer(pages int) *Viewer {
	if pages < 1 {
		pages = 1
	}
	return &Viewer{Page: 1, Pages: pages, Zoom: DefaultZoom}
}

// GoTo moves to page n, clamped to the document.
func (v *Viewer) GoTo(n int) {
	v.Page = clamp(n, 1, v.Pages)
	v.ScrollY = ScrollStart
}

// Flip moves delta pages forward or backward.
func (v *Viewer) Flip(delta int) {
	v.GoTo(v.Page + delta)
}

// ScrollTo sets both scroll positions.
func (v *Viewer) ScrollTo(x, y int) {
	v.ScrollX = clamp(x, ScrollStart, ScrollEnd)
	v.ScrollY = clamp(y, ScrollStart, ScrollEnd)
}

// Scroll moves the scroll position by dx, dy.
func (v *Viewer) Scroll(dx, dy int) {
	v.ScrollTo(v.ScrollX+dx, v.ScrollY+dy)
}

// SmartScroll scrolls down (dir > 0) or up, turning the page at either end.
func (v *Viewer) SmartScroll(dir int) {
	switch {
	case dir > 0 && v.ScrollY >= ScrollEnd:
		if v.Page < v.Pages {
			v.Flip(1)
		}
	case dir < 0 && v.ScrollY <= ScrollStart:
		if v.Page > 1 {
			v.Flip(-1)
			v.ScrollY = ScrollEnd
		}
	default:
		v.Scroll(0, dir*scrollStep)
	}
}

// ZoomBy scales the zoom level by num/den.
func (v *Viewer) ZoomBy(num, den int) {
	z := v.Zoom * num / den
	if z == v.Zoom {
		z += num - den
	}
	v.Zoom = clamp(z, MinZoom, MaxZoom)
}

// Notify records a message for the status line.
func (v *Viewer) Notify(action, msg string) {
	v.Message = action + ": " + msg
}

// actions maps every reader action to the viewer operation it performs.
func (v *Viewer) actions() map[string]func() {
	return map[string]func(){
		"previous page":         func() { v.Flip(-1) },
		"next page":             func() { v.Flip(1) },
		"previous page ff":      func() { v.Flip(-pageJump) },
		"next page ff":          func() { v.Flip(pageJump) },
		"previous page dynamic": func() { v.Flip(-1) },
		"next page dynamic":     func() { v.Flip(1) },

		"scroll left bottom":   func() { v.ScrollTo(ScrollStart, ScrollEnd) },
		"scroll middle bottom": func() { v.ScrollTo(ScrollMiddle, ScrollEnd) },
		"scroll right bottom":  func() { v.ScrollTo(ScrollEnd, ScrollEnd) },
		"scroll left middle":   func() { v.ScrollTo(ScrollStart, ScrollMiddle) },
		"scroll middle":        func() { v.ScrollTo(ScrollMiddle, ScrollMiddle) },
		"scroll right middle":  func() { v.ScrollTo(ScrollEnd, ScrollMiddle) },
		"scroll left top":      func() { v.ScrollTo(ScrollStart, ScrollStart) },
		"scroll middle top":    func() { v.ScrollTo(ScrollMiddle, ScrollStart) },
		"scroll right top":     func() { v.ScrollTo(ScrollEnd, ScrollStart) },

		"exit fullscreen":   func() { v.Fullscreen = false },
		"toggle fullscreen": func() { v.Fullscreen = !v.Fullscreen },

		"zoom in":       func() { v.ZoomBy(6, 5) },
		"zoom out":      func() { v.ZoomBy(5, 6) },
		"zoom original": func() { v.Zoom = DefaultZoom },

		"scroll down":  func() { v.Scroll(0, scrollStep) },
		"scroll up":    func() { v.Scroll(0, -scrollStep) },
		"scroll right": func() { v.Scroll(scrollStep, 0) },
		"scroll left":  func() { v.Scroll(-scrollStep, 0) },

		"smart scroll up":   func() { v.SmartScroll(-1) },
		"smart scroll down": func() { v.SmartScroll(1) },

		"osd panel": func() { v.OSD = !v.OSD },
	}
}

func clamp(n, lo, hi int) int {
	return max(lo, min(n, hi))
}
