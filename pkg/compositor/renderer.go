// Package compositor implements spec §4.H: the at-time evaluation that
// turns a GraphicsObject tree into a sequence of renderer calls.
package compositor

import "github.com/AureClai/scenecore/pkg/id"

// Renderer is the abstract 2D rendering surface the compositor draws
// through (spec §6's Renderer contract): affine transforms, path
// construction, fill/stroke, bitmap patterns, and raster access. It is
// deliberately narrow and stateful (save/restore) to match a retained
// canvas-style surface rather than an immediate-mode draw-call list.
type Renderer interface {
	Save()
	Restore()

	Translate(x, y float64)
	Rotate(radians float64)
	Scale(sx, sy float64)

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	BezierCurveTo(p1x, p1y, p2x, p2y, p3x, p3y float64)
	ClosePath()

	SetFillStyle(style string)
	SetStrokeStyle(style string)
	SetLineWidth(width float64)
	SetLineCap(cap string)

	Fill()
	Stroke()

	CreatePattern(imageRef string) string
	DrawImage(imageRef string, x, y, w, h float64)
	ClearRect(x, y, w, h float64)

	GetImageData(x, y, w, h float64) []byte
	PutImageData(data []byte, x, y float64)

	IsPointInPath(x, y float64) bool
}

// VideoRenderer is the out-of-scope delegate for video layers (spec §4.H:
// "delegate to video draw (out of scope; interface in §6)"). The
// compositor calls it if set; a nil VideoRenderer silently skips video
// layers, which keeps the core renderable without a media backend wired
// in.
type VideoRenderer interface {
	DrawVideoLayer(layerID string, t float64, ctx Renderer)
}
