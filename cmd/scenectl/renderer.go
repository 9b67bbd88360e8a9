package main

import "fmt"

// logRenderer is the headless recording Renderer scenectl drives the
// Compositor against: it has no canvas, it just prints the draw-call
// sequence the Compositor would have issued to a real surface.
type logRenderer struct {
	calls int
}

func (r *logRenderer) Save()    { r.calls++; fmt.Println("save") }
func (r *logRenderer) Restore() { r.calls++; fmt.Println("restore") }
func (r *logRenderer) Translate(x, y float64) {
	r.calls++
	fmt.Printf("translate %.4f %.4f\n", x, y)
}
func (r *logRenderer) Rotate(radians float64) {
	r.calls++
	fmt.Printf("rotate %.4f\n", radians)
}
func (r *logRenderer) Scale(sx, sy float64) {
	r.calls++
	fmt.Printf("scale %.4f %.4f\n", sx, sy)
}
func (r *logRenderer) BeginPath() { r.calls++; fmt.Println("beginPath") }
func (r *logRenderer) MoveTo(x, y float64) {
	r.calls++
	fmt.Printf("moveTo %.4f %.4f\n", x, y)
}
func (r *logRenderer) LineTo(x, y float64) {
	r.calls++
	fmt.Printf("lineTo %.4f %.4f\n", x, y)
}
func (r *logRenderer) BezierCurveTo(p1x, p1y, p2x, p2y, p3x, p3y float64) {
	r.calls++
	fmt.Printf("bezierCurveTo %.4f %.4f %.4f %.4f %.4f %.4f\n", p1x, p1y, p2x, p2y, p3x, p3y)
}
func (r *logRenderer) ClosePath() { r.calls++; fmt.Println("closePath") }
func (r *logRenderer) SetFillStyle(style string) {
	r.calls++
	fmt.Printf("fillStyle %s\n", style)
}
func (r *logRenderer) SetStrokeStyle(style string) {
	r.calls++
	fmt.Printf("strokeStyle %s\n", style)
}
func (r *logRenderer) SetLineWidth(width float64) {
	r.calls++
	fmt.Printf("lineWidth %.4f\n", width)
}
func (r *logRenderer) SetLineCap(cap string) {
	r.calls++
	fmt.Printf("lineCap %s\n", cap)
}
func (r *logRenderer) Fill()   { r.calls++; fmt.Println("fill") }
func (r *logRenderer) Stroke() { r.calls++; fmt.Println("stroke") }
func (r *logRenderer) CreatePattern(imageRef string) string {
	r.calls++
	fmt.Printf("createPattern %s\n", imageRef)
	return imageRef
}
func (r *logRenderer) DrawImage(imageRef string, x, y, w, h float64) {
	r.calls++
	fmt.Printf("drawImage %s %.4f %.4f %.4f %.4f\n", imageRef, x, y, w, h)
}
func (r *logRenderer) ClearRect(x, y, w, h float64) {
	r.calls++
	fmt.Printf("clearRect %.4f %.4f %.4f %.4f\n", x, y, w, h)
}
func (r *logRenderer) GetImageData(x, y, w, h float64) []byte { return nil }
func (r *logRenderer) PutImageData(data []byte, x, y float64) {
	r.calls++
	fmt.Printf("putImageData %.4f %.4f\n", x, y)
}
func (r *logRenderer) IsPointInPath(x, y float64) bool { return false }
