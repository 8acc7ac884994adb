package ui

import (
	"fmt"
	"image/color"
	"math"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/tidegear/planechess/internal/board"
)

// Theme defines the color scheme for the board.
type Theme struct {
	LightSquare    color.RGBA
	DarkSquare     color.RGBA
	SelectedSquare color.RGBA
	LegalMoveColor color.RGBA
	LastMoveColor  color.RGBA
	CheckColor     color.RGBA
	BoardBorder    color.RGBA
	Background     color.RGBA
	TextColor      color.RGBA
	ButtonColor    color.RGBA
	ButtonHover    color.RGBA
}

// DefaultTheme returns the default color theme.
func DefaultTheme() *Theme {
	return &Theme{
		LightSquare:    color.RGBA{240, 217, 181, 255}, // Tan
		DarkSquare:     color.RGBA{181, 136, 99, 255},  // Brown
		SelectedSquare: color.RGBA{247, 247, 105, 180}, // Yellow highlight
		LegalMoveColor: color.RGBA{130, 151, 105, 200}, // Green dots
		LastMoveColor:  color.RGBA{180, 190, 100, 90},  // Softer yellow-green (reduced alpha)
		CheckColor:     color.RGBA{255, 100, 100, 180}, // Red
		BoardBorder:    color.RGBA{150, 140, 120, 255}, // Extent outline
		Background:     color.RGBA{40, 44, 52, 255},    // Dark gray
		TextColor:      color.RGBA{220, 220, 220, 255}, // Light gray
		ButtonColor:    color.RGBA{60, 64, 72, 255},    // Medium gray
		ButtonHover:    color.RGBA{80, 84, 92, 255},    // Lighter gray
	}
}

// Zoom limits in logical pixels per square. Effective limits scale
// with the monitor scale factor.
const (
	minZoom = 8.0
	maxZoom = 160.0
)

// camLimit bounds how far the camera can wander from the origin. Keeping
// world coordinates at or below 1e15 means every square index the camera
// can see converts exactly between float64 and int64.
const camLimit = 1e15

// Renderer draws the board through a world-space camera. The camera
// holds the world point at the viewport center and the square size in
// device pixels, so it can frame either a fixed classical board or any
// window onto the unbounded plane.
type Renderer struct {
	sprites *SpriteManager
	theme   *Theme
	camX    float64 // world X at the viewport center
	camY    float64 // world Y at the viewport center
	size    float64 // device pixels per square
}

// NewRenderer creates a new renderer framing the classical board.
func NewRenderer() *Renderer {
	r := &Renderer{
		sprites: NewSpriteManager(SquareSize),
		theme:   DefaultTheme(),
	}
	r.CenterOn(board.ClassicalBounds())
	return r
}

// Viewport returns the board viewport edge length in device pixels.
func (r *Renderer) Viewport() float64 {
	return scaleD(BoardSize)
}

// SquareSize returns the current square size in device pixels.
func (r *Renderer) SquareSize() float64 {
	return r.size
}

// Theme returns the current theme.
func (r *Renderer) Theme() *Theme {
	return r.theme
}

// Sprites returns the sprite manager.
func (r *Renderer) Sprites() *SpriteManager {
	return r.sprites
}

// worldAt converts viewport coordinates to world coordinates.
func (r *Renderer) worldAt(mx, my float64) (float64, float64) {
	vp := r.Viewport()
	wx := r.camX + (mx-vp/2)/r.size
	wy := r.camY - (my-vp/2)/r.size
	return wx, wy
}

// SquareToScreen returns the top-left viewport corner of a square.
// The square sq covers the world rect [X,X+1) x [Y,Y+1) with Y up.
func (r *Renderer) SquareToScreen(sq board.Point) (float64, float64) {
	vp := r.Viewport()
	x := vp/2 + (float64(sq.X)-r.camX)*r.size
	y := vp/2 - (float64(sq.Y)+1-r.camY)*r.size
	return x, y
}

// ScreenToSquare converts viewport coordinates to the square under them.
// Sampling happens at the pixel center so viewport edges never round
// into the neighboring square.
func (r *Renderer) ScreenToSquare(mx, my int) (board.Point, bool) {
	vp := r.Viewport()
	fx, fy := float64(mx), float64(my)
	if fx < 0 || fy < 0 || fx >= vp || fy >= vp {
		return board.Point{}, false
	}
	wx, wy := r.worldAt(fx+0.5, fy+0.5)
	if math.Abs(wx) > camLimit || math.Abs(wy) > camLimit {
		return board.Point{}, false
	}
	return board.Pt(int64(math.Floor(wx)), int64(math.Floor(wy))), true
}

// CenterOn frames the given bounds, fitting the longer side to the
// viewport within the zoom limits.
func (r *Renderer) CenterOn(b board.Bounds) {
	w := float64(b.Max.X) - float64(b.Min.X) + 1
	h := float64(b.Max.Y) - float64(b.Min.Y) + 1
	r.camX = float64(b.Min.X) + w/2
	r.camY = float64(b.Min.Y) + h/2
	r.size = clampZoom(r.Viewport() / math.Max(w, h))
	r.clampCamera()
}

// CenterOnPoint moves the camera over a square without changing zoom.
func (r *Renderer) CenterOnPoint(p board.Point) {
	r.camX = float64(p.X) + 0.5
	r.camY = float64(p.Y) + 0.5
	r.clampCamera()
}

// Pan shifts the camera by a viewport-pixel delta, so dragging keeps
// the world glued to the cursor.
func (r *Renderer) Pan(dx, dy float64) {
	r.camX -= dx / r.size
	r.camY += dy / r.size
	r.clampCamera()
}

// PanSquares shifts the camera by whole squares.
func (r *Renderer) PanSquares(dx, dy int64) {
	r.camX += float64(dx)
	r.camY += float64(dy)
	r.clampCamera()
}

// ZoomAt scales the square size by factor, keeping the world point
// under the given viewport position fixed.
func (r *Renderer) ZoomAt(factor float64, mx, my int) {
	wx, wy := r.worldAt(float64(mx), float64(my))
	r.size = clampZoom(r.size * factor)
	vp := r.Viewport()
	r.camX = wx - (float64(mx)-vp/2)/r.size
	r.camY = wy + (float64(my)-vp/2)/r.size
	r.clampCamera()
}

func clampZoom(size float64) float64 {
	lo := minZoom * UIScale
	hi := maxZoom * UIScale
	if size < lo {
		return lo
	}
	if size > hi {
		return hi
	}
	return size
}

func (r *Renderer) clampCamera() {
	r.camX = math.Max(-camLimit, math.Min(camLimit, r.camX))
	r.camY = math.Max(-camLimit, math.Min(camLimit, r.camY))
}

// VisibleBounds returns the square window the viewport currently shows.
func (r *Renderer) VisibleBounds() board.Bounds {
	half := r.Viewport() / 2 / r.size
	return board.Bounds{
		Min: board.Pt(floorClamp(r.camX-half), floorClamp(r.camY-half)),
		Max: board.Pt(floorClamp(r.camX+half), floorClamp(r.camY+half)),
	}
}

func floorClamp(v float64) int64 {
	v = math.Max(-camLimit, math.Min(camLimit, v))
	return int64(math.Floor(v))
}

func intersectBounds(a, b board.Bounds) (board.Bounds, bool) {
	out := board.Bounds{
		Min: board.Pt(max64(a.Min.X, b.Min.X), max64(a.Min.Y, b.Min.Y)),
		Max: board.Pt(min64(a.Max.X, b.Max.X), min64(a.Max.Y, b.Max.Y)),
	}
	return out, out.Min.X <= out.Max.X && out.Min.Y <= out.Max.Y
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

// DrawBoard draws the visible board squares and the extent outline.
func (r *Renderer) DrawBoard(screen *ebiten.Image, s *board.State) {
	vis := r.VisibleBounds()
	extent, bounded := s.Extent()

	fill := vis
	ok := true
	if bounded {
		fill, ok = intersectBounds(vis, extent)
	}

	if ok {
		for y := fill.Min.Y; y <= fill.Max.Y; y++ {
			for x := fill.Min.X; x <= fill.Max.X; x++ {
				sx, sy := r.SquareToScreen(board.Pt(x, y))

				var c color.RGBA
				if ((x+y)%2+2)%2 == 0 {
					c = r.theme.DarkSquare
				} else {
					c = r.theme.LightSquare
				}

				vector.DrawFilledRect(screen, float32(sx), float32(sy), float32(r.size), float32(r.size), c, false)
			}
		}
	}

	if bounded {
		r.drawExtentBorder(screen, extent)
	}
}

// drawExtentBorder outlines the playable area.
func (r *Renderer) drawExtentBorder(screen *ebiten.Image, extent board.Bounds) {
	vp := r.Viewport()
	x0, y0 := r.SquareToScreen(board.Pt(extent.Min.X, extent.Max.Y))
	x1, y1 := r.SquareToScreen(board.Pt(extent.Max.X, extent.Min.Y))
	x1 += r.size
	y1 += r.size

	if x1 <= 0 || y1 <= 0 || x0 >= vp || y0 >= vp {
		return
	}
	// Clamp so distant corners stay within float32 range
	x0 = math.Max(x0, -8)
	y0 = math.Max(y0, -8)
	x1 = math.Min(x1, vp+8)
	y1 = math.Min(y1, vp+8)

	vector.StrokeRect(screen, float32(x0), float32(y0), float32(x1-x0), float32(y1-y0), 2, r.theme.BoardBorder, false)
}

// DrawCoordinates draws file and rank labels along the viewport edges.
// Labels are skipped when squares get too small to letter.
func (r *Renderer) DrawCoordinates(screen *ebiten.Image, s *board.State) {
	if r.size < 28*UIScale {
		return
	}
	face := GetSmallFace()
	if face == nil {
		return
	}

	vis := r.VisibleBounds()
	extent, bounded := s.Extent()
	classical := bounded && extent == board.ClassicalBounds()
	vp := r.Viewport()
	pad := scaleD(4)

	// File labels along the bottom edge
	for x := vis.Min.X; x <= vis.Max.X; x++ {
		if bounded && (x < extent.Min.X || x > extent.Max.X) {
			continue
		}
		label := fileLabel(x, classical)
		sx, _ := r.SquareToScreen(board.Pt(x, 0))
		w, h := MeasureText(label, face)
		r.drawLabel(screen, label, face, sx+r.size/2-w/2, vp-h-pad)
	}

	// Rank labels along the left edge
	for y := vis.Min.Y; y <= vis.Max.Y; y++ {
		if bounded && (y < extent.Min.Y || y > extent.Max.Y) {
			continue
		}
		label := strconv.FormatInt(y, 10)
		_, sy := r.SquareToScreen(board.Pt(0, y))
		_, h := MeasureText(label, face)
		r.drawLabel(screen, label, face, pad, sy+r.size/2-h/2)
	}
}

// drawLabel draws text with a one-pixel shadow so it reads on both
// square colors.
func (r *Renderer) drawLabel(screen *ebiten.Image, label string, face text.Face, x, y float64) {
	shadow := &text.DrawOptions{}
	shadow.GeoM.Translate(x+scaleD(1), y+scaleD(1))
	shadow.ColorScale.ScaleWithColor(color.RGBA{0, 0, 0, 160})
	text.Draw(screen, label, face, shadow)

	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(r.theme.TextColor)
	text.Draw(screen, label, face, op)
}

// fileLabel names a file: letters on the classical board, file numbers
// on the open plane.
func fileLabel(x int64, classical bool) string {
	if classical && x >= 1 && x <= 8 {
		return string(rune('a' + x - 1))
	}
	return strconv.FormatInt(x, 10)
}

// DrawHighlights draws selection, legal move, and last move highlights.
func (r *Renderer) DrawHighlights(screen *ebiten.Image, selected *board.Point, legalMoves []board.Move, lastMove *board.Move) {
	// Highlight last move
	if lastMove != nil {
		r.highlightSquare(screen, lastMove.From, r.theme.LastMoveColor)
		r.highlightSquare(screen, lastMove.To, r.theme.LastMoveColor)
	}

	// Highlight selected square
	if selected != nil {
		r.highlightSquare(screen, *selected, r.theme.SelectedSquare)
	}

	// Draw legal move indicators
	for _, move := range legalMoves {
		r.drawLegalMoveIndicator(screen, move.To)
	}
}

// DrawCheck highlights the king's square while in check.
func (r *Renderer) DrawCheck(screen *ebiten.Image, kingSq board.Point) {
	r.highlightSquare(screen, kingSq, r.theme.CheckColor)
}

// highlightSquare draws a colored overlay on a square.
func (r *Renderer) highlightSquare(screen *ebiten.Image, sq board.Point, c color.RGBA) {
	x, y := r.SquareToScreen(sq)
	vp := r.Viewport()
	if x+r.size < 0 || y+r.size < 0 || x > vp || y > vp {
		return
	}
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(r.size), float32(r.size), c, false)
}

// drawLegalMoveIndicator draws a circle on legal move squares.
func (r *Renderer) drawLegalMoveIndicator(screen *ebiten.Image, sq board.Point) {
	x, y := r.SquareToScreen(sq)
	vp := r.Viewport()
	if x+r.size < 0 || y+r.size < 0 || x > vp || y > vp {
		return
	}
	cx := float32(x + r.size/2)
	cy := float32(y + r.size/2)
	radius := float32(r.size * 0.15)

	vector.DrawFilledCircle(screen, cx, cy, radius, r.theme.LegalMoveColor, false)
}

// DrawPieces draws all visible pieces, with optional shake animations.
func (r *Renderer) DrawPieces(screen *ebiten.Image, s *board.State, dragging bool, dragSquare board.Point, anims *AnimationManager) {
	pieces := s.Pieces()
	vp := r.Viewport()

	for h := 0; h < pieces.Len(); h++ {
		p := pieces.Get(h)
		if !p.Alive {
			continue
		}
		// Skip the dragged piece
		if dragging && p.Pos == dragSquare {
			continue
		}

		x, y := r.SquareToScreen(p.Pos)
		if x+r.size < 0 || y+r.size < 0 || x > vp || y > vp {
			continue
		}

		// Apply shake offset if animations are active
		if anims != nil {
			offsetX, offsetY := anims.GetShakeOffset(p.Pos)
			x += offsetX
			y += offsetY
		}

		r.sprites.DrawPieceAt(screen, p.Type, p.Color, x, y, r.size)
	}
}

// DrawDraggedPiece draws the piece being dragged, centered on the cursor.
func (r *Renderer) DrawDraggedPiece(screen *ebiten.Image, pieceType board.PieceType, c board.Color, mouseX, mouseY int) {
	x := float64(mouseX) - r.size/2
	y := float64(mouseY) - r.size/2
	r.sprites.DrawPieceAt(screen, pieceType, c, x, y, r.size)
}

// DrawViewportInfo shows where the camera is over the open plane.
func (r *Renderer) DrawViewportInfo(screen *ebiten.Image) {
	face := GetSmallFace()
	if face == nil {
		return
	}

	center := board.Pt(floorClamp(r.camX), floorClamp(r.camY))
	label := fmt.Sprintf("center %s  zoom %.0fpx", center, r.size/UIScale)

	w, h := MeasureText(label, face)
	pad := scaleD(6)
	x := scaleD(8)
	y := scaleD(8)

	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w+pad*2), float32(h+pad*2),
		color.RGBA{30, 33, 40, 200}, false)

	op := &text.DrawOptions{}
	op.GeoM.Translate(x+pad, y+pad)
	op.ColorScale.ScaleWithColor(r.theme.TextColor)
	text.Draw(screen, label, face, op)
}
