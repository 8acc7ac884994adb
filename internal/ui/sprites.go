// Package ui implements the graphical game client using Ebitengine.
package ui

import (
	"bytes"
	"embed"
	"image"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/tidegear/planechess/internal/board"
)

//go:embed assets/pieces/*.svg
var pieceAssets embed.FS

// pieceKey identifies a sprite by kind and color.
type pieceKey struct {
	t board.PieceType
	c board.Color
}

// pieceFiles maps piece kinds to their asset file paths.
var pieceFiles = map[pieceKey]string{
	{board.Pawn, board.White}:   "assets/pieces/wP.svg",
	{board.Knight, board.White}: "assets/pieces/wN.svg",
	{board.Bishop, board.White}: "assets/pieces/wB.svg",
	{board.Rook, board.White}:   "assets/pieces/wR.svg",
	{board.Queen, board.White}:  "assets/pieces/wQ.svg",
	{board.King, board.White}:   "assets/pieces/wK.svg",
	{board.Pawn, board.Black}:   "assets/pieces/bP.svg",
	{board.Knight, board.Black}: "assets/pieces/bN.svg",
	{board.Bishop, board.Black}: "assets/pieces/bB.svg",
	{board.Rook, board.Black}:   "assets/pieces/bR.svg",
	{board.Queen, board.Black}:  "assets/pieces/bQ.svg",
	{board.King, board.Black}:   "assets/pieces/bK.svg",
}

// SpriteManager rasterizes and caches piece sprites. Sprites are rendered
// once at a fixed high resolution and scaled down at draw time, so the
// same cache serves every zoom level the camera reaches.
type SpriteManager struct {
	pieces     map[pieceKey]*ebiten.Image
	renderSize int
}

// NewSpriteManager creates a sprite manager. baseSize is the nominal
// on-screen square size; sprites are rasterized at three times that so
// they stay sharp when the camera zooms in.
func NewSpriteManager(baseSize int) *SpriteManager {
	sm := &SpriteManager{
		pieces:     make(map[pieceKey]*ebiten.Image),
		renderSize: baseSize * 3,
	}
	sm.loadPieces()
	return sm
}

// loadPieces rasterizes all piece sprites from the embedded SVG files.
func (sm *SpriteManager) loadPieces() {
	for key, path := range pieceFiles {
		data, err := pieceAssets.ReadFile(path)
		if err != nil {
			log.Printf("Failed to read piece asset %s: %v", path, err)
			continue
		}

		icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
		if err != nil {
			log.Printf("Failed to parse SVG %s: %v", path, err)
			continue
		}
		icon.SetTarget(0, 0, float64(sm.renderSize), float64(sm.renderSize))

		rgba := image.NewRGBA(image.Rect(0, 0, sm.renderSize, sm.renderSize))
		scanner := rasterx.NewScannerGV(sm.renderSize, sm.renderSize, rgba, rgba.Bounds())
		raster := rasterx.NewDasher(sm.renderSize, sm.renderSize, scanner)
		icon.Draw(raster, 1.0)

		sm.pieces[key] = ebiten.NewImageFromImage(rgba)
	}
}

// Get returns the sprite for a piece kind, or nil if the asset failed to
// load.
func (sm *SpriteManager) Get(t board.PieceType, c board.Color) *ebiten.Image {
	return sm.pieces[pieceKey{t, c}]
}

// DrawPieceAt draws a piece with its top-left corner at the given screen
// position, scaled to fill size pixels. All values are device pixels.
func (sm *SpriteManager) DrawPieceAt(screen *ebiten.Image, t board.PieceType, c board.Color, x, y, size float64) {
	sprite := sm.Get(t, c)
	if sprite == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	scale := size / float64(sm.renderSize)
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(sprite, op)
}
