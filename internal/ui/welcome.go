package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/tidegear/planechess/internal/storage"
)

// Welcome screen dimensions (logical pixels)
const (
	WelcomeWidth  = 400
	WelcomeHeight = 380
	WelcomePadX   = 32
	WelcomePadY   = 24
)

// WelcomeScreen is shown on first launch.
type WelcomeScreen struct {
	visible bool

	// Position in device pixels (centered on screen)
	x, y int

	// Widgets
	nameInput *TextInput
	modeRadio *RadioGroup
	startBtn  *ModalButton

	// Callback
	onComplete func(name string, mode storage.BoardMode)
}

// NewWelcomeScreen creates a new welcome screen.
func NewWelcomeScreen() *WelcomeScreen {
	ws := &WelcomeScreen{}
	ws.calculatePosition()
	ws.createWidgets()
	return ws
}

// Rebuild recomputes the layout after the scale factor changes,
// preserving any values already entered.
func (ws *WelcomeScreen) Rebuild() {
	name := ws.nameInput.Value
	mode := ws.modeRadio.Selected

	ws.calculatePosition()
	ws.createWidgets()

	ws.nameInput.Value = name
	ws.modeRadio.Selected = mode
	ws.startBtn.OnClick = ws.handleStart
}

// calculatePosition centers the screen.
func (ws *WelcomeScreen) calculatePosition() {
	ws.x = scaleI((ScreenWidth - WelcomeWidth) / 2)
	ws.y = scaleI((ScreenHeight - WelcomeHeight) / 2)
}

// createWidgets initializes all welcome screen widgets.
func (ws *WelcomeScreen) createWidgets() {
	contentX := ws.x + scaleI(WelcomePadX)
	contentW := scaleI(WelcomeWidth - WelcomePadX*2)

	// Name input
	inputY := ws.y + scaleI(140)
	ws.nameInput = NewTextInput(contentX, inputY, contentW, scaleI(40), "Enter your name", 20)

	// Board mode radio
	radioY := ws.y + scaleI(220)
	ws.modeRadio = NewRadioGroup(contentX, radioY, []RadioOption{
		{Label: "Standard Board (8x8)", Value: int(storage.ModeStandard)},
		{Label: "Boundless Plane", Value: int(storage.ModeBoundless)},
	}, 0)

	// Start button
	btnW := scaleI(160)
	btnH := scaleI(44)
	btnX := ws.x + (scaleI(WelcomeWidth)-btnW)/2
	btnY := ws.y + scaleI(WelcomeHeight-WelcomePadY) - btnH
	ws.startBtn = NewModalButton(btnX, btnY, btnW, btnH, "Start Playing", true, nil)
}

// Show displays the welcome screen.
func (ws *WelcomeScreen) Show(onComplete func(name string, mode storage.BoardMode)) {
	ws.visible = true
	ws.onComplete = onComplete
	ws.nameInput.Value = ""
	ws.modeRadio.Selected = 0
	ws.startBtn.OnClick = ws.handleStart
}

// Hide closes the welcome screen.
func (ws *WelcomeScreen) Hide() {
	ws.visible = false
	ws.nameInput.SetFocused(false)
}

// IsVisible returns true if the screen is visible.
func (ws *WelcomeScreen) IsVisible() bool {
	return ws.visible
}

// handleStart handles the start button click.
func (ws *WelcomeScreen) handleStart() {
	name := ws.nameInput.Value
	if name == "" {
		name = "Player"
	}
	mode := storage.BoardMode(ws.modeRadio.Selected)

	if ws.onComplete != nil {
		ws.onComplete(name, mode)
	}
	ws.Hide()
}

// Update handles input for the welcome screen.
func (ws *WelcomeScreen) Update(input *InputHandler) bool {
	if !ws.visible {
		return false
	}

	// Handle enter key to start
	if IsKeyJustPressed(ebiten.KeyEnter) && !ws.nameInput.IsFocused() {
		ws.handleStart()
		return true
	}

	// Update widgets
	ws.nameInput.Update(input)
	ws.modeRadio.Update(input)
	ws.startBtn.Update(input)

	// Welcome screen consumes all input
	return true
}

// AnyButtonHovered returns true if any button in the screen is hovered.
func (ws *WelcomeScreen) AnyButtonHovered() bool {
	if !ws.visible {
		return false
	}
	return ws.startBtn.IsHovered() || ws.modeRadio.hovered >= 0
}

// Draw renders the welcome screen.
func (ws *WelcomeScreen) Draw(screen *ebiten.Image, blur *BlurEffect) {
	if !ws.visible {
		return
	}

	// Frosted, dimmed background
	if blur != nil {
		blur.DrawFrosted(screen, 0, 0, scaleI(ScreenWidth), scaleI(ScreenHeight),
			color.RGBA{0, 0, 0, 100}, 3.0)
	} else {
		// Fallback: semi-transparent overlay
		vector.DrawFilledRect(screen, 0, 0, scaleF(ScreenWidth), scaleF(ScreenHeight), modalOverlay, false)
	}

	// Modal background
	vector.DrawFilledRect(screen, float32(ws.x), float32(ws.y), scaleF(WelcomeWidth), scaleF(WelcomeHeight), modalBg, false)

	// Modal border
	vector.StrokeRect(screen, float32(ws.x), float32(ws.y), scaleF(WelcomeWidth), scaleF(WelcomeHeight), float32(UIScale*2), modalBorder, false)

	// Draw board icon
	ws.drawBoardIcon(screen)

	// Draw title
	ws.drawTitle(screen)

	// Draw subtitle
	ws.drawSubtitle(screen)

	// Section label for name
	contentX := ws.x + scaleI(WelcomePadX)
	ws.drawSectionLabel(screen, "Your Name", contentX, ws.nameInput.Y-scaleI(20))

	// Section label for board mode
	ws.drawSectionLabel(screen, "Board", contentX, ws.modeRadio.Y-scaleI(20))

	// Draw widgets
	ws.nameInput.Draw(screen)
	ws.modeRadio.Draw(screen)
	ws.startBtn.Draw(screen)
}

// drawBoardIcon draws a small board fragment with one square escaping
// the grid.
func (ws *WelcomeScreen) drawBoardIcon(screen *ebiten.Image) {
	left := float32(ws.x) + scaleF(WelcomeWidth/2) - scaleF(16)
	top := float32(ws.y) + scaleF(22)
	sq := scaleF(8)

	iconColor := accentColor

	// 2x2 checkered fragment
	vector.DrawFilledRect(screen, left, top+sq, sq, sq, iconColor, false)
	vector.DrawFilledRect(screen, left+sq, top, sq, sq, iconColor, false)
	vector.StrokeRect(screen, left, top, sq*2, sq*2, 1, iconColor, false)

	// Detached square drifting off the grid
	vector.StrokeRect(screen, left+sq*3, top-sq/2, sq, sq, 1, iconColor, false)
}

// drawTitle draws the main title.
func (ws *WelcomeScreen) drawTitle(screen *ebiten.Image) {
	face := GetFaceWithSize(24)
	if face == nil {
		return
	}

	title := "PLANECHESS"
	w, _ := MeasureText(title, face)
	centerX := float64(ws.x) + scaleD(WelcomeWidth)/2 - w/2

	op := &text.DrawOptions{}
	op.GeoM.Translate(centerX, float64(ws.y)+scaleD(64))
	op.ColorScale.ScaleWithColor(textPrimary)
	text.Draw(screen, title, face, op)
}

// drawSubtitle draws the subtitle.
func (ws *WelcomeScreen) drawSubtitle(screen *ebiten.Image) {
	face := GetRegularFace()
	if face == nil {
		return
	}

	subtitle := "Chess on a board of any size. Or none."
	w, _ := MeasureText(subtitle, face)
	centerX := float64(ws.x) + scaleD(WelcomeWidth)/2 - w/2

	op := &text.DrawOptions{}
	op.GeoM.Translate(centerX, float64(ws.y)+scaleD(96))
	op.ColorScale.ScaleWithColor(textSecondary)
	text.Draw(screen, subtitle, face, op)
}

// drawSectionLabel draws a section label.
func (ws *WelcomeScreen) drawSectionLabel(screen *ebiten.Image, label string, x, y int) {
	face := GetRegularFace()
	if face == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(color.RGBA{160, 165, 175, 255})
	text.Draw(screen, label, face, op)
}
