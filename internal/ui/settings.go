package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/tidegear/planechess/internal/storage"
)

// Settings modal dimensions (logical pixels)
const (
	SettingsWidth  = 380
	SettingsHeight = 400
	SettingsPadX   = 24
	SettingsPadY   = 20
)

// Settings modal colors
var (
	modalOverlay = color.RGBA{0, 0, 0, 180}
	modalBg      = color.RGBA{38, 40, 45, 255}
	modalHeader  = color.RGBA{48, 52, 58, 255}
	modalBorder  = color.RGBA{58, 62, 68, 255}
)

// SettingsModal is the settings configuration screen.
type SettingsModal struct {
	visible bool

	// Position in device pixels (centered on screen)
	x, y int

	// Widgets
	usernameInput  *TextInput
	modeBtns       *ButtonGroup
	coordsCheckbox *Checkbox
	soundCheckbox  *Checkbox
	saveBtn        *ModalButton
	cancelBtn      *ModalButton

	// Callbacks
	onSave   func(prefs *storage.UserPreferences)
	onCancel func()
}

// NewSettingsModal creates a new settings modal.
func NewSettingsModal() *SettingsModal {
	sm := &SettingsModal{}
	sm.calculatePosition()
	sm.createWidgets()
	return sm
}

// Rebuild recomputes the layout after the scale factor changes,
// preserving any values already entered.
func (sm *SettingsModal) Rebuild() {
	username := sm.usernameInput.Value
	mode := sm.modeBtns.Selected
	coords := sm.coordsCheckbox.Checked
	sound := sm.soundCheckbox.Checked

	sm.calculatePosition()
	sm.createWidgets()

	sm.usernameInput.Value = username
	sm.modeBtns.Selected = mode
	sm.coordsCheckbox.Checked = coords
	sm.soundCheckbox.Checked = sound
	sm.saveBtn.OnClick = sm.handleSave
	sm.cancelBtn.OnClick = sm.handleCancel
}

// calculatePosition centers the modal on screen.
func (sm *SettingsModal) calculatePosition() {
	sm.x = scaleI((ScreenWidth - SettingsWidth) / 2)
	sm.y = scaleI((ScreenHeight - SettingsHeight) / 2)
}

// createWidgets initializes all settings widgets.
func (sm *SettingsModal) createWidgets() {
	contentX := sm.x + scaleI(SettingsPadX)
	contentW := scaleI(SettingsWidth - SettingsPadX*2)

	// Username input (below header)
	inputY := sm.y + scaleI(76)
	sm.usernameInput = NewTextInput(contentX, inputY, contentW, scaleI(36), "Enter your name", 20)

	// Board mode buttons
	modeY := sm.y + scaleI(152)
	sm.modeBtns = NewButtonGroup(contentX, modeY, []string{"Standard", "Boundless"}, 0, contentW/2, scaleI(34))

	// Coordinate labels checkbox
	coordsY := sm.y + scaleI(226)
	sm.coordsCheckbox = NewCheckbox(contentX, coordsY, "Show Coordinates", true)

	// Sound checkbox
	soundY := sm.y + scaleI(290)
	sm.soundCheckbox = NewCheckbox(contentX, soundY, "Sound Effects", true)

	// Buttons at bottom
	btnW := scaleI(100)
	btnH := scaleI(38)
	btnY := sm.y + scaleI(SettingsHeight-SettingsPadY) - btnH
	btnSpacing := scaleI(12)

	sm.cancelBtn = NewModalButton(
		sm.x+scaleI(SettingsWidth-SettingsPadX)-btnW*2-btnSpacing,
		btnY, btnW, btnH, "Cancel", false, nil,
	)
	sm.saveBtn = NewModalButton(
		sm.x+scaleI(SettingsWidth-SettingsPadX)-btnW,
		btnY, btnW, btnH, "Save", true, nil,
	)
}

// Show displays the settings modal with the given preferences.
func (sm *SettingsModal) Show(prefs *storage.UserPreferences, onSave func(*storage.UserPreferences), onCancel func()) {
	sm.visible = true
	sm.onSave = onSave
	sm.onCancel = onCancel

	// Load current values into widgets
	sm.usernameInput.Value = prefs.Username
	sm.modeBtns.Selected = int(prefs.BoardMode)
	sm.coordsCheckbox.Checked = prefs.ShowCoordinates
	sm.soundCheckbox.Checked = prefs.SoundEnabled

	// Set button callbacks
	sm.saveBtn.OnClick = sm.handleSave
	sm.cancelBtn.OnClick = sm.handleCancel
}

// Hide closes the settings modal.
func (sm *SettingsModal) Hide() {
	sm.visible = false
	sm.usernameInput.SetFocused(false)
}

// IsVisible returns true if the modal is visible.
func (sm *SettingsModal) IsVisible() bool {
	return sm.visible
}

// handleSave saves settings and closes the modal.
func (sm *SettingsModal) handleSave() {
	prefs := &storage.UserPreferences{
		Username:        sm.usernameInput.Value,
		SoundEnabled:    sm.soundCheckbox.Checked,
		ShowCoordinates: sm.coordsCheckbox.Checked,
		BoardMode:       storage.BoardMode(sm.modeBtns.Selected),
	}

	// Use default name if empty
	if prefs.Username == "" {
		prefs.Username = "Player"
	}

	if sm.onSave != nil {
		sm.onSave(prefs)
	}
	sm.Hide()
}

// handleCancel discards changes and closes the modal.
func (sm *SettingsModal) handleCancel() {
	if sm.onCancel != nil {
		sm.onCancel()
	}
	sm.Hide()
}

// Update handles input for the settings modal.
func (sm *SettingsModal) Update(input *InputHandler) bool {
	if !sm.visible {
		return false
	}

	// Handle escape key to close
	if IsKeyJustPressed(ebiten.KeyEscape) {
		sm.handleCancel()
		return true
	}

	// Handle enter key to save
	if IsKeyJustPressed(ebiten.KeyEnter) && !sm.usernameInput.IsFocused() {
		sm.handleSave()
		return true
	}

	// Update widgets
	sm.usernameInput.Update(input)
	sm.modeBtns.Update(input)
	sm.coordsCheckbox.Update(input)
	sm.soundCheckbox.Update(input)
	sm.saveBtn.Update(input)
	sm.cancelBtn.Update(input)

	// Modal consumes all input
	return true
}

// AnyButtonHovered returns true if any button in the modal is hovered.
func (sm *SettingsModal) AnyButtonHovered() bool {
	if !sm.visible {
		return false
	}
	return sm.saveBtn.IsHovered() || sm.cancelBtn.IsHovered() ||
		sm.modeBtns.hovered >= 0 || sm.coordsCheckbox.hovered ||
		sm.soundCheckbox.hovered
}

// Draw renders the settings modal.
func (sm *SettingsModal) Draw(screen *ebiten.Image, blur *BlurEffect) {
	if !sm.visible {
		return
	}

	// Full-screen frosted backdrop
	if blur != nil {
		tint := color.RGBA{0, 0, 0, 100} // Dark tint for modal backdrop
		blur.DrawFrosted(screen, 0, 0, scaleI(ScreenWidth), scaleI(ScreenHeight), tint, 3.0)
	} else {
		// Fallback: semi-transparent overlay
		vector.DrawFilledRect(screen, 0, 0, scaleF(ScreenWidth), scaleF(ScreenHeight), modalOverlay, false)
	}

	// Modal background
	vector.DrawFilledRect(screen, float32(sm.x), float32(sm.y), scaleF(SettingsWidth), scaleF(SettingsHeight), modalBg, false)

	// Modal border
	vector.StrokeRect(screen, float32(sm.x), float32(sm.y), scaleF(SettingsWidth), scaleF(SettingsHeight), float32(UIScale*2), modalBorder, false)

	// Header background
	vector.DrawFilledRect(screen, float32(sm.x), float32(sm.y), scaleF(SettingsWidth), scaleF(44), modalHeader, false)

	// Header title
	sm.drawTitle(screen)

	// Section labels
	contentX := sm.x + scaleI(SettingsPadX)
	sm.drawSectionLabel(screen, "Player Name", contentX, sm.y+scaleI(56))
	sm.drawSectionLabel(screen, "Board", contentX, sm.y+scaleI(132))
	sm.drawSectionLabel(screen, "Display", contentX, sm.y+scaleI(206))
	sm.drawSectionLabel(screen, "Audio", contentX, sm.y+scaleI(270))

	// Draw widgets
	sm.usernameInput.Draw(screen)
	sm.modeBtns.Draw(screen)
	sm.coordsCheckbox.Draw(screen)
	sm.soundCheckbox.Draw(screen)
	sm.saveBtn.Draw(screen)
	sm.cancelBtn.Draw(screen)
}

// drawTitle draws the modal title.
func (sm *SettingsModal) drawTitle(screen *ebiten.Image) {
	face := GetBoldFace()
	if face == nil {
		return
	}

	title := "Settings"
	w, h := MeasureText(title, face)
	centerX := float64(sm.x) + scaleD(SettingsWidth)/2 - w/2
	centerY := float64(sm.y) + scaleD(22) - h/2

	op := &text.DrawOptions{}
	op.GeoM.Translate(centerX, centerY)
	op.ColorScale.ScaleWithColor(textPrimary)
	text.Draw(screen, title, face, op)
}

// drawSectionLabel draws a section label.
func (sm *SettingsModal) drawSectionLabel(screen *ebiten.Image, label string, x, y int) {
	face := GetRegularFace()
	if face == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(textMuted)
	text.Draw(screen, label, face, op)
}
