package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/tidegear/planechess/internal/storage"
)

// Panel dimensions (logical pixels)
const (
	PanelPadding    = 20
	SectionSpacing  = 28
	ButtonHeight    = 40
	TabHeight       = 34
	CollapsedWidth  = 20
	CollapseButtonW = 16
	CollapseButtonH = 48
	SectionLabelH   = 20
	StatusBarH      = 70
)

// Panel colors
var (
	panelBg         = color.RGBA{38, 40, 45, 255}    // Dark background
	sectionBg       = color.RGBA{48, 52, 58, 255}    // Slightly lighter section
	tabActiveBg     = color.RGBA{76, 132, 96, 255}   // Green for active tab
	tabInactiveBg   = color.RGBA{50, 54, 60, 255}    // Darker gray for inactive
	tabHoverBg      = color.RGBA{65, 70, 78, 255}    // Visible hover state
	buttonBg        = color.RGBA{50, 54, 60, 255}    // Button background (darker)
	buttonHoverBg   = color.RGBA{65, 70, 78, 255}    // Button hover (brighter)
	buttonPressedBg = color.RGBA{40, 44, 50, 255}    // Button pressed (darker)
	buttonBorder    = color.RGBA{70, 75, 82, 255}    // Subtle button border
	accentColor     = color.RGBA{76, 175, 120, 255}  // Green accent
	accentHover     = color.RGBA{96, 195, 140, 255}  // Lighter green on hover
	accentPressed   = color.RGBA{56, 155, 100, 255}  // Darker green on press
	textPrimary     = color.RGBA{240, 240, 245, 255} // Primary text
	textSecondary   = color.RGBA{160, 165, 175, 255} // Secondary text
	textMuted       = color.RGBA{120, 125, 135, 255} // Muted text
	dividerColor    = color.RGBA{60, 65, 72, 255}    // Divider line
	moveRowAlt      = color.RGBA{44, 48, 54, 255}    // Alternating row
	statusGameOver  = color.RGBA{255, 200, 80, 255}  // Yellow for game over
)

// Button represents a clickable UI element.
type Button struct {
	X, Y, W, H int
	Label      string
	OnClick    func()
	hovered    bool
	pressed    bool
}

// Panel represents the side panel with controls and move history.
type Panel struct {
	game      *Game
	collapsed bool

	// UI elements
	collapseBtn *Button
	newGameBtn  *Button
	undoBtn     *Button
	settingsBtn *Button
	modeTabs    []*Button // [0] = Standard, [1] = Boundless

	// Move history scroll
	scrollY    int
	maxScrollY int
}

// NewPanel creates a new panel for the given game.
func NewPanel(g *Game) *Panel {
	p := &Panel{
		game:      g,
		collapsed: false,
	}

	p.createButtons()
	return p
}

// Rebuild recomputes the button layout. Call after the scale factor
// changes.
func (p *Panel) Rebuild() {
	p.createButtons()
}

// createButtons initializes all panel buttons at device-pixel positions.
func (p *Panel) createButtons() {
	// Collapse/expand button - integrated tab at panel edge
	tabY := (scaleI(ScreenHeight) - scaleI(CollapseButtonH)) / 2 // Vertically centered
	if p.collapsed {
		p.collapseBtn = &Button{
			X: scaleI(BoardSize + 2),
			Y: tabY,
			W: scaleI(CollapseButtonW), H: scaleI(CollapseButtonH),
			OnClick: func() { p.toggleCollapse() },
		}
	} else {
		p.collapseBtn = &Button{
			X: scaleI(BoardSize), // Flush with panel left edge
			Y: tabY,
			W: scaleI(CollapseButtonW), H: scaleI(CollapseButtonH),
			OnClick: func() { p.toggleCollapse() },
		}
	}

	// Content area - full width, collapse button doesn't take space
	contentX := scaleI(BoardSize + PanelPadding)
	contentW := scaleI(PanelWidth - PanelPadding*2)

	// New Game button (full width, prominent)
	newGameY := scaleI(PanelPadding + 8)
	p.newGameBtn = &Button{
		X: contentX, Y: newGameY,
		W: contentW, H: scaleI(ButtonHeight),
		Label:   "New Game",
		OnClick: p.game.NewGameAction,
	}

	// Undo button (below New Game)
	undoY := newGameY + scaleI(ButtonHeight+8)
	p.undoBtn = &Button{
		X: contentX, Y: undoY,
		W: contentW, H: scaleI(ButtonHeight - 6),
		Label:   "Undo Move",
		OnClick: p.game.UndoAction,
	}

	// Settings button (below Undo)
	settingsY := undoY + scaleI(ButtonHeight-6+8)
	p.settingsBtn = &Button{
		X: contentX, Y: settingsY,
		W: contentW, H: scaleI(ButtonHeight - 6),
		Label:   "Settings",
		OnClick: p.game.ShowSettings,
	}

	// Board section: label + tabs
	modeLabelY := settingsY + scaleI(ButtonHeight-6) + scaleI(SectionSpacing-8)
	modeTabY := modeLabelY + scaleI(SectionLabelH)
	tabW := contentW / 2
	p.modeTabs = []*Button{
		{X: contentX, Y: modeTabY, W: tabW, H: scaleI(TabHeight), Label: "Standard",
			OnClick: func() { p.game.SetMode(storage.ModeStandard) }},
		{X: contentX + tabW, Y: modeTabY, W: tabW, H: scaleI(TabHeight), Label: "Boundless",
			OnClick: func() { p.game.SetMode(storage.ModeBoundless) }},
	}
}

// HandleInput processes input for the panel. Returns true if input was handled.
func (p *Panel) HandleInput(input *InputHandler) bool {
	mx, my := input.MousePosition()

	// Always check collapse button
	p.collapseBtn.hovered = p.isInside(mx, my, p.collapseBtn)
	p.collapseBtn.pressed = input.IsLeftPressed() && p.collapseBtn.hovered

	if input.IsLeftJustPressed() && p.collapseBtn.hovered {
		p.collapseBtn.OnClick() // toggleCollapse handles button recreation and window resize
		return true
	}

	if p.collapsed {
		return false
	}

	// Handle scroll wheel for move history
	_, wheelY := ebiten.Wheel()
	if wheelY != 0 {
		historyY := p.getHistoryStartY()
		// Check if mouse is in move history area
		if mx >= scaleI(BoardSize) && my >= historyY && my < scaleI(ScreenHeight-StatusBarH) {
			p.scrollY -= int(wheelY * float64(scaleI(30))) // one row-ish per scroll tick
			if p.scrollY < 0 {
				p.scrollY = 0
			}
			if p.scrollY > p.maxScrollY {
				p.scrollY = p.maxScrollY
			}
		}
	}

	// Check other buttons for hover
	buttons := p.clickable()
	for _, btn := range buttons {
		btn.hovered = p.isInside(mx, my, btn)
	}

	// Track pressed state (mouse down on button)
	for _, btn := range buttons {
		if input.IsLeftPressed() {
			btn.pressed = btn.hovered
		} else {
			btn.pressed = false
		}
	}

	// Handle clicks
	if input.IsLeftJustPressed() {
		for _, btn := range buttons {
			if btn.hovered {
				btn.OnClick()
				return true
			}
		}
	}

	return false
}

// clickable lists every button except the collapse tab.
func (p *Panel) clickable() []*Button {
	btns := []*Button{p.newGameBtn, p.undoBtn, p.settingsBtn}
	btns = append(btns, p.modeTabs...)
	return btns
}

// AnyButtonHovered returns true if any button in the panel is hovered.
func (p *Panel) AnyButtonHovered() bool {
	if p.collapseBtn.hovered {
		return true
	}
	if p.collapsed {
		return false
	}
	for _, btn := range p.clickable() {
		if btn.hovered {
			return true
		}
	}
	return false
}

func (p *Panel) isInside(mx, my int, btn *Button) bool {
	return mx >= btn.X && mx < btn.X+btn.W && my >= btn.Y && my < btn.Y+btn.H
}

// Draw renders the panel.
func (p *Panel) Draw(screen *ebiten.Image) {
	panelX := scaleF(BoardSize)

	if p.collapsed {
		// Draw collapsed state - just a thin bar with expand button
		vector.DrawFilledRect(screen, panelX, 0, scaleF(CollapsedWidth), scaleF(ScreenHeight), panelBg, false)
		p.drawCollapseButton(screen, true)
		return
	}

	// Draw panel background
	vector.DrawFilledRect(screen, panelX, 0, scaleF(PanelWidth), scaleF(ScreenHeight), panelBg, false)

	// Draw collapse button
	p.drawCollapseButton(screen, false)

	// Draw action buttons
	p.drawPrimaryButton(screen, p.newGameBtn)
	p.drawSecondaryButton(screen, p.undoBtn)
	p.drawSecondaryButton(screen, p.settingsBtn)

	// Draw board mode section
	modeLabelY := p.modeTabs[0].Y - scaleI(SectionLabelH)
	p.drawSectionLabel(screen, "Board", scaleI(BoardSize+PanelPadding), modeLabelY)
	p.drawModeTabs(screen)

	// Draw move history section
	historyY := p.getHistoryStartY()
	p.drawSectionLabel(screen, "Moves", scaleI(BoardSize+PanelPadding), historyY)
	p.drawMoveHistory(screen, historyY+scaleI(SectionLabelH+4))

	// Draw status bar at bottom
	p.drawStatusBar(screen)
}

func (p *Panel) getHistoryStartY() int {
	return p.modeTabs[0].Y + p.modeTabs[0].H + scaleI(SectionSpacing-4)
}

func (p *Panel) drawCollapseButton(screen *ebiten.Image, expand bool) {
	btn := p.collapseBtn

	// Use panel background color to blend in as integrated tab
	bgColor := panelBg
	if btn.hovered {
		bgColor = sectionBg // Subtle highlight on hover
	}

	// Draw as integrated tab (no border, blends with panel)
	vector.DrawFilledRect(screen, float32(btn.X), float32(btn.Y), float32(btn.W), float32(btn.H), bgColor, false)

	// Draw arrow - muted by default, bright on hover
	arrow := "‹"
	if expand {
		arrow = "›"
	}
	textC := textMuted
	if btn.hovered {
		textC = textPrimary
	}
	p.drawTextCentered(screen, arrow, btn.X+btn.W/2, btn.Y+btn.H/2, textC)
}

func (p *Panel) drawPrimaryButton(screen *ebiten.Image, btn *Button) {
	bgColor := accentColor
	if btn.pressed {
		bgColor = accentPressed
	} else if btn.hovered {
		bgColor = accentHover
	}

	// Draw button background
	vector.DrawFilledRect(screen, float32(btn.X), float32(btn.Y), float32(btn.W), float32(btn.H), bgColor, false)

	// Draw border for depth
	borderC := color.RGBA{56, 155, 100, 255}
	if btn.hovered {
		borderC = color.RGBA{116, 215, 160, 255} // Lighter border on hover
	}
	vector.StrokeRect(screen, float32(btn.X), float32(btn.Y), float32(btn.W), float32(btn.H), 1, borderC, false)

	// Draw label
	p.drawTextCentered(screen, btn.Label, btn.X+btn.W/2, btn.Y+btn.H/2, textPrimary)
}

func (p *Panel) drawSecondaryButton(screen *ebiten.Image, btn *Button) {
	bgColor := buttonBg
	if btn.pressed {
		bgColor = buttonPressedBg
	} else if btn.hovered {
		bgColor = buttonHoverBg
	}

	// Draw button background
	vector.DrawFilledRect(screen, float32(btn.X), float32(btn.Y), float32(btn.W), float32(btn.H), bgColor, false)

	// Draw border
	borderC := buttonBorder
	if btn.hovered {
		borderC = accentColor // Green border on hover
	}
	vector.StrokeRect(screen, float32(btn.X), float32(btn.Y), float32(btn.W), float32(btn.H), 1, borderC, false)

	p.drawTextCentered(screen, btn.Label, btn.X+btn.W/2, btn.Y+btn.H/2, textSecondary)
}

func (p *Panel) drawModeTabs(screen *ebiten.Image) {
	for i, btn := range p.modeTabs {
		isActive := (i == 0 && p.game.Mode() == storage.ModeStandard) ||
			(i == 1 && p.game.Mode() == storage.ModeBoundless)

		bgColor := tabInactiveBg
		if isActive {
			bgColor = tabActiveBg
		} else if btn.pressed {
			bgColor = buttonPressedBg
		} else if btn.hovered {
			bgColor = tabHoverBg
		}

		// Draw background
		vector.DrawFilledRect(screen, float32(btn.X), float32(btn.Y), float32(btn.W), float32(btn.H), bgColor, false)

		// Draw border - highlight on hover, green on active
		borderC := buttonBorder
		if isActive {
			borderC = tabActiveBg
		} else if btn.hovered {
			borderC = accentColor
		}
		vector.StrokeRect(screen, float32(btn.X), float32(btn.Y), float32(btn.W), float32(btn.H), 1, borderC, false)

		textColor := textSecondary
		if isActive {
			textColor = textPrimary
		}
		p.drawTextCentered(screen, btn.Label, btn.X+btn.W/2, btn.Y+btn.H/2, textColor)
	}
}

func (p *Panel) drawSectionLabel(screen *ebiten.Image, label string, x, y int) {
	p.drawText(screen, label, x, y, textMuted)
}

func (p *Panel) drawMoveHistory(screen *ebiten.Image, startY int) {
	moves := p.game.MoveNotations()
	if len(moves) == 0 {
		p.drawText(screen, "No moves yet", scaleI(BoardSize+PanelPadding), startY+scaleI(5), textMuted)
		return
	}

	x := scaleI(BoardSize + PanelPadding)
	rowHeight := scaleI(22)
	maxY := scaleI(ScreenHeight - StatusBarH) // Leave room for status bar
	visibleHeight := maxY - startY

	// Calculate total content height and max scroll
	totalRows := (len(moves) + 1) / 2
	contentHeight := totalRows * rowHeight
	p.maxScrollY = contentHeight - visibleHeight
	if p.maxScrollY < 0 {
		p.maxScrollY = 0
	}

	// Clamp scroll position
	if p.scrollY > p.maxScrollY {
		p.scrollY = p.maxScrollY
	}

	// Calculate starting row based on scroll
	startRow := p.scrollY / rowHeight
	startMoveIdx := startRow * 2

	// Y position adjusted for partial scroll
	y := startY - (p.scrollY % rowHeight)

	for i := startMoveIdx; i < len(moves); i += 2 {
		// Skip if above visible area
		if y < startY-rowHeight {
			y += rowHeight
			continue
		}
		// Stop if below visible area
		if y > maxY {
			break
		}

		// Alternating row background (only if visible)
		if y >= startY-rowHeight && (i/2)%2 == 1 {
			bgY := y - scaleI(2)
			if bgY < startY {
				bgY = startY
			}
			vector.DrawFilledRect(screen, float32(x-scaleI(4)), float32(bgY),
				float32(scaleI(PanelWidth-PanelPadding*2+8)), float32(rowHeight), moveRowAlt, false)
		}

		// Only draw text if within visible bounds
		if y >= startY {
			moveNum := (i / 2) + 1
			numStr := fmt.Sprintf("%d.", moveNum)
			p.drawText(screen, numStr, x, y, textMuted)
			p.drawText(screen, moves[i], x+scaleI(32), y, textPrimary)
			if i+1 < len(moves) {
				p.drawText(screen, moves[i+1], x+scaleI(152), y, textPrimary)
			}
		}

		y += rowHeight
	}

	// Show scroll indicator if there's more content
	if p.maxScrollY > 0 {
		// Draw a small scroll indicator on the right
		scrollPct := float32(p.scrollY) / float32(p.maxScrollY)
		indicatorH := float32(visibleHeight) * float32(visibleHeight) / float32(contentHeight)
		if indicatorH < 20 {
			indicatorH = 20
		}
		indicatorY := float32(startY) + scrollPct*(float32(visibleHeight)-indicatorH)
		indicatorX := float32(scaleI(ScreenWidth - 8))
		vector.DrawFilledRect(screen, indicatorX, indicatorY, 4, indicatorH, textMuted, false)
	}
}

func (p *Panel) drawStatusBar(screen *ebiten.Image) {
	statusY := scaleI(ScreenHeight - StatusBarH)
	x := scaleI(BoardSize + PanelPadding)

	// Draw divider
	vector.DrawFilledRect(screen, float32(x), float32(statusY-scaleI(10)),
		float32(scaleI(PanelWidth-PanelPadding*2)), 1, dividerColor, false)

	// Draw player name and board mode
	username := p.game.Username()
	if len(username) > 12 {
		username = username[:12] + "..."
	}
	p.drawText(screen, username, x, statusY, textPrimary)

	// Board mode badge
	modeColor := textSecondary
	if p.game.Mode() == storage.ModeBoundless {
		modeColor = accentColor
	}
	p.drawText(screen, p.game.Mode().String(), x+scaleI(160), statusY, modeColor)

	// Game status
	var statusText string
	var statusColor color.RGBA

	if p.game.GameOver() {
		statusText = p.game.GameResult()
		statusColor = statusGameOver
	} else {
		if p.game.State().ToMove() == 0 {
			statusText = "White to move"
		} else {
			statusText = "Black to move"
		}
		statusColor = textPrimary
	}
	p.drawText(screen, statusText, x, statusY+scaleI(20), statusColor)

	// Lifetime stats
	if stats := p.game.Stats(); stats != nil && stats.GamesPlayed > 0 {
		summary := fmt.Sprintf("%d played  W %d  B %d  D %d",
			stats.GamesPlayed, stats.WhiteWins, stats.BlackWins, stats.Draws)
		p.drawText(screen, summary, x, statusY+scaleI(40), textMuted)
	}
}

// Text drawing helpers
func (p *Panel) drawText(screen *ebiten.Image, s string, x, y int, c color.Color) {
	face := GetRegularFace()
	if face == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, face, op)
}

func (p *Panel) drawTextCentered(screen *ebiten.Image, s string, centerX, centerY int, c color.Color) {
	face := GetRegularFace()
	if face == nil {
		return
	}
	w, h := MeasureText(s, face)
	x := float64(centerX) - w/2
	y := float64(centerY) - h/2
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, face, op)
}

// Collapsed returns whether the panel is collapsed.
func (p *Panel) Collapsed() bool {
	return p.collapsed
}

// toggleCollapse toggles the panel collapsed state and resizes the window.
func (p *Panel) toggleCollapse() {
	p.collapsed = !p.collapsed
	p.createButtons()

	// Resize window to match new layout
	if p.collapsed {
		ebiten.SetWindowSize(BoardSize+CollapsedWidth, ScreenHeight)
	} else {
		ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
	}
}
