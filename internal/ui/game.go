package ui

import (
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/tidegear/planechess/internal/board"
	"github.com/tidegear/planechess/internal/storage"
)

// UI layout constants, in logical pixels. Everything drawn on screen is
// multiplied by UIScale first.
const (
	ScreenWidth  = 960
	ScreenHeight = 640
	BoardSize    = 640
	SquareSize   = BoardSize / 8
	PanelWidth   = ScreenWidth - BoardSize
)

// UIScale converts logical pixels to device pixels. Layout keeps it in
// sync with the monitor's device scale factor.
var UIScale float64 = 1.0

// scaleF returns v in device pixels as a float32.
func scaleF(v int) float32 {
	return float32(float64(v) * UIScale)
}

// scaleI returns v in device pixels, rounded to the nearest int.
func scaleI(v int) int {
	return int(math.Round(float64(v) * UIScale))
}

// scaleD returns v in device pixels as a float64.
func scaleD(v int) float64 {
	return float64(v) * UIScale
}

// Game is the main Ebitengine game implementing two-player chess on a
// classical board or the open plane.
type Game struct {
	// Position being played. Undo walks the Previous chain.
	state *board.State

	// Selection and drag state
	selected   *board.Point
	legalFrom  []board.Move
	dragging   bool
	dragPiece  board.Piece
	dragSquare board.Point

	// Right-button camera pan
	panning  bool
	panLastX int
	panLastY int

	// Player settings
	mode     storage.BoardMode
	username string

	// Persistence
	storage *storage.Storage
	prefs   *storage.UserPreferences
	stats   *storage.GameStats

	// Components
	renderer *Renderer
	input    *InputHandler
	panel    *Panel
	feedback *FeedbackManager
	blur     *BlurEffect

	// Modals
	settingsModal *SettingsModal
	welcomeScreen *WelcomeScreen

	// Game over state
	gameOver   bool
	gameResult string
	recorded   bool

	// Device scale factor currently applied
	scale float64
}

// NewGame creates a new game instance.
func NewGame() *Game {
	g := &Game{
		mode:     storage.ModeStandard,
		username: "Player",
		scale:    1.0,
	}

	var err error
	g.storage, err = storage.NewStorage()
	if err != nil {
		log.Printf("Warning: storage unavailable, settings will not persist: %v", err)
		g.storage = nil
	}

	g.loadPreferences()
	g.loadStats()

	g.renderer = NewRenderer()
	g.input = NewInputHandler()
	g.feedback = NewFeedbackManager()
	g.blur = NewBlurEffect()
	g.panel = NewPanel(g)
	g.settingsModal = NewSettingsModal()
	g.welcomeScreen = NewWelcomeScreen()

	g.feedback.Audio().SetEnabled(g.prefs.SoundEnabled)

	g.state = newState(g.mode)
	g.resetView()
	g.checkFirstLaunch()

	return g
}

// newState builds the starting position for the given board mode.
func newState(mode storage.BoardMode) *board.State {
	s := board.DefaultState()
	if mode == storage.ModeBoundless {
		s = s.WithExtent(nil)
	}
	return s
}

func (g *Game) loadPreferences() {
	g.prefs = storage.DefaultPreferences()
	if g.storage == nil {
		return
	}
	prefs, err := g.storage.LoadPreferences()
	if err != nil {
		log.Printf("Warning: failed to load preferences: %v", err)
		return
	}
	g.prefs = prefs
	g.username = prefs.Username
	g.mode = prefs.BoardMode
}

func (g *Game) savePreferences() {
	if g.storage == nil {
		return
	}
	g.prefs.Username = g.username
	g.prefs.BoardMode = g.mode
	g.prefs.LastPlayed = time.Now()
	if err := g.storage.SavePreferences(g.prefs); err != nil {
		log.Printf("Warning: failed to save preferences: %v", err)
	}
}

func (g *Game) loadStats() {
	g.stats = storage.NewGameStats()
	if g.storage == nil {
		return
	}
	stats, err := g.storage.LoadStats()
	if err != nil {
		log.Printf("Warning: failed to load stats: %v", err)
		return
	}
	g.stats = stats
}

// checkFirstLaunch shows the welcome screen on the first run.
func (g *Game) checkFirstLaunch() {
	if g.storage == nil {
		return
	}
	isFirst, err := g.storage.IsFirstLaunch()
	if err != nil {
		log.Printf("Warning: failed to check first launch: %v", err)
		return
	}
	if !isFirst {
		return
	}
	g.welcomeScreen.Show(func(name string, mode storage.BoardMode) {
		g.username = name
		if err := g.storage.MarkFirstLaunchComplete(); err != nil {
			log.Printf("Warning: failed to record first launch: %v", err)
		}
		g.SetMode(mode)
		g.savePreferences()
	})
}

// Update handles game logic.
func (g *Game) Update() error {
	g.input.Update()
	g.feedback.Update()

	// Modals swallow all input while visible.
	if g.welcomeScreen.IsVisible() {
		g.welcomeScreen.Update(g.input)
		g.updateCursor()
		return nil
	}
	if g.settingsModal.IsVisible() {
		g.settingsModal.Update(g.input)
		g.updateCursor()
		return nil
	}

	if g.panel.HandleInput(g.input) {
		g.updateCursor()
		return nil
	}

	g.handleCameraInput()
	g.handleBoardInput()
	g.handleKeyboard()
	g.updateCursor()

	return nil
}

// updateCursor sets the cursor shape based on what's under the mouse.
func (g *Game) updateCursor() {
	var hovered bool
	switch {
	case g.welcomeScreen.IsVisible():
		hovered = g.welcomeScreen.AnyButtonHovered()
	case g.settingsModal.IsVisible():
		hovered = g.settingsModal.AnyButtonHovered()
	default:
		hovered = g.panel.AnyButtonHovered()
	}

	if hovered {
		ebiten.SetCursorShape(ebiten.CursorShapePointer)
	} else {
		ebiten.SetCursorShape(ebiten.CursorShapeDefault)
	}
}

func (g *Game) handleKeyboard() {
	if IsKeyJustPressed(ebiten.KeyEscape) {
		g.clearSelection()
	}

	// Camera keys only matter on the open plane; the classical board
	// keeps a fixed framing.
	if g.mode != storage.ModeBoundless {
		return
	}
	if IsKeyJustPressed(ebiten.KeyArrowLeft) {
		g.renderer.PanSquares(-1, 0)
	}
	if IsKeyJustPressed(ebiten.KeyArrowRight) {
		g.renderer.PanSquares(1, 0)
	}
	if IsKeyJustPressed(ebiten.KeyArrowUp) {
		g.renderer.PanSquares(0, 1)
	}
	if IsKeyJustPressed(ebiten.KeyArrowDown) {
		g.renderer.PanSquares(0, -1)
	}
	if IsKeyJustPressed(ebiten.KeyHome) {
		g.resetView()
	}
}

// handleCameraInput processes right-drag panning and wheel zooming on
// the open plane.
func (g *Game) handleCameraInput() {
	if g.mode != storage.ModeBoundless {
		return
	}

	mx, my := g.input.MousePosition()
	vp := int(g.renderer.Viewport())
	onBoard := mx >= 0 && my >= 0 && mx < vp && my < vp

	if g.input.IsRightJustPressed() && onBoard {
		g.panning = true
		g.panLastX, g.panLastY = mx, my
	}
	if g.panning {
		if g.input.IsRightPressed() {
			g.renderer.Pan(float64(mx-g.panLastX), float64(my-g.panLastY))
			g.panLastX, g.panLastY = mx, my
		} else {
			g.panning = false
		}
	}

	if onBoard {
		if _, wheelY := ebiten.Wheel(); wheelY != 0 {
			g.renderer.ZoomAt(math.Pow(1.1, wheelY), mx, my)
		}
	}
}

// handleBoardInput processes mouse input on the board.
func (g *Game) handleBoardInput() {
	if g.gameOver || g.panning {
		return
	}

	mx, my := g.input.MousePosition()

	// Handle mouse press
	if g.input.IsLeftJustPressed() {
		sq, ok := g.renderer.ScreenToSquare(mx, my)
		if !ok {
			return
		}

		piece, occupied := g.state.PieceAt(sq)

		// Clicking one of our own pieces selects it and starts a drag.
		if occupied && piece.Color == g.state.ToMove() {
			g.selectSquare(sq)
			g.startDrag(sq)
			return
		}

		// With a selection active, try to move there.
		if g.selected != nil {
			if move, found := g.findMove(*g.selected, sq); found {
				g.makeMove(move)
				return
			}
		}

		g.clearSelection()
		return
	}

	// Handle drag release
	if g.dragging && g.input.IsLeftJustReleased() {
		g.handleDragRelease(mx, my)
	}
}

// selectSquare selects a square and computes its legal moves.
func (g *Game) selectSquare(sq board.Point) {
	g.selected = &sq
	g.legalFrom = g.legalMovesFrom(sq)
}

func (g *Game) legalMovesFrom(sq board.Point) []board.Move {
	var all []board.Move
	if g.mode == storage.ModeBoundless {
		all = g.state.LegalMovesWithin(g.enumerationWindow())
	} else {
		all = g.state.LegalMoves()
	}

	moves := make([]board.Move, 0, 8)
	for _, m := range all {
		if m.From == sq {
			moves = append(moves, m)
		}
	}
	return moves
}

// enumerationWindow is the region legal moves are generated in on the
// open plane: the neighborhood of the pieces plus whatever the camera
// can see, so long slides show up when the player zooms out.
func (g *Game) enumerationWindow() board.Bounds {
	vis := g.renderer.VisibleBounds()
	alive, ok := g.state.Pieces().AliveBounds()
	if !ok {
		return vis
	}
	win := alive.Grow(2)
	win.Min.X = min64(win.Min.X, vis.Min.X)
	win.Min.Y = min64(win.Min.Y, vis.Min.Y)
	win.Max.X = max64(win.Max.X, vis.Max.X)
	win.Max.Y = max64(win.Max.Y, vis.Max.Y)
	return win
}

func (g *Game) startDrag(sq board.Point) {
	if piece, ok := g.state.PieceAt(sq); ok {
		g.dragging = true
		g.dragPiece = piece
		g.dragSquare = sq
	}
}

func (g *Game) clearSelection() {
	g.selected = nil
	g.legalFrom = nil
	g.dragging = false
	g.dragPiece = board.Piece{}
	g.dragSquare = board.Point{}
}

// handleDragRelease completes a drag-and-drop move.
func (g *Game) handleDragRelease(mx, my int) {
	defer func() {
		g.dragging = false
		g.dragPiece = board.Piece{}
	}()

	targetSq, ok := g.renderer.ScreenToSquare(mx, my)
	if !ok {
		g.clearSelection()
		return
	}

	// Dropping a piece back where it came from keeps the selection, so
	// a follow-up click can still move it.
	if targetSq == g.dragSquare {
		return
	}

	if move, found := g.findMove(g.dragSquare, targetSq); found {
		g.makeMove(move)
		return
	}

	g.feedback.OnInvalidMove(g.dragSquare, targetSq, g.invalidMoveReason(g.dragSquare, targetSq))
	g.clearSelection()
}

// findMove finds the legal move from src to dst, if any. Promotions
// auto-queen, and dropping the king on its own rook castles.
func (g *Game) findMove(src, dst board.Point) (board.Move, bool) {
	for _, m := range g.legalFrom {
		if m.From != src {
			continue
		}
		if m.To == dst {
			if m.Promotion != board.NoType && m.Promotion != board.Queen {
				continue
			}
			return m, true
		}
		if m.Castling {
			// The rook square is an alias for the castling destination.
			if p, ok := g.state.PieceAt(dst); ok && p.Type == board.Rook && p.Color == g.state.ToMove() &&
				sign64(dst.X-src.X) == sign64(m.To.X-src.X) {
				return m, true
			}
		}
	}

	// On the open plane a slide can land beyond the enumerated window.
	if g.mode == storage.ModeBoundless {
		if h, ok := g.state.HandleAt(src); ok {
			m := board.NewMove(src, dst, h)
			if m.IsLegal(g.state) {
				return m, true
			}
		}
	}

	return board.Move{}, false
}

func sign64(v int64) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}

// invalidMoveReason guesses why a move from src to dst is not allowed.
func (g *Game) invalidMoveReason(src, dst board.Point) InvalidMoveReason {
	piece, ok := g.state.PieceAt(src)
	if !ok {
		return ReasonUnknown
	}
	if piece.Color != g.state.ToMove() {
		return ReasonNotYourTurn
	}
	if dstPiece, ok := g.state.PieceAt(dst); ok && dstPiece.Color == piece.Color {
		return ReasonBlockedByOwnPiece
	}
	if g.state.IsKingInCheck(g.state.ToMove()) {
		return ReasonWouldLeaveKingInCheck
	}
	return ReasonInvalidPieceMovement
}

// makeMove applies a legal move and advances the game.
func (g *Game) makeMove(m board.Move) {
	_, wasOccupied := g.state.PieceAt(m.To)
	isCapture := wasOccupied || m.EnPassant
	isCastling := m.Castling
	isPromotion := m.Promotion != board.NoType

	log.Printf("[MOVE] %v plays %v", g.state.ToMove(), m.String())

	g.state = g.state.MakeMove(m)
	g.clearSelection()

	g.feedback.OnMoveMade(isCapture, isCastling, isPromotion)
	if isPromotion {
		g.feedback.toasts.Show("Pawn promoted to Queen", ToastInfo, 2*time.Second)
	}

	g.checkGameEnd()
}

// checkGameEnd looks for checkmate, stalemate, and draws after a move.
func (g *Game) checkGameEnd() {
	side := g.state.ToMove()

	switch {
	case g.state.IsCheckmate(side):
		winner := side.Other()
		g.gameOver = true
		g.gameResult = fmt.Sprintf("%v wins by checkmate!", winner)
		g.feedback.OnCheckmate(winner)
		if winner == board.White {
			g.recordResult(storage.ResultWhiteWins)
		} else {
			g.recordResult(storage.ResultBlackWins)
		}

	case g.state.IsStalemate(side):
		g.gameOver = true
		g.gameResult = "Draw by stalemate"
		g.feedback.OnStalemate()
		g.recordResult(storage.ResultDraw)

	case g.isThreefoldRepetition():
		g.gameOver = true
		g.gameResult = "Draw by threefold repetition"
		g.feedback.OnDraw("threefold repetition")
		g.recordResult(storage.ResultDraw)

	case g.pliesSinceProgress() >= 100:
		g.gameOver = true
		g.gameResult = "Draw by the fifty-move rule"
		g.feedback.OnDraw("fifty-move rule")
		g.recordResult(storage.ResultDraw)

	case g.state.IsKingInCheck(side):
		g.feedback.OnCheck()
	}
}

// positionKey encodes a position for repetition detection. Piece
// handles are stable across the history chain, so two keys match
// exactly when the same men stand on the same squares with the same
// castling and en passant rights and the same side to move.
func positionKey(s *board.State) string {
	var b strings.Builder
	pieces := s.Pieces()
	for h := 0; h < pieces.Len(); h++ {
		p := pieces.Get(h)
		if !p.Alive {
			b.WriteString("x;")
			continue
		}
		b.WriteByte(p.Char())
		if p.Moved {
			b.WriteByte('m')
		}
		fmt.Fprintf(&b, "%d,%d;", p.Pos.X, p.Pos.Y)
	}
	fmt.Fprintf(&b, "|%d", s.ToMove())
	if ep, ok := s.EnPassantSquare(); ok {
		fmt.Fprintf(&b, "|%d,%d", ep.X, ep.Y)
	}
	return b.String()
}

// isThreefoldRepetition walks the history chain counting occurrences
// of the current position.
func (g *Game) isThreefoldRepetition() bool {
	key := positionKey(g.state)
	count := 1
	for s := g.state.Previous(); s != nil; s = s.Previous() {
		if positionKey(s) == key {
			count++
			if count >= 3 {
				log.Printf("[THREEFOLD] Position repeated three times after %d plies", g.state.MoveCount())
				return true
			}
		}
	}
	return false
}

// pliesSinceProgress counts plies since the last capture, pawn move,
// or promotion. 100 plies without progress is a fifty-move draw.
func (g *Game) pliesSinceProgress() int {
	plies := 0
	for s := g.state; s != nil; s = s.Previous() {
		m := s.LastMove()
		if m == nil {
			break
		}
		if m.IsCapture() || m.Promotion != board.NoType {
			break
		}
		if s.Pieces().Get(m.Mover()).Type == board.Pawn {
			break
		}
		plies++
	}
	return plies
}

// recordResult stores a finished game once. Undoing past the final
// move does not un-record it.
func (g *Game) recordResult(res storage.Result) {
	if g.recorded || g.storage == nil {
		return
	}
	g.recorded = true

	rec := storage.GameRecord{
		Result:   res,
		Plies:    g.state.MoveCount(),
		Mode:     g.mode,
		PlayedAt: time.Now(),
	}
	if err := g.storage.RecordGame(rec); err != nil {
		log.Printf("Warning: failed to record game: %v", err)
		return
	}
	g.loadStats()
}

// NewGameAction starts a new game in the current mode.
func (g *Game) NewGameAction() {
	g.state = newState(g.mode)
	g.clearSelection()
	g.gameOver = false
	g.gameResult = ""
	g.recorded = false
	g.resetView()
}

// UndoAction takes back the last move.
func (g *Game) UndoAction() {
	prev := g.state.Previous()
	if prev == nil {
		return
	}
	g.state = prev
	g.clearSelection()
	g.gameOver = false
	g.gameResult = ""
}

// SetMode switches between the classical board and the open plane,
// restarting the game.
func (g *Game) SetMode(mode storage.BoardMode) {
	if mode == g.mode {
		return
	}
	g.mode = mode
	g.NewGameAction()
	g.savePreferences()
}

// ShowSettings opens the settings modal.
func (g *Game) ShowSettings() {
	g.settingsModal.Show(g.prefs, func(prefs *storage.UserPreferences) {
		g.username = prefs.Username
		g.prefs.Username = prefs.Username
		g.prefs.SoundEnabled = prefs.SoundEnabled
		g.prefs.ShowCoordinates = prefs.ShowCoordinates
		g.feedback.Audio().SetEnabled(prefs.SoundEnabled)

		g.SetMode(prefs.BoardMode)
		g.savePreferences()
	}, nil)
}

// resetView frames the camera on the playable area.
func (g *Game) resetView() {
	if ext, ok := g.state.Extent(); ok {
		g.renderer.CenterOn(ext)
		return
	}
	if alive, ok := g.state.Pieces().AliveBounds(); ok {
		g.renderer.CenterOn(alive.Grow(1))
		return
	}
	g.renderer.CenterOn(board.ClassicalBounds())
}

// State returns the current position.
func (g *Game) State() *board.State {
	return g.state
}

// Mode returns the current board mode.
func (g *Game) Mode() storage.BoardMode {
	return g.mode
}

// GameOver returns whether the game has ended.
func (g *Game) GameOver() bool {
	return g.gameOver
}

// GameResult returns the result message once the game has ended.
func (g *Game) GameResult() string {
	return g.gameResult
}

// Username returns the player's name.
func (g *Game) Username() string {
	return g.username
}

// Stats returns lifetime game statistics.
func (g *Game) Stats() *storage.GameStats {
	return g.stats
}

// MoveNotations returns the move history as display strings.
func (g *Game) MoveNotations() []string {
	moves := g.state.MoveHistory()
	out := make([]string, len(moves))
	for i := range moves {
		out[i] = moves[i].String()
	}
	return out
}

// Draw renders the game.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.renderer.Theme().Background)

	g.renderer.DrawBoard(screen, g.state)

	if g.state.IsKingInCheck(g.state.ToMove()) {
		g.renderer.DrawCheck(screen, g.state.Pieces().King(g.state.ToMove()).Pos)
	}

	g.renderer.DrawHighlights(screen, g.selected, g.legalFrom, g.state.LastMove())

	if g.prefs.ShowCoordinates {
		g.renderer.DrawCoordinates(screen, g.state)
	}

	g.renderer.DrawPieces(screen, g.state, g.dragging, g.dragSquare, g.feedback.Animations())

	if g.dragging {
		mx, my := g.input.MousePosition()
		g.renderer.DrawDraggedPiece(screen, g.dragPiece.Type, g.dragPiece.Color, mx, my)
	}

	if g.mode == storage.ModeBoundless {
		g.renderer.DrawViewportInfo(screen)
	}

	g.feedback.Draw(screen, g.renderer)
	g.panel.Draw(screen)

	g.settingsModal.Draw(screen, g.blur)
	g.welcomeScreen.Draw(screen, g.blur)
}

// Layout reports the screen size in device pixels and keeps UIScale in
// sync with the monitor.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	scale := ebiten.Monitor().DeviceScaleFactor()
	if scale < 1.0 {
		scale = 1.0
	}
	if scale != g.scale {
		g.scale = scale
		UIScale = scale
		g.onScaleChanged()
	}

	if g.panel != nil && g.panel.Collapsed() {
		return int(float64(BoardSize+CollapsedWidth) * g.scale), int(float64(ScreenHeight) * g.scale)
	}
	return int(float64(ScreenWidth) * g.scale), int(float64(ScreenHeight) * g.scale)
}

// onScaleChanged rebuilds everything laid out in device pixels.
func (g *Game) onScaleChanged() {
	if g.panel == nil {
		return
	}
	g.panel.Rebuild()
	g.settingsModal.Rebuild()
	g.welcomeScreen.Rebuild()
	g.resetView()
}

// Close releases resources.
func (g *Game) Close() error {
	if g.storage != nil {
		return g.storage.Close()
	}
	return nil
}
