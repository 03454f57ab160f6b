// Package game implements the SimChess per-game state machine: seating
// players, accepting simultaneous move submissions, invoking the resolver
// once both sides are ready, and tracking the bookkeeping (turn number,
// illegality counters, clocks, position history, termination) that a single
// game needs independent of how it is transported.
package game

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rumendamyanov/simchess/engine"
	"github.com/rumendamyanov/simchess/resolver"
)

// Color re-exports engine.Color so callers outside engine don't need to
// import it directly just to name White/Black.
type Color = engine.Color

const (
	White = engine.White
	Black = engine.Black
)

const (
	defaultInitialClockSeconds    = 600
	defaultOneSidedThreshold      = 3
	defaultOneSidedPenaltySeconds = 30
	threefoldRepetitionHits       = 3
)

// Rules holds the tunable simultaneous-move parameters for a game. The zero
// value is not valid; use DefaultRules() as a base.
type Rules struct {
	InitialClockSeconds    int
	OneSidedThreshold      int
	OneSidedPenaltySeconds int
}

// DefaultRules returns the standard SimChess rules parameters.
func DefaultRules() Rules {
	return Rules{
		InitialClockSeconds:    defaultInitialClockSeconds,
		OneSidedThreshold:      defaultOneSidedThreshold,
		OneSidedPenaltySeconds: defaultOneSidedPenaltySeconds,
	}
}

// DrawReason identifies why a game ended in a draw.
type DrawReason string

const (
	DrawNone                   DrawReason = ""
	DrawMutualImmobility       DrawReason = "mutual_immobility"
	DrawMutualKingCapture      DrawReason = "mutual_king_capture"
	DrawInsufficientMaterial   DrawReason = "insufficient_material"
	DrawThreefoldRepetition    DrawReason = "threefold_repetition"
	DrawAgreement              DrawReason = "agreement"
)

// WinReason identifies how a decisive game ended.
type WinReason string

const (
	WinNone           WinReason = ""
	WinKingCapture    WinReason = "king_capture"
	WinImmobility     WinReason = "immobility"
	WinResignation    WinReason = "resignation"
	WinTimeout        WinReason = "timeout"
)

// IllegalityType classifies a rejected turn.
type IllegalityType string

const (
	IllegalityNone     IllegalityType = ""
	IllegalityMutual   IllegalityType = "mutual"
	IllegalityOneSided IllegalityType = "one_sided"
)

// PenaltyApplied records a clock penalty levied against a repeat offender.
type PenaltyApplied struct {
	Color   Color
	Seconds int
}

// TurnResult is what SubmitMove returns once both colors have submitted a
// move for the current turn: the conflict analyzer's verdict, the resulting
// illegality bookkeeping, and any termination the turn produced.
type TurnResult struct {
	TurnComplete     bool
	IllegalityType   IllegalityType
	IllegalAttempt   int
	WhiteReason      string
	BlackReason      string
	PenaltyApplied   *PenaltyApplied
	GameOver         bool
	Winner           Color
	WinReason        WinReason
	DrawReason       DrawReason
	IntendedWhiteSAN string
	IntendedBlackSAN string
}

// Snapshot is the externally visible state of a game, independent of any
// transport encoding.
type Snapshot struct {
	GameID                string
	FEN                   string
	TurnNumber            int
	IllegalAttempt        int
	WhiteReady            bool
	BlackReady            bool
	GameOver              bool
	Winner                Color
	WinReason             WinReason
	DrawReason            DrawReason
	MutualIllegalCount    int
	OneSidedIllegalCounts map[Color]int
	OneSidedThreshold     int
	PenaltySeconds        int
	ClockSeconds          map[Color]int
	LastIllegalMoves      map[Color]string
}

// PlayerHandle identifies a seated player (e.g. a connection id or user id).
type PlayerHandle string

// ErrColorTaken is returned by AssignPlayer when the requested seat, or both
// seats, are already occupied.
var ErrColorTaken = errors.New("game: color already assigned")

// ErrGameOver is returned by operations that mutate a finished game.
var ErrGameOver = errors.New("game: game is over")

// Game is a single SimChess match: one board, two seats, and the turn
// resolution state machine that drives it forward.
type Game struct {
	mu sync.Mutex

	id    string
	board *engine.Board

	players map[Color]PlayerHandle

	pendingMoves map[Color]engine.Move
	ready        map[Color]bool
	intendedSAN  map[Color]string

	turnNumber     int
	illegalAttempt int

	rules Rules

	mutualIllegalCount    int
	oneSidedIllegalCounts map[Color]int

	clockSeconds map[Color]int

	positionHistory  []string
	lastIllegalMoves map[Color]string

	gameOver   bool
	winner     Color
	winReason  WinReason
	drawReason DrawReason
}

// New creates a fresh game from the standard starting position using the
// default rules.
func New(id string) *Game {
	return NewWithRules(id, DefaultRules())
}

// NewWithRules creates a fresh game from the standard starting position
// using the given rules parameters.
func NewWithRules(id string, rules Rules) *Game {
	b := engine.NewBoard()
	return &Game{
		id:                    id,
		board:                 b,
		players:               make(map[Color]PlayerHandle),
		pendingMoves:          make(map[Color]engine.Move),
		ready:                 make(map[Color]bool),
		intendedSAN:           make(map[Color]string),
		turnNumber:            1,
		rules:                 rules,
		oneSidedIllegalCounts: map[Color]int{White: 0, Black: 0},
		clockSeconds:          map[Color]int{White: rules.InitialClockSeconds, Black: rules.InitialClockSeconds},
		positionHistory:       []string{b.PlacementFEN()},
		lastIllegalMoves:      map[Color]string{},
	}
}

// NewFromFEN creates a game whose board starts from fen instead of the
// standard position, using the given rules parameters. Useful for tests and
// for resuming a previously recorded position.
func NewFromFEN(id, fen string, rules Rules) (*Game, error) {
	b, err := engine.ParseFEN(fen)
	if err != nil {
		return nil, fmt.Errorf("game: invalid starting position: %w", err)
	}
	g := NewWithRules(id, rules)
	g.board = b
	g.positionHistory = []string{b.PlacementFEN()}
	return g, nil
}

// ID returns the game's identifier.
func (g *Game) ID() string {
	return g.id
}

// AssignPlayer seats player into the first open color, white before black.
// It returns the assigned color, or an error if both seats are occupied.
func (g *Game) AssignPlayer(player PlayerHandle) (Color, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.players[White]; !ok {
		g.players[White] = player
		return White, nil
	}
	if _, ok := g.players[Black]; !ok {
		g.players[Black] = player
		return Black, nil
	}
	return engine.None, ErrColorTaken
}

// SubmitMove records color's half-move for the current turn in coordinate
// notation. If this completes the turn (both colors now ready), it runs
// resolution and returns the turn result. Otherwise it returns nil, nil.
func (g *Game) SubmitMove(color Color, notation string) (*TurnResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.gameOver {
		return nil, ErrGameOver
	}

	move, err := engine.ParseHalfMove(g.board, color, notation)
	if err != nil {
		return nil, fmt.Errorf("invalid move submission: %w", err)
	}

	g.intendedSAN[color] = engine.SAN(g.board, move)
	g.pendingMoves[color] = move
	g.ready[color] = true

	if !g.ready[White] || !g.ready[Black] {
		return nil, nil
	}

	return g.resolveTurnLocked(), nil
}

// resolveTurnLocked must be called with g.mu held. It consumes the pending
// submissions unconditionally, including on the pre-resolution immobility
// short-circuit: a rejected/terminal outcome still clears pending_moves and
// ready for the next turn.
func (g *Game) resolveTurnLocked() *TurnResult {
	whiteSAN, blackSAN := g.intendedSAN[White], g.intendedSAN[Black]
	defer func() {
		g.pendingMoves = make(map[Color]engine.Move)
		g.ready = make(map[Color]bool)
		g.intendedSAN = make(map[Color]string)
	}()

	if res := g.checkImmobilityLocked(); res != nil {
		return res
	}

	white := g.pendingMoves[White]
	black := g.pendingMoves[Black]

	outcome := resolver.Resolve(g.board, white, black)

	switch outcome.Outcome {
	case resolver.MutualIllegal:
		g.illegalAttempt++
		g.mutualIllegalCount++
		g.lastIllegalMoves[White] = white.String()
		g.lastIllegalMoves[Black] = black.String()
		return &TurnResult{
			IllegalityType: IllegalityMutual,
			IllegalAttempt: g.illegalAttempt,
			WhiteReason:    outcome.WhiteReason,
			BlackReason:    outcome.BlackReason,
		}

	case resolver.OneSidedIllegal:
		g.illegalAttempt++
		g.oneSidedIllegalCounts[outcome.Offender]++
		g.lastIllegalMoves[outcome.Offender] = g.pendingMoves[outcome.Offender].String()

		result := &TurnResult{
			IllegalityType: IllegalityOneSided,
			IllegalAttempt: g.illegalAttempt,
			WhiteReason:    outcome.WhiteReason,
			BlackReason:    outcome.BlackReason,
		}

		if g.oneSidedIllegalCounts[outcome.Offender] >= g.rules.OneSidedThreshold {
			g.clockSeconds[outcome.Offender] -= g.rules.OneSidedPenaltySeconds
			if g.clockSeconds[outcome.Offender] < 0 {
				g.clockSeconds[outcome.Offender] = 0
			}
			g.oneSidedIllegalCounts[outcome.Offender] = 0
			result.PenaltyApplied = &PenaltyApplied{Color: outcome.Offender, Seconds: g.rules.OneSidedPenaltySeconds}
		}
		return result

	default:
		return g.applyTurnLocked(outcome.Board, whiteSAN, blackSAN)
	}
}

// applyTurnLocked commits a resolved board, records its placement key in the
// position history, and runs the termination checks in order: king capture,
// immobility, insufficient material, threefold repetition.
func (g *Game) applyTurnLocked(newBoard *engine.Board, whiteSAN, blackSAN string) *TurnResult {
	g.board = newBoard
	g.illegalAttempt = 0
	g.turnNumber++
	key := newBoard.PlacementFEN()
	g.positionHistory = append(g.positionHistory, key)

	result := &TurnResult{
		TurnComplete:     true,
		IntendedWhiteSAN: whiteSAN,
		IntendedBlackSAN: blackSAN,
	}

	whiteKing := newBoard.KingSquare(White)
	blackKing := newBoard.KingSquare(Black)

	switch {
	case whiteKing == engine.NoSquare && blackKing == engine.NoSquare:
		g.finish(engine.None, WinNone, DrawMutualKingCapture)
		result.GameOver, result.DrawReason = true, DrawMutualKingCapture
		return result
	case blackKing == engine.NoSquare:
		g.finish(White, WinKingCapture, DrawNone)
		result.GameOver, result.Winner, result.WinReason = true, White, WinKingCapture
		return result
	case whiteKing == engine.NoSquare:
		g.finish(Black, WinKingCapture, DrawNone)
		result.GameOver, result.Winner, result.WinReason = true, Black, WinKingCapture
		return result
	}

	if immobility := g.checkImmobilityLocked(); immobility != nil {
		immobility.TurnComplete = true
		immobility.IntendedWhiteSAN = result.IntendedWhiteSAN
		immobility.IntendedBlackSAN = result.IntendedBlackSAN
		return immobility
	}

	if isInsufficientMaterial(newBoard) {
		g.finish(engine.None, WinNone, DrawInsufficientMaterial)
		result.GameOver, result.DrawReason = true, DrawInsufficientMaterial
		return result
	}

	if countOccurrences(g.positionHistory, key) >= threefoldRepetitionHits {
		g.finish(engine.None, WinNone, DrawThreefoldRepetition)
		result.GameOver, result.DrawReason = true, DrawThreefoldRepetition
	}

	return result
}

// checkImmobilityLocked reports whether either color has zero pseudo-legal
// moves available if forced to move now. A side with no moves loses; if
// both have no moves, it's a draw. Returns nil if the game continues.
func (g *Game) checkImmobilityLocked() *TurnResult {
	whiteHasMoves := len(engine.GeneratePseudoLegalMoves(g.board.WithSideToMove(White), White)) > 0
	blackHasMoves := len(engine.GeneratePseudoLegalMoves(g.board.WithSideToMove(Black), Black)) > 0

	switch {
	case !whiteHasMoves && !blackHasMoves:
		g.finish(engine.None, WinNone, DrawMutualImmobility)
		return &TurnResult{GameOver: true, DrawReason: DrawMutualImmobility}
	case !whiteHasMoves:
		g.finish(Black, WinImmobility, DrawNone)
		return &TurnResult{GameOver: true, Winner: Black, WinReason: WinImmobility}
	case !blackHasMoves:
		g.finish(White, WinImmobility, DrawNone)
		return &TurnResult{GameOver: true, Winner: White, WinReason: WinImmobility}
	default:
		return nil
	}
}

func (g *Game) finish(winner Color, winReason WinReason, drawReason DrawReason) {
	g.gameOver = true
	g.winner = winner
	g.winReason = winReason
	g.drawReason = drawReason
}

// Resign ends the game immediately in favor of color's opponent.
func (g *Game) Resign(color Color) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.gameOver {
		return ErrGameOver
	}
	g.finish(color.Opponent(), WinResignation, DrawNone)
	return nil
}

// Timeout ends the game immediately in favor of color's opponent, for use
// when color's clock has run out.
func (g *Game) Timeout(color Color) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.gameOver {
		return ErrGameOver
	}
	g.finish(color.Opponent(), WinTimeout, DrawNone)
	return nil
}

// Tick decrements color's clock by seconds elapsed, flooring at zero. It
// does not itself declare a timeout; callers should call Timeout once a
// clock reaches zero.
func (g *Game) Tick(color Color, seconds int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.gameOver {
		return
	}
	g.clockSeconds[color] -= seconds
	if g.clockSeconds[color] < 0 {
		g.clockSeconds[color] = 0
	}
}

// State returns a snapshot of the game's externally visible state.
func (g *Game) State() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	return Snapshot{
		GameID:         g.id,
		FEN:            g.board.FEN(),
		TurnNumber:     g.turnNumber,
		IllegalAttempt: g.illegalAttempt,
		WhiteReady:     g.ready[White],
		BlackReady:     g.ready[Black],
		GameOver:       g.gameOver,
		Winner:         g.winner,
		WinReason:      g.winReason,
		DrawReason:     g.drawReason,
		MutualIllegalCount: g.mutualIllegalCount,
		OneSidedIllegalCounts: map[Color]int{
			White: g.oneSidedIllegalCounts[White],
			Black: g.oneSidedIllegalCounts[Black],
		},
		OneSidedThreshold: g.rules.OneSidedThreshold,
		PenaltySeconds:    g.rules.OneSidedPenaltySeconds,
		ClockSeconds: map[Color]int{
			White: g.clockSeconds[White],
			Black: g.clockSeconds[Black],
		},
		LastIllegalMoves: map[Color]string{
			White: g.lastIllegalMoves[White],
			Black: g.lastIllegalMoves[Black],
		},
	}
}

func countOccurrences(history []string, key string) int {
	n := 0
	for _, k := range history {
		if k == key {
			n++
		}
	}
	return n
}

// isInsufficientMaterial reports whether neither side retains enough force
// to deliver a king capture: king-only, king+minor vs king, or king+minor vs
// king+minor.
func isInsufficientMaterial(b *engine.Board) bool {
	var whiteMinors, blackMinors, whiteOther, blackOther int
	for sq := engine.A1; sq <= engine.H8; sq++ {
		p := b.PieceAt(sq)
		if p.IsEmpty() || p.Type == engine.King {
			continue
		}
		switch p.Type {
		case engine.Bishop, engine.Knight:
			if p.Color == engine.White {
				whiteMinors++
			} else {
				blackMinors++
			}
		default:
			if p.Color == engine.White {
				whiteOther++
			} else {
				blackOther++
			}
		}
	}

	if whiteOther > 0 || blackOther > 0 {
		return false
	}
	return whiteMinors <= 1 && blackMinors <= 1
}
