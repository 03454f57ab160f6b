// Package resolver implements the SimChess conflict analyzer and move
// applier: given a board and one pseudo-legal half-move submission per
// color, it decides whether the pair resolves cleanly, fails for both
// players, or fails for exactly one, and if it resolves cleanly, produces
// the resulting board.
package resolver

import (
	"fmt"

	"github.com/rumendamyanov/simchess/engine"
)

// Outcome classifies how a pair of submitted half-moves resolved.
type Outcome int

const (
	// OK means both moves were jointly valid and have been applied.
	OK Outcome = iota
	// MutualIllegal means both submissions are rejected and must be
	// resubmitted; neither counts toward a player's own illegality record,
	// it is tracked as a shared/mutual event.
	MutualIllegal
	// OneSidedIllegal means exactly one color's submission is rejected.
	// The other color's move was individually fine but cannot be applied
	// alone, since SimChess only ever advances both halves of a turn
	// together; it must be resubmitted too.
	OneSidedIllegal
)

// String returns a human-readable label for the outcome kind.
func (o Outcome) String() string {
	switch o {
	case OK:
		return "ok"
	case MutualIllegal:
		return "mutual"
	case OneSidedIllegal:
		return "one_sided"
	default:
		return "unknown"
	}
}

// Result is the return value of Resolve: a tagged union over OK,
// MutualIllegal and OneSidedIllegal.
type Result struct {
	Outcome Outcome

	// Board is the post-move position. Populated only when Outcome == OK.
	Board *engine.Board

	// Offender is the color whose move is rejected when Outcome ==
	// OneSidedIllegal. Zero value (engine.None) otherwise.
	Offender engine.Color

	// WhiteReason and BlackReason explain why each color's move was
	// rejected. Empty when that color's move was accepted.
	WhiteReason string
	BlackReason string
}

// Resolve runs the conflict analyzer against White's and Black's submitted
// half-moves on board, and applies them if they resolve cleanly. board is
// never mutated; on OK, Result.Board is a new position.
//
// The analyzer runs five rules in order, the first match wins:
//  1. Same target square: both moves land on the same square.
//  2. Reciprocal captures: each move's target is the other's source.
//  3. Pawn-capture-escape: a pawn capture whose target square is simultaneously
//     being vacated by the piece it intended to capture, or an en-passant
//     capture whose target pawn is itself moving this turn. Non-pawn captures
//     are unaffected -- they still land on the now-empty square.
//  4. Sliding-path obstruction: the opponent's destination square lies on
//     one side's sliding path.
//  5. Joint pseudo-legality, with a path-opening exception: a move blocked
//     today only because the opponent's piece sits in its sliding path is
//     still admissible if the opponent is vacating that exact square this
//     turn, the rest of the path is clear, the opponent isn't also landing
//     back in the path or on the same target, and the destination is empty
//     or occupied by an enemy piece.
func Resolve(board *engine.Board, white, black engine.Move) Result {
	if white.To == black.To {
		reason := fmt.Sprintf("Conflict: both moving to %s", white.To)
		return mutualFail(reason)
	}

	if white.To == black.From && black.To == white.From {
		return mutualFail("Conflict: reciprocal captures")
	}

	if res, fired := pawnCaptureEscapeRule(board, white, black); fired {
		return res
	}

	if res, fired := slidingPathObstructionRule(board, white, black); fired {
		return res
	}

	whitePiece := board.PieceAt(white.From)
	blackPiece := board.PieceAt(black.From)

	whiteLegalNow := engine.IsPseudoLegal(board, engine.White, white)
	blackLegalNow := engine.IsPseudoLegal(board, engine.Black, black)

	whiteOpened := !whiteLegalNow && pathOpened(board, white, black, whitePiece)
	blackOpened := !blackLegalNow && pathOpened(board, black, white, blackPiece)

	whiteValid := whiteLegalNow || whiteOpened
	blackValid := blackLegalNow || blackOpened

	if !whiteValid && !blackValid {
		return mutualFail("Not a legal chess move")
	}
	if !whiteValid {
		return oneSidedFail(engine.White, "Not a legal chess move")
	}
	if !blackValid {
		return oneSidedFail(engine.Black, "Not a legal chess move")
	}

	return apply(board, white, black)
}

func mutualFail(reason string) Result {
	return Result{Outcome: MutualIllegal, WhiteReason: reason, BlackReason: reason}
}

func oneSidedFail(offender engine.Color, reason string) Result {
	r := Result{Outcome: OneSidedIllegal, Offender: offender}
	if offender == engine.White {
		r.WhiteReason = reason
	} else {
		r.BlackReason = reason
	}
	return r
}

// isPawnCapture reports whether move is a pawn moving across files, i.e. a
// capture-shaped pawn move that requires an occupant on the target square.
func isPawnCapture(board *engine.Board, move engine.Move) bool {
	piece := board.PieceAt(move.From)
	return piece.Type == engine.Pawn && move.From.File() != move.To.File()
}

func pawnCaptureEscapeRule(board *engine.Board, white, black engine.Move) (Result, bool) {
	whiteIsCapture := !board.PieceAt(white.To).IsEmpty()
	blackIsCapture := !board.PieceAt(black.To).IsEmpty()

	if whiteIsCapture && white.To == black.From && isPawnCapture(board, white) {
		return mutualFail(fmt.Sprintf("pawn capture target on %s moved away", white.To)), true
	}
	if blackIsCapture && black.To == white.From && isPawnCapture(board, black) {
		return mutualFail(fmt.Sprintf("pawn capture target on %s moved away", black.To)), true
	}
	if white.Kind == engine.EnPassant && black.From == white.To-8 {
		return mutualFail(fmt.Sprintf("pawn capture target on %s moved away", black.From)), true
	}
	if black.Kind == engine.EnPassant && white.From == black.To+8 {
		return mutualFail(fmt.Sprintf("pawn capture target on %s moved away", white.From)), true
	}
	return Result{}, false
}

func slidingPathObstructionRule(board *engine.Board, white, black engine.Move) (Result, bool) {
	whitePiece := board.PieceAt(white.From)
	blackPiece := board.PieceAt(black.From)
	if whitePiece.IsEmpty() || blackPiece.IsEmpty() {
		return Result{}, false
	}

	whitePath := engine.SlidingPath(white.From, white.To, whitePiece.Type)
	blackPath := engine.SlidingPath(black.From, black.To, blackPiece.Type)

	if containsSquare(whitePath, black.To) {
		return mutualFail(fmt.Sprintf("Path blocked: %s obstructs sliding piece", black.To)), true
	}
	if containsSquare(blackPath, white.To) {
		return mutualFail(fmt.Sprintf("Path blocked: %s obstructs sliding piece", white.To)), true
	}
	return Result{}, false
}

func containsSquare(path []engine.Square, sq engine.Square) bool {
	for _, s := range path {
		if s == sq {
			return true
		}
	}
	return false
}

// pathOpened implements the path-opening exception: mover's move is blocked
// today by a piece sitting in its sliding path, but other is vacating that
// exact square this turn.
func pathOpened(board *engine.Board, mover, other engine.Move, moverPiece engine.Piece) bool {
	if moverPiece.IsEmpty() {
		return false
	}
	path := engine.SlidingPath(mover.From, mover.To, moverPiece.Type)
	if path == nil || !containsSquare(path, other.From) {
		return false
	}
	if containsSquare(path, other.To) || other.To == mover.To {
		return false
	}

	for _, sq := range path {
		if sq == other.From {
			continue
		}
		if !board.PieceAt(sq).IsEmpty() {
			return false
		}
	}

	target := board.PieceAt(mover.To)
	moverColor := moverPiece.Color
	return target.IsEmpty() || target.Color != moverColor
}

// apply runs the six-step collision algorithm: force White to move first on
// a working copy, apply White's move, restore Black's original piece if
// White's move overwrote it, force Black to move, apply Black's move, then
// if a collision occurred re-assert White's piece on the contested square --
// White wins the contested square.
func apply(board *engine.Board, white, black engine.Move) Result {
	origWhitePiece := board.PieceAt(white.From)
	origBlackPiece := board.PieceAt(black.From)

	working := board.Copy()
	working.SideToMove = engine.White
	working.MakeMove(white)

	collision := white.To == black.From
	if collision {
		working.SetPiece(black.From, origBlackPiece)
	}

	working.SideToMove = engine.Black
	working.MakeMove(black)

	if collision {
		winningPieceType := origWhitePiece.Type
		if white.Promotion != engine.Empty {
			winningPieceType = white.Promotion
		}
		working.SetPiece(white.To, engine.Piece{Type: winningPieceType, Color: engine.White})
	}

	return Result{Outcome: OK, Board: working}
}
