package engine

import (
	"testing"
)

func TestParseHalfMoveBasic(t *testing.T) {
	b := NewBoard()
	move, err := ParseHalfMove(b, White, "e2e4")
	if err != nil {
		t.Fatalf("ParseHalfMove error: %v", err)
	}
	if move.From != E2 || move.To != E4 {
		t.Errorf("move = %+v, want From=E2 To=E4", move)
	}
	if move.Kind != Normal {
		t.Errorf("Kind = %v, want Normal", move.Kind)
	}
}

func TestParseHalfMoveWrongColor(t *testing.T) {
	b := NewBoard()
	if _, err := ParseHalfMove(b, Black, "e2e4"); err == nil {
		t.Fatal("expected error submitting white's piece as black")
	}
}

func TestParseHalfMovePromotion(t *testing.T) {
	fen := "8/4P3/8/8/8/8/8/4k2K w - - 0 1"
	b, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN error: %v", err)
	}
	move, err := ParseHalfMove(b, White, "e7e8q")
	if err != nil {
		t.Fatalf("ParseHalfMove error: %v", err)
	}
	if move.Promotion != Queen {
		t.Errorf("Promotion = %v, want Queen", move.Promotion)
	}
	if move.Kind != PromotionMove {
		t.Errorf("Kind = %v, want PromotionMove", move.Kind)
	}
}

func TestIsPseudoLegalPawnDoubleStep(t *testing.T) {
	b := NewBoard()
	move, _ := ParseHalfMove(b, White, "e2e4")
	if !IsPseudoLegal(b, White, move) {
		t.Error("expected e2e4 to be pseudo-legal from the starting position")
	}
}

func TestIsPseudoLegalNoKingSafetyFilter(t *testing.T) {
	// White king on e1, white rook on e2 pinned by a black rook on e8.
	// Moving the rook away leaves the king in check -- still pseudo-legal
	// in SimChess, since there is no check filter.
	fen := "4r3/8/8/8/8/8/4R3/4K3 w - - 0 1"
	b, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN error: %v", err)
	}
	move, err := ParseHalfMove(b, White, "e2a2")
	if err != nil {
		t.Fatalf("ParseHalfMove error: %v", err)
	}
	if !IsPseudoLegal(b, White, move) {
		t.Error("expected moving a pinned rook to be pseudo-legal (no king-safety filter)")
	}
}

func TestSlidingPathObstruction(t *testing.T) {
	path := SlidingPath(A1, A8, Rook)
	want := []Square{A2, A3, A4, A5, A6, A7}
	if len(path) != len(want) {
		t.Fatalf("SlidingPath length = %d, want %d", len(path), len(want))
	}
	for i, sq := range want {
		if path[i] != sq {
			t.Errorf("path[%d] = %v, want %v", i, path[i], sq)
		}
	}
}

func TestSlidingPathNonSlidingMoveReturnsNil(t *testing.T) {
	if path := SlidingPath(A1, B3, Knight); path != nil {
		t.Errorf("SlidingPath for knight = %v, want nil", path)
	}
}

func TestMakeMoveCapture(t *testing.T) {
	fen := "8/8/8/4p3/3P4/8/8/4k2K w - - 0 1"
	b, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN error: %v", err)
	}
	move, err := ParseHalfMove(b, White, "d4e5")
	if err != nil {
		t.Fatalf("ParseHalfMove error: %v", err)
	}
	b.MakeMove(move)

	if got := b.PieceAt(E5); got != (Piece{Type: Pawn, Color: White}) {
		t.Errorf("PieceAt(E5) = %v, want white pawn", got)
	}
	if !b.PieceAt(D4).IsEmpty() {
		t.Error("PieceAt(D4) should be empty after move")
	}
}

func TestMakeMoveEnPassant(t *testing.T) {
	fen := "8/8/8/3pP3/8/8/8/4k2K w - d6 0 1"
	b, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN error: %v", err)
	}
	move, err := ParseHalfMove(b, White, "e5d6")
	if err != nil {
		t.Fatalf("ParseHalfMove error: %v", err)
	}
	if move.Kind != EnPassant {
		t.Fatalf("Kind = %v, want EnPassant", move.Kind)
	}
	b.MakeMove(move)

	if got := b.PieceAt(D6); got != (Piece{Type: Pawn, Color: White}) {
		t.Errorf("PieceAt(D6) = %v, want white pawn", got)
	}
	if !b.PieceAt(D5).IsEmpty() {
		t.Error("captured pawn on D5 should be removed")
	}
}

func TestCastlingKingside(t *testing.T) {
	fen := "4k3/8/8/8/8/8/8/4K2R w K - 0 1"
	b, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN error: %v", err)
	}
	move, err := ParseHalfMove(b, White, "O-O")
	if err != nil {
		t.Fatalf("ParseHalfMove error: %v", err)
	}
	if !IsPseudoLegal(b, White, move) {
		t.Fatal("expected castling to be pseudo-legal")
	}
	b.MakeMove(move)

	if got := b.PieceAt(G1); got != (Piece{Type: King, Color: White}) {
		t.Errorf("PieceAt(G1) = %v, want white king", got)
	}
	if got := b.PieceAt(F1); got != (Piece{Type: Rook, Color: White}) {
		t.Errorf("PieceAt(F1) = %v, want white rook", got)
	}
}

func TestCastlingBlockedByAttackedTransitSquare(t *testing.T) {
	// Black rook on f8 attacks f1, which the white king must pass through.
	fen := "4kr2/8/8/8/8/8/8/4K2R w K - 0 1"
	b, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN error: %v", err)
	}
	if canCastle(b, White, true) {
		t.Error("expected castling to be blocked by attacked transit square")
	}
}

func TestGeneratePseudoLegalMovesBothSidesCanCastle(t *testing.T) {
	// Both kings still hold full castling rights with clear home-rank
	// paths; isSquareAttacked must not recurse into the opponent's own
	// castling moves while evaluating this.
	fen := "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1"
	b, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN error: %v", err)
	}
	moves := GeneratePseudoLegalMoves(b, White)
	castles := 0
	for _, m := range moves {
		if m.Kind == Castling {
			castles++
		}
	}
	if castles != 2 {
		t.Errorf("castling moves = %d, want 2 (both sides available)", castles)
	}
}

func TestGeneratePseudoLegalMovesStartingPositionCount(t *testing.T) {
	b := NewBoard()
	moves := GeneratePseudoLegalMoves(b, White)
	// 20 legal opening moves for White from the starting position.
	if len(moves) != 20 {
		t.Errorf("len(moves) = %d, want 20", len(moves))
	}
}

func TestKingSquare(t *testing.T) {
	b := NewBoard()
	if sq := b.KingSquare(White); sq != E1 {
		t.Errorf("KingSquare(White) = %v, want E1", sq)
	}
	b.SetPiece(E1, Piece{Type: Empty})
	if sq := b.KingSquare(White); sq != NoSquare {
		t.Errorf("KingSquare(White) after removal = %v, want NoSquare", sq)
	}
}
