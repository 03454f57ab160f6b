package engine

import "testing"

func TestSANPawnPush(t *testing.T) {
	b := NewBoard()
	move, err := ParseHalfMove(b, White, "e2e4")
	if err != nil {
		t.Fatalf("ParseHalfMove error: %v", err)
	}
	if got := SAN(b, move); got != "e4" {
		t.Errorf("SAN = %q, want e4", got)
	}
}

func TestSANPawnCaptureIncludesOriginFile(t *testing.T) {
	fen := "4k3/8/8/8/3p4/4P3/8/4K3 w - - 0 1"
	b, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN error: %v", err)
	}
	move, err := ParseHalfMove(b, White, "e3d4")
	if err != nil {
		t.Fatalf("ParseHalfMove error: %v", err)
	}
	if got := SAN(b, move); got != "exd4" {
		t.Errorf("SAN = %q, want exd4", got)
	}
}

func TestSANPromotionSuffix(t *testing.T) {
	fen := "8/4P3/8/8/8/8/8/4k2K w - - 0 1"
	b, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN error: %v", err)
	}
	move, err := ParseHalfMove(b, White, "e7e8q")
	if err != nil {
		t.Fatalf("ParseHalfMove error: %v", err)
	}
	if got := SAN(b, move); got != "e8=Q" {
		t.Errorf("SAN = %q, want e8=Q", got)
	}
}

func TestSANKnightMoveNoDisambiguationNeeded(t *testing.T) {
	b := NewBoard()
	move, err := ParseHalfMove(b, White, "b1c3")
	if err != nil {
		t.Fatalf("ParseHalfMove error: %v", err)
	}
	if got := SAN(b, move); got != "Nc3" {
		t.Errorf("SAN = %q, want Nc3", got)
	}
}

func TestSANKnightDisambiguatesByFile(t *testing.T) {
	// Knights on b1 and d1 can both reach c3: needs the origin file.
	fen := "4k3/8/8/8/8/8/8/1N1N2K1 w - - 0 1"
	b, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN error: %v", err)
	}
	move, err := ParseHalfMove(b, White, "b1c3")
	if err != nil {
		t.Fatalf("ParseHalfMove error: %v", err)
	}
	if got := SAN(b, move); got != "Nbc3" {
		t.Errorf("SAN = %q, want Nbc3", got)
	}
}

func TestSANKnightDisambiguatesByRank(t *testing.T) {
	// Knights on b1 and b3, sharing a file, both able to reach d2: needs
	// the origin rank since the file alone would be ambiguous.
	fen := "4k3/8/8/8/8/1N6/8/1N4K1 w - - 0 1"
	b, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN error: %v", err)
	}
	move, err := ParseHalfMove(b, White, "b1d2")
	if err != nil {
		t.Fatalf("ParseHalfMove error: %v", err)
	}
	if got := SAN(b, move); got != "N1d2" {
		t.Errorf("SAN = %q, want N1d2", got)
	}
}

func TestSANCastlingKingside(t *testing.T) {
	fen := "4k3/8/8/8/8/8/8/4K2R w K - 0 1"
	b, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN error: %v", err)
	}
	move, err := ParseHalfMove(b, White, "O-O")
	if err != nil {
		t.Fatalf("ParseHalfMove error: %v", err)
	}
	if got := SAN(b, move); got != "O-O" {
		t.Errorf("SAN = %q, want O-O", got)
	}
}

func TestSANCastlingQueenside(t *testing.T) {
	fen := "4k3/8/8/8/8/8/8/R3K3 w Q - 0 1"
	b, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN error: %v", err)
	}
	move, err := ParseHalfMove(b, White, "O-O-O")
	if err != nil {
		t.Fatalf("ParseHalfMove error: %v", err)
	}
	if got := SAN(b, move); got != "O-O-O" {
		t.Errorf("SAN = %q, want O-O-O", got)
	}
}

func TestSANRookMoveIncludesCaptureMarker(t *testing.T) {
	fen := "r3k3/8/8/8/8/8/8/R3K3 w Q - 0 1"
	b, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN error: %v", err)
	}
	move, err := ParseHalfMove(b, White, "a1a8")
	if err != nil {
		t.Fatalf("ParseHalfMove error: %v", err)
	}
	if got := SAN(b, move); got != "Rxa8" {
		t.Errorf("SAN = %q, want Rxa8", got)
	}
}
