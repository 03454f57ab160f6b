// Package engine provides the chess board primitives SimChess is built on:
// square/file/rank arithmetic, piece placement, FEN encode/decode, and
// pseudo-legal move generation for standard chess pieces. Pseudo-legal means
// no king-safety filter is applied anywhere in this package -- a move that
// leaves its own king attacked is still generated and still makeable. The
// resolver package is what decides whether a pseudo-legal half-move actually
// gets to happen in a given turn.
package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// Color represents the color of a chess piece or player.
type Color int

const (
	// None represents no color (empty squares).
	None Color = iota
	// White represents the white player.
	White
	// Black represents the black player.
	Black
)

// String returns the string representation of a color.
func (c Color) String() string {
	switch c {
	case None:
		return "none"
	case White:
		return "white"
	case Black:
		return "black"
	default:
		return "unknown"
	}
}

// Opponent returns the other color. Opponent(None) is None.
func (c Color) Opponent() Color {
	switch c {
	case White:
		return Black
	case Black:
		return White
	default:
		return None
	}
}

// PieceType represents the type of a chess piece.
type PieceType int

const (
	// Empty represents an empty square.
	Empty PieceType = iota
	// Pawn represents a pawn piece.
	Pawn
	// Knight represents a knight piece.
	Knight
	// Bishop represents a bishop piece.
	Bishop
	// Rook represents a rook piece.
	Rook
	// Queen represents a queen piece.
	Queen
	// King represents a king piece.
	King
)

// String returns the string representation of a piece type.
func (pt PieceType) String() string {
	switch pt {
	case Empty:
		return "empty"
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	default:
		return "unknown"
	}
}

// PieceTypeFromPromotionLetter parses the lower-case promotion letters used
// in coordinate notation: q, r, b, n.
func PieceTypeFromPromotionLetter(ch byte) (PieceType, error) {
	switch ch {
	case 'q':
		return Queen, nil
	case 'r':
		return Rook, nil
	case 'b':
		return Bishop, nil
	case 'n':
		return Knight, nil
	default:
		return Empty, fmt.Errorf("invalid promotion piece: %c", ch)
	}
}

// Piece represents a chess piece with its type and color.
type Piece struct {
	Type  PieceType
	Color Color
}

// IsEmpty returns true if the piece represents an empty square.
func (p Piece) IsEmpty() bool {
	return p.Type == Empty
}

// String returns the string representation of a piece (FEN-style letter).
func (p Piece) String() string {
	if p.IsEmpty() {
		return "."
	}

	symbol := ""
	switch p.Type {
	case Pawn:
		symbol = "P"
	case Knight:
		symbol = "N"
	case Bishop:
		symbol = "B"
	case Rook:
		symbol = "R"
	case Queen:
		symbol = "Q"
	case King:
		symbol = "K"
	}

	if p.Color == Black {
		symbol = strings.ToLower(symbol)
	}

	return symbol
}

// Square represents a position on the chess board, 0..63, file = sq%8, rank = sq/8.
type Square int

// A1 through H8 represent the 64 squares of a chess board.
const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8
)

// NoSquare is used in place of an optional square (e.g. no en passant target).
const NoSquare Square = -1

// SquareFromString parses a square from algebraic notation (e.g., "e4").
func SquareFromString(s string) (Square, error) {
	if len(s) != 2 {
		return 0, fmt.Errorf("invalid square notation: %s", s)
	}

	file := s[0] - 'a'
	rank := s[1] - '1'

	if file > 7 || rank > 7 {
		return 0, fmt.Errorf("invalid square notation: %s", s)
	}

	return Square(int(rank)*8 + int(file)), nil
}

// String returns the algebraic notation of the square (e.g., "e4").
func (s Square) String() string {
	if s < A1 || s > H8 {
		return "-"
	}

	file := s % 8
	rank := s / 8

	return fmt.Sprintf("%c%c", 'a'+file, '1'+rank)
}

// File returns the file (column) of the square (0-7).
func (s Square) File() int {
	return int(s % 8)
}

// Rank returns the rank (row) of the square (0-7).
func (s Square) Rank() int {
	return int(s / 8)
}

// onBoard reports whether rank/file coordinates fall within the 8x8 board.
func onBoard(rank, file int) bool {
	return rank >= 0 && rank < 8 && file >= 0 && file < 8
}

// CastlingRights tracks which castling moves are still available.
type CastlingRights struct {
	WhiteKingside  bool
	WhiteQueenside bool
	BlackKingside  bool
	BlackQueenside bool
}

// Board represents a chess position: piece placement plus the FEN-equivalent
// side-to-move, castling rights, en passant target, halfmove clock and
// fullmove number.
type Board struct {
	squares        [64]Piece
	SideToMove     Color
	Castling       CastlingRights
	EnPassant      Square
	HalfmoveClock  int
	FullmoveNumber int
}

// NewBoard creates a new board with the standard starting position.
func NewBoard() *Board {
	b := &Board{}
	b.SetupStartingPosition()
	return b
}

// SetupStartingPosition resets the board to the standard chess starting position.
func (b *Board) SetupStartingPosition() {
	for i := range b.squares {
		b.squares[i] = Piece{Type: Empty}
	}

	back := [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for file, pt := range back {
		b.squares[Square(file)] = Piece{Type: pt, Color: White}
		b.squares[Square(56+file)] = Piece{Type: pt, Color: Black}
	}
	for i := A2; i <= H2; i++ {
		b.squares[i] = Piece{Type: Pawn, Color: White}
	}
	for i := A7; i <= H7; i++ {
		b.squares[i] = Piece{Type: Pawn, Color: Black}
	}

	b.SideToMove = White
	b.Castling = CastlingRights{true, true, true, true}
	b.EnPassant = NoSquare
	b.HalfmoveClock = 0
	b.FullmoveNumber = 1
}

// PieceAt returns the piece at the given square.
func (b *Board) PieceAt(sq Square) Piece {
	if sq < A1 || sq > H8 {
		return Piece{Type: Empty}
	}
	return b.squares[sq]
}

// SetPiece places (or clears, with Piece{Type: Empty}) a piece at the given square.
func (b *Board) SetPiece(sq Square, piece Piece) {
	if sq >= A1 && sq <= H8 {
		b.squares[sq] = piece
	}
}

// Copy returns a deep copy of the board.
func (b *Board) Copy() *Board {
	newBoard := *b
	return &newBoard
}

// WithSideToMove returns a copy of the board with side-to-move forced to c,
// without mutating the receiver. SimChess evaluates "is this W's legal move
// with W to move" irrespective of whose turn the stored FEN actually
// records, since both sides submit simultaneously.
func (b *Board) WithSideToMove(c Color) *Board {
	cp := b.Copy()
	cp.SideToMove = c
	return cp
}

// String renders an ASCII diagram of the board, rank 8 first.
func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteString("  a b c d e f g h\n")
	for rank := 7; rank >= 0; rank-- {
		sb.WriteString(fmt.Sprintf("%d ", rank+1))
		for file := 0; file < 8; file++ {
			sb.WriteString(b.PieceAt(Square(rank*8+file)).String())
			sb.WriteString(" ")
		}
		sb.WriteString(fmt.Sprintf("%d\n", rank+1))
	}
	sb.WriteString("  a b c d e f g h\n")
	return sb.String()
}

// FEN returns the Forsyth-Edwards Notation for the current position.
func (b *Board) FEN() string {
	var fen strings.Builder

	fen.WriteString(b.PlacementFEN())

	fen.WriteString(" ")
	if b.SideToMove == Black {
		fen.WriteString("b")
	} else {
		fen.WriteString("w")
	}

	fen.WriteString(" ")
	fen.WriteString(b.castlingFEN())

	fen.WriteString(" ")
	if b.EnPassant == NoSquare {
		fen.WriteString("-")
	} else {
		fen.WriteString(b.EnPassant.String())
	}

	fmt.Fprintf(&fen, " %d %d", b.HalfmoveClock, b.FullmoveNumber)

	return fen.String()
}

// PlacementFEN returns only the first (piece placement) field of the FEN --
// the "piece-placement key" used for threefold repetition comparisons.
func (b *Board) PlacementFEN() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			p := b.PieceAt(Square(rank*8 + file))
			if p.IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(pieceToFENChar(p))
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteString("/")
		}
	}
	return sb.String()
}

func (b *Board) castlingFEN() string {
	s := ""
	if b.Castling.WhiteKingside {
		s += "K"
	}
	if b.Castling.WhiteQueenside {
		s += "Q"
	}
	if b.Castling.BlackKingside {
		s += "k"
	}
	if b.Castling.BlackQueenside {
		s += "q"
	}
	if s == "" {
		return "-"
	}
	return s
}

func pieceToFENChar(p Piece) string {
	var c string
	switch p.Type {
	case Pawn:
		c = "p"
	case Knight:
		c = "n"
	case Bishop:
		c = "b"
	case Rook:
		c = "r"
	case Queen:
		c = "q"
	case King:
		c = "k"
	default:
		return ""
	}
	if p.Color == White {
		return strings.ToUpper(c)
	}
	return c
}

// ParseFEN builds a Board from Forsyth-Edwards Notation. The halfmove clock
// and fullmove number fields are optional and default to 0 and 1.
func ParseFEN(fen string) (*Board, error) {
	parts := strings.Fields(strings.TrimSpace(fen))
	if len(parts) < 4 {
		return nil, fmt.Errorf("invalid FEN: expected at least 4 fields, got %d", len(parts))
	}

	b := &Board{}

	ranks := strings.Split(parts[0], "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("invalid FEN: expected 8 ranks, got %d", len(ranks))
	}

	for rankIdx, rankStr := range ranks {
		file := 0
		for _, ch := range rankStr {
			if file > 7 {
				return nil, fmt.Errorf("invalid FEN rank %d: too many squares", 8-rankIdx)
			}
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			var pt PieceType
			switch ch {
			case 'p', 'P':
				pt = Pawn
			case 'n', 'N':
				pt = Knight
			case 'b', 'B':
				pt = Bishop
			case 'r', 'R':
				pt = Rook
			case 'q', 'Q':
				pt = Queen
			case 'k', 'K':
				pt = King
			default:
				return nil, fmt.Errorf("invalid FEN piece character: %c", ch)
			}
			color := Black
			if ch >= 'A' && ch <= 'Z' {
				color = White
			}
			sq := Square((7-rankIdx)*8 + file)
			b.squares[sq] = Piece{Type: pt, Color: color}
			file++
		}
		if file != 8 {
			return nil, fmt.Errorf("invalid FEN rank %d: expected 8 files, got %d", 8-rankIdx, file)
		}
	}

	switch parts[1] {
	case "w":
		b.SideToMove = White
	case "b":
		b.SideToMove = Black
	default:
		return nil, fmt.Errorf("invalid FEN active color: %s", parts[1])
	}

	if parts[2] != "-" {
		for _, ch := range parts[2] {
			switch ch {
			case 'K':
				b.Castling.WhiteKingside = true
			case 'Q':
				b.Castling.WhiteQueenside = true
			case 'k':
				b.Castling.BlackKingside = true
			case 'q':
				b.Castling.BlackQueenside = true
			default:
				return nil, fmt.Errorf("invalid castling char: %c", ch)
			}
		}
	}

	if parts[3] == "-" {
		b.EnPassant = NoSquare
	} else {
		sq, err := SquareFromString(parts[3])
		if err != nil {
			return nil, fmt.Errorf("invalid en passant square: %w", err)
		}
		b.EnPassant = sq
	}

	b.HalfmoveClock = 0
	b.FullmoveNumber = 1
	if len(parts) >= 5 {
		hm, err := strconv.Atoi(parts[4])
		if err != nil || hm < 0 {
			return nil, fmt.Errorf("invalid halfmove clock: %s", parts[4])
		}
		b.HalfmoveClock = hm
	}
	if len(parts) >= 6 {
		fm, err := strconv.Atoi(parts[5])
		if err != nil || fm < 1 {
			return nil, fmt.Errorf("invalid fullmove number: %s", parts[5])
		}
		b.FullmoveNumber = fm
	}

	return b, nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
