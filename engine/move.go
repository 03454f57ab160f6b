package engine

import (
	"errors"
	"fmt"
	"strings"
)

// MoveKind classifies how a move affects the board, beyond plain piece
// relocation.
type MoveKind int

const (
	// Normal is a non-capturing, non-special move.
	Normal MoveKind = iota
	// CaptureMove removes an enemy piece standing on the target square.
	CaptureMove
	// Castling moves the king two squares and the corresponding rook.
	Castling
	// EnPassant is a pawn capture of a pawn that just double-stepped past it.
	EnPassant
	// PromotionMove replaces the arriving pawn with move.Promotion.
	PromotionMove
)

// String returns the string representation of a move kind.
func (mk MoveKind) String() string {
	switch mk {
	case Normal:
		return "normal"
	case CaptureMove:
		return "capture"
	case Castling:
		return "castling"
	case EnPassant:
		return "en_passant"
	case PromotionMove:
		return "promotion"
	default:
		return "unknown"
	}
}

// Move is a single half-move: a piece traveling from one square to another,
// with an optional promotion piece. Captured/Piece/Kind are populated by
// whichever function produced the Move (parser or generator) as a
// convenience for callers; they are not re-derived by MakeMove.
type Move struct {
	From      Square
	To        Square
	Promotion PieceType
	Kind      MoveKind
	Piece     Piece
	Captured  Piece
}

// String returns the move in coordinate notation (e.g. "e2e4", "e7e8q").
func (m Move) String() string {
	if m.Kind == Castling {
		if m.To.File() > m.From.File() {
			return "O-O"
		}
		return "O-O-O"
	}

	s := m.From.String() + m.To.String()
	switch m.Promotion {
	case Queen:
		s += "q"
	case Rook:
		s += "r"
	case Bishop:
		s += "b"
	case Knight:
		s += "n"
	}
	return s
}

// ParseHalfMove parses coordinate notation ("e2e4", "e7e8q") against board b,
// without mutating it. It does not check legality, only that the notation is
// well formed and a piece of the expected side sits on the from-square.
func ParseHalfMove(b *Board, side Color, notation string) (Move, error) {
	notation = strings.TrimSpace(notation)
	if notation == "O-O" || notation == "0-0" {
		return castlingHalfMove(b, side, true)
	}
	if notation == "O-O-O" || notation == "0-0-0" {
		return castlingHalfMove(b, side, false)
	}

	if len(notation) < 4 || len(notation) > 5 {
		return Move{}, fmt.Errorf("invalid move notation: %s", notation)
	}

	from, err := SquareFromString(notation[0:2])
	if err != nil {
		return Move{}, fmt.Errorf("invalid from square: %w", err)
	}
	to, err := SquareFromString(notation[2:4])
	if err != nil {
		return Move{}, fmt.Errorf("invalid to square: %w", err)
	}

	piece := b.PieceAt(from)
	if piece.IsEmpty() || piece.Color != side {
		return Move{}, fmt.Errorf("no %s piece on %s", side, from)
	}

	move := Move{From: from, To: to, Piece: piece}

	target := b.PieceAt(to)
	switch {
	case !target.IsEmpty():
		move.Kind = CaptureMove
		move.Captured = target
	case piece.Type == Pawn && from.File() != to.File() && to == b.EnPassant && b.EnPassant != NoSquare:
		move.Kind = EnPassant
		capSq := to - 8
		if side == Black {
			capSq = to + 8
		}
		move.Captured = b.PieceAt(capSq)
	}

	if len(notation) == 5 {
		if piece.Type != Pawn {
			return Move{}, fmt.Errorf("promotion suffix on non-pawn move: %s", notation)
		}
		pt, err := PieceTypeFromPromotionLetter(strings.ToLower(notation[4:5])[0])
		if err != nil {
			return Move{}, err
		}
		move.Promotion = pt
		move.Kind = PromotionMove
	}

	return move, nil
}

func castlingHalfMove(b *Board, side Color, kingside bool) (Move, error) {
	kingFrom := E1
	if side == Black {
		kingFrom = E8
	}
	kingTo := kingFrom + 2
	if !kingside {
		kingTo = kingFrom - 2
	}

	king := b.PieceAt(kingFrom)
	if king.Type != King || king.Color != side {
		return Move{}, errors.New("king not in position for castling")
	}

	return Move{From: kingFrom, To: kingTo, Kind: Castling, Piece: king}, nil
}

// slidingDirections maps a sliding piece type to its movement directions as
// (rank step, file step) pairs.
var slidingDirections = map[PieceType][][2]int{
	Bishop: {{1, 1}, {1, -1}, {-1, 1}, {-1, -1}},
	Rook:   {{0, 1}, {0, -1}, {1, 0}, {-1, 0}},
	Queen:  {{1, 1}, {1, -1}, {-1, 1}, {-1, -1}, {0, 1}, {0, -1}, {1, 0}, {-1, 0}},
}

// SlidingPath returns the strict set of squares strictly between from and to
// along a valid geometric slide for pieceType. It returns nil if pieceType is
// not a sliding piece, or the from/to pair is not a valid slide for it.
func SlidingPath(from, to Square, pieceType PieceType) []Square {
	if pieceType != Bishop && pieceType != Rook && pieceType != Queen {
		return nil
	}

	fileDiff := to.File() - from.File()
	rankDiff := to.Rank() - from.Rank()
	if fileDiff == 0 && rankDiff == 0 {
		return nil
	}

	isDiagonal := abs(fileDiff) == abs(rankDiff) && fileDiff != 0
	isStraight := (fileDiff == 0) != (rankDiff == 0)

	switch pieceType {
	case Bishop:
		if !isDiagonal {
			return nil
		}
	case Rook:
		if !isStraight {
			return nil
		}
	case Queen:
		if !isDiagonal && !isStraight {
			return nil
		}
	}

	fileStep, rankStep := sign(fileDiff), sign(rankDiff)
	var path []Square
	file, rank := from.File()+fileStep, from.Rank()+rankStep
	for file != to.File() || rank != to.Rank() {
		path = append(path, Square(rank*8+file))
		file += fileStep
		rank += rankStep
	}
	return path
}

// IsPseudoLegal reports whether move is pseudo-legal on b with sideToMove to
// move. No king-safety filter is applied: a move that leaves sideToMove's own
// king attacked is still pseudo-legal.
func IsPseudoLegal(b *Board, sideToMove Color, move Move) bool {
	piece := b.PieceAt(move.From)
	if piece.IsEmpty() || piece.Color != sideToMove {
		return false
	}
	if move.To < A1 || move.To > H8 {
		return false
	}

	target := b.PieceAt(move.To)
	if !target.IsEmpty() && target.Color == sideToMove {
		return false
	}

	switch piece.Type {
	case Pawn:
		return isPawnMovePseudoLegal(b, sideToMove, move)
	case Knight:
		return isKnightMovePseudoLegal(move)
	case Bishop, Rook, Queen:
		return isSlidingMovePseudoLegal(b, move, piece.Type)
	case King:
		return isKingMovePseudoLegal(b, sideToMove, move)
	default:
		return false
	}
}

func isPawnMovePseudoLegal(b *Board, side Color, move Move) bool {
	direction := 1
	startRank := 1
	promoRank := 7
	if side == Black {
		direction = -1
		startRank = 6
		promoRank = 0
	}

	fileDiff := move.To.File() - move.From.File()
	rankDiff := move.To.Rank() - move.From.Rank()
	needsPromotion := move.To.Rank() == promoRank

	if needsPromotion && move.Promotion == Empty {
		return false
	}
	if !needsPromotion && move.Promotion != Empty {
		return false
	}

	if fileDiff == 0 {
		if rankDiff == direction {
			return b.PieceAt(move.To).IsEmpty()
		}
		if rankDiff == 2*direction && move.From.Rank() == startRank {
			mid := Square(int(move.From) + 8*direction)
			return b.PieceAt(mid).IsEmpty() && b.PieceAt(move.To).IsEmpty()
		}
		return false
	}

	if abs(fileDiff) == 1 && rankDiff == direction {
		target := b.PieceAt(move.To)
		if !target.IsEmpty() && target.Color != side {
			return true
		}
		return b.EnPassant != NoSquare && move.To == b.EnPassant
	}

	return false
}

func isKnightMovePseudoLegal(move Move) bool {
	fileDiff := abs(move.To.File() - move.From.File())
	rankDiff := abs(move.To.Rank() - move.From.Rank())
	return (fileDiff == 2 && rankDiff == 1) || (fileDiff == 1 && rankDiff == 2)
}

func isSlidingMovePseudoLegal(b *Board, move Move, pieceType PieceType) bool {
	path := SlidingPath(move.From, move.To, pieceType)
	if path == nil && move.From != move.To {
		// SlidingPath returns nil both for "not a slide" and for adjacent
		// squares with no intermediate squares; re-validate geometry here.
		fileDiff := move.To.File() - move.From.File()
		rankDiff := move.To.Rank() - move.From.Rank()
		isDiagonal := abs(fileDiff) == abs(rankDiff) && fileDiff != 0
		isStraight := (fileDiff == 0) != (rankDiff == 0)
		switch pieceType {
		case Bishop:
			if !isDiagonal {
				return false
			}
		case Rook:
			if !isStraight {
				return false
			}
		case Queen:
			if !isDiagonal && !isStraight {
				return false
			}
		}
	}
	for _, sq := range path {
		if !b.PieceAt(sq).IsEmpty() {
			return false
		}
	}
	return true
}

func isKingMovePseudoLegal(b *Board, side Color, move Move) bool {
	if move.Kind == Castling {
		return canCastle(b, side, move.To.File() > move.From.File())
	}

	fileDiff := abs(move.To.File() - move.From.File())
	rankDiff := abs(move.To.Rank() - move.From.Rank())
	return fileDiff <= 1 && rankDiff <= 1 && (fileDiff+rankDiff > 0)
}

// canCastle checks standard castling preconditions: rights, empty squares
// between king and rook, and the king not starting in, passing through, or
// landing in check. These check legs follow standard chess and go beyond the
// package's otherwise pseudo-legal (no king-safety) rules -- see DESIGN.md.
func canCastle(b *Board, side Color, kingside bool) bool {
	kingSquare, rookSquare := E1, H1
	if side == Black {
		kingSquare, rookSquare = E8, H8
	}
	if !kingside {
		rookSquare = A1
		if side == Black {
			rookSquare = A8
		}
	}

	if side == White {
		if kingside && !b.Castling.WhiteKingside {
			return false
		}
		if !kingside && !b.Castling.WhiteQueenside {
			return false
		}
	} else {
		if kingside && !b.Castling.BlackKingside {
			return false
		}
		if !kingside && !b.Castling.BlackQueenside {
			return false
		}
	}

	lo, hi := kingSquare, rookSquare
	if lo > hi {
		lo, hi = hi, lo
	}
	for sq := lo + 1; sq < hi; sq++ {
		if !b.PieceAt(sq).IsEmpty() {
			return false
		}
	}

	if isSquareAttacked(b, kingSquare, side.Opponent()) {
		return false
	}
	step := 1
	if !kingside {
		step = -1
	}
	for sq := kingSquare + Square(step); sq != kingSquare+Square(3*step); sq += Square(step) {
		if isSquareAttacked(b, sq, side.Opponent()) {
			return false
		}
	}

	return true
}

// isSquareAttacked reports whether any piece of attacker pseudo-legally
// reaches sq. Pawns count only for their two diagonal capture squares,
// whether or not sq is occupied. Used only for castling's check-traversal
// leg, since SimChess otherwise never filters on check.
//
// Castling is deliberately excluded from the king moves considered here:
// castling can never itself be a capture/attack on sq, and canCastle (the
// only caller of isSquareAttacked) calling back into a king-move generator
// that includes castling would recurse into canCastle for the opponent,
// which calls isSquareAttacked for the original side's king, and so on
// forever whenever both kings still hold castling rights.
func isSquareAttacked(b *Board, sq Square, attacker Color) bool {
	for from := A1; from <= H8; from++ {
		p := b.PieceAt(from)
		if p.IsEmpty() || p.Color != attacker {
			continue
		}
		if p.Type == Pawn {
			direction := 1
			if attacker == Black {
				direction = -1
			}
			if sq.Rank()-from.Rank() == direction && abs(sq.File()-from.File()) == 1 {
				return true
			}
			continue
		}
		for _, m := range pseudoLegalMovesFrom(b, attacker, from, p, false) {
			if m.To == sq {
				return true
			}
		}
	}
	return false
}

// GeneratePseudoLegalMoves returns every pseudo-legal move for side on b.
func GeneratePseudoLegalMoves(b *Board, side Color) []Move {
	var moves []Move
	for sq := A1; sq <= H8; sq++ {
		p := b.PieceAt(sq)
		if p.IsEmpty() || p.Color != side {
			continue
		}
		moves = append(moves, pseudoLegalMovesFrom(b, side, sq, p, true)...)
	}
	return moves
}

// pseudoLegalMovesFrom generates piece's pseudo-legal moves from sq.
// includeCastling gates the king's castling moves; pass false from any
// attack-detection path, since castling is never itself an attack and the
// two castling rights would otherwise recurse into each other through
// isSquareAttacked.
func pseudoLegalMovesFrom(b *Board, side Color, from Square, piece Piece, includeCastling bool) []Move {
	switch piece.Type {
	case Pawn:
		return pawnMoves(b, side, from)
	case Knight:
		return knightMoves(b, side, from)
	case Bishop:
		return slidingMoves(b, side, from, Bishop)
	case Rook:
		return slidingMoves(b, side, from, Rook)
	case Queen:
		return slidingMoves(b, side, from, Queen)
	case King:
		return kingMoves(b, side, from, includeCastling)
	default:
		return nil
	}
}

func pawnMoves(b *Board, side Color, from Square) []Move {
	var moves []Move
	direction := 1
	startRank := 1
	promoRank := 7
	if side == Black {
		direction = -1
		startRank = 6
		promoRank = 0
	}

	rank, file := from.Rank(), from.File()
	piece := Piece{Type: Pawn, Color: side}

	addMaybePromotion := func(to Square, kind MoveKind, captured Piece) {
		if to.Rank() == promoRank {
			for _, pt := range []PieceType{Queen, Rook, Bishop, Knight} {
				moves = append(moves, Move{From: from, To: to, Promotion: pt, Kind: PromotionMove, Piece: piece, Captured: captured})
			}
			return
		}
		moves = append(moves, Move{From: from, To: to, Kind: kind, Piece: piece, Captured: captured})
	}

	if onBoard(rank+direction, file) {
		to := Square((rank+direction)*8 + file)
		if b.PieceAt(to).IsEmpty() {
			addMaybePromotion(to, Normal, Piece{})
			if rank == startRank && onBoard(rank+2*direction, file) {
				to2 := Square((rank+2*direction)*8 + file)
				if b.PieceAt(to2).IsEmpty() {
					moves = append(moves, Move{From: from, To: to2, Kind: Normal, Piece: piece})
				}
			}
		}
	}

	for _, fileOffset := range []int{-1, 1} {
		nf, nr := file+fileOffset, rank+direction
		if !onBoard(nr, nf) {
			continue
		}
		to := Square(nr*8 + nf)
		target := b.PieceAt(to)
		if !target.IsEmpty() && target.Color != side {
			addMaybePromotion(to, CaptureMove, target)
		} else if target.IsEmpty() && b.EnPassant != NoSquare && to == b.EnPassant {
			capSq := to - 8
			if side == Black {
				capSq = to + 8
			}
			moves = append(moves, Move{From: from, To: to, Kind: EnPassant, Piece: piece, Captured: b.PieceAt(capSq)})
		}
	}

	return moves
}

func knightMoves(b *Board, side Color, from Square) []Move {
	var moves []Move
	rank, file := from.Rank(), from.File()
	offsets := [8][2]int{{2, 1}, {2, -1}, {-2, 1}, {-2, -1}, {1, 2}, {1, -2}, {-1, 2}, {-1, -2}}
	piece := Piece{Type: Knight, Color: side}
	for _, o := range offsets {
		nr, nf := rank+o[0], file+o[1]
		if !onBoard(nr, nf) {
			continue
		}
		to := Square(nr*8 + nf)
		target := b.PieceAt(to)
		if target.IsEmpty() {
			moves = append(moves, Move{From: from, To: to, Kind: Normal, Piece: piece})
		} else if target.Color != side {
			moves = append(moves, Move{From: from, To: to, Kind: CaptureMove, Piece: piece, Captured: target})
		}
	}
	return moves
}

func slidingMoves(b *Board, side Color, from Square, pieceType PieceType) []Move {
	var moves []Move
	piece := Piece{Type: pieceType, Color: side}
	rank, file := from.Rank(), from.File()
	for _, dir := range slidingDirections[pieceType] {
		for i := 1; i < 8; i++ {
			nr, nf := rank+dir[0]*i, file+dir[1]*i
			if !onBoard(nr, nf) {
				break
			}
			to := Square(nr*8 + nf)
			target := b.PieceAt(to)
			if target.IsEmpty() {
				moves = append(moves, Move{From: from, To: to, Kind: Normal, Piece: piece})
				continue
			}
			if target.Color != side {
				moves = append(moves, Move{From: from, To: to, Kind: CaptureMove, Piece: piece, Captured: target})
			}
			break
		}
	}
	return moves
}

func kingMoves(b *Board, side Color, from Square, includeCastling bool) []Move {
	var moves []Move
	rank, file := from.Rank(), from.File()
	offsets := [8][2]int{{0, 1}, {0, -1}, {1, 0}, {-1, 0}, {1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	piece := Piece{Type: King, Color: side}
	for _, o := range offsets {
		nr, nf := rank+o[0], file+o[1]
		if !onBoard(nr, nf) {
			continue
		}
		to := Square(nr*8 + nf)
		target := b.PieceAt(to)
		if target.IsEmpty() {
			moves = append(moves, Move{From: from, To: to, Kind: Normal, Piece: piece})
		} else if target.Color != side {
			moves = append(moves, Move{From: from, To: to, Kind: CaptureMove, Piece: piece, Captured: target})
		}
	}

	if !includeCastling {
		return moves
	}

	expectedKingSquare := E1
	if side == Black {
		expectedKingSquare = E8
	}
	if from == expectedKingSquare {
		if canCastle(b, side, true) {
			m, _ := castlingHalfMove(b, side, true)
			moves = append(moves, m)
		}
		if canCastle(b, side, false) {
			m, _ := castlingHalfMove(b, side, false)
			moves = append(moves, m)
		}
	}

	return moves
}

// MakeMove applies move to b in place, assuming it is at least pseudo-legal
// for b.SideToMove. It does not flip SideToMove -- SimChess resolves a whole
// turn (both colors) before advancing, and the resolver/applier decide what
// "the next side to move" even means going into the following turn.
func (b *Board) MakeMove(move Move) {
	side := move.Piece.Color

	switch move.Kind {
	case Castling:
		b.executeCastling(move, side)
	case EnPassant:
		b.executeEnPassant(move, side)
	default:
		b.SetPiece(move.To, move.Piece)
		b.SetPiece(move.From, Piece{Type: Empty})
		if move.Kind == PromotionMove {
			b.SetPiece(move.To, Piece{Type: move.Promotion, Color: side})
		}
	}

	b.updateCastlingRights(move)
	b.updateEnPassant(move)
	b.updateHalfmoveClock(move)
}

func (b *Board) executeCastling(move Move, side Color) {
	b.SetPiece(move.To, move.Piece)
	b.SetPiece(move.From, Piece{Type: Empty})

	var rookFrom, rookTo Square
	if move.To.File() > move.From.File() {
		rookFrom, rookTo = H1, F1
		if side == Black {
			rookFrom, rookTo = H8, F8
		}
	} else {
		rookFrom, rookTo = A1, D1
		if side == Black {
			rookFrom, rookTo = A8, D8
		}
	}
	rook := b.PieceAt(rookFrom)
	b.SetPiece(rookTo, rook)
	b.SetPiece(rookFrom, Piece{Type: Empty})
}

func (b *Board) executeEnPassant(move Move, side Color) {
	b.SetPiece(move.To, move.Piece)
	b.SetPiece(move.From, Piece{Type: Empty})

	capSq := move.To - 8
	if side == Black {
		capSq = move.To + 8
	}
	b.SetPiece(capSq, Piece{Type: Empty})
}

func (b *Board) updateCastlingRights(move Move) {
	if move.Piece.Type == King {
		if move.Piece.Color == White {
			b.Castling.WhiteKingside = false
			b.Castling.WhiteQueenside = false
		} else {
			b.Castling.BlackKingside = false
			b.Castling.BlackQueenside = false
		}
	}

	clearForRookSquare := func(sq Square) {
		switch sq {
		case H1:
			b.Castling.WhiteKingside = false
		case A1:
			b.Castling.WhiteQueenside = false
		case H8:
			b.Castling.BlackKingside = false
		case A8:
			b.Castling.BlackQueenside = false
		}
	}
	if move.Piece.Type == Rook {
		clearForRookSquare(move.From)
	}
	if !move.Captured.IsEmpty() && move.Captured.Type == Rook {
		clearForRookSquare(move.To)
	}
}

func (b *Board) updateEnPassant(move Move) {
	b.EnPassant = NoSquare
	if move.Piece.Type == Pawn && abs(move.To.Rank()-move.From.Rank()) == 2 {
		b.EnPassant = Square((int(move.From) + int(move.To)) / 2)
	}
}

func (b *Board) updateHalfmoveClock(move Move) {
	if move.Piece.Type == Pawn || move.Kind == CaptureMove || move.Kind == EnPassant {
		b.HalfmoveClock = 0
	} else {
		b.HalfmoveClock++
	}
}

// KingSquare returns the square holding color's king, or NoSquare if it has
// been captured.
func (b *Board) KingSquare(color Color) Square {
	for sq := A1; sq <= H8; sq++ {
		p := b.PieceAt(sq)
		if p.Type == King && p.Color == color {
			return sq
		}
	}
	return NoSquare
}

// PieceCount returns the total number of non-empty squares on the board.
func (b *Board) PieceCount() int {
	n := 0
	for sq := A1; sq <= H8; sq++ {
		if !b.PieceAt(sq).IsEmpty() {
			n++
		}
	}
	return n
}
