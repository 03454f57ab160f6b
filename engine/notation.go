package engine

import "strings"

// SAN renders move in Standard Algebraic Notation relative to board (the
// position before move is applied). Unlike over-the-board SAN, it never
// appends '+' or '#': SimChess has no single notion of "in check" once both
// sides move simultaneously and king-safety is not enforced, so a trailing
// check/mate annotation would not mean what a reader expects.
func SAN(board *Board, move Move) string {
	piece := board.PieceAt(move.From)

	if move.Kind == Castling {
		if move.To.File() > move.From.File() {
			return "O-O"
		}
		return "O-O-O"
	}

	target := board.PieceAt(move.To)
	isCapture := (!target.IsEmpty() && target.Color != piece.Color) || move.Kind == EnPassant

	var sb strings.Builder

	if piece.Type == Pawn {
		if isCapture {
			sb.WriteByte(byte('a' + move.From.File()))
			sb.WriteByte('x')
		}
		sb.WriteString(move.To.String())
		writePromotion(&sb, move.Promotion)
		return sb.String()
	}

	sb.WriteString(pieceLetter(piece.Type))

	needFile, needRank := disambiguate(board, piece, move)
	if needFile {
		sb.WriteByte(byte('a' + move.From.File()))
	}
	if needRank {
		sb.WriteByte(byte('1' + move.From.Rank()))
	}
	if isCapture {
		sb.WriteByte('x')
	}
	sb.WriteString(move.To.String())
	writePromotion(&sb, move.Promotion)

	return sb.String()
}

func pieceLetter(pt PieceType) string {
	switch pt {
	case Knight:
		return "N"
	case Bishop:
		return "B"
	case Rook:
		return "R"
	case Queen:
		return "Q"
	case King:
		return "K"
	default:
		return "?"
	}
}

func writePromotion(sb *strings.Builder, pt PieceType) {
	if pt == Empty {
		return
	}
	sb.WriteByte('=')
	sb.WriteString(pieceLetter(pt))
}

// disambiguate decides whether a piece move needs its file and/or rank
// written out because another like piece could pseudo-legally reach the
// same target square. Per FIDE convention: share a file -> add rank; else
// share a rank -> add file; else (neither) -> add file.
func disambiguate(board *Board, piece Piece, move Move) (needFile, needRank bool) {
	if piece.Type == Pawn || piece.Type == King {
		return false, false
	}

	for sq := A1; sq <= H8; sq++ {
		if sq == move.From {
			continue
		}
		p := board.PieceAt(sq)
		if p.IsEmpty() || p.Color != piece.Color || p.Type != piece.Type {
			continue
		}
		for _, cand := range pseudoLegalMovesFrom(board, piece.Color, sq, p, true) {
			if cand.To != move.To {
				continue
			}
			switch {
			case sq.File() == move.From.File():
				needRank = true
			default:
				needFile = true
			}
		}
	}
	return
}
