// Package transport adapts the SimChess game/registry layer to the wire:
// a small set of inbound/outbound JSON events carried over a WebSocket
// connection, plus a handful of ambient REST endpoints (create game,
// health, metrics). None of the rules live here -- this package only
// encodes and routes.
package transport

import (
	"github.com/rumendamyanov/simchess/engine"
	"github.com/rumendamyanov/simchess/game"
)

// Event type names used on the wire, matching both directions of the
// protocol.
const (
	EventJoin           = "join"
	EventSubmitMove     = "submit_move"
	EventJoined         = "joined"
	EventPlayerJoined   = "player_joined"
	EventMoveSubmitted  = "move_submitted"
	EventMovesProcessed = "moves_processed"
	EventError          = "error"
)

// InboundEnvelope is the shape every inbound client message is decoded into
// first, before dispatching on Type.
type InboundEnvelope struct {
	Type   string `json:"type"`
	GameID string `json:"game_id"`
	Color  string `json:"color,omitempty"`
	Move   string `json:"move,omitempty"`
}

// OutboundEvent is the shape every message sent to a client takes: a type
// tag plus a payload specific to that type.
type OutboundEvent struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// GameStateDTO is the wire representation of game.Snapshot.
type GameStateDTO struct {
	GameID                string         `json:"game_id"`
	FEN                   string         `json:"fen"`
	TurnNumber            int            `json:"turn_number"`
	IllegalAttempt        int            `json:"illegal_attempt"`
	WhiteReady            bool           `json:"white_ready"`
	BlackReady            bool           `json:"black_ready"`
	GameOver              bool           `json:"game_over"`
	Winner                string         `json:"winner,omitempty"`
	WinReason             string         `json:"win_reason,omitempty"`
	DrawReason            string         `json:"draw_reason,omitempty"`
	MutualIllegalCount    int            `json:"mutual_illegal_count"`
	OneSidedIllegalCounts map[string]int `json:"one_sided_illegal_counts"`
	OneSidedThreshold     int            `json:"one_sided_threshold"`
	PenaltySeconds        int            `json:"penalty_seconds"`
	ClockSeconds          map[string]int `json:"clock_seconds"`
	LastIllegalMoves      map[string]string `json:"last_illegal_moves"`
}

// NewGameStateDTO converts a game.Snapshot into its wire shape.
func NewGameStateDTO(s game.Snapshot) GameStateDTO {
	winner := ""
	if s.Winner != engine.None {
		winner = s.Winner.String()
	}
	return GameStateDTO{
		GameID:             s.GameID,
		FEN:                s.FEN,
		TurnNumber:         s.TurnNumber,
		IllegalAttempt:     s.IllegalAttempt,
		WhiteReady:         s.WhiteReady,
		BlackReady:         s.BlackReady,
		GameOver:           s.GameOver,
		Winner:             winner,
		WinReason:          string(s.WinReason),
		DrawReason:         string(s.DrawReason),
		MutualIllegalCount: s.MutualIllegalCount,
		OneSidedIllegalCounts: map[string]int{
			"white": s.OneSidedIllegalCounts[engine.White],
			"black": s.OneSidedIllegalCounts[engine.Black],
		},
		OneSidedThreshold: s.OneSidedThreshold,
		PenaltySeconds:    s.PenaltySeconds,
		ClockSeconds: map[string]int{
			"white": s.ClockSeconds[engine.White],
			"black": s.ClockSeconds[engine.Black],
		},
		LastIllegalMoves: map[string]string{
			"white": s.LastIllegalMoves[engine.White],
			"black": s.LastIllegalMoves[engine.Black],
		},
	}
}

// TurnResultDTO is the wire representation of game.TurnResult.
type TurnResultDTO struct {
	TurnComplete   bool           `json:"turn_complete"`
	IllegalityType string         `json:"illegality_type,omitempty"`
	IllegalAttempt int            `json:"illegal_attempt,omitempty"`
	ValidMoves     map[string]bool `json:"valid_moves"`
	IllegalReason  map[string]string `json:"illegal_reason"`
	PenaltyApplied *PenaltyAppliedDTO `json:"penalty_applied,omitempty"`
	GameOver       bool           `json:"game_over,omitempty"`
	Winner         string         `json:"winner,omitempty"`
	WinReason      string         `json:"win_reason,omitempty"`
	DrawReason     string         `json:"draw_reason,omitempty"`
	IntendedMoves  map[string]string `json:"intended_moves,omitempty"`
}

// PenaltyAppliedDTO is the wire representation of game.PenaltyApplied.
type PenaltyAppliedDTO struct {
	Color   string `json:"color"`
	Seconds int    `json:"seconds"`
}

// NewTurnResultDTO converts a game.TurnResult into its wire shape.
func NewTurnResultDTO(r *game.TurnResult) TurnResultDTO {
	dto := TurnResultDTO{
		TurnComplete:   r.TurnComplete,
		IllegalityType: string(r.IllegalityType),
		IllegalAttempt: r.IllegalAttempt,
		ValidMoves: map[string]bool{
			"white": r.WhiteReason == "",
			"black": r.BlackReason == "",
		},
		IllegalReason: map[string]string{
			"white": r.WhiteReason,
			"black": r.BlackReason,
		},
		GameOver:   r.GameOver,
		WinReason:  string(r.WinReason),
		DrawReason: string(r.DrawReason),
	}

	if r.Winner != engine.None {
		dto.Winner = r.Winner.String()
	}

	if r.PenaltyApplied != nil {
		dto.PenaltyApplied = &PenaltyAppliedDTO{
			Color:   r.PenaltyApplied.Color.String(),
			Seconds: r.PenaltyApplied.Seconds,
		}
	}

	if r.TurnComplete && (r.IntendedWhiteSAN != "" || r.IntendedBlackSAN != "") {
		dto.IntendedMoves = map[string]string{
			"white": r.IntendedWhiteSAN,
			"black": r.IntendedBlackSAN,
		}
	}

	return dto
}

func parseColor(s string) (engine.Color, bool) {
	switch s {
	case "white":
		return engine.White, true
	case "black":
		return engine.Black, true
	default:
		return engine.None, false
	}
}
