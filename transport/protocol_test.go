package transport

import (
	"testing"

	"github.com/rumendamyanov/simchess/engine"
	"github.com/rumendamyanov/simchess/game"
)

func TestNewGameStateDTOOmitsWinnerWhenNone(t *testing.T) {
	snap := game.Snapshot{
		GameID:                "g1",
		FEN:                   "start",
		OneSidedIllegalCounts: map[game.Color]int{game.White: 1, game.Black: 0},
		ClockSeconds:          map[game.Color]int{game.White: 600, game.Black: 590},
		LastIllegalMoves:      map[game.Color]string{game.White: "a1a4", game.Black: ""},
	}

	dto := NewGameStateDTO(snap)
	if dto.Winner != "" {
		t.Errorf("Winner = %q, want empty when no winner is set", dto.Winner)
	}
	if dto.OneSidedIllegalCounts["white"] != 1 || dto.OneSidedIllegalCounts["black"] != 0 {
		t.Errorf("OneSidedIllegalCounts = %+v, want white=1 black=0", dto.OneSidedIllegalCounts)
	}
	if dto.ClockSeconds["white"] != 600 || dto.ClockSeconds["black"] != 590 {
		t.Errorf("ClockSeconds = %+v, want white=600 black=590", dto.ClockSeconds)
	}
	if dto.LastIllegalMoves["white"] != "a1a4" {
		t.Errorf("LastIllegalMoves[white] = %q, want a1a4", dto.LastIllegalMoves["white"])
	}
}

func TestNewGameStateDTOIncludesWinner(t *testing.T) {
	snap := game.Snapshot{
		GameID:                "g1",
		Winner:                game.Black,
		WinReason:             game.WinResignation,
		OneSidedIllegalCounts: map[game.Color]int{},
		ClockSeconds:          map[game.Color]int{},
		LastIllegalMoves:      map[game.Color]string{},
	}

	dto := NewGameStateDTO(snap)
	if dto.Winner != "black" {
		t.Errorf("Winner = %q, want black", dto.Winner)
	}
	if dto.WinReason != "resignation" {
		t.Errorf("WinReason = %q, want resignation", dto.WinReason)
	}
}

func TestNewTurnResultDTOValidMovesReflectReasons(t *testing.T) {
	r := &game.TurnResult{
		IllegalityType: game.IllegalityOneSided,
		WhiteReason:    "impossible knight move",
		BlackReason:    "",
	}

	dto := NewTurnResultDTO(r)
	if dto.ValidMoves["white"] {
		t.Error("ValidMoves[white] = true, want false: white had a reason")
	}
	if !dto.ValidMoves["black"] {
		t.Error("ValidMoves[black] = false, want true: black had no reason")
	}
	if dto.IllegalReason["white"] != "impossible knight move" {
		t.Errorf("IllegalReason[white] = %q", dto.IllegalReason["white"])
	}
}

func TestNewTurnResultDTOIncludesPenalty(t *testing.T) {
	r := &game.TurnResult{
		PenaltyApplied: &game.PenaltyApplied{Color: game.White, Seconds: 30},
	}
	dto := NewTurnResultDTO(r)
	if dto.PenaltyApplied == nil {
		t.Fatal("PenaltyApplied = nil, want populated")
	}
	if dto.PenaltyApplied.Color != "white" || dto.PenaltyApplied.Seconds != 30 {
		t.Errorf("PenaltyApplied = %+v, want white/30", dto.PenaltyApplied)
	}
}

func TestNewTurnResultDTOIncludesIntendedMovesOnlyWhenComplete(t *testing.T) {
	complete := &game.TurnResult{
		TurnComplete:     true,
		IntendedWhiteSAN: "e4",
		IntendedBlackSAN: "d5",
	}
	dto := NewTurnResultDTO(complete)
	if dto.IntendedMoves["white"] != "e4" || dto.IntendedMoves["black"] != "d5" {
		t.Errorf("IntendedMoves = %+v, want e4/d5", dto.IntendedMoves)
	}

	rejected := &game.TurnResult{TurnComplete: false}
	dto = NewTurnResultDTO(rejected)
	if dto.IntendedMoves != nil {
		t.Errorf("IntendedMoves = %+v, want nil for a rejected turn", dto.IntendedMoves)
	}
}

func TestParseColor(t *testing.T) {
	cases := []struct {
		in   string
		want engine.Color
		ok   bool
	}{
		{"white", engine.White, true},
		{"black", engine.Black, true},
		{"purple", engine.None, false},
		{"", engine.None, false},
	}
	for _, c := range cases {
		got, ok := parseColor(c.in)
		if got != c.want || ok != c.ok {
			t.Errorf("parseColor(%q) = (%v, %v), want (%v, %v)", c.in, got, ok, c.want, c.ok)
		}
	}
}
