package main

import (
	"errors"
	"log/slog"

	"github.com/talgya/hexedit/internal/action"
	"github.com/talgya/hexedit/internal/editor"
	"github.com/talgya/hexedit/internal/world"
)

type intent struct {
	frame uint64
	name  string
	do    func() error
}

// script replays a fixed list of user intents at given frames.
type script struct {
	intents []intent
	next    int
	blocked int
}

func newScript(ed *editor.Editor, ledger *action.MemoryLedger) *script {
	at := func(q, r int) world.AxialCoord { return world.AxialCoord{Q: q, R: r} }
	firstPiece := func() world.Occupant {
		if pieces := ledger.Layout().Pieces(); len(pieces) > 0 {
			return pieces[0]
		}
		return nil
	}

	return &script{intents: []intent{
		{10, "cycle symmetry", func() error { ed.CycleSymmetry(); return nil }},
		{20, "place", func() error { return ed.Place(at(3, -1)) }},
		{30, "rotate", func() error { ed.RotateClockwise(); return nil }},
		{40, "place", func() error { return ed.Place(at(2, 2)) }},
		{50, "start move", func() error {
			p := firstPiece()
			if p == nil {
				return action.Blocked(action.NothingToMove, "empty layout")
			}
			return ed.StartMove(p)
		}},
		{60, "place during move", func() error { return ed.Place(at(-3, 3)) }},
		{70, "confirm move", func() error {
			_, err := ed.ConfirmMoveTarget(at(0, -4))
			return err
		}},
		{80, "cancel move", func() error { ed.CancelMove(); return nil }},
		{90, "cycle symmetry", func() error { ed.CycleSymmetry(); ed.CycleSymmetry(); return nil }},
		{100, "remove", func() error { return ed.Remove(at(3, -1)) }},
		{110, "undo", ledger.Undo},
		{120, "redo", ledger.Redo},
	}}
}

func (s *script) run(frame uint64) {
	for s.next < len(s.intents) && s.intents[s.next].frame <= frame {
		in := s.intents[s.next]
		s.next++

		err := in.do()
		switch {
		case err == nil:
			slog.Info("intent applied", "frame", frame, "intent", in.name)
		case errors.Is(err, action.ErrBlocked):
			s.blocked++
			slog.Info("intent blocked", "frame", frame, "intent", in.name, "reason", err.Error())
		default:
			slog.Warn("intent failed", "frame", frame, "intent", in.name, "error", err)
		}
	}
}
