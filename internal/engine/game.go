package engine

import (
	"errors"
	"fmt"

	"github.com/go-logr/logr"

	"github.com/DecklynKern/chess/internal/board"
)

// ErrGameOver is returned when a move is requested in a finished game.
var ErrGameOver = errors.New("game over")

// Termination is the reason a game ended.
type Termination int

const (
	Ongoing Termination = iota
	Checkmate
	Stalemate
	InsufficientMaterial
	MoveLimit
)

// String returns the termination name.
func (t Termination) String() string {
	switch t {
	case Ongoing:
		return "ongoing"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case InsufficientMaterial:
		return "insufficient material"
	case MoveLimit:
		return "move limit"
	default:
		return fmt.Sprintf("Termination(%d)", int(t))
	}
}

// GameResult summarises a finished game.
type GameResult struct {
	Termination Termination
	// Winner is meaningful only for Checkmate.
	Winner board.Colour
	Plies  int
	FEN    string
}

// Score returns the PGN-style result string.
func (r GameResult) Score() string {
	switch r.Termination {
	case Checkmate:
		if r.Winner == board.White {
			return "1-0"
		}
		return "0-1"
	case Stalemate, InsufficientMaterial:
		return "1/2-1/2"
	}
	return "*"
}

// Game plays two engines against each other on a shared board. Each side
// searches with its own strategy, evaluation and tables.
type Game struct {
	board   *board.Board
	root    *board.Board
	players [2]*Engine
	log     logr.Logger

	// Limits is used for every move when set; otherwise each engine searches
	// with its difficulty preset.
	Limits SearchLimits
	// MaxPlies ends the game with MoveLimit after this many moves; 0 means no limit.
	MaxPlies int
	// OnMove is called after every move with the SAN of the move played.
	OnMove func(ply int, m board.Move, san string)
}

// NewGame starts a game from fen, or the start position when fen is empty.
// Both engines are pointed at the game's board.
func NewGame(white, black *Engine, fen string) (*Game, error) {
	b := board.NewBoard()
	if fen != "" {
		var err error
		if b, err = board.ParseFEN(fen); err != nil {
			return nil, err
		}
	}

	g := &Game{
		board:   b,
		root:    b.Copy(),
		players: [2]*Engine{white, black},
		log:     white.log.WithName("game"),
	}
	white.board = b
	black.board = b
	return g, nil
}

// Board returns the game's board.
func (g *Game) Board() *board.Board {
	return g.board
}

// Status reports whether the game is over and why. Repetition and the
// fifty-move rule are not detected.
func (g *Game) Status() Termination {
	b := g.board
	switch {
	case !b.HasLegalMoves():
		if b.IsCheckmate() {
			return Checkmate
		}
		return Stalemate
	case b.IsInsufficientMaterial():
		return InsufficientMaterial
	case g.MaxPlies > 0 && b.Ply() >= g.MaxPlies:
		return MoveLimit
	}
	return Ongoing
}

// PlaySAN plays a move given in SAN for whichever side is to move.
func (g *Game) PlaySAN(s string) error {
	if g.Status() != Ongoing {
		return ErrGameOver
	}
	m, err := board.ParseSAN(g.board, s)
	if err != nil {
		return err
	}
	g.apply(m)
	return nil
}

// Step lets the engine of the side to move search and play one move.
func (g *Game) Step() (board.Move, error) {
	if g.Status() != Ongoing {
		return board.NoMove, ErrGameOver
	}

	eng := g.players[g.board.SideToMove()]
	var res Result
	if g.Limits == (SearchLimits{}) {
		res = eng.Think()
	} else {
		res = eng.Search(g.Limits)
	}
	if !res.Found {
		return board.NoMove, ErrNoMove
	}

	g.apply(res.Move)
	return res.Move, nil
}

func (g *Game) apply(m board.Move) {
	san := board.SAN(g.board, m)
	g.board.Apply(m)
	g.log.V(1).Info("move played", "ply", g.board.Ply(), "move", san)
	if g.OnMove != nil {
		g.OnMove(g.board.Ply(), m, san)
	}
}

// Undo takes back the last move. It returns false at the start of the game.
func (g *Game) Undo() bool {
	if g.board.Ply() == 0 {
		return false
	}
	g.board.Undo()
	return true
}

// Play steps until the game ends.
func (g *Game) Play() (GameResult, error) {
	for g.Status() == Ongoing {
		if _, err := g.Step(); err != nil {
			return g.result(), err
		}
	}
	res := g.result()
	g.log.Info("game over", "result", res.Score(), "termination", res.Termination, "plies", res.Plies)
	return res, nil
}

func (g *Game) result() GameResult {
	res := GameResult{
		Termination: g.Status(),
		Plies:       g.board.Ply(),
		FEN:         g.board.FEN(),
	}
	if res.Termination == Checkmate {
		res.Winner = g.board.SideToMove().Other()
	}
	return res
}

// SAN returns the moves played so far in SAN.
func (g *Game) SAN() []string {
	return board.MovesToSAN(g.root.Copy(), g.board.History())
}
