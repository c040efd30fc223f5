package game

import (
	"sync"

	"github.com/google/uuid"
)

// DefaultManaRegen is the mana granted to every living piece of the side
// coming to move at the start of its turn.
const DefaultManaRegen = 10

// Opponent chooses moves for a non-human side. The AI controller in
// internal/ai implements it; the session feeds it board snapshots and
// applies whatever it returns through the same legality checks the human
// path uses.
type Opponent interface {
	Team() Team
	ChooseMove(*Board) (from, to Position, ok bool)
}

type pendingCast struct {
	pieceID   string
	abilityID string
}

// Session owns one game's full state: board, turn, phase, selection,
// history and the optional AI controller. It is explicitly constructed and
// passed by reference; nothing here is process-global, so any number of
// sessions can run side by side.
type Session struct {
	mu          sync.Mutex
	id          string
	board       *Board
	turn        Team
	phase       GamePhase
	mode        GameMode
	winner      *Team
	draw        bool
	turnCount   int
	manaRegen   int
	selected    *Position
	highlighted []Position
	pending     *pendingCast
	history     []Move
	listeners   []Listener
	ai          Opponent
	aiThinking  bool
}

// NewSession creates a session in the menu phase with a freshly set up
// board.
func NewSession() *Session {
	return &Session{
		id:        uuid.NewString(),
		board:     NewStandardBoard(),
		turn:      White,
		phase:     PhaseMenu,
		turnCount: 1,
		manaRegen: DefaultManaRegen,
	}
}

// NewSessionFromBoard creates a playing session over a prepared board with
// the given side to move. Scenario setup for tests and puzzles.
func NewSessionFromBoard(b *Board, turn Team) *Session {
	return &Session{
		id:        uuid.NewString(),
		board:     b,
		turn:      turn,
		phase:     PhasePlaying,
		turnCount: 1,
		manaRegen: DefaultManaRegen,
	}
}

// Subscribe registers an event listener. Events are delivered synchronously
// in emission order; listeners must not call back into the session.
func (s *Session) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// SetAI installs an opponent controller for its team.
func (s *Session) SetAI(op Opponent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ai = op
}

// SetManaRegen overrides the per-turn mana regeneration.
func (s *Session) SetManaRegen(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n >= 0 {
		s.manaRegen = n
	}
}

// StartGame leaves the menu and begins play.
func (s *Session) StartGame(mode GameMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = mode
	s.resetLocked()
}

// Reset rebuilds the board and returns to the start of a new game.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
}

func (s *Session) resetLocked() {
	s.board = NewStandardBoard()
	s.turn = White
	s.phase = PhasePlaying
	s.winner = nil
	s.draw = false
	s.turnCount = 1
	s.selected = nil
	s.highlighted = nil
	s.pending = nil
	s.history = nil
}

// Pause suspends play; Resume undoes it. Both are no-ops outside their
// source phase.
func (s *Session) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == PhasePlaying {
		s.phase = PhasePaused
	}
}

func (s *Session) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == PhasePaused {
		s.phase = PhasePlaying
	}
}

// SelectPiece sets the selection to the active team's piece at pos and
// highlights its legal moves. Anything else clears the selection.
func (s *Session) SelectPiece(pos Position) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhasePlaying {
		return
	}
	pc := s.board.At(pos)
	if pc == nil || !pc.Alive || pc.Team != s.turn {
		s.selected = nil
		s.highlighted = nil
		return
	}
	p := pos
	s.selected = &p
	s.highlighted = LegalMoves(pc, s.board)
}

// MovePiece validates and executes a move for the active team. Illegal
// requests are silently rejected and leave all state unchanged. A
// successful move always advances the turn unless it ended the game.
func (s *Session) MovePiece(from, to Position) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.movePieceLocked(from, to)
}

func (s *Session) movePieceLocked(from, to Position) bool {
	if s.phase != PhasePlaying {
		return false
	}
	pc := s.board.At(from)
	if pc == nil || pc.Team != s.turn {
		return false
	}
	if !IsMoveValid(s.board, from, to) {
		return false
	}

	out := ApplyMove(s.board, from, to)
	s.history = append(s.history, out.Record)
	s.selected = nil
	s.highlighted = nil

	s.emit(Event{Type: EventMove, Team: pc.Team, From: &from, To: &to})
	if out.Captured {
		s.emit(Event{Type: EventCapture, Team: pc.Team, From: &from, To: &to})
	}

	enemy := pc.Team.Opponent()
	switch {
	case IsCheckmate(s.board, enemy):
		winner := pc.Team
		s.winner = &winner
		s.phase = PhaseGameOver
		s.emit(Event{Type: EventCheckmate, Team: enemy})
	case IsStalemate(s.board, enemy):
		// The side to move has no legal reply and is not in check. The
		// original engine computed this but never ended the game on it; we
		// resolve the gap as a draw.
		s.draw = true
		s.phase = PhaseGameOver
		s.emit(Event{Type: EventStalemate, Team: enemy})
	default:
		if IsKingInCheck(s.board, enemy) {
			s.emit(Event{Type: EventCheck, Team: enemy})
		}
		s.advanceTurnLocked()
	}
	return true
}

// AbilityOutcome is UseAbility's result. NeedsTarget marks the two-phase
// targeting handshake, not a failure: no resources were consumed and the
// session is waiting in the ability-targeting phase.
type AbilityOutcome struct {
	Success     bool       `json:"success"`
	Reason      string     `json:"reason,omitempty"`
	NeedsTarget bool       `json:"needsTarget,omitempty"`
	Targets     []Position `json:"targets,omitempty"`
	Messages    []string   `json:"messages,omitempty"`
}

// UseAbility activates a piece's ability. Called without a target on a
// non-self ability it transitions to the targeting phase and reports the
// valid squares; called with one it resolves the cast atomically.
func (s *Session) UseAbility(pieceID, abilityID string, target *Position) AbilityOutcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhasePlaying && s.phase != PhaseAbilityTargeting {
		return AbilityOutcome{Reason: "not playing"}
	}
	// While a cast is pending only that cast may proceed; anything else has
	// to cancel targeting first.
	if s.phase == PhaseAbilityTargeting &&
		(s.pending == nil || s.pending.pieceID != pieceID || s.pending.abilityID != abilityID) {
		return AbilityOutcome{Reason: "another cast is awaiting a target"}
	}
	caster := s.board.FindPiece(pieceID)
	if caster == nil {
		return AbilityOutcome{Reason: "piece not found"}
	}
	if caster.Team != s.turn {
		return AbilityOutcome{Reason: "not your turn"}
	}
	inst := caster.AbilityByID(abilityID)
	if inst == nil {
		return AbilityOutcome{Reason: "ability not found"}
	}
	if check := CanUse(caster, inst); !check.Allowed {
		return AbilityOutcome{Reason: check.Reason}
	}

	if target == nil {
		if inst.Def.Target == TargetSelf {
			pos := caster.Position
			target = &pos
		} else {
			s.phase = PhaseAbilityTargeting
			s.pending = &pendingCast{pieceID: pieceID, abilityID: abilityID}
			s.highlighted = ValidTargets(caster, inst.Def, s.board)
			return AbilityOutcome{NeedsTarget: true, Targets: s.highlighted}
		}
	}

	res := ExecuteAbility(s.board, pieceID, abilityID, *target)
	if !res.Success {
		return AbilityOutcome{Reason: res.Reason}
	}

	s.board = res.Board
	s.phase = PhasePlaying
	s.pending = nil
	s.highlighted = nil

	origin := caster.Position
	s.emit(Event{
		Type:     EventAbility,
		Team:     caster.Team,
		From:     &origin,
		To:       target,
		Effect:   castTag(inst.Def),
		Duration: castDuration(inst.Def),
	})
	return AbilityOutcome{Success: true, Messages: res.Messages}
}

// CancelTargeting abandons a pending two-phase cast.
func (s *Session) CancelTargeting() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == PhaseAbilityTargeting {
		s.phase = PhasePlaying
		s.pending = nil
		s.highlighted = nil
	}
}

// castTag picks the effect tag collaborators key their cues off.
func castTag(ab *Ability) string {
	if len(ab.Effects) == 0 {
		return ""
	}
	return ab.Effects[0].Tag()
}

// castDuration surfaces a status duration as the event's hint, if the cast
// carries one.
func castDuration(ab *Ability) int {
	for _, eff := range ab.Effects {
		switch e := eff.(type) {
		case BuffEffect:
			return e.Status.Duration
		case DebuffEffect:
			return e.Status.Duration
		}
	}
	return 0
}

// EndTurn hands play to the other side without moving.
func (s *Session) EndTurn() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhasePlaying {
		return
	}
	s.advanceTurnLocked()
}

// advanceTurnLocked flips the active team and runs its turn-start upkeep:
// mana regeneration (clamped to max), temporary-HP expiry, status-effect
// ticks and cooldown recovery.
func (s *Session) advanceTurnLocked() {
	s.turn = s.turn.Opponent()
	s.turnCount++

	for _, pc := range s.board.Pieces(s.turn) {
		pc.Stats.CurrentMana += s.manaRegen
		pc.Stats.Clamp()
		tickTemporaryHP(pc)
		tickCooldowns(pc)
		for _, msg := range ProcessStatusEffects(pc) {
			pos := pc.Position
			s.emit(Event{Type: EventStatus, Team: pc.Team, From: &pos, Message: msg})
		}
		if !pc.Alive {
			s.board.Remove(pc.Position)
		}
	}

	s.emit(Event{Type: EventTurn, Team: s.turn})
}

// PlayAITurn runs the installed opponent for one move if it is its turn.
// Only one search may be in flight per session; requests arriving while
// one is running are ignored. Returns whether a move was applied.
func (s *Session) PlayAITurn() bool {
	s.mu.Lock()
	if s.ai == nil || s.phase != PhasePlaying || s.turn != s.ai.Team() || s.aiThinking {
		s.mu.Unlock()
		return false
	}
	s.aiThinking = true
	snapshot := s.board.Clone()
	ai := s.ai
	s.mu.Unlock()

	from, to, ok := ai.ChooseMove(snapshot)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.aiThinking = false
	if !ok {
		// No legal moves: the position is already terminal or the search
		// gave up. Either way the session must not crash.
		return false
	}
	return s.movePieceLocked(from, to)
}

// AITurn reports whether the installed opponent is due to move.
func (s *Session) AITurn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ai != nil && s.phase == PhasePlaying && s.turn == s.ai.Team() && !s.aiThinking
}

func (s *Session) emit(ev Event) {
	for _, l := range s.listeners {
		l(ev)
	}
}

// --- Queries ---

func (s *Session) ID() string {
	return s.id
}

// Board returns a deep snapshot; callers may inspect it freely without
// racing the session.
func (s *Session) Board() *Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.Clone()
}

func (s *Session) Turn() Team {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.turn
}

func (s *Session) Phase() GamePhase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

func (s *Session) Mode() GameMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Winner returns the winning team once checkmate has been asserted.
func (s *Session) Winner() (Team, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.winner == nil {
		return White, false
	}
	return *s.winner, true
}

// Draw reports a stalemate finish.
func (s *Session) Draw() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draw
}

func (s *Session) TurnCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.turnCount
}

func (s *Session) Selected() (Position, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == nil {
		return Position{}, false
	}
	return *s.selected, true
}

func (s *Session) Highlighted() []Position {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Position(nil), s.highlighted...)
}

func (s *Session) History() []Move {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Move(nil), s.history...)
}
