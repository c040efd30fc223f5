package game

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Team is one of the two opposing sides.
type Team uint8

const (
	White Team = iota
	Black
)

func (t Team) Opponent() Team {
	if t == White {
		return Black
	}
	return White
}

func (t Team) String() string {
	if t == White {
		return "white"
	}
	return "black"
}

// Teams cross the JSON boundary by name.
func (t Team) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *Team) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "white":
		*t = White
	case "black":
		*t = Black
	default:
		return fmt.Errorf("unknown team %q", s)
	}
	return nil
}

type PieceType uint8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
)

func (p PieceType) String() string {
	switch p {
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
		return fmt.Sprintf("piece(%d)", uint8(p))
	}
}

func (p PieceType) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *PieceType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	for _, pt := range []PieceType{Pawn, Knight, Bishop, Rook, Queen, King} {
		if pt.String() == s {
			*p = pt
			return nil
		}
	}
	return fmt.Errorf("unknown piece type %q", s)
}

// Position is a square on the 8x8 board. X is the file (0 = a-file),
// Y is the row with Black's back rank at 0 and White's at 7.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Position) InBounds() bool {
	return p.X >= 0 && p.X < BoardSize && p.Y >= 0 && p.Y < BoardSize
}

// Chebyshev is the king-move distance between two squares. Ability ranges
// and area-of-effect radii are measured with it.
func (p Position) Chebyshev(o Position) int {
	dx := p.X - o.X
	if dx < 0 {
		dx = -dx
	}
	dy := p.Y - o.Y
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx
	}
	return dy
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// PieceStats is the RPG resource bundle attached to every piece.
// CurrentHP and CurrentMana may transiently go out of range inside effect
// resolution but are clamped before anything outside observes them.
type PieceStats struct {
	MaxHP          int     `json:"maxHp"`
	CurrentHP      int     `json:"currentHp"`
	MaxMana        int     `json:"maxMana"`
	CurrentMana    int     `json:"currentMana"`
	AttackPower    int     `json:"attackPower"`
	Defense        int     `json:"defense"`
	Speed          int     `json:"speed"`
	MagicPower     int     `json:"magicPower"`
	CriticalChance float64 `json:"criticalChance"`
	CriticalDamage float64 `json:"criticalDamage"`
	TempHP         int     `json:"tempHp,omitempty"`
	TempHPTurns    int     `json:"tempHpTurns,omitempty"`
}

// TakeDamage applies damage to the piece, consuming the temporary-HP
// shield before real hp.
func (s *PieceStats) TakeDamage(dmg int) {
	if s.TempHP > 0 {
		if s.TempHP >= dmg {
			s.TempHP -= dmg
			return
		}
		dmg -= s.TempHP
		s.TempHP = 0
	}
	s.CurrentHP -= dmg
}

// Clamp pins hp and mana back into their legal ranges.
func (s *PieceStats) Clamp() {
	if s.CurrentHP > s.MaxHP {
		s.CurrentHP = s.MaxHP
	}
	if s.CurrentHP < 0 {
		s.CurrentHP = 0
	}
	if s.CurrentMana > s.MaxMana {
		s.CurrentMana = s.MaxMana
	}
	if s.CurrentMana < 0 {
		s.CurrentMana = 0
	}
}

// EquipSlot identifies an equipment slot on a piece.
type EquipSlot string

const (
	SlotWeapon  EquipSlot = "weapon"
	SlotArmor   EquipSlot = "armor"
	SlotTrinket EquipSlot = "trinket"
)

// Piece is a single unit on the board. While alive it is owned by exactly
// one board cell; once Alive is false it survives only as a snapshot inside
// move records.
type Piece struct {
	ID         string               `json:"id"`
	Type       PieceType            `json:"type"`
	Team       Team                 `json:"team"`
	Position   Position             `json:"position"`
	Stats      PieceStats           `json:"stats"`
	HasMoved   bool                 `json:"hasMoved"`
	Alive      bool                 `json:"alive"`
	Level      int                  `json:"level"`
	Experience int                  `json:"experience"`
	Abilities  []*AbilityInstance   `json:"abilities"`
	Statuses   []StatusEffect       `json:"statuses"`
	Equipment  map[EquipSlot]string `json:"equipment,omitempty"`
}

// NewPiece creates a piece of the given type with its base stats and
// ability kit. Scenario and puzzle setup builds boards out of these.
func NewPiece(pt PieceType, team Team, pos Position) *Piece {
	return &Piece{
		ID:        uuid.NewString(),
		Type:      pt,
		Team:      team,
		Position:  pos,
		Stats:     baseStats(pt),
		Alive:     true,
		Level:     1,
		Abilities: abilitiesFor(pt),
	}
}

// Clone deep-copies the piece, including ability cooldowns and statuses.
func (p *Piece) Clone() *Piece {
	cp := *p
	cp.Abilities = make([]*AbilityInstance, len(p.Abilities))
	for i, ab := range p.Abilities {
		inst := *ab
		cp.Abilities[i] = &inst
	}
	cp.Statuses = append([]StatusEffect(nil), p.Statuses...)
	if p.Equipment != nil {
		cp.Equipment = make(map[EquipSlot]string, len(p.Equipment))
		for k, v := range p.Equipment {
			cp.Equipment[k] = v
		}
	}
	return &cp
}

// AbilityByID returns the piece's instance of the given ability, or nil.
func (p *Piece) AbilityByID(id string) *AbilityInstance {
	for _, ab := range p.Abilities {
		if ab.Def.ID == id {
			return ab
		}
	}
	return nil
}

// AddStatus appends a status effect. Non-stackable effects replace any
// existing instance with the same id.
func (p *Piece) AddStatus(s StatusEffect) {
	if !s.Stackable {
		kept := p.Statuses[:0]
		for _, existing := range p.Statuses {
			if existing.ID != s.ID {
				kept = append(kept, existing)
			}
		}
		p.Statuses = kept
	}
	p.Statuses = append(p.Statuses, s)
}

// Move is an immutable log entry describing one executed move. The piece
// and captured fields are snapshots taken before the move applied.
type Move struct {
	From      Position  `json:"from"`
	To        Position  `json:"to"`
	Piece     *Piece    `json:"piece"`
	Captured  *Piece    `json:"captured,omitempty"`
	Damage    int       `json:"damage,omitempty"`
	Castle    bool      `json:"castle,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// GamePhase is the orchestrator's top-level state.
type GamePhase string

const (
	PhaseMenu             GamePhase = "menu"
	PhasePlaying          GamePhase = "playing"
	PhasePaused           GamePhase = "paused"
	PhaseAbilityTargeting GamePhase = "ability_targeting"
	PhaseGameOver         GamePhase = "game_over"
)

// GameMode selects who controls the Black side.
type GameMode string

const (
	ModeHumanVsHuman GameMode = "pvp"
	ModeHumanVsAI    GameMode = "pve"
)
