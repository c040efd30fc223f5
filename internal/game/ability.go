package game

import "fmt"

// TargetType constrains which squares an ability may be aimed at.
type TargetType uint8

const (
	TargetSelf TargetType = iota
	TargetAlly
	TargetEnemy
	TargetEmptySquare
	TargetAnySquare
	TargetAreaOfEffect
)

func (t TargetType) String() string {
	switch t {
	case TargetSelf:
		return "self"
	case TargetAlly:
		return "ally"
	case TargetEnemy:
		return "enemy"
	case TargetEmptySquare:
		return "empty"
	case TargetAnySquare:
		return "any"
	case TargetAreaOfEffect:
		return "area"
	default:
		return "?"
	}
}

// Effect is the tagged union of things an ability can do. Each variant
// carries only the fields it needs.
type Effect interface {
	Tag() string
}

// DamageEffect deals Value damage (reduced by defense, minimum 1) to enemy
// occupants. Radius > 0 turns it into an area effect around the target.
type DamageEffect struct {
	Value  int
	Radius int
}

func (DamageEffect) Tag() string { return "damage" }

// HealEffect restores Value hp (clamped to max) to ally occupants.
type HealEffect struct {
	Value  int
	Radius int
}

func (HealEffect) Tag() string { return "heal" }

// BuffEffect attaches a status effect to ally occupants.
type BuffEffect struct {
	Status StatusEffect
	Radius int
}

func (BuffEffect) Tag() string { return "buff" }

// DebuffEffect attaches a status effect to enemy occupants.
type DebuffEffect struct {
	Status StatusEffect
	Radius int
}

func (DebuffEffect) Tag() string { return "debuff" }

// TempHPEffect grants the ally occupant a temporary hp shield for a number
// of turns.
type TempHPEffect struct {
	Value  int
	Turns  int
	Radius int
}

func (TempHPEffect) Tag() string { return "temp_hp" }

// TeleportEffect relocates the caster to the target square.
type TeleportEffect struct{}

func (TeleportEffect) Tag() string { return "teleport" }

// Ability is a static definition. Cooldown state never lives here; it is
// tracked per piece on AbilityInstance so definitions can be shared freely.
type Ability struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	ManaCost int        `json:"manaCost"`
	Cooldown int        `json:"cooldown"`
	Range    int        `json:"range"`
	MinLevel int        `json:"minLevel"`
	Target   TargetType `json:"target"`
	Effects  []Effect   `json:"-"`
}

// AbilityInstance is one piece's use of an ability: the shared definition
// plus that piece's remaining cooldown.
type AbilityInstance struct {
	Def      *Ability `json:"def"`
	Cooldown int      `json:"cooldown"`
}

// Ready reports whether the cooldown has elapsed.
func (a *AbilityInstance) Ready() bool { return a.Cooldown <= 0 }

// UseCheck is the structured eligibility result: a rejection is data, not
// an error.
type UseCheck struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

// CanUse checks whether the piece may activate the ability right now.
func CanUse(pc *Piece, inst *AbilityInstance) UseCheck {
	switch {
	case pc == nil || inst == nil:
		return UseCheck{Reason: "no such ability"}
	case !pc.Alive:
		return UseCheck{Reason: "piece is not alive"}
	case pc.Stats.CurrentMana < inst.Def.ManaCost:
		return UseCheck{Reason: fmt.Sprintf("not enough mana: need %d, have %d", inst.Def.ManaCost, pc.Stats.CurrentMana)}
	case !inst.Ready():
		return UseCheck{Reason: fmt.Sprintf("on cooldown for %d more turns", inst.Cooldown)}
	case pc.Level < inst.Def.MinLevel:
		return UseCheck{Reason: fmt.Sprintf("requires level %d", inst.Def.MinLevel)}
	default:
		return UseCheck{Allowed: true}
	}
}

// ValidTargets scans the whole board for squares within the ability's range
// that satisfy its target-type predicate.
func ValidTargets(caster *Piece, ab *Ability, b *Board) []Position {
	var out []Position
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			pos := Position{X: x, Y: y}
			if caster.Position.Chebyshev(pos) > ab.Range {
				continue
			}
			if targetMatches(caster, ab.Target, pos, b) {
				out = append(out, pos)
			}
		}
	}
	return out
}

func targetMatches(caster *Piece, tt TargetType, pos Position, b *Board) bool {
	occupant := b.At(pos)
	switch tt {
	case TargetSelf:
		return pos == caster.Position
	case TargetAlly:
		return occupant != nil && occupant.Alive && occupant.Team == caster.Team
	case TargetEnemy:
		return occupant != nil && occupant.Alive && occupant.Team != caster.Team
	case TargetEmptySquare:
		return occupant == nil
	case TargetAnySquare, TargetAreaOfEffect:
		return true
	default:
		return false
	}
}

// ExecuteResult reports an ability activation. On success Board is a new
// board with every effect committed; on failure nothing was mutated.
type ExecuteResult struct {
	Success  bool
	Reason   string
	Board    *Board
	Messages []string
	Affected []string
}

// ExecuteAbility resolves an ability cast atomically: eligibility and
// target checks run first, then mana, cooldown and all effects apply in
// declared order against a single cloned board. The input board is never
// touched, so a failed cast observably changes nothing.
func ExecuteAbility(b *Board, casterID, abilityID string, target Position) ExecuteResult {
	caster := b.FindPiece(casterID)
	if caster == nil {
		return ExecuteResult{Reason: "caster not found"}
	}
	inst := caster.AbilityByID(abilityID)
	if inst == nil {
		return ExecuteResult{Reason: "ability not found"}
	}
	if check := CanUse(caster, inst); !check.Allowed {
		return ExecuteResult{Reason: check.Reason}
	}
	if !validTarget(caster, inst.Def, b, target) {
		return ExecuteResult{Reason: "invalid target"}
	}

	next := b.Clone()
	actor := next.FindPiece(casterID)
	spell := actor.AbilityByID(abilityID)
	actor.Stats.CurrentMana -= spell.Def.ManaCost
	spell.Cooldown = spell.Def.Cooldown

	res := ExecuteResult{
		Success:  true,
		Board:    next,
		Messages: []string{fmt.Sprintf("%s casts %s", actor.Type, spell.Def.Name)},
	}
	for _, eff := range spell.Def.Effects {
		applyEffect(&res, next, actor, eff, target)
	}
	return res
}

func validTarget(caster *Piece, ab *Ability, b *Board, target Position) bool {
	if !target.InBounds() {
		return false
	}
	for _, pos := range ValidTargets(caster, ab, b) {
		if pos == target {
			return true
		}
	}
	return false
}

// resolveTargets returns the pieces an effect touches: the single occupant
// of the target square, or every occupant within the effect's radius.
func resolveTargets(b *Board, target Position, radius int) []*Piece {
	if radius <= 0 {
		if pc := b.At(target); pc != nil && pc.Alive {
			return []*Piece{pc}
		}
		return nil
	}
	var out []*Piece
	for _, pc := range b.AllPieces() {
		if pc.Position.Chebyshev(target) <= radius {
			out = append(out, pc)
		}
	}
	return out
}

func applyEffect(res *ExecuteResult, b *Board, actor *Piece, eff Effect, target Position) {
	switch e := eff.(type) {
	case DamageEffect:
		for _, victim := range resolveTargets(b, target, e.Radius) {
			if victim.Team == actor.Team {
				continue
			}
			damage := e.Value - victim.Stats.Defense
			if damage < 1 {
				damage = 1
			}
			victim.Stats.TakeDamage(damage)
			res.Affected = append(res.Affected, victim.ID)
			res.Messages = append(res.Messages, fmt.Sprintf("%s takes %d damage", victim.Type, damage))
			if victim.Stats.CurrentHP <= 0 {
				victim.Stats.CurrentHP = 0
				victim.Alive = false
				b.Remove(victim.Position)
				res.Messages = append(res.Messages, fmt.Sprintf("%s is destroyed", victim.Type))
			}
		}
	case HealEffect:
		for _, ally := range resolveTargets(b, target, e.Radius) {
			if ally.Team != actor.Team {
				continue
			}
			ally.Stats.CurrentHP += e.Value
			ally.Stats.Clamp()
			res.Affected = append(res.Affected, ally.ID)
			res.Messages = append(res.Messages, fmt.Sprintf("%s recovers %d hp", ally.Type, e.Value))
		}
	case BuffEffect:
		for _, ally := range resolveTargets(b, target, e.Radius) {
			if ally.Team != actor.Team {
				continue
			}
			ally.AddStatus(e.Status)
			res.Affected = append(res.Affected, ally.ID)
			res.Messages = append(res.Messages, fmt.Sprintf("%s gains %s", ally.Type, e.Status.Name))
		}
	case DebuffEffect:
		for _, victim := range resolveTargets(b, target, e.Radius) {
			if victim.Team == actor.Team {
				continue
			}
			victim.AddStatus(e.Status)
			res.Affected = append(res.Affected, victim.ID)
			res.Messages = append(res.Messages, fmt.Sprintf("%s is afflicted by %s", victim.Type, e.Status.Name))
		}
	case TempHPEffect:
		for _, ally := range resolveTargets(b, target, e.Radius) {
			if ally.Team != actor.Team {
				continue
			}
			ally.Stats.TempHP = e.Value
			ally.Stats.TempHPTurns = e.Turns
			res.Affected = append(res.Affected, ally.ID)
			res.Messages = append(res.Messages, fmt.Sprintf("%s is shielded for %d", ally.Type, e.Value))
		}
	case TeleportEffect:
		// The caster relocates, not the target. Anything standing on the
		// square blocks the jump.
		if b.At(target) == nil {
			b.Relocate(actor.Position, target)
			res.Affected = append(res.Affected, actor.ID)
			res.Messages = append(res.Messages, fmt.Sprintf("%s blinks to %s", actor.Type, target))
		}
	}
}
