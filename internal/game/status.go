package game

import "fmt"

// StatusKind classifies a timed modifier.
type StatusKind uint8

const (
	StatusBuff StatusKind = iota
	StatusDebuff
	StatusDamageOverTime
	StatusHealOverTime
)

func (k StatusKind) String() string {
	switch k {
	case StatusBuff:
		return "buff"
	case StatusDebuff:
		return "debuff"
	case StatusDamageOverTime:
		return "damage_over_time"
	case StatusHealOverTime:
		return "heal_over_time"
	default:
		return "status"
	}
}

// StatusEffect is a timed modifier attached to a piece. Duration is counted
// in the owner's turns; the effect is dropped once it reaches zero.
type StatusEffect struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Kind      StatusKind `json:"kind"`
	Value     int        `json:"value"`
	Duration  int        `json:"duration"`
	Stackable bool       `json:"stackable"`
}

// ProcessStatusEffects runs one turn-start tick for the piece: damage and
// heal over time apply in order, every duration decrements, and expired
// effects are dropped with a removal message. A damage-over-time tick can
// kill; the caller is responsible for clearing the board cell when Alive
// flips false.
func ProcessStatusEffects(pc *Piece) []string {
	if pc == nil || !pc.Alive {
		return nil
	}
	var messages []string
	remaining := pc.Statuses[:0]
	for _, st := range pc.Statuses {
		switch st.Kind {
		case StatusDamageOverTime:
			pc.Stats.TakeDamage(st.Value)
			messages = append(messages, fmt.Sprintf("%s takes %d damage from %s", pc.Type, st.Value, st.Name))
			if pc.Stats.CurrentHP <= 0 {
				pc.Stats.CurrentHP = 0
				pc.Alive = false
				messages = append(messages, fmt.Sprintf("%s succumbs to %s", pc.Type, st.Name))
			}
		case StatusHealOverTime:
			pc.Stats.CurrentHP += st.Value
			if pc.Stats.CurrentHP > pc.Stats.MaxHP {
				pc.Stats.CurrentHP = pc.Stats.MaxHP
			}
			messages = append(messages, fmt.Sprintf("%s recovers %d hp from %s", pc.Type, st.Value, st.Name))
		}
		st.Duration--
		if st.Duration > 0 {
			remaining = append(remaining, st)
		} else {
			messages = append(messages, fmt.Sprintf("%s fades from %s", st.Name, pc.Type))
		}
		if !pc.Alive {
			break
		}
	}
	if !pc.Alive {
		pc.Statuses = nil
		return messages
	}
	pc.Statuses = remaining
	return messages
}

// tickTemporaryHP decrements the temporary-HP timer and clears the shield
// once it expires.
func tickTemporaryHP(pc *Piece) {
	if pc.Stats.TempHPTurns <= 0 {
		return
	}
	pc.Stats.TempHPTurns--
	if pc.Stats.TempHPTurns == 0 {
		pc.Stats.TempHP = 0
	}
}

// tickCooldowns counts every armed ability one turn closer to ready.
func tickCooldowns(pc *Piece) {
	for _, ab := range pc.Abilities {
		if ab.Cooldown > 0 {
			ab.Cooldown--
		}
	}
}
