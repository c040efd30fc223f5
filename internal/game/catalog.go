package game

// baseStats is the per-type resource template applied when a board is set
// up. Tuned so a queen's strike one-shots a pawn but not a knight.
func baseStats(pt PieceType) PieceStats {
	var s PieceStats
	switch pt {
	case Pawn:
		s = PieceStats{MaxHP: 50, MaxMana: 30, AttackPower: 15, Defense: 5, Speed: 2, MagicPower: 5}
	case Knight:
		s = PieceStats{MaxHP: 80, MaxMana: 40, AttackPower: 25, Defense: 10, Speed: 4, MagicPower: 10}
	case Bishop:
		s = PieceStats{MaxHP: 70, MaxMana: 80, AttackPower: 15, Defense: 8, Speed: 3, MagicPower: 25}
	case Rook:
		s = PieceStats{MaxHP: 120, MaxMana: 40, AttackPower: 30, Defense: 20, Speed: 2, MagicPower: 5}
	case Queen:
		s = PieceStats{MaxHP: 100, MaxMana: 100, AttackPower: 40, Defense: 15, Speed: 5, MagicPower: 30}
	case King:
		s = PieceStats{MaxHP: 150, MaxMana: 60, AttackPower: 20, Defense: 20, Speed: 1, MagicPower: 15}
	}
	s.CurrentHP = s.MaxHP
	s.CurrentMana = s.MaxMana
	s.CriticalChance = 0.05
	s.CriticalDamage = 1.5
	return s
}

// Built-in ability definitions. Instances hold the cooldown; these shared
// definitions stay immutable.
var (
	abilityShieldBash = &Ability{
		ID: "shield_bash", Name: "Shield Bash",
		ManaCost: 10, Cooldown: 2, Range: 1, MinLevel: 1, Target: TargetEnemy,
		Effects: []Effect{
			DamageEffect{Value: 12},
			DebuffEffect{Status: StatusEffect{ID: "stagger", Name: "Staggered", Kind: StatusDebuff, Value: 5, Duration: 2}},
		},
	}
	abilityBlinkStrike = &Ability{
		ID: "blink_strike", Name: "Blink Strike",
		ManaCost: 20, Cooldown: 3, Range: 3, MinLevel: 1, Target: TargetEmptySquare,
		Effects: []Effect{TeleportEffect{}},
	}
	abilityHealingLight = &Ability{
		ID: "healing_light", Name: "Healing Light",
		ManaCost: 25, Cooldown: 3, Range: 3, MinLevel: 1, Target: TargetAlly,
		Effects: []Effect{HealEffect{Value: 30, Radius: 1}},
	}
	abilityFortify = &Ability{
		ID: "fortify", Name: "Fortify",
		ManaCost: 15, Cooldown: 4, Range: 0, MinLevel: 1, Target: TargetSelf,
		Effects: []Effect{
			TempHPEffect{Value: 40, Turns: 3},
			BuffEffect{Status: StatusEffect{ID: "bulwark", Name: "Bulwark", Kind: StatusBuff, Value: 10, Duration: 3}},
		},
	}
	abilityFireball = &Ability{
		ID: "fireball", Name: "Fireball",
		ManaCost: 40, Cooldown: 4, Range: 4, MinLevel: 1, Target: TargetAreaOfEffect,
		Effects: []Effect{
			DamageEffect{Value: 35, Radius: 1},
			DebuffEffect{Status: StatusEffect{ID: "burn", Name: "Burning", Kind: StatusDamageOverTime, Value: 8, Duration: 3}, Radius: 1},
		},
	}
	abilityRoyalDecree = &Ability{
		ID: "royal_decree", Name: "Royal Decree",
		ManaCost: 30, Cooldown: 5, Range: 2, MinLevel: 1, Target: TargetAreaOfEffect,
		Effects: []Effect{
			BuffEffect{Status: StatusEffect{ID: "inspired", Name: "Inspired", Kind: StatusHealOverTime, Value: 5, Duration: 3}, Radius: 2},
		},
	}
)

// abilitiesFor builds fresh per-piece instances for a piece type's kit.
func abilitiesFor(pt PieceType) []*AbilityInstance {
	var defs []*Ability
	switch pt {
	case Pawn:
		defs = []*Ability{abilityShieldBash}
	case Knight:
		defs = []*Ability{abilityBlinkStrike}
	case Bishop:
		defs = []*Ability{abilityHealingLight}
	case Rook:
		defs = []*Ability{abilityFortify}
	case Queen:
		defs = []*Ability{abilityFireball}
	case King:
		defs = []*Ability{abilityRoyalDecree}
	}
	out := make([]*AbilityInstance, len(defs))
	for i, def := range defs {
		out[i] = &AbilityInstance{Def: def}
	}
	return out
}

// AbilityCatalog lists every built-in definition, for UI listings.
func AbilityCatalog() []*Ability {
	return []*Ability{
		abilityShieldBash,
		abilityBlinkStrike,
		abilityHealingLight,
		abilityFortify,
		abilityFireball,
		abilityRoyalDecree,
	}
}
