package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanUse(t *testing.T) {
	queen := pieceAt(Queen, White, 4, 4)
	inst := queen.AbilityByID("fireball")
	require.NotNil(t, inst)

	assert.True(t, CanUse(queen, inst).Allowed)

	t.Run("insufficient mana", func(t *testing.T) {
		drained := queen.Clone()
		drained.Stats.CurrentMana = 10
		check := CanUse(drained, drained.AbilityByID("fireball"))
		assert.False(t, check.Allowed)
		assert.Contains(t, check.Reason, "mana")
	})

	t.Run("on cooldown", func(t *testing.T) {
		cooling := queen.Clone()
		cooling.AbilityByID("fireball").Cooldown = 2
		check := CanUse(cooling, cooling.AbilityByID("fireball"))
		assert.False(t, check.Allowed)
		assert.Contains(t, check.Reason, "cooldown")
	})

	t.Run("dead caster", func(t *testing.T) {
		dead := queen.Clone()
		dead.Alive = false
		check := CanUse(dead, dead.AbilityByID("fireball"))
		assert.False(t, check.Allowed)
	})

	t.Run("under-leveled", func(t *testing.T) {
		novice := queen.Clone()
		novice.Level = 0
		check := CanUse(novice, novice.AbilityByID("fireball"))
		assert.False(t, check.Allowed)
		assert.Contains(t, check.Reason, "level")
	})
}

func TestValidTargets(t *testing.T) {
	queen := pieceAt(Queen, White, 4, 4)
	ally := pieceAt(Pawn, White, 4, 5)
	enemyNear := pieceAt(Pawn, Black, 3, 3)
	enemyFar := pieceAt(Pawn, Black, 0, 0)
	b := placed(queen, ally, enemyNear, enemyFar)

	t.Run("range is chebyshev", func(t *testing.T) {
		targets := ValidTargets(queen, queen.AbilityByID("fireball").Def, b)
		for _, pos := range targets {
			assert.LessOrEqual(t, queen.Position.Chebyshev(pos), 4)
		}
	})

	t.Run("enemy predicate", func(t *testing.T) {
		bash := pieceAt(Pawn, White, 4, 4)
		b2 := placed(bash, pieceAt(Pawn, Black, 4, 3), pieceAt(Pawn, White, 3, 4))
		targets := ValidTargets(bash, bash.AbilityByID("shield_bash").Def, b2)
		require.Len(t, targets, 1)
		assert.Equal(t, Position{X: 4, Y: 3}, targets[0])
	})

	t.Run("empty square predicate", func(t *testing.T) {
		knight := pieceAt(Knight, White, 4, 4)
		b2 := placed(knight, pieceAt(Pawn, Black, 4, 3))
		targets := ValidTargets(knight, knight.AbilityByID("blink_strike").Def, b2)
		assert.NotContains(t, targets, Position{X: 4, Y: 3})
		assert.Contains(t, targets, Position{X: 5, Y: 3})
	})

	t.Run("self predicate", func(t *testing.T) {
		rook := pieceAt(Rook, White, 0, 0)
		b2 := placed(rook)
		targets := ValidTargets(rook, rook.AbilityByID("fortify").Def, b2)
		require.Len(t, targets, 1)
		assert.Equal(t, rook.Position, targets[0])
	})
}

func TestExecuteFireball(t *testing.T) {
	queen := pieceAt(Queen, White, 4, 4)
	enemy := pieceAt(Knight, Black, 4, 2)
	splash := pieceAt(Pawn, Black, 5, 2)
	ally := pieceAt(Pawn, White, 3, 2)
	b := placed(queen, enemy, splash, ally)

	res := ExecuteAbility(b, queen.ID, "fireball", Position{X: 4, Y: 2})
	require.True(t, res.Success, res.Reason)
	require.NotNil(t, res.Board)

	// Caster pays on the new board; the input board is untouched.
	caster := res.Board.FindPiece(queen.ID)
	assert.Equal(t, queen.Stats.MaxMana-40, caster.Stats.CurrentMana)
	assert.Equal(t, 4, caster.AbilityByID("fireball").Cooldown)
	assert.Equal(t, queen.Stats.MaxMana, b.FindPiece(queen.ID).Stats.CurrentMana)

	// Both enemies in the blast take defense-reduced damage and start
	// burning; the ally inside the radius is untouched.
	hitKnight := res.Board.FindPiece(enemy.ID)
	assert.Equal(t, enemy.Stats.MaxHP-(35-enemy.Stats.Defense), hitKnight.Stats.CurrentHP)
	assert.Len(t, hitKnight.Statuses, 1)
	assert.Equal(t, "burn", hitKnight.Statuses[0].ID)

	hitPawn := res.Board.FindPiece(splash.ID)
	assert.NotNil(t, hitPawn)
	assert.Less(t, hitPawn.Stats.CurrentHP, hitPawn.Stats.MaxHP)

	safeAlly := res.Board.FindPiece(ally.ID)
	assert.Equal(t, ally.Stats.MaxHP, safeAlly.Stats.CurrentHP)
	assert.Empty(t, safeAlly.Statuses)
}

func TestExecuteFireballKills(t *testing.T) {
	queen := pieceAt(Queen, White, 4, 4)
	wounded := pieceAt(Pawn, Black, 4, 2)
	wounded.Stats.CurrentHP = 10
	b := placed(queen, wounded)

	res := ExecuteAbility(b, queen.ID, "fireball", Position{X: 4, Y: 2})
	require.True(t, res.Success, res.Reason)
	assert.Nil(t, res.Board.FindPiece(wounded.ID), "dead piece leaves the board")
	assert.NotNil(t, b.FindPiece(wounded.ID), "original board is untouched")
}

func TestExecuteFailureChangesNothing(t *testing.T) {
	rook := pieceAt(Rook, White, 0, 7)
	rook.Stats.CurrentMana = 5 // below Fortify's 15
	b := placed(rook)

	res := ExecuteAbility(b, rook.ID, "fortify", rook.Position)
	require.False(t, res.Success)
	assert.Contains(t, res.Reason, "mana")
	assert.Nil(t, res.Board)
	assert.Equal(t, 5, rook.Stats.CurrentMana)
	assert.Equal(t, 0, rook.AbilityByID("fortify").Cooldown)
	assert.Equal(t, 0, rook.Stats.TempHP)
}

func TestExecuteRejectsInvalidTarget(t *testing.T) {
	queen := pieceAt(Queen, White, 7, 7)
	b := placed(queen)

	// (0,0) is Chebyshev distance 7, well past fireball's range of 4.
	res := ExecuteAbility(b, queen.ID, "fireball", Position{X: 0, Y: 0})
	require.False(t, res.Success)
	assert.Equal(t, "invalid target", res.Reason)
}

func TestExecuteUnknownReferentsAreNoops(t *testing.T) {
	queen := pieceAt(Queen, White, 4, 4)
	b := placed(queen)

	res := ExecuteAbility(b, "nope", "fireball", queen.Position)
	assert.False(t, res.Success)

	res = ExecuteAbility(b, queen.ID, "nope", queen.Position)
	assert.False(t, res.Success)
}

func TestTeleportMovesCaster(t *testing.T) {
	knight := pieceAt(Knight, White, 4, 4)
	b := placed(knight)

	dest := Position{X: 6, Y: 5}
	res := ExecuteAbility(b, knight.ID, "blink_strike", dest)
	require.True(t, res.Success, res.Reason)

	moved := res.Board.FindPiece(knight.ID)
	assert.Equal(t, dest, moved.Position)
	assert.Same(t, moved, res.Board.At(dest))
	assert.Nil(t, res.Board.At(Position{X: 4, Y: 4}))
}

func TestHealClampsToMax(t *testing.T) {
	bishop := pieceAt(Bishop, White, 4, 4)
	hurt := pieceAt(Pawn, White, 4, 3)
	hurt.Stats.CurrentHP = hurt.Stats.MaxHP - 5
	b := placed(bishop, hurt)

	res := ExecuteAbility(b, bishop.ID, "healing_light", hurt.Position)
	require.True(t, res.Success, res.Reason)
	assert.Equal(t, hurt.Stats.MaxHP, res.Board.FindPiece(hurt.ID).Stats.CurrentHP)
}

func TestNonStackableStatusReplaced(t *testing.T) {
	pc := pieceAt(Knight, White, 0, 0)
	pc.AddStatus(StatusEffect{ID: "burn", Name: "Burning", Kind: StatusDamageOverTime, Value: 8, Duration: 3})
	pc.AddStatus(StatusEffect{ID: "burn", Name: "Burning", Kind: StatusDamageOverTime, Value: 8, Duration: 3})
	assert.Len(t, pc.Statuses, 1)

	pc.AddStatus(StatusEffect{ID: "bleed", Name: "Bleeding", Kind: StatusDamageOverTime, Value: 3, Duration: 2, Stackable: true})
	pc.AddStatus(StatusEffect{ID: "bleed", Name: "Bleeding", Kind: StatusDamageOverTime, Value: 3, Duration: 2, Stackable: true})
	assert.Len(t, pc.Statuses, 3)
}

func TestFortifyGrantsShieldAndBuff(t *testing.T) {
	rook := pieceAt(Rook, White, 0, 7)
	b := placed(rook)

	res := ExecuteAbility(b, rook.ID, "fortify", rook.Position)
	require.True(t, res.Success, res.Reason)

	shielded := res.Board.FindPiece(rook.ID)
	assert.Equal(t, 40, shielded.Stats.TempHP)
	assert.Equal(t, 3, shielded.Stats.TempHPTurns)
	require.Len(t, shielded.Statuses, 1)
	assert.Equal(t, "bulwark", shielded.Statuses[0].ID)
}
