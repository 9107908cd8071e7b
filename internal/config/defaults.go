package config

import (
	_ "embed"
)

//go:embed defaults/kart.yaml
var defaultKartYAML []byte

//go:embed defaults/dungeon.yaml
var defaultDungeonYAML []byte

// DefaultYAML returns the embedded default document for a game, or nil.
func DefaultYAML(game string) []byte {
	switch game {
	case "kart":
		return defaultKartYAML
	case "dungeon":
		return defaultDungeonYAML
	default:
		return nil
	}
}

// DefaultKartConfig returns the default kart racer configuration.
func DefaultKartConfig() KartConfig {
	return KartConfig{
		Physics: KartPhysics{
			MaxSpeed:         50,
			Acceleration:     25,
			BrakeForce:       35,
			TurnSpeed:        2.5,
			DriftMultiplier:  1.8,
			Friction:         0.98,
			FrictionStepMs:   1000.0 / 60,
			ReverseFactor:    0.4,
			BoostFactor:      1.5,
			MinTurnSpeed:     0.5,
			StopEpsilon:      0.1,
			DriftMinSpeed:    10,
			DriftChargeRate:  100,
			DriftChargeMax:   100,
			DriftBoostCharge: 50,
			DriftBoostMs:     500,
			Bounce:           0.3,
			KartWidth:        2,
			KartDepth:        3,
		},
		Race: KartRace{
			Laps:        3,
			AICount:     7,
			CountdownMs: 3000,
			Checkpoints: 8,
		},
		Track: KartTrack{
			Width:          18,
			StraightLength: 120,
			CurveRadius:    35,
			Waypoints:      24,
			FinishOffset:   30,
			GridSpacing:    6,
		},
		Items: KartItems{
			BoxRespawnMs: 10000,
			BoxSize:      2,
			BoostMs:      1500,
			ShellSpeed:   60,
			ShellLifeMs:  5000,
			StarMs:       8000,
			StunMs:       2000,
			Chances: []ItemChance{
				{Item: "mushroom", Chance: 0.35},
				{Item: "green_shell", Chance: 0.25},
				{Item: "red_shell", Chance: 0.15},
				{Item: "banana", Chance: 0.20},
				{Item: "star", Chance: 0.05},
			},
		},
		AI: KartAI{
			WaypointStride: 3,
			Difficulty:     DifficultyMedium,
			Presets: map[DifficultyPreset]AIProfile{
				DifficultyEasy:   {SpeedMultiplier: 0.80, ReactionMs: 400, MistakeChance: 0.12},
				DifficultyMedium: {SpeedMultiplier: 0.92, ReactionMs: 250, MistakeChance: 0.06},
				DifficultyHard:   {SpeedMultiplier: 1.0, ReactionMs: 150, MistakeChance: 0.02},
			},
		},
	}
}

// DefaultDungeonConfig returns the default adventure configuration.
func DefaultDungeonConfig() DungeonConfig {
	return DungeonConfig{
		World: DungeonWorld{
			TileSize:       48,
			RoomTilesW:     16,
			RoomTilesH:     14,
			OverworldW:     4,
			OverworldH:     4,
			StartRoom:      "overworld_1_1",
			StartX:         384,
			StartY:         336,
			TransitionMs:   300,
			DoorThreshold:  0.5,
			EdgeMargin:     0.3,
			InteractRadius: 1.2,
		},
		Player: DungeonPlayer{
			Speed:          180,
			Health:         12,
			MaxHealth:      12,
			HealthCap:      40,
			Magic:          32,
			MaxMagic:       32,
			Hitbox:         0.7,
			DashSpeed:      450,
			DashMs:         400,
			DashCooldownMs: 500,
			ItemCooldownMs: 150,
			AmmoCap:        99,
		},
		Combat: DungeonCombat{
			SwordDamage:        2,
			SwordCooldownMs:    150,
			SwingMs:            200,
			SpinChargeMs:       600,
			SpinDamage:         4,
			SpinHitbox:         2.5,
			SpinCooldownFactor: 1.5,
			InvincibleMs:       500,
			Knockback:          200,
			BlockedKnockback:   100,
			BlockArcDeg:        90,
			KnockbackDamping:   0.9,
			KnockbackEpsilon:   0.5,
			EnemyKnockback:     300,
			EnemyStunMs:        500,
			BoomerangStunMs:    1000,
			BombRadius:         2,
			HammerDamage:       4,
			HammerReach:        1.5,
		},
		AI: DungeonAI{
			AlertRadius:     8,
			DisengageRadius: 12,
			AttackRadius:    1.5,
			ShootRadius:     6,
			FlyRadius:       8,
			ChargeRadius:    6,
			AwakenRadius:    2,
			AlignSlop:       0.5,
			WanderMinMs:     1000,
			WanderMaxMs:     3000,
			JumpMinMs:       800,
			JumpMaxMs:       1500,
			FireCooldownMs:  2000,
			FlyJitter:       0.6,
			ChargeBoost:     1.5,
		},
		Enemies: map[string]EnemyStats{
			"soldier_green": {Health: 4, Damage: 2, Speed: 60, Behavior: "patrol"},
			"soldier_blue":  {Health: 6, Damage: 2, Speed: 80, Behavior: "chase"},
			"octorok":       {Health: 2, Damage: 2, Speed: 50, Behavior: "shoot", Projectile: "rock"},
			"moblin":        {Health: 6, Damage: 4, Speed: 55, Behavior: "throw", Projectile: "rock"},
			"keese":         {Health: 1, Damage: 1, Speed: 120, Behavior: "fly"},
			"stalfos":       {Health: 4, Damage: 2, Speed: 65, Behavior: "wander"},
			"rope":          {Health: 2, Damage: 2, Speed: 200, Behavior: "charge"},
			"tektite":       {Health: 2, Damage: 2, Speed: 100, Behavior: "jump"},
			"armos":         {Health: 6, Damage: 2, Speed: 40, Behavior: "awaken"},
			"buzzblob":      {Health: 2, Damage: 2, Speed: 30, Behavior: "electric"},
		},
		Projectiles: map[string]ProjectileStats{
			"arrow":     {Speed: 500, Damage: 4, Lifetime: 1500},
			"bomb":      {Speed: 0, Damage: 8, Lifetime: 2000},
			"boomerang": {Speed: 400, Damage: 0, Lifetime: 1000},
			"hookshot":  {Speed: 600, Damage: 2, Lifetime: 400},
			"fire":      {Speed: 450, Damage: 8, Lifetime: 800},
			"ice":       {Speed: 450, Damage: 8, Lifetime: 800},
			"rock":      {Speed: 350, Damage: 2, Lifetime: 1500},
		},
		Items: DungeonItems{
			MagicCost:   map[string]int{"fire_rod": 4, "ice_rod": 4, "lamp": 2},
			LampMs:      3000,
			LampRadius:  150,
			ThrowDist:   4,
			ThrowSpeed:  400,
			ThrowDamage: 2,
		},
		Drops: DungeonDrops{
			LifetimeMs:    8000,
			CollectRadius: 0.8,
			Items: map[string]DropEffect{
				"heart":           {Effect: "health", Value: 2},
				"heart_piece":     {Effect: "heart_piece", Value: 1},
				"rupee_green":     {Effect: "rupees", Value: 1},
				"rupee_blue":      {Effect: "rupees", Value: 5},
				"rupee_red":       {Effect: "rupees", Value: 20},
				"bomb":            {Effect: "bombs", Value: 1},
				"arrow":           {Effect: "arrows", Value: 1},
				"arrow_10":        {Effect: "arrows", Value: 10},
				"magic_jar_small": {Effect: "magic", Value: 8},
				"magic_jar_large": {Effect: "magic", Value: 32},
				"key":             {Effect: "key", Value: 1},
				"boss_key":        {Effect: "boss_key", Value: 1},
				"map":             {Effect: "map", Value: 1},
				"compass":         {Effect: "compass", Value: 1},
				"fairy":           {Effect: "fairy"},
			},
			Tables: map[string][]DropChance{
				"grass": {
					{Item: "rupee_green", Chance: 0.15},
					{Item: "heart", Chance: 0.08},
					{Item: "magic_jar_small", Chance: 0.05},
					{Item: "arrow", Chance: 0.05},
					{Item: "bomb", Chance: 0.03},
				},
				"bush": {
					{Item: "rupee_green", Chance: 0.2},
					{Item: "heart", Chance: 0.1},
					{Item: "rupee_blue", Chance: 0.05},
				},
				"pot": {
					{Item: "rupee_green", Chance: 0.3},
					{Item: "heart", Chance: 0.15},
					{Item: "rupee_blue", Chance: 0.1},
					{Item: "bomb", Chance: 0.08},
					{Item: "arrow", Chance: 0.08},
					{Item: "magic_jar_small", Chance: 0.05},
				},
				"rock": {
					{Item: "rupee_green", Chance: 0.1},
					{Item: "rupee_blue", Chance: 0.05},
				},
			},
			Enemy: []DropChance{
				{Item: "heart", Chance: 0.25},
				{Item: "rupee_green", Chance: 0.10},
				{Item: "rupee_blue", Chance: 0.05},
				{Item: "magic_jar_small", Chance: 0.05},
				{Item: "bomb", Chance: 0.02},
				{Item: "arrow", Chance: 0.02},
				{Item: "fairy", Chance: 0.01},
			},
		},
		Mechanics: DungeonMechanics{
			PitDamage:    2,
			PitRadius:    0.4,
			PlateRadius:  0.5,
			PlayerLight:  60,
			HeartPieces:  4,
			FallRespawnX: 7,
			FallRespawnY: 11,
		},
	}
}
