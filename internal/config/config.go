// Package config provides YAML-based tuning for both simulations and the
// difficulty presets that select racer AI profiles.
package config

// KartConfig contains all configuration for the kart racer.
type KartConfig struct {
	Physics KartPhysics `yaml:"physics"`
	Race    KartRace    `yaml:"race"`
	Track   KartTrack   `yaml:"track"`
	Items   KartItems   `yaml:"items"`
	AI      KartAI      `yaml:"ai"`
}

// KartPhysics defines the kart motion model. Speeds are world units per second.
type KartPhysics struct {
	MaxSpeed         float64 `yaml:"max_speed"`
	Acceleration     float64 `yaml:"acceleration"`
	BrakeForce       float64 `yaml:"brake_force"`
	TurnSpeed        float64 `yaml:"turn_speed"`       // Radians per second
	DriftMultiplier  float64 `yaml:"drift_multiplier"` // Turn rate multiplier while drifting
	Friction         float64 `yaml:"friction"`         // Coast decay per friction step
	FrictionStepMs   float64 `yaml:"friction_step_ms"`
	ReverseFactor    float64 `yaml:"reverse_factor"`
	BoostFactor      float64 `yaml:"boost_factor"`
	MinTurnSpeed     float64 `yaml:"min_turn_speed"`
	StopEpsilon      float64 `yaml:"stop_epsilon"`
	DriftMinSpeed    float64 `yaml:"drift_min_speed"`
	DriftChargeRate  float64 `yaml:"drift_charge_rate"` // Charge per second
	DriftChargeMax   float64 `yaml:"drift_charge_max"`
	DriftBoostCharge float64 `yaml:"drift_boost_charge"` // Charge needed for a boost on release
	DriftBoostMs     float64 `yaml:"drift_boost_ms"`
	Bounce           float64 `yaml:"bounce"` // Speed kept after hitting a wall
	KartWidth        float64 `yaml:"kart_width"`
	KartDepth        float64 `yaml:"kart_depth"`
}

// KartRace defines race rules.
type KartRace struct {
	Laps        int     `yaml:"laps"`
	AICount     int     `yaml:"ai_count"`
	CountdownMs float64 `yaml:"countdown_ms"`
	Checkpoints int     `yaml:"checkpoints"`
}

// KartTrack defines the oval layout.
type KartTrack struct {
	Width          float64 `yaml:"width"` // Also the checkpoint trigger radius
	StraightLength float64 `yaml:"straight_length"`
	CurveRadius    float64 `yaml:"curve_radius"`
	Waypoints      int     `yaml:"waypoints"`
	FinishOffset   float64 `yaml:"finish_offset"` // Distance of the finish line up the start straight
	GridSpacing    float64 `yaml:"grid_spacing"`
}

// KartItems defines item boxes and item effects.
type KartItems struct {
	BoxRespawnMs float64      `yaml:"box_respawn_ms"`
	BoxSize      float64      `yaml:"box_size"`
	BoostMs      float64      `yaml:"boost_ms"`
	ShellSpeed   float64      `yaml:"shell_speed"`
	ShellLifeMs  float64      `yaml:"shell_life_ms"`
	StarMs       float64      `yaml:"star_ms"`
	StunMs       float64      `yaml:"stun_ms"`
	Chances      []ItemChance `yaml:"chances"` // Weighted partition, rolled once per box
}

// ItemChance is one entry of a weighted item roll.
type ItemChance struct {
	Item   string  `yaml:"item"`
	Chance float64 `yaml:"chance"`
}

// KartAI defines opponent behavior.
type KartAI struct {
	WaypointStride int                            `yaml:"waypoint_stride"`
	Difficulty     DifficultyPreset               `yaml:"difficulty"`
	Presets        map[DifficultyPreset]AIProfile `yaml:"presets"`
}

// AIProfile is the fixed tuple a difficulty preset maps to.
type AIProfile struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"`
	ReactionMs      float64 `yaml:"reaction_ms"`
	MistakeChance   float64 `yaml:"mistake_chance"`
}

// DungeonConfig contains all configuration for the top-down adventure.
type DungeonConfig struct {
	World       DungeonWorld               `yaml:"world"`
	Player      DungeonPlayer              `yaml:"player"`
	Combat      DungeonCombat              `yaml:"combat"`
	AI          DungeonAI                  `yaml:"ai"`
	Enemies     map[string]EnemyStats      `yaml:"enemies"`
	Projectiles map[string]ProjectileStats `yaml:"projectiles"`
	Items       DungeonItems               `yaml:"items"`
	Drops       DungeonDrops               `yaml:"drops"`
	Mechanics   DungeonMechanics           `yaml:"mechanics"`
}

// DungeonWorld defines room dimensions and the starting point. Distances are pixels.
type DungeonWorld struct {
	TileSize       float64 `yaml:"tile_size"`
	RoomTilesW     int     `yaml:"room_tiles_w"`
	RoomTilesH     int     `yaml:"room_tiles_h"`
	OverworldW     int     `yaml:"overworld_w"`
	OverworldH     int     `yaml:"overworld_h"`
	StartRoom      string  `yaml:"start_room"`
	StartX         float64 `yaml:"start_x"`
	StartY         float64 `yaml:"start_y"`
	TransitionMs   float64 `yaml:"transition_ms"`
	DoorThreshold  float64 `yaml:"door_threshold"`  // Tiles
	EdgeMargin     float64 `yaml:"edge_margin"`     // Tiles
	InteractRadius float64 `yaml:"interact_radius"` // Tiles
}

// DungeonPlayer defines the player's starting stats and movement.
type DungeonPlayer struct {
	Speed          float64 `yaml:"speed"`
	Health         int     `yaml:"health"`
	MaxHealth      int     `yaml:"max_health"`
	HealthCap      int     `yaml:"health_cap"`
	Magic          int     `yaml:"magic"`
	MaxMagic       int     `yaml:"max_magic"`
	Hitbox         float64 `yaml:"hitbox"` // Tiles
	DashSpeed      float64 `yaml:"dash_speed"`
	DashMs         float64 `yaml:"dash_ms"`
	DashCooldownMs float64 `yaml:"dash_cooldown_ms"`
	ItemCooldownMs float64 `yaml:"item_cooldown_ms"`
	AmmoCap        int     `yaml:"ammo_cap"`
}

// DungeonCombat defines sword, shield and damage response tuning.
type DungeonCombat struct {
	SwordDamage        int     `yaml:"sword_damage"`
	SwordCooldownMs    float64 `yaml:"sword_cooldown_ms"`
	SwingMs            float64 `yaml:"swing_ms"`
	SpinChargeMs       float64 `yaml:"spin_charge_ms"`
	SpinDamage         int     `yaml:"spin_damage"`
	SpinHitbox         float64 `yaml:"spin_hitbox"` // Tiles
	SpinCooldownFactor float64 `yaml:"spin_cooldown_factor"`
	InvincibleMs       float64 `yaml:"invincible_ms"`
	Knockback          float64 `yaml:"knockback"`
	BlockedKnockback   float64 `yaml:"blocked_knockback"`
	BlockArcDeg        float64 `yaml:"block_arc_deg"` // Half-angle of the shield arc
	KnockbackDamping   float64 `yaml:"knockback_damping"`
	KnockbackEpsilon   float64 `yaml:"knockback_epsilon"`
	EnemyKnockback     float64 `yaml:"enemy_knockback"`
	EnemyStunMs        float64 `yaml:"enemy_stun_ms"`
	BoomerangStunMs    float64 `yaml:"boomerang_stun_ms"`
	BombRadius         float64 `yaml:"bomb_radius"` // Tiles
	HammerDamage       int     `yaml:"hammer_damage"`
	HammerReach        float64 `yaml:"hammer_reach"` // Tiles
}

// DungeonAI defines enemy perception radii (tiles) and behavior timers.
type DungeonAI struct {
	AlertRadius     float64 `yaml:"alert_radius"`
	DisengageRadius float64 `yaml:"disengage_radius"`
	AttackRadius    float64 `yaml:"attack_radius"`
	ShootRadius     float64 `yaml:"shoot_radius"`
	FlyRadius       float64 `yaml:"fly_radius"`
	ChargeRadius    float64 `yaml:"charge_radius"`
	AwakenRadius    float64 `yaml:"awaken_radius"`
	AlignSlop       float64 `yaml:"align_slop"`
	WanderMinMs     float64 `yaml:"wander_min_ms"`
	WanderMaxMs     float64 `yaml:"wander_max_ms"`
	JumpMinMs       float64 `yaml:"jump_min_ms"`
	JumpMaxMs       float64 `yaml:"jump_max_ms"`
	FireCooldownMs  float64 `yaml:"fire_cooldown_ms"`
	FlyJitter       float64 `yaml:"fly_jitter"`
	ChargeBoost     float64 `yaml:"charge_boost"`
}

// EnemyStats describes one enemy type.
type EnemyStats struct {
	Health     int     `yaml:"health"`
	Damage     int     `yaml:"damage"`
	Speed      float64 `yaml:"speed"`
	Behavior   string  `yaml:"behavior"`
	Projectile string  `yaml:"projectile"` // Empty for melee-only enemies
}

// ProjectileStats describes one projectile type.
type ProjectileStats struct {
	Speed    float64 `yaml:"speed"`
	Damage   int     `yaml:"damage"`
	Lifetime float64 `yaml:"lifetime_ms"`
}

// DungeonItems defines equipped item costs.
type DungeonItems struct {
	MagicCost   map[string]int `yaml:"magic_cost"`
	LampMs      float64        `yaml:"lamp_ms"`
	LampRadius  float64        `yaml:"lamp_radius"`
	ThrowDist   float64        `yaml:"throw_distance"` // Tiles
	ThrowSpeed  float64        `yaml:"throw_speed"`
	ThrowDamage int            `yaml:"throw_damage"`
}

// DungeonDrops defines pickups and drop tables.
type DungeonDrops struct {
	LifetimeMs    float64                 `yaml:"lifetime_ms"`
	CollectRadius float64                 `yaml:"collect_radius"` // Tiles
	Items         map[string]DropEffect   `yaml:"items"`
	Tables        map[string][]DropChance `yaml:"tables"` // Independent trials per interactable type
	Enemy         []DropChance            `yaml:"enemy"`  // Weighted partition rolled once per kill
}

// DropEffect is what collecting a drop does.
type DropEffect struct {
	Effect string `yaml:"effect"` // health, rupees, bombs, arrows, magic, key, boss_key, map, compass, fairy, heart_piece
	Value  int    `yaml:"value"`
}

// DropChance is one drop table entry.
type DropChance struct {
	Item   string  `yaml:"item"`
	Chance float64 `yaml:"chance"`
}

// DungeonMechanics defines pits, plates and lighting.
type DungeonMechanics struct {
	PitDamage    int     `yaml:"pit_damage"`
	PitRadius    float64 `yaml:"pit_radius"`   // Tiles
	PlateRadius  float64 `yaml:"plate_radius"` // Tiles
	PlayerLight  float64 `yaml:"player_light"`
	HeartPieces  int     `yaml:"heart_pieces"`   // Pieces per container
	FallRespawnX float64 `yaml:"fall_respawn_x"` // Tiles
	FallRespawnY float64 `yaml:"fall_respawn_y"` // Tiles
}
