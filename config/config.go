package config

// PhysicsConfig contains collision-loop tuning shared by every body.
type PhysicsConfig struct {
	MinGap            float64 `yaml:"minGap"`            // Separation left between bodies after a contact
	MaxCollisionLoops int     `yaml:"maxCollisionLoops"` // Sweep iterations per tick before fighters are reset
}

// FighterConfig contains all fighter-related configuration values.
// Speeds are in pixels per second, durations in seconds.
type FighterConfig struct {
	// Dimensions
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`

	// Movement
	VelocityXMax      float64 `yaml:"velocityXMax"`
	CoastAcceleration float64 `yaml:"coastAcceleration"`
	RunAcceleration   float64 `yaml:"runAcceleration"`
	SkidAcceleration  float64 `yaml:"skidAcceleration"`
	JumpVelocity      float64 `yaml:"jumpVelocity"` // Negative is up
	Gravity           float64 `yaml:"gravity"`
	SlideDrag         float64 `yaml:"slideDrag"`

	// Timers
	JumpCooldown    float64 `yaml:"jumpCooldown"`
	AttackCooldown  float64 `yaml:"attackCooldown"`
	AttackDuration  float64 `yaml:"attackDuration"`
	PunchWindow     float64 `yaml:"punchWindow"` // Portion of the swing with a live hitbox
	StunDuration    float64 `yaml:"stunDuration"`
	StunCooldown    float64 `yaml:"stunCooldown"`
	WieldCooldown   float64 `yaml:"wieldCooldown"`
	InitialCooldown float64 `yaml:"initialCooldown"` // Starting value of attack, stun and wield timers

	// Punch hitbox, relative to the fighter when facing right
	PunchOffsetX float64 `yaml:"punchOffsetX"`
	PunchOffsetY float64 `yaml:"punchOffsetY"`
	PunchWidth   float64 `yaml:"punchWidth"`
	PunchHeight  float64 `yaml:"punchHeight"`

	// Where a wielded pistol sits
	PistolOffsetX float64 `yaml:"pistolOffsetX"`
	PistolOffsetY float64 `yaml:"pistolOffsetY"`
}

// PistolConfig contains the pickup weapon's configuration.
type PistolConfig struct {
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	Gravity     float64 `yaml:"gravity"`
	ShotYOffset float64 `yaml:"shotYOffset"`
}

// BulletConfig contains the projectile's configuration.
type BulletConfig struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	Speed         float64 `yaml:"speed"`
	DespawnMargin float64 `yaml:"despawnMargin"` // Distance past the arena edges before a bullet is removed
}

// NetConfig contains client/server timing.
type NetConfig struct {
	TickRate          int     `yaml:"tickRate"`          // Server ticks per second
	PingInterval      float64 `yaml:"pingInterval"`      // Seconds of simulation between pings
	MinSendInterval   float64 `yaml:"minSendInterval"`   // Unchanged inputs are not resent more often than this
	SnapshotRetention int     `yaml:"snapshotRetention"` // Server snapshots kept for retransmission
	Port              uint    `yaml:"port"`
}

// Tuning groups every section so it can be loaded or overridden together.
type Tuning struct {
	Physics PhysicsConfig `yaml:"physics"`
	Fighter FighterConfig `yaml:"fighter"`
	Pistol  PistolConfig  `yaml:"pistol"`
	Bullet  BulletConfig  `yaml:"bullet"`
	Net     NetConfig     `yaml:"net"`
}

var Physics PhysicsConfig
var Fighter FighterConfig
var Pistol PistolConfig
var Bullet BulletConfig
var Net NetConfig

func init() {
	Physics = PhysicsConfig{
		MinGap:            0.05,
		MaxCollisionLoops: 100,
	}

	Fighter = FighterConfig{
		Width:  55,
		Height: 80,

		VelocityXMax:      800,
		CoastAcceleration: 1100,
		RunAcceleration:   1500,
		SkidAcceleration:  3000,
		JumpVelocity:      -1200,
		Gravity:           3000,
		SlideDrag:         1500, // Half of gravity

		JumpCooldown:    0.3,
		AttackCooldown:  0.5,
		AttackDuration:  0.3,
		PunchWindow:     0.05,
		StunDuration:    0.5,
		StunCooldown:    1.0,
		WieldCooldown:   1.0,
		InitialCooldown: 5,

		PunchOffsetX: 8,
		PunchOffsetY: 34,
		PunchWidth:   96,
		PunchHeight:  40,

		PistolOffsetX: 3,
		PistolOffsetY: 30,
	}

	Pistol = PistolConfig{
		Width:       33,
		Height:      18,
		Gravity:     1000,
		ShotYOffset: 0,
	}

	Bullet = BulletConfig{
		Width:         20,
		Height:        13,
		Speed:         3000,
		DespawnMargin: 500,
	}

	Net = NetConfig{
		TickRate:          60,
		PingInterval:      1.0,
		MinSendInterval:   0.012,
		SnapshotRetention: 4096,
		Port:              7373,
	}
}

// Current returns the active tuning.
func Current() Tuning {
	return Tuning{
		Physics: Physics,
		Fighter: Fighter,
		Pistol:  Pistol,
		Bullet:  Bullet,
		Net:     Net,
	}
}

// Use makes t the active tuning.
func Use(t Tuning) {
	Physics = t.Physics
	Fighter = t.Fighter
	Pistol = t.Pistol
	Bullet = t.Bullet
	Net = t.Net
}
