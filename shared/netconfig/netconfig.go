// Package netconfig defines lightweight types shared between client and server
// for network serialization. It has no dependencies beyond the standard
// library so the dedicated server binary stays headless.
package netconfig

// ActionID represents a logical game action.
type ActionID int

const (
	ActionNone ActionID = iota
	ActionMoveLeft
	ActionMoveRight
	ActionJump
	ActionAttack
	ActionReset
	ActionCount // Must be last - used for bitmask sizing
)

var actionNames = map[ActionID]string{
	ActionNone:      "none",
	ActionMoveLeft:  "left",
	ActionMoveRight: "right",
	ActionJump:      "jump",
	ActionAttack:    "attack",
	ActionReset:     "reset",
}

func (a ActionID) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// Movement is a fighter's locomotion state.
type Movement int

const (
	Idle Movement = iota
	Running
	Jumping
	Landing
	Skidding
	Wallslide
	WallslideJump
)

var movementNames = map[Movement]string{
	Idle:          "idle",
	Running:       "running",
	Jumping:       "jumping",
	Landing:       "landing",
	Skidding:      "skidding",
	Wallslide:     "wallslide",
	WallslideJump: "wallslidejump",
}

func (m Movement) String() string {
	if name, ok := movementNames[m]; ok {
		return name
	}
	return "unknown"
}

// IsAerial reports whether the state can only be left through a collision
// or a jump.
func (m Movement) IsAerial() bool {
	return m == Jumping || m == Wallslide || m == WallslideJump
}

// Action is a fighter's combat state, tracked independently of Movement.
type Action int

const (
	ActionStateNone Action = iota
	Punch
	Stunned
	Dying
)

var fighterActionNames = map[Action]string{
	ActionStateNone: "none",
	Punch:           "punch",
	Stunned:         "stunned",
	Dying:           "dying",
}

func (a Action) String() string {
	if name, ok := fighterActionNames[a]; ok {
		return name
	}
	return "unknown"
}

// Side names a face of an axis-aligned box.
type Side int

const (
	SideLeft Side = iota
	SideRight
	SideTop
	SideBottom
	SideCount
)

var sideNames = [SideCount]string{"left", "right", "top", "bottom"}

func (s Side) String() string {
	if s < 0 || s >= SideCount {
		return "unknown"
	}
	return sideNames[s]
}

// Opposite returns the facing side on the other body of a contact.
func (s Side) Opposite() Side {
	switch s {
	case SideLeft:
		return SideRight
	case SideRight:
		return SideLeft
	case SideTop:
		return SideBottom
	}
	return SideTop
}

// Horizontal reports whether the side's normal lies on the X axis.
func (s Side) Horizontal() bool {
	return s == SideLeft || s == SideRight
}
