package config

// BotDifficulty affects reaction time and decision quality
type BotDifficulty int

const (
	BotDifficultyEasy BotDifficulty = iota
	BotDifficultyNormal
	BotDifficultyHard
)

// BotDifficultyConfig holds tuning values for bot behavior at a specific difficulty
type BotDifficultyConfig struct {
	ReactionDelay int     // Ticks between decisions
	AttackRange   float64 // Horizontal gap at which the bot swings
	PistolRange   float64 // Horizontal gap at which an armed bot fires
	JumpChance    int     // Out of 100, per decision, when not blocked
}

// BotConfigData holds all bot-related configuration
type BotConfigData struct {
	Difficulties map[BotDifficulty]BotDifficultyConfig
}

// Bot holds bot AI configuration
var Bot BotConfigData

func init() {
	Bot = BotConfigData{
		Difficulties: map[BotDifficulty]BotDifficultyConfig{
			BotDifficultyEasy: {
				ReactionDelay: 30, // 0.5 second at 60 ticks/s
				AttackRange:   40.0,
				PistolRange:   300.0,
				JumpChance:    2,
			},
			BotDifficultyNormal: {
				ReactionDelay: 15,
				AttackRange:   60.0,
				PistolRange:   600.0,
				JumpChance:    5,
			},
			BotDifficultyHard: {
				ReactionDelay: 5,
				AttackRange:   80.0,
				PistolRange:   1200.0,
				JumpChance:    10,
			},
		},
	}
}
