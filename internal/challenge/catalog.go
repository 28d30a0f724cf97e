package challenge

import "github.com/google/uuid"

// Energy levels a challenge can demand.
const (
	EnergyLow    = "LOW"
	EnergyMedium = "MEDIUM"
	EnergyHigh   = "HIGH"
)

// Definition is one entry of the built-in challenge library the app draws
// from. Pillar is the wellness goal category the challenge serves.
type Definition struct {
	ID              uuid.UUID `json:"id" db:"id"`
	Pillar          string    `json:"pillar" db:"pillar"`
	EnergyLevel     string    `json:"energy_level" db:"energy_level"`
	ChallengeNumber int       `json:"challenge_number" db:"challenge_number"`
	Title           string    `json:"title" db:"title"`
	Duration        string    `json:"duration" db:"duration"`
	Description     string    `json:"description" db:"description"`
	Steps           *string   `json:"steps" db:"steps"`
	Emoji           string    `json:"emoji" db:"emoji"`
}

// CatalogStats summarizes the challenge library.
type CatalogStats struct {
	TotalChallenges int            `json:"total_challenges"`
	ByPillar        map[string]int `json:"by_pillar"`
	ByEnergyLevel   map[string]int `json:"by_energy_level"`
}

// PillarEmoji maps each pillar to its display emoji; unknown pillars fall
// back to the meditation emoji.
var PillarEmoji = map[string]string{
	"Stress Reduction":  "🌬️",
	"Increased Energy":  "⚡",
	"Better Sleep":      "😴",
	"Physical Fitness":  "💪",
	"Healthy Eating":    "🍏",
	"Social Connection": "🤝",
}

func EmojiForPillar(pillar string) string {
	if e, ok := PillarEmoji[pillar]; ok {
		return e
	}
	return "🧘"
}

func steps(s string) *string { return &s }

// Catalog is the built-in challenge library seeded into
// challenge_definitions at startup. (pillar, challenge_number) identifies an
// entry across releases, so reseeding updates text in place.
var Catalog = []Definition{
	{Pillar: "Stress Reduction", EnergyLevel: EnergyLow, ChallengeNumber: 1, Title: "Box Breathing Break", Duration: "3 min",
		Description: "Slow everything down with four counts in, four held, four out, four held.",
		Steps:       steps("Sit upright|Inhale for 4 counts|Hold for 4|Exhale for 4|Hold for 4|Repeat 6 times")},
	{Pillar: "Stress Reduction", EnergyLevel: EnergyMedium, ChallengeNumber: 2, Title: "Desk Declutter Sprint", Duration: "10 min",
		Description: "Clear your workspace down to the essentials. A tidy desk is one less open loop.",
		Steps:       steps("Set a 10 minute timer|Remove everything that is not daily-use|Wipe the surface|File or bin the pile")},
	{Pillar: "Stress Reduction", EnergyLevel: EnergyHigh, ChallengeNumber: 3, Title: "Worry Walk", Duration: "20 min",
		Description: "Take your biggest worry on a brisk walk and leave part of it outside."},

	{Pillar: "Increased Energy", EnergyLevel: EnergyLow, ChallengeNumber: 1, Title: "Sunlight First", Duration: "5 min",
		Description: "Get daylight on your face within an hour of waking to anchor your body clock."},
	{Pillar: "Increased Energy", EnergyLevel: EnergyMedium, ChallengeNumber: 2, Title: "Stair Sprint", Duration: "5 min",
		Description: "Swap the elevator for stairs, twice, at a pace that makes you notice."},
	{Pillar: "Increased Energy", EnergyLevel: EnergyHigh, ChallengeNumber: 3, Title: "Lunchtime Power Circuit", Duration: "15 min",
		Description: "Squats, push-ups and jumping jacks back to back. No equipment, no excuses.",
		Steps:       steps("15 squats|10 push-ups|20 jumping jacks|Rest 60s|Repeat 3 rounds")},

	{Pillar: "Better Sleep", EnergyLevel: EnergyLow, ChallengeNumber: 1, Title: "Screen Sunset", Duration: "30 min",
		Description: "Put every screen away 30 minutes before bed. Paper and people are allowed."},
	{Pillar: "Better Sleep", EnergyLevel: EnergyMedium, ChallengeNumber: 2, Title: "Wind-Down Ritual", Duration: "15 min",
		Description: "Same three steps, same order, every night. Teach your body the off switch.",
		Steps:       steps("Dim the lights|Stretch for 5 minutes|Write tomorrow's top task")},
	{Pillar: "Better Sleep", EnergyLevel: EnergyHigh, ChallengeNumber: 3, Title: "Caffeine Curfew", Duration: "All day",
		Description: "No caffeine after 2pm today. Your 11pm self will thank your 2pm self."},

	{Pillar: "Physical Fitness", EnergyLevel: EnergyLow, ChallengeNumber: 1, Title: "Posture Reset Hour", Duration: "1 hour",
		Description: "Once every hour this afternoon: shoulders back, chin level, feet flat."},
	{Pillar: "Physical Fitness", EnergyLevel: EnergyMedium, ChallengeNumber: 2, Title: "Walking Meeting", Duration: "30 min",
		Description: "Take one call or 1:1 on foot instead of at your desk."},
	{Pillar: "Physical Fitness", EnergyLevel: EnergyHigh, ChallengeNumber: 3, Title: "Ten Thousand Steps", Duration: "All day",
		Description: "Hit 10,000 steps before you sit down for dinner."},

	{Pillar: "Healthy Eating", EnergyLevel: EnergyLow, ChallengeNumber: 1, Title: "Water Before Coffee", Duration: "2 min",
		Description: "Drink a full glass of water before your first coffee of the day."},
	{Pillar: "Healthy Eating", EnergyLevel: EnergyMedium, ChallengeNumber: 2, Title: "Color On The Plate", Duration: "Lunch",
		Description: "Add at least three colors of vegetables to one meal today."},
	{Pillar: "Healthy Eating", EnergyLevel: EnergyHigh, ChallengeNumber: 3, Title: "Cook It Yourself", Duration: "45 min",
		Description: "Cook dinner from raw ingredients tonight. Takeout apps stay closed."},

	{Pillar: "Social Connection", EnergyLevel: EnergyLow, ChallengeNumber: 1, Title: "One Real Thank-You", Duration: "5 min",
		Description: "Send one colleague a specific, genuine thank-you message."},
	{Pillar: "Social Connection", EnergyLevel: EnergyMedium, ChallengeNumber: 2, Title: "Coffee With A Stranger", Duration: "20 min",
		Description: "Invite someone you rarely talk to for a coffee break."},
	{Pillar: "Social Connection", EnergyLevel: EnergyHigh, ChallengeNumber: 3, Title: "Reconnect Call", Duration: "30 min",
		Description: "Call, not text, a friend or family member you have not spoken to in a month."},
}

func init() {
	for i := range Catalog {
		if Catalog[i].Emoji == "" {
			Catalog[i].Emoji = EmojiForPillar(Catalog[i].Pillar)
		}
	}
}
