package achievement

import "testing"

func TestSatisfiedStreakUsesLongestStreak(t *testing.T) {
	def := Definition{ID: "streak_7", Category: CategoryStreak, Requirement: 7}

	// A broken streak keeps the achievement earned through its high-water mark.
	if !def.Satisfied(Stats{LongestStreak: 7, TotalChallenges: 0}) {
		t.Error("expected streak_7 satisfied at longest streak 7")
	}
	if def.Satisfied(Stats{LongestStreak: 6, TotalChallenges: 100}) {
		t.Error("challenge count must not satisfy a streak achievement")
	}
}

func TestSatisfiedChallenges(t *testing.T) {
	def := Definition{ID: "challenges_25", Category: CategoryChallenges, Requirement: 25}

	if !def.Satisfied(Stats{TotalChallenges: 25}) {
		t.Error("expected challenges_25 satisfied at exactly 25 completions")
	}
	if def.Satisfied(Stats{TotalChallenges: 24, LongestStreak: 100}) {
		t.Error("streak length must not satisfy a challenge-count achievement")
	}
}

func TestNewlySatisfiedSkipsUnlocked(t *testing.T) {
	stats := Stats{LongestStreak: 7, TotalChallenges: 5}
	unlocked := map[string]bool{"streak_3": true, "challenges_5": true}

	got := NewlySatisfied(stats, unlocked)

	if len(got) != 1 {
		t.Fatalf("expected exactly one new unlock, got %d", len(got))
	}
	if got[0].ID != "streak_7" {
		t.Errorf("expected streak_7, got %s", got[0].ID)
	}
}

func TestNewlySatisfiedIdempotent(t *testing.T) {
	stats := Stats{LongestStreak: 30, TotalChallenges: 50}

	unlocked := map[string]bool{}
	first := NewlySatisfied(stats, unlocked)
	for _, d := range first {
		unlocked[d.ID] = true
	}

	if again := NewlySatisfied(stats, unlocked); len(again) != 0 {
		t.Errorf("second evaluation with the same stats unlocked %d more", len(again))
	}
}

func TestCatalogIDsUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, d := range Catalog {
		if seen[d.ID] {
			t.Errorf("duplicate catalog id %s", d.ID)
		}
		seen[d.ID] = true

		if d.Requirement <= 0 {
			t.Errorf("catalog entry %s has non-positive requirement", d.ID)
		}
	}
}
