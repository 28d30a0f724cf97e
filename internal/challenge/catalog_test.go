package challenge

import "testing"

func TestCatalogEntriesAreComplete(t *testing.T) {
	if len(Catalog) == 0 {
		t.Fatal("catalog is empty")
	}

	valid := map[string]bool{EnergyLow: true, EnergyMedium: true, EnergyHigh: true}
	for _, d := range Catalog {
		if d.Pillar == "" || d.Title == "" || d.Duration == "" || d.Description == "" {
			t.Errorf("challenge %s/%d has empty required fields", d.Pillar, d.ChallengeNumber)
		}
		if !valid[d.EnergyLevel] {
			t.Errorf("challenge %s/%d has invalid energy level %q", d.Pillar, d.ChallengeNumber, d.EnergyLevel)
		}
		if d.ChallengeNumber < 1 {
			t.Errorf("challenge %s/%d has invalid challenge number", d.Pillar, d.ChallengeNumber)
		}
		if d.Emoji == "" {
			t.Errorf("challenge %s/%d has no emoji after init", d.Pillar, d.ChallengeNumber)
		}
	}
}

func TestCatalogKeysAreUnique(t *testing.T) {
	type key struct {
		pillar string
		number int
	}
	seen := map[key]bool{}
	for _, d := range Catalog {
		k := key{d.Pillar, d.ChallengeNumber}
		if seen[k] {
			t.Errorf("duplicate catalog entry %s/%d", d.Pillar, d.ChallengeNumber)
		}
		seen[k] = true
	}
}

func TestEmojiForPillar(t *testing.T) {
	if got := EmojiForPillar("Better Sleep"); got != "😴" {
		t.Errorf("EmojiForPillar(Better Sleep) = %q", got)
	}
	if got := EmojiForPillar("Unknown Pillar"); got != "🧘" {
		t.Errorf("expected fallback emoji, got %q", got)
	}
}
