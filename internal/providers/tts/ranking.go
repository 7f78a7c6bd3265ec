package tts

import "strings"

// Quality tiers in fixed preference order, highest-fidelity conversational
// tier first, generic voices last.
var tierOrder = []string{"Chirp3-HD", "Chirp-HD", "Studio", "Neural2", "Wavenet", "Standard"}

// Named voices preferred within the top available tier.
var goldenVoices = []string{"en-US-Chirp3-HD-Aoede", "en-US-Chirp-HD-O", "en-US-Studio-O"}

func tierOf(name string) string {
	for _, t := range tierOrder[:len(tierOrder)-1] {
		if strings.Contains(name, t) {
			return t
		}
	}
	return "Standard"
}

// Rank orders voice names into tier-preference order, keeping the incoming
// order within a tier.
func Rank(names []string) []Voice {
	byTier := make(map[string][]string, len(tierOrder))
	for _, n := range names {
		t := tierOf(n)
		byTier[t] = append(byTier[t], n)
	}

	out := make([]Voice, 0, len(names))
	for _, t := range tierOrder {
		for _, n := range byTier[t] {
			out = append(out, Voice{Name: n, Tier: t})
		}
	}
	return out
}

// Best picks the voice to use: a golden voice within the top available tier
// when present, else the first voice of that tier. Empty when no voices are
// known.
func Best(names []string) string {
	ranked := Rank(names)
	if len(ranked) == 0 {
		return ""
	}

	topTier := ranked[0].Tier
	for _, g := range goldenVoices {
		if tierOf(g) != topTier {
			continue
		}
		for _, v := range ranked {
			if v.Tier != topTier {
				break
			}
			if v.Name == g {
				return g
			}
		}
	}
	return ranked[0].Name
}
