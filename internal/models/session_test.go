package models

import (
	"testing"
	"time"
)

func TestLabelForThresholds(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{1.0, "positive"},
		{0.25, "positive"},
		{0.24, "neutral"},
		{0.0, "neutral"},
		{-0.24, "neutral"},
		{-0.25, "negative"},
		{-1.0, "negative"},
	}
	for _, tc := range cases {
		if got := LabelFor(tc.score); got != tc.want {
			t.Errorf("LabelFor(%v): expected %s, got %s", tc.score, tc.want, got)
		}
	}
}

func TestCloneIsDeep(t *testing.T) {
	orig := &Session{
		SessionID:   "session_1",
		CreatedAt:   time.Now().UTC(),
		Turns:       []Turn{{Speaker: SpeakerInterviewer, Text: "q1"}},
		Questions:   []Question{{Text: "q1", Origin: OriginBank}},
		CVQuestions: []string{"cv1"},
	}

	cp := orig.Clone()
	cp.Turns[0].Text = "mutated"
	cp.Turns = append(cp.Turns, Turn{Speaker: SpeakerCandidate, Text: "a1"})
	cp.CVQuestions[0] = "mutated"

	if orig.Turns[0].Text != "q1" {
		t.Fatal("clone shares turn backing array")
	}
	if len(orig.Turns) != 1 {
		t.Fatal("clone append leaked into original")
	}
	if orig.CVQuestions[0] != "cv1" {
		t.Fatal("clone shares cv question slice")
	}
}
