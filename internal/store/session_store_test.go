package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ventureai/backend/internal/models"
	"github.com/ventureai/backend/internal/utils"
)

func newTestStore(t *testing.T) *SessionStore {
	t.Helper()

	log := logrus.New()
	st, err := NewSessionStore(t.TempDir(), log)
	if err != nil {
		t.Fatalf("NewSessionStore failed: %v", err)
	}
	return st
}

func TestCreateAndGet(t *testing.T) {
	st := newTestStore(t)

	sess, err := st.Create("", []string{"Tell me about your ML work."})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if sess.SessionID == "" {
		t.Fatal("expected non-empty session id")
	}
	if len(sess.Turns) != 0 {
		t.Fatalf("expected empty transcript, got %d turns", len(sess.Turns))
	}

	got, err := st.Get(sess.SessionID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.SessionID != sess.SessionID || len(got.CVQuestions) != 1 {
		t.Fatalf("unexpected session: %+v", got)
	}
}

func TestGetUnknownIsNotFound(t *testing.T) {
	st := newTestStore(t)

	_, err := st.Get("session_nope")
	if !utils.IsCode(err, utils.CodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestTranscriptIsMonotone(t *testing.T) {
	st := newTestStore(t)

	sess, err := st.Create("", nil)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	prev := 0
	for i := 0; i < 5; i++ {
		updated, err := st.AppendTurn(sess.SessionID, models.Turn{
			Speaker:   models.SpeakerCandidate,
			Text:      "answer",
			Timestamp: time.Now().UTC(),
		})
		if err != nil {
			t.Fatalf("AppendTurn failed: %v", err)
		}
		if len(updated.Turns) <= prev {
			t.Fatalf("transcript shrank: %d -> %d", prev, len(updated.Turns))
		}
		prev = len(updated.Turns)
	}
}

func TestRoundTripAfterRestart(t *testing.T) {
	st := newTestStore(t)

	sess, err := st.Create("", nil)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	turns := []models.Turn{
		{Speaker: models.SpeakerInterviewer, Text: "What is your target market?", Timestamp: time.Now().UTC().Truncate(time.Second)},
		{Speaker: models.SpeakerCandidate, Text: "We are a seed-stage fintech", Timestamp: time.Now().UTC().Truncate(time.Second)},
	}
	for _, turn := range turns {
		if _, err := st.AppendTurn(sess.SessionID, turn); err != nil {
			t.Fatalf("AppendTurn failed: %v", err)
		}
	}

	// Simulate a restart by dropping the in-memory copy.
	st.Forget(sess.SessionID)

	got, err := st.Get(sess.SessionID)
	if err != nil {
		t.Fatalf("Get after restart failed: %v", err)
	}
	if len(got.Turns) != len(turns) {
		t.Fatalf("expected %d turns, got %d", len(turns), len(got.Turns))
	}
	for i, turn := range turns {
		if got.Turns[i].Speaker != turn.Speaker || got.Turns[i].Text != turn.Text {
			t.Fatalf("turn %d mismatch: %+v vs %+v", i, got.Turns[i], turn)
		}
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	st := newTestStore(t)

	sess, err := st.Create("", nil)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if !st.Delete(sess.SessionID) {
		t.Fatal("first delete should report success")
	}
	if st.Delete(sess.SessionID) {
		t.Fatal("second delete should report failure")
	}

	if _, err := st.Get(sess.SessionID); !utils.IsCode(err, utils.CodeNotFound) {
		t.Fatalf("expected NOT_FOUND after delete, got %v", err)
	}
}

func TestIDsWithPathSegmentsNeverTouchDisk(t *testing.T) {
	st := newTestStore(t)

	// A file outside the sessions root that a traversal would destroy.
	outside := filepath.Join(filepath.Dir(st.Root()), "precious.txt")
	if err := os.WriteFile(outside, []byte("keep"), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, id := range []string{"..", ".", "", "../..", "a/b", `a\b`, "../precious.txt"} {
		if st.Delete(id) {
			t.Fatalf("Delete(%q) should report no such session", id)
		}
		if _, err := st.Get(id); !utils.IsCode(err, utils.CodeNotFound) {
			t.Fatalf("Get(%q): expected NOT_FOUND, got %v", id, err)
		}
		if _, err := st.Mutate(id, func(*models.Session) error { return nil }); !utils.IsCode(err, utils.CodeNotFound) {
			t.Fatalf("Mutate(%q): expected NOT_FOUND, got %v", id, err)
		}
	}

	if _, err := os.Stat(outside); err != nil {
		t.Fatalf("file outside the sessions root was touched: %v", err)
	}
	if _, err := os.Stat(st.Root()); err != nil {
		t.Fatalf("sessions root was removed: %v", err)
	}
}

func TestDeleteReleasesSessionLock(t *testing.T) {
	st := newTestStore(t)

	sess, _ := st.Create("", nil)
	st.Delete(sess.SessionID)

	st.mu.Lock()
	_, held := st.locks[sess.SessionID]
	st.mu.Unlock()
	if held {
		t.Fatal("lock entry not dropped with the session")
	}
}

func TestListSeesDiskSessions(t *testing.T) {
	st := newTestStore(t)

	a, _ := st.Create("", nil)
	b, _ := st.Create("", nil)
	st.Forget(b.SessionID)

	ids, err := st.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected 2 sessions, got %v", ids)
	}

	seen := map[string]bool{}
	for _, id := range ids {
		seen[id] = true
	}
	if !seen[a.SessionID] || !seen[b.SessionID] {
		t.Fatalf("missing session in list: %v", ids)
	}
}

func TestSetFeedbackOverwrites(t *testing.T) {
	st := newTestStore(t)

	sess, _ := st.Create("", nil)

	if _, err := st.SetFeedback(sess.SessionID, "first"); err != nil {
		t.Fatalf("SetFeedback failed: %v", err)
	}
	updated, err := st.SetFeedback(sess.SessionID, "second")
	if err != nil {
		t.Fatalf("SetFeedback failed: %v", err)
	}
	if updated.Feedback != "second" {
		t.Fatalf("expected feedback overwrite, got %q", updated.Feedback)
	}
}

func TestMutateSerializesConcurrentWriters(t *testing.T) {
	st := newTestStore(t)

	sess, _ := st.Create("", nil)

	const n = 20
	done := make(chan error, n)
	for i := 0; i < n; i++ {
		go func() {
			_, err := st.AppendTurn(sess.SessionID, models.Turn{
				Speaker:   models.SpeakerCandidate,
				Text:      "concurrent",
				Timestamp: time.Now().UTC(),
			})
			done <- err
		}()
	}
	for i := 0; i < n; i++ {
		if err := <-done; err != nil {
			t.Fatalf("concurrent AppendTurn failed: %v", err)
		}
	}

	got, err := st.Get(sess.SessionID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(got.Turns) != n {
		t.Fatalf("expected %d turns after concurrent appends, got %d", n, len(got.Turns))
	}

	// The persisted snapshot must agree with memory.
	st.Forget(sess.SessionID)
	reloaded, err := st.Get(sess.SessionID)
	if err != nil {
		t.Fatalf("Get after forget failed: %v", err)
	}
	if len(reloaded.Turns) != n {
		t.Fatalf("expected %d persisted turns, got %d", n, len(reloaded.Turns))
	}
}
