package questions

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	b := Load(filepath.Join(t.TempDir(), "nope.csv"), testLogger())
	if b.Len() != len(defaultEntries) {
		t.Fatalf("expected %d default questions, got %d", len(defaultEntries), b.Len())
	}
	if b.Questions()[0] != "Can you explain your business model?" {
		t.Fatalf("unexpected first default question: %q", b.Questions()[0])
	}
}

func TestLoadParsesCSVWithHeaderDetection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.csv")
	content := "Expected Response,Question\n" +
		"Numbers back the claim.,What is your current monthly burn?\n" +
		"Named customers or pilots.,Who are your first ten customers?\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	b := Load(path, testLogger())
	if b.Len() != 2 {
		t.Fatalf("expected 2 questions, got %d", b.Len())
	}
	if got := b.Questions()[0]; got != "What is your current monthly burn?" {
		t.Fatalf("column detection failed, got %q", got)
	}
	if got := b.Expected("Who are your first ten customers?"); got != "Named customers or pilots." {
		t.Fatalf("expected response lookup failed, got %q", got)
	}
}

func TestLoadSkipsBlankRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.csv")
	content := "Question,Expected Response\n" +
		"What is your runway?,At least twelve months or a plan.\n" +
		",\n" +
		"  ,ignored\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	b := Load(path, testLogger())
	if b.Len() != 1 {
		t.Fatalf("expected 1 question, got %d", b.Len())
	}
}

func TestLoadEmptyFileFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.csv")
	if err := os.WriteFile(path, []byte("Question,Expected Response\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	b := Load(path, testLogger())
	if b.Len() != len(defaultEntries) {
		t.Fatalf("expected defaults for empty file, got %d questions", b.Len())
	}
}

func TestExpectedUnknownQuestionIsEmpty(t *testing.T) {
	b := Load("missing.csv", testLogger())
	if got := b.Expected("Not in the bank?"); got != "" {
		t.Fatalf("expected empty criteria, got %q", got)
	}
}
