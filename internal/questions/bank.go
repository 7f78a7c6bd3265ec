package questions

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Entry is one bank question with the response criteria an interviewer would
// score against.
type Entry struct {
	Question string
	Expected string
}

// Defaults used whenever the CSV source cannot be loaded. Loading never
// fails hard; a broken bank file degrades to these.
var defaultEntries = []Entry{
	{
		Question: "Can you explain your business model?",
		Expected: "Clear explanation of value proposition and revenue generation.",
	},
	{
		Question: "What is your target market?",
		Expected: "Specific demographic or market segment with justification.",
	},
	{
		Question: "How do you plan to scale your business?",
		Expected: "Detailed growth strategy that's realistic and achievable.",
	},
	{
		Question: "What is your customer acquisition strategy?",
		Expected: "Cost-effective marketing and sales approach.",
	},
	{
		Question: "How do you differentiate from competitors?",
		Expected: "Unique value proposition and competitive advantages.",
	},
}

// Bank is the static, ordered set of domain questions.
type Bank struct {
	entries []Entry
}

// Load reads the bank from a CSV file with "Question" and "Expected
// Response" columns, falling back to the built-in set on any failure.
func Load(path string, log *logrus.Logger) *Bank {
	f, err := os.Open(path)
	if err != nil {
		log.WithError(err).WithField("path", path).Warn("question bank unavailable, using defaults")
		return &Bank{entries: defaultEntries}
	}
	defer f.Close()

	entries, err := parse(f)
	if err != nil || len(entries) == 0 {
		log.WithError(err).WithField("path", path).Warn("question bank unreadable, using defaults")
		return &Bank{entries: defaultEntries}
	}

	log.WithFields(logrus.Fields{"path": path, "count": len(entries)}).Info("question bank loaded")
	return &Bank{entries: entries}
}

func parse(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, err
	}

	qCol, eCol := 0, 1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "question":
			qCol = i
		case "expected response", "expected":
			eCol = i
		}
	}

	var entries []Entry
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if qCol >= len(rec) || strings.TrimSpace(rec[qCol]) == "" {
			continue
		}
		e := Entry{Question: strings.TrimSpace(rec[qCol])}
		if eCol < len(rec) {
			e.Expected = strings.TrimSpace(rec[eCol])
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Questions returns the bank question texts in delivery order.
func (b *Bank) Questions() []string {
	out := make([]string, len(b.entries))
	for i, e := range b.entries {
		out[i] = e.Question
	}
	return out
}

// Expected returns the response criteria for a bank question, empty when the
// question is not in the bank.
func (b *Bank) Expected(question string) string {
	for _, e := range b.entries {
		if e.Question == question {
			return e.Expected
		}
	}
	return ""
}

func (b *Bank) Len() int { return len(b.entries) }
