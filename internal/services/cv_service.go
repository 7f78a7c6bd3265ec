package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"
	"github.com/sirupsen/logrus"

	"github.com/ventureai/backend/internal/providers/llm"
)

const maxCVQuestions = 5

// CVService turns an uploaded CV into personalized interview questions.
// Every step fails soft: a CV that cannot be read or a gateway outage yields
// zero questions, never an error, so session creation always succeeds.
type CVService struct {
	gw        CloudGateway
	uploadDir string
	log       *logrus.Logger
}

func NewCVService(gw CloudGateway, uploadDir string, log *logrus.Logger) *CVService {
	return &CVService{gw: gw, uploadDir: uploadDir, log: log}
}

// SaveUpload writes the raw CV bytes to the upload directory and returns the
// stored path.
func (s *CVService) SaveUpload(filename string, data []byte) (string, error) {
	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(s.uploadDir, fmt.Sprintf("%d_%s", time.Now().Unix(), filepath.Base(filename)))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// GenerateQuestions extracts text from the CV at path and asks the model for
// up to 5 tailored questions.
func (s *CVService) GenerateQuestions(ctx context.Context, cvPath string) []string {
	text := s.extractText(cvPath)
	if text == "" {
		return nil
	}

	raw, err := s.gw.GenerateText(ctx, cvQuestionsPrompt(text), llm.Options{
		SystemInstruction: cvQuestionsSystemInstruction,
		Temperature:       0.8,
	})
	if err != nil {
		s.log.WithError(err).Warn("cv question generation unavailable")
		return nil
	}

	qs := parseQuestions(raw)
	if len(qs) > maxCVQuestions {
		qs = qs[:maxCVQuestions]
	}
	return qs
}

func (s *CVService) extractText(path string) string {
	var text string
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		f, r, err := pdf.Open(path)
		if err != nil {
			s.log.WithError(err).WithField("path", path).Warn("cv pdf unreadable")
			return ""
		}
		defer f.Close()

		plain, err := r.GetPlainText()
		if err != nil {
			return ""
		}
		var sb strings.Builder
		buf := make([]byte, 4096)
		for {
			n, rerr := plain.Read(buf)
			sb.Write(buf[:n])
			if rerr != nil {
				break
			}
		}
		text = sb.String()
	} else {
		data, err := os.ReadFile(path)
		if err != nil {
			s.log.WithError(err).WithField("path", path).Warn("cv unreadable")
			return ""
		}
		text = string(data)
	}
	return cleanCVText(text)
}

var (
	multiNewline = regexp.MustCompile(`\n+`)
	multiSpace   = regexp.MustCompile(` +`)
)

func cleanCVText(text string) string {
	text = strings.NewReplacer("\x0c", " ", "\t", " ").Replace(text)
	text = multiNewline.ReplaceAllString(text, "\n")
	text = multiSpace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

var quotedQuestion = regexp.MustCompile(`"([^"]+)"`)

// parseQuestions pulls question strings out of a free-form model response:
// quoted strings first, else lines ending in a question mark.
func parseQuestions(raw string) []string {
	var out []string
	for _, m := range quotedQuestion.FindAllStringSubmatch(raw, -1) {
		if q := strings.TrimSpace(m[1]); q != "" {
			out = append(out, q)
		}
	}
	if len(out) > 0 {
		return out
	}
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line != "" && strings.HasSuffix(line, "?") {
			out = append(out, line)
		}
	}
	return out
}
