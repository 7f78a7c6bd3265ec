package models

import "time"

// Speaker roles recorded in a session transcript.
const (
	SpeakerInterviewer = "interviewer"
	SpeakerCandidate   = "candidate"
	SpeakerSystem      = "system"
)

// Question origins.
const (
	OriginCV   = "cv"
	OriginBank = "bank"
)

// Turn is one recorded utterance within a session. Immutable once appended.
type Turn struct {
	Speaker   string    `json:"speaker"`
	Text      string    `json:"text"`
	AudioFile string    `json:"audio_file,omitempty"` // object name relative to the session dir
	Timestamp time.Time `json:"timestamp"`
}

// Question is a single interview question, tagged with its origin.
type Question struct {
	Text   string `json:"text"`
	Origin string `json:"origin"` // "cv" | "bank"
}

// Response is one candidate answer keyed to the question it addresses.
type Response struct {
	QuestionID string    `json:"question_id"`
	Text       string    `json:"text"`
	AudioFile  string    `json:"audio_file,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// Session is one interview attempt: its transcript, delivered questions,
// recorded responses, and (once generated) feedback. The transcript is
// append-only and the question count never decreases.
type Session struct {
	SessionID string     `json:"session_id"`
	CVPath    string     `json:"cv_path,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	Turns     []Turn     `json:"transcript"`
	Questions []Question `json:"questions"`
	Responses []Response `json:"responses"`

	// CVQuestions are generated once at creation and delivered before any
	// bank question.
	CVQuestions []string `json:"cv_questions,omitempty"`

	// Feedback is set once per feedback request; regeneration overwrites.
	Feedback string `json:"feedback,omitempty"`

	TTSHistory []AudioRecord `json:"tts_history,omitempty"`
	STTHistory []AudioRecord `json:"stt_history,omitempty"`
}

// Clone returns a deep copy so callers cannot mutate store-owned state.
func (s *Session) Clone() *Session {
	cp := *s
	cp.Turns = append([]Turn(nil), s.Turns...)
	cp.Questions = append([]Question(nil), s.Questions...)
	cp.Responses = append([]Response(nil), s.Responses...)
	cp.CVQuestions = append([]string(nil), s.CVQuestions...)
	cp.TTSHistory = append([]AudioRecord(nil), s.TTSHistory...)
	cp.STTHistory = append([]AudioRecord(nil), s.STTHistory...)
	return &cp
}

// AudioRecord links a stored audio artifact to the text it carries.
type AudioRecord struct {
	Text      string    `json:"text"`
	AudioFile string    `json:"audio_file"`
	Timestamp time.Time `json:"timestamp"`
}

// Sentiment is the per-response scoring result. Score runs from -1.0 (fully
// negative) to +1.0 (fully positive).
type Sentiment struct {
	Score       float64 `json:"score"`
	Magnitude   float64 `json:"magnitude"`
	Label       string  `json:"sentiment"` // "positive" | "neutral" | "negative"
	Explanation string  `json:"explanation,omitempty"`
}

// Label thresholds for the categorical sentiment value.
const (
	positiveThreshold = 0.25
	negativeThreshold = -0.25
)

// LabelFor maps a numeric score onto the categorical label.
func LabelFor(score float64) string {
	switch {
	case score >= positiveThreshold:
		return "positive"
	case score <= negativeThreshold:
		return "negative"
	default:
		return "neutral"
	}
}

// Feedback is the end-of-interview synthesis over the full transcript.
type Feedback struct {
	SessionID string `json:"session_id"`
	Summary   string `json:"summary"`
	Detailed  string `json:"detailed_feedback,omitempty"`
}
