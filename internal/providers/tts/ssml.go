package tts

import "strings"

// Business terms emphasized so synthesized questions land the way an
// interviewer would deliver them.
var emphasizedTerms = []string{
	"ROI", "CAC", "LTV", "market fit", "valuation", "runway", "burn rate",
}

var xmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// formatSSML wraps plain text in SSML with pause and emphasis markup suited
// to spoken interview questions.
func formatSSML(text string) string {
	for _, w := range []string{"asterisk", "*"} {
		text = strings.ReplaceAll(text, w, "")
	}

	// SSML is XML; raw markup characters in the text would invalidate the
	// whole document.
	text = xmlEscaper.Replace(text)

	text = strings.ReplaceAll(text, "\n\n", `<break time="750ms"/>`)
	text = strings.ReplaceAll(text, "\n", `<break time="500ms"/>`)

	if strings.HasSuffix(text, "?") {
		text = strings.TrimSuffix(text, "?") + `<break time="200ms"/>?`
	}

	for _, term := range emphasizedTerms {
		idx := strings.Index(strings.ToLower(text), strings.ToLower(term))
		if idx < 0 {
			continue
		}
		actual := text[idx : idx+len(term)]
		text = strings.ReplaceAll(text, actual, `<emphasis level="moderate">`+actual+`</emphasis>`)
	}

	return "<speak>" + text + "</speak>"
}
