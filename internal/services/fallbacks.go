package services

import "github.com/ventureai/backend/internal/models"

// Fixed degraded-mode payloads. When an upstream service is down the
// interview keeps moving on these instead of surfacing an error; clients see
// the same shapes either way.

// NeutralSentiment is the substitute when sentiment scoring is unavailable.
func NeutralSentiment() models.Sentiment {
	return models.Sentiment{
		Score:       0.0,
		Magnitude:   0.0,
		Label:       "neutral",
		Explanation: "Sentiment analysis unavailable",
	}
}

// FallbackTranscript stands in when speech recognition fails on a recorded
// answer.
const FallbackTranscript = "Error transcribing audio. Please try again."

// FollowUpThreshold triggers one scripted follow-up prompt when a response
// scores below it.
const FollowUpThreshold = -0.3

// FollowUpText is the scripted follow-up. It is not drawn from the question
// bank and does not consume a bank question slot.
const FollowUpText = "I sense some hesitation in that answer. Could you walk me through the specific challenges you're facing there and how you plan to address them?"

// DefaultFeedback is the canned end-of-interview feedback returned verbatim
// when feedback synthesis is unavailable.
const DefaultFeedback = `# VC Interview Feedback (Default)

## Overall Assessment: 7/10

You've demonstrated a solid understanding of your business and market. Your responses were clear and reflected good preparation for venture capital discussions.

## Key Strengths:
- Clear articulation of your business model and value proposition
- Good understanding of your target market and customer needs
- Realistic assessment of growth potential and resource requirements

## Areas for Improvement:
- Provide more specific metrics and quantifiable data points to support your claims
- Develop a more detailed competitive analysis and differentiation strategy
- Be more specific about your fundraising goals and use of capital

## Investor Appeal:
Your pitch is compelling but would benefit from more concrete examples of traction and market validation. Consider incorporating specific customer testimonials or case studies.

## Business Understanding:
You demonstrate good knowledge of your business fundamentals. Continue to deepen your market analysis and financial projections to strengthen your overall presentation.`
