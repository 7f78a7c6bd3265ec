package services

import (
	"fmt"
	"strings"
)

const sentimentSystemInstruction = `You are an expert sentiment analyzer specialized in venture capital and startup pitches.
Provide detailed, nuanced analysis focusing on confidence, knowledge depth, and pitch effectiveness.`

func sentimentPrompt(text string) string {
	return fmt.Sprintf(`Analyze the sentiment and qualities of this venture capital interview response:

"%s"

Return a JSON object with the following structure:
{
  "score": [number between -1 and 1],
  "magnitude": [number between 0 and 1],
  "sentiment": [one of "positive", "neutral", "negative"],
  "explanation": [brief explanation of your analysis]
}

Respond with ONLY the JSON object, no other text.`, text)
}

func nextQuestionPrompt(previousResponses, remaining []string) string {
	return fmt.Sprintf(`Based on the candidate's previous responses:
%s

Which of these remaining questions would be most valuable to ask next?
Options: %s

Return only the question text.`, strings.Join(previousResponses, " "), strings.Join(remaining, " | "))
}

const feedbackSystemInstruction = `You are an expert venture capital interviewer with 15+ years of experience evaluating startups and founders.
Your feedback is insightful, actionable, and balanced, highlighting both strengths and areas for improvement.
Focus on both content (business understanding, market knowledge) and delivery (confidence, clarity).`

// Few-shot examples carried into every feedback prompt so the model scores
// against concrete strong and weak answers.
const feedbackExamples = `Example 1:
Question: "How do you plan to acquire customers?"
Response: "We'll use social media and maybe some ads. People seem to like our product so far."
Expert Feedback: This response lacks specificity and data. A stronger answer would include: target CAC, specific channels with proven traction, metrics from existing acquisition efforts, and a clear understanding of the customer journey.

Example 2:
Question: "What's your total addressable market?"
Response: "Our TAM is $4.2B based on industry reports from Gartner and our analysis of the 340,000 SMBs that fit our ideal customer profile. We've validated demand with a 12% conversion rate in our initial pilot with 200 businesses."
Expert Feedback: Excellent response with specific market size supported by credible sources and early validation metrics. The candidate demonstrates both market research and the ability to convert that potential into actual customers.`

func feedbackPrompt(transcript string, detailed bool) string {
	detailLevel := "concise"
	if detailed {
		detailLevel = "comprehensive"
	}
	return fmt.Sprintf(`Review this venture capital interview transcript and provide %s feedback:

%s

Based on similar interviews, here are examples of strong and weak responses with expert feedback:
%s

Provide your feedback in the following format:

OVERALL ASSESSMENT:
[1-2 paragraphs summarizing the candidate's overall performance]

STRENGTHS:
- [Key strength 1]
- [Key strength 2]
- [Key strength 3]

AREAS FOR IMPROVEMENT:
- [Improvement area 1]
- [Improvement area 2]
- [Improvement area 3]

ACTIONABLE ADVICE:
[3-5 specific recommendations to improve pitch effectiveness]`, detailLevel, transcript, feedbackExamples)
}

const cvQuestionsSystemInstruction = `You are an expert venture capital interviewer who specializes in identifying founders' strengths and weaknesses.
Your questions are tailored to the candidate's background, probing for both domain expertise and entrepreneurial mindset.
Focus on the candidate's ability to execute, their market understanding, and their vision.`

func cvQuestionsPrompt(cvText string) string {
	return fmt.Sprintf(`Based on this resume/CV text, generate 5 personalized venture capital interview questions:

%s

Each question should follow this pattern:
1. Be specific to the candidate's background
2. Probe for both knowledge and strategic thinking
3. Require concrete examples or data

Format each question as a simple string in a list, without explanations or numbering.`, cvText)
}
