package service

import "fmt"

func questionPrompt(topic, difficulty string) string {
	return fmt.Sprintf("Generate ONE technical interview question for the topic: %s. "+
		"Difficulty level: %s. Do NOT include answers. Only give the question.", topic, difficulty)
}

func evaluateTextPrompt(question, answer string) string {
	return "Evaluate the interview answer.\n" +
		"Question: " + question + "\n" +
		"Answer: " + answer + "\n\n" +
		"Return ONLY valid JSON with no explanation:\n" +
		`{ "score": number(1-10), "feedback": "text" }`
}

func evaluateVoicePrompt(question, transcript string) string {
	return "You are an AI technical interview evaluator.\n\n" +
		"Question:\n" + question + "\n\n" +
		"Spoken Answer Transcript:\n" + transcript + "\n\n" +
		"IMPORTANT RULES:\n" +
		"- Evaluate relevance to question.\n" +
		"- Evaluate grammar.\n" +
		"- Evaluate fluency.\n" +
		"- Evaluate keyword usage.\n" +
		"- Evaluate clarity.\n" +
		"- Every score is an integer from 0 to 10.\n" +
		"- If answer is unrelated, contentScore must be 0.\n\n" +
		"Return ONLY valid JSON. No explanation. No markdown.\n" +
		"{\n" +
		`  "contentScore": number,` + "\n" +
		`  "grammarScore": number,` + "\n" +
		`  "fluencyScore": number,` + "\n" +
		`  "keywordScore": number,` + "\n" +
		`  "clarityScore": number,` + "\n" +
		`  "feedback": "text"` + "\n" +
		"}"
}

func extractSkillsPrompt(text string) string {
	return "Extract only technical skills from the text below.\n" +
		"Return ONLY valid raw JSON. Do not include explanations.\n" +
		"Format strictly as:\n" +
		`{"skills": ["skill1", "skill2"]}` + "\n\n" +
		text
}

func modelAnswerPrompt(question string) string {
	return "You are a senior technical interviewer.\n\n" +
		"Provide a high-quality, structured, ideal answer for the following interview question.\n\n" +
		"The answer must:\n" +
		"- Be technically accurate\n" +
		"- Be well structured\n" +
		"- Include explanation\n" +
		"- Include example if applicable\n" +
		"- Be concise but complete\n\n" +
		"Question:\n" + question + "\n\n" +
		"Return only the answer. No extra explanation."
}
