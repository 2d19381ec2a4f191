package ai

import (
	"encoding/json"
	"fmt"
)

// maxPromptRunes bounds the article text sent to the model.
const maxPromptRunes = 4000

func BuildPrompt(text string) (string, string, error) {
	r := []rune(text)
	if len(r) > maxPromptRunes {
		r = r[:maxPromptRunes]
	}

	payload, err := json.Marshal(string(r))
	if err != nil {
		return "", "", fmt.Errorf("failed to serialize prompt text: %w", err)
	}

	systemPrompt := "You extract organisation names from Indian business news and tenders. Return only JSON."

	userPrompt := fmt.Sprintf(`Input text (JSON string):
%s

Rules:
- List companies, PSUs, ministries and other organisations named in the text.
- Use the name exactly as written, including suffixes such as Ltd or Corp.
- Do not invent names that are not in the text.
- Output JSON only, with this schema:
  {"organizations":["..."]}
- If none are named, return {"organizations":[]}.
`, string(payload))

	return systemPrompt, userPrompt, nil
}
