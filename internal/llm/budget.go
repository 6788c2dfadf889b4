package llm

// charsPerToken is the fixed character-to-token ratio used for pre-flight
// prompt sizing. Four characters per token is a rough but stable heuristic
// for English prose and JSON.
const charsPerToken = 4

// BudgetCheck is the result of a pre-flight token estimate.
type BudgetCheck struct {
	// EstimatedTokens is the heuristic token count for the prompt.
	EstimatedTokens int

	// Fits reports whether the estimate is within the supplied maximum.
	Fits bool

	// Overage is the number of tokens over the maximum, zero when Fits.
	Overage int
}

// EstimateTokens returns the heuristic token count for a string.
func EstimateTokens(s string) int {
	if len(s) == 0 {
		return 0
	}
	return (len(s) + charsPerToken - 1) / charsPerToken
}

// CheckBudget estimates tokens for a system prompt plus user prompt and
// reports whether the sum fits maxTokens. This is advisory only: it never
// blocks a call by itself, callers decide whether to shrink input or
// proceed anyway.
func CheckBudget(systemPrompt, userPrompt string, maxTokens int) BudgetCheck {
	estimated := EstimateTokens(systemPrompt) + EstimateTokens(userPrompt)

	check := BudgetCheck{
		EstimatedTokens: estimated,
		Fits:            estimated <= maxTokens,
	}
	if !check.Fits {
		check.Overage = estimated - maxTokens
	}
	return check
}
