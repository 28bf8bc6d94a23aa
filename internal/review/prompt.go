package review

import "fmt"

// reviewPromptTemplate is the fixed instruction sent to the model. It has a
// single substitution slot for the submitted code.
const reviewPromptTemplate = `You are an advanced software engineer and code reviewer. Carefully check the following code for errors, suggest the correct code, and explain the required changes. Think step by step and be thorough in your review.

Code:
%s

Response:`

// BuildPrompt embeds the submitted code into the review prompt template.
func BuildPrompt(code string) string {
	return fmt.Sprintf(reviewPromptTemplate, code)
}
