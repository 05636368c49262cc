package parser

import (
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name          string
		input         string
		expectedCards int
		expectedQ     string
		expectedA     string
	}{
		{
			name:          "Simple Q&A",
			input:         "Q: What is the capital of France?\nA: Paris",
			expectedCards: 1,
			expectedQ:     "What is the capital of France?",
			expectedA:     "Paris",
		},
		{
			name: "Multiline Answer",
			input: `
Q: What are the primary colors?
A: Red
Blue
Yellow
`,
			expectedCards: 1,
			expectedQ:     "What are the primary colors?",
			expectedA:     "Red\nBlue\nYellow",
		},
		{
			name: "Two Cards",
			input: `
Q: First question
A: First answer

Q: Second question
A: Second answer
`,
			expectedCards: 2,
		},
		{
			name: "Separator splits cards",
			input: `
Q: First question
A: First answer
---
Q: Second question
A: Second answer
`,
			expectedCards: 2,
		},
		{
			name:          "Question without answer is dropped",
			input:         "Q: Orphan question\n---\nQ: Kept\nA: Yes",
			expectedCards: 1,
			expectedQ:     "Kept",
			expectedA:     "Yes",
		},
		{
			name:          "Answer without question is dropped",
			input:         "A: Stray answer",
			expectedCards: 0,
		},
		{
			name:          "Prose between cards is ignored",
			input:         "Some notes.\n\nQ: Real card?\nA: Yes\n",
			expectedCards: 1,
			expectedQ:     "Real card?",
			expectedA:     "Yes",
		},
		{
			name:          "Empty input",
			input:         "",
			expectedCards: 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cards, err := Parse(strings.NewReader(tc.input))
			if err != nil {
				t.Fatalf("Parse returned an unexpected error: %v", err)
			}
			if len(cards) != tc.expectedCards {
				t.Fatalf("Expected %d cards, got %d", tc.expectedCards, len(cards))
			}
			if tc.expectedCards == 0 || tc.expectedQ == "" {
				return
			}
			if cards[0].Question != tc.expectedQ {
				t.Errorf("Expected question %q, got %q", tc.expectedQ, cards[0].Question)
			}
			if cards[0].Answer != tc.expectedA {
				t.Errorf("Expected answer %q, got %q", tc.expectedA, cards[0].Answer)
			}
		})
	}
}
