// Package parser extracts question/answer cards from markdown files for
// bulk import. A card is a "Q:" block followed by an "A:" block; bodies
// may span lines, and "---" separates cards explicitly.
package parser

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/hiten-shah0106/flashify/internal/domain"
)

const (
	questionPrefix = "Q:"
	answerPrefix   = "A:"
)

type section int

const (
	seeking section = iota
	inQuestion
	inAnswer
)

// ParseFile reads a file from the given path and extracts all cards.
func ParseFile(path string) ([]domain.Card, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Parse(file)
}

// Parse reads from an io.Reader and extracts all cards. Blocks missing
// either side are dropped: the remote API rejects a card without both a
// question and an answer.
func Parse(r io.Reader) ([]domain.Card, error) {
	scanner := bufio.NewScanner(r)
	var cards []domain.Card
	var card domain.Card
	var block []string
	current := seeking

	closeBlock := func() {
		if len(block) == 0 {
			return
		}
		content := strings.Join(block, "\n")
		switch current {
		case inQuestion:
			card.Question = content
		case inAnswer:
			card.Answer = content
		}
		block = nil
	}

	finishCard := func() {
		closeBlock()
		if card.Question != "" && card.Answer != "" {
			cards = append(cards, card)
		}
		card = domain.Card{}
		current = seeking
	}

	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case line == "---":
			finishCard()
		case strings.HasPrefix(line, questionPrefix):
			// A new question always starts a new card.
			if current != seeking {
				finishCard()
			}
			current = inQuestion
			block = append(block, strings.TrimPrefix(strings.TrimPrefix(line, questionPrefix), " "))
		case strings.HasPrefix(line, answerPrefix):
			closeBlock()
			current = inAnswer
			block = append(block, strings.TrimPrefix(strings.TrimPrefix(line, answerPrefix), " "))
		case current != seeking:
			block = append(block, line)
		}
	}

	finishCard() // Finish the very last card in the file

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return cards, nil
}
