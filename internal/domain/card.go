package domain

import (
	"strings"
)

// CardType classifies how a card's answer is structured.
type CardType string

const (
	// CardTypeIdentification expects a single term as the answer.
	CardTypeIdentification CardType = "identification"

	// CardTypeEnumeration expects a list of items as the answer.
	CardTypeEnumeration CardType = "enumeration"
)

// DefaultCardType is the type given to cards that do not specify one.
const DefaultCardType = CardTypeIdentification

// ParseCardType converts user or file input into a CardType.
// Matching is case-insensitive and an empty string yields DefaultCardType.
func ParseCardType(s string) (CardType, error) {
	switch CardType(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return DefaultCardType, nil
	case CardTypeIdentification:
		return CardTypeIdentification, nil
	case CardTypeEnumeration:
		return CardTypeEnumeration, nil
	default:
		return "", NewValidationErrorWithValue("type", "must be identification or enumeration", s)
	}
}

// Label returns the display form of the type, as shown above a quiz question.
func (t CardType) Label() string {
	if t == "" {
		return strings.ToUpper(string(DefaultCardType))
	}

	return strings.ToUpper(string(t))
}

// Card is a single question/answer pair.
// Cards are values; editing a card means replacing it in its topic.
type Card struct {
	Question string
	Answer   string
	Type     CardType
}

// NewCard builds a card from form input, rejecting blank fields.
func NewCard(question, answer string, cardType CardType) (Card, error) {
	c := Card{Question: question, Answer: answer, Type: cardType}
	if c.Type == "" {
		c.Type = DefaultCardType
	}

	if err := c.Validate(); err != nil {
		return Card{}, err
	}

	return c, nil
}

// Validate checks that both sides of the card are filled in.
func (c Card) Validate() error {
	if strings.TrimSpace(c.Question) == "" {
		return NewValidationError("question", "question is required")
	}

	if strings.TrimSpace(c.Answer) == "" {
		return NewValidationError("answer", "answer is required")
	}

	return nil
}

func cloneCards(cards []Card) []Card {
	if cards == nil {
		return []Card{}
	}

	out := make([]Card, len(cards))
	copy(out, cards)

	return out
}
