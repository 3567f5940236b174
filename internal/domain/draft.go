package domain

import (
	"strings"
)

// Draft is the stack editor's working state: the stack being built, the card
// form inputs and the edit cursor. Cursor is nil while appending and holds
// the index of the card being replaced while editing.
//
// Draft methods return a new Draft; the receiver is never modified.
type Draft struct {
	Subject  string
	Topic    string
	Cards    []Card
	Question string
	Answer   string
	Type     CardType
	Cursor   *int

	// Origin is the stack this draft was loaded from, nil for a new stack.
	Origin *StackRef
}

// DraftFields are the editable inputs of a draft. Nil fields are left as is.
type DraftFields struct {
	Subject  *string
	Topic    *string
	Question *string
	Answer   *string
	Type     *CardType
}

// NewDraft returns an empty draft for building a new stack.
func NewDraft() Draft {
	return Draft{Cards: []Card{}, Type: DefaultCardType}
}

// EditDraft loads an existing stack into a draft. The cards are copied.
func EditDraft(ref StackRef, cards []Card) Draft {
	origin := ref

	return Draft{
		Subject: ref.Subject,
		Topic:   ref.Topic,
		Cards:   cloneCards(cards),
		Type:    DefaultCardType,
		Origin:  &origin,
	}
}

func (d Draft) clone() Draft {
	out := d
	out.Cards = cloneCards(d.Cards)

	if d.Cursor != nil {
		cursor := *d.Cursor
		out.Cursor = &cursor
	}

	if d.Origin != nil {
		origin := *d.Origin
		out.Origin = &origin
	}

	return out
}

// Editing reports whether the draft was loaded from an existing stack.
func (d Draft) Editing() bool {
	return d.Origin != nil
}

// SetFields applies the non-nil fields to the form inputs.
func (d Draft) SetFields(f DraftFields) Draft {
	out := d.clone()

	if f.Subject != nil {
		out.Subject = *f.Subject
	}

	if f.Topic != nil {
		out.Topic = *f.Topic
	}

	if f.Question != nil {
		out.Question = *f.Question
	}

	if f.Answer != nil {
		out.Answer = *f.Answer
	}

	if f.Type != nil {
		out.Type = *f.Type
	}

	return out
}

// AddCard turns the form inputs into a card. With the cursor set the card at
// the cursor is replaced and the cursor cleared; otherwise the card is
// appended. The inputs are reset afterwards.
func (d Draft) AddCard() (Draft, error) {
	card, err := NewCard(d.Question, d.Answer, d.Type)
	if err != nil {
		return d, err
	}

	out := d.clone()

	if out.Cursor != nil && *out.Cursor >= 0 && *out.Cursor < len(out.Cards) {
		out.Cards[*out.Cursor] = card
	} else {
		out.Cards = append(out.Cards, card)
	}

	out.Cursor = nil
	out.Question = ""
	out.Answer = ""
	out.Type = DefaultCardType

	return out, nil
}

// EditCard loads card i into the form inputs and points the cursor at it.
func (d Draft) EditCard(i int) (Draft, error) {
	if i < 0 || i >= len(d.Cards) {
		return d, NewValidationErrorWithValue("index", "no card at this position", i)
	}

	out := d.clone()
	card := out.Cards[i]
	out.Question = card.Question
	out.Answer = card.Answer
	out.Type = card.Type
	out.Cursor = &i

	return out, nil
}

// DeleteCard removes card i. A cursor on the removed card is cleared and a
// cursor after it shifts down so it still names the same card.
func (d Draft) DeleteCard(i int) (Draft, error) {
	if i < 0 || i >= len(d.Cards) {
		return d, NewValidationErrorWithValue("index", "no card at this position", i)
	}

	out := d.clone()
	out.Cards = append(out.Cards[:i], out.Cards[i+1:]...)

	if out.Cursor != nil {
		switch {
		case *out.Cursor == i:
			out.Cursor = nil
		case *out.Cursor > i:
			shifted := *out.Cursor - 1
			out.Cursor = &shifted
		}
	}

	return out, nil
}

// Ready checks that the draft can be saved.
func (d Draft) Ready() error {
	if strings.TrimSpace(d.Subject) == "" {
		return NewValidationError("subject", "subject is required")
	}

	if strings.TrimSpace(d.Topic) == "" {
		return NewValidationError("topic", "topic is required")
	}

	if len(d.Cards) == 0 {
		return NewValidationError("cards", "add at least one card")
	}

	return nil
}

// Ref returns the stack the draft will be saved as.
func (d Draft) Ref() StackRef {
	return StackRef{Subject: d.Subject, Topic: d.Topic}
}

// Apply writes the draft into the collection. An edited stack is renamed in
// place; a new stack is upserted.
func (d Draft) Apply(c Collection) (Collection, error) {
	if err := d.Ready(); err != nil {
		return c, err
	}

	if d.Origin != nil {
		return c.RenameStack(*d.Origin, d.Ref(), d.Cards), nil
	}

	return c.UpsertTopic(d.Subject, d.Topic, d.Cards), nil
}
