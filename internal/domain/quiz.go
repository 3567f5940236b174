package domain

// QuizSession is one pass through a shuffled copy of a topic's cards.
// It is disposable; nothing in it is written back to the collection.
type QuizSession struct {
	Stack    StackRef
	Cards    []Card
	Index    int
	Revealed bool

	// Response is what the user typed before revealing. It is kept for
	// display only and never compared with the stored answer.
	Response string

	// ReturnTo is the screen the quiz exits to.
	ReturnTo Screen
}

// StartQuiz snapshots and shuffles cards and positions the quiz on the first one.
func StartQuiz(ref StackRef, cards []Card, returnTo Screen, r Shuffler) (QuizSession, error) {
	if len(cards) == 0 {
		return QuizSession{}, NewValidationError("cards", "no cards in this stack")
	}

	if returnTo != ScreenSubjectView {
		returnTo = ScreenDashboard
	}

	return QuizSession{
		Stack:    ref,
		Cards:    Shuffle(cards, r),
		ReturnTo: returnTo,
	}, nil
}

// Current returns the card being asked.
func (q QuizSession) Current() Card {
	if q.Index < 0 || q.Index >= len(q.Cards) {
		return Card{}
	}

	return q.Cards[q.Index]
}

// Position returns the 1-based number of the current card and the deck size.
func (q QuizSession) Position() (int, int) {
	return q.Index + 1, len(q.Cards)
}

// IsLast reports whether the current card is the final one.
func (q QuizSession) IsLast() bool {
	return q.Index >= len(q.Cards)-1
}

// Reveal shows the stored answer for the current card.
func (q QuizSession) Reveal() QuizSession {
	out := q.clone()
	out.Revealed = true

	return out
}

// SetResponse records the user's recall attempt for the current card.
func (q QuizSession) SetResponse(text string) QuizSession {
	out := q.clone()
	out.Response = text

	return out
}

// Next moves to the following card, hiding the answer and clearing the
// response. On the last card it reports finished and leaves the session as is.
func (q QuizSession) Next() (QuizSession, bool) {
	if q.IsLast() {
		return q, true
	}

	out := q.clone()
	out.Index++
	out.Revealed = false
	out.Response = ""

	return out, false
}

func (q QuizSession) clone() QuizSession {
	out := q
	out.Cards = cloneCards(q.Cards)

	return out
}
