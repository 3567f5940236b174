package dto

import (
	"github.com/jsamuelsen/flashcard-builder/internal/app"
	"github.com/jsamuelsen/flashcard-builder/internal/domain"
)

// Card is one question/answer pair.
type Card struct {
	Question string `json:"question" validate:"notempty"`
	Answer   string `json:"answer"   validate:"notempty"`
	Type     string `json:"type"     validate:"cardtype"`
}

// Topic is a named stack of cards.
type Topic struct {
	Name  string `json:"name"`
	Cards []Card `json:"cards"`
}

// Subject groups topics.
type Subject struct {
	Name   string  `json:"name"`
	Topics []Topic `json:"topics"`
}

// Stats counts the contents of the collection.
type Stats struct {
	Subjects int `json:"subjects"`
	Topics   int `json:"topics"`
	Cards    int `json:"cards"`
}

// Collection is the whole library with its counts.
type Collection struct {
	Subjects []Subject `json:"subjects"`
	Stats    Stats     `json:"stats"`
}

// UpsertTopicRequest is the body of PUT /subjects/:subject/topics/:topic.
type UpsertTopicRequest struct {
	Cards []Card `json:"cards" validate:"dive"`
}

// ImportResponse reports how an import was applied.
type ImportResponse struct {
	Level   string `json:"level"`
	Outcome string `json:"outcome"`
	Subject string `json:"subject,omitempty"`
	Topic   string `json:"topic,omitempty"`
	Stats   Stats  `json:"stats"`
}

// OutcomeResponse reports the outcome of a confirmed action.
type OutcomeResponse struct {
	Outcome string `json:"outcome"`
}

// OpenBuilderRequest is the body of POST /builder.
type OpenBuilderRequest struct {
	From string `json:"from" validate:"launch"`
}

// SetFieldsRequest is the body of PATCH /builder. Absent fields are left alone.
type SetFieldsRequest struct {
	Subject  *string `json:"subject"`
	Topic    *string `json:"topic"`
	Question *string `json:"question"`
	Answer   *string `json:"answer"`
	Type     *string `json:"type" validate:"omitnil,cardtype"`
}

// StartQuizRequest is the body of POST /quiz.
type StartQuizRequest struct {
	Subject string `json:"subject" validate:"required,notempty"`
	Topic   string `json:"topic"   validate:"required,notempty"`
	From    string `json:"from"    validate:"launch"`
}

// QuizResponseRequest is the body of POST /quiz/response.
type QuizResponseRequest struct {
	Text string `json:"text"`
}

// Draft is the builder's working state.
type Draft struct {
	Subject  string `json:"subject"`
	Topic    string `json:"topic"`
	Cards    []Card `json:"cards"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Type     string `json:"type"`
	Cursor   *int   `json:"cursor"`
	Editing  bool   `json:"editing"`
}

// Quiz is the visible state of a running quiz. Answer is only set once the
// card has been revealed.
type Quiz struct {
	Subject   string `json:"subject"`
	Topic     string `json:"topic"`
	Position  int    `json:"position"`
	Total     int    `json:"total"`
	Type      string `json:"type"`
	TypeLabel string `json:"typeLabel"`
	Question  string `json:"question"`
	Answer    string `json:"answer,omitempty"`
	Response  string `json:"response"`
	Revealed  bool   `json:"revealed"`
	IsLast    bool   `json:"isLast"`
	Finished  bool   `json:"finished"`
	ReturnTo  string `json:"returnTo"`
}

// Screen is the current view and the state it owns. Exactly one of the
// state fields is set, matching Screen.
type Screen struct {
	Screen  string   `json:"screen"`
	Subject *Subject `json:"subject,omitempty"`
	Builder *Builder `json:"builder,omitempty"`
	Quiz    *Quiz    `json:"quiz,omitempty"`
	Stats   *Stats   `json:"stats,omitempty"`
}

// Builder is the builder screen state.
type Builder struct {
	Draft         Draft  `json:"draft"`
	ReturnTo      string `json:"returnTo"`
	ReturnSubject string `json:"returnSubject,omitempty"`
}

// FromCard converts a domain card.
func FromCard(c domain.Card) Card {
	t := c.Type
	if t == "" {
		t = domain.DefaultCardType
	}

	return Card{Question: c.Question, Answer: c.Answer, Type: string(t)}
}

// FromCards converts a card list. The result is never nil.
func FromCards(cards []domain.Card) []Card {
	out := make([]Card, len(cards))
	for i, c := range cards {
		out[i] = FromCard(c)
	}

	return out
}

// ToCards converts request cards. Types are assumed validated.
func ToCards(cards []Card) []domain.Card {
	out := make([]domain.Card, len(cards))
	for i, c := range cards {
		t, _ := domain.ParseCardType(c.Type)
		out[i] = domain.Card{Question: c.Question, Answer: c.Answer, Type: t}
	}

	return out
}

// FromTopic converts a domain topic.
func FromTopic(t domain.Topic) Topic {
	return Topic{Name: t.Name, Cards: FromCards(t.Cards)}
}

// FromSubject converts a domain subject.
func FromSubject(s domain.Subject) Subject {
	out := Subject{Name: s.Name, Topics: make([]Topic, len(s.Topics))}
	for i, t := range s.Topics {
		out.Topics[i] = FromTopic(t)
	}

	return out
}

// FromStats converts collection counts.
func FromStats(s domain.CollectionStats) Stats {
	return Stats{Subjects: s.Subjects, Topics: s.Topics, Cards: s.Cards}
}

// FromCollection converts the whole collection.
func FromCollection(c domain.Collection) Collection {
	out := Collection{Subjects: make([]Subject, len(c.Subjects)), Stats: FromStats(c.Stats())}
	for i, s := range c.Subjects {
		out.Subjects[i] = FromSubject(s)
	}

	return out
}

// FromImportResult converts an import result.
func FromImportResult(r app.ImportResult) ImportResponse {
	return ImportResponse{
		Level:   string(r.Level),
		Outcome: string(r.Outcome),
		Subject: r.Subject,
		Topic:   r.Topic,
		Stats:   FromStats(r.Stats),
	}
}

// FromDraft converts a builder draft.
func FromDraft(d domain.Draft) Draft {
	out := Draft{
		Subject:  d.Subject,
		Topic:    d.Topic,
		Cards:    FromCards(d.Cards),
		Question: d.Question,
		Answer:   d.Answer,
		Type:     string(d.Type),
		Editing:  d.Editing(),
	}

	if d.Cursor != nil {
		cursor := *d.Cursor
		out.Cursor = &cursor
	}

	return out
}

// FromBuilder converts the builder screen state.
func FromBuilder(b domain.BuilderState) Builder {
	return Builder{
		Draft:         FromDraft(b.Draft),
		ReturnTo:      string(b.ReturnTo),
		ReturnSubject: b.ReturnSubject,
	}
}

// FromQuiz converts a quiz session. finished marks a session that has just
// been completed by Next.
func FromQuiz(q domain.QuizSession, finished bool) Quiz {
	card := q.Current()
	position, total := q.Position()

	cardType := card.Type
	if cardType == "" {
		cardType = domain.DefaultCardType
	}

	out := Quiz{
		Subject:   q.Stack.Subject,
		Topic:     q.Stack.Topic,
		Position:  position,
		Total:     total,
		Type:      string(cardType),
		TypeLabel: cardType.Label(),
		Question:  card.Question,
		Response:  q.Response,
		Revealed:  q.Revealed,
		IsLast:    q.IsLast(),
		Finished:  finished,
		ReturnTo:  string(q.ReturnTo),
	}

	if q.Revealed {
		out.Answer = card.Answer
	}

	return out
}

// FromScreen converts a screen state. The dashboard carries the collection
// counts and the subject view carries its subject, both read from c.
func FromScreen(s domain.ScreenState, c domain.Collection) Screen {
	out := Screen{Screen: string(s.Screen())}

	switch st := s.(type) {
	case domain.DashboardState:
		stats := FromStats(c.Stats())
		out.Stats = &stats
	case domain.SubjectViewState:
		if subject, ok := c.FindSubject(st.Subject); ok {
			view := FromSubject(subject)
			out.Subject = &view
		}
	case domain.BuilderState:
		b := FromBuilder(st)
		out.Builder = &b
	case domain.QuizState:
		q := FromQuiz(st.Session, false)
		out.Quiz = &q
	}

	return out
}

// QuizStepResponse is returned by POST /quiz/next.
type QuizStepResponse struct {
	Quiz   Quiz   `json:"quiz"`
	Screen Screen `json:"screen"`
}

// SavedStackResponse is returned by POST /builder/save.
type SavedStackResponse struct {
	Subject string `json:"subject"`
	Topic   string `json:"topic"`
	Screen  Screen `json:"screen"`
}
