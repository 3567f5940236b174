// Package interchange reads and writes the flashcard file formats: JSON
// collections, subjects and topics, plus spreadsheet card lists.
package interchange

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jsamuelsen/flashcard-builder/internal/domain"
)

// DefaultMaxBytes is the default limit on a single interchange document (4MB).
const DefaultMaxBytes = 4 << 20

// ContentType is the media type of exported files.
const ContentType = "application/json"

// Wire shapes. Field order here is the field order of exported files.
type (
	cardJSON struct {
		Question string `json:"question"`
		Answer   string `json:"answer"`
		Type     string `json:"type"`
	}

	topicJSON struct {
		Name  *string    `json:"name"`
		Cards []cardJSON `json:"cards"`
	}

	subjectJSON struct {
		Name   *string     `json:"name"`
		Topics []topicJSON `json:"topics"`
	}

	collectionJSON struct {
		Subjects []subjectJSON `json:"subjects"`
	}
)

// Codec converts between domain values and interchange JSON.
type Codec struct {
	maxBytes int64
}

// CodecConfig holds configuration for creating a Codec.
type CodecConfig struct {
	// MaxBytes caps the size of a decoded document. Zero uses DefaultMaxBytes.
	MaxBytes int64
}

// NewCodec creates a codec.
func NewCodec(cfg CodecConfig) *Codec {
	limit := cfg.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxBytes
	}

	return &Codec{maxBytes: limit}
}

// DecodeCollection reads a whole-collection document. A missing "subjects"
// field yields an empty collection.
func (c *Codec) DecodeCollection(r io.Reader) (domain.Collection, error) {
	var doc collectionJSON
	if err := c.decode(r, "collection", &doc); err != nil {
		return domain.Collection{}, err
	}

	out := domain.Collection{Subjects: make([]domain.Subject, 0, len(doc.Subjects))}

	for i, s := range doc.Subjects {
		subject, err := subjectFromJSON(s, fmt.Sprintf("subjects[%d]", i))
		if err != nil {
			return domain.Collection{}, err
		}

		out.Subjects = append(out.Subjects, subject)
	}

	return out, nil
}

// DecodeSubject reads a single Subject object.
func (c *Codec) DecodeSubject(r io.Reader) (domain.Subject, error) {
	var doc subjectJSON
	if err := c.decode(r, "subject", &doc); err != nil {
		return domain.Subject{}, err
	}

	return subjectFromJSON(doc, "subject")
}

// DecodeTopic reads a single Topic object.
func (c *Codec) DecodeTopic(r io.Reader) (domain.Topic, error) {
	var doc topicJSON
	if err := c.decode(r, "topic", &doc); err != nil {
		return domain.Topic{}, err
	}

	return topicFromJSON(doc, "topic")
}

func (c *Codec) decode(r io.Reader, source string, v any) error {
	data, err := io.ReadAll(io.LimitReader(r, c.maxBytes+1))
	if err != nil {
		return domain.NewMalformedError(source, "document could not be read", err)
	}

	if int64(len(data)) > c.maxBytes {
		return domain.NewMalformedError(source, fmt.Sprintf("document exceeds %d bytes", c.maxBytes), nil)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return domain.NewMalformedError(source, "document is empty", nil)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(v); err != nil {
		return domain.NewMalformedError(source, "invalid JSON", err)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return domain.NewMalformedError(source, "unexpected data after document", nil)
	}

	return nil
}

func requireName(name *string, path string) (string, error) {
	if name == nil || strings.TrimSpace(*name) == "" {
		return "", domain.NewMalformedError(path, "name is required", nil)
	}

	return *name, nil
}

func subjectFromJSON(s subjectJSON, path string) (domain.Subject, error) {
	name, err := requireName(s.Name, path)
	if err != nil {
		return domain.Subject{}, err
	}

	out := domain.Subject{Name: name, Topics: make([]domain.Topic, 0, len(s.Topics))}

	for i, t := range s.Topics {
		topic, err := topicFromJSON(t, fmt.Sprintf("%s.topics[%d]", path, i))
		if err != nil {
			return domain.Subject{}, err
		}

		out.Topics = append(out.Topics, topic)
	}

	return out, nil
}

func topicFromJSON(t topicJSON, path string) (domain.Topic, error) {
	name, err := requireName(t.Name, path)
	if err != nil {
		return domain.Topic{}, err
	}

	out := domain.Topic{Name: name, Cards: make([]domain.Card, 0, len(t.Cards))}

	for i, c := range t.Cards {
		cardType, err := domain.ParseCardType(c.Type)
		if err != nil {
			return domain.Topic{}, domain.NewMalformedError(
				fmt.Sprintf("%s.cards[%d]", path, i), "unknown card type "+c.Type, nil)
		}

		out.Cards = append(out.Cards, domain.Card{Question: c.Question, Answer: c.Answer, Type: cardType})
	}

	return out, nil
}

// EncodeCollection writes the whole collection as {"subjects": [...]}.
func (c *Codec) EncodeCollection(w io.Writer, col domain.Collection) error {
	doc := collectionJSON{Subjects: make([]subjectJSON, len(col.Subjects))}
	for i, s := range col.Subjects {
		doc.Subjects[i] = subjectToJSON(s)
	}

	return encode(w, doc)
}

// EncodeSubject writes a single Subject object.
func (c *Codec) EncodeSubject(w io.Writer, s domain.Subject) error {
	return encode(w, subjectToJSON(s))
}

// EncodeTopic writes a single Topic object.
func (c *Codec) EncodeTopic(w io.Writer, t domain.Topic) error {
	return encode(w, topicToJSON(t))
}

func subjectToJSON(s domain.Subject) subjectJSON {
	name := s.Name
	out := subjectJSON{Name: &name, Topics: make([]topicJSON, len(s.Topics))}

	for i, t := range s.Topics {
		out.Topics[i] = topicToJSON(t)
	}

	return out
}

func topicToJSON(t domain.Topic) topicJSON {
	name := t.Name
	out := topicJSON{Name: &name, Cards: make([]cardJSON, len(t.Cards))}

	for i, card := range t.Cards {
		cardType := card.Type
		if cardType == "" {
			cardType = domain.DefaultCardType
		}

		out.Cards[i] = cardJSON{Question: card.Question, Answer: card.Answer, Type: string(cardType)}
	}

	return out
}

func encode(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding interchange document: %w", err)
	}

	data = append(data, '\n')

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing interchange document: %w", err)
	}

	return nil
}

// CollectionFile returns CollectionFilename.
func (c *Codec) CollectionFile() string {
	return CollectionFilename
}

// SubjectFile returns SubjectFilename(subject).
func (c *Codec) SubjectFile(subject string) string {
	return SubjectFilename(subject)
}

// TopicFile returns TopicFilename(subject, topic).
func (c *Codec) TopicFile(subject, topic string) string {
	return TopicFilename(subject, topic)
}

// ContentType returns the media type of encoded documents.
func (c *Codec) ContentType() string {
	return ContentType
}
