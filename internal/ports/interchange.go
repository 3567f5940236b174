package ports

import (
	"io"

	"github.com/jsamuelsen/flashcard-builder/internal/domain"
)

// Interchange reads and writes the flashcard file format.
//
// Decoders return errors wrapping domain.ErrMalformed for any input that
// cannot become a domain value.
type Interchange interface {
	DecodeCollection(r io.Reader) (domain.Collection, error)
	DecodeSubject(r io.Reader) (domain.Subject, error)
	DecodeTopic(r io.Reader) (domain.Topic, error)

	EncodeCollection(w io.Writer, c domain.Collection) error
	EncodeSubject(w io.Writer, s domain.Subject) error
	EncodeTopic(w io.Writer, t domain.Topic) error

	// File names used for exports.
	CollectionFile() string
	SubjectFile(subject string) string
	TopicFile(subject, topic string) string

	// ContentType is the media type of encoded documents.
	ContentType() string
}
