package interchange

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/flashcard-builder/internal/domain"
	"github.com/jsamuelsen/flashcard-builder/internal/ports"
)

var _ ports.Interchange = (*Codec)(nil)

func sampleCollection() domain.Collection {
	return domain.Collection{Subjects: []domain.Subject{
		{Name: "Math", Topics: []domain.Topic{
			{Name: "Algebra", Cards: []domain.Card{
				{Question: "2x=4", Answer: "x=2", Type: domain.CardTypeIdentification},
				{Question: "Name the field axioms", Answer: "closure, associativity, ...", Type: domain.CardTypeEnumeration},
			}},
			{Name: "Empty", Cards: []domain.Card{}},
		}},
		{Name: "History", Topics: []domain.Topic{
			{Name: "Rome", Cards: []domain.Card{{Question: "Founded?", Answer: "753 BC", Type: domain.CardTypeIdentification}}},
		}},
	}}
}

func TestCodec_CollectionRoundTrip(t *testing.T) {
	codec := NewCodec(CodecConfig{})

	var first bytes.Buffer
	require.NoError(t, codec.EncodeCollection(&first, sampleCollection()))

	decoded, err := codec.DecodeCollection(bytes.NewReader(first.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, sampleCollection(), decoded)

	var second bytes.Buffer
	require.NoError(t, codec.EncodeCollection(&second, decoded))
	assert.Equal(t, first.String(), second.String())
}

func TestCodec_EncodeTopicIsPrettyAndOrdered(t *testing.T) {
	codec := NewCodec(CodecConfig{})

	var buf bytes.Buffer
	require.NoError(t, codec.EncodeTopic(&buf, domain.Topic{
		Name:  "Algebra",
		Cards: []domain.Card{{Question: "2x=4", Answer: "x=2"}},
	}))

	want := `{
  "name": "Algebra",
  "cards": [
    {
      "question": "2x=4",
      "answer": "x=2",
      "type": "identification"
    }
  ]
}
`
	assert.Equal(t, want, buf.String())
}

func TestCodec_EncodeEmptyListsAsArrays(t *testing.T) {
	codec := NewCodec(CodecConfig{})

	var buf bytes.Buffer
	require.NoError(t, codec.EncodeCollection(&buf, domain.Collection{}))
	assert.Equal(t, "{\n  \"subjects\": []\n}\n", buf.String())

	buf.Reset()
	require.NoError(t, codec.EncodeSubject(&buf, domain.Subject{Name: "Math"}))
	assert.Contains(t, buf.String(), `"topics": []`)
}

func TestCodec_DecodeMissingFieldsDefaultToEmpty(t *testing.T) {
	codec := NewCodec(CodecConfig{})

	c, err := codec.DecodeCollection(strings.NewReader(`{}`))
	require.NoError(t, err)
	assert.Empty(t, c.Subjects)

	s, err := codec.DecodeSubject(strings.NewReader(`{"name":"Math"}`))
	require.NoError(t, err)
	assert.Equal(t, "Math", s.Name)
	assert.Empty(t, s.Topics)

	topic, err := codec.DecodeTopic(strings.NewReader(`{"name":"Algebra","cards":[{"question":"q","answer":"a"}]}`))
	require.NoError(t, err)
	require.Len(t, topic.Cards, 1)
	assert.Equal(t, domain.CardTypeIdentification, topic.Cards[0].Type)
}

func TestCodec_DecodeMalformed(t *testing.T) {
	tests := []struct {
		name   string
		decode func(*Codec, string) error
		input  string
	}{
		{"syntax error", decodeCollection, `{"subjects": [`},
		{"empty document", decodeCollection, ``},
		{"null document", decodeCollection, `null`},
		{"wrong type", decodeCollection, `{"subjects": 5}`},
		{"array instead of object", decodeSubject, `[]`},
		{"trailing data", decodeTopic, `{"name":"a"} {"name":"b"}`},
		{"subject without name", decodeCollection, `{"subjects":[{"topics":[]}]}`},
		{"topic with blank name", decodeTopic, `{"name":"  ","cards":[]}`},
		{"unknown card type", decodeTopic, `{"name":"t","cards":[{"question":"q","answer":"a","type":"essay"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.decode(NewCodec(CodecConfig{}), tt.input)
			require.Error(t, err)
			assert.True(t, domain.IsMalformed(err), "got %v", err)
		})
	}
}

func TestCodec_DecodeEnforcesLimit(t *testing.T) {
	codec := NewCodec(CodecConfig{MaxBytes: 16})

	_, err := codec.DecodeTopic(strings.NewReader(`{"name":"a long topic name","cards":[]}`))
	require.Error(t, err)
	assert.True(t, domain.IsMalformed(err))
	assert.Contains(t, err.Error(), "exceeds 16 bytes")
}

func decodeCollection(c *Codec, in string) error {
	_, err := c.DecodeCollection(strings.NewReader(in))

	return err
}

func decodeSubject(c *Codec, in string) error {
	_, err := c.DecodeSubject(strings.NewReader(in))

	return err
}

func decodeTopic(c *Codec, in string) error {
	_, err := c.DecodeTopic(strings.NewReader(in))

	return err
}

func TestFilenames(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"collection", CollectionFilename, "flashcards.json"},
		{"subject", SubjectFilename("Math"), "Math.json"},
		{"topic", TopicFilename("Math", "Algebra"), "Math_Algebra.json"},
		{"spaces kept", TopicFilename("World History", "Rome"), "World History_Rome.json"},
		{"separators replaced", SubjectFilename("a/b\\c:d"), "a_b_c_d.json"},
		{"blank name", SubjectFilename("  "), "untitled.json"},
		{"dots only", SubjectFilename(".."), "untitled.json"},
		{"unicode kept", SubjectFilename("Español"), "Español.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestCodec_ExportNames(t *testing.T) {
	c := NewCodec(CodecConfig{})

	assert.Equal(t, "flashcards.json", c.CollectionFile())
	assert.Equal(t, "Math.json", c.SubjectFile("Math"))
	assert.Equal(t, "Math_Algebra.json", c.TopicFile("Math", "Algebra"))
	assert.Equal(t, "application/json", c.ContentType())
}
