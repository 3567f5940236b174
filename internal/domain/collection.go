package domain

import (
	"fmt"
	"strings"
)

// Topic is a named, ordered stack of cards inside a subject.
type Topic struct {
	Name  string
	Cards []Card
}

// Subject groups topics under a name.
type Subject struct {
	Name   string
	Topics []Topic
}

// Collection is the complete set of subjects held by a session.
//
// All methods treat the receiver as an immutable snapshot: they return new
// values and never write through to slices shared with the caller.
type Collection struct {
	Subjects []Subject
}

// StackRef names a topic within a subject.
type StackRef struct {
	Subject string
	Topic   string
}

// String renders the reference as "subject/topic".
func (r StackRef) String() string {
	return r.Subject + "/" + r.Topic
}

// CollectionStats summarizes the size of a collection.
type CollectionStats struct {
	Subjects int
	Topics   int
	Cards    int
}

// Clone returns a deep copy of the topic.
func (t Topic) Clone() Topic {
	return Topic{Name: t.Name, Cards: cloneCards(t.Cards)}
}

// Clone returns a deep copy of the subject.
func (s Subject) Clone() Subject {
	out := Subject{Name: s.Name, Topics: make([]Topic, len(s.Topics))}
	for i, t := range s.Topics {
		out.Topics[i] = t.Clone()
	}

	return out
}

// FindTopic returns a copy of the first topic with the given name.
func (s Subject) FindTopic(name string) (Topic, bool) {
	i := s.topicIndex(name)
	if i < 0 {
		return Topic{}, false
	}

	return s.Topics[i].Clone(), true
}

func (s Subject) topicIndex(name string) int {
	for i, t := range s.Topics {
		if t.Name == name {
			return i
		}
	}

	return -1
}

// Clone returns a deep copy of the collection.
func (c Collection) Clone() Collection {
	out := Collection{Subjects: make([]Subject, len(c.Subjects))}
	for i, s := range c.Subjects {
		out.Subjects[i] = s.Clone()
	}

	return out
}

func (c Collection) subjectIndex(name string) int {
	for i, s := range c.Subjects {
		if s.Name == name {
			return i
		}
	}

	return -1
}

// FindSubject returns a copy of the subject with the given name.
func (c Collection) FindSubject(name string) (Subject, bool) {
	i := c.subjectIndex(name)
	if i < 0 {
		return Subject{}, false
	}

	return c.Subjects[i].Clone(), true
}

// FindTopic returns a copy of the named topic under the named subject.
func (c Collection) FindTopic(subject, topic string) (Topic, bool) {
	s, ok := c.FindSubject(subject)
	if !ok {
		return Topic{}, false
	}

	return s.FindTopic(topic)
}

// UpsertTopic stores cards under subject/topic, creating either level when
// absent. An existing topic has its card list replaced wholesale.
func (c Collection) UpsertTopic(subject, topic string, cards []Card) Collection {
	out := c.Clone()
	stack := Topic{Name: topic, Cards: cloneCards(cards)}

	si := out.subjectIndex(subject)
	if si < 0 {
		out.Subjects = append(out.Subjects, Subject{Name: subject, Topics: []Topic{stack}})

		return out
	}

	s := &out.Subjects[si]
	if ti := s.topicIndex(topic); ti >= 0 {
		s.Topics[ti] = stack
	} else {
		s.Topics = append(s.Topics, stack)
	}

	return out
}

// DeleteTopic removes a topic. A subject left without topics is removed too.
func (c Collection) DeleteTopic(subject, topic string) (Collection, error) {
	si := c.subjectIndex(subject)
	if si < 0 {
		return c, NewNotFoundError("subject", subject)
	}

	ti := c.Subjects[si].topicIndex(topic)
	if ti < 0 {
		return c, NewNotFoundError("topic", StackRef{Subject: subject, Topic: topic}.String())
	}

	out := c.Clone()
	s := &out.Subjects[si]
	s.Topics = append(s.Topics[:ti], s.Topics[ti+1:]...)

	if len(s.Topics) == 0 {
		out.Subjects = append(out.Subjects[:si], out.Subjects[si+1:]...)
	}

	return out, nil
}

// DeleteSubject removes a subject and all of its topics.
func (c Collection) DeleteSubject(subject string) (Collection, error) {
	si := c.subjectIndex(subject)
	if si < 0 {
		return c, NewNotFoundError("subject", subject)
	}

	out := c.Clone()
	out.Subjects = append(out.Subjects[:si], out.Subjects[si+1:]...)

	return out, nil
}

// RenameStack saves an edited stack. The subject named old.Subject takes the
// new subject name and its topic old.Topic takes the new topic name and cards.
// The new names are not checked against other subjects or topics, so a rename
// can produce duplicates. When the old stack no longer exists the cards are
// upserted under the new names instead.
func (c Collection) RenameStack(old, renamed StackRef, cards []Card) Collection {
	si := c.subjectIndex(old.Subject)
	if si < 0 || c.Subjects[si].topicIndex(old.Topic) < 0 {
		return c.UpsertTopic(renamed.Subject, renamed.Topic, cards)
	}

	out := c.Clone()
	s := &out.Subjects[si]
	s.Name = renamed.Subject

	for i := range s.Topics {
		if s.Topics[i].Name == old.Topic {
			s.Topics[i] = Topic{Name: renamed.Topic, Cards: cloneCards(cards)}
		}
	}

	return out
}

// AppendSubject adds a subject at the end of the collection.
func (c Collection) AppendSubject(s Subject) Collection {
	out := c.Clone()
	out.Subjects = append(out.Subjects, s.Clone())

	return out
}

// MergeTopics appends topics verbatim to an existing subject, duplicates included.
func (c Collection) MergeTopics(subject string, topics []Topic) (Collection, error) {
	si := c.subjectIndex(subject)
	if si < 0 {
		return c, NewNotFoundError("subject", subject)
	}

	out := c.Clone()
	for _, t := range topics {
		out.Subjects[si].Topics = append(out.Subjects[si].Topics, t.Clone())
	}

	return out, nil
}

// Stats counts subjects, topics and cards.
func (c Collection) Stats() CollectionStats {
	stats := CollectionStats{Subjects: len(c.Subjects)}
	for _, s := range c.Subjects {
		stats.Topics += len(s.Topics)
		for _, t := range s.Topics {
			stats.Cards += len(t.Cards)
		}
	}

	return stats
}

// Problems lists the ways the collection breaks the naming rules: blank
// names, duplicate subjects, duplicate topics within a subject and cards
// with a missing side. An empty result means the collection is consistent.
func (c Collection) Problems() []string {
	var problems []string

	seenSubjects := make(map[string]bool, len(c.Subjects))
	for si, s := range c.Subjects {
		if strings.TrimSpace(s.Name) == "" {
			problems = append(problems, fmt.Sprintf("subject #%d has no name", si+1))
		}

		if seenSubjects[s.Name] {
			problems = append(problems, fmt.Sprintf("duplicate subject %q", s.Name))
		}

		seenSubjects[s.Name] = true

		seenTopics := make(map[string]bool, len(s.Topics))
		for ti, t := range s.Topics {
			if strings.TrimSpace(t.Name) == "" {
				problems = append(problems, fmt.Sprintf("subject %q: topic #%d has no name", s.Name, ti+1))
			}

			if seenTopics[t.Name] {
				problems = append(problems, fmt.Sprintf("subject %q: duplicate topic %q", s.Name, t.Name))
			}

			seenTopics[t.Name] = true

			for ci, card := range t.Cards {
				if err := card.Validate(); err != nil {
					problems = append(problems, fmt.Sprintf("%s card #%d: %v",
						StackRef{Subject: s.Name, Topic: t.Name}, ci+1, err))
				}
			}
		}
	}

	return problems
}
