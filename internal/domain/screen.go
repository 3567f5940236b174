package domain

import (
	"fmt"
)

// Screen names one of the views a session can be on.
type Screen string

const (
	ScreenStart       Screen = "start"
	ScreenDashboard   Screen = "dashboard"
	ScreenSubjectView Screen = "subjectView"
	ScreenBuilder     Screen = "builder"
	ScreenQuiz        Screen = "quiz"
)

// ParseScreen validates a screen name used as a launch context.
func ParseScreen(s string) (Screen, error) {
	switch Screen(s) {
	case ScreenStart, ScreenDashboard, ScreenSubjectView, ScreenBuilder, ScreenQuiz:
		return Screen(s), nil
	case "":
		return ScreenDashboard, nil
	default:
		return "", NewValidationErrorWithValue("screen", "unknown screen", s)
	}
}

// ScreenState is the state owned by the current screen. Each screen has its
// own concrete type so fields are never shared between screens.
type ScreenState interface {
	Screen() Screen
}

// StartState is the landing screen.
type StartState struct{}

// DashboardState lists every subject.
type DashboardState struct{}

// SubjectViewState lists the topics of one subject.
type SubjectViewState struct {
	Subject string
}

// BuilderState holds the stack editor draft and where to go when it closes.
type BuilderState struct {
	Draft         Draft
	ReturnTo      Screen
	ReturnSubject string
}

// QuizState holds the running quiz.
type QuizState struct {
	Session QuizSession
}

func (StartState) Screen() Screen       { return ScreenStart }
func (DashboardState) Screen() Screen   { return ScreenDashboard }
func (SubjectViewState) Screen() Screen { return ScreenSubjectView }
func (BuilderState) Screen() Screen     { return ScreenBuilder }
func (QuizState) Screen() Screen        { return ScreenQuiz }

var allowedTransitions = map[Screen][]Screen{
	ScreenStart:       {ScreenDashboard},
	ScreenDashboard:   {ScreenStart, ScreenSubjectView, ScreenBuilder, ScreenQuiz},
	ScreenSubjectView: {ScreenDashboard, ScreenBuilder, ScreenQuiz},
	ScreenBuilder:     {ScreenDashboard, ScreenSubjectView},
	ScreenQuiz:        {ScreenDashboard, ScreenSubjectView},
}

// Transition checks that moving from one screen state to another is allowed.
// A quiz may only exit to the screen it was launched from.
func Transition(from, to ScreenState) error {
	edge := fmt.Sprintf("%s -> %s", from.Screen(), to.Screen())

	allowed := false
	for _, s := range allowedTransitions[from.Screen()] {
		if s == to.Screen() {
			allowed = true

			break
		}
	}

	if !allowed {
		return NewConflictErrorWithDetails("screen", "transition not allowed", edge)
	}

	if quiz, ok := from.(QuizState); ok && quiz.Session.ReturnTo != to.Screen() {
		return NewConflictErrorWithDetails("screen", "quiz exits to "+string(quiz.Session.ReturnTo), edge)
	}

	return nil
}

// ReturnState builds the state for a return target. Any target other than
// the subject view falls back to the dashboard.
func ReturnState(screen Screen, subject string) ScreenState {
	if screen == ScreenSubjectView && subject != "" {
		return SubjectViewState{Subject: subject}
	}

	return DashboardState{}
}

// Back returns the hardcoded back target of a screen.
func Back(from ScreenState) (ScreenState, error) {
	switch s := from.(type) {
	case DashboardState:
		return StartState{}, nil
	case SubjectViewState:
		return DashboardState{}, nil
	case BuilderState:
		return ReturnState(s.ReturnTo, s.ReturnSubject), nil
	case QuizState:
		return ReturnState(s.Session.ReturnTo, s.Session.Stack.Subject), nil
	default:
		return from, NewConflictError("screen", "no back target from "+string(from.Screen()))
	}
}
