// Package form holds the editable state of the admin forms: the profile,
// tech, experience, project and login forms.
//
// A form is seeded from a record (edit mode) or blank (create mode), bound
// from a posted request, changed by list actions ("add:jobdesk",
// "remove:tech:2") that re-render without touching the backend, and turned
// into a multipart apiclient.Payload on submit. Field values survive a failed
// submit; only a successful one sends the admin back to a freshly fetched
// list.
package form

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
)

// MaxUploadMemory is how much of a multipart request is held in memory
// while parsing; larger files spill to temporary files.
const MaxUploadMemory = 10 << 20

// Mode says whether a form creates a new record or edits an existing one.
type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

// State is where a form is in its submission lifecycle.
type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

// ErrInFlight is returned when Submit is called again from inside its own
// send callback.
var ErrInFlight = errors.New("form: submission already in flight")

// Submission tracks one form's idle → submitting → succeeded|failed cycle.
// The zero value is idle.
//
// Every POST binds a fresh form, so the submitting state lasts exactly as
// long as the request that carries it. Pages are only rendered after Submit
// returns and never see it.
type Submission struct {
	state State
	err   error
}

// State returns the current state.
func (s *Submission) State() State {
	if s.state == "" {
		return StateIdle
	}
	return s.state
}

// Err returns the error of the last failed submit, or nil.
func (s *Submission) Err() error { return s.err }

// Failed reports whether the last submit failed.
func (s *Submission) Failed() bool { return s.state == StateFailed }

// Submit runs send once and records the outcome. Field values are never
// touched here, so a failed form still shows what the admin typed.
func (s *Submission) Submit(ctx context.Context, send func(context.Context) error) error {
	if s.state == StateSubmitting {
		return ErrInFlight
	}

	s.state = StateSubmitting
	s.err = nil

	if err := send(ctx); err != nil {
		s.state = StateFailed
		s.err = err
		return err
	}

	s.state = StateSucceeded
	return nil
}

// Fail marks the form failed without a network call, e.g. after a
// required-field check.
func (s *Submission) Fail(err error) {
	s.state = StateFailed
	s.err = err
}

// Action is a list edit posted by one of a form's add/remove buttons.
type Action struct {
	Op    string // "add" or "remove"
	Field string
	Index int // only for "remove"
}

// ParseAction decodes "add:<field>" or "remove:<field>:<index>".
func ParseAction(s string) (Action, bool) {
	parts := strings.Split(s, ":")
	switch {
	case len(parts) == 2 && parts[0] == "add" && parts[1] != "":
		return Action{Op: "add", Field: parts[1]}, true
	case len(parts) == 3 && parts[0] == "remove" && parts[1] != "":
		i, err := strconv.Atoi(parts[2])
		if err != nil {
			return Action{}, false
		}
		return Action{Op: "remove", Field: parts[1], Index: i}, true
	}
	return Action{}, false
}

// applyAction runs a parsed action against the list named by the action.
// lists maps field names to the form's list fields.
func applyAction(raw string, lists map[string]*StringList) bool {
	a, ok := ParseAction(raw)
	if !ok {
		return false
	}
	l, ok := lists[a.Field]
	if !ok {
		return false
	}
	switch a.Op {
	case "add":
		*l = l.Append()
	case "remove":
		*l = l.Remove(a.Index)
	}
	return true
}

// parse fills r.PostForm from either encoding the browser may use.
func parse(r *http.Request) error {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(MaxUploadMemory); err != nil {
			return err
		}
		return nil
	}
	return r.ParseForm()
}

// postedList returns every posted value of key in order. A list the admin
// emptied completely comes back as an empty, non-nil list.
func postedList(r *http.Request, key string) StringList {
	vals := r.PostForm[key]
	out := make(StringList, len(vals))
	copy(out, vals)
	return out
}
