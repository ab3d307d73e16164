package services

import (
	"context"
	"errors"

	"familyinvitations/internal/domain"
)

// FlowStateKind names the states of the response workflow.
type FlowStateKind string

const (
	StateLoading          FlowStateKind = "loading"
	StateShowInvite       FlowStateKind = "show_invite"
	StateChoosing         FlowStateKind = "choosing"
	StateAcceptForm       FlowStateKind = "accept_form"
	StateDeclineForm      FlowStateKind = "decline_form"
	StateConfirmedAccept  FlowStateKind = "confirmed_accept"
	StateConfirmedDecline FlowStateKind = "confirmed_decline"
	StateAlreadyAnswered  FlowStateKind = "already_answered"
	StateExpired          FlowStateKind = "expired"
	StateError            FlowStateKind = "error"
)

// Display messages, kept in the invitees' language.
const (
	msgExpired       = "La invitación ha caducado"
	msgExpiredSubmit = "Su invitación ya caducó"
	msgUnknownError  = "Ocurrió un error desconocido"
)

func alreadyAnsweredMessage(accepted int) string {
	if accepted == domain.AcceptedYes {
		return "Parece que ya confirmaste tu asistencia"
	}
	return "Parece que ya confirmaste tu inasistencia"
}

// FlowState is the tagged state of a response flow. Each kind carries only
// the data its display needs.
// swagger:model FlowState
type FlowState struct {
	Kind FlowStateKind `json:"kind"`
	// Message is the terminal display text (expired, already answered, error).
	Message string `json:"message,omitempty"`
	// Attendees is the formatted greeting for confirmed_accept.
	Attendees string `json:"attendees,omitempty"`
	// Canceller is the first token of the decliner's name for confirmed_decline.
	Canceller string `json:"canceller,omitempty"`
	// Invitation is the prior answer for already_answered.
	Invitation *domain.Invitation `json:"invitation,omitempty"`
}

// Terminal reports whether no further transition is allowed from the state.
func (s FlowState) Terminal() bool {
	switch s.Kind {
	case StateConfirmedAccept, StateConfirmedDecline, StateAlreadyAnswered, StateExpired, StateError:
		return true
	}
	return false
}

// AcceptForm carries the raw accept submission values.
type AcceptForm struct {
	FatherName      string `json:"father_name"`
	MotherName      string `json:"mother_name"`
	FirstChildName  string `json:"first_child_name"`
	SecondChildName string `json:"second_child_name"`
}

// DeclineForm carries the raw decline submission value.
type DeclineForm struct {
	Canceller string `json:"canceller"`
}

// FieldErrors maps a form field to its validation message.
type FieldErrors map[string]string

// Inline validation messages, matched to the invitation form.
const (
	msgFieldRequired = "Es requerido"
	msgFieldFormat   = "Formato inválido"
)

// Flow transition errors.
var (
	// ErrInvalidTransition is returned when an operation is not allowed
	// from the flow's current state. The state is left unchanged.
	ErrInvalidTransition = errors.New("transition not allowed from current state")
	// ErrSubmitInProgress rejects a re-entrant submit while one is running.
	ErrSubmitInProgress = errors.New("a submit is already in progress")
)

// ResponseFlow drives one invitee session through the response workflow:
// loading, terminal short-circuits, the accept/decline forms, and the
// confirmation states. It guarantees a single persisted response per run;
// the at-most-one-per-family invariant is the service's re-check.
//
// The flow is not safe for concurrent use; it models a single form
// instance, with inProcess standing in for the disabled submit control.
type ResponseFlow struct {
	svc       domain.RSVPService
	profile   domain.NameProfile
	familyID  string
	state     FlowState
	inProcess bool
}

// NewResponseFlow returns a flow in the loading state for the given family
// link. The validation profile selects the basic or extended name pattern.
func NewResponseFlow(svc domain.RSVPService, profile domain.NameProfile, familyID string) *ResponseFlow {
	return &ResponseFlow{
		svc:      svc,
		profile:  profile,
		familyID: familyID,
		state:    FlowState{Kind: StateLoading},
	}
}

// State returns the current flow state.
func (f *ResponseFlow) State() FlowState {
	return f.state
}

// Start resolves the family link once and leaves the flow in show_invite
// or a terminal display state. The flow always reaches a displayable
// state; a store failure becomes the unknown-error terminal.
func (f *ResponseFlow) Start(ctx context.Context) (FlowState, error) {
	if f.state.Kind != StateLoading {
		return f.state, ErrInvalidTransition
	}
	res, inv, err := f.svc.Resolve(ctx, f.familyID)
	if err != nil {
		f.state = FlowState{Kind: StateError, Message: msgUnknownError}
		return f.state, nil
	}
	switch res {
	case domain.ResolutionAwaiting:
		f.state = FlowState{Kind: StateShowInvite}
	case domain.ResolutionAlreadyAnswered:
		f.state = FlowState{
			Kind:       StateAlreadyAnswered,
			Message:    alreadyAnsweredMessage(inv.Accepted),
			Invitation: inv,
		}
	default:
		f.state = FlowState{Kind: StateExpired, Message: msgExpired}
	}
	return f.state, nil
}

// Respond moves from the invite display to the accept/decline choice.
// User-triggered, no side effects.
func (f *ResponseFlow) Respond() (FlowState, error) {
	if f.state.Kind != StateShowInvite {
		return f.state, ErrInvalidTransition
	}
	f.state = FlowState{Kind: StateChoosing}
	return f.state, nil
}

// ChooseAccept opens the accept form. User-triggered, no side effects.
func (f *ResponseFlow) ChooseAccept() (FlowState, error) {
	if f.state.Kind != StateChoosing {
		return f.state, ErrInvalidTransition
	}
	f.state = FlowState{Kind: StateAcceptForm}
	return f.state, nil
}

// ChooseDecline opens the decline form. User-triggered, no side effects.
func (f *ResponseFlow) ChooseDecline() (FlowState, error) {
	if f.state.Kind != StateChoosing {
		return f.state, ErrInvalidTransition
	}
	f.state = FlowState{Kind: StateDeclineForm}
	return f.state, nil
}

// SubmitAccept validates the form and, when valid, persists the accepted
// response. Validation failures return non-nil FieldErrors, leave the flow
// in accept_form, and issue no store calls. On a lost re-check the flow
// ends in the error terminal; the returned error carries the cause
// (domain.ErrNotFound, domain.ErrAlreadyAnswered, or a store error).
func (f *ResponseFlow) SubmitAccept(ctx context.Context, form AcceptForm) (FlowState, FieldErrors, error) {
	if f.state.Kind != StateAcceptForm {
		return f.state, nil, ErrInvalidTransition
	}
	if f.inProcess {
		return f.state, nil, ErrSubmitInProgress
	}
	if errs := ValidateAcceptForm(f.profile, form); len(errs) > 0 {
		return f.state, errs, nil
	}
	f.inProcess = true
	defer func() { f.inProcess = false }()

	inv, err := f.svc.Accept(ctx, f.familyID, domain.AcceptNames{
		FatherName:      form.FatherName,
		MotherName:      form.MotherName,
		FirstChildName:  form.FirstChildName,
		SecondChildName: form.SecondChildName,
	})
	if err != nil {
		f.state = submitErrorState(err, inv)
		return f.state, nil, err
	}
	f.state = FlowState{
		Kind:      StateConfirmedAccept,
		Attendees: domain.FormatAttendees(inv.MotherName, inv.FatherName, inv.FirstChildName, inv.SecondChildName),
	}
	return f.state, nil, nil
}

// SubmitDecline validates the canceller and, when valid, persists the
// declined response. Same failure contract as SubmitAccept.
func (f *ResponseFlow) SubmitDecline(ctx context.Context, form DeclineForm) (FlowState, FieldErrors, error) {
	if f.state.Kind != StateDeclineForm {
		return f.state, nil, ErrInvalidTransition
	}
	if f.inProcess {
		return f.state, nil, ErrSubmitInProgress
	}
	if errs := ValidateDeclineForm(f.profile, form); len(errs) > 0 {
		return f.state, errs, nil
	}
	f.inProcess = true
	defer func() { f.inProcess = false }()

	inv, err := f.svc.Decline(ctx, f.familyID, form.Canceller)
	if err != nil {
		f.state = submitErrorState(err, inv)
		return f.state, nil, err
	}
	f.state = FlowState{
		Kind:      StateConfirmedDecline,
		Canceller: domain.FirstToken(inv.Canceller),
	}
	return f.state, nil, nil
}

func submitErrorState(err error, existing *domain.Invitation) FlowState {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return FlowState{Kind: StateError, Message: msgExpiredSubmit}
	case errors.Is(err, domain.ErrAlreadyAnswered):
		msg := msgUnknownError
		if existing != nil {
			msg = alreadyAnsweredMessage(existing.Accepted)
		}
		return FlowState{Kind: StateError, Message: msg}
	default:
		return FlowState{Kind: StateError, Message: msgUnknownError}
	}
}

// ValidateAcceptForm applies the cross-required father/mother pair rule and
// the profile pattern to every non-empty field. Children are optional.
func ValidateAcceptForm(profile domain.NameProfile, form AcceptForm) FieldErrors {
	errs := FieldErrors{}
	if form.FatherName == "" && form.MotherName == "" {
		errs["father_name"] = msgFieldRequired
		errs["mother_name"] = msgFieldRequired
	}
	checkOptional(profile, errs, "father_name", form.FatherName)
	checkOptional(profile, errs, "mother_name", form.MotherName)
	checkOptional(profile, errs, "first_child_name", form.FirstChildName)
	checkOptional(profile, errs, "second_child_name", form.SecondChildName)
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ValidateDeclineForm requires a pattern-valid canceller name.
func ValidateDeclineForm(profile domain.NameProfile, form DeclineForm) FieldErrors {
	if form.Canceller == "" {
		return FieldErrors{"canceller": msgFieldRequired}
	}
	if !profile.ValidName(form.Canceller) {
		return FieldErrors{"canceller": msgFieldFormat}
	}
	return nil
}

func checkOptional(profile domain.NameProfile, errs FieldErrors, field, value string) {
	if value == "" {
		return
	}
	if !profile.ValidName(value) {
		errs[field] = msgFieldFormat
	}
}
