// Package flow models the sign-in journey as a rendering-independent state
// machine: email entry, code entry with per-slot focus handling, resend, and
// the hand-off to profile completion. A UI drives it by calling the methods
// below and re-rendering from the accessors after each call.
package flow

import (
	"context"
	"strings"
	"unicode"

	"github.com/carzilla/auth-api/internal/application/auth"
	"github.com/carzilla/auth-api/internal/domain"
	"github.com/carzilla/auth-api/internal/pkg/validate"
)

// State is the current screen of the sign-in journey.
type State int

const (
	EnteringIdentity State = iota
	Issuing
	AwaitingCode
	Verifying
	Success
	ProfileIncomplete
	CompletingProfile
	Done
)

func (s State) String() string {
	switch s {
	case EnteringIdentity:
		return "entering_identity"
	case Issuing:
		return "issuing"
	case AwaitingCode:
		return "awaiting_code"
	case Verifying:
		return "verifying"
	case Success:
		return "success"
	case ProfileIncomplete:
		return "profile_incomplete"
	case CompletingProfile:
		return "completing_profile"
	case Done:
		return "done"
	}
	return "unknown"
}

// CodeLength is the number of code entry slots.
const CodeLength = 4

// Authenticator issues and verifies sign-in codes.
type Authenticator interface {
	SendOTP(ctx context.Context, email string) (expiresIn int, err error)
	VerifyOTP(ctx context.Context, email, code string) (*auth.VerifyResult, error)
}

// ProfileUpdater completes the mandatory profile fields.
type ProfileUpdater interface {
	Update(ctx context.Context, userID string, req domain.UpdateProfileRequest) (*domain.User, error)
}

// Flow is a single user's sign-in session. It is not safe for concurrent
// use; a UI drives it from one goroutine with at most one in-flight call.
type Flow struct {
	authn   Authenticator
	profile ProfileUpdater

	state   State
	email   string
	slots   [CodeLength]string
	focus   int
	message string

	result  *auth.VerifyResult
	account *domain.User
}

func New(authn Authenticator, profile ProfileUpdater) *Flow {
	return &Flow{authn: authn, profile: profile, state: EnteringIdentity}
}

func (f *Flow) State() State               { return f.state }
func (f *Flow) Email() string              { return f.email }
func (f *Flow) Message() string            { return f.message }
func (f *Flow) FocusedSlot() int           { return f.focus }
func (f *Flow) Slot(i int) string          { return f.slots[i] }
func (f *Flow) Code() string               { return strings.Join(f.slots[:], "") }
func (f *Flow) Account() *domain.User      { return f.account }
func (f *Flow) Result() *auth.VerifyResult { return f.result }

// SubmitEmail validates the address, requests a code, and moves to the code
// entry screen. Issuance failures return to email entry with the failure's
// message surfaced verbatim.
func (f *Flow) SubmitEmail(ctx context.Context, email string) {
	if f.state != EnteringIdentity {
		return
	}
	if err := validate.Var(email, "required,email"); err != nil {
		f.message = domain.UserMessage(domain.ErrInvalidEmail)
		return
	}
	f.email = email
	f.state = Issuing
	if _, err := f.authn.SendOTP(ctx, email); err != nil {
		f.state = EnteringIdentity
		f.message = domain.UserMessage(err)
		return
	}
	f.enterCodeScreen()
}

func (f *Flow) enterCodeScreen() {
	f.state = AwaitingCode
	f.clearBuffer()
	f.message = ""
}

func (f *Flow) clearBuffer() {
	f.slots = [CodeLength]string{}
	f.focus = 0
}

// EnterDigit fills the focused slot and auto-advances. Non-digit input is
// ignored.
func (f *Flow) EnterDigit(r rune) {
	if f.state != AwaitingCode || !unicode.IsDigit(r) {
		return
	}
	f.slots[f.focus] = string(r)
	if f.focus < CodeLength-1 {
		f.focus++
	}
}

// Backspace clears the focused slot, or moves focus back when it is already
// empty.
func (f *Flow) Backspace() {
	if f.state != AwaitingCode {
		return
	}
	if f.slots[f.focus] != "" {
		f.slots[f.focus] = ""
		return
	}
	if f.focus > 0 {
		f.focus--
	}
}

// SubmitCode verifies the buffered code. Every verifier failure clears the
// buffer, refocuses the first slot, and shows the failure's message; success
// holds the tokens and account for the caller.
func (f *Flow) SubmitCode(ctx context.Context) {
	if f.state != AwaitingCode {
		return
	}
	code := f.Code()
	if len(code) != CodeLength {
		f.message = "Please enter the complete 4-digit code"
		return
	}
	f.state = Verifying
	result, err := f.authn.VerifyOTP(ctx, f.email, code)
	if err != nil {
		f.enterCodeScreen()
		f.message = domain.UserMessage(err)
		return
	}
	f.state = Success
	f.result = result
	f.account = result.User
	f.message = ""
}

// Resend re-issues a code without leaving the entry screen. The buffer is
// cleared only when issuance succeeds.
func (f *Flow) Resend(ctx context.Context) {
	if f.state != AwaitingCode {
		return
	}
	if _, err := f.authn.SendOTP(ctx, f.email); err != nil {
		f.message = domain.UserMessage(err)
		return
	}
	f.clearBuffer()
	f.message = "OTP sent"
}

// Continue advances past the success screen once the UI's short delay has
// elapsed: to profile completion when mandatory fields are missing, else done.
func (f *Flow) Continue() {
	if f.state != Success {
		return
	}
	if f.result != nil && !f.result.IsProfileComplete {
		f.state = ProfileIncomplete
		return
	}
	f.state = Done
}

// BeginProfile opens the profile completion form.
func (f *Flow) BeginProfile() {
	if f.state == ProfileIncomplete {
		f.state = CompletingProfile
	}
}

// SubmitProfile saves name and phone. Validation failures show inline and
// keep the form open; success stores the updated account and finishes.
func (f *Flow) SubmitProfile(ctx context.Context, name, phone string) {
	if f.state != CompletingProfile {
		return
	}
	u, err := f.profile.Update(ctx, f.account.UserID, domain.UpdateProfileRequest{
		Name:  name,
		Phone: phone,
	})
	if err != nil {
		f.message = domain.UserMessage(err)
		return
	}
	f.account = u
	f.message = ""
	f.state = Done
}
