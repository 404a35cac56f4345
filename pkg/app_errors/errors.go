package apperrors

import "errors"

// NotFound 類
var (
	ErrUserNotFound         = errors.New("user not found")
	ErrCategoryNotFound     = errors.New("category not found")
	ErrEventNotFound        = errors.New("event not found")
	ErrRequestNotFound      = errors.New("participation request not found")
	ErrCompilationNotFound  = errors.New("compilation not found")
	ErrSubscriptionNotFound = errors.New("subscription not found")
)

// InvalidSchedule 類：活動時間違反最小提前量
var (
	ErrInvalidEventDate = errors.New("event date must be at least two hours ahead")
)

// Conflict 類
var (
	ErrDuplicateRequest        = errors.New("participation request already exists")
	ErrSelfParticipation       = errors.New("initiator cannot request participation in own event")
	ErrEventNotPublished       = errors.New("cannot participate in an unpublished event")
	ErrParticipantLimitReached = errors.New("participant limit reached")
	ErrNotInitiator            = errors.New("user is not the initiator of the event")
	ErrEventStateConflict      = errors.New("event state does not allow this operation")
	ErrEventStartTooSoon       = errors.New("event starts less than one hour from publication")
	ErrRequestNotPending       = errors.New("participation request is not pending")
	ErrUnsupportedStatus       = errors.New("target status must be CONFIRMED or REJECTED")
	ErrUnsupportedStateAction  = errors.New("unsupported state action")
	ErrCategoryInUse           = errors.New("category is referenced by an event")
	ErrInvalidTimeRange        = errors.New("range start must be before range end")
	ErrPrivateAccount          = errors.New("user does not accept subscriptions")
	ErrSubscriptionConflict    = errors.New("subscription state does not allow this operation")
	ErrNoPendingSubscriptions  = errors.New("no pending subscription requests")
)

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrInternalServerError = errors.New("internal server error")
)
