package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrTokenRequired ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid  ErrCode = "TOKEN_INVALID"
	ErrTokenExpired  ErrCode = "TOKEN_EXPIRED"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrForbidden       ErrCode = "FORBIDDEN"
	ErrNotRoadmapOwner ErrCode = "NOT_ROADMAP_OWNER"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound          ErrCode = "NOT_FOUND"
	ErrMilestoneNotFound ErrCode = "MILESTONE_NOT_FOUND"
	ErrTaskNotFound      ErrCode = "TASK_NOT_FOUND"

	// ─── Quiz-specific ─────────────────────────────────────────────────
	ErrEmptyQuiz    ErrCode = "EMPTY_QUIZ"
	ErrInvalidScore ErrCode = "INVALID_SCORE"

	// ─── Content producer ──────────────────────────────────────────────
	ErrContentProducer ErrCode = "CONTENT_PRODUCER_ERROR"
	ErrMalformedDraft  ErrCode = "MALFORMED_DRAFT"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrTokenRequired:
		return "An authentication token is required."
	case ErrTokenInvalid:
		return "The authentication token is invalid."
	case ErrTokenExpired:
		return "The authentication token has expired."

	// ─── Authorization ─────────────────────────────────────────────────
	case ErrForbidden:
		return "You do not have permission to access this resource."
	case ErrNotRoadmapOwner:
		return "This roadmap belongs to another learner."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "The id has an invalid format."
	case ErrInvalidPayload:
		return "The request payload is invalid."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "The resource was not found."
	case ErrMilestoneNotFound:
		return "The milestone does not exist in this roadmap."
	case ErrTaskNotFound:
		return "The task does not exist in this milestone."

	// ─── Quiz-specific ─────────────────────────────────────────────────
	case ErrEmptyQuiz:
		return "A quiz report must contain at least one question."
	case ErrInvalidScore:
		return "The quiz score is out of range."

	// ─── Content producer ──────────────────────────────────────────────
	case ErrContentProducer:
		return "The content service is unavailable. Please try again."
	case ErrMalformedDraft:
		return "The generated content was malformed and has been discarded."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
