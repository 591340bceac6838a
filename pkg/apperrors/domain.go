package apperrors

import "net/http"

// --- Auth ---

var ErrEmailAlreadyExists = NewConflictError("auth", "User already exists")

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid credentials",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrInvalidResetToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired reset token",
	http.StatusBadRequest,
)

var ErrAccountBlocked = New(
	CodeAccountBlocked,
	"auth",
	"Your account has been blocked. Please contact support.",
	http.StatusForbidden,
)

var ErrAdminSelfRegistration = New(
	CodeInvalidOperation,
	"auth",
	"Cannot register with the admin role",
	http.StatusBadRequest,
)

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Access denied",
	http.StatusForbidden,
)

// --- Users & profiles ---

var ErrUserNotFound = NewNotFoundError("user", "User not found")

var ErrCannotModifyAdmin = New(
	CodeForbidden,
	"user",
	"Admin accounts cannot be blocked or deleted",
	http.StatusForbidden,
)

var ErrNotAnEmployer = NewNotFoundError("user", "Employer not found")

var ErrProfileNotVisible = New(
	CodeForbidden,
	"profile",
	"Only employers and admins can view job seeker profiles",
	http.StatusForbidden,
)

// --- Jobs ---

var ErrJobNotFound = NewNotFoundError("job", "Job not found")

var ErrJobDeadlinePassed = NewNotFoundError("job", "This job is no longer available (application deadline has passed)")

var ErrJobPositionsFilled = NewNotFoundError("job", "This job is no longer available (All positions filled)")

var ErrNotJobOwner = New(
	CodeForbidden,
	"job",
	"You can only manage your own jobs",
	http.StatusForbidden,
)

var ErrEmployerPendingReview = New(
	CodeForbidden,
	"job",
	"Your profile is pending admin review. You can post jobs once verified.",
	http.StatusForbidden,
)

// --- Applications ---

var ErrJobNotAvailable = New(
	CodeNotAvailable,
	"application",
	"This job is not available for applications",
	http.StatusBadRequest,
)

var ErrAlreadyApplied = NewConflictError("application", "You have already applied for this job")

var ErrResumeRequired = New(
	CodeValidationFailed,
	"application",
	"Please upload your resume before applying",
	http.StatusBadRequest,
)

var ErrApplicationNotFound = NewNotFoundError("application", "Application not found")

var ErrNotApplicant = New(
	CodeForbidden,
	"application",
	"You can only view details of jobs you have applied to",
	http.StatusForbidden,
)

var ErrNoOpeningsLeft = New(
	CodeLimitExceeded,
	"application",
	"All positions for this job are already filled",
	http.StatusBadRequest,
)

// --- Notifications & reports ---

var ErrNotificationNotFound = NewNotFoundError("notification", "Notification not found")

var ErrAlreadyReported = NewConflictError("report", "You have already reported this job")

var ErrReportNotFound = NewNotFoundError("report", "Report not found")

// --- Uploads ---

var ErrFileRequired = New(
	CodeValidationFailed,
	"upload",
	"No file uploaded",
	http.StatusBadRequest,
)

var ErrFileTooLarge = New(
	CodeLimitExceeded,
	"upload",
	"File size exceeds the 5MB limit",
	http.StatusRequestEntityTooLarge,
)

var ErrInvalidFileType = New(
	CodeValidationFailed,
	"upload",
	"The provided file type is not allowed",
	http.StatusBadRequest,
)

var ErrResumeNotFound = NewNotFoundError("upload", "Resume not found")

// --- Transport ---

var ErrRateLimited = New(
	CodeRateLimited,
	"system",
	"Too many requests. Please try again later.",
	http.StatusTooManyRequests,
)
