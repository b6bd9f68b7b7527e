package domain

import "errors"

var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUserNotFound        = errors.New("user not found")
	ErrUserExists          = errors.New("user already exists")
	ErrSelfDelete          = errors.New("cannot delete your own account")
	ErrForbidden           = errors.New("access forbidden")
	ErrUnauthenticated     = errors.New("not authenticated")
	ErrInvalidRole         = errors.New("invalid role")
	ErrInquiryNotFound     = errors.New("inquiry not found")
	ErrInvalidStatus       = errors.New("invalid inquiry status")
	ErrEmptyMessage        = errors.New("message text is empty")
	ErrProjectNotFound     = errors.New("project not found")
	ErrServiceNotFound     = errors.New("service not found")
	ErrMessageNotFound     = errors.New("message not found")
	ErrAboutMissing        = errors.New("about data missing")
	ErrDuplicateSubmission = errors.New("duplicate submission")
	ErrInvalidUpload       = errors.New("invalid upload")
	ErrInvalidInput        = errors.New("invalid input")
)
