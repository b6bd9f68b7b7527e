package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// InquiryStatus represents the lifecycle state of a service inquiry.
type InquiryStatus string

const (
	StatusPending    InquiryStatus = "pending"
	StatusAccepted   InquiryStatus = "accepted"
	StatusInProgress InquiryStatus = "in-progress"
	StatusCompleted  InquiryStatus = "completed"
	StatusRejected   InquiryStatus = "rejected"
)

// InquiryStatuses lists every status in display order.
var InquiryStatuses = []InquiryStatus{
	StatusPending,
	StatusAccepted,
	StatusInProgress,
	StatusCompleted,
	StatusRejected,
}

func (s InquiryStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusInProgress, StatusCompleted, StatusRejected:
		return true
	default:
		return false
	}
}

// ParseInquiryStatus accepts the wire form of a status.
func ParseInquiryStatus(s string) (InquiryStatus, error) {
	st := InquiryStatus(strings.ToLower(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return st, nil
}

// CanTransitionTo reports whether next may follow s. The workflow is not
// restricted: any known status may follow any other, including itself.
func (s InquiryStatus) CanTransitionTo(next InquiryStatus) bool {
	return next.Valid()
}

// ServiceInquiry is a visitor's request for a service, plus its thread.
type ServiceInquiry struct {
	ID           string        `json:"id" bson:"_id"`
	ServiceID    string        `json:"service_id" bson:"service_id"`
	ServiceTitle string        `json:"service_title" bson:"service_title"`
	ClientName   string        `json:"client_name" bson:"client_name"`
	ClientEmail  string        `json:"client_email" bson:"client_email"`
	ClientID     string        `json:"client_id,omitempty" bson:"client_id,omitempty"`
	Message      string        `json:"message" bson:"message"`
	Status       InquiryStatus `json:"status" bson:"status"`
	CreatedAt    time.Time     `json:"created_at" bson:"created_at"`
}

// InquiryMessage is one entry of an inquiry's conversation. Messages are
// append-only.
type InquiryMessage struct {
	ID         string    `json:"id" bson:"_id"`
	InquiryID  string    `json:"inquiry_id" bson:"inquiry_id"`
	SenderID   string    `json:"sender_id" bson:"sender_id"`
	SenderName string    `json:"sender_name" bson:"sender_name"`
	SenderRole Role      `json:"sender_role" bson:"sender_role"`
	Text       string    `json:"text" bson:"text"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}

// SortInquiriesNewestFirst orders inquiries by creation time, newest first.
func SortInquiriesNewestFirst(list []ServiceInquiry) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
}

// SortMessagesOldestFirst orders a conversation chronologically.
func SortMessagesOldestFirst(list []InquiryMessage) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
}
