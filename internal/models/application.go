package models

import "gorm.io/gorm"

const (
	ApplicationStatusPending  = "pending"
	ApplicationStatusApproved = "approved"
	ApplicationStatusRejected = "rejected"
)

// @description Application model
// Employer id, seeker email and job reference number are copied from the
// job and seeker at submission time so listing screens need no joins.
// The composite unique index is what actually holds the one-application-
// per-seeker-per-job invariant under concurrent submissions.
type Application struct {
	gorm.Model
	JobID           uint   `json:"job_id" gorm:"uniqueIndex:idx_applications_seeker_job"`
	UserNumber      string `json:"user_number" gorm:"uniqueIndex:idx_applications_seeker_job"`
	EmployerID      uint   `json:"employer_id" gorm:"index"`
	Email           string `json:"email"`
	ReferenceNumber string `json:"reference_number"`
	Status          string `json:"status" gorm:"default:pending"`
	Job             Job    `json:"job,omitempty" gorm:"foreignKey:JobID"`
}
