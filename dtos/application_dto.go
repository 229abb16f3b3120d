// Copyright (C) 2026 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package dtos

import (
	"time"

	"github.com/google/uuid"
)

type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "pending"
	StatusInReview ApplicationStatus = "in-review"
	StatusAccepted ApplicationStatus = "accepted"
	StatusRejected ApplicationStatus = "rejected"
)

// AllStatuses lists every status in lifecycle order.
var AllStatuses = []ApplicationStatus{StatusPending, StatusInReview, StatusAccepted, StatusRejected}

func (s ApplicationStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusInReview, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition can leave s.
func (s ApplicationStatus) IsTerminal() bool {
	return s == StatusAccepted || s == StatusRejected
}

type Transition struct {
	From ApplicationStatus `json:"from"`
	To   ApplicationStatus `json:"to"`
}

type PersonalInfo struct {
	FirstName   string `json:"firstName" validate:"required"`
	LastName    string `json:"lastName" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	DateOfBirth string `json:"dateOfBirth"`
}

type ProjectDetails struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Category    string   `json:"category"`
	Budget      float64  `json:"budget" validate:"gte=0"`
	Timeline    string   `json:"timeline"`
	Objectives  []string `json:"objectives"`
}

type ApplicationCreateRequest struct {
	PersonalInfo   PersonalInfo   `json:"personalInfo" validate:"required"`
	ProjectDetails ProjectDetails `json:"projectDetails" validate:"required"`
	FileURLs       []string       `json:"fileUrls" validate:"dive,url"`
}

type ApplicationStatusUpdateRequest struct {
	Status ApplicationStatus `json:"status" validate:"required,oneof=pending in-review accepted rejected"`
}

type ApplicationDTO struct {
	ID             uuid.UUID         `json:"id"`
	ApplicantID    uuid.UUID         `json:"applicantId"`
	Status         ApplicationStatus `json:"status"`
	PersonalInfo   PersonalInfo      `json:"personalInfo"`
	ProjectDetails ProjectDetails    `json:"projectDetails"`
	FileURLs       []string          `json:"fileUrls"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}

type FileUploadDTO struct {
	URL  string `json:"url"`
	Path string `json:"path"`
	Size int64  `json:"size"`
}
