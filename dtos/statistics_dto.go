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

import "time"

type DashboardStats struct {
	TotalApplications int `json:"totalApplications"`
	Pending           int `json:"pendingApplications"`
	InReview          int `json:"inReviewApplications"`
	Accepted          int `json:"acceptedApplications"`
	Rejected          int `json:"rejectedApplications"`
	// AcceptanceRate and RejectionRate are whole percentages in [0,100].
	AcceptanceRate int `json:"acceptanceRate"`
	RejectionRate  int `json:"rejectionRate"`
}

type UserStats struct {
	TotalUsers int `json:"totalUsers"`
	Applicants int `json:"applicants"`
	Reviewers  int `json:"reviewers"`
	Admins     int `json:"admins"`
}

type FeedSnapshotDTO struct {
	Applications []ApplicationDTO `json:"applications"`
	Stats        DashboardStats   `json:"stats"`
	Error        string           `json:"error,omitempty"`
	// Final is set on the last snapshot of a feed.
	Final        bool             `json:"final,omitempty"`
}

type ExportDocument struct {
	Applications []ApplicationDTO `json:"applications"`
	Users        []UserDTO        `json:"users"`
	Stats        DashboardStats   `json:"stats"`
	UserStats    UserStats        `json:"userStats"`
	ExportDate   time.Time        `json:"exportDate"`
}
