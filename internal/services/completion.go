package services

import (
	"strings"

	"jobportal_backend/internal/models"
)

const (
	completionBase = 20
	completionMax  = 100
)

// Completion scores how much of the role-specific profile a user has filled, 0..100.
func Completion(u *models.User) int {
	score := completionBase

	switch u.Role {
	case models.UserRoleJobSeeker:
		if present(u.Phone) {
			score += 10
		}
		if present(u.Location) {
			score += 10
		}
		if present(u.Resume) {
			score += 20
		}
		if len(u.Skills) > 0 {
			score += 15
		}
		if len(u.Education) > 0 {
			score += 15
		}
		if len(u.Experience) > 0 {
			score += 10
		}
	case models.UserRoleEmployer:
		if present(u.CompanyName) {
			score += 20
		}
		if present(u.CompanyWebsite) {
			score += 15
		}
		if present(u.Industry) {
			score += 15
		}
		if present(u.CompanySize) {
			score += 15
		}
		if present(u.CompanyDescription) {
			score += 35
		}
	}

	if score > completionMax {
		return completionMax
	}
	return score
}

// EmployerReady reports whether an employer may post jobs as far as the profile is concerned.
// Verification is checked separately.
func EmployerReady(u *models.User) bool {
	return u.Role == models.UserRoleEmployer &&
		Completion(u) == completionMax &&
		present(u.CompanyName) &&
		present(u.CompanyWebsite) &&
		present(u.Industry) &&
		present(u.CompanySize) &&
		present(u.CompanyDescription)
}

// refreshCompletion recomputes the cached score and reports whether it changed.
func refreshCompletion(u *models.User) bool {
	score := Completion(u)
	if score == u.ProfileCompletion {
		return false
	}
	u.ProfileCompletion = score
	return true
}

func present(s string) bool {
	return strings.TrimSpace(s) != ""
}
