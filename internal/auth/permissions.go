package auth

import "jobportal_backend/internal/models"

// Capability names an action guarded by role.
type Capability string

const (
	CapViewOwnProfile      Capability = "profile:read:self"
	CapEditOwnProfile      Capability = "profile:write:self"
	CapUploadResume        Capability = "profile:resume"
	CapUploadLogo          Capability = "profile:logo"
	CapViewUserProfile     Capability = "users:profile:read"
	CapRequestVerification Capability = "employer:verification:request"
	CapPostJob             Capability = "jobs:create"
	CapDeleteOwnJob        Capability = "jobs:delete:own"
	CapListOwnJobs         Capability = "jobs:list:own"
	CapListJobApplications Capability = "applications:list:job"
	CapApply               Capability = "applications:create"
	CapListOwnApplications Capability = "applications:list:own"
	CapViewAppliedJob      Capability = "applications:job:details"
	CapDecideApplication   Capability = "applications:decide"
	CapReportJob           Capability = "reports:create"
	CapReadNotifications   Capability = "notifications:read"
	CapModerateJobs        Capability = "admin:jobs"
	CapVerifyEmployers     Capability = "admin:employers"
	CapViewStats           Capability = "admin:stats"
	CapManageUsers         Capability = "admin:users"
	CapModerateReports     Capability = "admin:reports"
)

// capabilities is the role allow-list consulted by the authorization stage.
var capabilities = map[models.UserRole]map[Capability]bool{
	models.UserRoleJobSeeker: set(
		CapViewOwnProfile, CapEditOwnProfile, CapUploadResume, CapViewUserProfile,
		CapApply, CapListOwnApplications, CapViewAppliedJob,
		CapReportJob, CapReadNotifications,
	),
	models.UserRoleEmployer: set(
		CapViewOwnProfile, CapEditOwnProfile, CapUploadLogo, CapViewUserProfile,
		CapRequestVerification, CapPostJob, CapDeleteOwnJob, CapListOwnJobs,
		CapListJobApplications, CapDecideApplication,
		CapReportJob, CapReadNotifications,
	),
	models.UserRoleAdmin: set(
		CapViewOwnProfile, CapEditOwnProfile, CapViewUserProfile, CapReadNotifications,
		CapModerateJobs, CapVerifyEmployers, CapViewStats, CapManageUsers, CapModerateReports,
	),
}

func set(caps ...Capability) map[Capability]bool {
	m := make(map[Capability]bool, len(caps))
	for _, c := range caps {
		m[c] = true
	}
	return m
}

// Can reports whether role holds capability. Unknown roles hold nothing.
func Can(role models.UserRole, capability Capability) bool {
	return capabilities[role][capability]
}

// RolesWith lists the roles that hold capability, in models.Roles order.
func RolesWith(capability Capability) []models.UserRole {
	var roles []models.UserRole
	for _, r := range models.Roles {
		if Can(r, capability) {
			roles = append(roles, r)
		}
	}
	return roles
}
