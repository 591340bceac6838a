package validator

import (
	"fmt"
	"strings"

	"jobportal_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

type ReportAction string

const (
	ReportActionNone          ReportAction = "none"
	ReportActionBlockJob      ReportAction = "block_job"
	ReportActionBlockEmployer ReportAction = "block_employer"
)

// enumRules maps each custom tag to the values it accepts. Messages are derived from the same lists.
var enumRules = map[string][]string{
	// Self-registration roles only; admins are seeded.
	"is-user-role":     {string(models.UserRoleJobSeeker), string(models.UserRoleEmployer)},
	"is-review-status": {string(models.JobStatusApproved), string(models.JobStatusRejected)},
	"is-application-status": {
		string(models.ApplicationStatusShortlisted),
		string(models.ApplicationStatusAccepted),
		string(models.ApplicationStatusRejected),
	},
	"is-report-status": {
		string(models.ReportStatusReviewed),
		string(models.ReportStatusResolved),
		string(models.ReportStatusDismissed),
	},
	"is-report-action":    {string(ReportActionNone), string(ReportActionBlockJob), string(ReportActionBlockEmployer)},
	"is-job-type":         {models.JobTypeFullTime, models.JobTypePartTime, models.JobTypeInternship, models.JobTypeContract},
	"is-experience-level": {models.ExperienceLevelEntry, models.ExperienceLevelMid, models.ExperienceLevelSenior, models.ExperienceLevelLead},
	"is-work-mode":        {models.WorkModeRemote, models.WorkModeOnSite, models.WorkModeHybrid},
}

func registerCustomRules(v *validator.Validate) {
	for tag, allowed := range enumRules {
		if err := v.RegisterValidation(tag, oneOf(allowed...)); err != nil {
			panic(fmt.Sprintf("validator: register %q: %v", tag, err))
		}
	}
}

// enumMessage describes a failed custom rule, or "" for tags that are not ours.
func enumMessage(tag string) string {
	allowed, ok := enumRules[tag]
	if !ok {
		return ""
	}
	return "Must be one of: " + strings.Join(allowed, ", ")
}

// oneOf accepts the empty string so `required` stays the only presence check.
func oneOf(allowed ...string) validator.Func {
	set := make(map[string]struct{}, len(allowed))
	for _, a := range allowed {
		set[a] = struct{}{}
	}
	return func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if value == "" {
			return true
		}
		_, ok := set[value]
		return ok
	}
}
