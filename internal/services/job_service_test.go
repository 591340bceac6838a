package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobportal_backend/internal/models"
	"jobportal_backend/internal/services/dto"
	"jobportal_backend/internal/testutil"
	"jobportal_backend/pkg/apperrors"
)

func createJobRequest() *dto.CreateJobRequest {
	return &dto.CreateJobRequest{
		Title:       "Go Developer",
		Description: "Write <i>services</i>",
		Company:     "Acme Corp",
		Location:    "Remote",
		Category:    "Engineering",
	}
}

func TestCreateJob_Gates(t *testing.T) {
	e := newEnv(t)
	admin := testutil.CreateUser(t, e.db, "Admin", "secret1", models.UserRoleAdmin)
	employer := testutil.CreateUser(t, e.db, "Boss", "secret1", models.UserRoleEmployer)

	_, err := e.svc.JobService.CreateJob(e.db, employer.ID, createJobRequest())
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 403, appErr.HTTPCode)
	assert.Equal(t, apperrors.CodeProfileIncomplete, appErr.Code)
	assert.Contains(t, appErr.Message, "Current completion: 20%")

	testutil.CompleteEmployer(t, e.db, employer)
	require.NoError(t, e.db.Model(employer).Update("is_verified", false).Error)
	_, err = e.svc.JobService.CreateJob(e.db, employer.ID, createJobRequest())
	assert.ErrorIs(t, err, apperrors.ErrEmployerPendingReview)

	require.NoError(t, e.db.Model(employer).Update("is_verified", true).Error)
	resp, err := e.svc.JobService.CreateJob(e.db, employer.ID, createJobRequest())
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusPending, resp.Job.Status)
	assert.Equal(t, "Write services", resp.Job.Description)
	assert.Equal(t, models.JobTypeFullTime, resp.Job.Type)
	require.NotNil(t, resp.Job.Openings)
	assert.Equal(t, 1, *resp.Job.Openings)

	notes := e.notifications(t, admin.ID)
	require.Len(t, notes, 1)
	assert.Equal(t, models.NotificationTypeJob, notes[0].Type)
	assert.Equal(t, "/admin/jobs/"+resp.Job.ID, notes[0].Link)
}

func TestCreateJob_Deadline(t *testing.T) {
	e := newEnv(t)
	employer := testutil.CreateUser(t, e.db, "Boss", "secret1", models.UserRoleEmployer)
	testutil.CompleteEmployer(t, e.db, employer)

	req := createJobRequest()
	req.ApplicationDeadline = "not a date"
	_, err := e.svc.JobService.CreateJob(e.db, employer.ID, req)
	require.Error(t, err)

	req.ApplicationDeadline = "2031-02-03"
	resp, err := e.svc.JobService.CreateJob(e.db, employer.ID, req)
	require.NoError(t, err)
	require.NotNil(t, resp.Job.ApplicationDeadline)
	assert.Equal(t, 3, resp.Job.ApplicationDeadline.Day())
	assert.Equal(t, models.ExperienceLevelEntry, resp.Job.ExperienceLevel)
}

func TestListJobs_OnlyVisible(t *testing.T) {
	e := newEnv(t)
	employer := testutil.CreateUser(t, e.db, "Boss", "secret1", models.UserRoleEmployer)
	seeker := testutil.CreateUser(t, e.db, "Sam", "secret1", models.UserRoleJobSeeker)

	visible := testutil.CreateJob(t, e.db, employer, "Visible", models.JobStatusApproved)
	testutil.CreateJob(t, e.db, employer, "Pending", models.JobStatusPending)
	testutil.CreateJob(t, e.db, employer, "Rejected", models.JobStatusRejected)

	expired := testutil.CreateJob(t, e.db, employer, "Expired", models.JobStatusApproved)
	yesterday := time.Now().AddDate(0, 0, -1)
	require.NoError(t, e.db.Model(expired).Update("application_deadline", yesterday).Error)

	today := testutil.CreateJob(t, e.db, employer, "Closes today", models.JobStatusApproved)
	require.NoError(t, e.db.Model(today).Update("application_deadline", time.Now()).Error)

	full := testutil.CreateJob(t, e.db, employer, "Full", models.JobStatusApproved)
	require.NoError(t, e.db.Create(&models.Application{
		JobID: full.ID, UserID: seeker.ID, Status: models.ApplicationStatusAccepted, AppliedAt: time.Now(),
	}).Error)

	unlimited := testutil.CreateJob(t, e.db, employer, "Unlimited", models.JobStatusApproved)
	require.NoError(t, e.db.Model(unlimited).Update("openings", 0).Error)

	jobs, err := e.svc.JobService.ListJobs(e.db, &dto.JobListQuery{})
	require.NoError(t, err)

	titles := map[string]dto.JobView{}
	for _, j := range jobs {
		assert.Equal(t, models.JobStatusApproved, j.Status)
		titles[j.Title] = j
	}
	assert.Len(t, titles, 3)
	assert.Contains(t, titles, visible.Title)
	assert.Contains(t, titles, today.Title)
	assert.Equal(t, "Unlimited", titles["Unlimited"].AvailablePositions)
	assert.Equal(t, int64(1), titles["Visible"].AvailablePositions)

	filtered, err := e.svc.JobService.ListJobs(e.db, &dto.JobListQuery{Search: "UNLIM"})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, unlimited.ID, filtered[0].ID)
}

func TestGetJob_VisibilityAndViews(t *testing.T) {
	e := newEnv(t)
	employer := testutil.CreateUser(t, e.db, "Boss", "secret1", models.UserRoleEmployer)
	other := testutil.CreateUser(t, e.db, "Other", "secret1", models.UserRoleEmployer)
	admin := testutil.CreateUser(t, e.db, "Admin", "secret1", models.UserRoleAdmin)
	pending := testutil.CreateJob(t, e.db, employer, "Pending", models.JobStatusPending)

	_, err := e.svc.JobService.GetJob(e.db, nil, pending.ID)
	assert.ErrorIs(t, err, apperrors.ErrJobNotFound)
	_, err = e.svc.JobService.GetJob(e.db, other, pending.ID)
	assert.ErrorIs(t, err, apperrors.ErrJobNotFound)

	view, err := e.svc.JobService.GetJob(e.db, employer, pending.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, view.Views)
	_, err = e.svc.JobService.GetJob(e.db, admin, pending.ID)
	require.NoError(t, err)

	expired := testutil.CreateJob(t, e.db, employer, "Expired", models.JobStatusApproved)
	require.NoError(t, e.db.Model(expired).Update("application_deadline", time.Now().AddDate(0, 0, -2)).Error)
	_, err = e.svc.JobService.GetJob(e.db, nil, expired.ID)
	assert.ErrorIs(t, err, apperrors.ErrJobDeadlinePassed)

	_, err = e.svc.JobService.GetJob(e.db, nil, "missing")
	assert.ErrorIs(t, err, apperrors.ErrJobNotFound)
}

func TestReviewJob_RejectNotifiesOwnerOnce(t *testing.T) {
	e := newEnv(t)
	employer := testutil.CreateUser(t, e.db, "Boss", "secret1", models.UserRoleEmployer)
	admin := testutil.CreateUser(t, e.db, "Admin", "secret1", models.UserRoleAdmin)
	job := testutil.CreateJob(t, e.db, employer, "Dev", models.JobStatusPending)

	resp, err := e.svc.JobService.ReviewJob(e.db, admin.ID, job.ID, &dto.ReviewJobRequest{
		Status: models.JobStatusRejected, RejectionReason: "x",
	})
	require.NoError(t, err)
	assert.Equal(t, "Job rejected successfully", resp.Message)

	view, err := e.svc.JobService.GetJob(e.db, employer, job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusRejected, view.Status)
	assert.Equal(t, "x", view.RejectionReason)

	notes := e.notifications(t, employer.ID)
	require.Len(t, notes, 1)
	assert.Equal(t, models.NotificationTypeJob, notes[0].Type)
	assert.Equal(t, "Job rejected", notes[0].Title)
	assert.Contains(t, e.sentSubjects(employer.Email), "Job rejected")

	resp, err = e.svc.JobService.ReviewJob(e.db, admin.ID, job.ID, &dto.ReviewJobRequest{Status: models.JobStatusApproved})
	require.NoError(t, err)
	assert.Empty(t, resp.Job.RejectionReason)
	require.NotNil(t, resp.Job.ApprovedBy)
	assert.Equal(t, admin.ID, *resp.Job.ApprovedBy)
}

func TestDeleteJob_OwnerOnly(t *testing.T) {
	e := newEnv(t)
	employer := testutil.CreateUser(t, e.db, "Boss", "secret1", models.UserRoleEmployer)
	other := testutil.CreateUser(t, e.db, "Other", "secret1", models.UserRoleEmployer)
	job := testutil.CreateJob(t, e.db, employer, "Dev", models.JobStatusApproved)

	assert.ErrorIs(t, e.svc.JobService.DeleteJob(e.db, other.ID, job.ID), apperrors.ErrNotJobOwner)
	require.NoError(t, e.svc.JobService.DeleteJob(e.db, employer.ID, job.ID))
	assert.ErrorIs(t, e.svc.JobService.DeleteJob(e.db, employer.ID, job.ID), apperrors.ErrJobNotFound)
}

func TestGetEmployerJobs_Badges(t *testing.T) {
	e := newEnv(t)
	employer := testutil.CreateUser(t, e.db, "Boss", "secret1", models.UserRoleEmployer)
	seeker := testutil.CreateUser(t, e.db, "Sam", "secret1", models.UserRoleJobSeeker)
	job := testutil.CreateJob(t, e.db, employer, "Dev", models.JobStatusApproved)
	require.NoError(t, e.db.Create(&models.Application{
		JobID: job.ID, UserID: seeker.ID, Status: models.ApplicationStatusPending, AppliedAt: time.Now(),
	}).Error)

	jobs, err := e.svc.JobService.GetEmployerJobs(e.db, employer.ID)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, int64(1), jobs[0].NewApplicationsCount)
	assert.True(t, jobs[0].HasNewApplications)
	assert.Nil(t, jobs[0].DeadlineStatus)
	require.NotNil(t, jobs[0].OpeningStatus)
	assert.Equal(t, "open", *jobs[0].OpeningStatus)

	_, err = e.svc.ApplicationService.GetJobApplications(e.db, employer.ID, job.ID)
	require.NoError(t, err)

	jobs, err = e.svc.JobService.GetEmployerJobs(e.db, employer.ID)
	require.NoError(t, err)
	assert.Zero(t, jobs[0].NewApplicationsCount)
	assert.False(t, jobs[0].HasNewApplications)
}
