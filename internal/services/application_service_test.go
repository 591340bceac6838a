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

func seekerWithResume(t *testing.T, e *env, name string) *models.User {
	t.Helper()
	u := testutil.CreateUser(t, e.db, name, "secret1", models.UserRoleJobSeeker)
	require.NoError(t, e.db.Model(u).Update("resume", "resumes/"+u.ID+"/cv.pdf").Error)
	u.Resume = "resumes/" + u.ID + "/cv.pdf"
	return u
}

func TestApply_Guards(t *testing.T) {
	e := newEnv(t)
	employer := testutil.CreateUser(t, e.db, "Boss", "secret1", models.UserRoleEmployer)
	noResume := testutil.CreateUser(t, e.db, "Nora", "secret1", models.UserRoleJobSeeker)
	seeker := seekerWithResume(t, e, "Sam")
	job := testutil.CreateJob(t, e.db, employer, "Dev", models.JobStatusApproved)
	pending := testutil.CreateJob(t, e.db, employer, "Pending", models.JobStatusPending)

	_, err := e.svc.ApplicationService.Apply(e.db, employer.ID, &dto.ApplyRequest{JobID: job.ID})
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)

	_, err = e.svc.ApplicationService.Apply(e.db, seeker.ID, &dto.ApplyRequest{JobID: "missing"})
	assert.ErrorIs(t, err, apperrors.ErrJobNotFound)

	_, err = e.svc.ApplicationService.Apply(e.db, seeker.ID, &dto.ApplyRequest{JobID: pending.ID})
	assert.ErrorIs(t, err, apperrors.ErrJobNotAvailable)

	_, err = e.svc.ApplicationService.Apply(e.db, noResume.ID, &dto.ApplyRequest{JobID: job.ID})
	assert.ErrorIs(t, err, apperrors.ErrResumeRequired)

	resp, err := e.svc.ApplicationService.Apply(e.db, seeker.ID, &dto.ApplyRequest{
		JobID: job.ID, CoverLetter: "Hire <b>me</b>",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusPending, resp.Application.Status)
	assert.Equal(t, "Hire me", resp.Application.CoverLetter)
	assert.Equal(t, seeker.Resume, resp.Application.ResumeUsed)

	_, err = e.svc.ApplicationService.Apply(e.db, seeker.ID, &dto.ApplyRequest{JobID: job.ID})
	assert.ErrorIs(t, err, apperrors.ErrAlreadyApplied)

	var stored models.Job
	require.NoError(t, e.db.First(&stored, "id = ?", job.ID).Error)
	assert.Equal(t, 1, stored.ApplicationsCount)

	notes := e.notifications(t, employer.ID)
	require.Len(t, notes, 1)
	assert.Equal(t, models.NotificationTypeApplication, notes[0].Type)
	assert.Equal(t, "/employer/jobs/"+job.ID, notes[0].Link)
	assert.Contains(t, e.sentSubjects(employer.Email), "New Application Received")
	assert.Contains(t, e.sentSubjects(seeker.Email), "Application Submitted")
}

func TestApply_ExpiredDeadline(t *testing.T) {
	e := newEnv(t)
	employer := testutil.CreateUser(t, e.db, "Boss", "secret1", models.UserRoleEmployer)
	seeker := seekerWithResume(t, e, "Sam")
	job := testutil.CreateJob(t, e.db, employer, "Dev", models.JobStatusApproved)
	require.NoError(t, e.db.Model(job).Update("application_deadline", time.Now().AddDate(0, 0, -3)).Error)

	_, err := e.svc.ApplicationService.Apply(e.db, seeker.ID, &dto.ApplyRequest{JobID: job.ID})
	assert.ErrorIs(t, err, apperrors.ErrJobNotAvailable)
}

func TestApplicationCapacity(t *testing.T) {
	e := newEnv(t)
	employer := testutil.CreateUser(t, e.db, "Boss", "secret1", models.UserRoleEmployer)
	first := seekerWithResume(t, e, "First")
	second := seekerWithResume(t, e, "Second")
	late := seekerWithResume(t, e, "Late")
	job := testutil.CreateJob(t, e.db, employer, "Dev", models.JobStatusApproved)

	a1, err := e.svc.ApplicationService.Apply(e.db, first.ID, &dto.ApplyRequest{JobID: job.ID})
	require.NoError(t, err)
	a2, err := e.svc.ApplicationService.Apply(e.db, second.ID, &dto.ApplyRequest{JobID: job.ID})
	require.NoError(t, err)

	updated, err := e.svc.ApplicationService.UpdateStatus(e.db, employer.ID, a1.Application.ID, &dto.UpdateApplicationStatusRequest{
		Status: models.ApplicationStatusShortlisted, EmployerNotes: "Strong <i>profile</i>",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusShortlisted, updated.Application.Status)
	assert.Equal(t, "Strong profile", updated.Application.EmployerNotes)

	// The single opening is taken.
	_, err = e.svc.ApplicationService.UpdateStatus(e.db, employer.ID, a2.Application.ID, &dto.UpdateApplicationStatusRequest{
		Status: models.ApplicationStatusAccepted,
	})
	assert.ErrorIs(t, err, apperrors.ErrNoOpeningsLeft)

	// Moving between filling states keeps the opening.
	_, err = e.svc.ApplicationService.UpdateStatus(e.db, employer.ID, a1.Application.ID, &dto.UpdateApplicationStatusRequest{
		Status: models.ApplicationStatusAccepted,
	})
	require.NoError(t, err)

	_, err = e.svc.ApplicationService.Apply(e.db, late.ID, &dto.ApplyRequest{JobID: job.ID})
	assert.ErrorIs(t, err, apperrors.ErrJobNotAvailable)

	_, err = e.svc.JobService.GetJob(e.db, late, job.ID)
	assert.ErrorIs(t, err, apperrors.ErrJobPositionsFilled)

	jobs, err := e.svc.JobService.ListJobs(e.db, &dto.JobListQuery{})
	require.NoError(t, err)
	assert.Empty(t, jobs)

	apps, err := e.svc.ApplicationService.GetJobApplications(e.db, employer.ID, job.ID)
	require.NoError(t, err)
	require.Len(t, apps, 1, "a full job only lists the filled applications")
	assert.Equal(t, first.ID, apps[0].UserID)

	notes := e.notifications(t, first.ID)
	require.Len(t, notes, 2)
	assert.Equal(t, "/jobseeker/applications", notes[0].Link)
	assert.Contains(t, e.sentSubjects(first.Email), "Application accepted")
}

func TestUpdateStatus_Guards(t *testing.T) {
	e := newEnv(t)
	employer := testutil.CreateUser(t, e.db, "Boss", "secret1", models.UserRoleEmployer)
	other := testutil.CreateUser(t, e.db, "Other", "secret1", models.UserRoleEmployer)
	seeker := seekerWithResume(t, e, "Sam")
	job := testutil.CreateJob(t, e.db, employer, "Dev", models.JobStatusApproved)
	applied, err := e.svc.ApplicationService.Apply(e.db, seeker.ID, &dto.ApplyRequest{JobID: job.ID})
	require.NoError(t, err)

	_, err = e.svc.ApplicationService.UpdateStatus(e.db, employer.ID, applied.Application.ID, &dto.UpdateApplicationStatusRequest{
		Status: models.ApplicationStatusPending,
	})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.HTTPCode)

	_, err = e.svc.ApplicationService.UpdateStatus(e.db, other.ID, applied.Application.ID, &dto.UpdateApplicationStatusRequest{
		Status: models.ApplicationStatusRejected,
	})
	assert.ErrorIs(t, err, apperrors.ErrNotJobOwner)

	_, err = e.svc.ApplicationService.UpdateStatus(e.db, employer.ID, "missing", &dto.UpdateApplicationStatusRequest{
		Status: models.ApplicationStatusRejected,
	})
	assert.ErrorIs(t, err, apperrors.ErrApplicationNotFound)

	_, err = e.svc.ApplicationService.GetJobApplications(e.db, other.ID, job.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotJobOwner)
}

func TestMyApplicationsAndAppliedDetails(t *testing.T) {
	e := newEnv(t)
	employer := testutil.CreateUser(t, e.db, "Boss", "secret1", models.UserRoleEmployer)
	seeker := seekerWithResume(t, e, "Sam")
	job := testutil.CreateJob(t, e.db, employer, "Dev", models.JobStatusApproved)
	other := testutil.CreateJob(t, e.db, employer, "Ops", models.JobStatusApproved)

	_, err := e.svc.ApplicationService.Apply(e.db, seeker.ID, &dto.ApplyRequest{JobID: job.ID})
	require.NoError(t, err)

	mine, err := e.svc.ApplicationService.GetMyApplications(e.db, seeker.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, job.ID, mine[0].JobID)

	details, err := e.svc.ApplicationService.GetAppliedJobDetails(e.db, seeker.ID, job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusPending, details.ApplicationStatus)
	assert.Equal(t, job.ID, details.ID)

	_, err = e.svc.ApplicationService.GetAppliedJobDetails(e.db, seeker.ID, other.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotApplicant)
}
