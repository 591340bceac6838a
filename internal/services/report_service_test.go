package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobportal_backend/internal/models"
	"jobportal_backend/internal/services"
	"jobportal_backend/internal/services/dto"
	"jobportal_backend/internal/testutil"
	"jobportal_backend/pkg/apperrors"
)

type reportFixture struct {
	e        *env
	admin    *models.User
	employer *models.User
	seeker   *models.User
	job      *models.Job
	report   *models.Report
}

func newReportFixture(t *testing.T) *reportFixture {
	t.Helper()
	e := newEnv(t)
	f := &reportFixture{
		e:        e,
		admin:    testutil.CreateUser(t, e.db, "Admin", "secret1", models.UserRoleAdmin),
		employer: testutil.CreateUser(t, e.db, "Boss", "secret1", models.UserRoleEmployer),
		seeker:   testutil.CreateUser(t, e.db, "Sam", "secret1", models.UserRoleJobSeeker),
	}
	f.job = testutil.CreateJob(t, e.db, f.employer, "Too good to be true", models.JobStatusApproved)

	resp, err := e.svc.ReportService.ReportJob(e.db, f.seeker.ID, f.job.ID, &dto.CreateReportRequest{
		Reason: "Scam", Description: "Asks for a <b>deposit</b>",
	})
	require.NoError(t, err)
	f.report = resp.Report
	return f
}

func TestReportJob(t *testing.T) {
	f := newReportFixture(t)
	e := f.e

	assert.Equal(t, models.ReportStatusPending, f.report.Status)
	assert.Equal(t, "Asks for a deposit", f.report.Description)

	_, err := e.svc.ReportService.ReportJob(e.db, f.seeker.ID, f.job.ID, &dto.CreateReportRequest{Reason: "Again"})
	assert.ErrorIs(t, err, apperrors.ErrAlreadyReported)

	_, err = e.svc.ReportService.ReportJob(e.db, f.seeker.ID, "missing", &dto.CreateReportRequest{Reason: "Scam"})
	assert.ErrorIs(t, err, apperrors.ErrJobNotFound)

	notes := e.notifications(t, f.admin.ID)
	require.Len(t, notes, 1)
	assert.Equal(t, "Job Reported", notes[0].Title)
	assert.Equal(t, "/admin/reports/"+f.report.ID, notes[0].Link)

	pending, err := e.svc.ReportService.GetPendingReports(e.db)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.NotNil(t, pending[0].Job)
	assert.Equal(t, f.job.Title, pending[0].Job.Title)
}

func TestReviewReport_BlockJob(t *testing.T) {
	f := newReportFixture(t)
	e := f.e

	resp, err := e.svc.ReportService.ReviewReport(e.db, f.admin.ID, f.report.ID, &dto.ReviewReportRequest{
		Status: models.ReportStatusResolved, Action: services.ReportActionBlockJob,
	})
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusResolved, resp.Report.Status)
	require.NotNil(t, resp.Report.ReviewedBy)
	assert.Equal(t, f.admin.ID, *resp.Report.ReviewedBy)

	var job models.Job
	require.NoError(t, e.db.First(&job, "id = ?", f.job.ID).Error)
	assert.Equal(t, models.JobStatusRejected, job.Status)
	assert.Equal(t, "Reported as fake/inappropriate", job.RejectionReason)
	assert.False(t, e.reload(t, f.employer).IsBlocked)

	pending, err := e.svc.ReportService.GetPendingReports(e.db)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestReviewReport_BlockEmployer(t *testing.T) {
	f := newReportFixture(t)
	e := f.e

	login, err := e.svc.AuthService.Login(e.db, &dto.LoginRequest{Email: f.employer.Email, Password: "secret1"})
	require.NoError(t, err)

	_, err = e.svc.ReportService.ReviewReport(e.db, f.admin.ID, f.report.ID, &dto.ReviewReportRequest{
		Status: models.ReportStatusResolved, Action: services.ReportActionBlockEmployer,
	})
	require.NoError(t, err)
	assert.True(t, e.reload(t, f.employer).IsBlocked)

	_, err = e.svc.AuthService.RefreshToken(e.db, login.RefreshToken)
	assert.Error(t, err)
	_, err = e.svc.AuthService.Login(e.db, &dto.LoginRequest{Email: f.employer.Email, Password: "secret1"})
	assert.ErrorIs(t, err, apperrors.ErrAccountBlocked)
}

func TestReviewReport_Dismiss(t *testing.T) {
	f := newReportFixture(t)
	e := f.e

	_, err := e.svc.ReportService.ReviewReport(e.db, f.admin.ID, f.report.ID, &dto.ReviewReportRequest{
		Status: models.ReportStatusDismissed, Action: services.ReportActionNone,
	})
	require.NoError(t, err)

	var job models.Job
	require.NoError(t, e.db.First(&job, "id = ?", f.job.ID).Error)
	assert.Equal(t, models.JobStatusApproved, job.Status)

	_, err = e.svc.ReportService.ReviewReport(e.db, f.admin.ID, "missing", &dto.ReviewReportRequest{
		Status: models.ReportStatusDismissed,
	})
	assert.ErrorIs(t, err, apperrors.ErrReportNotFound)
}
