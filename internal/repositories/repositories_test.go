package repositories_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobportal_backend/internal/models"
	"jobportal_backend/internal/repositories"
	"jobportal_backend/internal/testutil"
)

func TestUserRepository_CreateRejectsDuplicateEmail(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repositories.NewUserRepository()

	require.NoError(t, repo.Create(db, &models.User{Name: "A", Email: "a@x.io", PasswordHash: "h", Role: models.UserRoleJobSeeker}))
	err := repo.Create(db, &models.User{Name: "B", Email: "a@x.io", PasswordHash: "h", Role: models.UserRoleEmployer})
	assert.ErrorIs(t, err, repositories.ErrUserAlreadyExists)

	_, err = repo.FindByEmail(db, "missing@x.io")
	assert.ErrorIs(t, err, repositories.ErrUserNotFound)
}

func TestUserRepository_FindWithFilterIsCaseInsensitive(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repositories.NewUserRepository()

	seeker := testutil.CreateUser(t, db, "Alice Smith", "secret1", models.UserRoleJobSeeker)
	employer := testutil.CreateUser(t, db, "Bob", "secret1", models.UserRoleEmployer)
	employer.CompanyName = "Globex"
	require.NoError(t, repo.Update(db, employer))

	users, err := repo.FindWithFilter(db, repositories.UserFilter{Search: "ALICE"})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, seeker.ID, users[0].ID)

	users, err = repo.FindWithFilter(db, repositories.UserFilter{Search: "glob", Role: models.UserRoleEmployer})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, employer.ID, users[0].ID)

	users, err = repo.FindWithFilter(db, repositories.UserFilter{Role: models.UserRoleEmployer, Search: "alice"})
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestUserRepository_DeleteCascade(t *testing.T) {
	db := testutil.NewDB(t)
	users := repositories.NewUserRepository()
	apps := repositories.NewApplicationRepository()
	reports := repositories.NewReportRepository()
	notes := repositories.NewNotificationRepository()

	employer := testutil.CreateUser(t, db, "Employer", "secret1", models.UserRoleEmployer)
	seeker := testutil.CreateUser(t, db, "Seeker", "secret1", models.UserRoleJobSeeker)
	job := testutil.CreateJob(t, db, employer, "Go Developer", models.JobStatusApproved)

	require.NoError(t, apps.Create(db, &models.Application{JobID: job.ID, UserID: seeker.ID, AppliedAt: time.Now()}))
	require.NoError(t, reports.Create(db, &models.Report{JobID: job.ID, ReportedBy: seeker.ID, Reason: "spam"}))
	require.NoError(t, notes.Create(db, &models.Notification{UserID: employer.ID, Title: "t", Message: "m", Type: models.NotificationTypeSystem}))

	require.NoError(t, users.DeleteCascade(db, employer.ID))

	var count int64
	db.Model(&models.Job{}).Count(&count)
	assert.Zero(t, count)
	db.Model(&models.Application{}).Count(&count)
	assert.Zero(t, count)
	db.Model(&models.Report{}).Count(&count)
	assert.Zero(t, count)
	db.Model(&models.Notification{}).Where("user_id = ?", employer.ID).Count(&count)
	assert.Zero(t, count)

	_, err := users.FindByID(db, seeker.ID)
	assert.NoError(t, err, "other users survive")

	assert.ErrorIs(t, users.DeleteCascade(db, employer.ID), repositories.ErrUserNotFound)
}

func TestApplicationRepository_OnePerJobAndUser(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repositories.NewApplicationRepository()

	employer := testutil.CreateUser(t, db, "Employer", "secret1", models.UserRoleEmployer)
	seeker := testutil.CreateUser(t, db, "Seeker", "secret1", models.UserRoleJobSeeker)
	job := testutil.CreateJob(t, db, employer, "Go Developer", models.JobStatusApproved)

	require.NoError(t, repo.Create(db, &models.Application{JobID: job.ID, UserID: seeker.ID, AppliedAt: time.Now()}))
	err := repo.Create(db, &models.Application{JobID: job.ID, UserID: seeker.ID, AppliedAt: time.Now()})
	assert.ErrorIs(t, err, repositories.ErrDuplicateApplication)
}

func TestReportRepository_OnePerJobAndReporter(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repositories.NewReportRepository()

	employer := testutil.CreateUser(t, db, "Employer", "secret1", models.UserRoleEmployer)
	seeker := testutil.CreateUser(t, db, "Seeker", "secret1", models.UserRoleJobSeeker)
	job := testutil.CreateJob(t, db, employer, "Go Developer", models.JobStatusApproved)

	require.NoError(t, repo.Create(db, &models.Report{JobID: job.ID, ReportedBy: seeker.ID, Reason: "fake"}))
	assert.ErrorIs(t, repo.Create(db, &models.Report{JobID: job.ID, ReportedBy: seeker.ID, Reason: "again"}),
		repositories.ErrDuplicateReport)

	pending, err := repo.FindByStatus(db, models.ReportStatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.NotNil(t, pending[0].Job)
	assert.Equal(t, "Go Developer", pending[0].Job.Title)
	require.NotNil(t, pending[0].Reporter)
	assert.Equal(t, "Seeker", pending[0].Reporter.Name)
}

func TestJobRepository_FiltersAndFilledCounts(t *testing.T) {
	db := testutil.NewDB(t)
	jobs := repositories.NewJobRepository()
	apps := repositories.NewApplicationRepository()

	employer := testutil.CreateUser(t, db, "Employer", "secret1", models.UserRoleEmployer)
	seeker := testutil.CreateUser(t, db, "Seeker", "secret1", models.UserRoleJobSeeker)
	approved := testutil.CreateJob(t, db, employer, "Senior Golang Engineer", models.JobStatusApproved)
	testutil.CreateJob(t, db, employer, "Pending Golang Role", models.JobStatusPending)

	found, err := jobs.FindApproved(db, repositories.JobFilter{Search: "golang"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, approved.ID, found[0].ID)
	require.NotNil(t, found[0].Poster)
	assert.Equal(t, "Employer", found[0].Poster.Name)

	found, err = jobs.FindApproved(db, repositories.JobFilter{Location: "REMOTE", Category: "Engineering"})
	require.NoError(t, err)
	assert.Len(t, found, 1)

	found, err = jobs.FindApproved(db, repositories.JobFilter{Type: models.JobTypeInternship})
	require.NoError(t, err)
	assert.Empty(t, found)

	app := &models.Application{JobID: approved.ID, UserID: seeker.ID, AppliedAt: time.Now()}
	require.NoError(t, apps.Create(db, app))

	filled, err := jobs.FilledCount(db, approved.ID)
	require.NoError(t, err)
	assert.Zero(t, filled)

	app.Status = models.ApplicationStatusShortlisted
	require.NoError(t, apps.Update(db, app))

	counts, err := jobs.FilledCounts(db, []string{approved.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[approved.ID])

	onlyFilled, err := apps.FindByJob(db, approved.ID, true)
	require.NoError(t, err)
	assert.Len(t, onlyFilled, 1)
}

func TestJobRepository_SearchWildcardsAreLiteral(t *testing.T) {
	db := testutil.NewDB(t)
	jobs := repositories.NewJobRepository()
	users := repositories.NewUserRepository()

	employer := testutil.CreateUser(t, db, "Employer", "secret1", models.UserRoleEmployer)
	testutil.CreateJob(t, db, employer, "Golang Engineer", models.JobStatusApproved)
	discount := testutil.CreateJob(t, db, employer, "Pricing 100% Remote_Lead", models.JobStatusApproved)

	for _, term := range []string{"%", "_", "100%", "e_L", "!"} {
		found, err := jobs.FindApproved(db, repositories.JobFilter{Search: term})
		require.NoError(t, err, term)
		if term == "!" {
			assert.Empty(t, found, term)
			continue
		}
		require.Len(t, found, 1, term)
		assert.Equal(t, discount.ID, found[0].ID, term)
	}

	found, err := jobs.FindApproved(db, repositories.JobFilter{Location: "%"})
	require.NoError(t, err)
	assert.Empty(t, found)

	matched, err := users.FindWithFilter(db, repositories.UserFilter{Search: "%"})
	require.NoError(t, err)
	assert.Empty(t, matched)
}

func TestJobRepository_CountersAndCascade(t *testing.T) {
	db := testutil.NewDB(t)
	jobs := repositories.NewJobRepository()
	apps := repositories.NewApplicationRepository()

	employer := testutil.CreateUser(t, db, "Employer", "secret1", models.UserRoleEmployer)
	seeker := testutil.CreateUser(t, db, "Seeker", "secret1", models.UserRoleJobSeeker)
	job := testutil.CreateJob(t, db, employer, "Go Developer", models.JobStatusApproved)

	require.NoError(t, jobs.IncrementViews(db, job))
	require.NoError(t, jobs.IncrementApplicationsCount(db, job.ID))

	reloaded, err := jobs.FindByID(db, job.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, reloaded.Views)
	assert.Equal(t, 1, reloaded.ApplicationsCount)

	require.NoError(t, apps.Create(db, &models.Application{JobID: job.ID, UserID: seeker.ID, AppliedAt: time.Now()}))
	n, err := jobs.CountNewApplications(db, job.ID, time.Now().Add(-time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	require.NoError(t, jobs.DeleteCascade(db, job.ID))
	_, err = jobs.FindByID(db, job.ID)
	assert.ErrorIs(t, err, repositories.ErrJobNotFound)
	assert.ErrorIs(t, jobs.DeleteCascade(db, job.ID), repositories.ErrJobNotFound)
}

func TestRefreshTokenRepository_ReplaceAndClean(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repositories.NewRefreshTokenRepository()

	require.NoError(t, repo.ReplaceForUser(db, &models.RefreshToken{UserID: "u1", Token: "a", ExpiresAt: time.Now().Add(time.Hour)}))
	require.NoError(t, repo.ReplaceForUser(db, &models.RefreshToken{UserID: "u1", Token: "b", ExpiresAt: time.Now().Add(-time.Hour)}))

	_, err := repo.FindByToken(db, "a")
	assert.ErrorIs(t, err, repositories.ErrRefreshTokenNotFound)

	removed, err := repo.DeleteExpired(db, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
}

func TestNotificationRepository_MarkReadOwnerOnly(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repositories.NewNotificationRepository()

	n := &models.Notification{UserID: "owner", Title: "t", Message: "m", Type: models.NotificationTypeJob}
	require.NoError(t, repo.Create(db, n))

	assert.ErrorIs(t, repo.MarkRead(db, n.ID, "someone-else"), repositories.ErrNotificationNotFound)
	require.NoError(t, repo.MarkRead(db, n.ID, "owner"))

	unread, err := repo.CountUnread(db, "owner")
	require.NoError(t, err)
	assert.Zero(t, unread)
}
