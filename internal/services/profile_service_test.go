package services_test

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobportal_backend/internal/models"
	"jobportal_backend/internal/services/dto"
	"jobportal_backend/internal/testutil"
	"jobportal_backend/pkg/apperrors"
)

func strPtr(s string) *string { return &s }

func TestUpdateProfile_EmployerReachingFullCompletionNeedsReview(t *testing.T) {
	e := newEnv(t)
	admin := testutil.CreateUser(t, e.db, "Admin", "secret1", models.UserRoleAdmin)
	employer := testutil.CreateUser(t, e.db, "Boss", "secret1", models.UserRoleEmployer)
	require.NoError(t, e.db.Model(employer).Update("is_verified", true).Error)

	partial, err := e.svc.ProfileService.UpdateProfile(e.db, employer.ID, &dto.UpdateProfileRequest{
		CompanyName: strPtr("Acme"),
		Industry:    strPtr("Software"),
	})
	require.NoError(t, err)
	assert.False(t, partial.RequiresAdminReview)
	assert.Equal(t, 55, partial.User.ProfileCompletion)

	full, err := e.svc.ProfileService.UpdateProfile(e.db, employer.ID, &dto.UpdateProfileRequest{
		CompanyWebsite:     strPtr("https://acme.example"),
		CompanySize:        strPtr("11-50"),
		CompanyDescription: strPtr("<b>We</b> build <script>alert(1)</script>things"),
	})
	require.NoError(t, err)
	assert.True(t, full.RequiresAdminReview)
	assert.Equal(t, 100, full.User.ProfileCompletion)
	assert.False(t, full.User.IsVerified)
	assert.Equal(t, "We build things", full.User.CompanyDescription)

	adminNotes := e.notifications(t, admin.ID)
	require.Len(t, adminNotes, 1)
	assert.Equal(t, "Employer Profile Completed", adminNotes[0].Title)
	assert.Equal(t, "/admin/employers/unverified", adminNotes[0].Link)
	assert.Equal(t, 1, e.pusher.countFor(admin.ID))

	// Later edits still report the pending review but do not notify admins again.
	again, err := e.svc.ProfileService.UpdateProfile(e.db, employer.ID, &dto.UpdateProfileRequest{Phone: strPtr("123")})
	require.NoError(t, err)
	assert.True(t, again.RequiresAdminReview)
	assert.Len(t, e.notifications(t, admin.ID), 1)

	require.NoError(t, e.db.Model(&models.User{}).Where("id = ?", employer.ID).Update("is_verified", true).Error)
	verified, err := e.svc.ProfileService.UpdateProfile(e.db, employer.ID, &dto.UpdateProfileRequest{Phone: strPtr("456")})
	require.NoError(t, err)
	assert.False(t, verified.RequiresAdminReview)
	assert.True(t, verified.User.IsVerified)
}

func TestGetProfile_PersistsRecomputedCompletion(t *testing.T) {
	e := newEnv(t)
	seeker := testutil.CreateUser(t, e.db, "Sam", "secret1", models.UserRoleJobSeeker)
	require.NoError(t, e.db.Model(seeker).Updates(map[string]interface{}{"phone": "1", "location": "Oslo"}).Error)

	got, err := e.svc.ProfileService.GetProfile(e.db, seeker.ID)
	require.NoError(t, err)
	assert.Equal(t, 40, got.ProfileCompletion)
	assert.Equal(t, 40, e.reload(t, seeker).ProfileCompletion)
}

func TestGetPublicProfile_SeekersHiddenFromOtherSeekers(t *testing.T) {
	e := newEnv(t)
	seeker := testutil.CreateUser(t, e.db, "Sam", "secret1", models.UserRoleJobSeeker)
	other := testutil.CreateUser(t, e.db, "Sue", "secret1", models.UserRoleJobSeeker)
	employer := testutil.CreateUser(t, e.db, "Boss", "secret1", models.UserRoleEmployer)

	_, err := e.svc.ProfileService.GetPublicProfile(e.db, other, seeker.ID)
	assert.ErrorIs(t, err, apperrors.ErrProfileNotVisible)

	got, err := e.svc.ProfileService.GetPublicProfile(e.db, employer, seeker.ID)
	require.NoError(t, err)
	assert.Equal(t, seeker.ID, got.ID)

	_, err = e.svc.ProfileService.GetPublicProfile(e.db, seeker, employer.ID)
	assert.NoError(t, err)
}

func TestRequestVerification(t *testing.T) {
	e := newEnv(t)
	admin := testutil.CreateUser(t, e.db, "Admin", "secret1", models.UserRoleAdmin)
	employer := testutil.CreateUser(t, e.db, "Boss", "secret1", models.UserRoleEmployer)

	_, err := e.svc.ProfileService.RequestVerification(e.db, employer.ID)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.HTTPCode)
	assert.Equal(t, map[string]interface{}{"profileCompletion": 20}, appErr.Details)

	testutil.CompleteEmployer(t, e.db, employer)
	require.NoError(t, e.db.Model(employer).Update("is_verified", false).Error)

	resp, err := e.svc.ProfileService.RequestVerification(e.db, employer.ID)
	require.NoError(t, err)
	assert.Contains(t, resp.Message, "Verification request sent")
	assert.Len(t, e.notifications(t, admin.ID), 1)
	assert.Contains(t, e.sentSubjects(admin.Email), "Employer Verification Requested")

	require.NoError(t, e.db.Model(employer).Update("is_verified", true).Error)
	resp, err = e.svc.ProfileService.RequestVerification(e.db, employer.ID)
	require.NoError(t, err)
	assert.Equal(t, "Your account is already verified", resp.Message)
}

func TestUploadResume(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	seeker := testutil.CreateUser(t, e.db, "Sam", "secret1", models.UserRoleJobSeeker)
	employer := testutil.CreateUser(t, e.db, "Boss", "secret1", models.UserRoleEmployer)
	stranger := testutil.CreateUser(t, e.db, "Sue", "secret1", models.UserRoleJobSeeker)

	_, err := e.svc.UploadService.UploadResume(ctx, e.db, seeker.ID,
		fileHeader(t, "resume", "cv.exe", "application/octet-stream", []byte("MZ")))
	assert.ErrorIs(t, err, apperrors.ErrInvalidFileType)

	_, err = e.svc.UploadService.UploadResume(ctx, e.db, seeker.ID,
		fileHeader(t, "resume", "cv.pdf", "application/pdf", make([]byte, 2048)))
	assert.ErrorIs(t, err, apperrors.ErrFileTooLarge)

	first, err := e.svc.UploadService.UploadResume(ctx, e.db, seeker.ID,
		fileHeader(t, "resume", "cv.pdf", "application/pdf", []byte("%PDF-1 first")))
	require.NoError(t, err)
	assert.Equal(t, 40, first.ProfileCompletion)

	second, err := e.svc.UploadService.UploadResume(ctx, e.db, seeker.ID,
		fileHeader(t, "resume", "cv2.pdf", "application/pdf", []byte("%PDF-1 second")))
	require.NoError(t, err)

	exists, err := e.store.Exists(ctx, first.Resume)
	require.NoError(t, err)
	assert.False(t, exists, "the replaced resume is removed")

	f, err := e.svc.UploadService.OpenResume(ctx, e.db, employer, seeker.ID)
	require.NoError(t, err)
	body, err := io.ReadAll(f.Content)
	require.NoError(t, f.Content.Close())
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1 second", string(body))
	assert.Equal(t, "application/pdf", f.ContentType)
	assert.Equal(t, int64(len(body)), f.Size)
	assert.Equal(t, second.Resume, e.reload(t, seeker).Resume)

	_, err = e.svc.UploadService.OpenResume(ctx, e.db, stranger, seeker.ID)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)

	url, err := e.svc.UploadService.ResumeURL(ctx, e.db, seeker, seeker.ID)
	require.NoError(t, err)
	assert.Equal(t, "/api/resume/"+seeker.ID, url.URL)

	_, err = e.svc.UploadService.UploadLogo(ctx, e.db, seeker.ID,
		fileHeader(t, "logo", "logo.png", "image/png", []byte("png")))
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)
}

func TestUploadLogo_ServedPublicly(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	employer := testutil.CreateUser(t, e.db, "Boss", "secret1", models.UserRoleEmployer)

	resp, err := e.svc.UploadService.UploadLogo(ctx, e.db, employer.ID,
		fileHeader(t, "logo", "Logo.PNG", "image/png", pngLogo(t, 8, 8)))
	require.NoError(t, err)
	assert.Regexp(t, `^logos/`+employer.ID+`/[0-9a-f-]+\.png$`, resp.Logo)

	f, err := e.svc.UploadService.OpenLogo(ctx, "/"+resp.Logo)
	require.NoError(t, err)
	defer f.Content.Close()
	assert.Equal(t, "image/png", f.ContentType)

	_, err = e.svc.UploadService.UploadLogo(ctx, e.db, employer.ID,
		fileHeader(t, "logo", "fake.png", "image/png", []byte("not really a png")))
	assert.ErrorIs(t, err, apperrors.ErrInvalidFileType)

	_, err = e.svc.UploadService.OpenLogo(ctx, "resumes/"+employer.ID+"/x.pdf")
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.HTTPCode)
}

func TestOpenLogo_StaysUnderLogos(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	seeker := testutil.CreateUser(t, e.db, "Sam", "secret1", models.UserRoleJobSeeker)

	up, err := e.svc.UploadService.UploadResume(ctx, e.db, seeker.ID,
		fileHeader(t, "resume", "cv.pdf", "application/pdf", []byte("%PDF-1 private")))
	require.NoError(t, err)

	for _, key := range []string{
		"logos/../" + up.Resume,
		"/logos/../" + up.Resume,
		"logos/x/../../" + up.Resume,
		"logos/./../" + up.Resume,
	} {
		_, err := e.svc.UploadService.OpenLogo(ctx, key)
		assert.ErrorIs(t, err, apperrors.NewNotFoundError("upload", "File not found"), key)
	}
}
