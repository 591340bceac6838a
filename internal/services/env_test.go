package services_test

import (
	"bytes"
	"image"
	"image/png"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"jobportal_backend/internal/auth"
	"jobportal_backend/internal/email"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/services"
	"jobportal_backend/internal/storage"
	"jobportal_backend/internal/testutil"
)

type pushed struct {
	userID  string
	payload interface{}
}

type recordingPusher struct {
	mu   sync.Mutex
	sent []pushed
}

func (p *recordingPusher) PushToUser(userID string, payload interface{}) {
	p.mu.Lock()
	p.sent = append(p.sent, pushed{userID: userID, payload: payload})
	p.mu.Unlock()
}

func (p *recordingPusher) countFor(userID string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, s := range p.sent {
		if s.userID == userID {
			n++
		}
	}
	return n
}

type env struct {
	db     *gorm.DB
	svc    *services.ServiceContainer
	mail   *email.RecordingProvider
	pusher *recordingPusher
	store  storage.Storage
}

func newEnv(t *testing.T) *env {
	t.Helper()

	db := testutil.NewDB(t)
	store, err := storage.NewLocalStorage(storage.Config{BasePath: t.TempDir()})
	require.NoError(t, err)

	templates, err := email.NewTemplates("")
	require.NoError(t, err)
	mail := email.NewRecordingProvider(templates)
	mailer := email.NewMailer(mail, nil, "http://front.test")
	pusher := &recordingPusher{}

	svc := services.NewServiceContainer(services.Dependencies{
		Tokens: auth.NewTokenService(auth.TokenConfig{
			AccessSecret: "test-secret",
			AccessTTL:    time.Hour,
			RefreshTTL:   24 * time.Hour,
			ResetTTL:     time.Hour,
		}),
		Mailer:  mailer,
		Storage: store,
		Pusher:  pusher,
		Upload:  services.UploadConfig{MaxFileSize: 1024},
	})
	t.Cleanup(mailer.Wait)

	return &env{db: db, svc: svc, mail: mail, pusher: pusher, store: store}
}

// sentSubjects waits for background mail and lists the subjects delivered to addr.
func (e *env) sentSubjects(addr string) []string {
	e.svc.Mailer.Wait()
	var subjects []string
	for _, m := range e.mail.Sent() {
		for _, to := range m.To {
			if to == addr {
				subjects = append(subjects, m.Subject)
			}
		}
	}
	return subjects
}

func (e *env) notifications(t *testing.T, userID string) []models.Notification {
	t.Helper()
	list, err := e.svc.NotificationService.GetUserNotifications(e.db, userID)
	require.NoError(t, err)
	return list
}

func (e *env) reload(t *testing.T, user *models.User) *models.User {
	t.Helper()
	var fresh models.User
	require.NoError(t, e.db.First(&fresh, "id = ?", user.ID).Error)
	return &fresh
}

func fileHeader(t *testing.T, field, filename, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File[field][0]
}

func pngLogo(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func intPtr(v int) *int { return &v }
