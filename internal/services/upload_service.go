package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"path/filepath"
	"strings"
	"time"

	"jobportal_backend/internal/imageprocessor"
	"jobportal_backend/internal/logger"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/repositories"
	"jobportal_backend/internal/services/dto"
	"jobportal_backend/internal/storage"
	"jobportal_backend/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	resumePrefix    = "resumes/"
	logoPrefix      = "logos/"
	resumeURLExpiry = 15 * time.Minute
)

// fileKind lists the extensions accepted for one upload slot and the content type each one is served with.
type fileKind struct {
	prefix string
	types  map[string]string
}

var (
	resumeKind = fileKind{
		prefix: resumePrefix,
		types: map[string]string{
			".pdf":  "application/pdf",
			".doc":  "application/msword",
			".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		},
	}
	logoKind = fileKind{
		prefix: logoPrefix,
		types: map[string]string{
			".jpg":  "image/jpeg",
			".jpeg": "image/jpeg",
			".png":  "image/png",
			".gif":  "image/gif",
			".webp": "image/webp",
		},
	}
)

var errFileMissing = errors.New("stored file missing")

// StoredFile is an open handle on an uploaded file. The caller closes Content.
type StoredFile struct {
	Content     io.ReadCloser
	ContentType string
	Size        int64
	FileName    string
}

type UploadService interface {
	UploadResume(ctx context.Context, db *gorm.DB, userID string, file *multipart.FileHeader) (*dto.ResumeUploadResponse, error)
	UploadLogo(ctx context.Context, db *gorm.DB, userID string, file *multipart.FileHeader) (*dto.LogoUploadResponse, error)

	// OpenResume is allowed for the owner, any employer and any admin.
	OpenResume(ctx context.Context, db *gorm.DB, viewer *models.User, ownerID string) (*StoredFile, error)
	ResumeURL(ctx context.Context, db *gorm.DB, viewer *models.User, ownerID string) (*dto.ResumeURLResponse, error)
	OpenLogo(ctx context.Context, key string) (*StoredFile, error)
	MaxFileSize() int64
}

type UploadConfig struct {
	MaxFileSize int64
	// LogoMaxDimension bounds the stored logo's width and height in pixels.
	LogoMaxDimension int
	// DownloadRoute builds the API path that streams a resume when the backend cannot presign.
	DownloadRoute func(ownerID string) string
}

type uploadService struct {
	userRepo repositories.UserRepository
	storage  storage.Storage
	images   *imageprocessor.Processor
	config   UploadConfig
}

func NewUploadService(userRepo repositories.UserRepository, store storage.Storage, config UploadConfig) UploadService {
	if config.MaxFileSize == 0 {
		config.MaxFileSize = 5 * 1024 * 1024
	}
	if config.DownloadRoute == nil {
		config.DownloadRoute = func(ownerID string) string { return "/api/resume/" + ownerID }
	}
	return &uploadService{
		userRepo: userRepo,
		storage:  store,
		images:   imageprocessor.NewProcessor(config.LogoMaxDimension, 0),
		config:   config,
	}
}

func (s *uploadService) MaxFileSize() int64 { return s.config.MaxFileSize }

func (s *uploadService) UploadResume(ctx context.Context, db *gorm.DB, userID string, file *multipart.FileHeader) (*dto.ResumeUploadResponse, error) {
	user, key, err := s.store(ctx, db, userID, file, resumeKind, models.UserRoleJobSeeker, func(u *models.User) *string { return &u.Resume })
	if err != nil {
		return nil, err
	}
	return &dto.ResumeUploadResponse{
		Message:           "Resume uploaded successfully",
		Resume:            key,
		ProfileCompletion: user.ProfileCompletion,
	}, nil
}

func (s *uploadService) UploadLogo(ctx context.Context, db *gorm.DB, userID string, file *multipart.FileHeader) (*dto.LogoUploadResponse, error) {
	user, key, err := s.store(ctx, db, userID, file, logoKind, models.UserRoleEmployer, func(u *models.User) *string { return &u.CompanyLogo })
	if err != nil {
		return nil, err
	}
	return &dto.LogoUploadResponse{
		Message:           "Logo uploaded successfully",
		Logo:              key,
		ProfileCompletion: user.ProfileCompletion,
	}, nil
}

// store writes the file, points the user's slot at it and drops whatever the slot held before.
func (s *uploadService) store(
	ctx context.Context,
	db *gorm.DB,
	userID string,
	file *multipart.FileHeader,
	kind fileKind,
	role models.UserRole,
	slot func(*models.User) *string,
) (*models.User, string, error) {
	contentType, err := s.validateFile(file, kind)
	if err != nil {
		return nil, "", err
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, "", apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	user, err := s.userRepo.FindByID(tx, userID)
	if err != nil {
		return nil, "", handleUserError(err)
	}
	if user.Role != role {
		return nil, "", apperrors.ErrInsufficientPermissions
	}

	src, err := file.Open()
	if err != nil {
		return nil, "", apperrors.InternalError(fmt.Errorf("open uploaded file: %w", err))
	}
	defer src.Close()

	var body io.Reader = src
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if kind.prefix == logoPrefix {
		logo, err := s.images.Normalize(src)
		if err != nil {
			if errors.Is(err, imageprocessor.ErrNotAnImage) {
				return nil, "", apperrors.ErrInvalidFileType
			}
			return nil, "", apperrors.InternalError(err)
		}
		body, contentType, ext = bytes.NewReader(logo.Data), logo.ContentType, logo.Ext
	}

	key := kind.prefix + userID + "/" + uuid.NewString() + ext

	if err := s.storage.Save(ctx, key, body, contentType); err != nil {
		return nil, "", apperrors.Wrap(err, apperrors.CodeExternalServiceError, "upload", "Failed to store file", http.StatusBadGateway)
	}

	field := slot(user)
	previous := *field
	*field = key
	refreshCompletion(user)

	column := "resume"
	if kind.prefix == logoPrefix {
		column = "company_logo"
	}
	updateErr := s.userRepo.UpdateFields(tx, user.ID, map[string]interface{}{
		column:               key,
		"profile_completion": user.ProfileCompletion,
	})
	if updateErr == nil {
		updateErr = tx.Commit().Error
	}
	if updateErr != nil {
		s.removeQuietly(ctx, key)
		return nil, "", apperrors.InternalError(updateErr)
	}

	if previous != "" && previous != key {
		s.removeQuietly(ctx, previous)
	}
	return user, key, nil
}

func (s *uploadService) removeQuietly(ctx context.Context, key string) {
	if err := s.storage.Delete(ctx, key); err != nil {
		logger.CtxWarn(ctx, "failed to delete stored file", "key", key, "error", err.Error())
	}
}

// validateFile checks size and type and returns the content type to store the file with.
func (s *uploadService) validateFile(file *multipart.FileHeader, kind fileKind) (string, error) {
	if file == nil {
		return "", apperrors.ErrFileRequired
	}
	if file.Size > s.config.MaxFileSize {
		return "", apperrors.ErrFileTooLarge
	}

	contentType, ok := kind.types[strings.ToLower(filepath.Ext(file.Filename))]
	if !ok {
		return "", apperrors.ErrInvalidFileType
	}
	declared := strings.ToLower(strings.TrimSpace(file.Header.Get("Content-Type")))
	if i := strings.Index(declared, ";"); i >= 0 {
		declared = strings.TrimSpace(declared[:i])
	}
	if declared != "" && declared != "application/octet-stream" && !allowedType(kind, declared) {
		return "", apperrors.ErrInvalidFileType
	}
	return contentType, nil
}

func allowedType(kind fileKind, contentType string) bool {
	for _, t := range kind.types {
		if t == contentType {
			return true
		}
	}
	return false
}

func (s *uploadService) resumeOwner(db *gorm.DB, viewer *models.User, ownerID string) (*models.User, error) {
	if viewer.ID != ownerID && !viewer.IsEmployer() && !viewer.IsAdmin() {
		return nil, apperrors.ErrInsufficientPermissions
	}
	owner, err := s.userRepo.FindByID(db, ownerID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrResumeNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if owner.Resume == "" {
		return nil, apperrors.ErrResumeNotFound
	}
	return owner, nil
}

func (s *uploadService) OpenResume(ctx context.Context, db *gorm.DB, viewer *models.User, ownerID string) (*StoredFile, error) {
	owner, err := s.resumeOwner(db, viewer, ownerID)
	if err != nil {
		return nil, err
	}
	f, err := s.open(ctx, owner.Resume, resumeKind)
	if err != nil {
		if errors.Is(err, errFileMissing) {
			return nil, apperrors.ErrResumeNotFound
		}
		return nil, err
	}
	f.FileName = safeFileName(owner.Name) + "_resume" + filepath.Ext(owner.Resume)
	return f, nil
}

func (s *uploadService) ResumeURL(ctx context.Context, db *gorm.DB, viewer *models.User, ownerID string) (*dto.ResumeURLResponse, error) {
	owner, err := s.resumeOwner(db, viewer, ownerID)
	if err != nil {
		return nil, err
	}
	url, err := s.storage.SignedURL(ctx, owner.Resume, resumeURLExpiry)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeExternalServiceError, "upload", "Failed to sign resume URL", http.StatusBadGateway)
	}
	if url == "" {
		url = s.config.DownloadRoute(owner.ID)
	}
	return &dto.ResumeURLResponse{URL: url}, nil
}

func (s *uploadService) OpenLogo(ctx context.Context, key string) (*StoredFile, error) {
	key = strings.TrimPrefix(path.Clean("/"+key), "/")
	if !strings.HasPrefix(key, logoPrefix) {
		return nil, apperrors.NewNotFoundError("upload", "File not found")
	}
	f, err := s.open(ctx, key, logoKind)
	if err != nil {
		if errors.Is(err, errFileMissing) {
			return nil, apperrors.NewNotFoundError("upload", "File not found")
		}
		return nil, err
	}
	f.FileName = filepath.Base(key)
	return f, nil
}

func (s *uploadService) open(ctx context.Context, key string, kind fileKind) (*StoredFile, error) {
	obj, err := s.storage.Open(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, errFileMissing
	}
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	contentType, ok := kind.types[strings.ToLower(filepath.Ext(key))]
	if !ok {
		contentType = "application/octet-stream"
	}
	return &StoredFile{Content: obj, ContentType: contentType, Size: obj.Size}, nil
}

func safeFileName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "user"
	}
	return b.String()
}
