package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strconv"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"event-rental/config"
	"event-rental/internal/dto"
	"event-rental/internal/entities"
	"event-rental/internal/graph"
	"event-rental/internal/repositories"
	apperrors "event-rental/pkg/errors"
	"event-rental/pkg/filestorage"
	"event-rental/pkg/types"
	"event-rental/pkg/validation"
)

type attachmentSpec struct {
	field         string
	uploadContext string
}

var attachmentSpecs = map[entities.EventAttachmentKind]attachmentSpec{
	entities.EventPhotoKind: {field: "photo", uploadContext: config.EventPhotoContext},
	entities.EventFileKind:  {field: "file", uploadContext: config.EventFileContext},
}

// AttachmentServiceInterface serves event photos and event files. Writes take
// the multipart form as sent: an "event" id field and the binary field.
type AttachmentServiceInterface interface {
	GetAttachments(ctx context.Context, kind entities.EventAttachmentKind, eventID uint64, filter types.Filter) (*dto.PaginatedResponse[dto.AttachmentDTO], error)
	FindAttachment(ctx context.Context, kind entities.EventAttachmentKind, id uint64) (*dto.AttachmentDTO, error)
	CreateAttachment(ctx context.Context, kind entities.EventAttachmentKind, form *multipart.Form) (*dto.AttachmentDTO, error)
	UpdateAttachment(ctx context.Context, kind entities.EventAttachmentKind, id uint64, form *multipart.Form, mode graph.Mode) (*dto.AttachmentDTO, error)
	DeleteAttachment(ctx context.Context, kind entities.EventAttachmentKind, id uint64) error
}

type AttachmentService struct {
	repo        repositories.AttachmentRepositoryInterface
	eventRepo   repositories.EventRepositoryInterface
	txManager   repositories.TxManagerInterface
	fileStorage filestorage.FileStorageInterface
	logger      *zap.Logger
}

func NewAttachmentService(
	repo repositories.AttachmentRepositoryInterface,
	eventRepo repositories.EventRepositoryInterface,
	txManager repositories.TxManagerInterface,
	fileStorage filestorage.FileStorageInterface,
	logger *zap.Logger,
) AttachmentServiceInterface {
	return &AttachmentService{
		repo:        repo,
		eventRepo:   eventRepo,
		txManager:   txManager,
		fileStorage: fileStorage,
		logger:      logger,
	}
}

type attachmentInput struct {
	eventID uint64
	hasFile bool
	header  *multipart.FileHeader
}

func (s *AttachmentService) parseForm(kind entities.EventAttachmentKind, form *multipart.Form, mode graph.Mode) (*attachmentInput, error) {
	spec, ok := attachmentSpecs[kind]
	if !ok {
		return nil, fmt.Errorf("unknown attachment kind %q", kind)
	}
	if form == nil {
		form = &multipart.Form{}
	}

	verr := apperrors.NewValidationError()
	in := &attachmentInput{}

	for key, values := range form.Value {
		switch key {
		case "id":
		case "event":
			if len(values) == 0 {
				continue
			}
			id, err := strconv.ParseUint(values[0], 10, 64)
			if err != nil || id == 0 {
				verr.Add("event", "expected a positive integer id")
				continue
			}
			in.eventID = id
		default:
			verr.Add(key, "unknown field")
		}
	}
	for key, headers := range form.File {
		if key != spec.field {
			verr.Add(key, "unknown field")
			continue
		}
		if len(headers) > 0 {
			in.header = headers[0]
			in.hasFile = true
		}
	}

	if mode == graph.Create || mode == graph.FullUpdate {
		if _, sent := form.Value["event"]; !sent {
			verr.Add("event", "this field is required")
		}
		if !in.hasFile {
			verr.Add(spec.field, "no file was submitted")
		}
	}

	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	return in, nil
}

// storeUpload validates and saves the upload, returning its relative path.
func (s *AttachmentService) storeUpload(kind entities.EventAttachmentKind, header *multipart.FileHeader) (string, error) {
	spec := attachmentSpecs[kind]

	file, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer file.Close()

	if err := validation.ValidateFile(header, file, spec.field, spec.uploadContext); err != nil {
		return "", err
	}

	rules := config.UploadContexts[spec.uploadContext]
	path, err := s.fileStorage.Save(file, header.Filename, rules.PathPrefix)
	if err != nil {
		return "", fmt.Errorf("failed to store upload: %w", err)
	}
	return path, nil
}

func (s *AttachmentService) requireEvent(ctx context.Context, tx pgx.Tx, id uint64) error {
	if _, err := s.eventRepo.FindByID(ctx, tx, id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return &apperrors.ReferenceError{Field: "event", Key: "id", Value: strconv.FormatUint(id, 10)}
		}
		return err
	}
	return nil
}

func (s *AttachmentService) discard(path string) {
	if path == "" {
		return
	}
	if err := s.fileStorage.Delete(path); err != nil {
		s.logger.Error("failed to remove stored upload", zap.String("path", path), zap.Error(err))
	}
}

func (s *AttachmentService) GetAttachments(ctx context.Context, kind entities.EventAttachmentKind, eventID uint64, filter types.Filter) (*dto.PaginatedResponse[dto.AttachmentDTO], error) {
	items, total, err := s.repo.GetAll(ctx, kind, eventID, filter)
	if err != nil {
		s.logger.Error("failed to list attachments", zap.String("kind", string(kind)), zap.Error(err))
		return nil, err
	}
	list := make([]dto.AttachmentDTO, 0, len(items))
	for _, a := range items {
		list = append(list, dto.NewAttachmentDTO(a))
	}
	return &dto.PaginatedResponse[dto.AttachmentDTO]{List: list, Total: total}, nil
}

func (s *AttachmentService) FindAttachment(ctx context.Context, kind entities.EventAttachmentKind, id uint64) (*dto.AttachmentDTO, error) {
	a, err := s.repo.FindByID(ctx, nil, kind, id)
	if err != nil {
		return nil, err
	}
	out := dto.NewAttachmentDTO(a)
	return &out, nil
}

func (s *AttachmentService) CreateAttachment(ctx context.Context, kind entities.EventAttachmentKind, form *multipart.Form) (*dto.AttachmentDTO, error) {
	in, err := s.parseForm(kind, form, graph.Create)
	if err != nil {
		return nil, err
	}

	path, err := s.storeUpload(kind, in.header)
	if err != nil {
		return nil, err
	}

	a := entities.EventAttachment{Kind: kind, EventID: in.eventID, Path: path}
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.requireEvent(ctx, tx, in.eventID); err != nil {
			return err
		}
		id, err := s.repo.Create(ctx, tx, a)
		if err != nil {
			return err
		}
		a.ID = id
		return nil
	})
	if err != nil {
		s.discard(path)
		s.logger.Warn("failed to create attachment", zap.String("kind", string(kind)), zap.Error(err))
		return nil, err
	}

	out := dto.NewAttachmentDTO(&a)
	return &out, nil
}

func (s *AttachmentService) UpdateAttachment(ctx context.Context, kind entities.EventAttachmentKind, id uint64, form *multipart.Form, mode graph.Mode) (*dto.AttachmentDTO, error) {
	a, err := s.repo.FindByID(ctx, nil, kind, id)
	if err != nil {
		return nil, err
	}
	in, err := s.parseForm(kind, form, mode)
	if err != nil {
		return nil, err
	}

	oldPath := a.Path
	var newPath string
	if in.hasFile {
		newPath, err = s.storeUpload(kind, in.header)
		if err != nil {
			return nil, err
		}
		a.Path = newPath
	}

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if in.eventID != 0 {
			if err := s.requireEvent(ctx, tx, in.eventID); err != nil {
				return err
			}
			a.EventID = in.eventID
		}
		return s.repo.Update(ctx, tx, *a)
	})
	if err != nil {
		s.discard(newPath)
		s.logger.Warn("failed to update attachment", zap.String("kind", string(kind)), zap.Uint64("id", id), zap.Error(err))
		return nil, err
	}
	if newPath != "" {
		s.discard(oldPath)
	}

	out := dto.NewAttachmentDTO(a)
	return &out, nil
}

func (s *AttachmentService) DeleteAttachment(ctx context.Context, kind entities.EventAttachmentKind, id uint64) error {
	var path string
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		a, err := s.repo.FindByID(ctx, tx, kind, id)
		if err != nil {
			return err
		}
		path = a.Path
		return s.repo.Delete(ctx, tx, kind, id)
	})
	if err != nil {
		s.logger.Warn("failed to delete attachment", zap.String("kind", string(kind)), zap.Uint64("id", id), zap.Error(err))
		return err
	}
	s.discard(path)
	return nil
}
