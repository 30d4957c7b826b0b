package services

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"event-rental/internal/entities"
	"event-rental/internal/graph"
	apperrors "event-rental/pkg/errors"
	"event-rental/pkg/types"
)

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), bytes.Repeat([]byte{0}, 64)...)

type upload struct {
	field   string
	name    string
	content []byte
}

func buildForm(t *testing.T, values map[string]string, files ...upload) *multipart.Form {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range values {
		if err := w.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	for _, f := range files {
		fw, err := w.CreateFormFile(f.field, f.name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := fw.Write(f.content); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form
}

type AttachmentServiceSuite struct {
	suite.Suite
	f       *fixture
	svc     AttachmentServiceInterface
	ctx     context.Context
	eventID uint64
}

func (s *AttachmentServiceSuite) SetupTest() {
	s.f = newFixture()
	s.svc = s.f.attachmentService()
	s.ctx = context.Background()

	ev, err := s.f.eventService().CreateEvent(s.ctx, eventPayload(s.f.addCustomer("Acme")))
	s.Require().NoError(err)
	s.eventID = ev.ID
}

func TestAttachmentServiceSuite(t *testing.T) {
	suite.Run(t, new(AttachmentServiceSuite))
}

func (s *AttachmentServiceSuite) photoForm(eventID string) *multipart.Form {
	return buildForm(s.T(), map[string]string{"event": eventID}, upload{"photo", "Stage.PNG", pngBytes})
}

func (s *AttachmentServiceSuite) TestCreatePhoto() {
	photo, err := s.svc.CreateAttachment(s.ctx, entities.EventPhotoKind, s.photoForm(uintJSON(s.eventID)))
	s.Require().NoError(err)

	s.Equal(s.eventID, photo.Event)
	s.True(strings.HasPrefix(photo.Photo, "/uploads/events/photos/"))
	s.True(strings.HasSuffix(photo.Photo, ".png"))
	s.Empty(photo.File)
	s.True(s.f.files.has(strings.TrimPrefix(photo.Photo, "/uploads/")))
}

func (s *AttachmentServiceSuite) TestCreateFileAcceptsAnyType() {
	form := buildForm(s.T(), map[string]string{"event": uintJSON(s.eventID)}, upload{"file", "rider.txt", []byte("stage plot")})

	file, err := s.svc.CreateAttachment(s.ctx, entities.EventFileKind, form)
	s.Require().NoError(err)
	s.True(strings.HasPrefix(file.File, "/uploads/events/files/"))
	s.Empty(file.Photo)
}

func (s *AttachmentServiceSuite) TestPhotoRejectsNonImage() {
	form := buildForm(s.T(), map[string]string{"event": uintJSON(s.eventID)}, upload{"photo", "notes.png", []byte("plain text")})

	_, err := s.svc.CreateAttachment(s.ctx, entities.EventPhotoKind, form)

	var verr *apperrors.ValidationError
	s.Require().True(errors.As(err, &verr))
	s.Contains(verr.Fields, "photo")
	s.Equal(0, s.f.files.count())
}

func (s *AttachmentServiceSuite) TestMissingFieldsAreReported() {
	form := buildForm(s.T(), map[string]string{})

	_, err := s.svc.CreateAttachment(s.ctx, entities.EventPhotoKind, form)

	var verr *apperrors.ValidationError
	s.Require().True(errors.As(err, &verr))
	s.Contains(verr.Fields, "event")
	s.Contains(verr.Fields, "photo")
}

func (s *AttachmentServiceSuite) TestWrongFileFieldIsUnknown() {
	form := buildForm(s.T(), map[string]string{"event": uintJSON(s.eventID)}, upload{"file", "a.png", pngBytes})

	_, err := s.svc.CreateAttachment(s.ctx, entities.EventPhotoKind, form)

	var verr *apperrors.ValidationError
	s.Require().True(errors.As(err, &verr))
	s.Contains(verr.Fields, "file")
}

func (s *AttachmentServiceSuite) TestUnknownEventDiscardsUpload() {
	_, err := s.svc.CreateAttachment(s.ctx, entities.EventPhotoKind, s.photoForm("9999"))

	var ref *apperrors.ReferenceError
	s.Require().True(errors.As(err, &ref))
	s.Equal("event", ref.Field)
	s.Equal(0, s.f.files.count())
}

func (s *AttachmentServiceSuite) TestPatchEventKeepsFile() {
	photo, err := s.svc.CreateAttachment(s.ctx, entities.EventPhotoKind, s.photoForm(uintJSON(s.eventID)))
	s.Require().NoError(err)

	other, err := s.f.eventService().CreateEvent(s.ctx, eventPayload(s.f.addCustomer("Other")))
	s.Require().NoError(err)

	moved, err := s.svc.UpdateAttachment(s.ctx, entities.EventPhotoKind, photo.ID,
		buildForm(s.T(), map[string]string{"event": uintJSON(other.ID)}), graph.PartialUpdate)
	s.Require().NoError(err)

	s.Equal(other.ID, moved.Event)
	s.Equal(photo.Photo, moved.Photo)
}

func (s *AttachmentServiceSuite) TestReplaceFileRemovesOldOne() {
	photo, err := s.svc.CreateAttachment(s.ctx, entities.EventPhotoKind, s.photoForm(uintJSON(s.eventID)))
	s.Require().NoError(err)
	oldPath := strings.TrimPrefix(photo.Photo, "/uploads/")

	replaced, err := s.svc.UpdateAttachment(s.ctx, entities.EventPhotoKind, photo.ID,
		buildForm(s.T(), nil, upload{"photo", "new.png", pngBytes}), graph.PartialUpdate)
	s.Require().NoError(err)

	s.NotEqual(photo.Photo, replaced.Photo)
	s.False(s.f.files.has(oldPath))
	s.Equal(1, s.f.files.count())
}

func (s *AttachmentServiceSuite) TestFullUpdateNeedsFile() {
	photo, err := s.svc.CreateAttachment(s.ctx, entities.EventPhotoKind, s.photoForm(uintJSON(s.eventID)))
	s.Require().NoError(err)

	_, err = s.svc.UpdateAttachment(s.ctx, entities.EventPhotoKind, photo.ID,
		buildForm(s.T(), map[string]string{"event": uintJSON(s.eventID)}), graph.FullUpdate)
	s.True(apperrors.IsValidation(err))
}

func (s *AttachmentServiceSuite) TestListByEventAndDelete() {
	photo, err := s.svc.CreateAttachment(s.ctx, entities.EventPhotoKind, s.photoForm(uintJSON(s.eventID)))
	s.Require().NoError(err)
	_, err = s.svc.CreateAttachment(s.ctx, entities.EventPhotoKind, s.photoForm(uintJSON(s.eventID)))
	s.Require().NoError(err)

	list, err := s.svc.GetAttachments(s.ctx, entities.EventPhotoKind, s.eventID, types.Filter{})
	s.Require().NoError(err)
	s.Equal(uint64(2), list.Total)

	files, err := s.svc.GetAttachments(s.ctx, entities.EventFileKind, s.eventID, types.Filter{})
	s.Require().NoError(err)
	s.Zero(files.Total)

	s.Require().NoError(s.svc.DeleteAttachment(s.ctx, entities.EventPhotoKind, photo.ID))
	s.Equal(1, s.f.files.count())
	_, err = s.svc.FindAttachment(s.ctx, entities.EventPhotoKind, photo.ID)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *AttachmentServiceSuite) TestKindsDoNotMix() {
	photo, err := s.svc.CreateAttachment(s.ctx, entities.EventPhotoKind, s.photoForm(uintJSON(s.eventID)))
	s.Require().NoError(err)

	_, err = s.svc.FindAttachment(s.ctx, entities.EventFileKind, photo.ID)
	s.ErrorIs(err, apperrors.ErrNotFound)
}
