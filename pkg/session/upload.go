package session

import (
	"context"

	"go.uber.org/zap"

	"github.com/goliatone/go-predictform/pkg/form"
	"github.com/goliatone/go-predictform/pkg/model"
	"github.com/goliatone/go-predictform/pkg/payload"
	"github.com/goliatone/go-predictform/pkg/result"
)

// UploadSession drives the image classification form.
type UploadSession struct {
	core
	classifier ImageClassifier
	upload     form.Upload
}

// NewUploadSession starts an idle session with no file selected. The first
// file field of definition supplies the accept list.
func NewUploadSession(classifier ImageClassifier, definition model.FormModel, options ...Option) *UploadSession {
	upload := form.NewUpload()
	for _, field := range definition.Fields {
		if field.Type == model.FieldTypeFile {
			upload = form.NewUploadFor(field)
			break
		}
	}
	s := &UploadSession{
		classifier: classifier,
		upload:     upload,
	}
	s.init(options)
	return s
}

// Upload returns the current selection.
func (s *UploadSession) Upload() form.Upload {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.upload
}

// SelectFile replaces the selection. An invalid file sets the error result and
// keeps the previous selection; a valid one clears the previous result.
// While a request is pending the rejection is only returned: the selection
// is unchanged, so the in-flight response stays current and settles into the
// result.
func (s *UploadSession) SelectFile(f form.File) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.upload.Select(f)
	if err != nil {
		if s.phase != PhasePending {
			s.result = result.FromError(err)
		}
		s.logger.Debug("file rejected", zap.String("name", f.Name), zap.String("media_type", f.MediaType))
		return err
	}
	s.upload = next
	s.result = result.Empty()
	s.generation++
	return nil
}

// Submit sends the selected image. Semantics match PriceSession.Submit.
func (s *UploadSession) Submit(ctx context.Context) (result.State, error) {
	s.mu.Lock()
	if s.phase == PhasePending {
		current := s.result
		s.mu.Unlock()
		return current, ErrBusy
	}
	snapshot := s.upload
	if err := snapshot.Check(); err != nil {
		s.result = result.FromError(err)
		current := s.result
		s.mu.Unlock()
		return current, nil
	}
	generation := s.begin()
	s.mu.Unlock()

	body, err := payload.Multipart(snapshot)
	if err != nil {
		return s.settle(generation, result.FromError(err))
	}
	classification, err := s.classifier.Classify(ctx, body)
	if err != nil {
		return s.settle(generation, result.FromError(err))
	}
	return s.settle(generation, result.FromClassification(classification))
}
