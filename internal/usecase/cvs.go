package usecase

import (
	"context"
	"time"

	"cv-builder/internal/domain"
	"cv-builder/internal/model"

	"github.com/google/uuid"
)

// CVRepo abstracts CV persistence.
type CVRepo interface {
	Save(ctx context.Context, cv *domain.CV) error
	Get(ctx context.Context, id uuid.UUID) (*domain.CV, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.CV, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CVs owns the CV record lifecycle. Every read, update and delete goes
// through GetForOwner; the bare repo Get is never exposed to routes.
type CVs struct {
	repo CVRepo
}

func NewCVs(repo CVRepo) *CVs {
	return &CVs{repo: repo}
}

// Create validates the form and persists a new record with server-assigned
// id and timestamps. photoPath may be empty when no upload was accepted.
func (s *CVs) Create(ctx context.Context, ownerID uuid.UUID, form model.CVForm, photoPath string) (*domain.CV, error) {
	if err := model.ValidateForm(form); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	cv := &domain.CV{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		PhotoPath: photoPath,
		CreatedAt: now,
		UpdatedAt: now,
	}
	form.Apply(cv)

	if err := s.repo.Save(ctx, cv); err != nil {
		return nil, err
	}
	return cv, nil
}

func (s *CVs) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.CV, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// GetForOwner fetches a record and enforces ownership. A mismatch is
// domain.ErrForbidden, never ErrNotFound: the record exists, the actor just
// may not touch it.
func (s *CVs) GetForOwner(ctx context.Context, id, ownerID uuid.UUID) (*domain.CV, error) {
	cv, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if cv.OwnerID != ownerID {
		return nil, domain.ErrForbidden
	}
	return cv, nil
}

// Update overwrites every form-carried field of an owned record. The photo
// reference changes only when newPhotoPath is non-empty; owner and creation
// timestamp are immutable.
func (s *CVs) Update(ctx context.Context, id, ownerID uuid.UUID, form model.CVForm, newPhotoPath string) (*domain.CV, error) {
	if err := model.ValidateForm(form); err != nil {
		return nil, err
	}

	cv, err := s.GetForOwner(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	form.Apply(cv)
	if newPhotoPath != "" {
		cv.PhotoPath = newPhotoPath
	}
	cv.UpdatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, cv); err != nil {
		return nil, err
	}
	return cv, nil
}

// AttachPhoto records an accepted upload on an owned record. Used by the
// create flow, where the stored filename is only known once the record id
// has been assigned.
func (s *CVs) AttachPhoto(ctx context.Context, id, ownerID uuid.UUID, photoPath string) error {
	cv, err := s.GetForOwner(ctx, id, ownerID)
	if err != nil {
		return err
	}
	cv.PhotoPath = photoPath
	cv.UpdatedAt = time.Now().UTC()
	return s.repo.Save(ctx, cv)
}

// Delete hard-deletes an owned record. A second delete reports ErrNotFound.
func (s *CVs) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	if _, err := s.GetForOwner(ctx, id, ownerID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
