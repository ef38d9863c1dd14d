// Package memory provides an in-process credential store for development and tests.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"gatekeeper/internal/domain/entity"
	"gatekeeper/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type record struct {
	credential entity.Credential
	seq        uint64
}

// CredentialRepository keeps credentials in maps guarded by a single RWMutex.
// Nothing survives a restart.
type CredentialRepository struct {
	mu         sync.RWMutex
	byID       map[uuid.UUID]*record
	byUsername map[string]uuid.UUID
	seq        uint64
	now        func() time.Time
}

var _ repository.CredentialRepository = (*CredentialRepository)(nil)

// NewCredentialRepository creates an empty in-memory credential store.
func NewCredentialRepository() *CredentialRepository {
	return &CredentialRepository{
		byID:       make(map[uuid.UUID]*record),
		byUsername: make(map[string]uuid.UUID),
		now:        time.Now,
	}
}

func (r *CredentialRepository) FindByUsername(_ context.Context, username string) (*entity.Credential, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byUsername[username]
	if !ok {
		return nil, repository.ErrCredentialNotFound
	}

	return r.byID[id].clone(), nil
}

func (r *CredentialRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Credential, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrCredentialNotFound
	}

	return rec.clone(), nil
}

// Create inserts the credential only if its username is free; the check and
// the insert happen under one write lock.
func (r *CredentialRepository) Create(ctx context.Context, credential *entity.Credential) error {
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}

	id := credential.ID
	if id == uuid.Nil {
		var err error
		if id, err = uuid.NewV7(); err != nil {
			return errors.Wrap(err, "failed to generate credential id")
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byUsername[credential.Username]; taken {
		return errors.Wrap(repository.ErrDuplicateIdentity, "username already exists")
	}
	if _, taken := r.byID[id]; taken {
		return errors.Wrap(repository.ErrDuplicateIdentity, "credential id already exists")
	}

	now := r.now()
	credential.ID = id
	credential.CreatedAt = now
	credential.UpdatedAt = now

	r.seq++
	r.byID[id] = &record{credential: *credential, seq: r.seq}
	r.byUsername[credential.Username] = id

	return nil
}

func (r *CredentialRepository) Update(ctx context.Context, credential *entity.Credential) error {
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.byID[credential.ID]
	if !ok {
		return repository.ErrCredentialNotFound
	}

	oldUsername := rec.credential.Username
	if credential.Username != oldUsername {
		if _, taken := r.byUsername[credential.Username]; taken {
			return errors.Wrap(repository.ErrDuplicateIdentity, "username already exists")
		}
		delete(r.byUsername, oldUsername)
		r.byUsername[credential.Username] = credential.ID
	}

	credential.CreatedAt = rec.credential.CreatedAt
	credential.UpdatedAt = r.now()
	rec.credential = *credential

	return nil
}

// List returns credentials newest first. Credentials created within the same
// clock tick keep their insertion order.
func (r *CredentialRepository) List(_ context.Context, skip, limit int) ([]*entity.Credential, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = repository.DefaultListLimit
	}

	r.mu.RLock()
	records := make([]record, 0, len(r.byID))
	for _, rec := range r.byID {
		records = append(records, *rec)
	}
	r.mu.RUnlock()

	slices.SortFunc(records, func(a, b record) int {
		if c := b.credential.CreatedAt.Compare(a.credential.CreatedAt); c != 0 {
			return c
		}
		if a.seq > b.seq {
			return -1
		}

		return 1
	})

	if skip >= len(records) {
		return []*entity.Credential{}, nil
	}
	records = records[skip:min(skip+limit, len(records))]

	credentials := make([]*entity.Credential, 0, len(records))
	for i := range records {
		credentials = append(credentials, &records[i].credential)
	}

	return credentials, nil
}

func (r *CredentialRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.byID[id]
	if !ok {
		return repository.ErrCredentialNotFound
	}

	delete(r.byUsername, rec.credential.Username)
	delete(r.byID, id)

	return nil
}

func (rec *record) clone() *entity.Credential {
	credential := rec.credential

	return &credential
}
