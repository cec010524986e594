package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/samber/mo"
	"github.com/spf13/afero"

	"github.com/roommates/core/internal/domain/entities"
	"github.com/roommates/core/internal/ports"
)

const defaultFilePerm = 0o644

// FileRoommateRepository stores the roommate collection as a single JSON array in one file.
//
// Every AppendAndSave is an independent read-modify-write of the whole file. Unless the
// repository was built with WithSerializedWrites, concurrent appends race and the last
// writer wins on the whole file.
type FileRoommateRepository struct {
	fs   afero.Fs
	path string

	serialize bool
	mu        sync.Mutex
}

// Option configures a FileRoommateRepository
type Option func(*FileRoommateRepository)

// WithSerializedWrites guards AppendAndSave with a mutex so concurrent appends in this
// process never drop records.
func WithSerializedWrites(enabled bool) Option {
	return func(r *FileRoommateRepository) {
		r.serialize = enabled
	}
}

// NewFileRoommateRepository creates a roommate repository backed by path on fs
func NewFileRoommateRepository(fs afero.Fs, path string, opts ...Option) *FileRoommateRepository {
	r := &FileRoommateRepository{fs: fs, path: path}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var _ ports.RoommateRepository = (*FileRoommateRepository)(nil)

// Path returns the backing file path
func (r *FileRoommateRepository) Path() string {
	return r.path
}

// LoadAll returns the stored collection. A missing file is an empty collection.
func (r *FileRoommateRepository) LoadAll(ctx context.Context) ([]entities.Roommate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := r.readFile()
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", entities.ErrStoreRead, r.path, err)
	}

	data, ok := raw.Get()
	if !ok {
		return []entities.Roommate{}, nil
	}

	roommates := []entities.Roommate{}
	if err := json.Unmarshal(data, &roommates); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", entities.ErrStoreRead, r.path, err)
	}
	if roommates == nil {
		// a literal "null" in the file
		roommates = []entities.Roommate{}
	}

	return roommates, nil
}

// AppendAndSave loads the collection, appends roommate and rewrites the whole file
func (r *FileRoommateRepository) AppendAndSave(ctx context.Context, roommate entities.Roommate) error {
	if r.serialize {
		r.mu.Lock()
		defer r.mu.Unlock()
	}

	roommates, err := r.LoadAll(ctx)
	if err != nil {
		return err
	}

	roommates = append(roommates, roommate)

	data, err := json.Marshal(roommates)
	if err != nil {
		return fmt.Errorf("%w: encode: %v", entities.ErrStoreWrite, err)
	}

	if err := afero.WriteFile(r.fs, r.path, data, defaultFilePerm); err != nil {
		return fmt.Errorf("%w: write %s: %v", entities.ErrStoreWrite, r.path, err)
	}

	return nil
}

// readFile returns None when the backing file does not exist
func (r *FileRoommateRepository) readFile() (mo.Option[[]byte], error) {
	data, err := afero.ReadFile(r.fs, r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return mo.None[[]byte](), nil
		}
		return mo.None[[]byte](), err
	}
	return mo.Some(data), nil
}
