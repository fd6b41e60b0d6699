package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/renacod/backend/internal/domain"
	"github.com/renacod/backend/internal/search"
)

// ContactsFile is the name of the JSON array file inside the data directory.
const ContactsFile = "contacts.json"

// FileStore keeps every contact in a single JSON array on disk. Each
// mutation reads the whole array, changes it, and rewrites the file.
//
// A mutex serializes access within one process. Two processes pointed at
// the same directory can still lose each other's writes.
type FileStore struct {
	dir  string
	path string
	mu   sync.Mutex
}

// NewFileStore returns a store rooted at dir. Call EnsureReady before use.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir, path: filepath.Join(dir, ContactsFile)}
}

// Path returns the location of the contacts file.
func (s *FileStore) Path() string { return s.path }

// EnsureReady creates the data directory and an empty contacts file when
// they are missing. Calling it again is a no-op.
func (s *FileStore) EnsureReady() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("file store: create %s: %w", s.dir, err)
	}
	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("file store: stat %s: %w", s.path, err)
	}
	return s.write(nil)
}

func (s *FileStore) Create(_ context.Context, c *domain.Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.read()
	if err != nil {
		return err
	}
	all = append(all, *c)
	return s.write(all)
}

func (s *FileStore) Get(_ context.Context, id string) (*domain.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.read()
	if err != nil {
		return nil, err
	}
	if i := indexOf(all, id); i >= 0 {
		c := all[i]
		return &c, nil
	}
	return nil, ErrNotFound
}

func (s *FileStore) List(_ context.Context, q domain.ContactQuery) ([]domain.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.read()
	if err != nil {
		return nil, err
	}
	matched := filterContacts(all, q.Filter)
	sortNewestFirst(matched)

	if q.Offset > 0 {
		if q.Offset >= len(matched) {
			return []domain.Contact{}, nil
		}
		matched = matched[q.Offset:]
	}
	if q.Limit > 0 && q.Limit < len(matched) {
		matched = matched[:q.Limit]
	}
	return matched, nil
}

func (s *FileStore) Count(_ context.Context, f domain.ContactFilter) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.read()
	if err != nil {
		return 0, err
	}
	return int64(len(filterContacts(all, f))), nil
}

func (s *FileStore) Save(_ context.Context, c *domain.Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.read()
	if err != nil {
		return err
	}
	i := indexOf(all, c.ID)
	if i < 0 {
		return ErrNotFound
	}
	all[i] = *c
	return s.write(all)
}

func (s *FileStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.read()
	if err != nil {
		return err
	}
	i := indexOf(all, id)
	if i < 0 {
		return ErrNotFound
	}
	all = append(all[:i], all[i+1:]...)
	return s.write(all)
}

func (s *FileStore) UpdateMany(_ context.Context, ids []string, patch domain.ContactPatch, now time.Time) (domain.BulkResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var res domain.BulkResult
	all, err := s.read()
	if err != nil {
		return res, err
	}
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	for i := range all {
		if _, ok := want[all[i].ID]; !ok {
			continue
		}
		res.MatchedCount++
		if all[i].Apply(patch, now) {
			res.ModifiedCount++
		}
	}
	if res.ModifiedCount == 0 {
		return res, nil
	}
	return res, s.write(all)
}

func (s *FileStore) CountBy(_ context.Context, field domain.GroupField) (map[string]int64, error) {
	if !field.Valid() {
		return nil, fmt.Errorf("file store: cannot group contacts by %q", field)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.read()
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64)
	for i := range all {
		out[field.Value(&all[i])]++
	}
	return out, nil
}

func (s *FileStore) CreatedSince(_ context.Context, since time.Time) ([]time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.read()
	if err != nil {
		return nil, err
	}
	out := make([]time.Time, 0, len(all))
	for _, c := range all {
		if !c.CreatedAt.Before(since) {
			out = append(out, c.CreatedAt)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out, nil
}

// Ping checks that the contacts file is readable.
func (s *FileStore) Ping(_ context.Context) error {
	_, err := os.Stat(s.path)
	return err
}

func (s *FileStore) read() ([]domain.Contact, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("file store: read %s: %w", s.path, err)
	}
	var all []domain.Contact
	if err := json.Unmarshal(b, &all); err != nil {
		return nil, fmt.Errorf("file store: decode %s: %w", s.path, err)
	}
	return all, nil
}

// write replaces the file through a temp file + rename so readers never see
// a half-written array.
func (s *FileStore) write(all []domain.Contact) error {
	if all == nil {
		all = []domain.Contact{}
	}
	b, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return fmt.Errorf("file store: encode: %w", err)
	}
	tmp, err := os.CreateTemp(s.dir, ContactsFile+".*.tmp")
	if err != nil {
		return fmt.Errorf("file store: temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("file store: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("file store: close: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("file store: replace %s: %w", s.path, err)
	}
	return nil
}

func indexOf(all []domain.Contact, id string) int {
	for i := range all {
		if all[i].ID == id {
			return i
		}
	}
	return -1
}

func filterContacts(all []domain.Contact, f domain.ContactFilter) []domain.Contact {
	term := search.Compile(f.Search)
	out := make([]domain.Contact, 0, len(all))
	for i := range all {
		if matchContact(&all[i], f, term) {
			out = append(out, all[i])
		}
	}
	return out
}

func matchContact(c *domain.Contact, f domain.ContactFilter, term search.Term) bool {
	switch {
	case f.Status != "" && c.Status != f.Status:
		return false
	case f.Priority != "" && c.Priority != f.Priority:
		return false
	case f.Service != "" && c.Service != f.Service:
		return false
	case f.Source != "" && c.Source != f.Source:
		return false
	case f.IsRead != nil && c.IsRead != *f.IsRead:
		return false
	case f.Start != nil && c.CreatedAt.Before(*f.Start):
		return false
	case f.End != nil && c.CreatedAt.After(*f.End):
		return false
	}
	return term.Match(c.SearchFields()...)
}

func sortNewestFirst(cs []domain.Contact) {
	sort.SliceStable(cs, func(i, j int) bool {
		if !cs[i].CreatedAt.Equal(cs[j].CreatedAt) {
			return cs[i].CreatedAt.After(cs[j].CreatedAt)
		}
		return cs[i].ID > cs[j].ID
	})
}
