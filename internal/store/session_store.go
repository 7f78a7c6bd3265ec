package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ventureai/backend/internal/models"
	"github.com/ventureai/backend/internal/utils"
)

const sessionFileName = "session.json"

// SessionStore keeps sessions in memory with a JSON file mirror per session
// for durability across restarts. All mutation of a given session is
// serialized on a per-session lock, so concurrent writers cannot interleave
// snapshots.
type SessionStore struct {
	root string
	log  *logrus.Logger

	mu       sync.Mutex
	sessions map[string]*models.Session
	locks    map[string]*sync.Mutex
}

func NewSessionStore(root string, log *logrus.Logger) (*SessionStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create sessions dir %s: %w", root, err)
	}
	return &SessionStore{
		root:     root,
		log:      log,
		sessions: make(map[string]*models.Session),
		locks:    make(map[string]*sync.Mutex),
	}, nil
}

// Root returns the directory sessions are persisted under.
func (s *SessionStore) Root() string { return s.root }

// NewSessionID derives a unique identifier from the creation time.
func NewSessionID(now time.Time) string {
	return fmt.Sprintf("session_%d_%s", now.Unix(), uuid.NewString()[:8])
}

// validSessionID guards every filesystem path built from a client-supplied
// id. Ids map to directories under the store root, so anything that could
// escape it (separators, dot segments) is rejected before any disk access.
func validSessionID(id string) bool {
	if id == "" || id == "." || id == ".." {
		return false
	}
	return !strings.ContainsAny(id, `/\`)
}

func (s *SessionStore) lockFor(id string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	return l
}

// Create allocates a fresh session and persists the empty transcript.
func (s *SessionStore) Create(cvPath string, cvQuestions []string) (*models.Session, error) {
	now := time.Now().UTC()
	sess := &models.Session{
		SessionID:   NewSessionID(now),
		CVPath:      cvPath,
		CreatedAt:   now,
		CVQuestions: cvQuestions,
	}

	l := s.lockFor(sess.SessionID)
	l.Lock()
	defer l.Unlock()

	if err := s.persist(sess); err != nil {
		return nil, utils.E(utils.CodeInternal, "SessionStore.Create", "failed to persist session", err)
	}

	s.mu.Lock()
	s.sessions[sess.SessionID] = sess
	s.mu.Unlock()

	return sess.Clone(), nil
}

// Get returns the in-memory session when present, hydrating from the
// persisted JSON otherwise.
func (s *SessionStore) Get(id string) (*models.Session, error) {
	const op = "SessionStore.Get"

	if !validSessionID(id) {
		return nil, utils.E(utils.CodeNotFound, op, "session not found", utils.ErrNotFound)
	}

	l := s.lockFor(id)
	l.Lock()
	defer l.Unlock()

	s.mu.Lock()
	sess, ok := s.sessions[id]
	s.mu.Unlock()
	if ok {
		return sess.Clone(), nil
	}

	sess, err := s.load(id)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, utils.E(utils.CodeNotFound, op, "session not found", utils.ErrNotFound)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load session", err)
	}

	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()

	return sess.Clone(), nil
}

// Mutate applies fn to the session under its lock and persists the full
// snapshot. fn receives the live session; returning an error aborts without
// writing.
func (s *SessionStore) Mutate(id string, fn func(*models.Session) error) (*models.Session, error) {
	const op = "SessionStore.Mutate"

	if !validSessionID(id) {
		return nil, utils.E(utils.CodeNotFound, op, "session not found", utils.ErrNotFound)
	}

	l := s.lockFor(id)
	l.Lock()
	defer l.Unlock()

	s.mu.Lock()
	sess, ok := s.sessions[id]
	s.mu.Unlock()
	if !ok {
		loaded, err := s.load(id)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, utils.E(utils.CodeNotFound, op, "session not found", utils.ErrNotFound)
			}
			return nil, utils.E(utils.CodeInternal, op, "failed to load session", err)
		}
		sess = loaded
		s.mu.Lock()
		s.sessions[id] = sess
		s.mu.Unlock()
	}

	if err := fn(sess); err != nil {
		return nil, err
	}
	if err := s.persist(sess); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to persist session", err)
	}
	return sess.Clone(), nil
}

// AppendTurn appends to the transcript and persists the snapshot.
func (s *SessionStore) AppendTurn(id string, turn models.Turn) (*models.Session, error) {
	return s.Mutate(id, func(sess *models.Session) error {
		sess.Turns = append(sess.Turns, turn)
		return nil
	})
}

// SetFeedback overwrites any prior feedback for the session.
func (s *SessionStore) SetFeedback(id, feedback string) (*models.Session, error) {
	return s.Mutate(id, func(sess *models.Session) error {
		sess.Feedback = feedback
		return nil
	})
}

// List enumerates session ids known to memory or disk, sorted.
func (s *SessionStore) List() ([]string, error) {
	seen := make(map[string]bool)

	s.mu.Lock()
	for id := range s.sessions {
		seen[id] = true
	}
	s.mu.Unlock()

	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, "SessionStore.List", "failed to read sessions dir", err)
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if _, err := os.Stat(filepath.Join(s.root, e.Name(), sessionFileName)); err == nil {
			seen[e.Name()] = true
		}
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Delete removes the session from memory and disk. Idempotent: deleting a
// session that does not exist returns false rather than erroring.
func (s *SessionStore) Delete(id string) bool {
	if !validSessionID(id) {
		return false
	}

	l := s.lockFor(id)
	l.Lock()
	defer l.Unlock()

	s.mu.Lock()
	_, inMem := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	dir := filepath.Join(s.root, id)
	_, statErr := os.Stat(dir)
	onDisk := statErr == nil
	if onDisk {
		if err := os.RemoveAll(dir); err != nil {
			s.log.WithError(err).WithField("session_id", id).Warn("failed to remove session dir")
		}
	}

	// The per-id lock is no longer needed once the session is gone.
	s.mu.Lock()
	delete(s.locks, id)
	s.mu.Unlock()

	return inMem || onDisk
}

// Forget drops the in-memory copy, leaving the persisted snapshot intact.
// Used by tests to simulate a process restart.
func (s *SessionStore) Forget(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

func (s *SessionStore) sessionPath(id string) string {
	return filepath.Join(s.root, id, sessionFileName)
}

func (s *SessionStore) persist(sess *models.Session) error {
	dir := filepath.Join(s.root, sess.SessionID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.sessionPath(sess.SessionID), data, 0o644)
}

func (s *SessionStore) load(id string) (*models.Session, error) {
	data, err := os.ReadFile(s.sessionPath(id))
	if err != nil {
		return nil, err
	}
	var sess models.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}
