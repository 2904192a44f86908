// Package ledger owns the mapping from chat names to remote session ids
// and the append-only transcript kept for every chat.
package ledger

import (
	"path/filepath"
	"sort"

	"github.com/coderFeedForwardAlg/web-term/internal"
)

// Ledger is the in-memory view of one storage directory. It is loaded once
// per process and is not safe for concurrent use.
type Ledger struct {
	dir     string
	backend Backend
	store   SnapshotStore
	chats   map[string]string
}

type options struct {
	backend Backend
	store   SnapshotStore
}

// Option configures Load
type Option func(*options)

// WithBackend selects the snapshot backend (json by default)
func WithBackend(b Backend) Option {
	return func(o *options) { o.backend = b }
}

// WithStore overrides the snapshot store entirely
func WithStore(s SnapshotStore) Option {
	return func(o *options) { o.store = s }
}

// Load reads the snapshot in dir. A missing snapshot yields an empty ledger;
// one that cannot be read or parsed yields a *CorruptStateError.
func Load(dir string, opts ...Option) (*Ledger, error) {
	o := options{backend: BackendJSON}
	for _, opt := range opts {
		opt(&o)
	}
	if dir == "" {
		dir = "."
	}

	store := o.store
	if store == nil {
		var err error
		store, err = NewSnapshotStore(dir, o.backend)
		if err != nil {
			return nil, err
		}
	}

	chats, existed, err := store.Load()
	if err != nil {
		return nil, &CorruptStateError{Path: store.Path(), Err: err}
	}
	if chats == nil {
		chats = map[string]string{}
	}
	if existed {
		internal.LogDebug("Loaded %d chats from %s", len(chats), store.Path())
	} else {
		internal.LogDebug("No snapshot at %s, starting empty", store.Path())
	}

	return &Ledger{
		dir:     dir,
		backend: o.backend,
		store:   store,
		chats:   chats,
	}, nil
}

func (l *Ledger) Dir() string          { return l.dir }
func (l *Ledger) Backend() Backend     { return l.backend }
func (l *Ledger) SnapshotPath() string { return l.store.Path() }

// Has reports whether name is registered
func (l *Ledger) Has(name string) bool {
	_, ok := l.chats[name]
	return ok
}

// AddChat registers name and persists the full snapshot. Nothing changes,
// in memory or on disk, when the name already exists or the save fails.
func (l *Ledger) AddChat(name, sessionID string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if l.Has(name) {
		return &DuplicateNameError{Name: name}
	}

	l.chats[name] = sessionID
	if err := l.store.Save(l.snapshot()); err != nil {
		delete(l.chats, name)
		return &internal.StorageError{Path: l.store.Path(), Op: "save", Err: err}
	}
	internal.LogDebug("Registered chat %q -> %s", name, sessionID)
	return nil
}

// Resolve returns the session id registered for name
func (l *Ledger) Resolve(name string) (string, error) {
	sessionID, ok := l.chats[name]
	if !ok {
		return "", &UnknownChatError{Name: name}
	}
	return sessionID, nil
}

// ListChats returns every registered name in ascending order
func (l *Ledger) ListChats() []string {
	names := make([]string, 0, len(l.chats))
	for name := range l.chats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TranscriptPath returns the transcript file of a registered chat
func (l *Ledger) TranscriptPath(name string) (string, error) {
	if !l.Has(name) {
		return "", &UnknownChatError{Name: name}
	}
	// names can come from a hand-edited snapshot
	if err := ValidateName(name); err != nil {
		return "", err
	}
	return filepath.Join(l.dir, name+".txt"), nil
}

// AppendExchange appends one exchange to the chat's transcript. The file is
// opened and closed within the call and the snapshot is not touched.
func (l *Ledger) AppendExchange(name, user, assistant string) error {
	path, err := l.TranscriptPath(name)
	if err != nil {
		return err
	}
	if err := appendTranscript(path, user, assistant); err != nil {
		return &internal.StorageError{Path: path, Op: "append", Err: err}
	}
	return nil
}

// Transcript parses the chat's transcript file
func (l *Ledger) Transcript(name string) ([]TranscriptEntry, error) {
	path, err := l.TranscriptPath(name)
	if err != nil {
		return nil, err
	}
	entries, err := readTranscript(path)
	if err != nil {
		return nil, &internal.StorageError{Path: path, Op: "read", Err: err}
	}
	return entries, nil
}

// Session builds the read-only view used by show and export
func (l *Ledger) Session(name string) (*internal.Session, error) {
	sessionID, err := l.Resolve(name)
	if err != nil {
		return nil, err
	}
	path, err := l.TranscriptPath(name)
	if err != nil {
		return nil, err
	}
	entries, err := l.Transcript(name)
	if err != nil {
		return nil, err
	}

	messages := make([]internal.Message, 0, len(entries)*2)
	for _, e := range entries {
		messages = append(messages,
			internal.Message{Actor: internal.ActorUser, Content: e.User},
			internal.Message{Actor: internal.ActorAssistant, Content: e.Assistant},
		)
	}

	return &internal.Session{
		Name:      name,
		SessionID: sessionID,
		Messages:  messages,
		Metadata: internal.Metadata{
			TranscriptPath: path,
			Backend:        string(l.backend),
			ExchangeCount:  len(entries),
			MessageCount:   len(messages),
		},
	}, nil
}

func (l *Ledger) snapshot() map[string]string {
	out := make(map[string]string, len(l.chats))
	for k, v := range l.chats {
		out[k] = v
	}
	return out
}
