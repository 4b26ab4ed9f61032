package session

// HeaderSetter receives the current token whenever it changes, so
// outbound requests always carry the live credential and never a stale
// one after logout.
type HeaderSetter interface {
	SetAuthHeader(token string)
}

// Manager ties the reactive Store to durable storage and the outbound
// request header. The Store setter alone never persists; only Login and
// Logout touch the blob on disk.
type Manager struct {
	store   *Store
	storage *FileStorage
	header  HeaderSetter
}

// NewManager hydrates the store from durable storage (defaulting to a
// logged-out context when no blob exists) and wires token changes into
// the header setter, including for the initial value.
func NewManager(store *Store, storage *FileStorage, header HeaderSetter) (*Manager, error) {
	m := &Manager{store: store, storage: storage, header: header}

	ctx, found, err := storage.Load()
	if err != nil {
		return nil, err
	}
	if !found {
		ctx = Context{User: nil, Token: ""}
	}

	store.Subscribe(func(c Context) {
		header.SetAuthHeader(c.Token)
	})
	// Adopt the persisted value verbatim; this also syncs the header.
	store.Set(ctx)

	return m, nil
}

// Store exposes the underlying reactive store.
func (m *Manager) Store() *Store {
	return m.store
}

// Login replaces the session with the given identity and persists the
// same value to durable storage as one client-side step.
func (m *Manager) Login(user *Profile, token string) error {
	ctx := Context{User: user, Token: token}
	m.store.Set(ctx)
	return m.storage.Save(ctx)
}

// Logout clears the session and removes the durable blob entirely. Safe
// to call when no session exists.
func (m *Manager) Logout() error {
	m.store.Set(Context{User: nil, Token: ""})
	return m.storage.Remove()
}
