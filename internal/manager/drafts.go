package manager

// Drafts are the generated posts the user can edit or drop before they
// are scheduled. They have no identity beyond their position.

// Drafts returns a copy of the editable posts.
func (m *Manager) Drafts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.state.Generation.Drafts...)
}

// BeginDraftEdit copies draft i into the edit buffer. Any edit already in
// progress is discarded.
func (m *Manager) BeginDraftEdit(i int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i < 0 || i >= len(m.state.Generation.Drafts) {
		return ErrDraftIndex
	}
	m.state.DraftEdit = &DraftEdit{Index: i, Text: m.state.Generation.Drafts[i]}
	return nil
}

func (m *Manager) SetDraftEditText(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.DraftEdit == nil {
		return ErrNoDraftEdit
	}
	m.state.DraftEdit.Text = text
	return nil
}

// SaveDraftEdit writes the edit buffer back into its slot and leaves edit
// mode. No other draft changes.
func (m *Manager) SaveDraftEdit() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	edit := m.state.DraftEdit
	if edit == nil {
		return ErrNoDraftEdit
	}
	if edit.Index >= len(m.state.Generation.Drafts) {
		m.state.DraftEdit = nil
		return ErrDraftIndex
	}
	m.state.Generation.Drafts[edit.Index] = edit.Text
	m.state.DraftEdit = nil
	return nil
}

func (m *Manager) CancelDraftEdit() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.DraftEdit = nil
}

// DeleteDraft removes draft i; later drafts move down one position. An
// edit in progress follows its draft, or ends if that draft is removed.
func (m *Manager) DeleteDraft(i int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	drafts := m.state.Generation.Drafts
	if i < 0 || i >= len(drafts) {
		return ErrDraftIndex
	}
	m.state.Generation.Drafts = append(drafts[:i:i], drafts[i+1:]...)

	if edit := m.state.DraftEdit; edit != nil {
		switch {
		case edit.Index == i:
			m.state.DraftEdit = nil
		case edit.Index > i:
			edit.Index--
		}
	}
	return nil
}
