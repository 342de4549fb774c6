package ui

import tea "charm.land/bubbletea/v2"

// ChildModel is a pane owned by the root Model. The root routes messages to the focused
// child and composes the children's views.
type ChildModel interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (ChildModel, tea.Cmd)
	View() string
}

// ModelWithSize is implemented by children that react to resizes.
type ModelWithSize interface {
	SetSize(width, height int)
}

// ModelWithFocus is implemented by children that render differently when focused.
type ModelWithFocus interface {
	Focus() tea.Cmd
	Blur()
	Focused() bool
}

// ModelWithStatus is implemented by children that describe the row under the cursor,
// shown in the footer.
type ModelWithStatus interface {
	Status() string
}
