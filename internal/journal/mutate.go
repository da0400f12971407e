package journal

import "slices"

// The mutators below are pure: each takes an entry by value and returns the
// updated entry without touching the input's slices. Operations addressed by
// id return the entry unchanged when the id is unknown.

// SetContent replaces the entry's free text.
func SetContent(e Entry, text string) Entry {
	out := e.Clone()
	out.Content = text
	return out
}

// AppendPrompt adds a suggested prompt to the end of the content, separated
// from any existing text by a blank line.
func AppendPrompt(e Entry, prompt string) Entry {
	if isBlank(prompt) {
		return e
	}
	out := e.Clone()
	if out.Content != "" {
		out.Content += "\n\n"
	}
	out.Content += "✨ " + prompt + "\n"
	return out
}

// AddTodo appends an incomplete to-do. Blank text is rejected silently.
func AddTodo(e Entry, text string, newID IDFunc) Entry {
	if isBlank(text) {
		return e
	}
	if newID == nil {
		newID = NewID
	}
	out := e.Clone()
	out.Todos = append(out.Todos, TodoItem{ID: newID(), Text: text})
	return out
}

// ToggleTodo flips the completed flag of the matching to-do.
func ToggleTodo(e Entry, id string) Entry {
	i := slices.IndexFunc(e.Todos, func(t TodoItem) bool { return t.ID == id })
	if i < 0 {
		return e
	}
	out := e.Clone()
	out.Todos[i].Completed = !out.Todos[i].Completed
	return out
}

// DeleteTodo removes the matching to-do.
func DeleteTodo(e Entry, id string) Entry {
	i := slices.IndexFunc(e.Todos, func(t TodoItem) bool { return t.ID == id })
	if i < 0 {
		return e
	}
	out := e.Clone()
	out.Todos = slices.Delete(out.Todos, i, i+1)
	return out
}

// AddSticker appends a decoration; later stickers stack on top.
func AddSticker(e Entry, s Sticker) Entry {
	out := e.Clone()
	out.Stickers = append(out.Stickers, s)
	return out
}

// RemoveSticker removes the matching sticker.
func RemoveSticker(e Entry, id string) Entry {
	i := slices.IndexFunc(e.Stickers, func(s Sticker) bool { return s.ID == id })
	if i < 0 {
		return e
	}
	out := e.Clone()
	out.Stickers = slices.Delete(out.Stickers, i, i+1)
	return out
}

// MoveSticker sets the top-left position of the matching sticker.
func MoveSticker(e Entry, id string, x, y float64) Entry {
	i := slices.IndexFunc(e.Stickers, func(s Sticker) bool { return s.ID == id })
	if i < 0 {
		return e
	}
	out := e.Clone()
	out.Stickers[i].X = x
	out.Stickers[i].Y = y
	return out
}
