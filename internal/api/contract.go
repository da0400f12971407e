package api

import (
	"github.com/easeaico/sticker-journal/internal/journal"
	"github.com/easeaico/sticker-journal/internal/notebook"
)

// SelectDateRequest opens the page for Date.
type SelectDateRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
}

// ShiftDateRequest moves the selection by Days; zero reopens the current page.
type ShiftDateRequest struct {
	Days int `json:"days" validate:"min=-366,max=366"`
}

// ContentRequest replaces the page text. An empty string clears it.
type ContentRequest struct {
	Content string `json:"content"`
}

// TodoRequest adds a to-do. Blank text is ignored.
type TodoRequest struct {
	Text string `json:"text"`
}

// PromptsRequest asks for writing prompts matching a mood.
type PromptsRequest struct {
	Mood string `json:"mood" validate:"required"`
}

// ApplyPromptRequest appends a chosen prompt to the page text.
type ApplyPromptRequest struct {
	Prompt string `json:"prompt" validate:"required"`
}

// StickerRequest asks for a generated sticker or washi strip.
type StickerRequest struct {
	Description string `json:"description" validate:"required"`
	Kind        string `json:"kind" validate:"required,oneof=sticker washi"`
}

// DragDownRequest starts dragging a sticker.
type DragDownRequest struct {
	StickerID string `json:"stickerId" validate:"required"`
}

// DragMoveRequest carries the pointer position and the canvas origin, both in
// viewport pixels.
type DragMoveRequest struct {
	PointerX float64 `json:"pointerX"`
	PointerY float64 `json:"pointerY"`
	OriginX  float64 `json:"originX"`
	OriginY  float64 `json:"originY"`
}

// DragResponse is "idle" or "dragging" with the sticker being moved.
type DragResponse struct {
	State     string `json:"state"`
	StickerID string `json:"stickerId,omitempty"`
}

// JournalResponse is the full state of the open page.
type JournalResponse struct {
	Date       string        `json:"date"`
	Entry      journal.Entry `json:"entry"`
	Prompts    []string      `json:"prompts"`
	Generating bool          `json:"generating"`
	Drag       DragResponse  `json:"drag"`
}

// PromptsResponse lists suggested writing prompts.
type PromptsResponse struct {
	Prompts []string `json:"prompts"`
}

// StickerResponse reports whether an image came back. Sticker is omitted
// when it did not.
type StickerResponse struct {
	Added   bool             `json:"added"`
	Sticker *journal.Sticker `json:"sticker,omitempty"`
	Entry   journal.Entry    `json:"entry"`
}

// DatesResponse lists the dates with a saved page, oldest first.
type DatesResponse struct {
	Dates []string `json:"dates"`
}

func toJournalResponse(s notebook.Snapshot) *JournalResponse {
	drag := DragResponse{State: "idle"}
	if id, ok := s.Drag.Active(); ok {
		drag = DragResponse{State: "dragging", StickerID: id}
	}
	return &JournalResponse{
		Date:       s.Date,
		Entry:      s.Entry,
		Prompts:    s.Prompts,
		Generating: s.Generating,
		Drag:       drag,
	}
}
