package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/easeaico/sticker-journal/internal/generate"
	"github.com/easeaico/sticker-journal/internal/journal"
	"github.com/easeaico/sticker-journal/internal/notebook"
	"github.com/easeaico/sticker-journal/internal/overlay"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Notebook is the state container the routes drive.
type Notebook interface {
	Current() notebook.Snapshot
	Open(ctx context.Context, date string) (notebook.Snapshot, error)
	Shift(ctx context.Context, days int) (notebook.Snapshot, error)

	SetContent(ctx context.Context, text string) journal.Entry
	AddTodo(ctx context.Context, text string) journal.Entry
	ToggleTodo(ctx context.Context, id string) journal.Entry
	DeleteTodo(ctx context.Context, id string) journal.Entry
	RemoveSticker(ctx context.Context, id string) journal.Entry
	AppendPrompt(ctx context.Context, prompt string) journal.Entry

	GeneratePrompts(ctx context.Context, mood string) ([]string, error)
	GenerateSticker(ctx context.Context, description string, kind journal.StickerKind) (journal.Sticker, bool, error)

	PointerDown(stickerID string) overlay.DragState
	PointerMove(ctx context.Context, pointer, origin overlay.Point) bool
	PointerUp()
	PointerLeave()
}

// DateLister lists the dates that have saved pages.
type DateLister interface {
	ListDates(ctx context.Context) ([]string, error)
}

// JournalRoutes holds the handlers for /api.
type JournalRoutes struct {
	Notebook Notebook
	Dates    DateLister
	log      *zap.Logger
}

// NewJournalRoutes creates the handlers. A nil logger disables logging.
func NewJournalRoutes(nb Notebook, dates DateLister, log *zap.Logger) *JournalRoutes {
	if log == nil {
		log = zap.NewNop()
	}
	return &JournalRoutes{Notebook: nb, Dates: dates, log: log.Named("JournalRoutes")}
}

func respond(c echo.Context, resp ErrorResponse) error {
	return c.JSON(resp.Code(), resp)
}

// bind decodes and validates a request body, writing the error response itself.
// It returns false when the handler should stop.
func bind(c echo.Context, req any) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, respond(c, MalformedBodyError)
	}
	if err := c.Validate(req); err != nil {
		if verr := FromValidationError(err); verr != nil {
			return false, respond(c, verr)
		}
		return false, respond(c, MalformedBodyError)
	}
	return true, nil
}

// generationError maps generation failures to a response body.
func (j *JournalRoutes) generationError(err error) ErrorResponse {
	switch {
	case errors.Is(err, generate.ErrConfiguration):
		return MissingAPIKeyError
	case errors.Is(err, notebook.ErrBusy):
		return GenerationBusyError
	case errors.Is(err, notebook.ErrEmptyInput):
		return EmptyInputError
	case errors.Is(err, generate.ErrGeneration):
		return ImageGenerationFailure
	default:
		j.log.Error("Unexpected generation error", zap.Error(err))
		return InternalServerError
	}
}

// ListDates handles GET /api/entries.
func (j *JournalRoutes) ListDates(c echo.Context) error {
	dates, err := j.Dates.ListDates(c.Request().Context())
	if err != nil {
		j.log.Error("Failed to list dates", zap.Error(err))
		return respond(c, InternalServerError)
	}
	return c.JSON(http.StatusOK, &DatesResponse{Dates: dates})
}

// GetJournal handles GET /api/journal.
func (j *JournalRoutes) GetJournal(c echo.Context) error {
	snap := j.Notebook.Current()
	setJournalDate(c, snap.Date)
	return c.JSON(http.StatusOK, toJournalResponse(snap))
}

// SelectDate handles PUT /api/journal/date.
func (j *JournalRoutes) SelectDate(c echo.Context) error {
	var req SelectDateRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}

	snap, err := j.Notebook.Open(c.Request().Context(), req.Date)
	if err != nil {
		return respond(c, InvalidDateError)
	}
	setJournalDate(c, snap.Date)
	return c.JSON(http.StatusOK, toJournalResponse(snap))
}

// ShiftDate handles POST /api/journal/date/shift.
func (j *JournalRoutes) ShiftDate(c echo.Context) error {
	var req ShiftDateRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}

	snap, err := j.Notebook.Shift(c.Request().Context(), req.Days)
	if err != nil {
		return respond(c, InvalidDateError)
	}
	setJournalDate(c, snap.Date)
	return c.JSON(http.StatusOK, toJournalResponse(snap))
}

// SetContent handles PUT /api/journal/content.
func (j *JournalRoutes) SetContent(c echo.Context) error {
	var req ContentRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}
	return j.entry(c, j.Notebook.SetContent(c.Request().Context(), req.Content))
}

// AddTodo handles POST /api/journal/todos.
func (j *JournalRoutes) AddTodo(c echo.Context) error {
	var req TodoRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}
	return j.entry(c, j.Notebook.AddTodo(c.Request().Context(), req.Text))
}

// ToggleTodo handles POST /api/journal/todos/:id/toggle. Unknown ids are a no-op.
func (j *JournalRoutes) ToggleTodo(c echo.Context) error {
	return j.entry(c, j.Notebook.ToggleTodo(c.Request().Context(), c.Param("id")))
}

// DeleteTodo handles DELETE /api/journal/todos/:id.
func (j *JournalRoutes) DeleteTodo(c echo.Context) error {
	return j.entry(c, j.Notebook.DeleteTodo(c.Request().Context(), c.Param("id")))
}

// GeneratePrompts handles POST /api/journal/prompts.
func (j *JournalRoutes) GeneratePrompts(c echo.Context) error {
	var req PromptsRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}
	setGeneration(c, "prompts")

	prompts, err := j.Notebook.GeneratePrompts(c.Request().Context(), req.Mood)
	if err != nil {
		return respond(c, j.generationError(err))
	}
	return c.JSON(http.StatusOK, &PromptsResponse{Prompts: prompts})
}

// ApplyPrompt handles POST /api/journal/prompts/apply.
func (j *JournalRoutes) ApplyPrompt(c echo.Context) error {
	var req ApplyPromptRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}
	return j.entry(c, j.Notebook.AppendPrompt(c.Request().Context(), req.Prompt))
}

// GenerateSticker handles POST /api/journal/stickers. A response without an
// image is a success with added=false.
func (j *JournalRoutes) GenerateSticker(c echo.Context) error {
	var req StickerRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}
	kind, err := journal.ParseKind(req.Kind)
	if err != nil {
		return respond(c, NewSimple(http.StatusBadRequest, "Unknown sticker kind '%s'", req.Kind))
	}
	setGeneration(c, string(kind))

	sticker, added, err := j.Notebook.GenerateSticker(c.Request().Context(), req.Description, kind)
	if err != nil {
		return respond(c, j.generationError(err))
	}

	snap := j.Notebook.Current()
	setJournalDate(c, snap.Date)
	resp := &StickerResponse{Added: added, Entry: snap.Entry}
	if added {
		resp.Sticker = &sticker
	}
	return c.JSON(http.StatusOK, resp)
}

// RemoveSticker handles DELETE /api/journal/stickers/:id.
func (j *JournalRoutes) RemoveSticker(c echo.Context) error {
	return j.entry(c, j.Notebook.RemoveSticker(c.Request().Context(), c.Param("id")))
}

// DragDown handles POST /api/journal/drag/down. An unknown sticker leaves the drag idle.
func (j *JournalRoutes) DragDown(c echo.Context) error {
	var req DragDownRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}
	j.Notebook.PointerDown(req.StickerID)
	return c.JSON(http.StatusOK, toJournalResponse(j.Notebook.Current()).Drag)
}

// DragMove handles POST /api/journal/drag/move.
func (j *JournalRoutes) DragMove(c echo.Context) error {
	var req DragMoveRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}
	j.Notebook.PointerMove(c.Request().Context(),
		overlay.Point{X: req.PointerX, Y: req.PointerY},
		overlay.Point{X: req.OriginX, Y: req.OriginY})
	return j.entry(c, j.Notebook.Current().Entry)
}

// DragUp handles POST /api/journal/drag/up.
func (j *JournalRoutes) DragUp(c echo.Context) error {
	j.Notebook.PointerUp()
	return c.NoContent(http.StatusNoContent)
}

// DragLeave handles POST /api/journal/drag/leave.
func (j *JournalRoutes) DragLeave(c echo.Context) error {
	j.Notebook.PointerLeave()
	return c.NoContent(http.StatusNoContent)
}

func (j *JournalRoutes) entry(c echo.Context, e journal.Entry) error {
	setJournalDate(c, e.Date)
	return c.JSON(http.StatusOK, e)
}
