package controllers

import (
	"bufio"
	"context"
	"errors"
	"time"

	"github.com/kassslll/creator-studio/backend/content"
	"github.com/kassslll/creator-studio/backend/models"
	"github.com/kassslll/creator-studio/backend/progress"
	"github.com/kassslll/creator-studio/backend/services"
	"github.com/kassslll/creator-studio/backend/store"
	"github.com/kassslll/creator-studio/backend/utils"

	"github.com/gofiber/fiber/v2"
)

const (
	contentNotFound = "Content not found"
	quizUnreadable  = "Quiz content is not in a structured format and cannot be edited or checked"
)

type ContentController struct {
	Store            store.ContentStore
	Generation       *services.GenerationService
	Modification     *services.ModificationService
	Logger           *utils.Logger
	ProgressInterval time.Duration
}

func NewContentController(st store.ContentStore, gen *services.GenerationService, mod *services.ModificationService, logger *utils.Logger, tick time.Duration) *ContentController {
	return &ContentController{
		Store:            st,
		Generation:       gen,
		Modification:     mod,
		Logger:           logger,
		ProgressInterval: tick,
	}
}

func (cc *ContentController) parseGenerate(c *fiber.Ctx) (*GenerateRequest, error) {
	var req GenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, utils.BadRequest(c, "Invalid request body")
	}
	if msg, fields, ok := utils.ValidateStruct(&req); !ok {
		return nil, utils.ValidationError(c, msg, fields)
	}
	return &req, nil
}

// generate runs the provider call and stores the result as a new record.
func (cc *ContentController) generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error) {
	res, err := cc.Generation.Generate(ctx, req.params())
	if err != nil {
		return nil, err
	}

	id, err := cc.Store.Create(ctx, &models.Content{
		Title:        req.Title,
		ContentType:  res.ContentType,
		Content:      res.Body,
		CurriculumID: *req.CurriculumID,
		CreatedAt:    time.Now(),
	})
	if err != nil {
		return nil, err
	}

	return &GenerateResponse{
		ID:            id,
		Body:          res.Body,
		ProviderModel: res.ProviderModel,
		ContentType:   res.ContentType,
		Title:         res.Title,
	}, nil
}

func (cc *ContentController) respondError(c *fiber.Ctx, err error) error {
	var genErr *services.GenerationError
	switch {
	case errors.As(err, &genErr):
		cc.Logger.Error("provider call failed", "path", c.Path(), "error", err)
		return utils.BadGateway(c, err.Error())
	case errors.Is(err, store.ErrNotFound):
		return utils.NotFound(c, contentNotFound)
	default:
		cc.Logger.Error("request failed", "path", c.Path(), "error", err)
		return utils.InternalServerError(c, err.Error())
	}
}

func (cc *ContentController) Generate(c *fiber.Ctx) error {
	req, err := cc.parseGenerate(c)
	if req == nil {
		return err
	}

	resp, err := cc.generate(c.UserContext(), req)
	if err != nil {
		return cc.respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, resp)
}

// GenerateStream is Generate over server-sent events, with cosmetic
// progress percentages until the provider answers.
func (cc *ContentController) GenerateStream(c *fiber.Ctx) error {
	req, err := cc.parseGenerate(c)
	if req == nil {
		return err
	}

	sseHeaders(c)
	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		type outcome struct {
			resp *GenerateResponse
			err  error
		}
		done := make(chan outcome, 1)
		go func() {
			resp, err := cc.generate(ctx, req)
			done <- outcome{resp, err}
		}()

		ticker := progress.StartTicker(ctx, cc.ProgressInterval)
		var out outcome
		for ticks := ticker.C(); ticks != nil; {
			select {
			case pct, ok := <-ticks:
				if !ok {
					ticks = nil
					continue
				}
				if writeEvent(w, eventProgress, progressEvent{Percent: pct}) != nil {
					return
				}
			case out = <-done:
				ticker.Stop(out.err == nil)
				done = nil
			}
		}
		if done != nil {
			out = <-done
		}

		if out.err != nil {
			cc.Logger.Error("generation stream failed", "title", req.Title, "error", out.err)
			_ = writeEvent(w, eventError, errorEvent{Message: out.err.Error()})
			return
		}
		_ = writeEvent(w, eventResult, out.resp)
	})
	return nil
}

func (cc *ContentController) Modify(c *fiber.Ctx) error {
	var req ModifyRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}
	if msg, fields, ok := utils.ValidateStruct(&req); !ok {
		return utils.ValidationError(c, msg, fields)
	}

	ctx := c.UserContext()
	id := *req.ContentID
	original, err := cc.Store.Get(ctx, id)
	if err != nil {
		return cc.respondError(c, err)
	}

	res, err := cc.Modification.Modify(ctx, original.Content, req.ModificationType, req.Instructions)
	if err != nil {
		return cc.respondError(c, err)
	}

	if err := cc.Store.Update(ctx, id, models.ContentPatch{Content: &res.NewBody}); err != nil {
		return cc.respondError(c, err)
	}

	return utils.Success(c, fiber.StatusOK, ModifyResponse{
		ID:               id,
		NewBody:          res.NewBody,
		OriginalBody:     res.OriginalBody,
		ModificationType: res.ModificationType,
	})
}

func (cc *ContentController) List(c *fiber.Ctx) error {
	contents, err := cc.Store.ListAll(c.UserContext())
	if err != nil {
		return cc.respondError(c, err)
	}
	if contents == nil {
		contents = []models.Content{}
	}
	return utils.Success(c, fiber.StatusOK, contents)
}

func (cc *ContentController) Recent(c *fiber.Ctx) error {
	contents, err := cc.Store.ListRecent(c.UserContext(), store.DefaultRecentLimit)
	if err != nil {
		return cc.respondError(c, err)
	}

	now := time.Now()
	result := make([]RecentContent, 0, len(contents))
	for _, item := range contents {
		result = append(result, RecentContent{
			ID:      item.ID,
			Title:   item.Title,
			Type:    item.ContentType,
			TimeAgo: utils.TimeAgo(item.CreatedAt, now),
		})
	}
	return utils.Success(c, fiber.StatusOK, result)
}

func (cc *ContentController) load(c *fiber.Ctx) (*models.Content, error) {
	id, ok := parseID(c.Params("id"))
	if !ok {
		return nil, utils.BadRequest(c, "Invalid content ID")
	}
	record, err := cc.Store.Get(c.UserContext(), id)
	if err != nil {
		return nil, cc.respondError(c, err)
	}
	return record, nil
}

func (cc *ContentController) Get(c *fiber.Ctx) error {
	record, err := cc.load(c)
	if record == nil {
		return err
	}
	return utils.Success(c, fiber.StatusOK, record)
}

// Preview decodes the stored body for its content type and renders it.
// A body that does not decode is previewed as the type's placeholder.
func (cc *ContentController) Preview(c *fiber.Ctx) error {
	record, err := cc.load(c)
	if record == nil {
		return err
	}

	pres := content.Resolve(record.ContentType)
	decoded := pres.Parse(record.Content)
	if decoded.Fallback {
		cc.Logger.Debug("content body did not decode, previewing placeholder",
			"id", record.ID, "content_type", record.ContentType, "error", decoded.Err)
	}

	view, err := pres.Render(decoded.Value)
	if err != nil {
		return cc.respondError(c, err)
	}
	if view.Title == "" {
		view.Title = record.Title
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"id":       record.ID,
		"title":    record.Title,
		"kind":     pres.Kind().String(),
		"fallback": decoded.Fallback,
		"view":     view,
	})
}

// Edit applies one structural edit to the stored body and saves it.
func (cc *ContentController) Edit(c *fiber.Ctx) error {
	var patch content.Patch
	if err := c.BodyParser(&patch); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}
	if msg, fields, ok := utils.ValidateStruct(&patch); !ok {
		return utils.ValidationError(c, msg, fields)
	}

	record, err := cc.load(c)
	if record == nil {
		return err
	}

	pres := content.Resolve(record.ContentType)
	decoded := pres.Parse(record.Content)
	if decoded.Fallback && pres.Kind() == content.KindQuiz {
		// the placeholder would replace the stored body
		return utils.Conflict(c, quizUnreadable)
	}
	edited, err := pres.Edit(decoded.Value, patch)
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	body, err := content.Encode(edited)
	if err != nil {
		return cc.respondError(c, err)
	}
	if err := cc.Store.Update(c.UserContext(), record.ID, models.ContentPatch{Content: &body}); err != nil {
		return cc.respondError(c, err)
	}

	view, err := pres.Render(edited)
	if err != nil {
		return cc.respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"id":      record.ID,
		"content": body,
		"view":    view,
	})
}

// CheckQuiz scores a full set of selections against a stored quiz.
func (cc *ContentController) CheckQuiz(c *fiber.Ctx) error {
	var req QuizCheckRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}
	if msg, fields, ok := utils.ValidateStruct(&req); !ok {
		return utils.ValidationError(c, msg, fields)
	}

	record, err := cc.load(c)
	if record == nil {
		return err
	}
	if content.ParseKind(record.ContentType) != content.KindQuiz {
		return utils.BadRequest(c, "Content is not a quiz")
	}

	decoded := content.DecodeQuiz(record.Content)
	if decoded.Fallback {
		return utils.Conflict(c, quizUnreadable)
	}
	score := content.ScoreQuiz(decoded.Value.Questions, req.Selections)
	if !score.Complete {
		return utils.BadRequest(c, "Answer every question before checking")
	}
	return utils.Success(c, fiber.StatusOK, score)
}
