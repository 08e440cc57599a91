package controllers

import (
	"bufio"
	"context"
	"time"

	"github.com/kassslll/creator-studio/backend/progress"
	"github.com/kassslll/creator-studio/backend/services"
	"github.com/kassslll/creator-studio/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type DiscoveryController struct {
	Discovery        *services.DiscoveryService
	Logger           *utils.Logger
	RevealInterval   time.Duration
	ProgressInterval time.Duration
}

func NewDiscoveryController(discovery *services.DiscoveryService, logger *utils.Logger, reveal, tick time.Duration) *DiscoveryController {
	return &DiscoveryController{
		Discovery:        discovery,
		Logger:           logger,
		RevealInterval:   reveal,
		ProgressInterval: tick,
	}
}

func (dc *DiscoveryController) Discover(c *fiber.Ctx) error {
	var req DiscoverRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}
	if msg, fields, ok := utils.ValidateStruct(&req); !ok {
		return utils.ValidationError(c, msg, fields)
	}

	result, err := dc.Discovery.Discover(c.UserContext(), req.Query)
	if err != nil {
		dc.Logger.Error("discovery failed", "query", req.Query, "error", err)
		return utils.InternalServerError(c, err.Error())
	}
	return utils.Success(c, fiber.StatusOK, result)
}

func (dc *DiscoveryController) Analyze(c *fiber.Ctx) error {
	var req DiscoverRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}
	if msg, fields, ok := utils.ValidateStruct(&req); !ok {
		return utils.ValidationError(c, msg, fields)
	}

	analysis, err := dc.Discovery.AnalyzeQuery(c.UserContext(), req.Query)
	if err != nil {
		return utils.BadGateway(c, err.Error())
	}
	return utils.Success(c, fiber.StatusOK, analysis)
}

// DiscoverStream runs a discovery and streams it as server-sent events:
// progress percentages while the provider call is outstanding, then each
// thought paced at RevealInterval, then the full result.
func (dc *DiscoveryController) DiscoverStream(c *fiber.Ctx) error {
	req := DiscoverRequest{Query: c.Query("query")}
	if msg, fields, ok := utils.ValidateStruct(&req); !ok {
		return utils.ValidationError(c, msg, fields)
	}

	sseHeaders(c)
	query := req.Query
	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		type outcome struct {
			result *services.DiscoveryResult
			err    error
		}
		done := make(chan outcome, 1)
		go func() {
			res, err := dc.Discovery.Discover(ctx, query)
			done <- outcome{res, err}
		}()

		ticker := progress.StartTicker(ctx, dc.ProgressInterval)
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
			dc.Logger.Error("discovery stream failed", "query", query, "error", out.err)
			_ = writeEvent(w, eventError, errorEvent{Message: out.err.Error()})
			return
		}

		thoughts := out.result.Thoughts
		if len(thoughts) == 0 {
			thoughts = services.PendingThoughts(query)
		}
		for step := range progress.NewRevealSequence(thoughts, dc.RevealInterval).Run(ctx) {
			if writeEvent(w, eventThought, step) != nil {
				return
			}
		}
		_ = writeEvent(w, eventResult, out.result)
	})
	return nil
}
