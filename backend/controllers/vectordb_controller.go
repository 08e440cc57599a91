package controllers

import (
	"github.com/kassslll/creator-studio/backend/utils"
	"github.com/kassslll/creator-studio/backend/vectordb"

	"github.com/gofiber/fiber/v2"
)

type VectorDBController struct {
	Retriever vectordb.Retriever
}

func NewVectorDBController(retriever vectordb.Retriever) *VectorDBController {
	return &VectorDBController{Retriever: retriever}
}

func (vc *VectorDBController) Search(c *fiber.Ctx) error {
	var req SearchRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}
	if msg, fields, ok := utils.ValidateStruct(&req); !ok {
		return utils.ValidationError(c, msg, fields)
	}
	if req.Limit == 0 {
		req.Limit = vectordb.DefaultSearchLimit
	}

	result, err := vc.Retriever.Search(c.UserContext(), req.Query, req.Limit)
	if err != nil {
		return utils.InternalServerError(c, err.Error())
	}
	return utils.Success(c, fiber.StatusOK, result)
}

func (vc *VectorDBController) Status(c *fiber.Ctx) error {
	status, err := vc.Retriever.Status(c.UserContext())
	if err != nil {
		return utils.InternalServerError(c, err.Error())
	}
	return utils.Success(c, fiber.StatusOK, status)
}

func (vc *VectorDBController) Stats(c *fiber.Ctx) error {
	stats, err := vc.Retriever.Stats(c.UserContext())
	if err != nil {
		return utils.InternalServerError(c, err.Error())
	}
	return utils.Success(c, fiber.StatusOK, stats)
}
