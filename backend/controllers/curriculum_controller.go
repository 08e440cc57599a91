package controllers

import (
	"errors"

	"github.com/kassslll/creator-studio/backend/store"
	"github.com/kassslll/creator-studio/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type CurriculumController struct {
	Store store.CurriculumStore
}

func NewCurriculumController(st store.CurriculumStore) *CurriculumController {
	return &CurriculumController{Store: st}
}

func (cc *CurriculumController) List(c *fiber.Ctx) error {
	curricula, err := cc.Store.ListCurricula(c.UserContext())
	if err != nil {
		return utils.InternalServerError(c, err.Error())
	}
	return utils.Success(c, fiber.StatusOK, curricula)
}

func (cc *CurriculumController) Get(c *fiber.Ctx) error {
	id, ok := parseID(c.Params("id"))
	if !ok {
		return utils.BadRequest(c, "Invalid curriculum ID")
	}

	curriculum, err := cc.Store.GetCurriculum(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return utils.NotFound(c, "Curriculum not found")
		}
		return utils.InternalServerError(c, err.Error())
	}
	return utils.Success(c, fiber.StatusOK, curriculum)
}
