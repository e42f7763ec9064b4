package handlers

import (
	"errors"

	"github.com/arzan03/ElectricTools/internal/models"
	"github.com/arzan03/ElectricTools/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ToolHandler struct {
	tools *services.ToolService
}

func NewToolHandler(tools *services.ToolService) *ToolHandler {
	return &ToolHandler{tools: tools}
}

// ListTools returns the whole catalog.
func (h *ToolHandler) ListTools(c *fiber.Ctx) error {
	tools, err := h.tools.List(c.UserContext(), models.ToolQuery{})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(tools)
}

// SearchTools serves /all-tools?page=&limit=&search=.
func (h *ToolHandler) SearchTools(c *fiber.Ctx) error {
	tools, err := h.tools.List(c.UserContext(), models.ToolQuery{
		Page:   c.QueryInt("page", 0),
		Limit:  c.QueryInt("limit", 0),
		Search: c.Query("search"),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(tools)
}

func (h *ToolHandler) CountTools(c *fiber.Ctx) error {
	count, err := h.tools.Count(c.UserContext(), c.Query("search"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"count": count})
}

func (h *ToolHandler) GetTool(c *fiber.Ctx) error {
	tool, err := h.tools.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(tool)
}

func (h *ToolHandler) CreateTool(c *fiber.Ctx) error {
	var tool models.Tool
	if err := c.BodyParser(&tool); err != nil {
		return badBody(c)
	}

	created, err := h.tools.Create(c.UserContext(), tool)
	if errors.Is(err, services.ErrConflict) {
		return c.JSON(fiber.Map{"message": "This tool already exists"})
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"acknowledged": true, "insertedId": created.ID})
}

func (h *ToolHandler) UpdateTool(c *fiber.Ctx) error {
	var tool models.Tool
	if err := c.BodyParser(&tool); err != nil {
		return badBody(c)
	}

	updated, err := h.tools.Update(c.UserContext(), c.Params("id"), tool)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(updated)
}

func (h *ToolHandler) DeleteTool(c *fiber.Ctx) error {
	if err := h.tools.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return deleted(c)
}

// UploadToolImage stores the multipart "image" field as the tool's picture.
func (h *ToolHandler) UploadToolImage(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "failed to retrieve image"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "failed to open image"})
	}
	defer file.Close()

	tool, err := h.tools.SetImage(c.UserContext(), c.Params("id"),
		fileHeader.Filename, file, fileHeader.Size, fileHeader.Header.Get(fiber.HeaderContentType))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(tool)
}
