package handlers

import (
	"dilspay/internal/services/user"
	"dilspay/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	userService user.Service
}

func NewUserHandler(userService user.Service) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

func (h *UserHandler) Register(c *fiber.Ctx) error {
	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		CPF      string `json:"cpf"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request format")
	}

	u, w, err := h.userService.Register(c.Context(), input.Name, input.Email, input.CPF, input.Password)
	if err != nil {
		return response.Domain(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":        u.ID,
		"name":      u.Name,
		"email":     u.Email,
		"wallet_id": w.ID,
	})
}
