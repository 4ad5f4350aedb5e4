package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/petmatch-service/internal/api/dto"
	"github.com/spec-kit/petmatch-service/internal/auth"
	"github.com/spec-kit/petmatch-service/internal/domain"
	"github.com/spec-kit/petmatch-service/internal/service"
	apperrors "github.com/spec-kit/petmatch-service/pkg/util"
)

// PetsHandler manages pet CRUD endpoints.
type PetsHandler struct {
	service *service.PetService
}

// NewPetsHandler constructs handler.
func NewPetsHandler(petService *service.PetService) *PetsHandler {
	return &PetsHandler{service: petService}
}

// Create POST /pets.
func (h *PetsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreatePetRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" || req.Type == "" {
		return apperrors.NewValidationError("name and type required", nil)
	}

	pet, err := h.service.Create(c.UserContext(), principal.Email(), service.PetCreateInput{
		Name:        req.Name,
		Type:        req.Type,
		Breed:       req.Breed,
		Gender:      req.Gender,
		Age:         req.Age,
		Size:        req.Size,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": petResponse(pet)})
}

// List GET /pets.
func (h *PetsHandler) List(c *fiber.Ctx) error {
	pets, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.PetResponse, 0, len(pets))
	for i := range pets {
		items = append(items, petResponse(&pets[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /pets/:id.
func (h *PetsHandler) Get(c *fiber.Ctx) error {
	pet, err := h.service.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": petResponse(pet)})
}

// Update PUT /pets/:id.
func (h *PetsHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdatePetRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" || req.Type == "" {
		return apperrors.NewValidationError("name and type required", nil)
	}

	pet, err := h.service.Update(c.UserContext(), c.Params("id"), service.PetUpdateInput{
		Name:        req.Name,
		Age:         req.Age,
		Type:        req.Type,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": petResponse(pet)})
}

// Delete DELETE /pets/:id.
func (h *PetsHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func petResponse(pet *domain.Pet) dto.PetResponse {
	return dto.PetResponse{
		ID:          pet.ID,
		Name:        pet.Name,
		Type:        pet.Type,
		Breed:       pet.Breed,
		Gender:      pet.Gender,
		Age:         pet.Age,
		Size:        pet.Size,
		Description: pet.Description,
		Status:      pet.Status,
		OwnerID:     pet.OwnerID,
		CreatedAt:   pet.CreatedAt,
	}
}
