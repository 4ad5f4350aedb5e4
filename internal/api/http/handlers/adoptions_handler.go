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

// AdoptionsHandler manages adoption request endpoints.
type AdoptionsHandler struct {
	service *service.AdoptionService
}

// NewAdoptionsHandler constructs handler.
func NewAdoptionsHandler(adoptionService *service.AdoptionService) *AdoptionsHandler {
	return &AdoptionsHandler{service: adoptionService}
}

// Create POST /adoptions.
func (h *AdoptionsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateAdoptionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.PetID == "" {
		return apperrors.NewValidationError("pet_id required", nil)
	}

	request, err := h.service.Create(c.UserContext(), principal.Email(), req.PetID, req.Message)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": adoptionResponse(request)})
}

// ListMine GET /adoptions/mine.
func (h *AdoptionsHandler) ListMine(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	requests, err := h.service.ListMine(c.UserContext(), principal.Email())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": adoptionResponses(requests)})
}

// ListReceived GET /adoptions/received.
func (h *AdoptionsHandler) ListReceived(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	requests, err := h.service.ListReceived(c.UserContext(), principal.Email())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": adoptionResponses(requests)})
}

// ListByPet GET /adoptions/pet/:petId. Visible to any caller; there is no
// ownership check on this listing.
func (h *AdoptionsHandler) ListByPet(c *fiber.Ctx) error {
	requests, err := h.service.ListByPet(c.UserContext(), c.Params("petId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": adoptionResponses(requests)})
}

// UpdateStatus PUT /adoptions/:id/status. Overwrites status without state or
// ownership checks.
func (h *AdoptionsHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateAdoptionStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Status == "" {
		return apperrors.NewValidationError("status required", nil)
	}

	request, err := h.service.UpdateStatus(c.UserContext(), c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": adoptionResponse(request)})
}

// Approve PUT /adoptions/:id/approve.
func (h *AdoptionsHandler) Approve(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	request, err := h.service.Approve(c.UserContext(), c.Params("id"), principal.Email())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": adoptionResponse(request)})
}

// Delete DELETE /adoptions/:id.
func (h *AdoptionsHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func adoptionResponse(request *domain.AdoptionRequest) dto.AdoptionResponse {
	return dto.AdoptionResponse{
		ID:          request.ID,
		PetID:       request.PetID,
		ApplicantID: request.ApplicantID,
		Message:     request.Message,
		Status:      request.Status,
		CreatedAt:   request.CreatedAt,
	}
}

func adoptionResponses(requests []domain.AdoptionRequest) []dto.AdoptionResponse {
	items := make([]dto.AdoptionResponse, 0, len(requests))
	for i := range requests {
		items = append(items, adoptionResponse(&requests[i]))
	}
	return items
}
