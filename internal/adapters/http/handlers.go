package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/roommates/core/internal/infrastructure/logger"
	"github.com/roommates/core/internal/ports"
)

// InternalErrorMessage is the only error detail ever returned to clients
const InternalErrorMessage = "Internal server error"

const homeTitle = "Roommates"

// RoommateHandler handles roommate-related requests
type RoommateHandler struct {
	roommateService ports.RoommateService
	logger          *logger.Logger
}

// NewRoommateHandler creates a new roommate handler
func NewRoommateHandler(roommateService ports.RoommateService, logger *logger.Logger) *RoommateHandler {
	return &RoommateHandler{
		roommateService: roommateService,
		logger:          logger.WithComponent("roommate_handler"),
	}
}

// Home renders the roommate list page
func (h *RoommateHandler) Home(c echo.Context) error {
	roommates, err := h.roommateService.ListRoommates(c.Request().Context())
	if err != nil {
		h.logger.Errorw("Load roommates for home page failed", "error", err)
		return c.String(http.StatusInternalServerError, InternalErrorMessage)
	}

	list, err := RenderRoommateList(roommates)
	if err != nil {
		h.logger.Errorw("Render roommate list failed", "error", err)
		return c.String(http.StatusInternalServerError, InternalErrorMessage)
	}

	return c.Render(http.StatusOK, "index", HomePage{
		Title:     homeTitle,
		List:      list,
		Roommates: roommates,
	})
}

// CreateRoommate generates and stores a new roommate. The request body is ignored.
func (h *RoommateHandler) CreateRoommate(c echo.Context) error {
	roommate, err := h.roommateService.CreateRoommate(c.Request().Context())
	if err != nil {
		h.logger.Errorw("Create roommate failed", "error", err)
		return c.String(http.StatusInternalServerError, InternalErrorMessage)
	}

	return c.JSON(http.StatusOK, roommate)
}

// ListRoommates returns the full roommate collection
func (h *RoommateHandler) ListRoommates(c echo.Context) error {
	roommates, err := h.roommateService.ListRoommates(c.Request().Context())
	if err != nil {
		h.logger.Errorw("List roommates failed", "error", err)
		return c.String(http.StatusInternalServerError, InternalErrorMessage)
	}

	return c.JSON(http.StatusOK, roommates)
}
