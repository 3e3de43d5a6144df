package echo

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	app "github.com/user-importer/internal/application/user"
)

type UserHandler struct {
	useCase app.GetAccountByID
}

func NewUserHandler(useCase app.GetAccountByID) *UserHandler {
	return &UserHandler{useCase: useCase}
}

func (h *UserHandler) GetAccountByID(c echo.Context) error {
	out, err := h.useCase.Execute(c.Request().Context(), app.GetAccountByIDInput{
		ID: c.Param("id"),
	})
	if err != nil {
		if errors.Is(err, app.ErrInvalidAccountID) {
			return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
				Code:    "invalid_account_id",
				Message: "id must be a valid UUID",
			}})
		}
		if errors.Is(err, app.ErrAccountNotFound) {
			return c.JSON(http.StatusNotFound, apiResponse{Error: &errorBody{
				Code:    "not_found",
				Message: "account not found",
			}})
		}

		return c.JSON(http.StatusInternalServerError, apiResponse{Error: &errorBody{
			Code:    "internal_error",
			Message: "failed to get account",
		}})
	}

	return c.JSON(http.StatusOK, apiResponse{Data: out})
}
