package routes

import (
	"errors"
	"net/http"

	"github.com/OFFIS-RIT/flavor/backend/pkg/flavor"
	"github.com/OFFIS-RIT/flavor/backend/pkg/logger"
	"github.com/OFFIS-RIT/flavor/backend/pkg/store"

	"github.com/labstack/echo/v4"
)

// AddRecordHandler inserts a record or infers records from a descriptor.
func AddRecordHandler(c echo.Context) error {
	type addRecordBody struct {
		Ingredient string `json:"ingredient" validate:"required"`
		Compound   string `json:"compound"`
		Descriptor string `json:"descriptor"`
	}

	type addRecordResponse struct {
		Message string           `json:"message"`
		Warning string           `json:"warning,omitempty"`
		Result  *store.AddResult `json:"result,omitempty"`
	}

	data := new(addRecordBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, addRecordResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, addRecordResponse{
			Message: flavor.ErrMissingFields.Error(),
		})
	}

	ctx := c.Request().Context()
	res, err := getApp(c).Store.SmartAdd(ctx, data.Ingredient, data.Compound, data.Descriptor)
	switch {
	case errors.Is(err, flavor.ErrMissingFields):
		return c.JSON(http.StatusBadRequest, addRecordResponse{Message: err.Error()})
	case errors.Is(err, flavor.ErrCannotInfer):
		return c.JSON(http.StatusUnprocessableEntity, addRecordResponse{Message: err.Error()})
	}
	warning, err := saveWarning(err)
	if err != nil {
		logger.Error("Failed to add record", "err", err)
		return internalError(c)
	}

	message := "Record added"
	if res.Inferred {
		message = "Records inferred from descriptor"
	}
	return c.JSON(http.StatusOK, addRecordResponse{
		Message: message,
		Warning: warning,
		Result:  &res,
	})
}
