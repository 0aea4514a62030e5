package routes

import (
	"net/http"
	"strings"

	"github.com/OFFIS-RIT/flavor/backend/pkg/flavor"

	"github.com/labstack/echo/v4"
)

// SearchHandler searches the table by one field or by any field.
func SearchHandler(c echo.Context) error {
	type searchParams struct {
		Field string `query:"field" validate:"omitempty,oneof=ingredient compound descriptor any"`
		Query string `query:"q" validate:"required"`
	}

	type searchResponse struct {
		Message     string                 `json:"message,omitempty"`
		Field       string                 `json:"field,omitempty"`
		Query       string                 `json:"query,omitempty"`
		Ingredients []flavor.IngredientHit `json:"ingredients,omitempty"`
		Compounds   []flavor.CompoundHit   `json:"compounds,omitempty"`
		Records     []flavor.Record        `json:"records,omitempty"`
	}

	params := new(searchParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, searchResponse{
			Message: "Invalid request params",
		})
	}
	params.Query = strings.TrimSpace(params.Query)
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, searchResponse{
			Message: "Invalid request params",
		})
	}
	if params.Field == "" {
		params.Field = "any"
	}

	table := getApp(c).Store.Snapshot()
	res := searchResponse{Field: params.Field, Query: params.Query}
	switch params.Field {
	case "ingredient":
		res.Ingredients = flavor.SearchIngredients(table, params.Query)
	case "compound":
		res.Compounds = flavor.SearchCompounds(table, params.Query)
	case "descriptor":
		res.Compounds = flavor.SearchDescriptors(table, params.Query)
	default:
		res.Records = flavor.SearchAny(table, params.Query)
	}
	return c.JSON(http.StatusOK, res)
}
