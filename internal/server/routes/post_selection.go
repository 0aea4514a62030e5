package routes

import (
	"net/http"

	"github.com/OFFIS-RIT/flavor/backend/pkg/graph"

	"github.com/labstack/echo/v4"
)

// resolvePolicy prefers the policy named in the request over the configured
// one.
func resolvePolicy(c echo.Context, name string) (graph.Policy, error) {
	if name == "" {
		if p := getApp(c).Policy; p != nil {
			return p, nil
		}
	}
	return graph.PolicyByName(name)
}

// SelectionHandler tiers the compounds of the chosen ingredients.
func SelectionHandler(c echo.Context) error {
	type selectionBody struct {
		Ingredients []string `json:"ingredients" validate:"required,min=1,dive,required"`
		Features    []string `json:"features"`
		Policy      string   `json:"policy"`
	}

	type selectionResponse struct {
		Message      string       `json:"message,omitempty"`
		Policy       string       `json:"policy,omitempty"`
		Tiers        *graph.Tiers `json:"tiers,omitempty"`
		Defaults     []string     `json:"defaults,omitempty"`
		Union        []string     `json:"union,omitempty"`
		Intersection []string     `json:"intersection,omitempty"`
	}

	data := new(selectionBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, selectionResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, selectionResponse{
			Message: "Select at least one ingredient",
		})
	}

	policy, err := resolvePolicy(c, data.Policy)
	if err != nil {
		return c.JSON(http.StatusBadRequest, selectionResponse{Message: err.Error()})
	}

	records := getApp(c).Store.Records()
	tiers := graph.Select(records, data.Ingredients, data.Features, policy)
	return c.JSON(http.StatusOK, selectionResponse{
		Policy:       policy.Name(),
		Tiers:        &tiers,
		Defaults:     tiers.Defaults(),
		Union:        graph.UnionCompounds(records, data.Ingredients),
		Intersection: graph.IntersectCompounds(records, data.Ingredients),
	})
}
