package routes

import (
	"bytes"
	"errors"
	"net/http"
	"strings"

	"github.com/OFFIS-RIT/flavor/backend/pkg/graph"
	"github.com/OFFIS-RIT/flavor/backend/pkg/logger"
	"github.com/OFFIS-RIT/flavor/backend/pkg/render"
	"github.com/OFFIS-RIT/flavor/backend/pkg/view"

	"github.com/labstack/echo/v4"
)

type graphBody struct {
	Ingredients []string `json:"ingredients" validate:"required,min=1,dive,required"`
	Compounds   []string `json:"compounds"`
	Features    []string `json:"features"`
	Combine     string   `json:"combine" validate:"omitempty,oneof=default union intersection"`
	Policy      string   `json:"policy"`
	View        string   `json:"view"`
}

func (b *graphBody) viewName() string {
	name := strings.ToLower(strings.TrimSpace(b.View))
	if name == "" {
		return view.ViewNetwork
	}
	return name
}

// buildGraph classifies the selection of a request and assembles its graph.
// The returned status is only meaningful when err is not nil.
func buildGraph(c echo.Context, data *graphBody) (*graph.Classification, *graph.Graph, int, error) {
	policy, err := resolvePolicy(c, data.Policy)
	if err != nil {
		return nil, nil, http.StatusBadRequest, err
	}

	records := getApp(c).Store.Records()
	compounds, err := graph.ChooseCompounds(records, data.Ingredients, data.Compounds, data.Features, data.Combine, policy)
	if err != nil {
		return nil, nil, http.StatusBadRequest, err
	}

	cls := graph.Classify(records, data.Ingredients, compounds)
	return cls, graph.Build(cls, nil), http.StatusOK, nil
}

// GraphHandler returns the classification of a selection together with the
// payload of the requested view.
func GraphHandler(c echo.Context) error {
	type graphResponse struct {
		Message   string                 `json:"message,omitempty"`
		View      string                 `json:"view,omitempty"`
		Compounds []string               `json:"compounds,omitempty"`
		Strong    []string               `json:"strong"`
		Weak      []string               `json:"weak"`
		Counts    map[graph.Category]int `json:"counts,omitempty"`
		Data      any                    `json:"data,omitempty"`
	}

	data := new(graphBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, graphResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, graphResponse{
			Message: "Invalid request body",
		})
	}

	adapter, err := view.ByName(data.View)
	if err != nil {
		return c.JSON(http.StatusBadRequest, graphResponse{Message: err.Error()})
	}

	cls, g, status, err := buildGraph(c, data)
	if err != nil {
		return c.JSON(status, graphResponse{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, graphResponse{
		View:      data.viewName(),
		Compounds: cls.Compounds,
		Strong:    cls.Strong,
		Weak:      cls.Weak,
		Counts:    g.Count(),
		Data:      adapter(g),
	})
}

// RenderGraphHandler draws the heatmap or circle view of a selection as PNG.
func RenderGraphHandler(c echo.Context) error {
	data := new(graphBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{
			Message: "Invalid request body",
		})
	}

	_, g, status, err := buildGraph(c, data)
	if err != nil {
		return c.JSON(status, messageResponse{Message: err.Error()})
	}

	var buf bytes.Buffer
	switch data.viewName() {
	case view.ViewHeatmap:
		err = render.Heatmap(&buf, view.Heatmap(g), render.Options{})
	case view.ViewCircle:
		err = render.Circle(&buf, view.Circle(g), render.Options{})
	default:
		return c.JSON(http.StatusBadRequest, messageResponse{
			Message: "Only heatmap and circle views can be rendered",
		})
	}
	if errors.Is(err, render.ErrEmptyChart) {
		return c.JSON(http.StatusUnprocessableEntity, messageResponse{Message: err.Error()})
	}
	if err != nil {
		logger.Error("Failed to render graph", "view", data.viewName(), "err", err)
		return internalError(c)
	}

	return c.Blob(http.StatusOK, render.ContentType, buf.Bytes())
}
