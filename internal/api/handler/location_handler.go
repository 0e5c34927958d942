package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/soportec/inventory-system/internal/core/domain"
)

// LocationHandler serves the static Chilean region and commune tables
// used by address forms.
type LocationHandler struct{}

func NewLocationHandler() *LocationHandler {
	return &LocationHandler{}
}

// Regions handles GET /v1/locations/regions.
//
// @Summary      List Chilean regions
// @Tags         locations
// @Produce      json
// @Success      200  {array}  domain.Region
// @Router       /v1/locations/regions [get]
func (h *LocationHandler) Regions(c echo.Context) error {
	return c.JSON(http.StatusOK, domain.Regions)
}

// Communes handles GET /v1/locations/regions/:id/communes.
//
// @Summary      List the communes of one region
// @Tags         locations
// @Produce      json
// @Param        id   path      int  true  "Region id"
// @Success      200  {array}   domain.Commune
// @Failure      404  {object}  map[string]string
// @Router       /v1/locations/regions/{id}/communes [get]
func (h *LocationHandler) Communes(c echo.Context) error {
	regionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "region id must be numeric")
	}

	communes, err := domain.CommunesOf(regionID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, communes)
}
