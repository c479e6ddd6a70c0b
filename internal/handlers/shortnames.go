// shortnames.go
//
// A configuration data service for shortname and version scoped key/value data
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of configdb.
// configdb is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// configdb is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with configdb.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/configdb/internal/services"
	"github.com/localnerve/configdb/internal/utils"
)

// ShortnameHandler handles shortname routes
type ShortnameHandler struct {
	Shortnames *services.ShortnameService
}

type shortnameBody struct {
	Shortname   string `json:"shortname"`
	Description string `json:"description"`
}

type shortnameUpdateBody struct {
	Description *string `json:"description"`
}

// ListShortnames handles GET /api/shortnames
// @Summary List shortnames
// @Description Get all shortnames
// @Tags Shortnames
// @Produce json
// @Success 200 {array} models.Shortname
// @Failure 401 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /shortnames [get]
func (h *ShortnameHandler) ListShortnames(c *fiber.Ctx) error {
	shortnames, err := h.Shortnames.List()
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, shortnames, fiber.StatusOK)
}

// GetShortname handles GET /api/shortnames/:shortname
// @Summary Get a shortname
// @Tags Shortnames
// @Produce json
// @Param shortname path string true "Shortname slug"
// @Success 200 {object} models.Shortname
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /shortnames/{shortname} [get]
func (h *ShortnameHandler) GetShortname(c *fiber.Ctx) error {
	sn, err := h.Shortnames.Get(c.Params("shortname"))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, sn, fiber.StatusOK)
}

// CreateShortname handles POST /api/shortnames
// @Summary Create a shortname
// @Tags Shortnames
// @Accept json
// @Produce json
// @Param body body shortnameBody true "Shortname to create"
// @Success 201 {object} models.Shortname
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /shortnames [post]
func (h *ShortnameHandler) CreateShortname(c *fiber.Ctx) error {
	var body shortnameBody
	if err := parseBody(c, &body); err != nil {
		return err
	}

	sn, err := h.Shortnames.Create(body.Shortname, body.Description, creator(c))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, sn, fiber.StatusCreated)
}

// UpdateShortname handles PUT /api/shortnames/:shortname
// @Summary Update a shortname description
// @Tags Shortnames
// @Accept json
// @Produce json
// @Param shortname path string true "Shortname slug"
// @Param body body shortnameUpdateBody true "Fields to update"
// @Success 200 {object} models.Shortname
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /shortnames/{shortname} [put]
func (h *ShortnameHandler) UpdateShortname(c *fiber.Ctx) error {
	var body shortnameUpdateBody
	if err := parseBody(c, &body); err != nil {
		return err
	}

	sn, err := h.Shortnames.Update(c.Params("shortname"), body.Description)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, sn, fiber.StatusOK)
}

// DeleteShortname handles DELETE /api/shortnames/:shortname
// @Summary Delete a shortname and all descendant versions and configurations
// @Tags Shortnames
// @Produce json
// @Param shortname path string true "Shortname slug"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /shortnames/{shortname} [delete]
func (h *ShortnameHandler) DeleteShortname(c *fiber.Ctx) error {
	slug := c.Params("shortname")
	if err := h.Shortnames.Delete(slug); err != nil {
		return err
	}
	return utils.MessageResponse(c, fmt.Sprintf("Shortname '%s' deleted", slug))
}
