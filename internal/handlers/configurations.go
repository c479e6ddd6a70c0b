// configurations.go
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
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/configdb/internal/services"
	"github.com/localnerve/configdb/internal/utils"
)

// ConfigurationHandler handles configuration routes scoped to a
// shortname and version pair.
type ConfigurationHandler struct {
	Configurations *services.ConfigurationService
}

type configurationBody struct {
	Key         string          `json:"key"`
	Value       json.RawMessage `json:"value"`
	Description string          `json:"description"`
}

type configurationUpdateBody struct {
	Value       json.RawMessage `json:"value"`
	Description *string         `json:"description"`
	// Key and scope fields in an update body are ignored: both are immutable.
	Key       string `json:"key"`
	Shortname string `json:"shortname"`
	Version   string `json:"version"`
}

// ListConfigurations handles GET .../versions/:version/configurations
// @Summary List configurations in a shortname and version scope
// @Tags Configurations
// @Produce json
// @Param shortname path string true "Shortname slug"
// @Param version path string true "Version label"
// @Success 200 {array} models.Configuration
// @Security BearerAuth
// @Router /shortnames/{shortname}/versions/{version}/configurations [get]
func (h *ConfigurationHandler) ListConfigurations(c *fiber.Ctx) error {
	configs, err := h.Configurations.ListForScope(c.Params("shortname"), c.Params("version"))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, configs, fiber.StatusOK)
}

// GetConfiguration handles GET .../configurations/:configId
// @Summary Get a configuration by id within a scope
// @Tags Configurations
// @Produce json
// @Param shortname path string true "Shortname slug"
// @Param version path string true "Version label"
// @Param configId path string true "Configuration id"
// @Success 200 {object} models.Configuration
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /shortnames/{shortname}/versions/{version}/configurations/{configId} [get]
func (h *ConfigurationHandler) GetConfiguration(c *fiber.Ctx) error {
	cfg, err := h.Configurations.Get(c.Params("shortname"), c.Params("version"), c.Params("configId"))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, cfg, fiber.StatusOK)
}

// CreateConfiguration handles POST .../versions/:version/configurations
// @Summary Create a configuration in a scope
// @Tags Configurations
// @Accept json
// @Produce json
// @Param shortname path string true "Shortname slug"
// @Param version path string true "Version label"
// @Param body body configurationBody true "Configuration to create"
// @Success 201 {object} models.Configuration
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /shortnames/{shortname}/versions/{version}/configurations [post]
func (h *ConfigurationHandler) CreateConfiguration(c *fiber.Ctx) error {
	var body configurationBody
	if err := parseBody(c, &body); err != nil {
		return err
	}

	cfg, err := h.Configurations.Create(
		c.Params("shortname"), c.Params("version"),
		body.Key, body.Value, body.Description, creator(c))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, cfg, fiber.StatusCreated)
}

// UpdateConfiguration handles PUT .../configurations/:configId
// @Summary Update a configuration's value and/or description
// @Tags Configurations
// @Accept json
// @Produce json
// @Param shortname path string true "Shortname slug"
// @Param version path string true "Version label"
// @Param configId path string true "Configuration id"
// @Param body body configurationUpdateBody true "Fields to update"
// @Success 200 {object} models.Configuration
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /shortnames/{shortname}/versions/{version}/configurations/{configId} [put]
func (h *ConfigurationHandler) UpdateConfiguration(c *fiber.Ctx) error {
	var body configurationUpdateBody
	if err := parseBody(c, &body); err != nil {
		return err
	}

	cfg, err := h.Configurations.Update(
		c.Params("shortname"), c.Params("version"), c.Params("configId"),
		body.Value, body.Description)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, cfg, fiber.StatusOK)
}

// DeleteConfiguration handles DELETE .../configurations/:configId
// @Summary Delete a configuration
// @Tags Configurations
// @Produce json
// @Param shortname path string true "Shortname slug"
// @Param version path string true "Version label"
// @Param configId path string true "Configuration id"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /shortnames/{shortname}/versions/{version}/configurations/{configId} [delete]
func (h *ConfigurationHandler) DeleteConfiguration(c *fiber.Ctx) error {
	configID := c.Params("configId")
	if err := h.Configurations.Delete(c.Params("shortname"), c.Params("version"), configID); err != nil {
		return err
	}
	return utils.MessageResponse(c, fmt.Sprintf("Configuration '%s' deleted", configID))
}
