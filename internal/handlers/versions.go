// versions.go
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

// VersionHandler handles shortname-scoped version routes and the top-level
// version-first routes, including duplication.
type VersionHandler struct {
	Versions    *services.VersionService
	Duplication *services.DuplicationService
}

type versionBody struct {
	Version     string `json:"version"`
	Description string `json:"description"`
	IsActive    bool   `json:"isActive"`
}

type versionUpdateBody struct {
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

type associateBody struct {
	Shortname   string `json:"shortname"`
	Description string `json:"description"`
	IsActive    bool   `json:"isActive"`
}

// ListVersions handles GET /api/shortnames/:shortname/versions
// @Summary List versions owned by a shortname
// @Tags Versions
// @Produce json
// @Param shortname path string true "Shortname slug"
// @Success 200 {array} models.Version
// @Security BearerAuth
// @Router /shortnames/{shortname}/versions [get]
func (h *VersionHandler) ListVersions(c *fiber.Ctx) error {
	versions, err := h.Versions.ListForShortname(c.Params("shortname"))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, versions, fiber.StatusOK)
}

// GetVersion handles GET /api/shortnames/:shortname/versions/:version
// @Summary Get a version
// @Tags Versions
// @Produce json
// @Param shortname path string true "Shortname slug"
// @Param version path string true "Version label"
// @Success 200 {object} models.Version
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /shortnames/{shortname}/versions/{version} [get]
func (h *VersionHandler) GetVersion(c *fiber.Ctx) error {
	v, err := h.Versions.Get(c.Params("shortname"), c.Params("version"))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, v, fiber.StatusOK)
}

// CreateVersion handles POST /api/shortnames/:shortname/versions
// @Summary Create a version under a shortname
// @Tags Versions
// @Accept json
// @Produce json
// @Param shortname path string true "Shortname slug"
// @Param body body versionBody true "Version to create"
// @Success 201 {object} models.Version
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /shortnames/{shortname}/versions [post]
func (h *VersionHandler) CreateVersion(c *fiber.Ctx) error {
	var body versionBody
	if err := parseBody(c, &body); err != nil {
		return err
	}

	v, err := h.Versions.Create(c.Params("shortname"), body.Version, body.Description, body.IsActive, creator(c))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, v, fiber.StatusCreated)
}

// UpdateVersion handles PUT /api/shortnames/:shortname/versions/:version
// @Summary Update a version (partial: only supplied fields change)
// @Tags Versions
// @Accept json
// @Produce json
// @Param shortname path string true "Shortname slug"
// @Param version path string true "Version label"
// @Param body body versionUpdateBody true "Fields to update"
// @Success 200 {object} models.Version
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /shortnames/{shortname}/versions/{version} [put]
func (h *VersionHandler) UpdateVersion(c *fiber.Ctx) error {
	var body versionUpdateBody
	if err := parseBody(c, &body); err != nil {
		return err
	}

	v, err := h.Versions.Update(c.Params("shortname"), c.Params("version"), body.Description, body.IsActive)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, v, fiber.StatusOK)
}

// DeleteVersion handles DELETE /api/shortnames/:shortname/versions/:version
// @Summary Delete a version and its configurations
// @Tags Versions
// @Produce json
// @Param shortname path string true "Shortname slug"
// @Param version path string true "Version label"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /shortnames/{shortname}/versions/{version} [delete]
func (h *VersionHandler) DeleteVersion(c *fiber.Ctx) error {
	slug := c.Params("shortname")
	label := c.Params("version")
	if err := h.Versions.Delete(slug, label); err != nil {
		return err
	}
	return utils.MessageResponse(c, fmt.Sprintf("Version '%s' deleted for shortname '%s'", label, slug))
}

// ListReleases handles GET /api/versions
// @Summary List top-level versions
// @Tags Releases
// @Produce json
// @Success 200 {array} models.Release
// @Security BearerAuth
// @Router /versions [get]
func (h *VersionHandler) ListReleases(c *fiber.Ctx) error {
	releases, err := h.Versions.ListReleases()
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, releases, fiber.StatusOK)
}

// CreateRelease handles POST /api/versions
// @Summary Create a top-level version
// @Tags Releases
// @Accept json
// @Produce json
// @Param body body versionBody true "Version to create"
// @Success 201 {object} models.Release
// @Failure 409 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /versions [post]
func (h *VersionHandler) CreateRelease(c *fiber.Ctx) error {
	var body versionBody
	if err := parseBody(c, &body); err != nil {
		return err
	}

	rel, err := h.Versions.CreateRelease(body.Version, body.Description, body.IsActive, creator(c))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, rel, fiber.StatusCreated)
}

// ListShortnamesForVersion handles GET /api/versions/:version/shortnames
// @Summary List shortnames associated with a version label
// @Tags Releases
// @Produce json
// @Param version path string true "Version label"
// @Success 200 {array} models.Version
// @Security BearerAuth
// @Router /versions/{version}/shortnames [get]
func (h *VersionHandler) ListShortnamesForVersion(c *fiber.Ctx) error {
	versions, err := h.Versions.ListForLabel(c.Params("version"))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, versions, fiber.StatusOK)
}

// AssociateShortname handles POST /api/versions/:version/shortnames
// @Summary Associate (creating if needed) a shortname under a version label
// @Tags Releases
// @Accept json
// @Produce json
// @Param version path string true "Version label"
// @Param body body associateBody true "Shortname to associate"
// @Success 201 {object} models.Version
// @Failure 409 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /versions/{version}/shortnames [post]
func (h *VersionHandler) AssociateShortname(c *fiber.Ctx) error {
	var body associateBody
	if err := parseBody(c, &body); err != nil {
		return err
	}

	v, err := h.Versions.Associate(body.Shortname, c.Params("version"), body.Description, body.IsActive, creator(c))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, v, fiber.StatusCreated)
}

// DuplicateVersion handles POST /api/versions/:version/duplicate
// @Summary Duplicate a version into a new label
// @Description Creates the destination version, then copies every associated shortname and its configurations. Copying is best-effort per shortname; success means the destination version was created.
// @Tags Releases
// @Accept json
// @Produce json
// @Param version path string true "Source version label"
// @Param body body versionBody true "Destination version"
// @Success 201 {object} models.Release
// @Failure 409 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /versions/{version}/duplicate [post]
func (h *VersionHandler) DuplicateVersion(c *fiber.Ctx) error {
	var body versionBody
	if err := parseBody(c, &body); err != nil {
		return err
	}

	rel, err := h.Duplication.Duplicate(c.Params("version"), body.Version, body.Description, body.IsActive, creator(c))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, rel, fiber.StatusCreated)
}
