// common.go
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
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/configdb/internal/types"
)

// creator extracts the caller identity set by the auth middleware.
func creator(c *fiber.Ctx) string {
	if id, ok := c.Locals("userId").(string); ok {
		return id
	}
	return ""
}

// parseBody decodes the JSON request body into target, mapping parse failures
// to the BadRequest taxonomy.
func parseBody(c *fiber.Ctx, target interface{}) error {
	if err := c.BodyParser(target); err != nil {
		return types.BadRequest("Invalid input")
	}
	return nil
}
