// duplicate.go
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

package services

import (
	"encoding/json"
	"log"

	"github.com/localnerve/configdb/internal/models"
	"github.com/localnerve/configdb/internal/types"
)

// DuplicationService clones an entire version tree: every shortname associated
// with a source label and every configuration under each of them is copied to
// a new destination label. It issues ordinary manager operations rather than
// store access, so existence and uniqueness gates hold during the copy.
type DuplicationService struct {
	versions       *VersionService
	configurations *ConfigurationService
}

// NewDuplicationService creates a DuplicationService.
func NewDuplicationService(versions *VersionService, configurations *ConfigurationService) *DuplicationService {
	return &DuplicationService{versions: versions, configurations: configurations}
}

// Duplicate creates the destination release, then copies each source
// shortname's association and configurations to it.
//
// The release create is the only fail-fast step: a Conflict there aborts the
// whole operation before any copying starts. After that the copy is
// best-effort; a failure inside one shortname's copy is logged and the loop
// proceeds to the next shortname. Success means "destination release created",
// not "every item copied"; callers verify by re-query.
func (d *DuplicationService) Duplicate(sourceLabel, destLabel, description string, isActive bool, creator string) (*models.Release, error) {
	rel, err := d.versions.CreateRelease(destLabel, description, isActive, creator)
	if err != nil {
		return nil, err
	}

	associations, err := d.versions.ListForLabel(sourceLabel)
	if err != nil {
		log.Printf("duplicate %s -> %s: failed to list source shortnames: %v", sourceLabel, destLabel, err)
		return rel, nil
	}

	for _, assoc := range associations {
		if err := d.copyShortname(assoc, sourceLabel, destLabel, creator); err != nil {
			log.Printf("duplicate %s -> %s: shortname '%s' copy failed: %v", sourceLabel, destLabel, assoc.Shortname, err)
			continue
		}
	}

	return rel, nil
}

// copyShortname creates the destination association (tolerating an existing
// one) and copies every configuration under (shortname, sourceLabel) to
// (shortname, destLabel) with a new id and fresh timestamps.
func (d *DuplicationService) copyShortname(assoc models.Version, sourceLabel, destLabel, creator string) error {
	_, err := d.versions.Create(assoc.Shortname, destLabel, assoc.Description, assoc.IsActive, creator)
	if err != nil && !types.IsConflict(err) {
		return err
	}

	configs, err := d.configurations.ListForScope(assoc.Shortname, sourceLabel)
	if err != nil {
		return err
	}

	for _, c := range configs {
		value := json.RawMessage(c.Value.JSON)
		if _, err := d.configurations.Create(assoc.Shortname, destLabel, c.Key, value, c.Description, creator); err != nil {
			return err
		}
	}
	return nil
}
