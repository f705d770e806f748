// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"github.com/planbuild/planbuild/internal/eligibility"
	"github.com/planbuild/planbuild/internal/source"
	"github.com/planbuild/planbuild/pkg/requirements"
	"github.com/planbuild/planbuild/pkg/types"
)

const (
	// DefaultPlanSuffix is appended to a piece name to form its plan name.
	DefaultPlanSuffix = "_planned"
	// DefaultCloneSuffix marks per-instance copies of a prefab in the world.
	DefaultCloneSuffix = "(Clone)"
	// DefaultLookupCacheSize bounds the prefab-name lookup cache.
	DefaultLookupCacheSize = 256
)

type (
	// Plan is the generated placeholder for one piece. Name, Source and the
	// fields copied at creation never change; Enabled and Icon track the
	// source piece as of the most recent scan.
	Plan struct {
		// Name is the registration name of the plan.
		Name types.PlanName
		// Source is the name of the piece the plan was derived from.
		Source types.PieceName
		// Prefab is the prefab name the plan is looked up by.
		Prefab types.PieceName
		// DisplayName is the source display name at creation time.
		DisplayName types.DisplayName
		// Requirements is the source build cost at creation time.
		Requirements requirements.Set
		// Category is the build-menu category at creation time.
		Category string
		// Enabled mirrors the source piece; false when the piece was absent
		// or ineligible in the last scan.
		Enabled bool
		// Icon mirrors the source piece icon.
		Icon types.IconRef
	}

	// Catalog supplies snapshots of the host piece catalog.
	Catalog interface {
		Snapshot() (source.Snapshot, error)
	}

	// Registry is the host registry plans are published to. All methods
	// must be idempotent.
	Registry interface {
		// RegisterPrefab performs the one-time registration of a new plan.
		RegisterPrefab(plan *Plan) error
		// Register makes the plan available in bucket.
		Register(bucket types.TableName, plan *Plan) error
		// Deregister removes the plan from bucket.
		Deregister(bucket types.TableName, name types.PlanName) error
		// Contains reports whether the plan is currently in bucket.
		Contains(bucket types.TableName, name types.PlanName) bool
	}

	// Prefabs is the host prefab registry consulted by the registration
	// repair step.
	Prefabs interface {
		HasPrefab(name types.PieceName) bool
		AddPrefab(piece *source.Piece) error
	}

	// Logger accepts leveled messages. *log.Logger from charmbracelet/log
	// satisfies it.
	Logger interface {
		Debug(msg any, keyvals ...any)
		Info(msg any, keyvals ...any)
		Warn(msg any, keyvals ...any)
		Error(msg any, keyvals ...any)
	}

	// Options configures an Index. Catalog and Registry are required.
	Options struct {
		Catalog  Catalog
		Registry Registry
		// Prefabs enables the registration repair step when set.
		Prefabs Prefabs
		// Filter decides eligibility; nil uses eligibility.DefaultRules.
		Filter *eligibility.Filter
		// Logger receives diagnostics and the collision report; nil discards.
		Logger Logger
		// PlanSuffix defaults to DefaultPlanSuffix.
		PlanSuffix string
		// CloneSuffix defaults to DefaultCloneSuffix.
		CloneSuffix string
		// Bucket is the table plans are registered into; defaults to
		// eligibility.PlanTableName.
		Bucket types.TableName
		// LookupCacheSize defaults to DefaultLookupCacheSize.
		LookupCacheSize int
	}
)
