package fielddiff

// FieldChange is one before/after delta for a tracked field. The manual
// flag distinguishes user edits from system recalculation so triggers can
// honor manual overrides.
type FieldChange struct {
	Field           string `json:"field"`
	Old             any    `json:"old"`
	New             any    `json:"new"`
	ManuallyChanged bool   `json:"manuallyChanged"`
}

// EntityChanges is the ephemeral diff of one entity within one save batch.
// It is produced once, consumed by the trigger engine and discarded; it is
// never persisted.
type EntityChanges[T any] struct {
	Entity  *T
	Changes []FieldChange
}

// FieldChanged reports whether any of the given fields changed
func (e EntityChanges[T]) FieldChanged(fields ...string) bool {
	for _, c := range e.Changes {
		for _, f := range fields {
			if c.Field == f {
				return true
			}
		}
	}
	return false
}

// Change returns the delta for one field, if present
func (e EntityChanges[T]) Change(field string) (FieldChange, bool) {
	for _, c := range e.Changes {
		if c.Field == field {
			return c, true
		}
	}
	return FieldChange{}, false
}

// HasChanges reports whether any tracked field changed
func (e EntityChanges[T]) HasChanges() bool {
	return len(e.Changes) > 0
}

// Collect diffs two snapshots of an entity against the schema. Fields named
// in manualFields are flagged as user edits; when a manually edited field
// carries a manual-override flag on the entity, the flag is raised so later
// recalculation leaves the value alone.
func Collect[T any](schema Schema[T], before, after *T, manualFields map[string]bool) EntityChanges[T] {
	result := EntityChanges[T]{Entity: after}

	for _, d := range schema {
		oldV := d.Get(before)
		newV := d.Get(after)
		if oldV == newV {
			continue
		}

		manual := manualFields[d.Name]
		if manual && d.ManualFlag != nil {
			*d.ManualFlag(after) = true
		}

		result.Changes = append(result.Changes, FieldChange{
			Field:           d.Name,
			Old:             oldV,
			New:             newV,
			ManuallyChanged: manual,
		})
	}

	return result
}
