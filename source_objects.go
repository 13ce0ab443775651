package main

import (
	"context"
	"fmt"
)

// SourceObjects holds non-table source objects that are not migrated.
type SourceObjects struct {
	Views    []string
	Triggers []string
}

// IntrospectSourceObjects discovers views and triggers in the source file so
// the run can warn about what is left behind.
func (s *sqliteSource) IntrospectSourceObjects(ctx context.Context) (*SourceObjects, error) {
	objs := &SourceObjects{}

	for _, kind := range []struct {
		objType string
		dest    *[]string
	}{
		{"view", &objs.Views},
		{"trigger", &objs.Triggers},
	} {
		rows, err := s.db.QueryContext(ctx,
			"SELECT name FROM sqlite_master WHERE type=? ORDER BY name", kind.objType)
		if err != nil {
			return nil, fmt.Errorf("introspect %ss: %w", kind.objType, err)
		}
		for rows.Next() {
			var name string
			if err := rows.Scan(&name); err != nil {
				rows.Close()
				return nil, err
			}
			*kind.dest = append(*kind.dest, name)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, err
		}
		rows.Close()
	}

	return objs, nil
}

func sourceObjectWarnings(objs *SourceObjects) []string {
	if objs == nil || (len(objs.Views) == 0 && len(objs.Triggers) == 0) {
		return nil
	}

	warnings := []string{
		fmt.Sprintf(
			"source contains non-table objects not migrated automatically (%d views, %d triggers)",
			len(objs.Views), len(objs.Triggers),
		),
	}
	for _, v := range objs.Views {
		warnings = append(warnings, fmt.Sprintf("view: %s", v))
	}
	for _, t := range objs.Triggers {
		warnings = append(warnings, fmt.Sprintf("trigger: %s", t))
	}
	return warnings
}
