package utils

import "github.com/jackc/pgx/v5/pgtype"

// TextToPointer convertit pgtype.Text en *string
func TextToPointer(t pgtype.Text) *string {
	if t.Valid {
		return &t.String
	}
	return nil
}

// Float8ToPointer convertit pgtype.Float8 en *float64
func Float8ToPointer(f pgtype.Float8) *float64 {
	if f.Valid {
		return &f.Float64
	}
	return nil
}

// NonNil remplace un slice nil par un slice vide (JSON [] au lieu de null)
func NonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// StringOrNil renvoie nil pour une chaîne vide
func StringOrNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
