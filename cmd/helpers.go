package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// parseID parses a required uuid argument or flag value.
func parseID(value, what string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s id %q", what, value)
	}
	return id, nil
}

// flagIDPtr reads an optional uuid flag. Returns nil when the flag was
// not set; the literal "none" maps to the zero uuid, which the state
// layer treats as "clear the reference".
func flagIDPtr(cmd *cobra.Command, name, what string) (*uuid.UUID, error) {
	if !cmd.Flags().Changed(name) {
		return nil, nil
	}
	value, _ := cmd.Flags().GetString(name)
	if strings.EqualFold(strings.TrimSpace(value), "none") {
		zero := uuid.Nil
		return &zero, nil
	}
	id, err := parseID(value, what)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// flagStrPtr reads an optional string flag, nil when not set.
func flagStrPtr(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	value, _ := cmd.Flags().GetString(name)
	return &value
}

// flagTimePtr reads an optional RFC 3339 or date-only time flag.
func flagTimePtr(cmd *cobra.Command, name string) (*time.Time, error) {
	if !cmd.Flags().Changed(name) {
		return nil, nil
	}
	value, _ := cmd.Flags().GetString(name)
	t, err := parseWhen(value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func parseWhen(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02 15:04", value); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("invalid time %q (want RFC 3339, \"2006-01-02 15:04\" or \"2006-01-02\")", value)
}

// splitList turns a comma-separated flag value into trimmed entries.
func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func formatScore(score *float64) string {
	if score == nil {
		return "not computed"
	}
	return fmt.Sprintf("%.1f", *score)
}
