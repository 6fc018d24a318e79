package utils

import (
	"encoding/json"
	"fmt"
	"strings"
)

// MemReport is a hierarchical memory usage report for a component.
type MemReport struct {
	Name       string      `json:"name"`
	TotalBytes int         `json:"total_bytes"`
	Children   []MemReport `json:"children,omitempty"`
}

// AddChild appends a leaf component to the report.
func (r *MemReport) AddChild(name string, totalBytes int) {
	r.Children = append(r.Children, MemReport{Name: name, TotalBytes: totalBytes})
}

// JSON returns a JSON string representation of the MemReport.
func (r MemReport) JSON() string {
	b, err := json.Marshal(r)
	if err != nil {
		return fmt.Sprintf(`{"error": "%s"}`, err.Error())
	}
	return string(b)
}

// String returns a string representation of the MemReport as a tree.
func (r MemReport) String() string {
	var sb strings.Builder
	r.buildString(&sb, 0)
	return sb.String()
}

func (r MemReport) buildString(sb *strings.Builder, indent int) {
	prefix := strings.Repeat("  ", indent)
	sb.WriteString(fmt.Sprintf("%s- %s: %d bytes\n", prefix, r.Name, r.TotalBytes))
	for _, child := range r.Children {
		child.buildString(sb, indent+1)
	}
}
