// Package rendering draws the cluster visualizations: elbow and PCA charts,
// cluster profile bars and the interactive job map.
package rendering

import (
	"errors"
	"fmt"
)

// ErrInsufficientData is returned when there are too few rows or columns to draw a chart.
var ErrInsufficientData = errors.New("insufficient data")

// TemplateError represents an error parsing or executing the map template
type TemplateError struct {
	Message string
	Cause   error
}

func (e *TemplateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("template error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("template error: %s", e.Message)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// RenderError represents a failure producing one artifact
type RenderError struct {
	Artifact string
	Message  string
	Cause    error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render error: %s: %s: %v", e.Artifact, e.Message, e.Cause)
	}
	return fmt.Sprintf("render error: %s: %s", e.Artifact, e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
