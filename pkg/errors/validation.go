package errors

import (
	"math"
	"regexp"
	"strings"
	"unicode"
)

// Limits applied by the validators.
const (
	MaxSize   = 8192
	MaxZoom   = 100
	MaxFrames = 1000
)

// presetNameRegex matches preset names: lowercase words joined by dashes.
var presetNameRegex = regexp.MustCompile(`^[a-z][a-z0-9]*(-[a-z0-9]+)*$`)

// ValidatePresetName validates a preset name for safety and correctness.
// Names end up in cache keys, URLs and file names, so the rules are
// conservative:
//   - No empty names
//   - Maximum length of 64 characters
//   - Lowercase letters, digits and single dashes, starting with a letter
func ValidatePresetName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPreset, "preset name cannot be empty")
	}

	if len(name) > 64 {
		return New(ErrCodeInvalidPreset, "preset name too long (max 64 characters)")
	}

	if !presetNameRegex.MatchString(name) {
		return New(ErrCodeInvalidPreset, "invalid preset name: %q", name)
	}

	return nil
}

// ValidateSize validates surface dimensions in pixels.
func ValidateSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return New(ErrCodeInvalidSize, "size must be positive, got %dx%d", width, height)
	}
	if width > MaxSize || height > MaxSize {
		return New(ErrCodeInvalidSize, "size too large (max %dx%d), got %dx%d", MaxSize, MaxSize, width, height)
	}
	return nil
}

// ValidateZoom validates a zoom factor.
func ValidateZoom(zoom float64) error {
	if math.IsNaN(zoom) || zoom <= 0 {
		return New(ErrCodeInvalidSize, "zoom must be positive, got %v", zoom)
	}
	if zoom > MaxZoom {
		return New(ErrCodeInvalidSize, "zoom too large (max %d), got %v", MaxZoom, zoom)
	}
	return nil
}

// ValidateFrames validates an animation frame count and the index of a
// single frame within it.
func ValidateFrames(frame, frames int) error {
	if frames < 1 || frames > MaxFrames {
		return New(ErrCodeInvalidInput, "frame count must be between 1 and %d, got %d", MaxFrames, frames)
	}
	if frame < 0 || frame >= frames {
		return New(ErrCodeInvalidInput, "frame %d out of range [0, %d)", frame, frames)
	}
	return nil
}

// ValidateOutputPath validates a file path an artifact is written to.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 1024 characters
//   - No null bytes or control characters
//   - Must not name a directory (trailing separator)
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}

	const maxPathLength = 1024
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, "\\") {
		return New(ErrCodeInvalidPath, "output path %q is a directory", path)
	}

	return nil
}
