// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Supported image variant types
const (
	VariantThumbnail = "thumbnail"
	VariantMedium    = "medium"
	VariantLarge     = "large"
)

// Supported MIME types
const (
	MimeTypeJPEG = "image/jpeg"
	MimeTypePNG  = "image/png"
	MimeTypeGIF  = "image/gif"
	MimeTypeWebP = "image/webp"
)

// ImageVariantConfig defines settings for generating image variants.
type ImageVariantConfig struct {
	Width   int
	Height  int
	Quality int
	Crop    bool // true = crop to exact size, false = fit within bounds
}

// ImageVariants defines the default image variant configurations.
var ImageVariants = map[string]ImageVariantConfig{
	VariantThumbnail: {Width: 320, Height: 180, Quality: 80, Crop: true},
	VariantMedium:    {Width: 896, Height: 512, Quality: 85, Crop: false},
	VariantLarge:     {Width: 1792, Height: 1024, Quality: 90, Crop: false},
}

// Asset is a content-store record pointing to an uploaded binary with its
// own identifier. FilePath is relative to the uploads directory.
type Asset struct {
	ID        string    `json:"_id"`
	Filename  string    `json:"filename"`
	MimeType  string    `json:"mimeType"`
	Size      int64     `json:"size"`
	Width     int64     `json:"width"`
	Height    int64     `json:"height"`
	FilePath  string    `json:"filePath"`
	CreatedAt time.Time `json:"createdAt"`
}

// IsImage returns true if the asset type is a processable image.
func (a *Asset) IsImage() bool {
	switch a.MimeType {
	case MimeTypeJPEG, MimeTypePNG, MimeTypeGIF, MimeTypeWebP:
		return true
	default:
		return false
	}
}
