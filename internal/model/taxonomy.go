// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Author is a reference document found-or-created by name. At most one
// author document exists per distinct slugified name.
type Author struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"createdAt"`
}

// Category is a reference document found-or-created by title. At most one
// category document exists per distinct title.
type Category struct {
	ID        string    `json:"_id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"createdAt"`
}
