package main

import (
	"github.com/himanishpuri/SongDash/pkg/models"
	"github.com/himanishpuri/SongDash/pkg/songdash"
)

// KeyDTO is one entry of the pitch-class mapping.
type KeyDTO struct {
	Code int    `json:"code"`
	Name string `json:"name"`
}

// KeysResponse is the response for GET /api/keys
type KeysResponse struct {
	Mapping []KeyDTO `json:"mapping"`
	Present []string `json:"present"`
}

// SongsResponse is the response for GET /api/songs
type SongsResponse struct {
	Selection models.Selection `json:"selection"`
	Columns   []string         `json:"columns"`
	Rows      [][]string       `json:"rows"`
	Count     int              `json:"count"`
}

// ViewResponse is the response for GET /api/views
type ViewResponse struct {
	View      songdash.View        `json:"view"`
	Selection models.Selection     `json:"selection"`
	Options   songdash.ViewOptions `json:"options"`
	Page      songdash.Page        `json:"page"`
}

// MetricsResponse is the response for GET /api/health/metrics
type MetricsResponse struct {
	Status       string `json:"status"`
	DataPath     string `json:"data_path"`
	DataSize     string `json:"data_size,omitempty"`
	DataBytes    int64  `json:"data_bytes,omitempty"`
	SongCount    int    `json:"song_count"`
	SongCountFmt string `json:"song_count_human"`
	ColumnCount  int    `json:"column_count"`
	KeyCount     int    `json:"key_count"`
	Engine       string `json:"engine"`
	TempoMin     int    `json:"tempo_min"`
	TempoMax     int    `json:"tempo_max"`
}

// ErrorResponse is the standard error response format
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
