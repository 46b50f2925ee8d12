package domain

// Package domain describes the fixed responses the echo servers hand out.
// Keep this package free of transport (HTTP) and infrastructure concerns.
