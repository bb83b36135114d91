package main

import (
	"net/http"
	"strconv"
)

func parseLimit(r *http.Request, defaultLimit int) int {
	limitParam := r.URL.Query().Get("limit")
	if limitParam == "" {
		return defaultLimit
	}
	if l, err := strconv.Atoi(limitParam); err == nil && l > 0 {
		return l
	}
	return defaultLimit
}
