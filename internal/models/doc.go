// Learnrec - Learning Content Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnrec

/*
Package models defines the HTTP wire types shared by the API server and the
learnrecctl client.

Every endpoint answers with an APIResponse envelope:

	{
	  "status": "success",
	  "data": {...},
	  "metadata": {"timestamp": "2026-03-01T12:00:00Z", "query_time_ms": 3}
	}

Errors use the same envelope with Status "error" and a populated Error field
carrying one of the Code* constants.

Domain types (profiles, content items, recommendations, insights) live in
internal/recommend and are embedded in Data unchanged.
*/
package models
