// Learnrec - Learning Content Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnrec

package main

// General API information for swag. Regenerate the docs package with:
//
//	swag init -g cmd/server/swagger.go -o docs
//
// @title Learnrec API
// @version 1.0
// @description Hybrid recommendation engine for learning content: learner profiles, a content catalog, similarity and fused recommendations.
//
// @contact.name GitHub Repository
// @contact.url https://github.com/tomtom215/learnrec/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @host localhost:8087
// @BasePath /api/v1
// @schemes http https
//
// @tag.name Core
// @tag.description Health probes, engine statistics and index maintenance
//
// @tag.name Users
// @tag.description Learner profiles, behavior events, insights and similar users
//
// @tag.name Content
// @tag.description Catalog registration, lookup and similar content
//
// @tag.name Recommendations
// @tag.description Personalized, hybrid, single-scorer, popular and trending rankings
import _ "github.com/tomtom215/learnrec/docs" // generated swagger docs served at /swagger/
