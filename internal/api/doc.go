// Learnrec - Learning Content Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnrec

/*
Package api exposes the recommendation engine over HTTP using the chi router.

Routes (all JSON, wrapped in models.APIResponse):

	GET  /api/v1/health/live                       liveness
	GET  /api/v1/health/ready                      readiness incl. registered checks
	GET  /api/v1/stats                             engine statistics
	POST /api/v1/index/rebuild                     full similarity rebuild

	PUT  /api/v1/users/{userID}/profile            merge a profile patch
	GET  /api/v1/users/{userID}/profile            fetch a profile
	POST /api/v1/users/{userID}/events             record a behavior event
	GET  /api/v1/users/{userID}/recommendations    ?strategy=&limit=
	GET  /api/v1/users/{userID}/insights           learner insights
	GET  /api/v1/users/{userID}/similar            ?k=

	POST /api/v1/content                           register content
	GET  /api/v1/content                           list content
	GET  /api/v1/content/{contentID}               fetch content
	GET  /api/v1/content/{contentID}/similar       ?k=

	GET  /api/v1/recommendations/popular           ?user_id=&limit=
	GET  /api/v1/recommendations/trending          ?user_id=&limit=

	GET  /metrics                                  Prometheus exposition
	GET  /swagger/*                                OpenAPI document and UI

Error mapping: recommend.ErrNotFound is 404, recommend.ErrInvalidEvent and
recommend.ErrInvalidContent are 400, a cancelled request is 499 and anything
else is 500.
*/
package api
