// Learnrec - Learning Content Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnrec

/*
Package services adapts learnrec components to suture.Service.

  - HTTPServerService: ListenAndServe/Shutdown to Serve
  - EventComponentsService: Start/Shutdown of the NATS connection and stream
  - IndexRebuildService: similarity index rebuild on operator request

The badger store and the event ingestor implement suture.Service
themselves and are added to the tree directly.

Every wrapper returns ctx.Err() on cancellation and implements
fmt.Stringer so suture logs name the service.
*/
package services
