// Learnrec - Learning Content Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnrec

/*
Command server runs the learnrec recommendation service.

Startup order:

 1. Load configuration (defaults, then YAML file, then environment)
 2. Initialize zerolog
 3. Open the Badger store and restore profiles and content (if enabled)
 4. Build the engine with the similarity index and scorers
 5. Start NATS ingestion (if enabled): embedded server, stream, publisher
    and the event ingestor
 6. Run the supervisor tree: data (store GC, snapshots, on-demand index
    rebuild), messaging and api layers

The process stops on SIGINT or SIGTERM. Services drain within
supervisor.shutdown_timeout and the store is closed last.

Configuration file lookup honors CONFIG_PATH, then ./config.yaml and
/etc/learnrec/config.yaml. See internal/config for every key.
*/
package main
