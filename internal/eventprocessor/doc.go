// Learnrec - Learning Content Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnrec

/*
Package eventprocessor ingests behavior and content events from NATS
JetStream through a Watermill router and applies them to the
recommendation engine.

Topics:

	learning.behavior   BehaviorEvent envelopes (viewed, completed, ...)
	learning.content    ContentEvent envelopes (registration or replacement)
	learning.poison     messages that could not be applied

All three live in one JetStream stream (LEARNING, subjects learning.>),
created by StreamManager before the subscriber binds to it.

Router middleware, outermost first:

  - Recoverer turns handler panics into errors
  - PoisonQueue forwards messages that still fail after retries
  - Retry retries transient failures with exponential backoff

Malformed envelopes and payloads that the engine rejects as invalid are
never retried: the handler forwards them to the poison topic itself and
acknowledges the original. An optional token bucket (golang.org/x/time/rate)
bounds how many events per second reach the engine, which bounds the rate of
synchronous similarity recomputes.

Publisher wraps a Watermill publisher with a sony/gobreaker circuit breaker
and is used by learnrecctl and by producers embedded in other services.

EmbeddedServer runs nats-server in process for single-node deployments.
*/
package eventprocessor
