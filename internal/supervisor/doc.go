// Learnrec - Learning Content Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnrec

/*
Package supervisor runs learnrec's long-lived services under a suture v4
tree.

	RootSupervisor ("learnrec")
	├── DataSupervisor ("data-layer")
	│   ├── badger-store (value-log GC, if storage is enabled)
	│   └── index-rebuild
	├── MessagingSupervisor ("messaging-layer")
	│   ├── event-components (if events are enabled)
	│   └── event-ingestor (if events are enabled)
	└── APISupervisor ("api-layer")
	    └── http-server

Crashed services restart with suture's backoff; each layer counts
failures independently. Supervisor events are logged through sutureslog
using the slog bridge from package logging.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddAPIService(services.NewHTTPServerService(srv, 10*time.Second))
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    return err
	}

Service wrappers live in the services subpackage.
*/
package supervisor
