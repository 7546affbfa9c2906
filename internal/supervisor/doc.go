// Crimestats - Crime Dataset Analytics and Chart Rendering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/crimestats

/*
Package supervisor runs the long-lived parts of crimestats under a
suture/v4 supervisor tree.

Services are restarted with backoff when they return an error or panic.
Supervisor events go to the application's zerolog logger through
sutureslog and logging.NewSlogLogger:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		return err
	}
	tree.AddDataService(services.NewCacheJanitorService(chartCache, time.Minute))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	err = tree.Serve(ctx)

Service implementations live in the services subpackage.
*/
package supervisor
