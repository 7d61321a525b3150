// Package bootstrap plugs the JHF API into the WAFFLE lifecycle: config is
// loaded and validated, MongoDB is connected (a failed ping degrades the
// app instead of aborting it), schema and admin seeding run, and the chi
// router is built.
package bootstrap

import "github.com/dalemusser/waffle/app"

var Hooks = app.Hooks[AppConfig, DBDeps]{
	Name:           "jhf",
	LoadConfig:     LoadConfig,
	ValidateConfig: ValidateConfig,
	ConnectDB:      ConnectDB,
	EnsureSchema:   EnsureSchema,
	Startup:        Startup,
	BuildHandler:   BuildHandler,
	Shutdown:       Shutdown,
}
