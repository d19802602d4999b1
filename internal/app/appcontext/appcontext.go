// Package appcontext declares which flavor of the binary is being booted.
// The declared environment rides along in the parsed configuration.
package appcontext

// Env is the running environment of the application.
type Env int

const (
	// EnvServer serves the public API and the admin app.
	EnvServer Env = iota

	// EnvWorker runs the analysis consumers without HTTP listeners.
	EnvWorker

	// EnvCLI runs one-shot maintenance scripts.
	EnvCLI
)

type Ctx struct {
	Env Env
}

func Declare(env Env) Ctx {
	return Ctx{
		Env: env,
	}
}
