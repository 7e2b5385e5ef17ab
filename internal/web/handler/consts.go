package handler

const (
	// BaseLayout is the default path for layout templates.
	BaseLayout = "layouts/base"

	// RootPath is the root path the route group.
	RootPath = "/"

	// CurrentUserLocal is the fiber.Locals key holding the logged in auth.Principal.
	CurrentUserLocal = "CurrentUser"

	// ErrNilEnvMsg is used if app or env is nil.
	ErrNilEnvMsg = "app or env is nil"
)
