package app

import "context"

// contextKey is the private key type guarding the App entry.
type contextKey struct{}

var appContextKey = contextKey{}

// GetAppFromContext returns the App carried by ctx, or nil when the
// command ran without initialization.
func GetAppFromContext(ctx context.Context) *App {
	app, ok := ctx.Value(appContextKey).(*App)
	if !ok {
		return nil
	}
	return app
}

// SetAppInContext attaches the App to ctx for the command tree.
func SetAppInContext(ctx context.Context, app *App) context.Context {
	return context.WithValue(ctx, appContextKey, app)
}
