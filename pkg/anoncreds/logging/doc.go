// Package logging provides the logging facade used by anoncreds.
//
// Logger wraps the context-aware subset of log/slog. The C boundary traces
// each call at debug level through it:
//
//	capi.Configure(capi.Config{
//	    Logger: logging.New(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
//	        Level: slog.LevelDebug,
//	    }))),
//	})
//
// Attribute names are logged as-is. Encoded attribute values never are; the
// boundary emits logging.Redacted("dec_value") in their place.
package logging
