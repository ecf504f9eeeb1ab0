package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
	"github.com/imanage/imanage-api/internal/config"
	"go.uber.org/zap"
)

// desktopOrigin is what a renderer loaded from file:// sends as Origin
const desktopOrigin = "null"

// CORS returns a CORS middleware configured from the application config.
// The desktop renderer origin is allowed when listed explicitly as "null".
func CORS(cfg *config.CORSConfig, environment string, logger *zap.Logger) func(http.Handler) http.Handler {
	options := cors.Options{
		AllowedMethods:   cfg.AllowedMethods,
		AllowedHeaders:   cfg.AllowedHeaders,
		ExposedHeaders:   cfg.ExposedHeaders,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}

	development := environment == "development" || environment == "local" || environment == ""

	switch {
	case contains(cfg.AllowedOrigins, "*"):
		if !development {
			logger.Warn("CORS configured with wildcard origin in non-development environment",
				zap.String("environment", environment))
		}
		options.AllowOriginFunc = func(r *http.Request, origin string) bool {
			return origin != ""
		}

	case len(cfg.AllowedOrigins) > 0:
		allowed := make(map[string]bool, len(cfg.AllowedOrigins))
		for _, o := range cfg.AllowedOrigins {
			allowed[o] = true
		}
		options.AllowOriginFunc = func(r *http.Request, origin string) bool {
			return allowed[origin]
		}
		logger.Info("CORS configured with explicit origins",
			zap.Strings("origins", cfg.AllowedOrigins),
			zap.Bool("desktop_origin", allowed[desktopOrigin]))

	case development:
		options.AllowOriginFunc = func(r *http.Request, origin string) bool {
			return origin != ""
		}
		logger.Info("CORS configured to allow all origins in development mode")

	default:
		// An empty AllowedOrigins means "*" to go-chi/cors, so deny through the func
		options.AllowOriginFunc = func(r *http.Request, origin string) bool {
			return false
		}
		logger.Warn("CORS configured with no allowed origins - all cross-origin requests will be denied",
			zap.String("environment", environment))
	}

	return cors.Handler(options)
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}
