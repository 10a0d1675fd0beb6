// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	activitiesfeature "github.com/pitchside/pitchside/internal/app/features/activities"
	authapifeature "github.com/pitchside/pitchside/internal/app/features/authapi"
	commentsfeature "github.com/pitchside/pitchside/internal/app/features/comments"
	conversationsfeature "github.com/pitchside/pitchside/internal/app/features/conversations"
	followsfeature "github.com/pitchside/pitchside/internal/app/features/follows"
	healthfeature "github.com/pitchside/pitchside/internal/app/features/health"
	invitationsfeature "github.com/pitchside/pitchside/internal/app/features/invitations"
	messagesfeature "github.com/pitchside/pitchside/internal/app/features/messages"
	notificationsfeature "github.com/pitchside/pitchside/internal/app/features/notifications"
	postsfeature "github.com/pitchside/pitchside/internal/app/features/posts"
	reviewsfeature "github.com/pitchside/pitchside/internal/app/features/reviews"
	settingsfeature "github.com/pitchside/pitchside/internal/app/features/settings"
	usersfeature "github.com/pitchside/pitchside/internal/app/features/users"
	"github.com/pitchside/pitchside/internal/app/system/auth"
	"github.com/pitchside/pitchside/internal/app/system/notify"
	"github.com/pitchside/pitchside/internal/app/system/password"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. PitchSide mounts the health endpoint,
// the public auth endpoints, and the bearer-token-protected API feature
// routers.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.MongoDatabase

	tokens := auth.NewManager(appCfg.TokenSecret, appCfg.TokenIssuer, appCfg.TokenExpiry)
	hasher := password.NewHasher(appCfg.BcryptCost)

	// Notifier fans out in-app notifications, honoring each recipient's
	// notification settings.
	notifier := notify.New(db, logger)

	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	r.Route("/api", func(api chi.Router) {
		// Public: registration and login
		authHandler := authapifeature.NewHandler(db, tokens, hasher, logger)
		api.Mount("/auth", authapifeature.Routes(authHandler))

		// Everything else requires a valid bearer token.
		api.Group(func(protected chi.Router) {
			protected.Use(tokens.Require)

			usersHandler := usersfeature.NewHandler(db, logger)
			protected.Mount("/users", usersfeature.Routes(usersHandler))

			activitiesHandler := activitiesfeature.NewHandler(db, logger)
			protected.Mount("/activities", activitiesfeature.Routes(activitiesHandler))

			postsHandler := postsfeature.NewHandler(db, notifier, logger)
			protected.Mount("/posts", postsfeature.Routes(postsHandler))

			commentsHandler := commentsfeature.NewHandler(db, notifier, logger)
			protected.Mount("/comments", commentsfeature.Routes(commentsHandler))

			followsHandler := followsfeature.NewHandler(db, notifier, logger)
			protected.Mount("/follows", followsfeature.Routes(followsHandler))

			conversationsHandler := conversationsfeature.NewHandler(db, logger)
			protected.Mount("/conversations", conversationsfeature.Routes(conversationsHandler))

			messagesHandler := messagesfeature.NewHandler(db, notifier, logger)
			protected.Mount("/messages", messagesfeature.Routes(messagesHandler))

			notificationsHandler := notificationsfeature.NewHandler(db, logger)
			protected.Mount("/notifications", notificationsfeature.Routes(notificationsHandler))

			reviewsHandler := reviewsfeature.NewHandler(db, logger)
			protected.Mount("/reviews", reviewsfeature.Routes(reviewsHandler))

			settingsHandler := settingsfeature.NewHandler(db, logger)
			protected.Mount("/settings", settingsfeature.Routes(settingsHandler))

			invitationsHandler := invitationsfeature.NewHandler(db, notifier, logger)
			protected.Mount("/invitations", invitationsfeature.Routes(invitationsHandler))
		})
	})

	return r, nil
}
