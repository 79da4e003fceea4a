package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"confprogram/internal/delivery/http/controllers"
	"confprogram/internal/delivery/http/middleware"
	"confprogram/internal/domain"
)

// Controllers bundles the handlers mounted by NewRouter.
type Controllers struct {
	Auth        *controllers.AuthController
	Users       *controllers.UserController
	Events      *controllers.EventController
	Talks       *controllers.TalkController
	Schedules   *controllers.ScheduleController
	Enrollments *controllers.EnrollmentController
	Persistence *controllers.PersistenceController
}

// NewRouter initializes the HTTP router with all application routes.
func NewRouter(c Controllers, verifier domain.TokenVerifier, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier, logger)

	// Auth
	mux.HandleFunc("POST /auth/signup", c.Auth.SignUp)
	mux.HandleFunc("POST /auth/login", c.Auth.Login)

	// Users
	mux.HandleFunc("GET /users/me", auth(c.Users.GetMe))
	mux.HandleFunc("PUT /users/me", auth(c.Users.UpdateMe))

	// Events
	mux.HandleFunc("GET /events", c.Events.ListEvents)
	mux.HandleFunc("GET /events/upcoming", c.Events.ListUpcomingEvents)
	mux.HandleFunc("GET /events/{slug}", c.Events.GetEvent)
	mux.HandleFunc("POST /events", auth(c.Events.CreateEvent))
	mux.HandleFunc("PUT /events/{slug}", auth(c.Events.UpdateEvent))
	mux.HandleFunc("DELETE /events/{slug}", auth(c.Events.DeleteEvent))

	// Talks
	mux.HandleFunc("GET /talks/{slug}", c.Talks.GetTalk)
	mux.HandleFunc("POST /talks", auth(c.Talks.CreateTalk))
	mux.HandleFunc("PUT /talks/{slug}", auth(c.Talks.UpdateTalk))

	// Schedules
	mux.HandleFunc("GET /events/{slug}/schedules", c.Schedules.ListProgram)
	mux.HandleFunc("POST /events/{slug}/schedules/seed", auth(c.Schedules.SeedProgram))
	mux.HandleFunc("PUT /schedules/{slotID}", auth(c.Schedules.EditSlot))
	mux.HandleFunc("DELETE /schedules/{slotID}", auth(c.Schedules.RemoveSlot))

	// Enrollments
	mux.HandleFunc("POST /events/{slug}/enrollments", auth(c.Enrollments.Enroll))

	// Generic persistence
	mux.HandleFunc("POST /persistence/save", auth(c.Persistence.Save))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
