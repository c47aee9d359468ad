package router

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"sisivoy-api/internal/handlers"
	"sisivoy-api/internal/middleware"
	"sisivoy-api/internal/models"
	"sisivoy-api/internal/services"
)

const slowRequestThreshold = time.Second

type Services struct {
	Tokens      *services.TokenService
	Auth        *services.AuthService
	Users       *services.UserService
	Memberships *services.MembershipService
	Brands      *services.BrandService
	Branches    *services.BranchService
}

// SetupRouter wires every route. CORS wraps the router itself so that
// preflight requests are answered even for paths that only accept POST.
func SetupRouter(svc Services, logger zerolog.Logger) http.Handler {
	authHandler := handlers.NewAuthHandler(svc.Auth, logger)
	userHandler := handlers.NewUserHandler(svc.Users, logger)
	membershipHandler := handlers.NewMembershipHandler(svc.Memberships, logger)
	brandHandler := handlers.NewBrandHandler(svc.Brands, logger)
	branchHandler := handlers.NewBranchHandler(svc.Branches, logger)

	authn := middleware.Authentication(svc.Tokens, logger)
	sellerOnly := middleware.RequireRole(string(models.RoleSeller))

	r := mux.NewRouter()

	r.Use(middleware.ErrorHandling(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PerformanceMonitoring(logger, slowRequestThreshold))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.RequestValidation())

	auth := r.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", authHandler.Register).Methods("POST")
	auth.HandleFunc("/login", authHandler.Login).Methods("POST")
	auth.HandleFunc("/refresh", authHandler.Refresh).Methods("POST")
	auth.HandleFunc("/logout", authHandler.Logout).Methods("POST")

	me := r.PathPrefix("/me").Subrouter()
	me.Use(authn)
	me.HandleFunc("", userHandler.GetMe).Methods("GET")
	me.HandleFunc("", userHandler.UpdateMe).Methods("PUT")

	seller := r.PathPrefix("/seller").Subrouter()
	seller.Use(authn, sellerOnly)
	seller.HandleFunc("/membership", membershipHandler.Create).Methods("POST")
	seller.HandleFunc("/membership", membershipHandler.Get).Methods("GET")

	brands := r.PathPrefix("/brands").Subrouter()
	brands.Use(authn, sellerOnly)
	brands.HandleFunc("", brandHandler.Create).Methods("POST")
	brands.HandleFunc("", brandHandler.List).Methods("GET")
	brands.HandleFunc("/{id}", brandHandler.Get).Methods("GET")
	brands.HandleFunc("/{id}", brandHandler.Update).Methods("PUT")
	brands.HandleFunc("/{id}", brandHandler.Delete).Methods("DELETE")
	brands.HandleFunc("/{id}/branches", branchHandler.ListByBrand).Methods("GET")

	branches := r.PathPrefix("/branches").Subrouter()
	branches.Use(authn, sellerOnly)
	branches.HandleFunc("", branchHandler.Create).Methods("POST")
	branches.HandleFunc("/{id}", branchHandler.Get).Methods("GET")
	branches.HandleFunc("/{id}", branchHandler.Update).Methods("PUT")
	branches.HandleFunc("/{id}", branchHandler.Delete).Methods("DELETE")

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	return middleware.CORS()(r)
}
