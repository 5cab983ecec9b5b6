// Package controllers holds the demo HTTP handlers. Every handler resolves
// its services from the container inside the request's own generation.
package controllers

import (
	"net/http"
	"sort"
	"strconv"

	"github.com/km-arc/go-container/app/services"
	"github.com/km-arc/go-container/framework/container"
	gohttp "github.com/km-arc/go-container/framework/http"
	"github.com/km-arc/go-container/framework/routing"
)

// UserController serves /users and the container debug endpoints.
type UserController struct {
	app *container.Container
}

func NewUserController(app *container.Container) *UserController {
	return &UserController{app: app}
}

// Routes mounts the controller on r.
func (uc *UserController) Routes(r *routing.Router) {
	r.Prefix("/users", func(users *routing.Router) {
		users.Post("/", uc.Store)
		users.Get("/{id}", uc.Show)
	})
	r.Prefix("/debug", func(debug *routing.Router) {
		debug.Get("/bindings", uc.Bindings)
		debug.Get("/request", uc.Request)
	})
}

type storeUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Store creates a user and sends a welcome mail.
func (uc *UserController) Store(w http.ResponseWriter, r *http.Request) {
	res := gohttp.NewResponse(w)

	var body storeUserRequest
	if err := gohttp.NewRequest(r).Bind(&body); err != nil {
		res.BadRequest(err.Error())
		return
	}
	if body.Username == "" || body.Email == "" {
		res.Error(http.StatusUnprocessableEntity, "username and email are required.")
		return
	}

	users, err := container.Resolve[*services.UserService](uc.app, services.UserServiceKey)
	if err != nil {
		res.ResolutionError(err)
		return
	}
	mailer, err := container.Resolve[*services.EmailService](uc.app, services.EmailServiceKey)
	if err != nil {
		res.ResolutionError(err)
		return
	}

	user := users.CreateUser(body.Username, body.Email)
	if err := mailer.SendEmail(user.Email, "Welcome", "Hello "+user.Username); err != nil {
		res.ServerError(err.Error())
		return
	}
	res.Created(user)
}

// Show returns a user by id.
func (uc *UserController) Show(w http.ResponseWriter, r *http.Request) {
	res := gohttp.NewResponse(w)

	id, err := strconv.ParseInt(routing.Param(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		res.NotFound("User not found.")
		return
	}

	users, err := container.Resolve[*services.UserService](uc.app, services.UserServiceKey)
	if err != nil {
		res.ResolutionError(err)
		return
	}
	res.Success(users.GetUser(id))
}

type bindingView struct {
	Abstract  string `json:"abstract"`
	Concrete  string `json:"concrete"`
	Lifecycle string `json:"lifecycle"`
}

// Bindings lists the binding table, sorted by abstract.
func (uc *UserController) Bindings(w http.ResponseWriter, _ *http.Request) {
	bindings := uc.app.Bindings()

	out := make([]bindingView, 0, len(bindings))
	for abstract, b := range bindings {
		out = append(out, bindingView{
			Abstract:  abstract,
			Concrete:  b.Describe(),
			Lifecycle: b.Lifecycle.String(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Abstract < out[j].Abstract })

	gohttp.NewResponse(w).Success(out)
}

// Request reports the current request generation.
func (uc *UserController) Request(w http.ResponseWriter, _ *http.Request) {
	gohttp.NewResponse(w).Success(map[string]string{"request_id": uc.app.RequestID()})
}
